package memory

import (
	"errors"
	"sync"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/notifications"
	"pet-adoption-hub/internal/domain/pets"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store guarda todo el estado en memoria (dev/tests). Los tres "tables"
// comparten un mismo lock para que las transiciones del motor de
// adopciones sean atómicas igual que en Postgres.
type Store struct {
	mu sync.RWMutex

	pets     map[string]pets.Pet
	requests map[string]adoptions.Request
	notes    map[string]notifications.Notification
}

func New() *Store {
	return &Store{
		pets:     make(map[string]pets.Pet),
		requests: make(map[string]adoptions.Request),
		notes:    make(map[string]notifications.Notification),
	}
}

// Pets devuelve la vista pets.Repository sobre el store.
func (s *Store) Pets() pets.Repository {
	return &petsView{s: s}
}

// Notifications devuelve la vista notifications.Repository sobre el store.
func (s *Store) Notifications() notifications.Repository {
	return &notificationsView{s: s}
}

// Adoptions devuelve la vista adoptions.Store sobre el store.
func (s *Store) Adoptions() adoptions.Store {
	return &adoptionsView{s: s}
}

func clone[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
