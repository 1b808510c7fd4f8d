package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pet-adoption-hub/internal/domain/pets"
)

type petsView struct {
	s *Store
}

func (r *petsView) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petsView) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.pets[p.ID]; !exists {
		return ErrNotFound
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petsView) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *petsView) ListByLister(ctx context.Context, listerUserID string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.ListerUserID == listerUserID {
			out = append(out, p)
		}
	}
	sortPetsNewestFirst(out)
	return out, nil
}

func (r *petsView) ListAvailable(ctx context.Context, limit, offset int) ([]pets.Pet, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.AdoptionStatus == pets.StatusAvailable {
			all = append(all, p)
		}
	}
	sortPetsNewestFirst(all)

	total := len(all)
	if offset >= total {
		return []pets.Pet{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func sortPetsNewestFirst(items []pets.Pet) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].DateListed.Equal(items[j].DateListed) {
			return items[i].DateListed.After(items[j].DateListed)
		}
		// Desempate estable para timestamps iguales (tests con now fijo).
		return items[i].ID < items[j].ID
	})
}
