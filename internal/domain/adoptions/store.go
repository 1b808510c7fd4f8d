package adoptions

import (
	"context"
	"time"

	"pet-adoption-hub/internal/domain/notifications"
	"pet-adoption-hub/internal/domain/pets"
)

// Tx es la vista transaccional del store: todo lo que una transición
// lee y escribe dentro de su transacción. Las notificaciones se insertan
// acá mismo para que solo persistan si la transición commitea.
type Tx interface {
	// GetPetForUpdate lee la publicación tomando el lock de escritura
	// de la fila. Es el mecanismo que serializa transiciones concurrentes
	// sobre la misma mascota: la segunda transacción relee el estado ya
	// mutado y falla la precondición.
	GetPetForUpdate(ctx context.Context, petID string) (pets.Pet, error)
	UpdatePetStatus(ctx context.Context, petID string, status pets.AdoptionStatus, updatedAt time.Time) error
	DeletePet(ctx context.Context, petID string) error

	GetRequest(ctx context.Context, requestID string) (Request, error)
	CreateRequest(ctx context.Context, req Request) error
	UpdateRequestStatus(ctx context.Context, requestID string, status Status, updatedAt time.Time) error

	// ListPendingByPet devuelve TODAS las Pending de la mascota,
	// incluida la que se esté procesando; el caller filtra.
	ListPendingByPet(ctx context.Context, petID string) ([]Request, error)
	FindPendingByPetAndRequester(ctx context.Context, petID, requesterUserID string) (Request, error)
	ApprovedByPet(ctx context.Context, petID string) (Request, error)

	// DeleteRequestsByPet es el cascade explícito al borrar la publicación.
	// Se hace en código y no por schema para que el invariante
	// "cero Pending huérfanas" quede a la vista.
	DeleteRequestsByPet(ctx context.Context, petID string) error

	CreateNotification(ctx context.Context, n notifications.Notification) error
}

// Store lo implementan los adapters de storage (postgres y memory).
type Store interface {
	// InTx ejecuta fn dentro de una transacción. Si fn devuelve error,
	// nada de lo hecho adentro queda visible (all-or-nothing).
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// Vistas read-only, fuera de transacción.
	ListByRequester(ctx context.Context, requesterUserID string) ([]RequestSummary, error)
	ListReceivedByLister(ctx context.Context, listerUserID string) ([]RequestSummary, error)
}
