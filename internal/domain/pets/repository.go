package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByLister(ctx context.Context, listerUserID string) ([]Pet, error)

	// ListAvailable pagina las publicaciones en estado Available,
	// más recientes primero. Devuelve también el total para paginación.
	ListAvailable(ctx context.Context, limit, offset int) ([]Pet, int, error)
}
