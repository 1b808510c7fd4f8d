package notifications

import "context"

// Repository lee y marca notificaciones. La creación NO pasa por acá:
// las filas las inserta el motor de adopciones dentro de su transacción.
type Repository interface {
	ListUnreadByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkRead marca como leída una notificación del usuario.
	// Devuelve error not-found si no existe, no es del usuario
	// o ya estaba leída (mismo contrato que un UPDATE con count 0).
	MarkRead(ctx context.Context, id, userID string) error

	MarkAllRead(ctx context.Context, userID string) error
}
