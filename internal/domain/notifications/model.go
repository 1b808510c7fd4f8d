package notifications

import "time"

// Notification es una fila append-only: después de creada, solo IsRead
// muta (false -> true, nunca al revés). No se borra en operación normal.
type Notification struct {
	ID     string
	UserID string // destinatario

	Type    Type
	Message string

	// Referencia opcional a la entidad relacionada. Puede quedar vacía
	// (p.ej. cuando la publicación referida ya fue borrada).
	RelatedEntityType RelatedEntityType
	RelatedEntityID   string

	IsRead    bool
	CreatedAt time.Time
}
