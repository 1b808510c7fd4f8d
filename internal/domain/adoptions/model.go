package adoptions

import "time"

// Status define el estado de una solicitud de adopción.
// Pending es el único estado no terminal: de ahí se pasa una sola vez
// a Approved, Rejected o Withdrawn y nunca se vuelve.
// @Enum Pending, Approved, Rejected, Withdrawn
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusWithdrawn Status = "Withdrawn"
)

// Request representa una solicitud de adopción. Las filas nunca se borran
// (trazabilidad), salvo el cascade explícito cuando se borra la publicación.
type Request struct {
	ID              string
	PetID           string
	RequesterUserID string

	MessageToLister string

	Status Status

	RequestDate time.Time
	UpdatedAt   time.Time
}

// Actor identifica al usuario que dispara la transición. El nombre viene
// de los claims y se usa solo para armar textos de notificación.
type Actor struct {
	ID   string
	Name string
}

// RequestSummary es la vista de listados (enviadas/recibidas): la solicitud
// más los datos de la publicación que el cliente necesita mostrar.
type RequestSummary struct {
	Request

	PetName     string
	PetImageURL string
	PetStatus   string
}
