package pets

import "time"

// Pet representa una publicación de adopción.
type Pet struct {
	ID           string
	ListerUserID string

	Name    string
	Species Species
	Breed   string
	Gender  Gender

	Age            *int // en años; nil = desconocida
	Size           Size
	Color          string
	Description    string
	IsVaccinated   bool
	IsPottyTrained bool

	// ImageURL es la ruta pública de la imagen ya subida (el upload vive fuera
	// de este servicio). El archivo se borra al retirar la publicación.
	ImageURL string

	AdoptionStatus AdoptionStatus

	DateListed time.Time
	UpdatedAt  time.Time
}
