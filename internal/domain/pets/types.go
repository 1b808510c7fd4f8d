package pets

// Species de la mascota. Texto libre normalizado en minúsculas por el
// cliente; las más comunes quedan como constantes.
// @Enum dog, cat, rabbit, bird, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesRabbit Species = "rabbit"
	SpeciesBird   Species = "bird"
	SpeciesOther  Species = "other"
)

// Gender de la mascota.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Size aproximado.
// @Enum small, medium, large
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// AdoptionStatus es el estado de la publicación. Lo muta exclusivamente
// el motor de adopciones; el módulo pets solo lo lee.
// @Enum Available, Adopted, Withdrawn
type AdoptionStatus string

const (
	// StatusAvailable: publicada y aceptando solicitudes.
	StatusAvailable AdoptionStatus = "Available"
	// StatusAdopted: entregada a un adoptante aprobado.
	StatusAdopted AdoptionStatus = "Adopted"
	// StatusWithdrawn: retirada por el lister sin adopción. Hoy la baja
	// borra la fila, así que este estado queda reservado para el schema.
	StatusWithdrawn AdoptionStatus = "Withdrawn"
)
