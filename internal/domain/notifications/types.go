package notifications

// Type clasifica la notificación in-app.
type Type string

const (
	TypeRequestReceived  Type = "ADOPTION_REQUEST_RECEIVED"
	TypeRequestSubmitted Type = "ADOPTION_REQUEST_SUBMITTED"
	TypeRequestApproved  Type = "ADOPTION_REQUEST_APPROVED"
	TypeRequestRejected  Type = "ADOPTION_REQUEST_REJECTED"
	TypeRequestWithdrawn Type = "ADOPTION_REQUEST_WITHDRAWN"
	TypeListingDeleted   Type = "PET_LISTING_DELETED"
	TypePetRelisted      Type = "PET_RELISTED"
)

// RelatedEntityType indica a qué entidad apunta la notificación (opcional).
type RelatedEntityType string

const (
	RelatedPet     RelatedEntityType = "PET"
	RelatedRequest RelatedEntityType = "ADOPTION_REQUEST"
)
