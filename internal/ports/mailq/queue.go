package mailq

import "context"

// Job es un pedido de email saliente. El render de la plantilla y el envío
// real viven en el servicio de mailing (colaborador externo); acá solo
// viaja "mandale este template a este usuario con estos datos".
type Job struct {
	ToUserID string            `json:"to_user_id"`
	Template string            `json:"template"`
	Subject  string            `json:"subject"`
	Params   map[string]string `json:"params,omitempty"`
}

// Plantillas conocidas por el servicio de mailing.
const (
	TemplateNewAdoptionRequest = "new_adoption_request"
	TemplateRequestApproved    = "request_approved"
	TemplateRequestRejected    = "request_rejected"
	TemplatePetAdoptedReject   = "pet_adopted_reject"
	TemplateListingDeleted     = "listing_deleted"
)

// Queue encola jobs de email. Semántica at-least-once, fire-and-forget:
// un fallo acá nunca revierte la transición ya commiteada.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
}
