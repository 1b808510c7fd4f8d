package adoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-hub/internal/domain/notifications"
	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/platform/logger"
	"pet-adoption-hub/internal/ports/mailq"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")

	// ErrConflict cubre toda precondición de estado violada: solicitud ya
	// procesada, mascota no disponible, auto-adopción, Pending duplicada.
	ErrConflict = errors.New("conflict")
)

// ImageRemover borra el recurso de imagen asociado a una publicación
// retirada. Colaborador externo, best-effort.
type ImageRemover interface {
	Remove(ctx context.Context, imageURL string) error
}

// Service es el motor de ciclo de vida de adopciones: decide la próxima
// transición válida sobre Pet × Request y el fan-out exacto de
// notificaciones, todo dentro de una transacción del Store.
type Service struct {
	store  Store
	mail   mailq.Queue
	images ImageRemover // puede ser nil
	log    logger.Logger
	now    func() time.Time
}

func NewService(store Store, mail mailq.Queue, images ImageRemover, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewFromEnv()
	}
	return &Service{
		store:  store,
		mail:   mail,
		images: images,
		log:    log.With(map[string]any{"module": "adoptions"}),
		now:    time.Now,
	}
}

// Submit crea una solicitud Pending sobre una publicación Available.
// Preconditions: la mascota existe y está Available, el solicitante no es
// el lister y no tiene ya una Pending para la misma mascota.
func (s *Service) Submit(ctx context.Context, petID string, requester Actor, message string) (Request, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" || strings.TrimSpace(requester.ID) == "" {
		return Request{}, ErrInvalidInput
	}

	var (
		created Request
		outbox  []mailq.Job
	)

	err := s.store.InTx(ctx, func(tx Tx) error {
		p, err := tx.GetPetForUpdate(ctx, petID)
		if err != nil {
			return ErrNotFound
		}
		if p.AdoptionStatus != pets.StatusAvailable {
			return ErrConflict
		}
		if p.ListerUserID == requester.ID {
			return ErrConflict
		}
		if _, err := tx.FindPendingByPetAndRequester(ctx, petID, requester.ID); err == nil {
			// Ya hay una Pending del mismo solicitante: se rechaza,
			// no se ignora en silencio.
			return ErrConflict
		}

		now := s.now()
		created = Request{
			ID:              uuid.NewString(),
			PetID:           p.ID,
			RequesterUserID: requester.ID,
			MessageToLister: strings.TrimSpace(message),
			Status:          StatusPending,
			RequestDate:     now,
			UpdatedAt:       now,
		}
		if err := tx.CreateRequest(ctx, created); err != nil {
			return err
		}

		adopterName := strings.TrimSpace(requester.Name)
		if adopterName == "" {
			adopterName = "An interested user"
		}

		// Fan-out: lister ("nueva solicitud") + solicitante (confirmación).
		if err := tx.CreateNotification(ctx, s.newNotification(
			now, p.ListerUserID, notifications.TypeRequestReceived,
			fmt.Sprintf("%s has requested to adopt %s.", adopterName, p.Name),
			notifications.RelatedRequest, created.ID,
		)); err != nil {
			return err
		}
		if err := tx.CreateNotification(ctx, s.newNotification(
			now, requester.ID, notifications.TypeRequestSubmitted,
			fmt.Sprintf("Your adoption request for %s has been submitted successfully.", p.Name),
			notifications.RelatedPet, p.ID,
		)); err != nil {
			return err
		}

		outbox = append(outbox, mailq.Job{
			ToUserID: p.ListerUserID,
			Template: mailq.TemplateNewAdoptionRequest,
			Subject:  fmt.Sprintf("New Adoption Request for %s", p.Name),
			Params: map[string]string{
				"pet_name":     p.Name,
				"adopter_name": adopterName,
				"pet_id":       p.ID,
			},
		})
		return nil
	})
	if err != nil {
		return Request{}, err
	}

	s.dispatch(ctx, outbox)
	return created, nil
}

// Approve aprueba la solicitud: la solicitud pasa a Approved, la mascota a
// Adopted y toda otra Pending de la misma mascota a Rejected, en una sola
// transacción. Dos Approve concurrentes sobre la misma mascota no pueden
// ganar los dos: el segundo relee Adopted bajo lock y devuelve ErrConflict.
func (s *Service) Approve(ctx context.Context, requestID, listerUserID string) (Request, error) {
	requestID = strings.TrimSpace(requestID)
	listerUserID = strings.TrimSpace(listerUserID)
	if requestID == "" || listerUserID == "" {
		return Request{}, ErrInvalidInput
	}

	var (
		approved Request
		outbox   []mailq.Job
	)

	err := s.store.InTx(ctx, func(tx Tx) error {
		req, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return ErrNotFound
		}
		p, err := tx.GetPetForUpdate(ctx, req.PetID)
		if err != nil {
			return ErrNotFound
		}
		if p.ListerUserID != listerUserID {
			return ErrForbidden
		}

		// Releer la solicitud ya con el lock de la mascota tomado: la
		// primera lectura corre sin lock y otra transición pudo cerrarla
		// mientras esperábamos. El estado se decide siempre sobre la
		// relectura, nunca sobre la lectura vieja.
		req, err = tx.GetRequest(ctx, requestID)
		if err != nil {
			return ErrNotFound
		}
		if req.Status != StatusPending {
			return ErrConflict
		}
		if p.AdoptionStatus != pets.StatusAvailable {
			return ErrConflict
		}

		now := s.now()
		if err := tx.UpdateRequestStatus(ctx, req.ID, StatusApproved, now); err != nil {
			return err
		}
		if err := tx.UpdatePetStatus(ctx, p.ID, pets.StatusAdopted, now); err != nil {
			return err
		}

		others, err := tx.ListPendingByPet(ctx, p.ID)
		if err != nil {
			return err
		}

		// a) Adoptante aprobado
		if err := tx.CreateNotification(ctx, s.newNotification(
			now, req.RequesterUserID, notifications.TypeRequestApproved,
			fmt.Sprintf("Congratulations! Your request for %s was approved. Please contact the lister to arrange pickup.", p.Name),
			notifications.RelatedPet, p.ID,
		)); err != nil {
			return err
		}
		outbox = append(outbox, mailq.Job{
			ToUserID: req.RequesterUserID,
			Template: mailq.TemplateRequestApproved,
			Subject:  fmt.Sprintf("Your request for %s was approved!", p.Name),
			Params:   map[string]string{"pet_name": p.Name, "pet_id": p.ID},
		})

		// b) El resto de las Pending pasa a Rejected
		for _, o := range others {
			if o.ID == req.ID {
				continue
			}
			if err := tx.UpdateRequestStatus(ctx, o.ID, StatusRejected, now); err != nil {
				return err
			}
			if err := tx.CreateNotification(ctx, s.newNotification(
				now, o.RequesterUserID, notifications.TypeRequestRejected,
				fmt.Sprintf("Sorry, your request for %s was rejected.", p.Name),
				notifications.RelatedPet, p.ID,
			)); err != nil {
				return err
			}
			outbox = append(outbox, mailq.Job{
				ToUserID: o.RequesterUserID,
				Template: mailq.TemplatePetAdoptedReject,
				Subject:  fmt.Sprintf("Update on your request for %s", p.Name),
				Params:   map[string]string{"pet_name": p.Name},
			})
		}

		approved = req
		approved.Status = StatusApproved
		approved.UpdatedAt = now
		return nil
	})
	if err != nil {
		return Request{}, err
	}

	s.dispatch(ctx, outbox)
	return approved, nil
}

// Reject rechaza una Pending. El estado de la mascota no cambia.
func (s *Service) Reject(ctx context.Context, requestID, listerUserID string) (Request, error) {
	requestID = strings.TrimSpace(requestID)
	listerUserID = strings.TrimSpace(listerUserID)
	if requestID == "" || listerUserID == "" {
		return Request{}, ErrInvalidInput
	}

	var (
		rejected Request
		outbox   []mailq.Job
	)

	err := s.store.InTx(ctx, func(tx Tx) error {
		req, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return ErrNotFound
		}
		p, err := tx.GetPetForUpdate(ctx, req.PetID)
		if err != nil {
			return ErrNotFound
		}
		if p.ListerUserID != listerUserID {
			return ErrForbidden
		}

		// Relectura bajo el lock de la mascota, igual que en Approve.
		req, err = tx.GetRequest(ctx, requestID)
		if err != nil {
			return ErrNotFound
		}
		if req.Status != StatusPending {
			return ErrConflict
		}

		now := s.now()
		if err := tx.UpdateRequestStatus(ctx, req.ID, StatusRejected, now); err != nil {
			return err
		}
		if err := tx.CreateNotification(ctx, s.newNotification(
			now, req.RequesterUserID, notifications.TypeRequestRejected,
			fmt.Sprintf("Sorry, your request for %s was rejected.", p.Name),
			notifications.RelatedPet, p.ID,
		)); err != nil {
			return err
		}
		outbox = append(outbox, mailq.Job{
			ToUserID: req.RequesterUserID,
			Template: mailq.TemplateRequestRejected,
			Subject:  fmt.Sprintf("Update on your request for %s", p.Name),
			Params:   map[string]string{"pet_name": p.Name},
		})

		rejected = req
		rejected.Status = StatusRejected
		rejected.UpdatedAt = now
		return nil
	})
	if err != nil {
		return Request{}, err
	}

	s.dispatch(ctx, outbox)
	return rejected, nil
}

// Withdraw retira una Pending; solo el propio solicitante puede.
func (s *Service) Withdraw(ctx context.Context, requestID, requesterUserID string) (Request, error) {
	requestID = strings.TrimSpace(requestID)
	requesterUserID = strings.TrimSpace(requesterUserID)
	if requestID == "" || requesterUserID == "" {
		return Request{}, ErrInvalidInput
	}

	var withdrawn Request

	err := s.store.InTx(ctx, func(tx Tx) error {
		req, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return ErrNotFound
		}
		if req.RequesterUserID != requesterUserID {
			return ErrForbidden
		}

		p, err := tx.GetPetForUpdate(ctx, req.PetID)
		if err != nil {
			return ErrNotFound
		}

		// Relectura bajo el lock de la mascota, igual que en Approve:
		// un Approve concurrente pudo dejarla Approved mientras esta
		// transacción esperaba el lock, y pisarla sería des-adoptar.
		req, err = tx.GetRequest(ctx, requestID)
		if err != nil {
			return ErrNotFound
		}
		if req.Status != StatusPending {
			return ErrConflict
		}

		now := s.now()
		if err := tx.UpdateRequestStatus(ctx, req.ID, StatusWithdrawn, now); err != nil {
			return err
		}
		if err := tx.CreateNotification(ctx, s.newNotification(
			now, p.ListerUserID, notifications.TypeRequestWithdrawn,
			"An adoption request for one of your pets was withdrawn.",
			notifications.RelatedRequest, req.ID,
		)); err != nil {
			return err
		}

		withdrawn = req
		withdrawn.Status = StatusWithdrawn
		withdrawn.UpdatedAt = now
		return nil
	})
	if err != nil {
		return Request{}, err
	}
	return withdrawn, nil
}

// WithdrawListing borra la publicación. Cascade explícito en código:
// se notifica a cada Pending y recién después se borran solicitudes y
// mascota, todo en la misma transacción. La imagen se borra post-commit.
func (s *Service) WithdrawListing(ctx context.Context, petID, listerUserID string) error {
	petID = strings.TrimSpace(petID)
	listerUserID = strings.TrimSpace(listerUserID)
	if petID == "" || listerUserID == "" {
		return ErrInvalidInput
	}

	var (
		imageURL string
		outbox   []mailq.Job
	)

	err := s.store.InTx(ctx, func(tx Tx) error {
		p, err := tx.GetPetForUpdate(ctx, petID)
		if err != nil {
			return ErrNotFound
		}
		if p.ListerUserID != listerUserID {
			return ErrForbidden
		}

		pending, err := tx.ListPendingByPet(ctx, p.ID)
		if err != nil {
			return err
		}

		now := s.now()
		for _, req := range pending {
			// Sin entidad relacionada: la publicación deja de existir.
			if err := tx.CreateNotification(ctx, s.newNotification(
				now, req.RequesterUserID, notifications.TypeListingDeleted,
				fmt.Sprintf("The listing for %q, which you requested, has been removed by the lister.", p.Name),
				"", "",
			)); err != nil {
				return err
			}
			outbox = append(outbox, mailq.Job{
				ToUserID: req.RequesterUserID,
				Template: mailq.TemplateListingDeleted,
				Subject:  fmt.Sprintf("Update regarding your request for %s", p.Name),
				Params:   map[string]string{"pet_name": p.Name},
			})
		}

		if err := tx.DeleteRequestsByPet(ctx, p.ID); err != nil {
			return err
		}
		if err := tx.DeletePet(ctx, p.ID); err != nil {
			return err
		}

		imageURL = p.ImageURL
		return nil
	})
	if err != nil {
		return err
	}

	if imageURL != "" && s.images != nil {
		if err := s.images.Remove(ctx, imageURL); err != nil {
			s.log.Warn("pet image removal failed", map[string]any{
				"pet_id": petID, "image_url": imageURL, "err": err.Error(),
			})
		}
	}

	s.dispatch(ctx, outbox)
	return nil
}

// Relist reabre una adopción que no se concretó (recuperación manual tras
// una entrega fallida): la mascota vuelve a Available y la solicitud que
// estaba Approved pasa a Rejected. Solo se notifica al adoptante que tenía
// la aprobación; el resto de los históricos no recibe nada (asimetría
// deliberada, heredada del producto).
func (s *Service) Relist(ctx context.Context, petID, listerUserID string) (pets.Pet, error) {
	petID = strings.TrimSpace(petID)
	listerUserID = strings.TrimSpace(listerUserID)
	if petID == "" || listerUserID == "" {
		return pets.Pet{}, ErrInvalidInput
	}

	var relisted pets.Pet

	err := s.store.InTx(ctx, func(tx Tx) error {
		p, err := tx.GetPetForUpdate(ctx, petID)
		if err != nil {
			return ErrNotFound
		}
		if p.ListerUserID != listerUserID {
			return ErrForbidden
		}
		if p.AdoptionStatus != pets.StatusAdopted {
			return ErrConflict
		}

		now := s.now()
		if approved, err := tx.ApprovedByPet(ctx, p.ID); err == nil {
			if err := tx.UpdateRequestStatus(ctx, approved.ID, StatusRejected, now); err != nil {
				return err
			}
			if err := tx.CreateNotification(ctx, s.newNotification(
				now, approved.RequesterUserID, notifications.TypePetRelisted,
				fmt.Sprintf("The adoption of %s did not complete and the listing is available again.", p.Name),
				notifications.RelatedPet, p.ID,
			)); err != nil {
				return err
			}
		}

		if err := tx.UpdatePetStatus(ctx, p.ID, pets.StatusAvailable, now); err != nil {
			return err
		}

		relisted = p
		relisted.AdoptionStatus = pets.StatusAvailable
		relisted.UpdatedAt = now
		return nil
	})
	if err != nil {
		return pets.Pet{}, err
	}
	return relisted, nil
}

// Sent lista las solicitudes hechas por el usuario.
func (s *Service) Sent(ctx context.Context, requesterUserID string) ([]RequestSummary, error) {
	requesterUserID = strings.TrimSpace(requesterUserID)
	if requesterUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.store.ListByRequester(ctx, requesterUserID)
}

// Received lista las solicitudes recibidas sobre publicaciones del lister.
func (s *Service) Received(ctx context.Context, listerUserID string) ([]RequestSummary, error) {
	listerUserID = strings.TrimSpace(listerUserID)
	if listerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.store.ListReceivedByLister(ctx, listerUserID)
}

func (s *Service) newNotification(now time.Time, userID string, typ notifications.Type, msg string, relType notifications.RelatedEntityType, relID string) notifications.Notification {
	return notifications.Notification{
		ID:                uuid.NewString(),
		UserID:            userID,
		Type:              typ,
		Message:           msg,
		RelatedEntityType: relType,
		RelatedEntityID:   relID,
		IsRead:            false,
		CreatedAt:         now,
	}
}

// dispatch encola los emails post-commit. Best-effort: un fallo se loguea
// y no revierte nada (la notificación in-app ya quedó persistida).
func (s *Service) dispatch(ctx context.Context, jobs []mailq.Job) {
	if s.mail == nil {
		return
	}
	for _, job := range jobs {
		if err := s.mail.Enqueue(ctx, job); err != nil {
			s.log.Warn("email enqueue failed", map[string]any{
				"to_user_id": job.ToUserID, "template": job.Template, "err": err.Error(),
			})
		}
	}
}
