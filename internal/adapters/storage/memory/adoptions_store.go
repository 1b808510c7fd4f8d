package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/notifications"
	"pet-adoption-hub/internal/domain/pets"
)

type adoptionsView struct {
	s *Store
}

// InTx serializa las transiciones con el lock de escritura del store y
// simula rollback restaurando un snapshot de los mapas si fn falla.
// Mismo contrato all-or-nothing que la transacción de Postgres.
func (v *adoptionsView) InTx(ctx context.Context, fn func(tx adoptions.Tx) error) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	snapPets := clone(v.s.pets)
	snapReqs := clone(v.s.requests)
	snapNotes := clone(v.s.notes)

	if err := fn(&memTx{s: v.s}); err != nil {
		v.s.pets = snapPets
		v.s.requests = snapReqs
		v.s.notes = snapNotes
		return err
	}
	return nil
}

func (v *adoptionsView) ListByRequester(ctx context.Context, requesterUserID string) ([]adoptions.RequestSummary, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	out := make([]adoptions.RequestSummary, 0)
	for _, req := range v.s.requests {
		if req.RequesterUserID != requesterUserID {
			continue
		}
		out = append(out, v.summary(req))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestDate.Equal(out[j].RequestDate) {
			return out[i].RequestDate.After(out[j].RequestDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (v *adoptionsView) ListReceivedByLister(ctx context.Context, listerUserID string) ([]adoptions.RequestSummary, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	out := make([]adoptions.RequestSummary, 0)
	for _, req := range v.s.requests {
		p, ok := v.s.pets[req.PetID]
		if !ok || p.ListerUserID != listerUserID {
			continue
		}
		out = append(out, v.summary(req))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestDate.Equal(out[j].RequestDate) {
			return out[i].RequestDate.Before(out[j].RequestDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (v *adoptionsView) summary(req adoptions.Request) adoptions.RequestSummary {
	it := adoptions.RequestSummary{Request: req}
	if p, ok := v.s.pets[req.PetID]; ok {
		it.PetName = p.Name
		it.PetImageURL = p.ImageURL
		it.PetStatus = string(p.AdoptionStatus)
	}
	return it
}

// memTx implementa adoptions.Tx. Asume que el lock del store ya está
// tomado por InTx, así que no lockea nada por su cuenta.
type memTx struct {
	s *Store
}

func (t *memTx) GetPetForUpdate(ctx context.Context, petID string) (pets.Pet, error) {
	p, ok := t.s.pets[petID]
	if !ok {
		return pets.Pet{}, ErrNotFound
	}
	return p, nil
}

func (t *memTx) UpdatePetStatus(ctx context.Context, petID string, status pets.AdoptionStatus, updatedAt time.Time) error {
	p, ok := t.s.pets[petID]
	if !ok {
		return ErrNotFound
	}
	p.AdoptionStatus = status
	p.UpdatedAt = updatedAt
	t.s.pets[petID] = p
	return nil
}

func (t *memTx) DeletePet(ctx context.Context, petID string) error {
	if _, ok := t.s.pets[petID]; !ok {
		return ErrNotFound
	}
	delete(t.s.pets, petID)
	return nil
}

func (t *memTx) GetRequest(ctx context.Context, requestID string) (adoptions.Request, error) {
	req, ok := t.s.requests[requestID]
	if !ok {
		return adoptions.Request{}, ErrNotFound
	}
	return req, nil
}

func (t *memTx) CreateRequest(ctx context.Context, req adoptions.Request) error {
	if req.ID == "" {
		return errors.New("request id required")
	}
	if _, exists := t.s.requests[req.ID]; exists {
		return errors.New("request already exists")
	}
	t.s.requests[req.ID] = req
	return nil
}

func (t *memTx) UpdateRequestStatus(ctx context.Context, requestID string, status adoptions.Status, updatedAt time.Time) error {
	req, ok := t.s.requests[requestID]
	if !ok {
		return ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = updatedAt
	t.s.requests[requestID] = req
	return nil
}

func (t *memTx) ListPendingByPet(ctx context.Context, petID string) ([]adoptions.Request, error) {
	out := make([]adoptions.Request, 0)
	for _, req := range t.s.requests {
		if req.PetID == petID && req.Status == adoptions.StatusPending {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestDate.Equal(out[j].RequestDate) {
			return out[i].RequestDate.Before(out[j].RequestDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (t *memTx) FindPendingByPetAndRequester(ctx context.Context, petID, requesterUserID string) (adoptions.Request, error) {
	for _, req := range t.s.requests {
		if req.PetID == petID && req.RequesterUserID == requesterUserID && req.Status == adoptions.StatusPending {
			return req, nil
		}
	}
	return adoptions.Request{}, ErrNotFound
}

func (t *memTx) ApprovedByPet(ctx context.Context, petID string) (adoptions.Request, error) {
	for _, req := range t.s.requests {
		if req.PetID == petID && req.Status == adoptions.StatusApproved {
			return req, nil
		}
	}
	return adoptions.Request{}, ErrNotFound
}

func (t *memTx) DeleteRequestsByPet(ctx context.Context, petID string) error {
	for id, req := range t.s.requests {
		if req.PetID == petID {
			delete(t.s.requests, id)
		}
	}
	return nil
}

func (t *memTx) CreateNotification(ctx context.Context, n notifications.Notification) error {
	if n.ID == "" {
		return errors.New("notification id required")
	}
	t.s.notes[n.ID] = n
	return nil
}
