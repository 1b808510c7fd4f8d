package adoptions

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"pet-adoption-hub/internal/adapters/queue/memqueue"
	"pet-adoption-hub/internal/domain/notifications"
	"pet-adoption-hub/internal/domain/pets"
)

// -------------------------
// Test store (in-memory)
// -------------------------

var errStoreNotFound = errors.New("store: not found")

type testStore struct {
	pets  map[string]pets.Pet
	reqs  map[string]Request
	notes map[string]notifications.Notification

	// forzar fallo dentro de la transacción (para probar rollback)
	failCreateNotification bool

	// onPetLock simula una transición concurrente que commitea justo
	// antes de que esta transacción obtenga el lock de la mascota.
	// Se dispara una sola vez.
	onPetLock func()
}

func newTestStore() *testStore {
	return &testStore{
		pets:  map[string]pets.Pet{},
		reqs:  map[string]Request{},
		notes: map[string]notifications.Notification{},
	}
}

func (s *testStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	snapPets := cloneMap(s.pets)
	snapReqs := cloneMap(s.reqs)
	snapNotes := cloneMap(s.notes)

	if err := fn(&testTx{s: s}); err != nil {
		s.pets = snapPets
		s.reqs = snapReqs
		s.notes = snapNotes
		return err
	}
	return nil
}

func (s *testStore) ListByRequester(ctx context.Context, requesterUserID string) ([]RequestSummary, error) {
	out := make([]RequestSummary, 0)
	for _, req := range s.reqs {
		if req.RequesterUserID == requesterUserID {
			out = append(out, s.summary(req))
		}
	}
	sortSummaries(out)
	return out, nil
}

func (s *testStore) ListReceivedByLister(ctx context.Context, listerUserID string) ([]RequestSummary, error) {
	out := make([]RequestSummary, 0)
	for _, req := range s.reqs {
		if p, ok := s.pets[req.PetID]; ok && p.ListerUserID == listerUserID {
			out = append(out, s.summary(req))
		}
	}
	sortSummaries(out)
	return out, nil
}

func (s *testStore) summary(req Request) RequestSummary {
	it := RequestSummary{Request: req}
	if p, ok := s.pets[req.PetID]; ok {
		it.PetName = p.Name
		it.PetStatus = string(p.AdoptionStatus)
	}
	return it
}

func sortSummaries(items []RequestSummary) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type testTx struct {
	s *testStore
}

func (t *testTx) GetPetForUpdate(ctx context.Context, petID string) (pets.Pet, error) {
	if t.s.onPetLock != nil {
		hook := t.s.onPetLock
		t.s.onPetLock = nil
		hook()
	}
	p, ok := t.s.pets[petID]
	if !ok {
		return pets.Pet{}, errStoreNotFound
	}
	return p, nil
}

func (t *testTx) UpdatePetStatus(ctx context.Context, petID string, status pets.AdoptionStatus, updatedAt time.Time) error {
	p, ok := t.s.pets[petID]
	if !ok {
		return errStoreNotFound
	}
	p.AdoptionStatus = status
	p.UpdatedAt = updatedAt
	t.s.pets[petID] = p
	return nil
}

func (t *testTx) DeletePet(ctx context.Context, petID string) error {
	if _, ok := t.s.pets[petID]; !ok {
		return errStoreNotFound
	}
	delete(t.s.pets, petID)
	return nil
}

func (t *testTx) GetRequest(ctx context.Context, requestID string) (Request, error) {
	req, ok := t.s.reqs[requestID]
	if !ok {
		return Request{}, errStoreNotFound
	}
	return req, nil
}

func (t *testTx) CreateRequest(ctx context.Context, req Request) error {
	t.s.reqs[req.ID] = req
	return nil
}

func (t *testTx) UpdateRequestStatus(ctx context.Context, requestID string, status Status, updatedAt time.Time) error {
	req, ok := t.s.reqs[requestID]
	if !ok {
		return errStoreNotFound
	}
	req.Status = status
	req.UpdatedAt = updatedAt
	t.s.reqs[requestID] = req
	return nil
}

func (t *testTx) ListPendingByPet(ctx context.Context, petID string) ([]Request, error) {
	out := make([]Request, 0)
	for _, req := range t.s.reqs {
		if req.PetID == petID && req.Status == StatusPending {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *testTx) FindPendingByPetAndRequester(ctx context.Context, petID, requesterUserID string) (Request, error) {
	for _, req := range t.s.reqs {
		if req.PetID == petID && req.RequesterUserID == requesterUserID && req.Status == StatusPending {
			return req, nil
		}
	}
	return Request{}, errStoreNotFound
}

func (t *testTx) ApprovedByPet(ctx context.Context, petID string) (Request, error) {
	for _, req := range t.s.reqs {
		if req.PetID == petID && req.Status == StatusApproved {
			return req, nil
		}
	}
	return Request{}, errStoreNotFound
}

func (t *testTx) DeleteRequestsByPet(ctx context.Context, petID string) error {
	for id, req := range t.s.reqs {
		if req.PetID == petID {
			delete(t.s.reqs, id)
		}
	}
	return nil
}

func (t *testTx) CreateNotification(ctx context.Context, n notifications.Notification) error {
	if t.s.failCreateNotification {
		return errors.New("store: notification insert failed")
	}
	t.s.notes[n.ID] = n
	return nil
}

// -------------------------
// Helpers
// -------------------------

func seedPet(s *testStore, id, listerID string, status pets.AdoptionStatus) {
	s.pets[id] = pets.Pet{
		ID:             id,
		ListerUserID:   listerID,
		Name:           "Milo",
		AdoptionStatus: status,
	}
}

func seedRequest(s *testStore, id, petID, requesterID string, status Status) {
	s.reqs[id] = Request{
		ID:              id,
		PetID:           petID,
		RequesterUserID: requesterID,
		Status:          status,
	}
}

func notesFor(s *testStore, userID string) []notifications.Notification {
	out := make([]notifications.Notification, 0)
	for _, n := range s.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func hasNote(s *testStore, userID string, typ notifications.Type) bool {
	for _, n := range s.notes {
		if n.UserID == userID && n.Type == typ {
			return true
		}
	}
	return false
}

func newTestService(s *testStore) (*Service, *memqueue.Queue) {
	mq := memqueue.New()
	svc := NewService(s, mq, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc, mq
}

// -------------------------
// Submit
// -------------------------

func TestService_Submit_CreatesPending_NotifiesBothSides(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	svc, mq := newTestService(s)

	req, err := svc.Submit(context.Background(), "pet-1", Actor{ID: "adopter-1", Name: "Ana"}, "la quiero mucho")
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if req.Status != StatusPending {
		t.Fatalf("expected Pending, got %s", req.Status)
	}
	if req.MessageToLister != "la quiero mucho" {
		t.Fatalf("unexpected message: %q", req.MessageToLister)
	}

	// fan-out: lister recibe "nueva solicitud", adoptante recibe confirmación
	if !hasNote(s, "lister-1", notifications.TypeRequestReceived) {
		t.Fatalf("expected ADOPTION_REQUEST_RECEIVED for lister")
	}
	if !hasNote(s, "adopter-1", notifications.TypeRequestSubmitted) {
		t.Fatalf("expected ADOPTION_REQUEST_SUBMITTED for adopter")
	}
	if len(s.notes) != 2 {
		t.Fatalf("expected exactly 2 notifications, got %d", len(s.notes))
	}

	// email solo al lister
	jobs := mq.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 email job, got %d", len(jobs))
	}
	if jobs[0].ToUserID != "lister-1" || jobs[0].Template != "new_adoption_request" {
		t.Fatalf("unexpected email job: %+v", jobs[0])
	}
}

func TestService_Submit_OwnPet_Conflict(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	svc, _ := newTestService(s)

	_, err := svc.Submit(context.Background(), "pet-1", Actor{ID: "lister-1"}, "")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict for self-request, got %v", err)
	}
	if len(s.reqs) != 0 {
		t.Fatalf("expected no request persisted")
	}
}

func TestService_Submit_DuplicatePending_Conflict(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	svc, _ := newTestService(s)

	if _, err := svc.Submit(context.Background(), "pet-1", Actor{ID: "adopter-1"}, ""); err != nil {
		t.Fatalf("Submit #1 error: %v", err)
	}
	_, err := svc.Submit(context.Background(), "pet-1", Actor{ID: "adopter-1"}, "")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict for duplicate pending, got %v", err)
	}
	if len(s.reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(s.reqs))
	}
}

func TestService_Submit_AfterTerminal_AllowsNewRequest(t *testing.T) {
	// Solo Pending cuenta como duplicada: una Withdrawn previa no bloquea.
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-old", "pet-1", "adopter-1", StatusWithdrawn)
	svc, _ := newTestService(s)

	if _, err := svc.Submit(context.Background(), "pet-1", Actor{ID: "adopter-1"}, ""); err != nil {
		t.Fatalf("Submit after withdrawn error: %v", err)
	}
}

func TestService_Submit_PetNotAvailable_Conflict(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAdopted)
	svc, _ := newTestService(s)

	_, err := svc.Submit(context.Background(), "pet-1", Actor{ID: "adopter-1"}, "")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_Submit_PetMissing_NotFound(t *testing.T) {
	s := newTestStore()
	svc, _ := newTestService(s)

	_, err := svc.Submit(context.Background(), "nope", Actor{ID: "adopter-1"}, "")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Submit_RollsBackOnNotificationFailure(t *testing.T) {
	// All-or-nothing: si falla el insert de la notificación, la solicitud
	// tampoco queda y no sale ningún email.
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	s.failCreateNotification = true
	svc, mq := newTestService(s)

	_, err := svc.Submit(context.Background(), "pet-1", Actor{ID: "adopter-1"}, "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(s.reqs) != 0 || len(s.notes) != 0 {
		t.Fatalf("expected rollback, got reqs=%d notes=%d", len(s.reqs), len(s.notes))
	}
	if len(mq.Jobs()) != 0 {
		t.Fatalf("expected no email jobs after rollback")
	}
}

// -------------------------
// Approve
// -------------------------

func TestService_Approve_AdoptsPet_RejectsOtherPending(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusPending)
	seedRequest(s, "req-2", "pet-1", "adopter-2", StatusPending)
	svc, mq := newTestService(s)

	approved, err := svc.Approve(context.Background(), "req-1", "lister-1")
	if err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("expected Approved, got %s", approved.Status)
	}
	if s.pets["pet-1"].AdoptionStatus != pets.StatusAdopted {
		t.Fatalf("expected pet Adopted, got %s", s.pets["pet-1"].AdoptionStatus)
	}
	if s.reqs["req-2"].Status != StatusRejected {
		t.Fatalf("expected req-2 Rejected, got %s", s.reqs["req-2"].Status)
	}

	if !hasNote(s, "adopter-1", notifications.TypeRequestApproved) {
		t.Fatalf("expected approval notification for adopter-1")
	}
	if !hasNote(s, "adopter-2", notifications.TypeRequestRejected) {
		t.Fatalf("expected rejection notification for adopter-2")
	}
	if len(s.notes) != 2 {
		t.Fatalf("expected exactly 2 notifications, got %d", len(s.notes))
	}

	// emails: aprobado + perdedor, con templates distintos
	jobs := mq.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 email jobs, got %d", len(jobs))
	}
	byUser := map[string]string{}
	for _, j := range jobs {
		byUser[j.ToUserID] = j.Template
	}
	if byUser["adopter-1"] != "request_approved" {
		t.Fatalf("expected request_approved for adopter-1, got %q", byUser["adopter-1"])
	}
	if byUser["adopter-2"] != "pet_adopted_reject" {
		t.Fatalf("expected pet_adopted_reject for adopter-2, got %q", byUser["adopter-2"])
	}
}

func TestService_Approve_NotLister_Forbidden(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusPending)
	svc, _ := newTestService(s)

	_, err := svc.Approve(context.Background(), "req-1", "otro-usuario")
	if err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if s.reqs["req-1"].Status != StatusPending {
		t.Fatalf("request must stay Pending")
	}
}

func TestService_Approve_ForbiddenBeatsConflict(t *testing.T) {
	// No-dueño sobre solicitud ya procesada: gana 403, no filtra estado.
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAdopted)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusRejected)
	svc, _ := newTestService(s)

	_, err := svc.Approve(context.Background(), "req-1", "otro-usuario")
	if err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Approve_AlreadyProcessed_Conflict(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusRejected)
	svc, _ := newTestService(s)

	_, err := svc.Approve(context.Background(), "req-1", "lister-1")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_Approve_SecondApproveLoses(t *testing.T) {
	// Dos solicitudes, se aprueba una; la otra quedó Rejected así que un
	// segundo Approve es conflicto y no toca nada.
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusPending)
	seedRequest(s, "req-2", "pet-1", "adopter-2", StatusPending)
	svc, _ := newTestService(s)

	if _, err := svc.Approve(context.Background(), "req-1", "lister-1"); err != nil {
		t.Fatalf("Approve #1 error: %v", err)
	}
	_, err := svc.Approve(context.Background(), "req-2", "lister-1")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict on second approve, got %v", err)
	}
	if s.reqs["req-1"].Status != StatusApproved {
		t.Fatalf("winner must stay Approved")
	}
	if s.pets["pet-1"].AdoptionStatus != pets.StatusAdopted {
		t.Fatalf("pet must stay Adopted")
	}
}

// -------------------------
// Reject / Withdraw
// -------------------------

func TestService_Reject_KeepsPetAvailable(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusPending)
	svc, mq := newTestService(s)

	rejected, err := svc.Reject(context.Background(), "req-1", "lister-1")
	if err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Fatalf("expected Rejected, got %s", rejected.Status)
	}
	if s.pets["pet-1"].AdoptionStatus != pets.StatusAvailable {
		t.Fatalf("pet must stay Available after reject")
	}
	if !hasNote(s, "adopter-1", notifications.TypeRequestRejected) {
		t.Fatalf("expected rejection notification")
	}
	jobs := mq.Jobs()
	if len(jobs) != 1 || jobs[0].Template != "request_rejected" {
		t.Fatalf("expected request_rejected email, got %+v", jobs)
	}
}

func TestService_Withdraw_ByRequester_NotifiesLister(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusPending)
	svc, mq := newTestService(s)

	withdrawn, err := svc.Withdraw(context.Background(), "req-1", "adopter-1")
	if err != nil {
		t.Fatalf("Withdraw error: %v", err)
	}
	if withdrawn.Status != StatusWithdrawn {
		t.Fatalf("expected Withdrawn, got %s", withdrawn.Status)
	}
	if !hasNote(s, "lister-1", notifications.TypeRequestWithdrawn) {
		t.Fatalf("expected withdrawn notification for lister")
	}
	// retirar no manda email, solo in-app
	if len(mq.Jobs()) != 0 {
		t.Fatalf("expected no email jobs, got %d", len(mq.Jobs()))
	}
}

func TestService_Withdraw_NotRequester_Forbidden(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusPending)
	svc, _ := newTestService(s)

	_, err := svc.Withdraw(context.Background(), "req-1", "lister-1")
	if err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Withdraw_Terminal_Conflict(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusApproved)
	svc, _ := newTestService(s)

	_, err := svc.Withdraw(context.Background(), "req-1", "adopter-1")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

// -------------------------
// Carreras sobre el lock de la mascota
// -------------------------
//
// Estos tests simulan con onPetLock una transición que commitea mientras
// la transacción bajo test espera el lock: la lectura inicial de la
// solicitud ya está vieja cuando el lock se obtiene, y la decisión debe
// tomarse sobre la relectura.

func TestService_Withdraw_RequestApprovedWhileWaitingOnLock_Conflict(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusPending)
	svc, mq := newTestService(s)

	// Mientras Withdraw espera el lock, el lister aprueba req-1.
	s.onPetLock = func() {
		req := s.reqs["req-1"]
		req.Status = StatusApproved
		s.reqs["req-1"] = req
		p := s.pets["pet-1"]
		p.AdoptionStatus = pets.StatusAdopted
		s.pets["pet-1"] = p
	}

	_, err := svc.Withdraw(context.Background(), "req-1", "adopter-1")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if s.reqs["req-1"].Status == StatusWithdrawn {
		t.Fatalf("withdraw must not overwrite a request approved meanwhile")
	}
	if len(s.notes) != 0 {
		t.Fatalf("expected no notifications, got %d", len(s.notes))
	}
	if len(mq.Jobs()) != 0 {
		t.Fatalf("expected no email jobs, got %d", len(mq.Jobs()))
	}
}

func TestService_Reject_RequestClosedWhileWaitingOnLock_Conflict(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusPending)
	svc, mq := newTestService(s)

	// El adoptante retira su solicitud mientras Reject espera el lock.
	s.onPetLock = func() {
		req := s.reqs["req-1"]
		req.Status = StatusWithdrawn
		s.reqs["req-1"] = req
	}

	_, err := svc.Reject(context.Background(), "req-1", "lister-1")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	// sin rechazo duplicado: ni notificación ni email
	if len(notesFor(s, "adopter-1")) != 0 {
		t.Fatalf("expected no rejection notification, got %d", len(notesFor(s, "adopter-1")))
	}
	if len(mq.Jobs()) != 0 {
		t.Fatalf("expected no email jobs, got %d", len(mq.Jobs()))
	}
}

func TestService_Approve_RequestWithdrawnWhileWaitingOnLock_Conflict(t *testing.T) {
	// El adoptante retira req-1 y la mascota sigue Available, así que el
	// chequeo de estado de la mascota solo no alcanza: la relectura de la
	// solicitud es la que tiene que frenar el approve.
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusPending)
	svc, mq := newTestService(s)

	s.onPetLock = func() {
		req := s.reqs["req-1"]
		req.Status = StatusWithdrawn
		s.reqs["req-1"] = req
	}

	_, err := svc.Approve(context.Background(), "req-1", "lister-1")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if s.reqs["req-1"].Status == StatusApproved {
		t.Fatalf("approve must not overwrite a request withdrawn meanwhile")
	}
	if s.pets["pet-1"].AdoptionStatus == pets.StatusAdopted {
		t.Fatalf("pet must not end Adopted without an approved request")
	}
	if len(mq.Jobs()) != 0 {
		t.Fatalf("expected no email jobs, got %d", len(mq.Jobs()))
	}
}

// -------------------------
// WithdrawListing / Relist
// -------------------------

type testRemover struct {
	removed []string
}

func (r *testRemover) Remove(ctx context.Context, imageURL string) error {
	r.removed = append(r.removed, imageURL)
	return nil
}

func TestService_WithdrawListing_CascadesAndNotifiesPending(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	p := s.pets["pet-1"]
	p.ImageURL = "/uploads/pets/milo.jpg"
	s.pets["pet-1"] = p
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusPending)
	seedRequest(s, "req-2", "pet-1", "adopter-2", StatusPending)
	seedRequest(s, "req-3", "pet-1", "adopter-3", StatusWithdrawn)

	rem := &testRemover{}
	mq := memqueue.New()
	svc := NewService(s, mq, rem, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	if err := svc.WithdrawListing(context.Background(), "pet-1", "lister-1"); err != nil {
		t.Fatalf("WithdrawListing error: %v", err)
	}

	if _, ok := s.pets["pet-1"]; ok {
		t.Fatalf("expected pet deleted")
	}
	if len(s.reqs) != 0 {
		t.Fatalf("expected all requests deleted, got %d", len(s.reqs))
	}

	// solo las Pending reciben aviso; la Withdrawn no
	if !hasNote(s, "adopter-1", notifications.TypeListingDeleted) || !hasNote(s, "adopter-2", notifications.TypeListingDeleted) {
		t.Fatalf("expected listing-deleted notifications for pending requesters")
	}
	if len(notesFor(s, "adopter-3")) != 0 {
		t.Fatalf("withdrawn requester must not be notified")
	}

	if len(mq.Jobs()) != 2 {
		t.Fatalf("expected 2 email jobs, got %d", len(mq.Jobs()))
	}
	if len(rem.removed) != 1 || rem.removed[0] != "/uploads/pets/milo.jpg" {
		t.Fatalf("expected image removed, got %v", rem.removed)
	}
}

func TestService_WithdrawListing_NotLister_Forbidden(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	svc, _ := newTestService(s)

	if err := svc.WithdrawListing(context.Background(), "pet-1", "otro"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Relist_ReopensAndRejectsApproved(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAdopted)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusApproved)
	seedRequest(s, "req-2", "pet-1", "adopter-2", StatusRejected)
	svc, _ := newTestService(s)

	relisted, err := svc.Relist(context.Background(), "pet-1", "lister-1")
	if err != nil {
		t.Fatalf("Relist error: %v", err)
	}
	if relisted.AdoptionStatus != pets.StatusAvailable {
		t.Fatalf("expected pet Available, got %s", relisted.AdoptionStatus)
	}
	if s.reqs["req-1"].Status != StatusRejected {
		t.Fatalf("expected approved request demoted to Rejected")
	}

	// solo el adoptante que tenía la aprobación se entera
	if !hasNote(s, "adopter-1", notifications.TypePetRelisted) {
		t.Fatalf("expected PET_RELISTED for previously approved adopter")
	}
	if len(notesFor(s, "adopter-2")) != 0 {
		t.Fatalf("historic rejected requester must not be notified")
	}
}

func TestService_Relist_NotAdopted_Conflict(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	svc, _ := newTestService(s)

	_, err := svc.Relist(context.Background(), "pet-1", "lister-1")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

// -------------------------
// Vistas
// -------------------------

func TestService_SentAndReceived(t *testing.T) {
	s := newTestStore()
	seedPet(s, "pet-1", "lister-1", pets.StatusAvailable)
	seedPet(s, "pet-2", "lister-2", pets.StatusAvailable)
	seedRequest(s, "req-1", "pet-1", "adopter-1", StatusPending)
	seedRequest(s, "req-2", "pet-2", "adopter-1", StatusPending)
	seedRequest(s, "req-3", "pet-1", "adopter-2", StatusPending)
	svc, _ := newTestService(s)

	sent, err := svc.Sent(context.Background(), "adopter-1")
	if err != nil {
		t.Fatalf("Sent error: %v", err)
	}
	if len(sent) != 2 {
		t.Fatalf("expected 2 sent, got %d", len(sent))
	}
	if sent[0].PetName == "" {
		t.Fatalf("expected summary enriched with pet data")
	}

	received, err := svc.Received(context.Background(), "lister-1")
	if err != nil {
		t.Fatalf("Received error: %v", err)
	}
	if len(received) != 2 {
		t.Fatalf("expected 2 received, got %d", len(received))
	}
	for _, it := range received {
		if it.PetID != "pet-1" {
			t.Fatalf("received must only include lister's pets, got %s", it.PetID)
		}
	}
}
