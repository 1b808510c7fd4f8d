package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/notifications"
	"pet-adoption-hub/internal/domain/pets"
)

const requestColumns = `
	id, pet_id, requester_user_id,
	message_to_lister, status,
	request_date, updated_at
`

// LifecycleStore implementa adoptions.Store: las transiciones del motor
// corren dentro de una transacción SQL y el lock lo da el
// SELECT ... FOR UPDATE sobre la fila de la mascota.
type LifecycleStore struct {
	db *sql.DB
}

func NewLifecycleStore(db *sql.DB) *LifecycleStore {
	return &LifecycleStore{db: db}
}

func (s *LifecycleStore) InTx(ctx context.Context, fn func(tx adoptions.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&lifecycleTx{tx: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	return sqlTx.Commit()
}

func (s *LifecycleStore) ListByRequester(ctx context.Context, requesterUserID string) ([]adoptions.RequestSummary, error) {
	return listSummaries(ctx, s.db, `
		SELECT
			r.id, r.pet_id, r.requester_user_id,
			r.message_to_lister, r.status,
			r.request_date, r.updated_at,
			p.name, p.image_url, p.adoption_status
		FROM adoption_requests r
		JOIN pets p ON p.id = r.pet_id
		WHERE r.requester_user_id = $1
		ORDER BY r.request_date DESC
	`, requesterUserID)
}

func (s *LifecycleStore) ListReceivedByLister(ctx context.Context, listerUserID string) ([]adoptions.RequestSummary, error) {
	return listSummaries(ctx, s.db, `
		SELECT
			r.id, r.pet_id, r.requester_user_id,
			r.message_to_lister, r.status,
			r.request_date, r.updated_at,
			p.name, p.image_url, p.adoption_status
		FROM adoption_requests r
		JOIN pets p ON p.id = r.pet_id
		WHERE p.lister_user_id = $1
		ORDER BY r.request_date ASC
	`, listerUserID)
}

func listSummaries(ctx context.Context, q queryer, query, userID string) ([]adoptions.RequestSummary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.RequestSummary, 0)
	for rows.Next() {
		var (
			it  adoptions.RequestSummary
			msg sql.NullString
		)
		if err := rows.Scan(
			&it.ID,
			&it.PetID,
			&it.RequesterUserID,
			&msg,
			&it.Status,
			&it.RequestDate,
			&it.UpdatedAt,
			&it.PetName,
			&it.PetImageURL,
			&it.PetStatus,
		); err != nil {
			return nil, err
		}
		if msg.Valid {
			it.MessageToLister = msg.String
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// lifecycleTx es la vista transaccional (adoptions.Tx) sobre *sql.Tx.
type lifecycleTx struct {
	tx *sql.Tx
}

func (t *lifecycleTx) GetPetForUpdate(ctx context.Context, petID string) (pets.Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := t.tx.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
		FOR UPDATE
	`, petID)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (t *lifecycleTx) UpdatePetStatus(ctx context.Context, petID string, status pets.AdoptionStatus, updatedAt time.Time) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE pets
		SET adoption_status = $2, updated_at = $3
		WHERE id = $1
	`, petID, string(status), updatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *lifecycleTx) DeletePet(ctx context.Context, petID string) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, petID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *lifecycleTx) GetRequest(ctx context.Context, requestID string) (adoptions.Request, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return adoptions.Request{}, ErrNotFound
	}

	row := t.tx.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM adoption_requests
		WHERE id = $1
	`, requestID)

	req, err := scanRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Request{}, ErrNotFound
		}
		return adoptions.Request{}, err
	}
	return req, nil
}

func (t *lifecycleTx) CreateRequest(ctx context.Context, req adoptions.Request) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO adoption_requests (
			id, pet_id, requester_user_id,
			message_to_lister, status,
			request_date, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		req.ID,
		req.PetID,
		req.RequesterUserID,
		toNullString(req.MessageToLister),
		string(req.Status),
		req.RequestDate,
		req.UpdatedAt,
	)
	return err
}

func (t *lifecycleTx) UpdateRequestStatus(ctx context.Context, requestID string, status adoptions.Status, updatedAt time.Time) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE adoption_requests
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, requestID, string(status), updatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *lifecycleTx) ListPendingByPet(ctx context.Context, petID string) ([]adoptions.Request, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM adoption_requests
		WHERE pet_id = $1 AND status = $2
		ORDER BY request_date ASC
	`, petID, string(adoptions.StatusPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (t *lifecycleTx) FindPendingByPetAndRequester(ctx context.Context, petID, requesterUserID string) (adoptions.Request, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM adoption_requests
		WHERE pet_id = $1 AND requester_user_id = $2 AND status = $3
		LIMIT 1
	`, petID, requesterUserID, string(adoptions.StatusPending))

	req, err := scanRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Request{}, ErrNotFound
		}
		return adoptions.Request{}, err
	}
	return req, nil
}

func (t *lifecycleTx) ApprovedByPet(ctx context.Context, petID string) (adoptions.Request, error) {
	row := t.tx.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM adoption_requests
		WHERE pet_id = $1 AND status = $2
		LIMIT 1
	`, petID, string(adoptions.StatusApproved))

	req, err := scanRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return adoptions.Request{}, ErrNotFound
		}
		return adoptions.Request{}, err
	}
	return req, nil
}

func (t *lifecycleTx) DeleteRequestsByPet(ctx context.Context, petID string) error {
	_, err := t.tx.ExecContext(ctx, `
		DELETE FROM adoption_requests WHERE pet_id = $1
	`, petID)
	return err
}

func (t *lifecycleTx) CreateNotification(ctx context.Context, n notifications.Notification) error {
	return insertNotification(ctx, t.tx, n)
}

func scanRequest(sc rowScanner) (adoptions.Request, error) {
	var (
		req adoptions.Request
		msg sql.NullString
	)
	if err := sc.Scan(
		&req.ID,
		&req.PetID,
		&req.RequesterUserID,
		&msg,
		&req.Status,
		&req.RequestDate,
		&req.UpdatedAt,
	); err != nil {
		return adoptions.Request{}, err
	}
	if msg.Valid {
		req.MessageToLister = msg.String
	}
	return req, nil
}
