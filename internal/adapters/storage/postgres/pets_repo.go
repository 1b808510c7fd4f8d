package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-hub/internal/domain/pets"
)

const petColumns = `
	id, lister_user_id,
	name, species, breed, gender,
	age, size, color, description,
	is_vaccinated, is_potty_trained, image_url,
	adoption_status, date_listed, updated_at
`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, lister_user_id,
			name, species, breed, gender,
			age, size, color, description,
			is_vaccinated, is_potty_trained, image_url,
			adoption_status, date_listed, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		p.ID,
		p.ListerUserID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Gender),
		toNullInt(p.Age),
		string(p.Size),
		p.Color,
		p.Description,
		p.IsVaccinated,
		p.IsPottyTrained,
		p.ImageURL,
		string(p.AdoptionStatus),
		p.DateListed,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			gender = $5,
			age = $6,
			size = $7,
			color = $8,
			description = $9,
			is_vaccinated = $10,
			is_potty_trained = $11,
			image_url = $12,
			updated_at = $13
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Gender),
		toNullInt(p.Age),
		string(p.Size),
		p.Color,
		p.Description,
		p.IsVaccinated,
		p.IsPottyTrained,
		p.ImageURL,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByLister(ctx context.Context, listerUserID string) ([]pets.Pet, error) {
	listerUserID = strings.TrimSpace(listerUserID)
	if listerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE lister_user_id = $1
		ORDER BY date_listed DESC
	`, listerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) ListAvailable(ctx context.Context, limit, offset int) ([]pets.Pet, int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE adoption_status = $1
		ORDER BY date_listed DESC
		LIMIT $2 OFFSET $3
	`, string(pets.StatusAvailable), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0, limit)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pets WHERE adoption_status = $1
	`, string(pets.StatusAvailable)).Scan(&total); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(sc rowScanner) (pets.Pet, error) {
	var (
		p   pets.Pet
		age sql.NullInt64
	)
	if err := sc.Scan(
		&p.ID,
		&p.ListerUserID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Gender,
		&age,
		&p.Size,
		&p.Color,
		&p.Description,
		&p.IsVaccinated,
		&p.IsPottyTrained,
		&p.ImageURL,
		&p.AdoptionStatus,
		&p.DateListed,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	return p, nil
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
