package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 50
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name           string
	Species        string
	Breed          string
	Gender         string
	Age            *int
	Size           string
	Color          string
	Description    string
	IsVaccinated   bool
	IsPottyTrained bool
	ImageURL       string
}

func (s *Service) Create(ctx context.Context, listerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(listerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age != nil && *in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:             uuid.NewString(),
		ListerUserID:   listerUserID,
		Name:           strings.TrimSpace(in.Name),
		Species:        Species(strings.TrimSpace(in.Species)),
		Breed:          strings.TrimSpace(in.Breed),
		Gender:         Gender(strings.TrimSpace(in.Gender)),
		Age:            in.Age,
		Size:           Size(strings.TrimSpace(in.Size)),
		Color:          strings.TrimSpace(in.Color),
		Description:    strings.TrimSpace(in.Description),
		IsVaccinated:   in.IsVaccinated,
		IsPottyTrained: in.IsPottyTrained,
		ImageURL:       strings.TrimSpace(in.ImageURL),
		AdoptionStatus: StatusAvailable,
		DateListed:     now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByLister(ctx context.Context, listerUserID string) ([]Pet, error) {
	return s.repo.ListByLister(ctx, listerUserID)
}

// ListAvailable pagina el catálogo público (page arranca en 1).
func (s *Service) ListAvailable(ctx context.Context, page, limit int) ([]Pet, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return s.repo.ListAvailable(ctx, limit, (page-1)*limit)
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name           *string
	Breed          *string
	Gender         *string
	Age            *int
	Size           *string
	Color          *string
	Description    *string
	IsVaccinated   *bool
	IsPottyTrained *bool
}

// UpdateProfile edita los campos descriptivos de la publicación.
// Solo el lister puede editar. AdoptionStatus nunca se toca por acá:
// esa mutación es exclusiva del motor de adopciones.
func (s *Service) UpdateProfile(ctx context.Context, petID, actorUserID string, in UpdateProfileInput) (Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" || strings.TrimSpace(actorUserID) == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	if p.ListerUserID != actorUserID {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		p.Gender = Gender(strings.TrimSpace(*in.Gender))
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = in.Age
	}
	if in.Size != nil {
		p.Size = Size(strings.TrimSpace(*in.Size))
	}
	if in.Color != nil {
		p.Color = strings.TrimSpace(*in.Color)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsVaccinated != nil {
		p.IsVaccinated = *in.IsVaccinated
	}
	if in.IsPottyTrained != nil {
		p.IsPottyTrained = *in.IsPottyTrained
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
