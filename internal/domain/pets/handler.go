package pets

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption-hub/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra las rutas del módulo. Sin subrouter en /pets:
// el módulo adoptions también registra métodos bajo /pets/{petID}
// (requests, relist, delete) sobre el mismo router.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/pets", createPetHandler(svc))
	r.Get("/pets", listAvailableHandler(svc))

	// Detalle público de la publicación
	r.Get("/pets/{petID}", getPetHandler(svc))

	// Editar publicación (solo lister, campos descriptivos)
	r.Patch("/pets/{petID}", updatePetHandler(svc))

	// Mis publicaciones (lister)
	r.Get("/me/pets", listMyPetsHandler(svc))
}

type createPetRequest struct {
	Name           string `json:"name"`
	Species        string `json:"species"`
	Breed          string `json:"breed"`
	Gender         string `json:"gender"`
	Age            *int   `json:"age"`
	Size           string `json:"size"`
	Color          string `json:"color"`
	Description    string `json:"description"`
	IsVaccinated   bool   `json:"is_vaccinated"`
	IsPottyTrained bool   `json:"is_potty_trained"`
	ImageURL       string `json:"image_url"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name           *string `json:"name"`
	Breed          *string `json:"breed"`
	Gender         *string `json:"gender"`
	Age            *int    `json:"age"`
	Size           *string `json:"size"`
	Color          *string `json:"color"`
	Description    *string `json:"description"`
	IsVaccinated   *bool   `json:"is_vaccinated"`
	IsPottyTrained *bool   `json:"is_potty_trained"`
}

// petResponse representa una publicación devuelta por la API.
type petResponse struct {
	ID             string         `json:"id"`
	ListerUserID   string         `json:"lister_user_id"`
	Name           string         `json:"name"`
	Species        Species        `json:"species"`
	Breed          string         `json:"breed"`
	Gender         Gender         `json:"gender"`
	Age            *int           `json:"age,omitempty"`
	Size           Size           `json:"size"`
	Color          string         `json:"color"`
	Description    string         `json:"description"`
	IsVaccinated   bool           `json:"is_vaccinated"`
	IsPottyTrained bool           `json:"is_potty_trained"`
	ImageURL       string         `json:"image_url"`
	AdoptionStatus AdoptionStatus `json:"adoption_status"`
	DateListed     time.Time      `json:"date_listed"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type listAvailableResponse struct {
	Data       []petResponse `json:"data"`
	Pagination pagination    `json:"pagination"`
}

type pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalPets   int `json:"total_pets"`
	Limit       int `json:"limit"`
}

// createPetHandler godoc
// @Summary Publicar mascota en adopción
// @Description Crea una publicación nueva en estado Available. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la publicación"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:           req.Name,
			Species:        req.Species,
			Breed:          req.Breed,
			Gender:         req.Gender,
			Age:            req.Age,
			Size:           req.Size,
			Color:          req.Color,
			Description:    req.Description,
			IsVaccinated:   req.IsVaccinated,
			IsPottyTrained: req.IsPottyTrained,
			ImageURL:       req.ImageURL,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listAvailableHandler godoc
// @Summary Catálogo de mascotas disponibles
// @Description Lista paginada de publicaciones Available, más recientes primero. Endpoint público.
// @Tags pets
// @Produce json
// @Param page query int false "Página (default 1)"
// @Param limit query int false "Tamaño de página (default 12, máx 50)"
// @Success 200 {object} listAvailableResponse
// @Router /pets [get]
func listAvailableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit < 1 {
			limit = DefaultPageSize
		}
		if limit > MaxPageSize {
			limit = MaxPageSize
		}
		if page < 1 {
			page = 1
		}

		items, total, err := svc.ListAvailable(r.Context(), page, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		totalPages := (total + limit - 1) / limit

		writeJSON(w, http.StatusOK, listAvailableResponse{
			Data: out,
			Pagination: pagination{
				CurrentPage: page,
				TotalPages:  totalPages,
				TotalPets:   total,
				Limit:       limit,
			},
		})
	}
}

// getPetHandler godoc
// @Summary Detalle de publicación
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la publicación"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	// Público: el detalle se ve sin login (igual que el catálogo).
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Editar publicación
// @Description PATCH de campos descriptivos. Solo el lister. El adoption_status no se edita por acá.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la publicación"
// @Param payload body updatePetRequest true "Campos a modificar (los omitidos no se tocan)"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateProfileInput{
			Name:           req.Name,
			Breed:          req.Breed,
			Gender:         req.Gender,
			Age:            req.Age,
			Size:           req.Size,
			Color:          req.Color,
			Description:    req.Description,
			IsVaccinated:   req.IsVaccinated,
			IsPottyTrained: req.IsPottyTrained,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			case ErrForbidden:
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// listMyPetsHandler godoc
// @Summary Mis publicaciones
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/pets [get]
func listMyPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByLister(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:             p.ID,
		ListerUserID:   p.ListerUserID,
		Name:           p.Name,
		Species:        p.Species,
		Breed:          p.Breed,
		Gender:         p.Gender,
		Age:            p.Age,
		Size:           p.Size,
		Color:          p.Color,
		Description:    p.Description,
		IsVaccinated:   p.IsVaccinated,
		IsPottyTrained: p.IsPottyTrained,
		ImageURL:       p.ImageURL,
		AdoptionStatus: p.AdoptionStatus,
		DateListed:     p.DateListed,
		UpdatedAt:      p.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// (pets/adoptions/notifications) para evitar helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
