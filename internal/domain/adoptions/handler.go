package adoptions

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-adoption-hub/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Transiciones sobre la publicación
	r.Post("/pets/{petID}/requests", submitHandler(svc))
	r.Delete("/pets/{petID}", withdrawListingHandler(svc))
	r.Post("/pets/{petID}/relist", relistHandler(svc))

	// Transiciones sobre la solicitud
	r.Route("/requests/{requestID}", func(rr chi.Router) {
		rr.Post("/approve", approveHandler(svc))
		rr.Post("/reject", rejectHandler(svc))
		rr.Post("/withdraw", withdrawHandler(svc))
	})

	// Vistas
	r.Get("/me/requests", sentHandler(svc))
	r.Get("/me/received-requests", receivedHandler(svc))
}

type submitRequest struct {
	MessageToLister string `json:"message_to_lister"`
}

// requestResponse representa una solicitud de adopción devuelta por la API.
type requestResponse struct {
	ID              string    `json:"id"`
	PetID           string    `json:"pet_id"`
	RequesterUserID string    `json:"requester_user_id"`
	MessageToLister string    `json:"message_to_lister,omitempty"`
	Status          Status    `json:"status"`
	RequestDate     time.Time `json:"request_date"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type requestSummaryResponse struct {
	requestResponse

	PetName     string `json:"pet_name"`
	PetImageURL string `json:"pet_image_url,omitempty"`
	PetStatus   string `json:"pet_status,omitempty"`
}

// submitHandler godoc
// @Summary Solicitar adopción
// @Description Crea una solicitud Pending. Falla 409 si la mascota no está disponible, si es tu propia publicación o si ya tenés una Pending para ella.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param petID path string true "ID de la publicación"
// @Param payload body submitRequest false "Mensaje opcional al lister"
// @Success 201 {object} requestResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Failure 409 {string} string "conflict"
// @Router /pets/{petID}/requests [post]
func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req submitRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		created, err := svc.Submit(r.Context(), chi.URLParam(r, "petID"), Actor{
			ID:   claims.UserID,
			Name: claims.Name,
		}, req.MessageToLister)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRequestResponse(created))
	}
}

// approveHandler godoc
// @Summary Aprobar solicitud
// @Description Solo el lister. En una sola transacción: solicitud -> Approved, mascota -> Adopted, el resto de las Pending -> Rejected. 409 si la solicitud ya fue procesada o la mascota no está Available (p.ej. aprobación concurrente).
// @Tags adoptions
// @Produce json
// @Param requestID path string true "ID de la solicitud"
// @Success 200 {object} requestResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "request not found"
// @Failure 409 {string} string "conflict"
// @Router /requests/{requestID}/approve [post]
func approveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		updated, err := svc.Approve(r.Context(), chi.URLParam(r, "requestID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponse(updated))
	}
}

// rejectHandler godoc
// @Summary Rechazar solicitud
// @Description Solo el lister. La solicitud pasa a Rejected; la mascota no cambia.
// @Tags adoptions
// @Produce json
// @Param requestID path string true "ID de la solicitud"
// @Success 200 {object} requestResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "request not found"
// @Failure 409 {string} string "conflict"
// @Router /requests/{requestID}/reject [post]
func rejectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		updated, err := svc.Reject(r.Context(), chi.URLParam(r, "requestID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponse(updated))
	}
}

// withdrawHandler godoc
// @Summary Retirar solicitud propia
// @Description Solo el solicitante. La solicitud pasa a Withdrawn y se notifica al lister.
// @Tags adoptions
// @Produce json
// @Param requestID path string true "ID de la solicitud"
// @Success 200 {object} requestResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "request not found"
// @Failure 409 {string} string "conflict"
// @Router /requests/{requestID}/withdraw [post]
func withdrawHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		updated, err := svc.Withdraw(r.Context(), chi.URLParam(r, "requestID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRequestResponse(updated))
	}
}

// withdrawListingHandler godoc
// @Summary Borrar publicación
// @Description Solo el lister. Notifica y cascade-borra las solicitudes, borra la publicación y su imagen.
// @Tags adoptions
// @Produce json
// @Param petID path string true "ID de la publicación"
// @Success 200 {string} string "ok"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [delete]
func withdrawListingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.WithdrawListing(r.Context(), chi.URLParam(r, "petID"), claims.UserID); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "Listing deleted successfully."})
	}
}

// relistHandler godoc
// @Summary Republicar mascota adoptada
// @Description Recuperación manual cuando la entrega no se concretó: la mascota vuelve a Available y la solicitud aprobada pasa a Rejected. 409 si la mascota no está Adopted.
// @Tags adoptions
// @Produce json
// @Param petID path string true "ID de la publicación"
// @Success 200 {string} string "ok"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 409 {string} string "conflict"
// @Router /pets/{petID}/relist [post]
func relistHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Relist(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message":         "Pet relisted.",
			"pet_id":          p.ID,
			"adoption_status": string(p.AdoptionStatus),
		})
	}
}

// sentHandler godoc
// @Summary Mis solicitudes enviadas
// @Tags adoptions
// @Produce json
// @Success 200 {array} requestSummaryResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/requests [get]
func sentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Sent(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toSummaryResponses(items))
	}
}

// receivedHandler godoc
// @Summary Solicitudes recibidas sobre mis publicaciones
// @Tags adoptions
// @Produce json
// @Success 200 {array} requestSummaryResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/received-requests [get]
func receivedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Received(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toSummaryResponses(items))
	}
}

func toRequestResponse(req Request) requestResponse {
	return requestResponse{
		ID:              req.ID,
		PetID:           req.PetID,
		RequesterUserID: req.RequesterUserID,
		MessageToLister: req.MessageToLister,
		Status:          req.Status,
		RequestDate:     req.RequestDate,
		UpdatedAt:       req.UpdatedAt,
	}
}

func toSummaryResponses(items []RequestSummary) []requestSummaryResponse {
	out := make([]requestSummaryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, requestSummaryResponse{
			requestResponse: toRequestResponse(it.Request),
			PetName:         it.PetName,
			PetImageURL:     it.PetImageURL,
			PetStatus:       it.PetStatus,
		})
	}
	return out
}

// writeServiceError mapea los errores del motor a HTTP (404/403/409/400).
func writeServiceError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case ErrNotFound:
		http.Error(w, "not found", http.StatusNotFound)
	case ErrForbidden:
		http.Error(w, "forbidden", http.StatusForbidden)
	case ErrConflict:
		http.Error(w, "conflict", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// (pets/adoptions/notifications) para evitar helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
