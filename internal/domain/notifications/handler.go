package notifications

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-adoption-hub/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/me/notifications", func(nr chi.Router) {
		nr.Get("/", feedHandler(svc))
		nr.Post("/read-all", markAllReadHandler(svc))
		nr.Post("/{notificationID}/read", markReadHandler(svc))
	})
}

// notificationResponse representa una notificación in-app devuelta por la API.
type notificationResponse struct {
	ID                string            `json:"id"`
	Type              Type              `json:"type"`
	Message           string            `json:"message"`
	RelatedEntityType RelatedEntityType `json:"related_entity_type,omitempty"`
	RelatedEntityID   string            `json:"related_entity_id,omitempty"`
	IsRead            bool              `json:"is_read"`
	CreatedAt         time.Time         `json:"created_at"`
}

type feedResponse struct {
	Data        []notificationResponse `json:"data"`
	UnreadCount int                    `json:"unread_count"`
}

// feedHandler godoc
// @Summary Notificaciones no leídas
// @Description Feed de notificaciones no leídas del usuario (modelo poll) más el conteo total.
// @Tags notifications
// @Produce json
// @Param limit query int false "Máximo de filas (default 10, máx 50)"
// @Success 200 {object} feedResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/notifications [get]
func feedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		items, count, err := svc.Feed(r.Context(), claims.UserID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			out = append(out, toNotificationResponse(n))
		}

		writeJSON(w, http.StatusOK, feedResponse{Data: out, UnreadCount: count})
	}
}

// markReadHandler godoc
// @Summary Marcar notificación como leída
// @Tags notifications
// @Produce json
// @Param notificationID path string true "ID de la notificación"
// @Success 200 {string} string "ok"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "notification not found"
// @Router /me/notifications/{notificationID}/read [post]
func markReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		err := svc.MarkRead(r.Context(), chi.URLParam(r, "notificationID"), claims.UserID)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "notification not found", http.StatusNotFound)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read."})
	}
}

// markAllReadHandler godoc
// @Summary Marcar todas como leídas
// @Tags notifications
// @Produce json
// @Success 200 {string} string "ok"
// @Failure 401 {string} string "unauthorized"
// @Router /me/notifications/read-all [post]
func markAllReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.MarkAllRead(r.Context(), claims.UserID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read."})
	}
}

func toNotificationResponse(n Notification) notificationResponse {
	return notificationResponse{
		ID:                n.ID,
		Type:              n.Type,
		Message:           n.Message,
		RelatedEntityType: n.RelatedEntityType,
		RelatedEntityID:   n.RelatedEntityID,
		IsRead:            n.IsRead,
		CreatedAt:         n.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// (pets/adoptions/notifications) para evitar helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
