package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

type NotificationHandler struct {
	Repo entity.NotificationRepositoryInterface
}

func NewNotificationHandler(repo entity.NotificationRepositoryInterface) *NotificationHandler {
	return &NotificationHandler{Repo: repo}
}

// HandleList (GET /notifications/{userId}?unread=true)
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.Repo.ListByUser(r.Context(), userID, unreadOnly)
	if err != nil {
		log.Printf("❌ [NOTIFICATIONS] erro ao listar para %s: %v", userID, err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list notifications")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": notifications})
}

// HandleMarkRead (POST /notifications/{id}/read)
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Repo.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrNotificationNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "NOTIFICATION_NOT_FOUND", "notification not found")
			return
		}
		log.Printf("❌ [NOTIFICATIONS] erro ao marcar %s como lida: %v", id, err)
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update notification")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
