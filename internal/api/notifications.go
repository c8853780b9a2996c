package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/store"
)

// NotificationsHandler serves the caller's in-app notifications.
type NotificationsHandler struct {
	DB *sql.DB
}

// List handles GET /api/notifications. Pass unread=1 to skip read ones.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	unread := r.URL.Query().Get("unread") == "1"
	notes, err := store.ListNotifications(r.Context(), h.DB, actor(r).UserID, unread)
	if err != nil {
		slog.Error("listing notifications", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	if notes == nil {
		notes = []model.Notification{}
	}
	jsonResponse(w, http.StatusOK, notes)
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationsHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := store.CountUnreadNotifications(r.Context(), h.DB, actor(r).UserID)
	if err != nil {
		slog.Error("counting notifications", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to count notifications")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]int{"unread": n})
}

// MarkRead handles POST /api/notifications/{id}/read.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	updated, err := store.MarkNotificationRead(r.Context(), h.DB, id, actor(r).UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update notification")
		return
	}
	if !updated {
		jsonError(w, http.StatusNotFound, "notification not found")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "notification marked read"})
}
