package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/store"
)

// ProfileHandler serves the caller's own account details. These are the
// details released to the other party of a verified match.
type ProfileHandler struct {
	DB *sql.DB
}

type profileRequest struct {
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	RegistrationNumber string `json:"registration_number"`
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := store.GetUser(r.Context(), h.DB, actor(r).UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if user == nil || user.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

// Update handles PUT /api/profile. Phone and registration number may be
// cleared; name and email may not.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, f := range []*string{&req.FullName, &req.Email, &req.Phone, &req.RegistrationNumber} {
		*f = strings.TrimSpace(*f)
	}
	if req.FullName == "" || req.Email == "" {
		jsonError(w, http.StatusBadRequest, "full_name and email required")
		return
	}
	if !validEmail(req.Email) {
		jsonError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	user, err := store.UpdateUserProfile(r.Context(), h.DB, model.User{
		ID:                 actor(r).UserID,
		FullName:           req.FullName,
		Email:              req.Email,
		Phone:              req.Phone,
		RegistrationNumber: req.RegistrationNumber,
	})
	if err != nil {
		slog.Error("updating profile", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	slog.Info("profile updated", "user", user.Username)
	jsonResponse(w, http.StatusOK, user)
}
