package api

import (
	"log/slog"
	"net/http"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/matching"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/service"
)

// AdminHandler holds administrative matching controls.
type AdminHandler struct {
	Svc *service.Service
}

type forceMatchRequest struct {
	LostItemID  int64 `json:"lost_item_id"`
	FoundItemID int64 `json:"found_item_id"`
}

// ForceMatch handles POST /api/admin/force-match.
func (h *AdminHandler) ForceMatch(w http.ResponseWriter, r *http.Request) {
	var req forceMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LostItemID <= 0 || req.FoundItemID <= 0 {
		jsonError(w, http.StatusBadRequest, "lost_item_id and found_item_id required")
		return
	}

	m, err := h.Svc.ForceMatch(r.Context(), req.LostItemID, req.FoundItemID)
	if err != nil {
		serviceError(w, "forcing match", err)
		return
	}
	slog.Info("match forced", "match", m.ID, "by", GetClaims(r.Context()).Username)
	jsonResponse(w, http.StatusCreated, m)
}

// Rematch handles POST /api/admin/rematch.
func (h *AdminHandler) Rematch(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.Svc.Rematch(r.Context())
	if err != nil {
		serviceError(w, "rematching", err)
		return
	}
	created := 0
	for _, c := range candidates {
		if c.Created {
			created++
		}
	}
	if candidates == nil {
		candidates = []matching.Candidate{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"created": created,
		"matches": candidates,
	})
}
