package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/matching"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/service"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/store"
)

// FoundItemsHandler handles found-item reports.
type FoundItemsHandler struct {
	DB  *sql.DB
	Svc *service.Service
}

// Create handles POST /api/found-items.
func (h *FoundItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, msg := req.normalize(time.Now())
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	item, matches, err := h.Svc.SubmitFound(r.Context(), &model.FoundItem{
		UserID:      actor(r).UserID,
		Category:    req.Category,
		ItemName:    req.ItemName,
		Brand:       req.Brand,
		Color:       req.Color,
		Location:    req.Location,
		DateFound:   date,
		Description: req.Description,
	})
	if err != nil {
		serviceError(w, "reporting found item", err)
		return
	}
	if matches == nil {
		matches = []matching.Candidate{}
	}
	jsonResponse(w, http.StatusCreated, submitResponse{Item: item, Matches: matches})
}

// List handles GET /api/found-items.
func (h *FoundItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListFoundItems(r.Context(), h.DB, listScope(r), r.URL.Query().Get("status"))
	if err != nil {
		slog.Error("listing found items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list found items")
		return
	}
	if items == nil {
		items = []model.FoundItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// load fetches the report in the path and checks the caller may see it.
func (h *FoundItemsHandler) load(w http.ResponseWriter, r *http.Request) (*model.FoundItem, bool) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return nil, false
	}
	item, err := store.GetFoundItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get found item")
		return nil, false
	}
	if item == nil || !canSee(r, item.UserID) {
		jsonError(w, http.StatusNotFound, "found item not found")
		return nil, false
	}
	return item, true
}

// Get handles GET /api/found-items/{id}.
func (h *FoundItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if item, ok := h.load(w, r); ok {
		jsonResponse(w, http.StatusOK, item)
	}
}

// Update handles PUT /api/found-items/{id}. A found report can be edited by
// its reporter until it is matched, and closed while it is active.
func (h *FoundItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	if item.UserID != actor(r).UserID {
		jsonError(w, http.StatusForbidden, "only the reporter can change this report")
		return
	}
	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	closing, valid := req.wantsClose()
	if !valid {
		jsonError(w, http.StatusBadRequest, "status can only be set to closed")
		return
	}

	var changed bool
	var err error
	if closing {
		changed, err = store.SetFoundItemStatus(r.Context(), h.DB, item.ID, model.FoundStatusActive, model.FoundStatusClosed)
	} else {
		date, msg := req.normalize(time.Now())
		if msg != "" {
			jsonError(w, http.StatusBadRequest, msg)
			return
		}
		changed, err = store.UpdateFoundItem(r.Context(), h.DB, &model.FoundItem{
			ID:          item.ID,
			Category:    req.Category,
			ItemName:    req.ItemName,
			Brand:       req.Brand,
			Color:       req.Color,
			Location:    req.Location,
			DateFound:   date,
			Description: req.Description,
		})
	}
	if err != nil {
		slog.Error("updating found item", "item", item.ID, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update found item")
		return
	}
	if !changed && closing {
		jsonError(w, http.StatusConflict, "only active reports can be closed")
		return
	}
	if !changed {
		jsonError(w, http.StatusConflict, "only unmatched active reports can be edited")
		return
	}
	if closing {
		slog.Info("found item closed", "item", item.ReferenceID)
	}

	item, err = store.GetFoundItem(r.Context(), h.DB, item.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get found item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// UploadImage handles PUT /api/found-items/{id}/image.
func (h *FoundItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	photo, ok := receivePhoto(w, r)
	if !ok {
		return
	}
	if err := store.SetFoundItemImage(r.Context(), h.DB, item.ID, photo.Data, photo.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/found-items/{id}/image.
func (h *FoundItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	data, mime, err := store.GetFoundItemImage(r.Context(), h.DB, item.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	servePhoto(w, data, mime)
}
