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

// LostItemsHandler handles lost-item reports.
type LostItemsHandler struct {
	DB  *sql.DB
	Svc *service.Service
}

// Create handles POST /api/lost-items.
func (h *LostItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	item, matches, err := h.Svc.SubmitLost(r.Context(), &model.LostItem{
		UserID:         actor(r).UserID,
		Category:       req.Category,
		ItemName:       req.ItemName,
		Brand:          req.Brand,
		Color:          req.Color,
		Location:       req.Location,
		DateLost:       date,
		Description:    req.Description,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		serviceError(w, "reporting lost item", err)
		return
	}
	if matches == nil {
		matches = []matching.Candidate{}
	}
	jsonResponse(w, http.StatusCreated, submitResponse{Item: item, Matches: matches})
}

// List handles GET /api/lost-items.
func (h *LostItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListLostItems(r.Context(), h.DB, listScope(r), r.URL.Query().Get("status"))
	if err != nil {
		slog.Error("listing lost items", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list lost items")
		return
	}
	if items == nil {
		items = []model.LostItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// load fetches the report in the path and checks the caller may see it.
func (h *LostItemsHandler) load(w http.ResponseWriter, r *http.Request) (*model.LostItem, bool) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return nil, false
	}
	item, err := store.GetLostItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get lost item")
		return nil, false
	}
	if item == nil || !canSee(r, item.UserID) {
		jsonError(w, http.StatusNotFound, "lost item not found")
		return nil, false
	}
	return item, true
}

// Get handles GET /api/lost-items/{id}.
func (h *LostItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if item, ok := h.load(w, r); ok {
		jsonResponse(w, http.StatusOK, item)
	}
}

// Update handles PUT /api/lost-items/{id}. Only the reporter may change the
// report. Details are fixed once a match exists; closing stays possible while
// the report is searching.
func (h *LostItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
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
		changed, err = store.SetLostItemStatus(r.Context(), h.DB, item.ID, model.LostStatusSearching, model.LostStatusClosed)
	} else {
		date, msg := req.normalize(time.Now())
		if msg != "" {
			jsonError(w, http.StatusBadRequest, msg)
			return
		}
		changed, err = store.UpdateLostItem(r.Context(), h.DB, &model.LostItem{
			ID:             item.ID,
			Category:       req.Category,
			ItemName:       req.ItemName,
			Brand:          req.Brand,
			Color:          req.Color,
			Location:       req.Location,
			DateLost:       date,
			Description:    req.Description,
			AdditionalInfo: req.AdditionalInfo,
		})
	}
	if err != nil {
		slog.Error("updating lost item", "item", item.ID, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update lost item")
		return
	}
	if !changed && closing {
		jsonError(w, http.StatusConflict, "only searching reports can be closed")
		return
	}
	if !changed {
		jsonError(w, http.StatusConflict, "only unmatched searching reports can be edited")
		return
	}
	if closing {
		slog.Info("lost item closed", "item", item.ReferenceID)
	}

	item, err = store.GetLostItem(r.Context(), h.DB, item.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get lost item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// UploadImage handles PUT /api/lost-items/{id}/image.
func (h *LostItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	photo, ok := receivePhoto(w, r)
	if !ok {
		return
	}
	if err := store.SetLostItemImage(r.Context(), h.DB, item.ID, photo.Data, photo.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/lost-items/{id}/image.
func (h *LostItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	data, mime, err := store.GetLostItemImage(r.Context(), h.DB, item.ID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	servePhoto(w, data, mime)
}
