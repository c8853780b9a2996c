package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/imaging"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/matching"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
)

const dateLayout = "2006-01-02"

// reportRequest is the body shared by lost and found submissions.
type reportRequest struct {
	Category       string `json:"category"`
	ItemName       string `json:"item_name"`
	Brand          string `json:"brand"`
	Color          string `json:"color"`
	Location       string `json:"location"`
	Date           string `json:"date"`
	Description    string `json:"description"`
	AdditionalInfo string `json:"additional_info"`
}

// normalize trims the fields, maps the category onto the canonical
// vocabulary and parses the date. It returns a client-facing message when
// the report is unusable.
func (req *reportRequest) normalize(now time.Time) (*time.Time, string) {
	for _, f := range []*string{&req.Category, &req.ItemName, &req.Brand, &req.Color,
		&req.Location, &req.Date, &req.Description, &req.AdditionalInfo} {
		*f = strings.TrimSpace(*f)
	}

	if req.Category == "" || req.ItemName == "" || req.Color == "" || req.Location == "" || req.Description == "" {
		return nil, "category, item_name, color, location and description required"
	}
	category, ok := canonical(matching.Categories, req.Category)
	if !ok {
		return nil, "unknown category"
	}
	req.Category = category
	if len(req.Description) > model.MaxDescriptionLength || len(req.AdditionalInfo) > model.MaxDescriptionLength {
		return nil, "description too long"
	}

	if req.Date == "" {
		return nil, ""
	}
	d, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, "date must be YYYY-MM-DD"
	}
	// Compare calendar days in the server's zone, not instants.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(today) {
		return nil, "date cannot be in the future"
	}
	return &d, ""
}

// updateRequest is the body of PUT on a report. A status of "closed"
// withdraws the report and the other fields are ignored.
type updateRequest struct {
	reportRequest
	Status string `json:"status"`
}

// wantsClose reports whether the update closes the report. The second result
// is false for any status other than closed.
func (req *updateRequest) wantsClose() (closing, valid bool) {
	switch strings.ToLower(strings.TrimSpace(req.Status)) {
	case "":
		return false, true
	case model.LostStatusClosed:
		return true, true
	}
	return false, false
}

func canonical(options []string, value string) (string, bool) {
	for _, o := range options {
		if strings.EqualFold(o, value) {
			return o, true
		}
	}
	return "", false
}

// submitResponse pairs a created report with the matches it produced.
type submitResponse struct {
	Item    any                  `json:"item"`
	Matches []matching.Candidate `json:"matches"`
}

// canSee reports whether the caller filed the report or is an administrator.
func canSee(r *http.Request, reporterID int64) bool {
	a := actor(r)
	return a.UserID == reporterID || a.Admin
}

// listScope returns the reporter filter for list endpoints: the caller's
// own reports, or everything for an administrator passing all=1.
func listScope(r *http.Request) int64 {
	a := actor(r)
	if a.Admin && r.URL.Query().Get("all") == "1" {
		return 0
	}
	return a.UserID
}

// receivePhoto reads and normalises the "image" field of a multipart upload.
func receivePhoto(w http.ResponseWriter, r *http.Request) (*imaging.Photo, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return nil, false
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return nil, false
	}
	defer file.Close()

	photo, err := imaging.Process(file)
	switch {
	case errors.Is(err, imaging.ErrTooLarge):
		jsonError(w, http.StatusRequestEntityTooLarge, err.Error())
		return nil, false
	case errors.Is(err, imaging.ErrUnsupportedFormat):
		jsonError(w, http.StatusUnsupportedMediaType, err.Error())
		return nil, false
	case err != nil:
		slog.Warn("rejecting photo", "error", err)
		jsonError(w, http.StatusBadRequest, "could not read image")
		return nil, false
	}
	return photo, true
}

func servePhoto(w http.ResponseWriter, data []byte, mime string) {
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
