package api

import (
	"net/http"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/matching"
)

type optionsResponse struct {
	Categories []string `json:"categories"`
	Colors     []string `json:"colors"`
	Locations  []string `json:"locations"`
}

// Options handles GET /api/options, the vocabularies offered by the
// report forms.
func Options(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, optionsResponse{
		Categories: matching.Categories,
		Colors:     matching.Colors,
		Locations:  matching.Locations,
	})
}
