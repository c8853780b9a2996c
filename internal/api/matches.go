package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/service"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/store"
)

// MatchesHandler exposes matches and the ownership verification flow.
type MatchesHandler struct {
	DB  *sql.DB
	Svc *service.Service
}

type answersRequest struct {
	Answers []string `json:"answers"`
}

// List handles GET /api/matches. Administrators may pass all=1 and an
// optional status filter to see every match.
func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		matches []model.Match
		err     error
	)
	a := actor(r)
	if a.Admin && r.URL.Query().Get("all") == "1" {
		matches, err = store.ListMatches(r.Context(), h.DB, r.URL.Query().Get("status"))
	} else {
		matches, err = h.Svc.ListMatches(r.Context(), a)
	}
	if err != nil {
		slog.Error("listing matches", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list matches")
		return
	}
	if matches == nil {
		matches = []model.Match{}
	}
	jsonResponse(w, http.StatusOK, matches)
}

// Get handles GET /api/matches/{id}.
func (h *MatchesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	detail, err := h.Svc.MatchView(r.Context(), id, actor(r))
	if err != nil {
		serviceError(w, "loading match", err)
		return
	}
	jsonResponse(w, http.StatusOK, detail)
}

// Questions handles GET /api/matches/{id}/questions.
func (h *MatchesHandler) Questions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	questions, err := h.Svc.GetQuestions(r.Context(), id, actor(r))
	if err != nil {
		serviceError(w, "generating questions", err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"match_id": id, "questions": questions})
}

// Answers handles POST /api/matches/{id}/answers.
func (h *MatchesHandler) Answers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	var req answersRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	answered := 0
	for i := range req.Answers {
		req.Answers[i] = strings.TrimSpace(req.Answers[i])
		if req.Answers[i] != "" {
			answered++
		}
	}
	if answered == 0 {
		jsonError(w, http.StatusBadRequest, "answers required")
		return
	}

	out, err := h.Svc.SubmitAnswers(r.Context(), id, actor(r), req.Answers)
	if err != nil {
		serviceError(w, "verifying answers", err)
		return
	}
	jsonResponse(w, http.StatusOK, out)
}

// Reject handles POST /api/matches/{id}/reject.
func (h *MatchesHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "rejecting match", h.Svc.RejectMatch)
}

// Return handles POST /api/matches/{id}/return.
func (h *MatchesHandler) Return(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "confirming return", h.Svc.ConfirmReturn)
}

func (h *MatchesHandler) transition(w http.ResponseWriter, r *http.Request, op string,
	fn func(ctx context.Context, id int64, a service.Actor) (*model.Match, error)) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	m, err := fn(r.Context(), id, actor(r))
	if err != nil {
		serviceError(w, op, err)
		return
	}
	jsonResponse(w, http.StatusOK, m)
}
