package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/freeeve/stratagem/api/internal/rating"
)

// RankingHandler serves the persistent leaderboard and match history.
type RankingHandler struct {
	ratings *rating.Store
}

// NewRankingHandler creates a RankingHandler.
func NewRankingHandler(ratings *rating.Store) *RankingHandler {
	return &RankingHandler{ratings: ratings}
}

// GetRankings handles GET /rankings?limit=.
func (h *RankingHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	board, err := h.ratings.Leaderboard(queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rankings": board})
}

// GetProfile handles GET /rankings/{agent_id}.
func (h *RankingHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ratings.ProfileFor(r.PathValue("agent_id"))
	if err != nil {
		if errors.Is(err, rating.ErrUnknownAgent) {
			writeError(w, http.StatusNotFound, "agent not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// GetMatches handles GET /matches?limit=&offset=.
func (h *RankingHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.ratings.Matches(queryInt(r, "limit", 50), queryInt(r, "offset", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

// GetMatch handles GET /matches/{id}.
func (h *RankingHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := h.ratings.MatchFor(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, rating.ErrUnknownMatch) {
			writeError(w, http.StatusNotFound, "match not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
