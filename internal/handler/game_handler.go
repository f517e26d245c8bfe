// Package handler wires HTTP and WebSocket endpoints to the game
// service. Handlers stay thin: decode, authorize, call the service,
// map sentinel errors to status codes.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/freeeve/stratagem/api/internal/auth"
	"github.com/freeeve/stratagem/api/internal/service"
	"github.com/freeeve/stratagem/api/pkg/stratagem"
)

// GameHandler handles game lifecycle and play endpoints.
type GameHandler struct {
	svc *service.GameService
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(svc *service.GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

type createGameRequest struct {
	NumPlayers int      `json:"num_players"`
	Seed       int64    `json:"seed,omitempty"`
	MaxTurns   int      `json:"max_turns,omitempty"`
	Civs       []string `json:"civs,omitempty"`
}

// CreateGame handles POST /games.
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.NumPlayers == 0 {
		req.NumPlayers = 4
	}

	var civs []stratagem.Civ
	for _, name := range req.Civs {
		c := stratagem.Civ(name)
		if !c.Valid() {
			writeError(w, http.StatusBadRequest, "unknown civ: "+name)
			return
		}
		civs = append(civs, c)
	}

	created, err := h.svc.CreateGame(req.NumPlayers, req.Seed, req.MaxTurns, civs)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListGames handles GET /games.
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"games": h.svc.ListGames()})
}

// GetState handles GET /games/{id}/state — the fog-of-war view for
// the player the bearer key names. Spectator keys belong on the
// spectator endpoint and are rejected here.
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	pid, ok := h.authorize(w, r, gameID)
	if !ok {
		return
	}
	if pid == auth.SpectatorID {
		writeError(w, http.StatusForbidden, "player key required")
		return
	}
	view, err := h.svc.PlayerState(gameID, pid)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetSpectator handles GET /games/{id}/spectator — the omniscient
// view, open to anyone. Live mode shows only public diplomacy;
// ?mode=replay returns the full replay document, private press
// included.
func (h *GameHandler) GetSpectator(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")

	if r.URL.Query().Get("mode") == "replay" {
		doc, err := h.svc.Replay(gameID)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
		return
	}

	state, err := h.svc.SpectatorState(gameID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SubmitOrders handles POST /games/{id}/orders.
func (h *GameHandler) SubmitOrders(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	pid, ok := h.authorize(w, r, gameID)
	if !ok {
		return
	}

	var orders stratagem.OrderSet
	if err := decodeJSON(r, &orders); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SubmitOrders(gameID, pid, &orders)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SubmitDiplomacy handles POST /games/{id}/diplomacy.
func (h *GameHandler) SubmitDiplomacy(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	pid, ok := h.authorize(w, r, gameID)
	if !ok {
		return
	}

	var diplo stratagem.DiplomacyOrder
	if err := decodeJSON(r, &diplo); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SubmitDiplomacy(gameID, pid, &diplo); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// ForceProcess handles POST /games/{id}/process — resolves the turn
// without waiting for the barrier. Meant for harnesses and timeouts.
func (h *GameHandler) ForceProcess(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ForceProcess(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetReplay handles GET /games/{id}/replay. Replays are public.
func (h *GameHandler) GetReplay(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Replay(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// GetCivs handles GET /civs.
func (h *GameHandler) GetCivs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"civs": stratagem.CivCatalog()})
}

// Health handles GET /healthz.
func (h *GameHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authorize resolves the request's bearer key against the game's
// issued keys. On failure it writes the error response and returns
// ok=false.
func (h *GameHandler) authorize(w http.ResponseWriter, r *http.Request, gameID string) (string, bool) {
	key := bearerKey(r)
	if key == "" {
		writeError(w, http.StatusUnauthorized, "missing game key")
		return "", false
	}
	pid, err := h.svc.Authorize(gameID, key)
	if err != nil {
		h.writeServiceError(w, err)
		return "", false
	}
	return pid, true
}

func (h *GameHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, auth.ErrInvalidKey):
		writeError(w, http.StatusForbidden, "invalid game key")
	case errors.Is(err, service.ErrSpectator):
		writeError(w, http.StatusForbidden, "spectator keys cannot act")
	case errors.Is(err, service.ErrGameOver):
		writeError(w, http.StatusBadRequest, "game is already over")
	case errors.Is(err, service.ErrEliminated):
		writeError(w, http.StatusBadRequest, "player is eliminated")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// bearerKey pulls the game key from the Authorization header, falling
// back to the ?key= query parameter for clients that cannot set
// headers.
func bearerKey(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if key, ok := strings.CutPrefix(h, "Bearer "); ok {
			return key
		}
		return h
	}
	return r.URL.Query().Get("key")
}
