// Package service coordinates live games: key issuance, the
// submit-orders barrier, turn processing, replay logging and rating
// updates when a game ends.
package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/stratagem/api/internal/auth"
	"github.com/freeeve/stratagem/api/internal/rating"
	"github.com/freeeve/stratagem/api/internal/replay"
	"github.com/freeeve/stratagem/api/pkg/stratagem"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is already over")
	ErrEliminated   = errors.New("player is eliminated")
	ErrSpectator    = errors.New("spectator keys cannot act")
)

// Event types pushed to WebSocket subscribers.
const (
	EventPlayerSubmitted = "player_submitted"
	EventTurnProcessed   = "turn_processed"
	EventGameEnded       = "game_ended"
)

// GameInstance is one hosted game plus its coordination state.
type GameInstance struct {
	mu sync.Mutex

	ID           string
	Game         *stratagem.Game
	PlayerKeys   map[string]string // player id -> bearer key
	SpectatorKey string
	CreatedAt    time.Time

	pending      map[string]*stratagem.OrderSet
	pendingDiplo map[string]*stratagem.DiplomacyOrder
	turnLog      []replay.TurnEntry
	rated        bool
}

// SubmitResult is the outcome of an order submission or a forced
// process. Status is "waiting" until the barrier releases, then
// "turn_processed".
type SubmitResult struct {
	Status       string   `json:"status"`
	Submitted    []string `json:"submitted,omitempty"`
	Need         []string `json:"need,omitempty"`
	Turn         int      `json:"turn,omitempty"`
	Combats      int      `json:"combats,omitempty"`
	Eliminations []string `json:"eliminations,omitempty"`
	Winner       string   `json:"winner,omitempty"`
	Events       []string `json:"events,omitempty"`
}

// GameSummary is one row of the game listing.
type GameSummary struct {
	GameID     string    `json:"game_id"`
	Players    []string  `json:"players"`
	Turn       int       `json:"turn"`
	MaxTurns   int       `json:"max_turns"`
	Winner     string    `json:"winner,omitempty"`
	Submitted  []string  `json:"submitted"`
	CreatedAt  time.Time `json:"created_at"`
	NumPlayers int       `json:"num_players"`
}

// CreatedGame is the response to game creation; keys are returned
// exactly once, here.
type CreatedGame struct {
	GameID       string            `json:"game_id"`
	PlayerKeys   map[string]string `json:"player_keys"`
	SpectatorKey string            `json:"spectator_key"`
	Players      []string          `json:"players"`
}

// GameService hosts games in memory and wires them to the replay
// store, the rating store and the broadcast hub.
type GameService struct {
	mu    sync.RWMutex
	games map[string]*GameInstance

	keys        *auth.KeyIssuer
	replays     *replay.Store
	ratings     *rating.Store
	broadcaster Broadcaster
}

// NewGameService creates a GameService.
func NewGameService(keys *auth.KeyIssuer, replays *replay.Store, ratings *rating.Store, b Broadcaster) *GameService {
	if b == nil {
		b = NoopBroadcaster{}
	}
	return &GameService{
		games:       make(map[string]*GameInstance),
		keys:        keys,
		replays:     replays,
		ratings:     ratings,
		broadcaster: b,
	}
}

// CreateGame starts a new game and mints its keys.
func (s *GameService) CreateGame(numPlayers int, seed int64, maxTurns int, civs []stratagem.Civ) (*CreatedGame, error) {
	g, err := stratagem.NewGame(numPlayers, seed, civs)
	if err != nil {
		return nil, err
	}
	if maxTurns > 0 {
		g.MaxTurns = maxTurns
	}

	gameID := uuid.NewString()[:8]
	playerIDs := playerIDsOf(g)
	keys, spectator, err := s.keys.IssueGameKeys(gameID, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("issue keys for %s: %w", gameID, err)
	}

	inst := &GameInstance{
		ID:           gameID,
		Game:         g,
		PlayerKeys:   keys,
		SpectatorKey: spectator,
		CreatedAt:    time.Now(),
		pending:      make(map[string]*stratagem.OrderSet),
		pendingDiplo: make(map[string]*stratagem.DiplomacyOrder),
	}
	inst.turnLog = append(inst.turnLog, replay.TurnEntry{
		Turn:   0,
		Events: []string{"Game created"},
		State:  g.GetFullState(),
	})

	s.mu.Lock()
	s.games[gameID] = inst
	s.mu.Unlock()

	if err := s.saveReplay(inst); err != nil {
		log.Error().Err(err).Str("gameId", gameID).Msg("Failed to save initial replay")
	}
	log.Info().Str("gameId", gameID).Int("players", numPlayers).Msg("Game created")

	return &CreatedGame{
		GameID:       gameID,
		PlayerKeys:   keys,
		SpectatorKey: spectator,
		Players:      playerIDs,
	}, nil
}

// Authorize resolves a bearer key to a player id for a game. The key
// must be exactly one of the keys issued for that game; spectator
// keys resolve to auth.SpectatorID.
func (s *GameService) Authorize(gameID, key string) (string, error) {
	inst, err := s.instance(gameID)
	if err != nil {
		return "", err
	}
	if key == inst.SpectatorKey {
		return auth.SpectatorID, nil
	}
	for pid, k := range inst.PlayerKeys {
		if key == k {
			return pid, nil
		}
	}
	return "", auth.ErrInvalidKey
}

// PlayerState returns the fog-of-war view for one player.
func (s *GameService) PlayerState(gameID, playerID string) (*stratagem.PlayerView, error) {
	inst, err := s.instance(gameID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if _, ok := inst.Game.Players[playerID]; !ok {
		return nil, auth.ErrInvalidKey
	}
	view := inst.Game.PlayerView(playerID)
	view.GameID = inst.ID
	return view, nil
}

// SpectatorView is the live omniscient snapshot. Diplomacy is limited
// to public messages; private press only surfaces in replays.
type SpectatorView struct {
	*stratagem.FullState
	Diplomacy []stratagem.Message `json:"diplomacy"`
}

// SpectatorState returns the omniscient live view.
func (s *GameService) SpectatorState(gameID string) (*SpectatorView, error) {
	inst, err := s.instance(gameID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return &SpectatorView{
		FullState: inst.Game.GetFullState(),
		Diplomacy: inst.Game.AllMessages(-1, true),
	}, nil
}

// SubmitOrders records a player's orders for the current turn.
// Resubmission replaces the previous set. When every living player
// has submitted, the turn is processed before returning.
func (s *GameService) SubmitOrders(gameID, playerID string, orders *stratagem.OrderSet) (*SubmitResult, error) {
	inst, err := s.instance(gameID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if err := s.checkActing(inst, playerID); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = &stratagem.OrderSet{}
	}
	orders.PlayerID = playerID
	inst.pending[playerID] = orders

	submitted, need := inst.barrier()
	if len(need) > 0 {
		s.broadcaster.BroadcastGameEvent(inst.ID, EventPlayerSubmitted, map[string]any{
			"player_id": playerID,
			"submitted": submitted,
			"need":      need,
		})
		return &SubmitResult{Status: "waiting", Submitted: submitted, Need: need}, nil
	}
	return s.processLocked(inst)
}

// SubmitDiplomacy records diplomacy separately from orders. It is
// merged into the player's order set when the turn resolves and does
// not count toward the barrier.
func (s *GameService) SubmitDiplomacy(gameID, playerID string, d *stratagem.DiplomacyOrder) error {
	inst, err := s.instance(gameID)
	if err != nil {
		return err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if err := s.checkActing(inst, playerID); err != nil {
		return err
	}
	inst.pendingDiplo[playerID] = d
	return nil
}

// ForceProcess resolves the turn with whatever orders are pending.
// Players who have not submitted simply hold.
func (s *GameService) ForceProcess(gameID string) (*SubmitResult, error) {
	inst, err := s.instance(gameID)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if inst.Game.Winner != "" {
		return nil, ErrGameOver
	}
	return s.processLocked(inst)
}

// Replay returns the persisted replay document for a game, finished
// or live.
func (s *GameService) Replay(gameID string) (*replay.Document, error) {
	doc, err := s.replays.Load(gameID)
	if err != nil {
		return nil, ErrGameNotFound
	}
	return doc, nil
}

// ListGames returns a summary of every hosted game, newest first.
func (s *GameService) ListGames() []GameSummary {
	s.mu.RLock()
	insts := make([]*GameInstance, 0, len(s.games))
	for _, inst := range s.games {
		insts = append(insts, inst)
	}
	s.mu.RUnlock()

	sort.Slice(insts, func(i, j int) bool { return insts[i].CreatedAt.After(insts[j].CreatedAt) })

	out := make([]GameSummary, 0, len(insts))
	for _, inst := range insts {
		inst.mu.Lock()
		submitted, _ := inst.barrier()
		out = append(out, GameSummary{
			GameID:     inst.ID,
			Players:    playerIDsOf(inst.Game),
			Turn:       inst.Game.Turn,
			MaxTurns:   inst.Game.MaxTurns,
			Winner:     inst.Game.Winner,
			Submitted:  submitted,
			CreatedAt:  inst.CreatedAt,
			NumPlayers: len(inst.Game.Players),
		})
		inst.mu.Unlock()
	}
	return out
}

func (s *GameService) instance(gameID string) (*GameInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return inst, nil
}

// checkActing rejects actions from spectators, finished games and
// eliminated players. Caller holds inst.mu.
func (s *GameService) checkActing(inst *GameInstance, playerID string) error {
	if playerID == auth.SpectatorID {
		return ErrSpectator
	}
	if inst.Game.Winner != "" {
		return ErrGameOver
	}
	p, ok := inst.Game.Players[playerID]
	if !ok {
		return auth.ErrInvalidKey
	}
	if !p.Alive {
		return ErrEliminated
	}
	return nil
}

// barrier reports which living players have submitted and who is
// still needed. Caller holds inst.mu.
func (inst *GameInstance) barrier() (submitted, need []string) {
	for _, pid := range inst.Game.AlivePlayerIDs() {
		if _, ok := inst.pending[pid]; ok {
			submitted = append(submitted, pid)
		} else {
			need = append(need, pid)
		}
	}
	return submitted, need
}

// processLocked resolves the turn, logs it, saves the replay and
// finalizes ratings if the game just ended. Caller holds inst.mu.
func (s *GameService) processLocked(inst *GameInstance) (*SubmitResult, error) {
	orders := make(map[string]*stratagem.OrderSet, len(inst.pending))
	for pid, o := range inst.pending {
		orders[pid] = o
	}
	for pid, d := range inst.pendingDiplo {
		o, ok := orders[pid]
		if !ok {
			o = &stratagem.OrderSet{PlayerID: pid}
			orders[pid] = o
		}
		if o.Diplomacy == nil {
			o.Diplomacy = d
		}
	}

	result := inst.Game.ProcessTurn(orders)
	inst.pending = make(map[string]*stratagem.OrderSet)
	inst.pendingDiplo = make(map[string]*stratagem.DiplomacyOrder)

	inst.turnLog = append(inst.turnLog, replay.TurnEntry{
		Turn:         result.Turn,
		Events:       result.Events,
		Combats:      combatSummaries(result.Combats),
		Income:       result.Income,
		Eliminations: result.Eliminations,
		Winner:       result.Winner,
		State:        inst.Game.GetFullState(),
	})
	if err := s.saveReplay(inst); err != nil {
		log.Error().Err(err).Str("gameId", inst.ID).Msg("Failed to save replay")
	}

	log.Info().
		Str("gameId", inst.ID).
		Int("turn", result.Turn).
		Int("combats", len(result.Combats)).
		Str("winner", result.Winner).
		Msg("Turn processed")

	out := &SubmitResult{
		Status:       "turn_processed",
		Turn:         result.Turn,
		Combats:      len(result.Combats),
		Eliminations: result.Eliminations,
		Winner:       result.Winner,
		Events:       result.Events,
	}

	if result.Winner != "" && !inst.rated {
		inst.rated = true
		placements := inst.Game.Placements()
		if _, err := s.ratings.RecordMatch(placements, inst.Game.Turn, inst.ID+".json"); err != nil {
			log.Error().Err(err).Str("gameId", inst.ID).Msg("Failed to record match ratings")
		}
		s.broadcaster.BroadcastGameEvent(inst.ID, EventGameEnded, map[string]any{
			"winner":     result.Winner,
			"placements": placements,
			"turn":       result.Turn,
		})
	} else {
		s.broadcaster.BroadcastGameEvent(inst.ID, EventTurnProcessed, map[string]any{
			"turn":         result.Turn,
			"combats":      len(result.Combats),
			"eliminations": result.Eliminations,
			"events":       result.Events,
		})
	}
	return out, nil
}

// saveReplay snapshots the instance's log to disk. Caller holds
// inst.mu (or the instance is not yet published).
func (s *GameService) saveReplay(inst *GameInstance) error {
	g := inst.Game
	civs := make(map[string]stratagem.Civ, len(g.Players))
	for pid, p := range g.Players {
		civs[pid] = p.Civ
	}
	return s.replays.Save(&replay.Document{
		GameID:    inst.ID,
		Players:   playerIDsOf(g),
		Civs:      civs,
		Winner:    g.Winner,
		Turns:     inst.turnLog,
		Diplomacy: g.AllMessages(-1, false),
		Treaties:  g.TreatyList(),
	})
}

func combatSummaries(combats []stratagem.CombatResult) []replay.CombatSummary {
	if len(combats) == 0 {
		return nil
	}
	out := make([]replay.CombatSummary, len(combats))
	for i, c := range combats {
		out[i] = replay.CombatSummary{Province: c.Province, Winner: c.Winner, Sides: c.Sides, Losses: c.Losses}
	}
	return out
}

func playerIDsOf(g *stratagem.Game) []string {
	ids := make([]string, 0, len(g.Players))
	for pid := range g.Players {
		ids = append(ids, pid)
	}
	sort.Strings(ids)
	return ids
}
