package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/freeeve/stratagem/api/internal/auth"
	"github.com/freeeve/stratagem/api/internal/rating"
	"github.com/freeeve/stratagem/api/internal/replay"
	"github.com/freeeve/stratagem/api/pkg/stratagem"
)

type recordedEvent struct {
	gameID    string
	eventType string
	data      any
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *recordingBroadcaster) BroadcastGameEvent(gameID, eventType string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{gameID, eventType, data})
}

func (b *recordingBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.eventType
	}
	return out
}

func newTestService(t *testing.T) (*GameService, *recordingBroadcaster) {
	t.Helper()
	replays, err := replay.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("replay store: %v", err)
	}
	ratings, err := rating.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("rating store: %v", err)
	}
	b := &recordingBroadcaster{}
	return NewGameService(auth.NewKeyIssuer("test-secret"), replays, ratings, b), b
}

func TestCreateGameIssuesKeys(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.CreateGame(4, 0, 0, nil)
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if len(created.Players) != 4 || len(created.PlayerKeys) != 4 || created.SpectatorKey == "" {
		t.Fatalf("created = %+v", created)
	}

	for pid, key := range created.PlayerKeys {
		got, err := svc.Authorize(created.GameID, key)
		if err != nil || got != pid {
			t.Errorf("Authorize(%s) = %s, %v", pid, got, err)
		}
	}
	if got, err := svc.Authorize(created.GameID, created.SpectatorKey); err != nil || got != auth.SpectatorID {
		t.Errorf("spectator authorize = %s, %v", got, err)
	}
	if _, err := svc.Authorize(created.GameID, "bogus"); !errors.Is(err, auth.ErrInvalidKey) {
		t.Errorf("bogus key err = %v", err)
	}
	if _, err := svc.Authorize("missing", created.SpectatorKey); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("unknown game err = %v", err)
	}
}

func TestSubmitBarrier(t *testing.T) {
	svc, b := newTestService(t)
	created, _ := svc.CreateGame(4, 0, 0, nil)

	res, err := svc.SubmitOrders(created.GameID, "p0", &stratagem.OrderSet{})
	if err != nil {
		t.Fatalf("SubmitOrders: %v", err)
	}
	if res.Status != "waiting" || len(res.Submitted) != 1 || len(res.Need) != 3 {
		t.Fatalf("after p0: %+v", res)
	}

	svc.SubmitOrders(created.GameID, "p1", &stratagem.OrderSet{})
	res, _ = svc.SubmitOrders(created.GameID, "p2", &stratagem.OrderSet{})
	if res.Status != "waiting" || len(res.Need) != 1 || res.Need[0] != "p3" {
		t.Fatalf("after p2: %+v", res)
	}

	res, err = svc.SubmitOrders(created.GameID, "p3", &stratagem.OrderSet{})
	if err != nil {
		t.Fatalf("final submit: %v", err)
	}
	if res.Status != "turn_processed" || res.Turn != 1 {
		t.Fatalf("final: %+v", res)
	}

	types := b.types()
	if len(types) != 4 || types[3] != EventTurnProcessed {
		t.Errorf("broadcast types = %v", types)
	}
	for _, typ := range types[:3] {
		if typ != EventPlayerSubmitted {
			t.Errorf("broadcast types = %v", types)
		}
	}
}

func TestResubmissionReplaces(t *testing.T) {
	svc, _ := newTestService(t)
	created, _ := svc.CreateGame(2, 0, 0, nil)

	svc.SubmitOrders(created.GameID, "p0", &stratagem.OrderSet{
		Research: &stratagem.ResearchOrder{Tech: "agr"},
	})
	res, _ := svc.SubmitOrders(created.GameID, "p0", &stratagem.OrderSet{})
	if res.Status != "waiting" || len(res.Submitted) != 1 {
		t.Fatalf("resubmit: %+v", res)
	}

	res, err := svc.SubmitOrders(created.GameID, "p1", &stratagem.OrderSet{})
	if err != nil || res.Status != "turn_processed" {
		t.Fatalf("process: %+v, %v", res, err)
	}
	state, _ := svc.SpectatorState(created.GameID)
	if len(state.Players["p0"].Techs) != 0 {
		t.Error("replaced orders should drop the research")
	}
}

func TestForceProcess(t *testing.T) {
	svc, _ := newTestService(t)
	created, _ := svc.CreateGame(4, 0, 0, nil)

	svc.SubmitOrders(created.GameID, "p0", &stratagem.OrderSet{})
	res, err := svc.ForceProcess(created.GameID)
	if err != nil {
		t.Fatalf("ForceProcess: %v", err)
	}
	if res.Status != "turn_processed" || res.Turn != 1 {
		t.Fatalf("res = %+v", res)
	}
}

func TestFinishedGameRejectsOrders(t *testing.T) {
	svc, b := newTestService(t)
	created, _ := svc.CreateGame(4, 0, 1, nil)

	// A one-turn game ends at the turn limit with a score winner.
	res, err := svc.ForceProcess(created.GameID)
	if err != nil || res.Winner == "" {
		t.Fatalf("res = %+v, %v", res, err)
	}

	if _, err := svc.SubmitOrders(created.GameID, "p0", &stratagem.OrderSet{}); !errors.Is(err, ErrGameOver) {
		t.Errorf("submit after win err = %v", err)
	}
	if _, err := svc.ForceProcess(created.GameID); !errors.Is(err, ErrGameOver) {
		t.Errorf("process after win err = %v", err)
	}

	types := b.types()
	if len(types) == 0 || types[len(types)-1] != EventGameEnded {
		t.Errorf("broadcast types = %v", types)
	}
}

func TestGameEndRecordsRatings(t *testing.T) {
	svc, _ := newTestService(t)
	created, _ := svc.CreateGame(4, 0, 1, nil)

	res, _ := svc.ForceProcess(created.GameID)
	if res.Winner == "" {
		t.Fatal("expected a winner at the turn limit")
	}

	board, err := svc.ratings.Leaderboard(0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board) != 4 {
		t.Fatalf("leaderboard has %d entries", len(board))
	}
	if board[0].AgentID != res.Winner || board[0].Wins != 1 {
		t.Errorf("top of board = %+v, winner %s", board[0], res.Winner)
	}

	matches, _ := svc.ratings.Matches(0, 0)
	if len(matches) != 1 || matches[0].Winner != res.Winner || matches[0].ReplayFile != created.GameID+".json" {
		t.Errorf("matches = %+v", matches)
	}
}

func TestEliminatedPlayerRejected(t *testing.T) {
	svc, _ := newTestService(t)
	created, _ := svc.CreateGame(4, 0, 0, nil)

	svc.mu.RLock()
	inst := svc.games[created.GameID]
	svc.mu.RUnlock()
	inst.Game.Players["p3"].Alive = false

	if _, err := svc.SubmitOrders(created.GameID, "p3", &stratagem.OrderSet{}); !errors.Is(err, ErrEliminated) {
		t.Errorf("err = %v, want ErrEliminated", err)
	}

	// The barrier only waits on the living.
	svc.SubmitOrders(created.GameID, "p0", &stratagem.OrderSet{})
	svc.SubmitOrders(created.GameID, "p1", &stratagem.OrderSet{})
	res, err := svc.SubmitOrders(created.GameID, "p2", &stratagem.OrderSet{})
	if err != nil || res.Status != "turn_processed" {
		t.Errorf("res = %+v, %v", res, err)
	}
}

func TestSpectatorCannotAct(t *testing.T) {
	svc, _ := newTestService(t)
	created, _ := svc.CreateGame(2, 0, 0, nil)

	if _, err := svc.SubmitOrders(created.GameID, auth.SpectatorID, &stratagem.OrderSet{}); !errors.Is(err, ErrSpectator) {
		t.Errorf("err = %v, want ErrSpectator", err)
	}
	if err := svc.SubmitDiplomacy(created.GameID, auth.SpectatorID, &stratagem.DiplomacyOrder{}); !errors.Is(err, ErrSpectator) {
		t.Errorf("err = %v, want ErrSpectator", err)
	}
}

func TestDiplomacyMergesWithoutTrippingBarrier(t *testing.T) {
	svc, _ := newTestService(t)
	created, _ := svc.CreateGame(2, 0, 0, nil)

	err := svc.SubmitDiplomacy(created.GameID, "p0", &stratagem.DiplomacyOrder{
		Messages: []stratagem.MessageOrder{{To: "public", Content: "greetings"}},
	})
	if err != nil {
		t.Fatalf("SubmitDiplomacy: %v", err)
	}

	res, _ := svc.SubmitOrders(created.GameID, "p1", &stratagem.OrderSet{})
	if res.Status != "waiting" || len(res.Need) != 1 || res.Need[0] != "p0" {
		t.Fatalf("diplomacy tripped the barrier: %+v", res)
	}

	res, err = svc.SubmitOrders(created.GameID, "p0", &stratagem.OrderSet{})
	if err != nil || res.Status != "turn_processed" {
		t.Fatalf("res = %+v, %v", res, err)
	}
	found := false
	for _, ev := range res.Events {
		if ev == "💬 p0 (public): greetings" {
			found = true
		}
	}
	if !found {
		t.Errorf("message event missing from %v", res.Events)
	}
}

func TestPlayerStateAndReplay(t *testing.T) {
	svc, _ := newTestService(t)
	created, _ := svc.CreateGame(4, 0, 0, nil)

	view, err := svc.PlayerState(created.GameID, "p0")
	if err != nil {
		t.Fatalf("PlayerState: %v", err)
	}
	if view.GameID != created.GameID || view.Player != "p0" || view.Turn != 0 {
		t.Errorf("view = %+v", view)
	}
	if _, err := svc.PlayerState(created.GameID, "nobody"); !errors.Is(err, auth.ErrInvalidKey) {
		t.Errorf("unknown player err = %v", err)
	}

	svc.ForceProcess(created.GameID)

	doc, err := svc.Replay(created.GameID)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(doc.Turns) != 2 || doc.Turns[0].Turn != 0 || doc.Turns[1].Turn != 1 {
		t.Errorf("replay turns = %d", len(doc.Turns))
	}
	if doc.Turns[1].State == nil {
		t.Error("turn snapshot missing")
	}
}

func TestListGames(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.CreateGame(2, 0, 0, nil)
	b, _ := svc.CreateGame(4, 0, 0, nil)

	games := svc.ListGames()
	if len(games) != 2 {
		t.Fatalf("len = %d", len(games))
	}
	seen := map[string]int{}
	for _, g := range games {
		seen[g.GameID] = g.NumPlayers
	}
	if seen[a.GameID] != 2 || seen[b.GameID] != 4 {
		t.Errorf("games = %+v", games)
	}
}
