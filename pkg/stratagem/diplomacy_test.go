package stratagem

import "testing"

func TestProposalLifecycle(t *testing.T) {
	g, _ := NewGame(4, 0, nil)

	g.ProcessTurn(map[string]*OrderSet{
		"p0": {PlayerID: "p0", Diplomacy: &DiplomacyOrder{
			Proposals: []ProposalOrder{{Target: "p1", Type: "nap"}},
		}},
	})

	if len(g.Proposals) != 1 {
		t.Fatalf("proposals = %d, want 1", len(g.Proposals))
	}
	tp := g.Proposals[0]
	if tp.Status != ProposalPending || tp.Proposer != "p0" || tp.Target != "p1" {
		t.Fatalf("proposal = %+v", tp)
	}

	// The target sees it pending; others do not.
	if got := len(g.PlayerView("p1").Diplomacy.PendingProposals); got != 1 {
		t.Errorf("p1 pending = %d, want 1", got)
	}
	if got := len(g.PlayerView("p2").Diplomacy.PendingProposals); got != 0 {
		t.Errorf("p2 pending = %d, want 0", got)
	}

	g.ProcessTurn(map[string]*OrderSet{
		"p1": {PlayerID: "p1", Diplomacy: &DiplomacyOrder{AcceptTreaties: []string{tp.ID}}},
	})

	if tp.Status != ProposalAccepted {
		t.Errorf("status = %s, want accepted", tp.Status)
	}
	if len(g.Treaties) != 1 {
		t.Fatalf("treaties = %d, want 1", len(g.Treaties))
	}
	treaty := g.Treaties[0]
	if treaty.Type != NonAggression || !treaty.Active() {
		t.Errorf("treaty = %+v", treaty)
	}

	// Accepting again must not mint a second treaty.
	g.ProcessTurn(map[string]*OrderSet{
		"p1": {PlayerID: "p1", Diplomacy: &DiplomacyOrder{AcceptTreaties: []string{tp.ID}}},
	})
	if len(g.Treaties) != 1 {
		t.Errorf("terminal proposal accepted twice")
	}
}

func TestRejectIsTerminal(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	g.ProcessTurn(map[string]*OrderSet{
		"p0": {PlayerID: "p0", Diplomacy: &DiplomacyOrder{
			Proposals: []ProposalOrder{{Target: "p1", Type: "alliance"}},
		}},
	})
	tp := g.Proposals[0]

	g.ProcessTurn(map[string]*OrderSet{
		"p1": {PlayerID: "p1", Diplomacy: &DiplomacyOrder{RejectTreaties: []string{tp.ID}}},
	})
	if tp.Status != ProposalRejected {
		t.Fatalf("status = %s, want rejected", tp.Status)
	}

	g.ProcessTurn(map[string]*OrderSet{
		"p1": {PlayerID: "p1", Diplomacy: &DiplomacyOrder{AcceptTreaties: []string{tp.ID}}},
	})
	if tp.Status != ProposalRejected || len(g.Treaties) != 0 {
		t.Error("rejected proposal must stay terminal")
	}
}

func TestBreakTreatyTrustPenalty(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	g.ProcessTurn(map[string]*OrderSet{
		"p0": {PlayerID: "p0", Diplomacy: &DiplomacyOrder{
			Proposals: []ProposalOrder{{Target: "p1", Type: "alliance"}},
		}},
	})
	g.ProcessTurn(map[string]*OrderSet{
		"p1": {PlayerID: "p1", Diplomacy: &DiplomacyOrder{AcceptTreaties: []string{g.Proposals[0].ID}}},
	})
	treaty := g.Treaties[0]

	g.ProcessTurn(map[string]*OrderSet{
		"p1": {PlayerID: "p1", Diplomacy: &DiplomacyOrder{BreakTreaties: []string{treaty.ID}}},
	})

	if treaty.Active() || treaty.BrokenBy != "p1" {
		t.Errorf("treaty = %+v, want broken by p1", treaty)
	}
	if g.TrustPenalties["p1"] != 1 {
		t.Errorf("trust penalty = %d, want 1", g.TrustPenalties["p1"])
	}
	// The trust table is public.
	if g.PlayerView("p3").Diplomacy.Trust["p1"] != 1 {
		t.Error("trust penalty not visible to other players")
	}
	// Only a party can break, and only once.
	g.ProcessTurn(map[string]*OrderSet{
		"p1": {PlayerID: "p1", Diplomacy: &DiplomacyOrder{BreakTreaties: []string{treaty.ID}}},
	})
	if g.TrustPenalties["p1"] != 1 {
		t.Error("breaking a dead treaty must not accrue penalties")
	}
}

func TestMessageVisibility(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	g.ProcessTurn(map[string]*OrderSet{
		"p0": {PlayerID: "p0", Diplomacy: &DiplomacyOrder{Messages: []MessageOrder{
			{To: "p1", Content: "secret pact"},
			{To: "public", Content: "hello all"},
		}}},
	})

	for _, tt := range []struct {
		viewer string
		want   int
	}{
		{"p0", 2}, {"p1", 2}, {"p2", 1}, {"p3", 1},
	} {
		got := len(g.PlayerView(tt.viewer).Diplomacy.Messages)
		if got != tt.want {
			t.Errorf("%s sees %d messages, want %d", tt.viewer, got, tt.want)
		}
	}

	for _, m := range g.PlayerView("p2").Diplomacy.Messages {
		if !m.Public {
			t.Errorf("p2 sees private message %+v", m)
		}
	}

	// Spectator live mode: public only. Replay: everything.
	if got := len(g.AllMessages(-1, true)); got != 1 {
		t.Errorf("public messages = %d, want 1", got)
	}
	if got := len(g.AllMessages(-1, false)); got != 2 {
		t.Errorf("all messages = %d, want 2", got)
	}
}

func TestSelfProposalDropped(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	g.ProcessTurn(map[string]*OrderSet{
		"p0": {PlayerID: "p0", Diplomacy: &DiplomacyOrder{
			Proposals: []ProposalOrder{
				{Target: "p0", Type: "alliance"},
				{Target: "nobody", Type: "alliance"},
				{Target: "p1", Type: "bogus"},
			},
		}},
	})
	if len(g.Proposals) != 0 {
		t.Errorf("invalid proposals accepted: %d", len(g.Proposals))
	}
}
