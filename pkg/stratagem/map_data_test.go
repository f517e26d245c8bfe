package stratagem

import "testing"

func TestNewGameMap(t *testing.T) {
	g, err := NewGame(4, 0, nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	if len(g.Provinces) != NumProvinces {
		t.Errorf("expected %d provinces, got %d", NumProvinces, len(g.Provinces))
	}
	if len(g.Players) != 4 {
		t.Errorf("expected 4 players, got %d", len(g.Players))
	}
}

func TestAdjacencySymmetry(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	for id, p := range g.Provinces {
		for _, adj := range p.Adjacent {
			other, ok := g.Provinces[adj]
			if !ok {
				t.Fatalf("%s lists unknown neighbor %s", id, adj)
			}
			if !contains(other.Adjacent, id) {
				t.Errorf("adjacency not symmetric: %s -> %s but not back", id, adj)
			}
		}
	}
}

func TestStartingPositions(t *testing.T) {
	g, _ := NewGame(4, 0, nil)

	tests := []struct {
		pid     string
		capital string
		second  string
	}{
		{"p0", "frostgate", "snowhaven"},
		{"p1", "stormwatch", "windcrest"},
		{"p2", "moonhaven", "silverlake"},
		{"p3", "fireridge", "emberveil"},
	}
	for _, tt := range tests {
		cap := g.Provinces[tt.capital]
		if cap.Owner != tt.pid {
			t.Errorf("%s: capital %s owned by %q", tt.pid, tt.capital, cap.Owner)
		}
		if len(cap.UnitIDs) != 3 {
			t.Errorf("%s: capital has %d units, want 3", tt.pid, len(cap.UnitIDs))
		}
		second := g.Provinces[tt.second]
		if second.Owner != tt.pid {
			t.Errorf("%s: second province %s owned by %q", tt.pid, tt.second, second.Owner)
		}
		if len(second.UnitIDs) != 1 {
			t.Errorf("%s: second province has %d units, want 1", tt.pid, len(second.UnitIDs))
		}

		player := g.Players[tt.pid]
		if player.Resources != (Cost{10, 5, 5}) {
			t.Errorf("%s: starting resources %v, want [10 5 5]", tt.pid, player.Resources)
		}
		if player.Age != 1 || !player.Alive {
			t.Errorf("%s: age=%d alive=%v, want age 1 alive", tt.pid, player.Age, player.Alive)
		}
	}
}

func TestNewGameCivAssignment(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	want := map[string]Civ{"p0": Ironborn, "p1": Verdanti, "p2": Tidecallers, "p3": Ashwalkers}
	for pid, civ := range want {
		if g.Players[pid].Civ != civ {
			t.Errorf("%s: civ %s, want %s", pid, g.Players[pid].Civ, civ)
		}
	}

	g2, _ := NewGame(4, 0, []Civ{Ashwalkers})
	for pid, p := range g2.Players {
		if p.Civ != Ashwalkers {
			t.Errorf("%s: civ %s, want ashwalkers", pid, p.Civ)
		}
	}
}

func TestNewGamePlayerCountBounds(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		if _, err := NewGame(n, 0, nil); err == nil {
			t.Errorf("NewGame(%d) should fail", n)
		}
	}
	g, err := NewGame(2, 0, nil)
	if err != nil {
		t.Fatalf("NewGame(2): %v", err)
	}
	if len(g.Players) != 2 {
		t.Errorf("expected 2 players, got %d", len(g.Players))
	}
	if g.Provinces["moonhaven"].Owner != "" {
		t.Errorf("unused home should be unowned")
	}
}
