package stratagem

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPlayerViewFog(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	// Watchtower in frostgate extends sight two hops from there.
	g.Provinces["frostgate"].Buildings = append(g.Provinces["frostgate"].Buildings,
		Building{Type: Watchtower, Done: true})

	view := g.PlayerView("p0")

	// Owned: full breakdown.
	own := view.Provinces["frostgate"]
	if own == nil {
		t.Fatal("owned province missing from view")
	}
	if own.Units == nil || own.Production == nil {
		t.Error("owned province should carry unit counts and production")
	}

	// Adjacent, not owned: aggregate count only.
	adj := view.Provinces["crystalpeak"]
	if adj == nil {
		t.Fatal("adjacent province missing from view")
	}
	if adj.Units != nil || adj.Buildings != nil || adj.Production != nil {
		t.Error("non-owned province must not reveal breakdowns")
	}

	// Two hops through the watchtower: stormwatch (p1's capital).
	tower := view.Provinces["stormwatch"]
	if tower == nil {
		t.Fatal("watchtower should reveal adjacent-of-adjacent provinces")
	}
	if tower.Owner != "p1" {
		t.Errorf("revealed owner = %q, want p1", tower.Owner)
	}
	if tower.UnitCount != 3 {
		t.Errorf("aggregate unit count = %d, want 3", tower.UnitCount)
	}
	if tower.Units != nil {
		t.Error("aggregate view must not break units down by type")
	}

	// Far corner stays fogged.
	if _, ok := view.Provinces["fireridge"]; ok {
		t.Error("fireridge should be fogged")
	}
	if !contains(view.Fog, "fireridge") {
		t.Error("fireridge missing from fog list")
	}
	if len(view.Provinces)+len(view.Fog) != NumProvinces {
		t.Errorf("view covers %d provinces, want %d",
			len(view.Provinces)+len(view.Fog), NumProvinces)
	}
}

// The serialized projection must not leak any attribute of a fogged
// province: its name may appear only as a bare id in the fog list.
func TestPlayerViewFogSecrecy(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	// Stage hidden state in p3's corner.
	g.Provinces["fireridge"].Buildings = append(g.Provinces["fireridge"].Buildings,
		Building{Type: Fortress, Done: true})

	view := g.PlayerView("p0")
	raw, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, fogged := range view.Fog {
		name := g.Provinces[fogged].Name
		// The display name never appears anywhere in the projection.
		if strings.Contains(string(raw), name) {
			t.Errorf("projection leaks fogged province name %q", name)
		}
	}
	if strings.Contains(string(raw), `"X"`) {
		t.Error("projection leaks a fogged fortress")
	}
}

func TestPlayerViewUnitsAndResources(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	view := g.PlayerView("p1")

	if view.Player != "p1" || view.Civ != Verdanti || view.Age != 1 {
		t.Errorf("header = %s/%s/%d", view.Player, view.Civ, view.Age)
	}
	if len(view.Units) != 4 {
		t.Fatalf("unit list has %d entries, want 4", len(view.Units))
	}
	for _, u := range view.Units {
		if g.Units[u.ID] == nil || g.Units[u.ID].Owner != "p1" {
			t.Errorf("unit list includes foreign unit %s", u.ID)
		}
	}
}

func TestFullStateExposesEverything(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	state := g.GetFullState()

	if len(state.Provinces) != NumProvinces {
		t.Errorf("full state has %d provinces", len(state.Provinces))
	}
	cap := state.Provinces["stormwatch"]
	if cap.Owner != "p1" || cap.UnitCount != 3 {
		t.Errorf("stormwatch = %+v", cap)
	}
	if len(cap.Units["p1"]) != len(unitOrder) {
		t.Errorf("unit breakdown missing for p1")
	}
	ps := state.Players["p2"]
	if ps == nil || !ps.Alive || ps.Provinces != 2 || ps.Units != 4 {
		t.Errorf("player summary = %+v", ps)
	}
	if state.Provinces["kingscross"].Income != nil {
		t.Error("unowned province should have no income")
	}
}

func TestFullStateIncomeMatchesCollection(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	preview := g.GetFullState().Players["p0"].Income

	g2, _ := NewGame(4, 0, nil)
	collected := g2.collectResources()

	if preview != collected["p0"] {
		t.Errorf("preview income %v != collected %v", preview, collected["p0"])
	}
}
