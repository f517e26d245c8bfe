package stratagem

import "testing"

func TestBuildUnitCostsAndGates(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	p0 := g.Players["p0"] // ironborn

	var events []string
	g.processBuilds(map[string]*OrderSet{
		"p0": {PlayerID: "p0", BuildUnits: []BuildUnitOrder{
			{Type: "infantry", Province: "frostgate"},
			{Type: "knights", Province: "frostgate"},   // age 3 gate
			{Type: "infantry", Province: "kingscross"}, // not owned
			{Type: "huscarl", Province: "frostgate"},   // unique only via "unique"
			{Type: "dragon", Province: "frostgate"},    // unknown type
		}},
	}, &events)

	// Infantry (1,1,0) with ironborn discount -> (1,0,0).
	if p0.Resources != (Cost{9, 5, 5}) {
		t.Errorf("resources = %v, want [9 5 5]", p0.Resources)
	}
	if len(events) != 1 {
		t.Errorf("events = %v, want one build", events)
	}
	if got := len(g.Provinces["frostgate"].UnitIDs); got != 4 {
		t.Errorf("frostgate has %d units, want 4", got)
	}
}

func TestBarracksDiscount(t *testing.T) {
	g, _ := NewGame(4, 0, []Civ{Verdanti})
	g.Provinces["frostgate"].Buildings = []Building{{Type: Barracks, Done: true}}
	p0 := g.Players["p0"]

	g.processBuilds(map[string]*OrderSet{
		"p0": {PlayerID: "p0", BuildUnits: []BuildUnitOrder{{Type: "infantry", Province: "frostgate"}}},
	}, &[]string{})

	// Infantry (1,1,0) minus barracks food discount -> (0,1,0).
	if p0.Resources != (Cost{10, 4, 5}) {
		t.Errorf("resources = %v, want [10 4 5]", p0.Resources)
	}
}

func TestUniqueUnitBuild(t *testing.T) {
	g, _ := NewGame(4, 0, []Civ{Ironborn})
	p0 := g.Players["p0"]
	p0.Age = 2

	var events []string
	g.processBuilds(map[string]*OrderSet{
		"p0": {PlayerID: "p0", BuildUnits: []BuildUnitOrder{{Type: "unique", Province: "frostgate"}}},
	}, &events)

	found := false
	for _, u := range g.PlayerUnits("p0") {
		if u.Type == Huscarl {
			found = true
		}
	}
	if !found {
		t.Fatal("huscarl not built")
	}
	// Huscarl (1,2,0) with ironborn discount -> (1,1,0).
	if p0.Resources != (Cost{9, 4, 5}) {
		t.Errorf("resources = %v, want [9 4 5]", p0.Resources)
	}
}

func TestUniqueUnitAgeGate(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	g.processBuilds(map[string]*OrderSet{
		"p0": {PlayerID: "p0", BuildUnits: []BuildUnitOrder{{Type: "unique", Province: "frostgate"}}},
	}, &[]string{})
	for _, u := range g.PlayerUnits("p0") {
		if u.Type == Huscarl {
			t.Fatal("unique unit built below its minimum age")
		}
	}
}

func TestBuildBuildingNoDuplicates(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	p0 := g.Players["p0"]
	p0.Resources = Cost{50, 50, 50}

	var events []string
	orders := map[string]*OrderSet{
		"p0": {PlayerID: "p0", BuildBuildings: []BuildBuildingOrder{
			{Type: "farm", Province: "frostgate"},
			{Type: "farm", Province: "frostgate"},
			{Type: "fortress", Province: "frostgate"}, // age 2 gate
		}},
	}
	g.processBuilds(orders, &events)

	prov := g.Provinces["frostgate"]
	if len(prov.Buildings) != 1 || prov.Buildings[0].Type != Farm {
		t.Fatalf("buildings = %+v, want one farm", prov.Buildings)
	}
	if p0.Resources != (Cost{48, 50, 50}) {
		t.Errorf("resources = %v, want one farm paid", p0.Resources)
	}
}

func TestProductionAndUpkeep(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	collected := g.collectResources()

	// p0 (ironborn): frostgate mountain (0,3,1) + snowhaven plains (3,0,1),
	// minus 1 food upkeep for the infantry.
	if collected["p0"] != (Cost{2, 3, 2}) {
		t.Errorf("p0 income = %v, want [2 3 2]", collected["p0"])
	}
	// p1 (verdanti): same terrain plus +1 food per province.
	if collected["p1"] != (Cost{4, 3, 2}) {
		t.Errorf("p1 income = %v, want [4 3 2]", collected["p1"])
	}
}

func TestFarmAndAgricultureBonus(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	prov := g.Provinces["snowhaven"]
	prov.Buildings = []Building{{Type: Farm, Done: true}}

	base := prov.Production(nil)
	if base != (Cost{5, 0, 1}) {
		t.Errorf("plains+farm = %v, want [5 0 1]", base)
	}
	withTech := prov.Production([]TechID{Agriculture})
	if withTech != (Cost{6, 0, 1}) {
		t.Errorf("plains+farm+agr = %v, want [6 0 1]", withTech)
	}
}

func TestSageProduction(t *testing.T) {
	g, _ := NewGame(4, 0, []Civ{Ashwalkers})
	g.addUnit(&Unit{ID: "sage1", Type: Sage, Owner: "p0", Province: "frostgate"})

	collected := g.collectResources()
	// Baseline (0,3,1)+(3,0,1) minus 2 food upkeep (infantry + sage),
	// plus sage (+1,+1,+1).
	if collected["p0"] != (Cost{2, 4, 3}) {
		t.Errorf("p0 income = %v, want [2 4 3]", collected["p0"])
	}
}

func TestTradeRoutes(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	g.Provinces["frostgate"].Buildings = []Building{{Type: TradePost, Done: true}}
	g.Provinces["kingscross"].Buildings = []Building{{Type: TradePost, Done: true}}
	g.Provinces["kingscross"].Owner = "p0"

	var events []string
	orders := map[string]*OrderSet{
		"p0": {PlayerID: "p0", TradeRoutes: []TradeRouteOrder{
			{From: "frostgate", To: "kingscross"},
			{From: "frostgate", To: "kingscross"}, // duplicate
			{From: "stormwatch", To: "kingscross"}, // not p0's province
		}},
	}
	g.processTradeRoutes(orders, &events)

	if len(g.TradeRoutes) != 1 {
		t.Fatalf("routes = %d, want 1", len(g.TradeRoutes))
	}
	tr := g.TradeRoutes[0]
	if tr.Owner != "p0" || tr.Partner != "" {
		t.Errorf("route = %+v", tr)
	}

	// frostgate -> thornfield -> kingscross: distance 2.
	if got := g.routeShare(tr, "p0"); got != 2 {
		t.Errorf("route share = %d, want 2", got)
	}

	// An outside unit on the path halves the income.
	g.addUnit(&Unit{ID: "raider", Type: Militia, Owner: "p2", Province: "thornfield"})
	if got := g.routeShare(tr, "p0"); got != 1 {
		t.Errorf("raided share = %d, want 1", got)
	}
}

func TestSharedTradeRoutePaysBothSides(t *testing.T) {
	g, _ := NewGame(4, 0, nil)
	g.Provinces["frostgate"].Buildings = []Building{{Type: TradePost, Done: true}}
	g.Provinces["stormwatch"].Buildings = []Building{{Type: TradePost, Done: true}}

	g.processTradeRoutes(map[string]*OrderSet{
		"p0": {PlayerID: "p0", TradeRoutes: []TradeRouteOrder{{From: "frostgate", To: "stormwatch"}}},
	}, &[]string{})

	tr := g.TradeRoutes[0]
	if tr.Partner != "p1" {
		t.Fatalf("partner = %q, want p1", tr.Partner)
	}
	dist := g.bfsDist("frostgate", "stormwatch")
	if g.tradeIncome("p0") != dist || g.tradeIncome("p1") != dist {
		t.Errorf("shared route income p0=%d p1=%d, want %d each",
			g.tradeIncome("p0"), g.tradeIncome("p1"), dist)
	}
}

func TestTidecallerTradeBonus(t *testing.T) {
	g, _ := NewGame(4, 0, []Civ{Tidecallers})
	g.Provinces["frostgate"].Buildings = []Building{{Type: TradePost, Done: true}}
	g.Provinces["kingscross"].Buildings = []Building{{Type: TradePost, Done: true}}
	g.Provinces["kingscross"].Owner = "p0"

	g.processTradeRoutes(map[string]*OrderSet{
		"p0": {PlayerID: "p0", TradeRoutes: []TradeRouteOrder{{From: "frostgate", To: "kingscross"}}},
	}, &[]string{})

	// Distance 2, tidecaller 3/2 -> 3.
	if got := g.tradeIncome("p0"); got != 3 {
		t.Errorf("tidecaller income = %d, want 3", got)
	}
}
