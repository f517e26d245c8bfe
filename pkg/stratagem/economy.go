package stratagem

import "fmt"

func isUniqueUnit(t UnitType) bool {
	switch t {
	case Huscarl, Herbalist, Corsair, Sage:
		return true
	}
	return false
}

// processBuilds trains units and constructs buildings. Unique units
// are requested with type "unique" and resolve to the civ's variant.
// Buildings complete instantly and never duplicate within a province.
func (g *Game) processBuilds(orders map[string]*OrderSet, events *[]string) {
	for _, pid := range g.sortedPlayerIDs() {
		player := g.Players[pid]
		o := orders[pid]
		if o == nil || !player.Alive {
			continue
		}

		for _, b := range o.BuildUnits {
			prov, ok := g.Provinces[b.Province]
			if !ok || prov.Owner != pid {
				continue
			}

			var utype UnitType
			if b.Type == "unique" {
				ut, ok := player.Civ.UniqueUnit()
				if !ok {
					continue
				}
				utype = ut
			} else {
				utype = UnitType(b.Type)
				if _, ok := StatsFor(utype); !ok || isUniqueUnit(utype) {
					continue
				}
			}

			stats := unitStats[utype]
			if player.Age < stats.MinAge {
				continue
			}
			cost := player.Civ.UnitCost(stats.Cost)
			if prov.HasBuilding(Barracks) {
				cost[0] = max(0, cost[0]-1)
			}
			if !player.CanAfford(cost) {
				continue
			}
			player.Pay(cost)
			g.addUnit(&Unit{
				ID: g.nextUnitID(pid, utype), Type: utype,
				Owner: pid, Province: prov.ID,
			})
			*events = append(*events, fmt.Sprintf("🏗️ %s built %s at %s", pid, utype, prov.Name))
		}

		for _, b := range o.BuildBuildings {
			prov, ok := g.Provinces[b.Province]
			if !ok || prov.Owner != pid {
				continue
			}
			btype := BuildingType(b.Type)
			stats, ok := buildingStats[btype]
			if !ok || player.Age < stats.MinAge {
				continue
			}
			if hasAnyBuilding(prov, btype) {
				continue
			}
			if !player.CanAfford(stats.Cost) {
				continue
			}
			player.Pay(stats.Cost)
			prov.Buildings = append(prov.Buildings, Building{Type: btype, Done: true})
			*events = append(*events, fmt.Sprintf("🏠 %s built %s at %s", pid, btype, prov.Name))
		}
	}
}

// hasAnyBuilding checks complete and pending buildings alike.
func hasAnyBuilding(p *Province, bt BuildingType) bool {
	for _, b := range p.Buildings {
		if b.Type == bt {
			return true
		}
	}
	return false
}

// processTradeRoutes opens routes between completed trade posts.
func (g *Game) processTradeRoutes(orders map[string]*OrderSet, events *[]string) {
	for _, pid := range g.sortedPlayerIDs() {
		player := g.Players[pid]
		o := orders[pid]
		if o == nil || !player.Alive {
			continue
		}
		for _, tro := range o.TradeRoutes {
			fp, ok := g.Provinces[tro.From]
			if !ok || fp.Owner != pid || !fp.HasBuilding(TradePost) {
				continue
			}
			tp, ok := g.Provinces[tro.To]
			if !ok || !tp.HasBuilding(TradePost) {
				continue
			}
			exists := false
			for _, r := range g.TradeRoutes {
				if r.From == fp.ID && r.To == tp.ID {
					exists = true
					break
				}
			}
			if exists {
				continue
			}
			partner := ""
			if tp.Owner != pid {
				partner = tp.Owner
			}
			g.TradeRoutes = append(g.TradeRoutes, &TradeRoute{
				ID:   fmt.Sprintf("tr_%s_%s", fp.ID, tp.ID),
				From: fp.ID, To: tp.ID,
				Owner: pid, Partner: partner,
			})
			*events = append(*events, fmt.Sprintf("📦 %s established trade route: %s → %s", pid, fp.Name, tp.Name))
		}
	}
}

// routeShare is the income pid (owner or partner) draws from a route.
// Base income is the shortest-path length between the endpoints,
// halved when raided. Shared routes pay out double and split equally,
// so each side still receives base.
func (g *Game) routeShare(tr *TradeRoute, pid string) int {
	dist := g.bfsDist(tr.From, tr.To)
	if dist <= 0 {
		return 0
	}
	base := dist
	if g.routeRaided(tr) {
		base /= 2
	}
	if player, ok := g.Players[pid]; ok {
		base = player.Civ.TradeIncome(base)
	}
	return base
}

// routeRaided reports whether any intermediate province on the
// shortest path holds a unit belonging to neither the owner nor the
// partner.
func (g *Game) routeRaided(tr *TradeRoute) bool {
	path := g.bfsPath(tr.From, tr.To)
	if len(path) < 3 {
		return false
	}
	for _, id := range path[1 : len(path)-1] {
		for _, u := range g.ProvinceUnits(g.Provinces[id]) {
			if u.Owner != tr.Owner && u.Owner != tr.Partner {
				return true
			}
		}
	}
	return false
}

// tradeIncome sums pid's share over all routes it participates in.
func (g *Game) tradeIncome(pid string) int {
	total := 0
	for _, tr := range g.TradeRoutes {
		if tr.Owner == pid || tr.Partner == pid {
			total += g.routeShare(tr, pid)
		}
	}
	return total
}

// collectResources computes per-player income (production, civ and
// unique-unit bonuses, upkeep, trade) and applies it, clamping each
// resource at zero. The returned deltas may be negative even though
// the pools never go below zero.
func (g *Game) collectResources() map[string]Cost {
	collected := make(map[string]Cost)
	for _, pid := range g.sortedPlayerIDs() {
		player := g.Players[pid]
		if !player.Alive {
			continue
		}
		var inc Cost
		for _, prov := range g.PlayerProvinces(pid) {
			prod := prov.Production(player.Techs)
			prod[0] += player.Civ.ProvinceFood()
			for _, u := range g.ProvinceUnits(prov) {
				if u.Owner != pid {
					continue
				}
				switch u.Type {
				case Sage:
					prod[0]++
					prod[1]++
					prod[2]++
				case Herbalist:
					prod[0] += 2
				}
			}
			inc = inc.Add(prod)
		}

		// Upkeep: 1 food per unit that is neither militia nor scout.
		for _, u := range g.PlayerUnits(pid) {
			if u.Type != Militia && u.Type != Scout {
				inc[0]--
			}
		}

		inc[2] += g.tradeIncome(pid)

		for j := range player.Resources {
			player.Resources[j] = max(0, player.Resources[j]+inc[j])
		}
		collected[pid] = inc
	}

	for _, tr := range g.TradeRoutes {
		tr.Income = g.routeShare(tr, tr.Owner)
	}
	return collected
}
