package stratagem

import (
	"fmt"
	"sort"
	"strings"
)

// processMoves applies all movement orders, then resolves combat in
// every province holding units of two or more owners. Provinces are
// visited in id order so resolution is deterministic.
func (g *Game) processMoves(orders map[string]*OrderSet, events *[]string) []CombatResult {
	for _, pid := range g.sortedPlayerIDs() {
		o := orders[pid]
		if o == nil {
			continue
		}
		for _, mv := range o.Moves {
			u, ok := g.Units[mv.UnitID]
			if !ok || u.Owner != pid {
				continue
			}
			src := g.Provinces[u.Province]
			dst, ok := g.Provinces[mv.Target]
			if !ok || !contains(src.Adjacent, dst.ID) {
				continue
			}
			g.moveUnit(u, dst.ID)
		}
	}

	var combats []CombatResult
	for _, id := range g.sortedProvinceIDs() {
		prov := g.Provinces[id]
		owners := map[string]bool{}
		for _, u := range g.ProvinceUnits(prov) {
			owners[u.Owner] = true
		}
		if len(owners) >= 2 {
			combats = append(combats, g.resolveCombat(prov, events))
		}
	}

	// Units standing in an unowned province claim it.
	for _, id := range g.sortedProvinceIDs() {
		prov := g.Provinces[id]
		if prov.Owner == "" && len(prov.UnitIDs) > 0 {
			prov.Owner = g.Units[prov.UnitIDs[0]].Owner
		}
	}

	return combats
}

// resolveCombat fights out one contested province. Losing sides lose
// everything; the winner loses floor(loser strength / 4) of its
// weakest units but always keeps at least one, and survivors gain a
// veterancy point.
func (g *Game) resolveCombat(prov *Province, events *[]string) CombatResult {
	sides := map[string][]*Unit{}
	for _, u := range g.ProvinceUnits(prov) {
		sides[u.Owner] = append(sides[u.Owner], u)
	}

	sideIDs := make([]string, 0, len(sides))
	for pid := range sides {
		sideIDs = append(sideIDs, pid)
	}
	sort.Strings(sideIDs)

	strengths := map[string]int{}
	for _, pid := range sideIDs {
		player := g.Players[pid]
		enemyTypes := map[UnitType]bool{}
		for _, opid := range sideIDs {
			if opid == pid {
				continue
			}
			for _, ou := range sides[opid] {
				enemyTypes[ou.Type] = true
			}
		}
		s := 0
		for _, u := range sides[pid] {
			us := u.Strength()
			if player.HasTech(Tactics) {
				us++
			}
			if counters, ok := triangle[u.Type]; ok {
				for et := range enemyTypes {
					us += counters[et]
				}
			}
			if bonuses, ok := terrainUnitBonus[u.Type]; ok {
				us += bonuses[prov.Terrain]
			}
			s += us
		}
		if pid == prov.Owner {
			s += prov.DefenseBonus()
			if player.HasTech(Fortification) {
				s++
			}
		}
		if prov.Terrain == River && pid != prov.Owner {
			s -= len(sides[pid])
			s = max(s, 0)
		}
		strengths[pid] = s
	}

	// Highest strength wins; ties favor the defender, then the
	// lexicographically smallest player id.
	ranked := append([]string{}, sideIDs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if strengths[a] != strengths[b] {
			return strengths[a] > strengths[b]
		}
		if (a == prov.Owner) != (b == prov.Owner) {
			return a == prov.Owner
		}
		return a < b
	})
	winner := ranked[0]

	losses := map[string]int{}
	loserStr := 0
	for _, pid := range sideIDs {
		if pid == winner {
			continue
		}
		losses[pid] = len(sides[pid])
		loserStr += strengths[pid]
		for _, u := range sides[pid] {
			g.removeUnit(u.ID)
		}
	}

	casualties := loserStr / 4
	survivors := g.ProvinceUnits(prov)
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].Strength() < survivors[j].Strength()
	})
	for i := 0; i < casualties && i < len(survivors)-1; i++ {
		g.removeUnit(survivors[i].ID)
		losses[winner]++
	}

	for _, u := range g.ProvinceUnits(prov) {
		if u.Veteran < 2 {
			u.Veteran++
		}
	}

	// Winning Tidecallers loot gold from the fallen.
	if perKill := g.Players[winner].Civ.CombatGoldPerKill(); perKill > 0 {
		killed := 0
		for pid, n := range losses {
			if pid != winner {
				killed += n
			}
		}
		g.Players[winner].Resources[2] += killed * perKill
	}

	prov.Owner = winner

	var others []string
	for _, pid := range sideIDs {
		if pid != winner {
			others = append(others, fmt.Sprintf("%s:%d", pid, strengths[pid]))
		}
	}
	*events = append(*events, fmt.Sprintf("⚔️ Battle at %s: %s wins (str %d vs %s)",
		prov.Name, winner, strengths[winner], strings.Join(others, ", ")))

	return CombatResult{
		Province: prov.ID,
		Sides:    strengths,
		Winner:   winner,
		Losses:   losses,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
