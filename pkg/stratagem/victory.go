package stratagem

import "sort"

// checkEliminations marks players with no provinces and no units dead.
// Elimination order is recorded for final placements.
func (g *Game) checkEliminations() []string {
	var eliminated []string
	for _, pid := range g.sortedPlayerIDs() {
		player := g.Players[pid]
		if !player.Alive {
			continue
		}
		if len(g.PlayerProvinces(pid)) == 0 && len(g.PlayerUnits(pid)) == 0 {
			player.Alive = false
			eliminated = append(eliminated, pid)
			g.Eliminated = append(g.Eliminated, pid)
		}
	}
	return eliminated
}

// DominationThreshold is the province count that wins outright.
const DominationThreshold = 15

// EconomicThreshold is the gold total that wins while holding at
// least one province.
const EconomicThreshold = 100

// checkVictory returns the winner's id, or "" if the game continues.
// Conditions are checked in order: last player standing, domination,
// economic, then score at the turn limit.
func (g *Game) checkVictory() string {
	alive := g.AlivePlayerIDs()
	if len(alive) == 1 {
		return alive[0]
	}

	for _, pid := range alive {
		if len(g.PlayerProvinces(pid)) >= DominationThreshold {
			return pid
		}
	}

	for _, pid := range alive {
		if g.Players[pid].Gold() >= EconomicThreshold && len(g.PlayerProvinces(pid)) > 0 {
			return pid
		}
	}

	if g.Turn >= g.MaxTurns {
		for _, pid := range alive {
			p := g.Players[pid]
			p.Score = len(g.PlayerProvinces(pid))*3 + len(g.PlayerUnits(pid)) +
				p.Gold()/5 + len(p.Techs)*5 + p.Age*10
		}
		best := append([]string{}, alive...)
		sort.SliceStable(best, func(i, j int) bool {
			a, b := g.Players[best[i]], g.Players[best[j]]
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			return a.ID < b.ID
		})
		return best[0]
	}

	return ""
}

// Placements orders players for rating: winner first, then the other
// survivors in id order, then eliminated players in the order they fell.
func (g *Game) Placements() []string {
	if g.Winner == "" {
		return nil
	}
	placements := []string{g.Winner}
	for _, pid := range g.AlivePlayerIDs() {
		if pid != g.Winner {
			placements = append(placements, pid)
		}
	}
	for _, pid := range g.Eliminated {
		if pid != g.Winner {
			placements = append(placements, pid)
		}
	}
	return placements
}
