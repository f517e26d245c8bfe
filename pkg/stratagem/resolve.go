package stratagem

import "fmt"

// processResearch handles tech research and age advancement. Research
// runs before builds so a freshly unlocked age permits same-turn
// builds.
func (g *Game) processResearch(orders map[string]*OrderSet, events *[]string) {
	for _, pid := range g.sortedPlayerIDs() {
		player := g.Players[pid]
		o := orders[pid]
		if o == nil || o.Research == nil || !player.Alive {
			continue
		}

		if o.Research.Tech == "age_up" {
			next := player.Age + 1
			if next > 3 {
				continue
			}
			cost := player.Civ.TechCost(ageCost[next])
			if !player.CanAfford(cost) {
				continue
			}
			player.Pay(cost)
			player.Age = next
			*events = append(*events, fmt.Sprintf("⬆️ %s advanced to Age %d (%s)", pid, next, AgeName(next)))
			continue
		}

		tech, ok := ValidTech(o.Research.Tech)
		if !ok || !CanResearch(player.Age, player.Techs, tech) {
			continue
		}
		cost := player.Civ.TechCost(techCost[tech])
		if !player.CanAfford(cost) {
			continue
		}
		player.Pay(cost)
		player.Techs = append(player.Techs, tech)
		*events = append(*events, fmt.Sprintf("🔬 %s researched %s", pid, tech))
	}
}

// ProcessTurn advances the game one turn. Phases run in a fixed order:
// diplomacy, research, movement and combat, builds, trade routes,
// resource collection, eliminations, victory. Within each phase
// players are visited in id order and a player's orders in submission
// order, so identical inputs always produce identical results.
// Infeasible orders are dropped without error; the event log records
// everything that actually happened.
func (g *Game) ProcessTurn(orders map[string]*OrderSet) TurnResult {
	if g.Winner != "" {
		return TurnResult{Turn: g.Turn, Winner: g.Winner}
	}
	g.Turn++
	var events []string
	result := TurnResult{Turn: g.Turn}

	g.processDiplomacy(orders, &events)
	g.processResearch(orders, &events)
	result.Combats = g.processMoves(orders, &events)
	g.processBuilds(orders, &events)
	g.processTradeRoutes(orders, &events)
	result.Income = g.collectResources()

	result.Eliminations = g.checkEliminations()
	for _, pid := range result.Eliminations {
		events = append(events, fmt.Sprintf("💀 %s eliminated!", pid))
	}

	if winner := g.checkVictory(); winner != "" {
		g.Winner = winner
		result.Winner = winner
		events = append(events, fmt.Sprintf("🏆 %s wins!", winner))
	}

	result.Events = events
	return result
}
