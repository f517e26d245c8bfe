package stratagem

import (
	"fmt"
	"sort"
)

// Game is the authoritative state of one match. Units live in a flat
// table keyed by id; provinces reference them through UnitIDs. The
// engine is single-threaded: callers serialize access externally.
type Game struct {
	Provinces      map[string]*Province
	Players        map[string]*Player
	Units          map[string]*Unit
	TradeRoutes    []*TradeRoute
	Messages       []Message
	Proposals      []*TreatyProposal
	Treaties       []*Treaty
	TrustPenalties map[string]int
	Turn           int
	Winner         string
	MaxTurns       int
	Eliminated     []string // in elimination order, for final placements

	unitSeq   int
	treatySeq int
}

// nextUnitID mints a fresh unit id of the form "{player}_{type}_{n}".
func (g *Game) nextUnitID(pid string, t UnitType) string {
	g.unitSeq++
	return fmt.Sprintf("%s_%s_%d", pid, t, g.unitSeq)
}

// addUnit inserts a unit into the flat table and its province's list.
func (g *Game) addUnit(u *Unit) {
	g.Units[u.ID] = u
	p := g.Provinces[u.Province]
	p.UnitIDs = append(p.UnitIDs, u.ID)
}

// removeUnit deletes a unit from the table and its province's list.
func (g *Game) removeUnit(id string) {
	u, ok := g.Units[id]
	if !ok {
		return
	}
	p := g.Provinces[u.Province]
	for i, uid := range p.UnitIDs {
		if uid == id {
			p.UnitIDs = append(p.UnitIDs[:i], p.UnitIDs[i+1:]...)
			break
		}
	}
	delete(g.Units, id)
}

// moveUnit relocates a unit to the target province.
func (g *Game) moveUnit(u *Unit, target string) {
	src := g.Provinces[u.Province]
	for i, uid := range src.UnitIDs {
		if uid == u.ID {
			src.UnitIDs = append(src.UnitIDs[:i], src.UnitIDs[i+1:]...)
			break
		}
	}
	u.Province = target
	dst := g.Provinces[target]
	dst.UnitIDs = append(dst.UnitIDs, u.ID)
}

// ProvinceUnits returns the units in a province in list order.
func (g *Game) ProvinceUnits(p *Province) []*Unit {
	units := make([]*Unit, 0, len(p.UnitIDs))
	for _, id := range p.UnitIDs {
		units = append(units, g.Units[id])
	}
	return units
}

// PlayerProvinces returns the provinces owned by pid, id ascending.
func (g *Game) PlayerProvinces(pid string) []*Province {
	var out []*Province
	for _, id := range g.sortedProvinceIDs() {
		if p := g.Provinces[id]; p.Owner == pid {
			out = append(out, p)
		}
	}
	return out
}

// PlayerUnits returns pid's units ordered by province id then list order.
func (g *Game) PlayerUnits(pid string) []*Unit {
	var out []*Unit
	for _, id := range g.sortedProvinceIDs() {
		for _, u := range g.ProvinceUnits(g.Provinces[id]) {
			if u.Owner == pid {
				out = append(out, u)
			}
		}
	}
	return out
}

// AlivePlayerIDs returns living players, id ascending.
func (g *Game) AlivePlayerIDs() []string {
	var out []string
	for _, pid := range g.sortedPlayerIDs() {
		if g.Players[pid].Alive {
			out = append(out, pid)
		}
	}
	return out
}

func (g *Game) sortedPlayerIDs() []string {
	ids := make([]string, 0, len(g.Players))
	for id := range g.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *Game) sortedProvinceIDs() []string {
	ids := make([]string, 0, len(g.Provinces))
	for id := range g.Provinces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// unitCounts tallies a province's units in the fixed compact order.
func (g *Game) unitCounts(p *Province) []int {
	counts := make([]int, len(unitOrder))
	for _, u := range g.ProvinceUnits(p) {
		for i, t := range unitOrder {
			if u.Type == t {
				counts[i]++
				break
			}
		}
	}
	return counts
}

// bfsDist is the shortest-path edge count between two provinces, or -1
// if unreachable. Adjacency lists are sorted, so expansion order is
// deterministic.
func (g *Game) bfsDist(a, b string) int {
	if a == b {
		return 0
	}
	visited := map[string]bool{a: true}
	queue := []struct {
		id   string
		dist int
	}{{a, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range g.Provinces[cur.id].Adjacent {
			if nb == b {
				return cur.dist + 1
			}
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, struct {
					id   string
					dist int
				}{nb, cur.dist + 1})
			}
		}
	}
	return -1
}

// bfsPath returns one shortest path from a to b inclusive, or nil.
func (g *Game) bfsPath(a, b string) []string {
	if a == b {
		return []string{a}
	}
	visited := map[string]bool{a: true}
	type node struct {
		id   string
		path []string
	}
	queue := []node{{a, []string{a}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range g.Provinces[cur.id].Adjacent {
			if nb == b {
				return append(append([]string{}, cur.path...), b)
			}
			if !visited[nb] {
				visited[nb] = true
				next := append(append([]string{}, cur.path...), nb)
				queue = append(queue, node{nb, next})
			}
		}
	}
	return nil
}
