package stratagem

import (
	"fmt"
	"sort"
)

// The tournament map: 24 provinces in a symmetric 4-player layout.
// Four corner pairs are player homes, four frontier zones sit between
// neighboring players, and four center provinces are the contested
// core. Coordinates are on a 0-1000 grid for rendering.

type provinceDef struct {
	id      string
	name    string
	terrain Terrain
	x, y    int
}

var tournamentMap = []provinceDef{
	// NW home (player 0)
	{"frostgate", "Frostgate", Mountain, 120, 100},
	{"snowhaven", "Snowhaven", Plains, 80, 230},
	// NE home (player 1)
	{"stormwatch", "Stormwatch", Mountain, 880, 100},
	{"windcrest", "Windcrest", Plains, 920, 230},
	// SW home (player 2)
	{"moonhaven", "Moonhaven", Mountain, 120, 900},
	{"silverlake", "Silverlake", Plains, 80, 770},
	// SE home (player 3)
	{"fireridge", "Fireridge", Mountain, 880, 900},
	{"emberveil", "Emberveil", Plains, 920, 770},
	// North frontier
	{"crystalpeak", "Crystalpeak", Coast, 500, 80},
	{"thornfield", "Thornfield", Forest, 330, 180},
	{"ironridge", "Ironridge", River, 670, 180},
	// South frontier
	{"darkhollow", "Darkhollow", Coast, 500, 920},
	{"ashford", "Ashford", Forest, 330, 820},
	{"stonekeep", "Stonekeep", River, 670, 820},
	// West frontier
	{"mistwood", "Mistwood", Forest, 60, 500},
	{"deepwood", "Deepwood", River, 200, 420},
	{"oakmere", "Oakmere", River, 200, 580},
	// East frontier
	{"sunharbor", "Sunharbor", Coast, 940, 500},
	{"goldreach", "Goldreach", River, 800, 420},
	{"coralcove", "Coralcove", River, 800, 580},
	// Center (high value)
	{"kingscross", "King's Cross", Plains, 500, 380},
	{"dragonseat", "Dragon's Seat", Mountain, 500, 620},
	{"tradeway", "Tradeway", Coast, 380, 500},
	{"highmarket", "Highmarket", Coast, 620, 500},
}

// Each edge listed once; adjacency is built bidirectionally.
var tournamentEdges = [][2]string{
	{"frostgate", "snowhaven"}, {"frostgate", "thornfield"}, {"frostgate", "crystalpeak"},
	{"snowhaven", "thornfield"}, {"snowhaven", "deepwood"}, {"snowhaven", "mistwood"},
	{"stormwatch", "windcrest"}, {"stormwatch", "ironridge"}, {"stormwatch", "crystalpeak"},
	{"windcrest", "ironridge"}, {"windcrest", "goldreach"}, {"windcrest", "sunharbor"},
	{"moonhaven", "silverlake"}, {"moonhaven", "ashford"}, {"moonhaven", "darkhollow"},
	{"silverlake", "ashford"}, {"silverlake", "oakmere"}, {"silverlake", "mistwood"},
	{"fireridge", "emberveil"}, {"fireridge", "stonekeep"}, {"fireridge", "darkhollow"},
	{"emberveil", "stonekeep"}, {"emberveil", "coralcove"}, {"emberveil", "sunharbor"},
	{"crystalpeak", "thornfield"}, {"crystalpeak", "ironridge"},
	{"thornfield", "deepwood"}, {"thornfield", "kingscross"},
	{"ironridge", "goldreach"}, {"ironridge", "kingscross"},
	{"darkhollow", "ashford"}, {"darkhollow", "stonekeep"},
	{"ashford", "oakmere"}, {"ashford", "dragonseat"},
	{"stonekeep", "coralcove"}, {"stonekeep", "dragonseat"},
	{"mistwood", "deepwood"}, {"mistwood", "oakmere"},
	{"deepwood", "tradeway"}, {"deepwood", "kingscross"},
	{"oakmere", "tradeway"}, {"oakmere", "dragonseat"},
	{"sunharbor", "goldreach"}, {"sunharbor", "coralcove"},
	{"goldreach", "highmarket"}, {"goldreach", "kingscross"},
	{"coralcove", "highmarket"}, {"coralcove", "dragonseat"},
	{"kingscross", "tradeway"}, {"kingscross", "highmarket"},
	{"dragonseat", "tradeway"}, {"dragonseat", "highmarket"},
	{"tradeway", "highmarket"},
}

// playerStarts lists the home pair per player slot; the first entry is
// the capital.
var playerStarts = [][2]string{
	{"frostgate", "snowhaven"},
	{"stormwatch", "windcrest"},
	{"moonhaven", "silverlake"},
	{"fireridge", "emberveil"},
}

// NumProvinces is the size of the tournament map.
const NumProvinces = 24

// startingResources is (food, iron, gold) per player at game start.
var startingResources = Cost{10, 5, 5}

// DefaultMaxTurns is the turn limit unless overridden at creation.
const DefaultMaxTurns = 40

// NewGame builds a fresh game on the tournament map. numPlayers must
// be between 2 and 4; civs, when given, are assigned round-robin. The
// seed is accepted for forward compatibility; the tournament map is
// fixed and does not consume it.
func NewGame(numPlayers int, seed int64, civs []Civ) (*Game, error) {
	if numPlayers < 2 || numPlayers > len(playerStarts) {
		return nil, fmt.Errorf("num_players must be 2..%d, got %d", len(playerStarts), numPlayers)
	}
	_ = seed

	g := &Game{
		Provinces:      make(map[string]*Province, len(tournamentMap)),
		Players:        make(map[string]*Player, numPlayers),
		Units:          make(map[string]*Unit),
		TrustPenalties: make(map[string]int),
		MaxTurns:       DefaultMaxTurns,
	}

	for _, d := range tournamentMap {
		g.Provinces[d.id] = &Province{
			ID: d.id, Name: d.name, Terrain: d.terrain, X: d.x, Y: d.y,
		}
	}
	for _, e := range tournamentEdges {
		a, b := g.Provinces[e[0]], g.Provinces[e[1]]
		a.Adjacent = append(a.Adjacent, b.ID)
		b.Adjacent = append(b.Adjacent, a.ID)
	}
	for _, p := range g.Provinces {
		sort.Strings(p.Adjacent)
	}

	civList := civs
	if len(civList) == 0 {
		civList = DefaultCivs[:numPlayers]
	}
	for i := 0; i < numPlayers; i++ {
		pid := fmt.Sprintf("p%d", i)
		g.Players[pid] = &Player{
			ID:        pid,
			Name:      pid,
			Civ:       civList[i%len(civList)],
			Age:       1,
			Resources: startingResources,
			Alive:     true,
		}

		capital, second := playerStarts[i][0], playerStarts[i][1]
		g.Provinces[capital].Owner = pid
		g.Provinces[second].Owner = pid
		g.addUnit(&Unit{ID: pid + "_mil_0", Type: Militia, Owner: pid, Province: capital})
		g.addUnit(&Unit{ID: pid + "_inf_0", Type: Infantry, Owner: pid, Province: capital})
		g.addUnit(&Unit{ID: pid + "_sco_0", Type: Scout, Owner: pid, Province: capital})
		g.addUnit(&Unit{ID: pid + "_mil_1", Type: Militia, Owner: pid, Province: second})
	}

	return g, nil
}
