package stratagem

import "sort"

// ProvinceView is one province entry in a player projection. Owned
// provinces carry the full breakdown; visible-but-not-owned provinces
// carry only terrain, owner, adjacency and an aggregate unit count.
type ProvinceView struct {
	Terrain    string   `json:"tr"`
	Owner      string   `json:"o"`
	Adjacent   []string `json:"adj"`
	Units      []int    `json:"u,omitempty"`
	Buildings  []string `json:"b,omitempty"`
	Production []int    `json:"pr,omitempty"`
	UnitCount  int      `json:"uc,omitempty"`
}

// UnitView is a detailed unit record for the owning player.
type UnitView struct {
	ID       string   `json:"id"`
	Type     UnitType `json:"type"`
	Province string   `json:"province"`
	Strength int      `json:"strength"`
	Veteran  int      `json:"veteran"`
}

// MessageView is a diplomacy message as shown to a player.
type MessageView struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Content string `json:"content"`
	Public  bool   `json:"public"`
}

// ProposalView is a pending treaty proposal directed at the viewer.
type ProposalView struct {
	ID   string     `json:"id"`
	From string     `json:"from"`
	Type TreatyType `json:"type"`
}

// TreatyView is an active treaty from the viewer's side.
type TreatyView struct {
	ID    string     `json:"id"`
	Type  TreatyType `json:"type"`
	With  string     `json:"with"`
	Since int        `json:"since"`
}

// DiplomacyView is the diplomacy slice of a player projection.
type DiplomacyView struct {
	Messages         []MessageView  `json:"messages"`
	PendingProposals []ProposalView `json:"pending_proposals"`
	Treaties         []TreatyView   `json:"treaties"`
	Trust            map[string]int `json:"trust"`
}

// PlayerView is the compact fog-of-war projection agents consume.
// Short keys keep the payload small for LLM-driven clients.
type PlayerView struct {
	GameID    string                   `json:"game_id,omitempty"`
	Turn      int                      `json:"t"`
	Player    string                   `json:"p"`
	Civ       Civ                      `json:"c"`
	Age       int                      `json:"a"`
	Resources Cost                     `json:"r"`
	Techs     []string                 `json:"tc"`
	Provinces map[string]*ProvinceView `json:"pv"`
	Fog       []string                 `json:"fog"`
	Routes    [][]any                  `json:"tr"`
	Units     []UnitView               `json:"units"`
	Diplomacy DiplomacyView            `json:"diplo"`
	Winner    string                   `json:"winner,omitempty"`
}

// PlayerView builds pid's projection. Visibility is owned provinces,
// their neighbors, and neighbors-of-neighbors of owned provinces with
// a completed watchtower. Everything else is listed only in the fog
// set by id, with no attributes attached.
func (g *Game) PlayerView(pid string) *PlayerView {
	player := g.Players[pid]
	owned := map[string]bool{}
	for _, p := range g.PlayerProvinces(pid) {
		owned[p.ID] = true
	}

	visible := map[string]bool{}
	for id := range owned {
		visible[id] = true
	}
	for _, p := range g.PlayerProvinces(pid) {
		for _, adj := range p.Adjacent {
			visible[adj] = true
		}
		if p.HasBuilding(Watchtower) {
			for _, adj := range p.Adjacent {
				for _, adj2 := range g.Provinces[adj].Adjacent {
					visible[adj2] = true
				}
			}
		}
	}

	pv := make(map[string]*ProvinceView, len(visible))
	var fog []string
	for _, id := range g.sortedProvinceIDs() {
		if !visible[id] {
			fog = append(fog, id)
			continue
		}
		prov := g.Provinces[id]
		owner := prov.Owner
		if owner == "" {
			owner = "-"
		}
		entry := &ProvinceView{
			Terrain:  prov.Terrain.Short(),
			Owner:    owner,
			Adjacent: prov.Adjacent,
		}
		if owned[id] {
			entry.Units = g.unitCounts(prov)
			entry.Buildings = doneBuildingShorts(prov)
			prod := prov.Production(player.Techs)
			entry.Production = prod[:]
		} else if n := len(prov.UnitIDs); n > 0 {
			entry.UnitCount = n
		}
		pv[id] = entry
	}

	var routes [][]any
	for _, tr := range g.TradeRoutes {
		if tr.Owner == pid || tr.Partner == pid {
			routes = append(routes, []any{tr.From, tr.To, tr.Income})
		}
	}

	var units []UnitView
	for _, u := range g.PlayerUnits(pid) {
		units = append(units, UnitView{
			ID: u.ID, Type: u.Type, Province: u.Province,
			Strength: u.Strength(), Veteran: u.Veteran,
		})
	}

	return &PlayerView{
		Turn:      g.Turn,
		Player:    pid,
		Civ:       player.Civ,
		Age:       player.Age,
		Resources: player.Resources,
		Techs:     techStrings(player.Techs),
		Provinces: pv,
		Fog:       fog,
		Routes:    routes,
		Units:     units,
		Diplomacy: g.diplomacyFor(pid),
		Winner:    g.Winner,
	}
}

// diplomacyFor gathers the diplomacy visible to pid: this turn's
// public messages plus anything pid sent or received, open proposals
// addressed to pid, pid's active treaties, and the public trust table.
func (g *Game) diplomacyFor(pid string) DiplomacyView {
	msgs := []MessageView{}
	for _, m := range g.Messages {
		if m.Turn == g.Turn && (m.Public || m.Recipient == pid || m.Sender == pid) {
			msgs = append(msgs, MessageView{
				From: m.Sender, To: m.Recipient, Content: m.Content, Public: m.Public,
			})
		}
	}
	pending := []ProposalView{}
	for _, tp := range g.pendingProposalsFor(pid) {
		pending = append(pending, ProposalView{ID: tp.ID, From: tp.Proposer, Type: tp.Type})
	}
	treaties := []TreatyView{}
	for _, t := range g.activeTreatiesFor(pid) {
		treaties = append(treaties, TreatyView{
			ID: t.ID, Type: t.Type, With: t.OtherParty(pid), Since: t.TurnCreated,
		})
	}
	trust := make(map[string]int, len(g.Players))
	for _, id := range g.sortedPlayerIDs() {
		trust[id] = g.TrustPenalties[id]
	}
	return DiplomacyView{
		Messages:         msgs,
		PendingProposals: pending,
		Treaties:         treaties,
		Trust:            trust,
	}
}

// ProvinceDetail is a fully revealed province in the spectator view.
type ProvinceDetail struct {
	Name      string           `json:"name"`
	Terrain   string           `json:"terrain"`
	Owner     string           `json:"owner,omitempty"`
	X         int              `json:"x"`
	Y         int              `json:"y"`
	Units     map[string][]int `json:"units"`
	UnitCount int              `json:"unit_count"`
	Strength  int              `json:"strength"`
	Buildings []string         `json:"buildings"`
	Adjacent  []string         `json:"adjacent"`
	Defense   int              `json:"defense"`
	Income    []int            `json:"income,omitempty"`
}

// PlayerSummary is one player's full standing in the spectator view.
type PlayerSummary struct {
	Civ       Civ      `json:"civ"`
	Age       int      `json:"age"`
	Resources Cost     `json:"resources"`
	Income    Cost     `json:"income"`
	Techs     []string `json:"techs"`
	Alive     bool     `json:"alive"`
	Provinces int      `json:"provinces"`
	Units     int      `json:"units"`
	Score     int      `json:"score"`
}

// TreatyDetail is a treaty with its full status, for spectators and
// replays.
type TreatyDetail struct {
	ID       string     `json:"id"`
	Type     TreatyType `json:"type"`
	Parties  []string   `json:"parties"`
	Since    int        `json:"since"`
	BrokenBy string     `json:"broken_by,omitempty"`
}

/// FullState exposes everything: all provinces with unit breakdowns,
// all players' holdings, routes, treaties and trust. Used by
// spectators and persisted into replays.
type FullState struct {
	Turn        int                        `json:"turn"`
	Players     map[string]*PlayerSummary  `json:"players"`
	Provinces   map[string]*ProvinceDetail `json:"provinces"`
	TradeRoutes []*TradeRoute              `json:"trade_routes"`
	Treaties    []TreatyDetail             `json:"treaties"`
	Trust       map[string]int             `json:"trust"`
	Winner      string                     `json:"winner,omitempty"`
}

// provinceIncome is the province's projected output for its current
// owner, including civ and unique-unit bonuses, or nil when unowned.
func (g *Game) provinceIncome(prov *Province) []int {
	owner, ok := g.Players[prov.Owner]
	if !ok {
		return nil
	}
	prod := prov.Production(owner.Techs)
	prod[0] += owner.Civ.ProvinceFood()
	for _, u := range g.ProvinceUnits(prov) {
		if u.Owner != prov.Owner {
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
	return prod[:]
}

// GetFullState snapshots the complete game for spectators and replay.
func (g *Game) GetFullState() *FullState {
	provinces := make(map[string]*ProvinceDetail, len(g.Provinces))
	for _, id := range g.sortedProvinceIDs() {
		prov := g.Provinces[id]
		unitsByOwner := map[string][]int{}
		strength := 0
		for _, u := range g.ProvinceUnits(prov) {
			counts, ok := unitsByOwner[u.Owner]
			if !ok {
				counts = make([]int, len(unitOrder))
				unitsByOwner[u.Owner] = counts
			}
			for i, t := range unitOrder {
				if u.Type == t {
					counts[i]++
					break
				}
			}
			strength += u.Strength()
		}
		provinces[id] = &ProvinceDetail{
			Name:      prov.Name,
			Terrain:   prov.Terrain.Short(),
			Owner:     prov.Owner,
			X:         prov.X,
			Y:         prov.Y,
			Units:     unitsByOwner,
			UnitCount: len(prov.UnitIDs),
			Strength:  strength,
			Buildings: doneBuildingShorts(prov),
			Adjacent:  prov.Adjacent,
			Defense:   prov.DefenseBonus(),
			Income:    g.provinceIncome(prov),
		}
	}

	players := make(map[string]*PlayerSummary, len(g.Players))
	for _, pid := range g.sortedPlayerIDs() {
		p := g.Players[pid]
		var inc Cost
		if p.Alive {
			for _, prov := range g.PlayerProvinces(pid) {
				if pi := provinces[prov.ID].Income; pi != nil {
					inc[0] += pi[0]
					inc[1] += pi[1]
					inc[2] += pi[2]
				}
			}
			for _, u := range g.PlayerUnits(pid) {
				if u.Type != Militia && u.Type != Scout {
					inc[0]--
				}
			}
			inc[2] += g.tradeIncome(pid)
		}
		players[pid] = &PlayerSummary{
			Civ:       p.Civ,
			Age:       p.Age,
			Resources: p.Resources,
			Income:    inc,
			Techs:     techStrings(p.Techs),
			Alive:     p.Alive,
			Provinces: len(g.PlayerProvinces(pid)),
			Units:     len(g.PlayerUnits(pid)),
			Score:     p.Score,
		}
	}

	return &FullState{
		Turn:        g.Turn,
		Players:     players,
		Provinces:   provinces,
		TradeRoutes: append([]*TradeRoute{}, g.TradeRoutes...),
		Treaties:    g.TreatyList(),
		Trust:       copyTrust(g.TrustPenalties),
		Winner:      g.Winner,
	}
}

// AllMessages returns the message ledger, optionally capped at a turn
// and filtered to public messages (live spectator mode).
func (g *Game) AllMessages(upToTurn int, publicOnly bool) []Message {
	out := []Message{}
	for _, m := range g.Messages {
		if upToTurn >= 0 && m.Turn > upToTurn {
			continue
		}
		if publicOnly && !m.Public {
			continue
		}
		out = append(out, m)
	}
	return out
}

// TreatyList returns every treaty with its status.
func (g *Game) TreatyList() []TreatyDetail {
	out := []TreatyDetail{}
	for _, t := range g.Treaties {
		out = append(out, TreatyDetail{
			ID:       t.ID,
			Type:     t.Type,
			Parties:  []string{t.Parties[0], t.Parties[1]},
			Since:    t.TurnCreated,
			BrokenBy: t.BrokenBy,
		})
	}
	return out
}

func doneBuildingShorts(p *Province) []string {
	out := []string{}
	for _, b := range p.Buildings {
		if b.Done {
			out = append(out, b.Type.Short())
		}
	}
	sort.Strings(out)
	return out
}

func techStrings(techs []TechID) []string {
	out := []string{}
	for _, t := range techs {
		out = append(out, string(t))
	}
	return out
}

func copyTrust(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
