package stratagem

// OrderSet is one player's wish list for a turn. Every field is
// optional; infeasible orders are dropped silently during resolution.
type OrderSet struct {
	PlayerID       string               `json:"-"`
	Moves          []MoveOrder          `json:"moves,omitempty"`
	BuildUnits     []BuildUnitOrder     `json:"build_units,omitempty"`
	BuildBuildings []BuildBuildingOrder `json:"build_buildings,omitempty"`
	Research       *ResearchOrder       `json:"research,omitempty"`
	TradeRoutes    []TradeRouteOrder    `json:"trade_routes,omitempty"`
	Diplomacy      *DiplomacyOrder      `json:"diplomacy,omitempty"`
}

// MoveOrder moves one unit to an adjacent province.
type MoveOrder struct {
	UnitID string `json:"unit_id"`
	Target string `json:"target"`
}

// BuildUnitOrder trains a unit. Type may be "unique" to request the
// player's civ-specific unit.
type BuildUnitOrder struct {
	Type     string `json:"type"`
	Province string `json:"province"`
}

// BuildBuildingOrder constructs a building.
type BuildBuildingOrder struct {
	Type     string `json:"type"`
	Province string `json:"province"`
}

// ResearchOrder researches a tech or, with Tech == "age_up", advances
// to the next age.
type ResearchOrder struct {
	Tech string `json:"tech"`
}

// TradeRouteOrder opens a trade route between two trade posts.
type TradeRouteOrder struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DiplomacyOrder carries a turn's diplomatic actions.
type DiplomacyOrder struct {
	Messages       []MessageOrder  `json:"messages,omitempty"`
	Proposals      []ProposalOrder `json:"proposals,omitempty"`
	AcceptTreaties []string        `json:"accept_treaties,omitempty"`
	RejectTreaties []string        `json:"reject_treaties,omitempty"`
	BreakTreaties  []string        `json:"break_treaties,omitempty"`
}

// MessageOrder sends a message to a player or "public".
type MessageOrder struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

// ProposalOrder proposes a treaty to another player.
type ProposalOrder struct {
	Target string `json:"target"`
	Type   string `json:"type"`
}
