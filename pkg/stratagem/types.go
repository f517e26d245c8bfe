package stratagem

// Terrain is a province terrain class.
type Terrain string

const (
	Plains   Terrain = "plains"
	Forest   Terrain = "forest"
	Mountain Terrain = "mountain"
	Coast    Terrain = "coast"
	River    Terrain = "river"
)

// terrainShort maps terrain to its single-letter wire code.
var terrainShort = map[Terrain]string{
	Plains: "P", Forest: "F", Mountain: "M", Coast: "C", River: "R",
}

// Short returns the single-letter code used in compact views.
func (t Terrain) Short() string { return terrainShort[t] }

// terrainDefense is the flat defense bonus granted to the owning side in combat.
var terrainDefense = map[Terrain]int{
	Plains: 0, Forest: 1, Mountain: 3, Coast: 0, River: 1,
}

// terrainResources is base per-turn production (food, iron, gold).
var terrainResources = map[Terrain]Cost{
	Plains:   {3, 0, 1},
	Forest:   {2, 1, 0},
	Mountain: {0, 3, 1},
	Coast:    {2, 0, 2},
	River:    {2, 1, 1},
}

// Cost is a (food, iron, gold) triple. It doubles as a resource pool
// and marshals as a JSON array, which is the wire format agents consume.
type Cost [3]int

// Add returns c + o componentwise.
func (c Cost) Add(o Cost) Cost { return Cost{c[0] + o[0], c[1] + o[1], c[2] + o[2]} }

// Covers reports whether every component of c is >= the matching component of o.
func (c Cost) Covers(o Cost) bool {
	return c[0] >= o[0] && c[1] >= o[1] && c[2] >= o[2]
}

// UnitType identifies a unit class, including civ-unique variants.
type UnitType string

const (
	Militia  UnitType = "militia"
	Infantry UnitType = "infantry"
	Archers  UnitType = "archers"
	Cavalry  UnitType = "cavalry"
	Siege    UnitType = "siege"
	Knights  UnitType = "knights"
	Scout    UnitType = "scout"

	// Civ-unique units, built with {type: "unique"}.
	Huscarl   UnitType = "huscarl"
	Herbalist UnitType = "herbalist"
	Corsair   UnitType = "corsair"
	Sage      UnitType = "sage"
)

// unitOrder fixes the index order of compact unit-count arrays.
var unitOrder = []UnitType{Militia, Infantry, Archers, Cavalry, Siege, Knights, Scout}

// UnitStats describes a unit class.
type UnitStats struct {
	Cost     Cost
	Strength int
	Speed    int
	MinAge   int
}

var unitStats = map[UnitType]UnitStats{
	Militia:  {Cost{1, 0, 0}, 1, 1, 1},
	Infantry: {Cost{1, 1, 0}, 3, 1, 1},
	Archers:  {Cost{1, 0, 1}, 2, 1, 2},
	Cavalry:  {Cost{2, 1, 0}, 3, 2, 2},
	Siege:    {Cost{0, 2, 2}, 1, 1, 3},
	Knights:  {Cost{2, 2, 1}, 5, 2, 3},
	Scout:    {Cost{0, 0, 1}, 0, 3, 1},

	Huscarl:   {Cost{1, 2, 0}, 6, 1, 2},
	Herbalist: {Cost{2, 0, 1}, 1, 1, 2},
	Corsair:   {Cost{1, 1, 1}, 3, 2, 2},
	Sage:      {Cost{1, 0, 2}, 1, 1, 2},
}

// StatsFor returns the stat block for a unit type, reporting whether it exists.
func StatsFor(t UnitType) (UnitStats, bool) {
	s, ok := unitStats[t]
	return s, ok
}

// triangle is the unit-type counter bonus: each unit of the outer type
// gains the bonus once per enemy type present in the fight.
var triangle = map[UnitType]map[UnitType]int{
	Infantry: {Cavalry: 2},
	Archers:  {Infantry: 2},
	Cavalry:  {Archers: 2},
}

// terrainUnitBonus grants a unit type extra strength on favorable ground.
var terrainUnitBonus = map[UnitType]map[Terrain]int{
	Cavalry: {Plains: 1},
	Archers: {Forest: 1},
}

// BuildingType identifies a building class.
type BuildingType string

const (
	Farm       BuildingType = "farm"
	Mine       BuildingType = "mine"
	Market     BuildingType = "market"
	Barracks   BuildingType = "barracks"
	Fortress   BuildingType = "fortress"
	TradePost  BuildingType = "trade_post"
	Watchtower BuildingType = "watchtower"
)

var buildingShort = map[BuildingType]string{
	Farm: "F", Mine: "M", Market: "K", Barracks: "B",
	Fortress: "X", TradePost: "T", Watchtower: "W",
}

// Short returns the single-letter code used in compact views.
func (b BuildingType) Short() string { return buildingShort[b] }

// BuildingStats describes a building class.
type BuildingStats struct {
	Cost   Cost
	MinAge int
}

var buildingStats = map[BuildingType]BuildingStats{
	Farm:       {Cost{2, 0, 0}, 1},
	Mine:       {Cost{0, 2, 0}, 1},
	Market:     {Cost{0, 0, 3}, 1},
	Barracks:   {Cost{0, 2, 0}, 1},
	Fortress:   {Cost{0, 3, 2}, 2},
	TradePost:  {Cost{0, 0, 2}, 2},
	Watchtower: {Cost{0, 1, 1}, 2},
}

// ageCost is the price of advancing to the keyed age.
var ageCost = map[int]Cost{
	2: {10, 8, 5},
	3: {15, 12, 10},
}

// AgeName returns the display name for an age number.
func AgeName(age int) string {
	switch age {
	case 1:
		return "Bronze"
	case 2:
		return "Iron"
	case 3:
		return "Steel"
	}
	return "Unknown"
}

// Unit is a single military or support unit. Units live in the game's
// flat unit table; provinces reference them by id.
type Unit struct {
	ID       string
	Type     UnitType
	Owner    string
	Province string
	Veteran  int // 0..2 bonus strength from surviving battles
}

// Strength is base strength plus veterancy.
func (u *Unit) Strength() int {
	return unitStats[u.Type].Strength + u.Veteran
}

// Speed returns the unit's movement stat.
func (u *Unit) Speed() int { return unitStats[u.Type].Speed }

// Building is a completed or in-progress structure in a province.
type Building struct {
	Type BuildingType `json:"type"`
	Done bool         `json:"done"`
}

// Province is one node of the map graph. Identity fields are fixed at
// map creation; Owner, UnitIDs and Buildings change during resolution.
type Province struct {
	ID       string
	Name     string
	Terrain  Terrain
	X, Y     int
	Adjacent []string // sorted for deterministic iteration

	Owner     string // player id, empty when unowned
	UnitIDs   []string
	Buildings []Building
}

// BaseResources is the terrain's base production.
func (p *Province) BaseResources() Cost { return terrainResources[p.Terrain] }

// DefenseBonus is terrain defense plus 3 per completed fortress.
func (p *Province) DefenseBonus() int {
	bonus := terrainDefense[p.Terrain]
	for _, b := range p.Buildings {
		if b.Type == Fortress && b.Done {
			bonus += 3
		}
	}
	return bonus
}

// HasBuilding reports whether the province has a completed building of the given type.
func (p *Province) HasBuilding(bt BuildingType) bool {
	for _, b := range p.Buildings {
		if b.Type == bt && b.Done {
			return true
		}
	}
	return false
}

// Production returns (food, iron, gold) output given the owner's techs.
func (p *Province) Production(techs []TechID) Cost {
	prod := p.BaseResources()
	for _, b := range p.Buildings {
		if !b.Done {
			continue
		}
		switch b.Type {
		case Farm:
			prod[0] += 2
			if hasTech(techs, Agriculture) {
				prod[0]++
			}
		case Mine:
			prod[1] += 2
			if hasTech(techs, Mining) {
				prod[1]++
			}
		case Market:
			prod[2] += 2
			if hasTech(techs, Commerce) {
				prod[2] += 2
			}
		}
	}
	return prod
}

// Player is one participant's mutable state.
type Player struct {
	ID        string
	Name      string
	Civ       Civ
	Age       int // 1=Bronze, 2=Iron, 3=Steel
	Resources Cost
	Techs     []TechID
	Alive     bool
	Score     int // computed only at the turn limit
}

// Food, Iron and Gold are resource accessors.
func (p *Player) Food() int { return p.Resources[0] }
func (p *Player) Iron() int { return p.Resources[1] }
func (p *Player) Gold() int { return p.Resources[2] }

// CanAfford reports whether the player can pay the cost.
func (p *Player) CanAfford(cost Cost) bool { return p.Resources.Covers(cost) }

// Pay debits the cost from the player's resources.
func (p *Player) Pay(cost Cost) {
	p.Resources[0] -= cost[0]
	p.Resources[1] -= cost[1]
	p.Resources[2] -= cost[2]
}

// HasTech reports whether the player holds the given tech.
func (p *Player) HasTech(t TechID) bool { return hasTech(p.Techs, t) }

func hasTech(techs []TechID, t TechID) bool {
	for _, h := range techs {
		if h == t {
			return true
		}
	}
	return false
}

// TradeRoute connects two trade posts. Routes persist even if an
// endpoint changes owner; raiding then governs the income.
type TradeRoute struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Owner   string `json:"owner"`
	Partner string `json:"partner,omitempty"`
	Income  int    `json:"income"` // recomputed each turn
}

// CombatResult records one province battle.
type CombatResult struct {
	Province string         `json:"province"`
	Sides    map[string]int `json:"sides"` // player id -> effective strength
	Winner   string         `json:"winner"`
	Losses   map[string]int `json:"losses"` // player id -> units lost
}

// TurnResult summarizes one resolved turn.
type TurnResult struct {
	Turn         int             `json:"turn"`
	Combats      []CombatResult  `json:"combats"`
	Income       map[string]Cost `json:"income"`
	Eliminations []string        `json:"eliminations"`
	Winner       string          `json:"winner,omitempty"`
	Events       []string        `json:"events"`
}
