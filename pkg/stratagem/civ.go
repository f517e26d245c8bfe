package stratagem

// Civ is one of the four playable factions. Faction behavior lives in
// methods on this type so the resolver never switches on faction names.
type Civ string

const (
	Ironborn    Civ = "ironborn"
	Verdanti    Civ = "verdanti"
	Tidecallers Civ = "tidecallers"
	Ashwalkers  Civ = "ashwalkers"
)

// DefaultCivs is the faction assignment order for new games.
var DefaultCivs = []Civ{Ironborn, Verdanti, Tidecallers, Ashwalkers}

// Valid reports whether c names a known faction.
func (c Civ) Valid() bool {
	switch c {
	case Ironborn, Verdanti, Tidecallers, Ashwalkers:
		return true
	}
	return false
}

// UnitCost applies the faction's unit cost reduction.
// Ironborn military units cost 1 less iron, floored at 0.
func (c Civ) UnitCost(cost Cost) Cost {
	if c == Ironborn {
		cost[1] = max(0, cost[1]-1)
	}
	return cost
}

// TechCost applies the faction's research discount.
// Ashwalkers pay 3/4 per component (integer division).
func (c Civ) TechCost(cost Cost) Cost {
	if c == Ashwalkers {
		return Cost{cost[0] * 3 / 4, cost[1] * 3 / 4, cost[2] * 3 / 4}
	}
	return cost
}

// ProvinceFood is extra food per owned province. Verdanti get +1.
func (c Civ) ProvinceFood() int {
	if c == Verdanti {
		return 1
	}
	return 0
}

// TradeIncome scales a trade route's base income. Tidecallers get 3/2.
func (c Civ) TradeIncome(base int) int {
	if c == Tidecallers {
		return base * 3 / 2
	}
	return base
}

// CombatGoldPerKill is gold looted by a winning side per enemy unit
// killed. Tidecallers loot 1 per kill.
func (c Civ) CombatGoldPerKill() int {
	if c == Tidecallers {
		return 1
	}
	return 0
}

// UniqueUnit returns the faction's unique unit type.
func (c Civ) UniqueUnit() (UnitType, bool) {
	switch c {
	case Ironborn:
		return Huscarl, true
	case Verdanti:
		return Herbalist, true
	case Tidecallers:
		return Corsair, true
	case Ashwalkers:
		return Sage, true
	}
	return "", false
}

// CivInfo is display metadata for the faction catalog endpoint.
type CivInfo struct {
	ID         Civ    `json:"id"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	Desc       string `json:"desc"`
	UniqueUnit string `json:"unique_unit"`
	UniqueDesc string `json:"unique_desc"`
}

// CivCatalog lists all factions in assignment order.
func CivCatalog() []CivInfo {
	return []CivInfo{
		{Ironborn, "Ironborn", "⚒️", "Military units cost -1 iron",
			"Huscarl", "6 str, immune to archer type bonus"},
		{Verdanti, "Verdanti", "🌿", "+1 food from all provinces",
			"Herbalist", "Heals 1 unit per turn in province"},
		{Tidecallers, "Tidecallers", "🌊", "Trade routes yield +50% gold",
			"Corsair", "3 str, captures 1 gold per enemy killed"},
		{Ashwalkers, "Ashwalkers", "🔥", "Tech costs -25%",
			"Sage", "Province gets +1 all resources"},
	}
}
