package stratagem

// TechID identifies one of the nine researchable technologies.
type TechID string

const (
	// Bronze age
	Agriculture TechID = "agr"
	Mining      TechID = "min"
	Masonry     TechID = "mas"
	// Iron age
	Tactics       TechID = "tac"
	Commerce      TechID = "com"
	Fortification TechID = "for"
	// Steel age
	Blitz         TechID = "bli"
	SiegeCraft    TechID = "sie"
	DiplomacyTech TechID = "dip"
)

// allTechs fixes a deterministic iteration order.
var allTechs = []TechID{
	Agriculture, Mining, Masonry,
	Tactics, Commerce, Fortification,
	Blitz, SiegeCraft, DiplomacyTech,
}

// techAge is the minimum age required to research each tech.
var techAge = map[TechID]int{
	Agriculture: 1, Mining: 1, Masonry: 1,
	Tactics: 2, Commerce: 2, Fortification: 2,
	Blitz: 3, SiegeCraft: 3, DiplomacyTech: 3,
}

// techGroups: techs within one age group are mutually exclusive.
var techGroups = map[int][]TechID{
	1: {Agriculture, Mining, Masonry},
	2: {Tactics, Commerce, Fortification},
	3: {Blitz, SiegeCraft, DiplomacyTech},
}

var techCost = map[TechID]Cost{
	Agriculture: {3, 0, 2}, Mining: {0, 3, 2}, Masonry: {2, 2, 1},
	Tactics: {3, 3, 2}, Commerce: {2, 0, 5}, Fortification: {2, 4, 2},
	Blitz: {5, 5, 3}, SiegeCraft: {3, 6, 3}, DiplomacyTech: {3, 3, 6},
}

// TechInfo is display metadata for a tech.
type TechInfo struct {
	ID   TechID `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	Cost Cost   `json:"cost"`
	Desc string `json:"desc"`
}

var techInfo = map[TechID]TechInfo{
	Agriculture:   {Agriculture, "Agriculture", 1, techCost[Agriculture], "+1 food from farms"},
	Mining:        {Mining, "Mining", 1, techCost[Mining], "+1 iron from mines"},
	Masonry:       {Masonry, "Masonry", 1, techCost[Masonry], "Buildings complete instantly"},
	Tactics:       {Tactics, "Tactics", 2, techCost[Tactics], "All units +1 strength"},
	Commerce:      {Commerce, "Commerce", 2, techCost[Commerce], "Markets produce +2 gold"},
	Fortification: {Fortification, "Fortification", 2, techCost[Fortification], "All provinces +1 defense"},
	Blitz:         {Blitz, "Blitz", 3, techCost[Blitz], "All units +1 speed"},
	SiegeCraft:    {SiegeCraft, "Siege Craft", 3, techCost[SiegeCraft], "Siege units +3 vs fortifications"},
	DiplomacyTech: {DiplomacyTech, "Diplomacy", 3, techCost[DiplomacyTech], "+2 gold/turn per active treaty"},
}

// TechCatalog lists all techs in age order.
func TechCatalog() []TechInfo {
	out := make([]TechInfo, 0, len(allTechs))
	for _, t := range allTechs {
		out = append(out, techInfo[t])
	}
	return out
}

// ValidTech reports whether s names a known tech.
func ValidTech(s string) (TechID, bool) {
	t := TechID(s)
	_, ok := techAge[t]
	return t, ok
}

// CanResearch reports whether a player at the given age holding the
/// given techs may research t: not already held, age reached, and no
// other tech from the same age group held.
func CanResearch(age int, techs []TechID, t TechID) bool {
	if hasTech(techs, t) {
		return false
	}
	ta, ok := techAge[t]
	if !ok || ta > age {
		return false
	}
	for _, g := range techGroups[ta] {
		if hasTech(techs, g) {
			return false
		}
	}
	return true
}

// AvailableTechs lists what the player could research right now.
func AvailableTechs(age int, techs []TechID) []TechID {
	var out []TechID
	for _, t := range allTechs {
		if CanResearch(age, techs, t) {
			out = append(out, t)
		}
	}
	return out
}
