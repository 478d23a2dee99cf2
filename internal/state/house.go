package state

import "github.com/greenm01/ec4x/internal/id"

// TechField is one of the fourteen named technology tracks a House
// advances independently. Kept as a fixed enum-indexed array per
// spec.md section 9 ("numbered-level configs... become mappings from
// integer level to a level-data record, not per-level flattened
// fields"): House.Tech is a [TechFieldCount]int array, not fourteen
// separate struct fields.
type TechField int

const (
	TechEL TechField = iota // Economic
	TechSL                  // Science
	TechCST                 // Construction
	TechWEP                 // Weapons
	TechTER                 // Terraforming
	TechELI                 // Electronic Intelligence
	TechCLK                 // Cloaking
	TechCIC                 // Counter-Intelligence
	TechSLD                 // Planetary Shields
	TechSTL                 // Strategic Lift
	TechFC                  // Flagship Command
	TechSC                  // Strategic Command
	TechFD                  // Fighter Doctrine
	TechACO                 // Advanced Carrier Operations
	TechFieldCount
)

func (f TechField) String() string {
	names := [...]string{"EL", "SL", "CST", "WEP", "TER", "ELI", "CLK", "CIC", "SLD", "STL", "FC", "SC", "FD", "ACO"}
	if int(f) < 0 || int(f) >= len(names) {
		return "Unknown"
	}
	return names[f]
}

// HouseStatus is the top-level state machine named in spec.md section 4.3.
// Active <-> Autopilot is reversible; DefensiveCollapse is terminal.
type HouseStatus int

const (
	HouseActive HouseStatus = iota
	HouseAutopilot
	HouseDefensiveCollapse
)

func (s HouseStatus) String() string {
	switch s {
	case HouseActive:
		return "Active"
	case HouseAutopilot:
		return "Autopilot"
	case HouseDefensiveCollapse:
		return "DefensiveCollapse"
	default:
		return "Unknown"
	}
}

// TaxWindow holds the rolling recent tax-rate history used for the
// 6-turn average that drives prestige bonuses/penalties (spec.md
// section 4.3 Income phase).
type TaxWindow struct {
	Rates [6]int // most recent rate at index Count-1
	Count int     // number of entries populated so far (caps at 6)
}

// Push records a new tax rate, evicting the oldest entry once full.
func (w *TaxWindow) Push(rate int) {
	if w.Count < len(w.Rates) {
		w.Rates[w.Count] = rate
		w.Count++
		return
	}
	copy(w.Rates[:], w.Rates[1:])
	w.Rates[len(w.Rates)-1] = rate
}

// Average returns the mean of the populated window, or 0 if empty.
func (w *TaxWindow) Average() float64 {
	if w.Count == 0 {
		return 0
	}
	sum := 0
	for i := 0; i < w.Count; i++ {
		sum += w.Rates[i]
	}
	return float64(sum) / float64(w.Count)
}

// Espionage tracks a House's espionage budget bookkeeping (spec.md
// section 3/4.7): EBP/CIP per-turn allocation plus cumulative invested.
type Espionage struct {
	EBP               int
	CIP               int
	EBPInvestedTotal  int
	CIPInvestedTotal  int
	ActionTakenTurn   int // turn of last espionage action; 0 means never
}

// House is the player faction aggregate (spec.md section 3).
type House struct {
	ID       id.ID
	Name     string
	Treasury int // PP, signed
	Prestige int // signed

	Status HouseStatus

	Tech [TechFieldCount]int

	Espionage Espionage

	TaxRate   int // current rate, 0..100
	TaxWindow TaxWindow

	Relations map[id.ID]id.ID // other House id -> DiplomaticRelation id (the Relation entity table lives on State.Relations)

	IntelDB IntelDatabase

	TurnsWithoutOrders       int
	NegativePrestigeTurns    int
	ConsecutiveShortfallTurns int
	PlanetBreakerCount       int

	// Research carries the multi-cycle per-field point carryover and the
	// rolling 6-turn invested-RP window RollBreakthrough's chance is
	// computed from (spec.md section 4.7).
	ResearchAccumulated map[TechField]int
	ResearchRecent6     [6]int
	ResearchRecentCount int

	Eliminated bool
}

// Clone deep-copies a House for use in the next turn's canonical state.
func (h *House) Clone() *House {
	c := *h
	c.Relations = make(map[id.ID]id.ID, len(h.Relations))
	for k, v := range h.Relations {
		c.Relations[k] = v
	}
	c.IntelDB = h.IntelDB.Clone()
	c.ResearchAccumulated = make(map[TechField]int, len(h.ResearchAccumulated))
	for k, v := range h.ResearchAccumulated {
		c.ResearchAccumulated[k] = v
	}
	return &c
}

// IsDefensiveCollapse reports whether this house is in the terminal
// DefensiveCollapse status.
func (h *House) IsDefensiveCollapse() bool { return h.Status == HouseDefensiveCollapse }
