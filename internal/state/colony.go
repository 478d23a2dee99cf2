package state

import "github.com/greenm01/ec4x/internal/id"

// BlockadeState records an active blockade against a Colony.
type BlockadeState struct {
	Active bool
	By     id.ID // blockading House
	Turns  int    // consecutive turns under blockade
}

// TerraformProject tracks an in-flight planet-class upgrade at a Colony
// (spec.md section 4.3 Command phase "Terraform start").
type TerraformProject struct {
	TargetClass PlanetClass
	TotalCost   int
	PaidCost    int
}

// Colony is a House's presence at one System; at most one per System
// (spec.md section 3).
type Colony struct {
	ID     id.ID
	Owner  id.ID
	System id.ID

	PopulationUnits int // PU
	TransferUnits   int // PTU awaiting conversion
	Infrastructure  int
	IndustrialUnits int
	ProductionCap   int
	TaxRate         int

	Blockade BlockadeState

	ConstructionQueue []id.ID // ConstructionProject ids, queued order
	ActiveConstruction []id.ID // ConstructionProject ids currently occupying a dock
	RepairQueue       []id.ID // RepairProject ids

	Terraform *TerraformProject

	GroundUnits []id.ID
	Neoriae     []id.ID // Neoria ids
	Kastrai     []id.ID // Kastra ids (Starbases)

	CapacityViolation bool
	AutoRepair        bool
}

func (c *Colony) Clone() *Colony {
	n := *c
	n.ConstructionQueue = append([]id.ID(nil), c.ConstructionQueue...)
	n.ActiveConstruction = append([]id.ID(nil), c.ActiveConstruction...)
	n.RepairQueue = append([]id.ID(nil), c.RepairQueue...)
	n.GroundUnits = append([]id.ID(nil), c.GroundUnits...)
	n.Neoriae = append([]id.ID(nil), c.Neoriae...)
	n.Kastrai = append([]id.ID(nil), c.Kastrai...)
	if c.Terraform != nil {
		t := *c.Terraform
		n.Terraform = &t
	}
	return &n
}

// NeoriaClass is the facility subclass (spec.md section 3).
type NeoriaClass int

const (
	Spaceport NeoriaClass = iota // 5 docks
	Shipyard                      // 10 docks
	Drydock                       // 5 docks, repair-only
)

// BaseDocks returns the undamaged, untechnologically-modified dock
// count for a NeoriaClass.
func (c NeoriaClass) BaseDocks() int {
	switch c {
	case Spaceport:
		return 5
	case Shipyard:
		return 10
	case Drydock:
		return 5
	default:
		return 0
	}
}

// FacilityState is the shared combat-state machine for Neoria/Kastra
// facilities (spec.md section 3): Undamaged -> Crippled -> Destroyed.
type FacilityState int

const (
	Undamaged FacilityState = iota
	Crippled
	Destroyed
)

// Neoria is a production facility at a Colony.
type Neoria struct {
	ID               id.ID
	Colony           id.ID
	Class            NeoriaClass
	CommissionedTurn int
	BaseDocks        int
	EffectiveDocks   int
	State            FacilityState
}

// Kastra is a defensive facility (Starbase); stats frozen at
// construction-time WEP tech level.
type Kastra struct {
	ID               id.ID
	Colony           id.ID
	CommissionedTurn int
	WEPAtBuild       int
	BaseDocks        int
	EffectiveDocks   int
	State            FacilityState
	SurveillanceUp   bool
}
