package state

import "github.com/greenm01/ec4x/internal/id"

// ProjectTargetKind discriminates what a Construction/RepairProject is
// building or fixing.
type ProjectTargetKind int

const (
	TargetShip ProjectTargetKind = iota
	TargetFacility
	TargetGroundUnit
	TargetIndustrialUnits
)

// ProjectTarget describes the concrete item under construction/repair.
type ProjectTarget struct {
	Kind        ProjectTargetKind
	ShipClass   ShipClass
	FacilityClass NeoriaClass
	IsKastra    bool
	GroundClass GroundUnitClass
	IUAmount    int
}

// ProjectStage is the lifecycle of a Construction/RepairProject (spec.md
// section 3: "queued -> active (dock assigned) -> commissioned").
type ProjectStage int

const (
	StageQueued ProjectStage = iota
	StageActive
	StageCommissioned
)

// ConstructionProject is an in-flight build.
type ConstructionProject struct {
	ID          id.ID
	Colony      id.ID
	Target      ProjectTarget
	Quantity    int
	TotalCost   int
	PaidCost    int
	TurnsRemaining int
	AssignedNeoria id.ID // Nil if orbital-shipyard-construction with no dock
	Stage       ProjectStage
}

func (p *ConstructionProject) Clone() *ConstructionProject { c := *p; return &c }

// RepairProject is an in-flight repair of a damaged Ship/Neoria/Kastra.
type RepairProject struct {
	ID             id.ID
	Colony         id.ID
	TargetShip     id.ID
	TargetNeoria   id.ID
	TargetKastra   id.ID
	TotalCost      int
	PaidCost       int
	TurnsRemaining int
	AssignedNeoria id.ID
	Stage          ProjectStage
}

func (p *RepairProject) Clone() *RepairProject { c := *p; return &c }
