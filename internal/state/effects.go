package state

import "github.com/greenm01/ec4x/internal/id"

// EffectKind enumerates the time-bounded modifiers espionage can
// produce (spec.md section 3).
type EffectKind int

const (
	EffectSRPReduction EffectKind = iota
	EffectNCVReduction
	EffectTaxReduction
	EffectStarbaseCrippled
	EffectIntelBlocked
	EffectIntelCorrupted
)

// OngoingEffect is a time-bounded modifier. Decremented in Maintenance.
type OngoingEffect struct {
	ID           id.ID
	Kind         EffectKind
	Target       id.ID // House
	System       id.ID // optional, Nil if not system-scoped
	Magnitude    float64
	TurnsRemaining int
}

func (e *OngoingEffect) Clone() *OngoingEffect { c := *e; return &c }

// TransitStatus distinguishes how a PopulationInTransit resolved.
type TransitStatus int

const (
	TransitPending TransitStatus = iota
	TransitDelivered
	TransitRedirected
	TransitLost
)

// PopulationInTransit is a civilian transfer packet between two colonies
// (spec.md section 3).
type PopulationInTransit struct {
	ID          id.ID
	Owner       id.ID
	Source      id.ID
	Destination id.ID
	PTU         int
	CostPaid    int
	ArrivalTurn int
}

func (t *PopulationInTransit) Clone() *PopulationInTransit { c := *t; return &c }

// Act is the coarse public game phase (spec.md section 3/glossary).
type Act int

const (
	Act1LandGrab Act = iota
	Act2RisingTensions
	Act3TotalWar
	Act4Endgame
)

// ActProgression is global, public game-phase tracking.
type ActProgression struct {
	Current                 Act
	StartTurn               int
	LastColonizationPercent float64
	LastPrestigeTotal       int
}
