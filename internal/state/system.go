package state

import "github.com/greenm01/ec4x/internal/id"

// HexCoord is an axial hex coordinate (spec.md section 2: "Hex graph
// of systems").
type HexCoord struct {
	Q, R int
}

// PlanetClass ranks a system's habitability, best to worst.
type PlanetClass int

const (
	Eden PlanetClass = iota
	Lush
	Benign
	Harsh
	Hostile
	Desolate
	Extreme
)

func (p PlanetClass) String() string {
	names := [...]string{"Eden", "Lush", "Benign", "Harsh", "Hostile", "Desolate", "Extreme"}
	if int(p) < 0 || int(p) >= len(names) {
		return "Unknown"
	}
	return names[p]
}

// ResourceRating ranks a system's resource richness.
type ResourceRating int

const (
	VeryPoor ResourceRating = iota
	Poor
	Abundant
	Rich
	VeryRich
)

// System is a star-map node (spec.md section 3). Immutable after map
// generation except for PlanetClass, which a completed TerraformProject
// raises one step.
type System struct {
	ID             id.ID
	Hex            HexCoord
	Ring           int
	PlanetClass    PlanetClass
	ResourceRating ResourceRating
	Name           string
	Lanes          []id.ID // incident JumpLane ids
}

func (s *System) Clone() *System {
	c := *s
	c.Lanes = append([]id.ID(nil), s.Lanes...)
	return &c
}

// LaneClass controls which fleets may traverse a JumpLane.
type LaneClass int

const (
	LaneMajor LaneClass = iota
	LaneMinor
	LaneRestricted
)

// JumpLane is an immutable edge between two systems.
type JumpLane struct {
	ID    id.ID
	A, B  id.ID // System ids
	Class LaneClass
	// RestrictedTo lists the ShipClasses allowed to traverse a Restricted
	// lane while uncrippled. Empty/ignored for Major/Minor lanes.
	RestrictedTo []ShipClass
}

func (l *JumpLane) Other(sys id.ID) id.ID {
	if l.A == sys {
		return l.B
	}
	return l.A
}
