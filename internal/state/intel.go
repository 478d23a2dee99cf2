package state

import "github.com/greenm01/ec4x/internal/id"

// Visibility is the confidence level a House holds about a foreign
// system, per spec.md section 3/4.4. Levels only ever increase over a
// game's life except through explicit decay-to-staleness of the
// underlying snapshot's freshness, never a downgrade of the Level
// field itself.
type Visibility int

const (
	VisibilityNone Visibility = iota
	VisibilityAdjacent
	VisibilityScouted
	VisibilityObserved
	VisibilityOwned
)

// SystemIntel is a House's best-known snapshot of a foreign system.
type SystemIntel struct {
	System          id.ID
	Level           Visibility
	LastUpdatedTurn int
	// CorruptedUntilTurn is non-zero while an IntelCorrupted OngoingEffect
	// is scrambling numeric fields derived from this entry (spec.md 4.4).
	CorruptedUntilTurn int
}

// FleetIntel is a House's best-known snapshot of a foreign fleet.
// EstimatedCount holds the ship total of the last sighting; a direct
// detection also carries the exact breakdown (by ShipClass) in the
// Exact map.
type FleetIntel struct {
	Fleet           id.ID
	Owner           id.ID
	LastSeenSystem  id.ID
	LastUpdatedTurn int
	EstimatedCount  int
	Exact           map[ShipClass]int // nil unless this turn's sighting was a fresh detection
}

// ColonyIntel is a House's best-known snapshot of a foreign colony.
type ColonyIntel struct {
	Colony            id.ID
	Owner             id.ID
	LastUpdatedTurn   int
	EstimatedPop      int
	EstimatedIndustry int
	EstimatedDefenses int
}

// IntelDatabase is the per-House store of everything it knows about
// other Houses (spec.md section 3).
type IntelDatabase struct {
	Systems  map[id.ID]SystemIntel
	Fleets   map[id.ID]FleetIntel
	Colonies map[id.ID]ColonyIntel
}

// NewIntelDatabase returns an empty, ready-to-use database.
func NewIntelDatabase() IntelDatabase {
	return IntelDatabase{
		Systems:  make(map[id.ID]SystemIntel),
		Fleets:   make(map[id.ID]FleetIntel),
		Colonies: make(map[id.ID]ColonyIntel),
	}
}

// Clone deep-copies the database for the next turn's canonical state.
func (d IntelDatabase) Clone() IntelDatabase {
	c := NewIntelDatabase()
	for k, v := range d.Systems {
		c.Systems[k] = v
	}
	for k, v := range d.Fleets {
		fi := v
		if v.Exact != nil {
			fi.Exact = make(map[ShipClass]int, len(v.Exact))
			for sc, n := range v.Exact {
				fi.Exact[sc] = n
			}
		}
		c.Fleets[k] = fi
	}
	for k, v := range d.Colonies {
		c.Colonies[k] = v
	}
	return c
}

// UpsertSystem records a sighting, never downgrading an existing
// higher Level (spec.md 4.4: "never downgrades").
func (d *IntelDatabase) UpsertSystem(sys id.ID, level Visibility, turn int) {
	cur, ok := d.Systems[sys]
	if !ok || level > cur.Level {
		cur.Level = level
	}
	cur.System = sys
	cur.LastUpdatedTurn = turn
	d.Systems[sys] = cur
}

// UpsertColony records a fresh colony sighting. Unlike UpsertSystem,
// there is no weaker-estimate case to protect against: a sighting only
// ever occurs via a direct scout order, so the new estimate always
// replaces the old one outright.
func (d *IntelDatabase) UpsertColony(colony, owner id.ID, pop, industry, defenses, turn int) {
	d.Colonies[colony] = ColonyIntel{
		Colony:            colony,
		Owner:             owner,
		LastUpdatedTurn:   turn,
		EstimatedPop:      pop,
		EstimatedIndustry: industry,
		EstimatedDefenses: defenses,
	}
}

// UpsertFleet records a fresh fleet sighting. exact is non-nil only
// when this turn's sighting was a direct detection (spec.md section 3:
// "Estimated fields... fresh, high-detection sightings instead carry
// an exact ShipCounts breakdown").
func (d *IntelDatabase) UpsertFleet(fleet, owner, sys id.ID, turn int, exact map[ShipClass]int) {
	fi := FleetIntel{Fleet: fleet, Owner: owner, LastSeenSystem: sys, LastUpdatedTurn: turn}
	for _, n := range exact {
		fi.EstimatedCount += n
	}
	fi.Exact = exact
	d.Fleets[fleet] = fi
}
