// Package combat resolves a MultiHouseBattle at one system across its
// three theaters (spec.md section 4.3c-h and 4.6): detection, targeting,
// CER-table damage allocation, morale, shields, ground combat and
// retreat. Grounded on ships/formation_combat.go's CombatContext
// (attacker/defender pairing carrying precomputed modifiers),
// generalized from a one-on-one stack fight into the multi-house,
// multi-theater resolution spec.md names, with the round-by-round
// damage distribution loop grounded on other_examples' sogserver
// fleet_fight.go.
package combat

import (
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/state"
)

// DetectionOutcome is the per-attacker detection result, fixing the
// round-1 DRM bonus (spec.md section 4.6).
type DetectionOutcome int

const (
	Intercept DetectionOutcome = iota
	Surprise
	Ambush
)

// RoundOneDRM is the die-roll modifier Detection grants in round 1 only.
func (d DetectionOutcome) RoundOneDRM() int {
	switch d {
	case Ambush:
		return 4
	case Surprise:
		return 3
	default:
		return 0
	}
}

// Detect maps attacker CLK vs defender ELI (plus a starbase surveillance
// bonus) to a DetectionOutcome (spec.md section 4.6: "Ambush: DRM >= 5,
// Surprise: DRM in [1,4], Intercept: otherwise").
func Detect(attackerCLK, defenderELI int, defenderHasSurveillance bool) DetectionOutcome {
	drm := attackerCLK - defenderELI
	if defenderHasSurveillance {
		drm += 2
	}
	switch {
	case drm >= 5:
		return Ambush
	case drm >= 1:
		return Surprise
	default:
		return Intercept
	}
}

// Theater is one of the three sequential combat stages (spec.md
// section 4.6 glossary): a battle only proceeds into Orbital once Space
// is cleared of contesting houses, and into Planetary only once Orbital
// is cleared and an Invade/Blitz/Bombard order is present.
type Theater int

const (
	TheaterSpace Theater = iota
	TheaterOrbital
	TheaterPlanetary
)

// Force aggregates one house's participation in a MultiHouseBattle at a
// system (spec.md section 4.3b/4.6).
type Force struct {
	House       id.ID
	Ships       []id.ID // Ship ids, Space/Orbital combatants
	GroundUnits []id.ID // GroundUnit ids, Planetary combatants
	MoraleDRM   int
	CLK, ELI    int
	Attacker    bool // true if this force initiated the engagement
	Retreating  bool
	OutgoingLane id.ID // lane a retreating force will use, Nil if pinned
}

// Battle groups every participating house's Force at one system (spec.md
// section 4.3b: "MultiHouseBattle").
type Battle struct {
	System id.ID
	Forces map[id.ID]*Force // House -> Force
}

// CERBucket clamps (attackerWEP - defenderDS) into the coarse range the
// config.Rules.CER/GroundCER tables are keyed by (spec.md section 4.6).
func CERBucket(attackerWEP, defenderDS int) int {
	d := attackerWEP - defenderDS
	if d < -4 {
		return -4
	}
	if d > 4 {
		return 4
	}
	return d
}

// RollCER consumes one d100 roll against rules.CER at the bucket for
// (attackerWEP, defenderDS), adjusted by drm (morale + detection +
// round bonuses), and returns the outcome. Used for Space/Orbital
// ship-to-ship fire and starbase combat.
func RollCER(rules config.Rules, attackerWEP, defenderDS, drm, roll int) config.CEROutcome {
	return rollTable(rules.CER, attackerWEP, defenderDS, drm, roll)
}

// RollGroundCER is RollCER's counterpart for marine/army/battery
// exchanges, consulting rules.GroundCER instead (spec.md section 4.6:
// "ground combat... CER table").
func RollGroundCER(rules config.Rules, attackerWEP, defenderDS, drm, roll int) config.CEROutcome {
	return rollTable(rules.GroundCER, attackerWEP, defenderDS, drm, roll)
}

func rollTable(table map[int]config.CERRow, attackerWEP, defenderDS, drm, roll int) config.CEROutcome {
	bucket := CERBucket(attackerWEP, defenderDS) + drm
	if bucket < -4 {
		bucket = -4
	}
	if bucket > 4 {
		bucket = 4
	}
	row, ok := table[bucket]
	if !ok {
		row = table[0]
	}
	switch {
	case roll < row.MissUpto:
		return config.CERMiss
	case roll < row.CrippleUpto:
		return config.CERCripple
	default:
		return config.CERDestroy
	}
}

// MoraleTierFor returns the prestige-tier key rules.Morale is indexed by
// (spec.md section 4.6: "morale DRM from prestige tier").
func MoraleTierFor(prestige int) string {
	switch {
	case prestige < -50:
		return "Collapsing"
	case prestige < -10:
		return "VeryLow"
	case prestige < 0:
		return "Low"
	case prestige < 50:
		return "Normal"
	case prestige < 150:
		return "High"
	default:
		return "VeryHigh"
	}
}

func hasUncrippledKastra(st *state.State, colonyID id.ID) (*state.Kastra, bool) {
	c := st.Colonies[colonyID]
	if c == nil {
		return nil, false
	}
	for _, kid := range c.Kastrai {
		if k := st.Kastrai[kid]; k != nil && k.State == state.Undamaged {
			return k, true
		}
	}
	return nil, false
}
