package combat

import (
	"sort"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/state"
)

// TargetFraction is the share of a shooting house's attack strength
// directed at one enemy house (spec.md section 4.6: "targeting matrix,
// fraction-based, default even split"). Commanders may bias this later;
// today resolve.go always builds an even split across live enemies.
type TargetFraction struct {
	Target id.ID
	Share  float64
}

// EvenSplit divides 1.0 evenly across every enemy of house present in
// b, excluding house itself and any force with no live ships.
func EvenSplit(b *Battle, house id.ID, st *state.State) []TargetFraction {
	var enemies []id.ID
	for hid, f := range b.Forces {
		if hid == house {
			continue
		}
		if liveShipCount(st, f) > 0 {
			enemies = append(enemies, hid)
		}
	}
	if len(enemies) == 0 {
		return nil
	}
	sort.Slice(enemies, func(i, j int) bool { return enemies[i].Index() < enemies[j].Index() })
	share := 1.0 / float64(len(enemies))
	out := make([]TargetFraction, len(enemies))
	for i, e := range enemies {
		out[i] = TargetFraction{Target: e, Share: share}
	}
	return out
}

func liveShipCount(st *state.State, f *Force) int {
	n := 0
	for _, sid := range f.Ships {
		if sh := st.Ships[sid]; sh != nil && sh.State != state.Destroyed {
			n++
		}
	}
	return n
}

// liveShips returns f's undestroyed ships, ascending by ShipClass so
// that hit absorption (spec.md section 4.6: "ascending ship-class
// priority for hit absorption") always lands on the lowest surviving
// ShipClass first.
func liveShips(st *state.State, f *Force) []*state.Ship {
	var out []*state.Ship
	for _, sid := range f.Ships {
		if sh := st.Ships[sid]; sh != nil && sh.State != state.Destroyed {
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		return out[i].ID.Index() < out[j].ID.Index()
	})
	return out
}

// pickTarget returns the next live ship on the defending side to absorb
// a hit, cycling round-robin within the lowest live ShipClass bucket.
func pickTarget(st *state.State, defender *Force, cursor int) (*state.Ship, int) {
	live := liveShips(st, defender)
	if len(live) == 0 {
		return nil, cursor
	}
	n := 1
	for n < len(live) && live[n].Class == live[0].Class {
		n++
	}
	sh := live[cursor%n]
	return sh, cursor + 1
}

// applyCER rolls rules.CER for one shooter-vs-target pairing and
// mutates target's FacilityState in place, returning the outcome.
func applyCER(rules config.Rules, roll int, shooter *state.Ship, target *state.Ship, drm int) config.CEROutcome {
	outcome := RollCER(rules, shooter.WEPAtBuild, target.DS, drm, roll)
	switch outcome {
	case config.CERCripple:
		if target.State == state.Undamaged {
			target.State = state.Crippled
		}
	case config.CERDestroy:
		target.State = state.Destroyed
	}
	return outcome
}
