package combat

import (
	"sort"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/rng"
	"github.com/greenm01/ec4x/internal/state"
)

// maxSpaceRounds bounds the ship-to-ship slugging match so a battle
// between two forces that keep missing always terminates (spec.md
// section 4.6 names an explicit cap only for bombardment; Space/Orbital
// get the same generous cap so determinism never depends on an
// unbounded loop).
const maxSpaceRounds = 12

// maxBombardmentRounds is the explicit cap spec.md section 4.6 names.
const maxBombardmentRounds = 3

// Resolve fights b to completion across its three theaters and returns
// the full event log, mutating the Ships/GroundUnits/Kastrai/Colonies
// referenced by b's Forces in place (spec.md section 4.3c-h).
func Resolve(r *rng.RNG, st *state.State, rules config.Rules, b *Battle, wantsInvasion, wantsBlitz, wantsBombard bool, turn int) []event.Event {
	var events []event.Event

	houseIDs := sortedHouseIDs(b)
	events = append(events, event.New(event.CombatPhaseBegan, turn).WithSystem(b.System))

	detections := make(map[id.ID]DetectionOutcome)
	for _, hid := range houseIDs {
		f := b.Forces[hid]
		best := Intercept
		for otherID, other := range b.Forces {
			if otherID == hid {
				continue
			}
			_, hasSurv := hasUncrippledKastra(st, st.ColonyBySystem[b.System])
			d := Detect(f.CLK, other.ELI, hasSurv)
			if d > best {
				best = d
			}
		}
		detections[hid] = best
	}

	events = append(events, fightTheater(r, st, rules, b, TheaterSpace, detections, maxSpaceRounds, turn)...)

	survivors := housesWithLiveShips(st, b)
	if len(survivors) > 1 {
		// Space never cleared; Orbital/Planetary cannot proceed.
		events = append(events, event.New(event.CombatPhaseCompleted, turn).WithSystem(b.System))
		return events
	}

	events = append(events, fightTheater(r, st, rules, b, TheaterOrbital, detections, maxSpaceRounds, turn)...)

	if wantsBombard || wantsInvasion || wantsBlitz {
		colID := st.ColonyBySystem[b.System]
		if colID.IsNil() {
			events = append(events, event.New(event.CombatPhaseCompleted, turn).WithSystem(b.System))
			return events
		}
		events = append(events, resolvePlanetary(r, st, rules, b, colID, wantsInvasion, wantsBlitz, wantsBombard, turn)...)
	}

	events = append(events, event.New(event.CombatPhaseCompleted, turn).WithSystem(b.System))
	return events
}

func sortedHouseIDs(b *Battle) []id.ID {
	var ids []id.ID
	for hid := range b.Forces {
		ids = append(ids, hid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Index() < ids[j].Index() })
	return ids
}

func housesWithLiveShips(st *state.State, b *Battle) []id.ID {
	var ids []id.ID
	for hid, f := range b.Forces {
		if f.Retreating {
			continue
		}
		if liveShipCount(st, f) > 0 {
			ids = append(ids, hid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Index() < ids[j].Index() })
	return ids
}

// fightTheater runs rounds of simultaneous fire until at most one house
// has live ships left, a round cap is hit, or every remaining house is
// Retreating (spec.md section 4.6).
func fightTheater(r *rng.RNG, st *state.State, rules config.Rules, b *Battle, theater Theater, detections map[id.ID]DetectionOutcome, cap int, turn int) []event.Event {
	var events []event.Event
	events = append(events, event.New(event.CombatTheaterBegan, turn).WithSystem(b.System).With("theater", int(theater)))

	cursors := make(map[id.ID]int)

	for round := 1; round <= cap; round++ {
		active := housesWithLiveShips(st, b)
		if len(active) < 2 {
			break
		}

		type shot struct {
			shooterHouse id.ID
			shooter      *state.Ship
			target       *state.Ship
			drm          int
		}
		var shots []shot

		for _, hid := range active {
			f := b.Forces[hid]
			fractions := EvenSplit(b, hid, st)
			if len(fractions) == 0 {
				continue
			}
			shooters := liveShips(st, f)
			moraleDRM := f.MoraleDRM
			roundDRM := 0
			if round == 1 {
				roundDRM = detections[hid].RoundOneDRM()
			}
			for i, sh := range shooters {
				tf := fractions[i%len(fractions)]
				defender := b.Forces[tf.Target]
				target, next := pickTarget(st, defender, cursors[tf.Target])
				cursors[tf.Target] = next
				if target == nil {
					continue
				}
				shots = append(shots, shot{shooterHouse: hid, shooter: sh, target: target, drm: moraleDRM + roundDRM})
			}
		}

		for _, sh := range shots {
			if sh.target.State == state.Destroyed {
				continue
			}
			roll := r.D100()
			outcome := applyCER(rules, roll, sh.shooter, sh.target, sh.drm)
			events = append(events, event.New(event.WeaponFired, turn).WithHouse(sh.shooterHouse).WithSystem(b.System))
			switch outcome {
			case config.CERCripple:
				events = append(events, event.New(event.ShipDamaged, turn).WithSystem(b.System).With("ship", sh.target.ID.String()))
			case config.CERDestroy:
				events = append(events, event.New(event.ShipDestroyed, turn).WithSystem(b.System).With("ship", sh.target.ID.String()))
				if sh.target.Class == state.ShipCarrier || sh.target.Class == state.ShipSuperCarrier {
					events = append(events, event.New(event.CarrierDestroyed, turn).WithSystem(b.System))
				}
			}
		}
	}

	events = append(events, event.New(event.CombatTheaterCompleted, turn).WithSystem(b.System).With("theater", int(theater)))
	return events
}
