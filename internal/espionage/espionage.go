// Package espionage resolves the single per-turn espionage action a
// house may submit (spec.md section 4.3g/4.7). Grounded on
// diplomacy/provider.go's detection-roll pattern (a Provider-computed
// chance consumed by a single resolve call) generalized from
// diplomatic-memory lookups into a detection-vs-CIC roll against a
// target house.
package espionage

import (
	"github.com/greenm01/ec4x/internal/command"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/rng"
	"github.com/greenm01/ec4x/internal/state"
)

// Outcome is the settled result of one espionage action.
type Outcome struct {
	Detected bool
	Events   []event.Event
}

// DetectionChance computes the target's roll-to-detect percentage from
// its CIC tech level and invested CIP, clamped to [5,95] so neither
// side is ever a certainty (spec.md section 4.7: "CIP buys detection
// chance on the target side").
func DetectionChance(targetCIC int, targetCIP int) int {
	c := 10 + targetCIC*5 + targetCIP/2
	if c < 5 {
		c = 5
	}
	if c > 95 {
		c = 95
	}
	return c
}

// Resolve executes ea on behalf of attacker against st, mutating st and
// attacker/target bookkeeping, and returns the events produced (spec.md
// section 4.3g/4.7).
func Resolve(r *rng.RNG, st *state.State, attacker *state.House, ea command.EspionageAction, turn int) Outcome {
	attacker.Espionage.ActionTakenTurn = turn

	var target *state.House
	if !ea.Target.IsNil() {
		target = st.Houses[ea.Target]
	}

	targetCIC := 0
	targetCIP := 0
	if target != nil {
		targetCIC = target.Tech[state.TechCIC]
		targetCIP = target.Espionage.CIP
	}

	chance := DetectionChance(targetCIC, targetCIP)
	detected := r.D100() <= chance

	out := Outcome{Detected: detected}

	switch ea.Kind {
	case command.EspionageTechTheft:
		if !detected && target != nil {
			stealTech(attacker, target)
			out.Events = append(out.Events, event.New(event.TechTheftExecuted, turn).WithHouse(attacker.ID).WithTarget(target.ID))
		}
	case command.EspionageSabotage:
		if !detected && target != nil {
			applyColonyDamage(st, target, 0.1)
			out.Events = append(out.Events, event.New(event.SabotageConducted, turn).WithHouse(attacker.ID).WithTarget(target.ID))
		}
	case command.EspionageAssassination:
		if !detected && target != nil {
			target.Prestige -= 10
			out.Events = append(out.Events, event.New(event.AssassinationAttempted, turn).WithHouse(attacker.ID).WithTarget(target.ID))
		}
	case command.EspionageCyberAttack:
		if !detected && target != nil {
			addEffect(st, target.ID, state.EffectStarbaseCrippled, ea.System, 1.0, 3)
			out.Events = append(out.Events, event.New(event.CyberAttackConducted, turn).WithHouse(attacker.ID).WithTarget(target.ID))
		}
	case command.EspionageIntelligenceTheft:
		if !detected && target != nil {
			copyIntel(attacker, target)
			out.Events = append(out.Events, event.New(event.IntelligenceTheftExecuted, turn).WithHouse(attacker.ID).WithTarget(target.ID))
		}
	case command.EspionageDisinformation:
		if !detected && target != nil {
			addEffect(st, target.ID, state.EffectIntelCorrupted, ea.System, 0.3, 4)
			out.Events = append(out.Events, event.New(event.DisinformationPlanted, turn).WithHouse(attacker.ID).WithTarget(target.ID))
		}
	case command.EspionageEconomicManipulation:
		if !detected && target != nil {
			addEffect(st, target.ID, state.EffectTaxReduction, id.Nil, 0.2, 3)
			out.Events = append(out.Events, event.New(event.EconomicManipulationExecuted, turn).WithHouse(attacker.ID).WithTarget(target.ID))
		}
	case command.EspionagePsyops:
		if !detected && target != nil {
			target.Prestige -= 3
			out.Events = append(out.Events, event.New(event.PsyopsCampaignLaunched, turn).WithHouse(attacker.ID).WithTarget(target.ID))
		}
	case command.EspionageCounterIntelSweep:
		out.Events = append(out.Events, event.New(event.CounterIntelSweepExecuted, turn).WithHouse(attacker.ID))
	}

	if detected && target != nil {
		out.Events = append(out.Events,
			event.New(event.SpyMissionDetected, turn).WithHouse(attacker.ID).WithTarget(target.ID),
		)
	}

	return out
}

func stealTech(attacker, target *state.House) {
	for f := state.TechField(0); f < state.TechFieldCount; f++ {
		if target.Tech[f] > attacker.Tech[f]+1 {
			attacker.Tech[f] = target.Tech[f] - 1
		}
	}
}

func applyColonyDamage(st *state.State, target *state.House, frac float64) {
	for _, cid := range st.ColoniesByOwner[target.ID] {
		c := st.Colonies[cid]
		if c == nil {
			continue
		}
		c.IndustrialUnits -= int(float64(c.IndustrialUnits) * frac)
		if c.IndustrialUnits < 0 {
			c.IndustrialUnits = 0
		}
	}
}

func copyIntel(attacker, target *state.House) {
	for k, v := range target.IntelDB.Systems {
		if cur, ok := attacker.IntelDB.Systems[k]; !ok || v.Level > cur.Level {
			attacker.IntelDB.Systems[k] = v
		}
	}
}

// addEffect records a new OngoingEffect on st targeting targetHouse,
// optionally scoped to sys (spec.md section 3).
func addEffect(st *state.State, targetHouse id.ID, kind state.EffectKind, sys id.ID, magnitude float64, turns int) {
	st.AddEffect(&state.OngoingEffect{
		Kind:           kind,
		Target:         targetHouse,
		System:         sys,
		Magnitude:      magnitude,
		TurnsRemaining: turns,
	})
}
