// Package engine implements the phase resolver/orchestrator (spec.md
// section 4.3): newGame(config) -> state0 and resolveTurn(state,
// packets, rngSeed) -> (state', events), wiring command validation, the
// budget gate, the four fixed phases, and the invariant-poisoning
// rollback path together. Imports internal/rng rather than owning an
// RNG type itself, so internal/combat, internal/economy,
// internal/research and internal/espionage can all depend on
// internal/rng without a cycle back through this package.
package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/greenm01/ec4x/internal/budget"
	"github.com/greenm01/ec4x/internal/command"
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/rng"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

// NewGame returns an empty canonical state ready for a scenario/world
// generator to populate with houses, systems, lanes and starting
// fleets (spec.md section 4.3: "newGame(config) -> state0"). World
// generation itself lives outside the engine (spec.md section 1: the
// engine does not own map/scenario generation), so NewGame only seeds
// the per-game RNG basis and the initial Act/turn counters.
func NewGame(gameSeed uint64) *state.State {
	st := state.New()
	st.GameSeed = gameSeed
	st.Turn = 0
	st.Phase = state.PhaseMaintenance // turn 1's resolveTurn begins fresh from Conflict
	st.Act = state.ActProgression{Current: state.Act1LandGrab, StartTurn: 0}
	return st
}

// PoisonReport describes why a turn's resolution was discarded (spec.md
// section 4.3: "Engine invariants... are fatal and poison the turn").
type PoisonReport struct {
	Turn   int
	Reason string
}

// ResolveResult is resolveTurn's full output: the new state (or the
// untouched prior state, on poisoning), the combined event log, and
// per-house command/budget diagnostics.
type ResolveResult struct {
	State           *state.State
	Events          []event.Event
	Rejections      map[id.ID]command.Outcome
	BudgetSummaries map[id.ID]budget.Summary
	Poisoned        *PoisonReport
}

// ResolveTurn resolves exactly one turn from prev against packets,
// sharing one RNG seeded from (gameID, prev.Turn+1) across all four
// phases (spec.md section 4.3/5). prev is never mutated: ResolveTurn
// clones it immediately and only the clone is touched.
func ResolveTurn(prev *state.State, rules config.Rules, graph *starmap.Graph, packets []command.CommandPacket, gameID uuid.UUID) (result ResolveResult) {
	nextTurn := prev.Turn + 1

	defer func() {
		if rec := recover(); rec != nil {
			reason := fmt.Sprintf("%v", rec)
			result = ResolveResult{
				State: prev,
				Events: []event.Event{
					event.New(event.InvariantPoisoned, nextTurn).With("reason", reason),
				},
				Poisoned: &PoisonReport{Turn: nextTurn, Reason: reason},
			}
		}
	}()

	st := prev.Clone()
	st.Turn = nextTurn
	seed := rng.SeedFor(gameID, nextTurn)
	r := rng.New(seed)

	outcomes := make(map[id.ID]command.Outcome, len(packets))
	budgets := make(map[id.ID]budget.Result, len(packets))
	summaries := make(map[id.ID]budget.Summary, len(packets))
	submitted := make(map[id.ID]bool, len(packets))
	pktByHouse := make(map[id.ID]command.CommandPacket, len(packets))

	for _, pkt := range packets {
		submitted[pkt.House] = true
		pktByHouse[pkt.House] = pkt
		out := command.Validate(st, graph, rules, pkt)
		outcomes[pkt.House] = out

		house := st.Houses[pkt.House]
		if house == nil {
			continue
		}
		bres := budget.Gate(st, rules, house, pkt, out)
		budgets[pkt.House] = bres
		summaries[pkt.House] = bres.Summary
	}

	var events []event.Event

	st.Phase = state.PhaseConflict
	events = append(events, resolveConflict(r, st, rules, outcomes, budgets, nextTurn)...)

	st.Phase = state.PhaseIncome
	events = append(events, resolveIncome(st, rules, nextTurn)...)

	st.Phase = state.PhaseCommand
	events = append(events, resolveCommand(r, st, rules, graph, outcomes, budgets, pktByHouse, nextTurn)...)

	st.Phase = state.PhaseMaintenance
	events = append(events, resolveMaintenance(r, st, rules, submitted, nextTurn)...)

	checkInvariants(st)

	result = ResolveResult{
		State:           st,
		Events:          events,
		Rejections:      outcomes,
		BudgetSummaries: summaries,
	}
	return result
}
