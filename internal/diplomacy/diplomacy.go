// Package diplomacy applies DiplomaticCommands to the canonical
// Relation table and enforces the pact/violation bookkeeping described
// in spec.md sections 4.3/4.7. Grounded on diplomacy/diplomacy.go's
// allowed-transition table (the teacher's own Neutral/Ally/Hostile/
// Enemy state machine) reused near-verbatim since it already matches
// spec.md's transition set; only the storage (per-pair Relation entity
// in the canonical state, not a map owned by the diplomacy package
// itself) and the prestige-penalty bookkeeping are new.
package diplomacy

import (
	"github.com/greenm01/ec4x/internal/command"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/state"
)

// Apply transitions the relation between house and dc.Target per the
// allowed-transition table in spec.md section 4.3 (state machines) and
// returns the events produced. Validation (target exists, target != self)
// has already run in internal/command; Apply assumes a validated command.
func Apply(st *state.State, house *state.House, dc command.DiplomaticCommand, turn int) []event.Event {
	r := st.FindRelation(house.ID, dc.Target)
	var events []event.Event

	switch dc.Kind {
	case command.DiploProposePact:
		if r.State == state.RelationNeutral && r.Proposal == nil {
			r.Proposal = &state.PendingProposal{Proposer: house.ID, Target: dc.Target, ExpiresAt: turn + 3}
			events = append(events, event.New(event.TreatyProposed, turn).WithHouse(house.ID).WithTarget(dc.Target))
		}
	case command.DiploAcceptPact:
		if r.Proposal != nil && r.Proposal.Target == house.ID {
			r.State = state.RelationAlly
			r.PactExpiresAt = 0
			r.Proposal = nil
			events = append(events, event.New(event.TreatyAccepted, turn).WithHouse(house.ID).WithTarget(dc.Target),
				event.New(event.DiplomaticStateChanged, turn).WithHouse(house.ID).WithTarget(dc.Target).With("state", r.State.String()))
		}
	case command.DiploWithdrawProposal:
		if r.Proposal != nil && r.Proposal.Proposer == house.ID {
			r.Proposal = nil
		}
	case command.DiploBreakPact:
		if r.State == state.RelationAlly {
			r.State = state.RelationNeutral
			house.Prestige -= 5
			events = append(events,
				event.New(event.TreatyBroken, turn).WithHouse(house.ID).WithTarget(dc.Target),
				event.New(event.PrestigeLoss, turn).WithHouse(house.ID).With("reason", "broke pact").With("amount", 5),
				event.New(event.DiplomaticStateChanged, turn).WithHouse(house.ID).WithTarget(dc.Target).With("state", r.State.String()),
			)
		}
	case command.DiploDeclareHostile:
		if r.State == state.RelationNeutral {
			r.State = state.RelationHostile
			events = append(events, event.New(event.DiplomaticStateChanged, turn).WithHouse(house.ID).WithTarget(dc.Target).With("state", r.State.String()))
		}
	case command.DiploDeclareEnemy:
		if r.State == state.RelationHostile {
			r.State = state.RelationEnemy
			events = append(events, event.New(event.DiplomaticStateChanged, turn).WithHouse(house.ID).WithTarget(dc.Target).With("state", r.State.String()))
		}
	case command.DiploSetNeutral:
		if r.State == state.RelationEnemy {
			r.State = state.RelationNeutral
			events = append(events, event.New(event.DiplomaticStateChanged, turn).WithHouse(house.ID).WithTarget(dc.Target).With("state", r.State.String()))
		}
	}

	return events
}

// RecordViolation applies the cascading prestige penalty for a pact
// violation: -5 for the first, -3 for each repeat (spec.md section 4.7).
func RecordViolation(r *state.Relation, house *state.House) int {
	r.ViolationCount++
	penalty := 3
	if r.ViolationCount == 1 {
		penalty = 5
	}
	house.Prestige -= penalty
	return penalty
}
