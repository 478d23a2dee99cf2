package state

import "github.com/greenm01/ec4x/internal/id"

// DiplomaticState is the relation state machine between an ordered
// pair of houses (spec.md section 3/4.3).
type DiplomaticState int

const (
	RelationNeutral DiplomaticState = iota
	RelationAlly
	RelationHostile
	RelationEnemy
)

func (s DiplomaticState) String() string {
	switch s {
	case RelationNeutral:
		return "Neutral"
	case RelationAlly:
		return "Ally"
	case RelationHostile:
		return "Hostile"
	case RelationEnemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}

// PendingProposal is an outstanding pact proposal from Proposer to
// Target, visible only to the two involved houses (spec.md section 4.4).
type PendingProposal struct {
	Proposer  id.ID
	Target    id.ID
	ExpiresAt int // turn
}

// Relation is the canonical record for one unordered pair of houses;
// A/B are stored with A having the lower id index so each pair has
// exactly one Relation entity regardless of lookup direction.
type Relation struct {
	ID    id.ID
	A, B  id.ID
	State DiplomaticState

	// Pact bookkeeping, meaningful only while State == RelationAlly.
	PactExpiresAt    int
	ViolationCount   int
	DishonorUntil    int
	IsolationUntil   int

	Proposal *PendingProposal
}

func (r *Relation) Clone() *Relation {
	c := *r
	if r.Proposal != nil {
		p := *r.Proposal
		c.Proposal = &p
	}
	return &c
}

// Other returns the house on the far side of the pair from h.
func (r *Relation) Other(h id.ID) id.ID {
	if r.A == h {
		return r.B
	}
	return r.A
}
