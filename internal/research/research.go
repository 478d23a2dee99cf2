// Package research implements the bi-annual tech-upgrade cycle and
// breakthrough rolls described in spec.md section 4.7. Grounded on
// essences/essences.go's level-cost/threshold table (EssenceLevel ->
// required points) generalized from a single-track system into the
// fourteen independent TechField tracks spec.md section 3 names.
package research

import (
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/rng"
	"github.com/greenm01/ec4x/internal/state"
)

// LevelCost returns the accumulated-point threshold required to
// advance a TechField from its current level to the next. A simple
// quadratic curve, the same shape as essences.go's level-cost table,
// re-based per field.
func LevelCost(field state.TechField, currentLevel int) int {
	base := 50
	switch field {
	case state.TechEL, state.TechSL, state.TechCST:
		base = 40
	case state.TechFC, state.TechSC, state.TechACO:
		base = 70
	}
	return base * (currentLevel + 1) * (currentLevel + 1)
}

// IsUpgradeTurn reports whether month is one of the two annual upgrade
// months {1, 7} (spec.md section 4.7).
func IsUpgradeTurn(rules [2]int, month int) bool {
	return month == rules[0] || month == rules[1]
}

// BreakthroughOutcome is the result of one house's breakthrough roll.
type BreakthroughOutcome int

const (
	BreakthroughNone BreakthroughOutcome = iota
	BreakthroughMinor
	BreakthroughModerate
	BreakthroughMajor
	BreakthroughRevolutionary
)

// RollBreakthrough computes base 10% + 1% per 50 RP invested over the
// last 6 turns, then maps the roll to an outcome tier (spec.md section
// 4.7).
func RollBreakthrough(r *rng.RNG, rpInvestedLast6Turns int) BreakthroughOutcome {
	chance := 10 + rpInvestedLast6Turns/50
	if chance > 95 {
		chance = 95
	}
	roll := r.D100()
	if roll > chance {
		return BreakthroughNone
	}
	switch {
	case roll <= chance/4:
		return BreakthroughRevolutionary
	case roll <= chance/2:
		return BreakthroughMajor
	case roll <= chance*3/4:
		return BreakthroughModerate
	default:
		return BreakthroughMinor
	}
}

// Advance applies one house's research allocation on an upgrade turn:
// for each field with enough accumulated points, raise its level by
// one and emit TechAdvance plus a prestige event. trp maps TechField
// (as int, matching command.ResearchAllocation's wire shape) to points
// invested this cycle; house.ResearchAccumulated tracks multi-cycle
// carryover and is mutated in place.
func Advance(r *rng.RNG, st *state.State, houseID id.ID, trp map[int]int, turn int) []event.Event {
	var events []event.Event
	house := st.Houses[houseID]
	if house == nil {
		return nil
	}
	if house.ResearchAccumulated == nil {
		house.ResearchAccumulated = make(map[state.TechField]int)
	}
	accumulated := house.ResearchAccumulated

	for fieldInt, pts := range trp {
		field := state.TechField(fieldInt)
		if field < 0 || field >= state.TechFieldCount {
			continue
		}
		accumulated[field] += pts
		cur := house.Tech[field]
		cost := LevelCost(field, cur)
		if accumulated[field] < cost {
			continue
		}
		accumulated[field] -= cost
		house.Tech[field] = cur + 1
		house.Prestige++
		events = append(events,
			event.New(event.TechAdvance, turn).WithHouse(house.ID).
				With("field", field.String()).With("newLevel", cur+1),
			event.New(event.PrestigeGain, turn).WithHouse(house.ID).With("reason", "tech advance").With("amount", 1),
		)
	}

	recentRP := pushResearchWindow(house, sumValues(trp))
	outcome := RollBreakthrough(r, recentRP)
	switch outcome {
	case BreakthroughMinor:
		accumulated[state.TechEL] += 10
	case BreakthroughModerate:
		// A Moderate result changes no state; no cost discount is applied
		// to any later LevelCost.
	case BreakthroughMajor:
		house.Tech[state.TechEL]++
	case BreakthroughRevolutionary:
		house.Prestige += 5
	}

	return events
}

// pushResearchWindow records this cycle's total RP investment into
// house's rolling 6-turn window and returns the new window sum, the
// basis RollBreakthrough's chance is computed from (spec.md section
// 4.7: "1% per 50 RP invested over the last 6 turns").
func pushResearchWindow(house *state.House, pts int) int {
	if house.ResearchRecentCount < len(house.ResearchRecent6) {
		house.ResearchRecent6[house.ResearchRecentCount] = pts
		house.ResearchRecentCount++
	} else {
		copy(house.ResearchRecent6[:], house.ResearchRecent6[1:])
		house.ResearchRecent6[len(house.ResearchRecent6)-1] = pts
	}
	sum := 0
	for i := 0; i < house.ResearchRecentCount; i++ {
		sum += house.ResearchRecent6[i]
	}
	return sum
}

func sumValues(m map[int]int) int {
	t := 0
	for _, v := range m {
		t += v
	}
	return t
}
