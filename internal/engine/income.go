package engine

import (
	"sort"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/economy"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/state"
)

// resolveIncome is Phase 2 (spec.md section 4.3: "compute per-colony
// gross output... sum into each house's treasury").
func resolveIncome(st *state.State, rules config.Rules, turn int) []event.Event {
	var events []event.Event

	houseIDs := make([]id.ID, 0, len(st.Houses))
	for hid, h := range st.Houses {
		if h.IsDefensiveCollapse() {
			continue // DefensiveCollapse houses earn zero income (spec.md section 4.3 house state machine).
		}
		houseIDs = append(houseIDs, hid)
	}
	sort.Slice(houseIDs, func(i, j int) bool { return houseIDs[i].Index() < houseIDs[j].Index() })

	for _, hid := range houseIDs {
		house := st.Houses[hid]
		events = append(events, economy.CollectIncome(rules, st, house, turn)...)
	}
	return events
}
