package engine

import (
	"testing"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/state"
)

func TestIsVictoryNilWhenNoHouseQualifies(t *testing.T) {
	st := state.New()
	rules := config.Default()
	st.AddHouse(&state.House{Name: "A"})
	st.AddHouse(&state.House{Name: "B"})

	if v := IsVictory(st, rules); v != nil {
		t.Fatalf("IsVictory = %+v, want nil", v)
	}
}

func TestIsVictoryByPrestigeThreshold(t *testing.T) {
	st := state.New()
	rules := config.Default()
	a := &state.House{Name: "A", Prestige: rules.VictoryPrestigeThreshold}
	st.AddHouse(a)
	st.AddHouse(&state.House{Name: "B"})

	v := IsVictory(st, rules)
	if v == nil || v.Winner != a.ID || v.Reason != VictoryPrestige {
		t.Fatalf("IsVictory = %+v, want winner %s by Prestige", v, a.ID)
	}
}

func TestIsVictoryByFinalConflictLastStanding(t *testing.T) {
	st := state.New()
	rules := config.Default()
	survivor := &state.House{Name: "A"}
	st.AddHouse(survivor)
	st.AddHouse(&state.House{Name: "B", Eliminated: true})
	st.AddHouse(&state.House{Name: "C", Status: state.HouseDefensiveCollapse})

	v := IsVictory(st, rules)
	if v == nil || v.Winner != survivor.ID || v.Reason != VictoryFinalConflict {
		t.Fatalf("IsVictory = %+v, want winner %s by FinalConflict", v, survivor.ID)
	}
}

func TestIsVictoryExcludesDefensiveCollapseFromPrestigeCheck(t *testing.T) {
	st := state.New()
	rules := config.Default()
	st.AddHouse(&state.House{
		Name:     "A",
		Prestige: rules.VictoryPrestigeThreshold,
		Status:   state.HouseDefensiveCollapse,
	})
	st.AddHouse(&state.House{Name: "B"})
	st.AddHouse(&state.House{Name: "C"})

	if v := IsVictory(st, rules); v != nil {
		t.Fatalf("IsVictory = %+v, want nil (collapsed house's prestige must not win)", v)
	}
}

func TestProjectForAndFilterEventsDoNotPanicOnEmptyState(t *testing.T) {
	st := state.New()
	house := &state.House{Name: "A"}
	st.AddHouse(house)

	pv := ProjectFor(st, house.ID)
	if pv.Viewer != house.ID {
		t.Errorf("ProjectFor Viewer = %s, want %s", pv.Viewer, house.ID)
	}

	out := FilterEvents(nil, house.ID, st)
	if len(out) != 0 {
		t.Errorf("FilterEvents(nil) = %v, want empty", out)
	}
}
