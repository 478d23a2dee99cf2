package economy

import (
	"testing"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/state"
)

func newTestColony(st *state.State, owner id.ID, pc state.PlanetClass, rr state.ResourceRating) *state.Colony {
	sys := &state.System{Hex: state.HexCoord{}, PlanetClass: pc, ResourceRating: rr}
	sysID := st.AddSystem(sys)
	col := &state.Colony{
		Owner:           owner,
		System:          sysID,
		PopulationUnits: 100,
		Infrastructure:  100,
		IndustrialUnits: 50,
		TaxRate:         50,
	}
	st.AddColony(col)
	return col
}

func TestColonyTaxScalesWithFactorsAndBlockade(t *testing.T) {
	st := state.New()
	rules := config.Default()
	house := &state.House{Name: "Test"}
	st.AddHouse(house)

	col := newTestColony(st, house.ID, state.Eden, state.VeryRich)
	base := ColonyTax(rules, st, col)
	if base <= 0 {
		t.Fatalf("ColonyTax = %d, want positive", base)
	}

	col.Blockade.Active = true
	blockaded := ColonyTax(rules, st, col)
	if blockaded >= base {
		t.Errorf("ColonyTax under blockade = %d, want less than unblockaded %d", blockaded, base)
	}
}

func TestCollectIncomeCreditsTreasury(t *testing.T) {
	st := state.New()
	rules := config.Default()
	house := &state.House{Name: "Test", TaxRate: 50}
	st.AddHouse(house)
	newTestColony(st, house.ID, state.Benign, state.Abundant)

	before := house.Treasury
	events := CollectIncome(rules, st, house, 1)
	if house.Treasury <= before {
		t.Errorf("Treasury after CollectIncome = %d, want > %d", house.Treasury, before)
	}
	if len(events) != 1 {
		t.Errorf("CollectIncome events = %d, want 1", len(events))
	}
}

func TestApplyGrowthIncreasesPopulationAndIndustry(t *testing.T) {
	st := state.New()
	house := &state.House{Name: "Test"}
	st.AddHouse(house)
	col := newTestColony(st, house.ID, state.Lush, state.Rich)
	rules := config.Default()

	popBefore, iuBefore := col.PopulationUnits, col.IndustrialUnits
	ApplyGrowth(rules, st, col)
	if col.PopulationUnits <= popBefore {
		t.Errorf("PopulationUnits after growth = %d, want > %d", col.PopulationUnits, popBefore)
	}
	if col.IndustrialUnits <= iuBefore {
		t.Errorf("IndustrialUnits after growth = %d, want > %d", col.IndustrialUnits, iuBefore)
	}
}

func TestResolveColonizationPicksExactlyOneWinnerPerSystem(t *testing.T) {
	st := state.New()
	sysID := st.AddSystem(&state.System{PlanetClass: state.Benign})
	h1 := st.AddHouse(&state.House{Name: "A"})
	h2 := st.AddHouse(&state.House{Name: "B"})

	claims := []ColonizeClaim{
		{House: h1, System: sysID},
		{House: h2, System: sysID},
	}

	events := ResolveColonization(st, config.Default(), claims, 5)

	if _, ok := st.ColonyBySystem[sysID]; !ok {
		t.Fatal("expected a colony to be established")
	}
	established := 0
	failed := 0
	for _, e := range events {
		switch e.Kind {
		case event.ColonyEstablished:
			established++
		case event.OrderFailed:
			failed++
		}
	}
	if established != 1 {
		t.Errorf("ColonyEstablished events = %d, want 1", established)
	}
	if failed != 1 {
		t.Errorf("OrderFailed events = %d, want 1 (the losing bidder)", failed)
	}
	col := st.Colonies[st.ColonyBySystem[sysID]]
	if col.Owner != h1 && col.Owner != h2 {
		t.Errorf("colony owner = %v, want h1 or h2", col.Owner)
	}
}

func TestResolveColonizationIsDeterministic(t *testing.T) {
	run := func() id.ID {
		st := state.New()
		sysID := st.AddSystem(&state.System{PlanetClass: state.Benign})
		h1 := st.AddHouse(&state.House{Name: "A"})
		h2 := st.AddHouse(&state.House{Name: "B"})
		claims := []ColonizeClaim{{House: h1, System: sysID}, {House: h2, System: sysID}}
		ResolveColonization(st, config.Default(), claims, 7)
		return st.Colonies[st.ColonyBySystem[sysID]].Owner
	}
	first := run()
	second := run()
	if first != second {
		t.Errorf("ResolveColonization winner not deterministic: %v vs %v", first, second)
	}
}

func TestAdvanceTransfersDelivers(t *testing.T) {
	st := state.New()
	house := &state.House{Name: "Test"}
	st.AddHouse(house)
	src := newTestColony(st, house.ID, state.Benign, state.Abundant)
	dst := newTestColony(st, house.ID, state.Benign, state.Abundant)

	CreateTransfer(st, src, dst, 10, 40, 1, 1)
	popBefore := dst.PopulationUnits
	events := AdvanceTransfers(st, 2)
	if dst.PopulationUnits != popBefore+10 {
		t.Errorf("dst PopulationUnits = %d, want %d", dst.PopulationUnits, popBefore+10)
	}
	if len(events) != 1 {
		t.Errorf("AdvanceTransfers events = %d, want 1", len(events))
	}
}

func TestAdvanceTerraformRaisesPlanetClassOnceFunded(t *testing.T) {
	st := state.New()
	house := &state.House{Name: "Test"}
	st.AddHouse(house)
	col := newTestColony(st, house.ID, state.Harsh, state.Abundant)
	col.Terraform = &state.TerraformProject{TargetClass: state.Benign, TotalCost: 100, PaidCost: 90}

	AdvanceTerraform(st, col, 10, 3)

	if col.Terraform != nil {
		t.Error("Terraform project should be cleared once fully funded")
	}
	sys := st.Systems[col.System]
	if sys.PlanetClass != state.Benign {
		t.Errorf("PlanetClass = %v, want Benign", sys.PlanetClass)
	}
}

func TestPayMaintenanceTransitionsToAutopilotAfterShortfalls(t *testing.T) {
	st := state.New()
	rules := config.Default()
	house := &state.House{Name: "Test", Treasury: 0, ConsecutiveShortfallTurns: 2}
	st.AddHouse(house)

	sysID := st.AddSystem(&state.System{})
	fleet := st.AddFleet(&state.Fleet{Owner: house.ID, Location: sysID})
	st.AddShip(&state.Ship{Owner: house.ID, Fleet: fleet, Class: state.ShipBattleship})

	events := PayMaintenance(st, rules, house, 3, 1)
	if len(events) != 1 {
		t.Fatalf("PayMaintenance events = %d, want 1 (ResourceWarning)", len(events))
	}
	if house.Status != state.HouseAutopilot {
		t.Errorf("status after 3rd consecutive shortfall with threshold 3 = %v, want Autopilot", house.Status)
	}
}
