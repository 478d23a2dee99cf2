package budget

import (
	"testing"

	"github.com/greenm01/ec4x/internal/command"
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/state"
)

func TestGateAccumulatesEspionageInvestmentIntoHousePool(t *testing.T) {
	st := state.New()
	rules := config.Default()
	house := &state.House{Name: "A", Treasury: 1000}
	st.AddHouse(house)

	pkt := command.CommandPacket{House: house.ID, EBPInvestment: 3, CIPInvestment: 2}
	out := command.Outcome{}

	res := Gate(st, rules, house, pkt, out)

	wantCost := rules.EspionagePointCostPP * 5
	if res.Summary.EspionageCost != wantCost {
		t.Errorf("EspionageCost = %d, want %d", res.Summary.EspionageCost, wantCost)
	}
	if house.Espionage.EBP != 3 || house.Espionage.CIP != 2 {
		t.Fatalf("house.Espionage = %+v, want EBP=3 CIP=2", house.Espionage)
	}
	if house.Espionage.EBPInvestedTotal != 3 || house.Espionage.CIPInvestedTotal != 2 {
		t.Fatalf("invested totals = %+v, want 3/2", house.Espionage)
	}
	if house.Treasury != 1000-wantCost {
		t.Errorf("Treasury = %d, want %d", house.Treasury, 1000-wantCost)
	}
}

func TestGateRejectsEspionageInvestmentWhenUnaffordable(t *testing.T) {
	st := state.New()
	rules := config.Default()
	house := &state.House{Name: "A", Treasury: 10}
	st.AddHouse(house)

	pkt := command.CommandPacket{House: house.ID, EBPInvestment: 5}
	out := command.Outcome{}

	res := Gate(st, rules, house, pkt, out)

	if _, ok := res.Rejected["espionage-investment"]; !ok {
		t.Fatalf("expected espionage-investment rejection, got %+v", res.Rejected)
	}
	if house.Espionage.EBP != 0 {
		t.Errorf("house.Espionage.EBP = %d, want 0 (rejected investment must not accumulate)", house.Espionage.EBP)
	}
}

func TestGateEspionageInvestmentRunsIndependentlyOfAcceptedEspionageAction(t *testing.T) {
	st := state.New()
	rules := config.Default()
	house := &state.House{Name: "A", Treasury: 1000}
	st.AddHouse(house)

	action := &command.EspionageAction{Kind: command.EspionageCounterIntelSweep}
	pkt := command.CommandPacket{House: house.ID, EBPInvestment: 1}
	out := command.Outcome{AcceptedEspionage: action}

	res := Gate(st, rules, house, pkt, out)

	if res.Espionage != action {
		t.Errorf("Result.Espionage not carried through from Outcome.AcceptedEspionage")
	}
	if house.Espionage.EBP != 1 {
		t.Errorf("house.Espionage.EBP = %d, want 1 (investment runs alongside an accepted action)", house.Espionage.EBP)
	}
}

func TestGateNoEspionageLineItemWhenNoInvestmentSubmitted(t *testing.T) {
	st := state.New()
	rules := config.Default()
	house := &state.House{Name: "A", Treasury: 1000}
	st.AddHouse(house)

	pkt := command.CommandPacket{House: house.ID}
	out := command.Outcome{}

	res := Gate(st, rules, house, pkt, out)

	if res.Summary.EspionageCost != 0 {
		t.Errorf("EspionageCost = %d, want 0", res.Summary.EspionageCost)
	}
	if house.Espionage.EBP != 0 || house.Espionage.CIP != 0 {
		t.Errorf("house.Espionage = %+v, want zero value", house.Espionage)
	}
}
