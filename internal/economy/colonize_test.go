package economy

import (
	"testing"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/state"
)

func TestResolveColonizationPicksHigherFleetStrength(t *testing.T) {
	st := state.New()
	sysID := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	h1 := st.AddHouse(&state.House{Name: "A"})
	h2 := st.AddHouse(&state.House{Name: "B"})

	f1 := st.AddFleet(&state.Fleet{Owner: h1, Location: sysID})
	st.AddShip(&state.Ship{Owner: h1, Fleet: f1, Class: state.ShipCruiser, AS: 7})

	f2 := st.AddFleet(&state.Fleet{Owner: h2, Location: sysID})
	st.AddShip(&state.Ship{Owner: h2, Fleet: f2, Class: state.ShipFrigate, AS: 3})

	claims := []ColonizeClaim{
		{House: h1, Fleet: f1, System: sysID},
		{House: h2, Fleet: f2, System: sysID},
	}

	ResolveColonization(st, config.Default(), claims, 5)

	col := st.Colonies[st.ColonyBySystem[sysID]]
	if col.Owner != h1 {
		t.Errorf("colony owner = %v, want h1 (stronger fleet)", col.Owner)
	}
}

func TestResolveColonizationDepositsColonistCargoAndConsumesETAC(t *testing.T) {
	st := state.New()
	sysID := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	h1 := st.AddHouse(&state.House{Name: "A"})
	f1 := st.AddFleet(&state.Fleet{Owner: h1, Location: sysID})
	etacID := st.AddShip(&state.Ship{Owner: h1, Fleet: f1, Class: state.ShipETAC, AS: 0,
		Cargo: &state.Cargo{Kind: state.CargoColonists, Amount: 5}})

	claims := []ColonizeClaim{{House: h1, Fleet: f1, System: sysID}}
	ResolveColonization(st, config.Default(), claims, 5)

	col := st.Colonies[st.ColonyBySystem[sysID]]
	if col.PopulationUnits != 5 {
		t.Errorf("PopulationUnits = %d, want 5 (deposited colonist cargo exceeds 3 PU foundation)", col.PopulationUnits)
	}
	if _, ok := st.Ships[etacID]; ok {
		t.Errorf("ETAC hull %v still present, want consumed into colony infrastructure", etacID)
	}
}

func TestResolveColonizationFoundationFloorWithNoCargo(t *testing.T) {
	st := state.New()
	sysID := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	h1 := st.AddHouse(&state.House{Name: "A"})
	f1 := st.AddFleet(&state.Fleet{Owner: h1, Location: sysID})
	st.AddShip(&state.Ship{Owner: h1, Fleet: f1, Class: state.ShipScout, AS: 0})

	claims := []ColonizeClaim{{House: h1, Fleet: f1, System: sysID}}
	ResolveColonization(st, config.Default(), claims, 5)

	col := st.Colonies[st.ColonyBySystem[sysID]]
	if col.PopulationUnits != 3 {
		t.Errorf("PopulationUnits = %d, want 3 (foundation floor, no colonist cargo)", col.PopulationUnits)
	}
}

func TestResolveColonizationLoserFallsBackToNearestUncolonizedSystem(t *testing.T) {
	st := state.New()
	contested := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	st.AddSystem(&state.System{Hex: state.HexCoord{Q: 1, R: 0}, PlanetClass: state.Benign})

	h1 := st.AddHouse(&state.House{Name: "A"})
	h2 := st.AddHouse(&state.House{Name: "B"})

	f1 := st.AddFleet(&state.Fleet{Owner: h1, Location: contested})
	st.AddShip(&state.Ship{Owner: h1, Fleet: f1, Class: state.ShipCruiser, AS: 10})

	f2 := st.AddFleet(&state.Fleet{Owner: h2, Location: contested})
	st.AddShip(&state.Ship{Owner: h2, Fleet: f2, Class: state.ShipFrigate, AS: 1})

	claims := []ColonizeClaim{
		{House: h1, Fleet: f1, System: contested},
		{House: h2, Fleet: f2, System: contested},
	}

	events := ResolveColonization(st, config.Default(), claims, 5)

	var sawFallback bool
	for _, e := range events {
		if e.Kind == event.FallbackSuccess && e.House == h2 {
			sawFallback = true
		}
	}
	if !sawFallback {
		t.Fatalf("expected a FallbackSuccess event for the losing house, got %+v", events)
	}
	if len(st.Colonies) != 2 {
		t.Errorf("len(st.Colonies) = %d, want 2 (winner + fallback)", len(st.Colonies))
	}
}

func TestResolveColonizationNoViableTargetWhenNothingInRange(t *testing.T) {
	st := state.New()
	contested := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})

	h1 := st.AddHouse(&state.House{Name: "A"})
	h2 := st.AddHouse(&state.House{Name: "B"})

	f1 := st.AddFleet(&state.Fleet{Owner: h1, Location: contested})
	st.AddShip(&state.Ship{Owner: h1, Fleet: f1, Class: state.ShipCruiser, AS: 10})

	f2 := st.AddFleet(&state.Fleet{Owner: h2, Location: contested})
	st.AddShip(&state.Ship{Owner: h2, Fleet: f2, Class: state.ShipFrigate, AS: 1})

	claims := []ColonizeClaim{
		{House: h1, Fleet: f1, System: contested},
		{House: h2, Fleet: f2, System: contested},
	}

	events := ResolveColonization(st, config.Default(), claims, 5)

	var sawNoViable bool
	for _, e := range events {
		if e.Kind == event.NoViableTarget && e.House == h2 {
			sawNoViable = true
		}
	}
	if !sawNoViable {
		t.Fatalf("expected a NoViableTarget event for the losing house with no nearby system, got %+v", events)
	}
}
