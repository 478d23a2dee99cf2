package engine

import (
	"testing"

	"github.com/greenm01/ec4x/internal/command"
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/rng"
	"github.com/greenm01/ec4x/internal/state"
)

func TestGatherIntelSpySystemUpsertsSystemAndForeignFleets(t *testing.T) {
	st := state.New()
	sys := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	scout := st.AddHouse(&state.House{Name: "Scout house"})
	foreign := st.AddHouse(&state.House{Name: "Foreign house"})

	f := st.AddFleet(&state.Fleet{Owner: scout, Location: sys})
	st.AddShip(&state.Ship{Owner: scout, Fleet: f, Class: state.ShipScout})

	of := st.AddFleet(&state.Fleet{Owner: foreign, Location: sys})
	st.AddShip(&state.Ship{Owner: foreign, Fleet: of, Class: state.ShipCruiser, AS: 7})

	r := rng.New(1)
	events := gatherIntel(r, st, scout, st.Fleets[f], command.CmdSpySystem, 5)

	house := st.Houses[scout]
	si, ok := house.IntelDB.Systems[sys]
	if !ok || si.Level != state.VisibilityScouted {
		t.Fatalf("Systems[sys] = %+v, ok=%v, want VisibilityScouted", si, ok)
	}
	fi, ok := house.IntelDB.Fleets[of]
	if !ok || fi.Owner != foreign {
		t.Fatalf("Fleets[of] = %+v, ok=%v, want owner %s", fi, ok, foreign)
	}
	if fi.Exact[state.ShipCruiser] != 1 {
		t.Errorf("Exact[ShipCruiser] = %d, want 1", fi.Exact[state.ShipCruiser])
	}

	var sawIntelGathered bool
	for _, e := range events {
		if e.Kind == event.IntelGathered {
			sawIntelGathered = true
		}
	}
	if !sawIntelGathered {
		t.Errorf("expected an IntelGathered event, got %+v", events)
	}
}

func TestGatherIntelSpyPlanetUpsertsColony(t *testing.T) {
	st := state.New()
	sys := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	scout := st.AddHouse(&state.House{Name: "Scout house"})
	owner := st.AddHouse(&state.House{Name: "Colony owner"})
	st.AddColony(&state.Colony{Owner: owner, System: sys, PopulationUnits: 12, IndustrialUnits: 40})

	f := st.AddFleet(&state.Fleet{Owner: scout, Location: sys})
	st.AddShip(&state.Ship{Owner: scout, Fleet: f, Class: state.ShipScout})

	r := rng.New(1)
	gatherIntel(r, st, scout, st.Fleets[f], command.CmdSpyPlanet, 5)

	cid := st.ColonyBySystem[sys]
	ci, ok := st.Houses[scout].IntelDB.Colonies[cid]
	if !ok || ci.EstimatedPop != 12 || ci.EstimatedIndustry != 40 {
		t.Fatalf("Colonies[cid] = %+v, ok=%v, want pop=12 industry=40", ci, ok)
	}
}

func TestGatherIntelHackStarbaseEitherDetectsOrRecordsIntel(t *testing.T) {
	st := state.New()
	sys := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	scout := st.AddHouse(&state.House{Name: "Scout house"})
	owner := st.AddHouse(&state.House{Name: "Colony owner"})
	cid := st.AddColony(&state.Colony{Owner: owner, System: sys, PopulationUnits: 10})
	st.AddKastra(&state.Kastra{Colony: cid, State: state.Undamaged, EffectiveDocks: 4})

	f := st.AddFleet(&state.Fleet{Owner: scout, Location: sys})
	st.AddShip(&state.Ship{Owner: scout, Fleet: f, Class: state.ShipScout})

	r := rng.New(7)
	events := gatherIntel(r, st, scout, st.Fleets[f], command.CmdHackStarbase, 5)

	var detected, gathered bool
	for _, e := range events {
		switch e.Kind {
		case event.ScoutDetected:
			detected = true
		case event.IntelGathered:
			gathered = true
		}
	}
	if detected == gathered {
		t.Fatalf("expected exactly one of ScoutDetected/IntelGathered, got detected=%v gathered=%v events=%+v", detected, gathered, events)
	}
	_, hasColonyIntel := st.Houses[scout].IntelDB.Colonies[cid]
	if gathered && !hasColonyIntel {
		t.Errorf("IntelGathered without a recorded colony sighting")
	}
	if detected && hasColonyIntel {
		t.Errorf("detected hack still recorded colony intel")
	}
}

func TestGatherIntelHackStarbaseNoOpWithoutActiveKastra(t *testing.T) {
	st := state.New()
	sys := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	scout := st.AddHouse(&state.House{Name: "Scout house"})
	owner := st.AddHouse(&state.House{Name: "Colony owner"})
	st.AddColony(&state.Colony{Owner: owner, System: sys})

	f := st.AddFleet(&state.Fleet{Owner: scout, Location: sys})
	st.AddShip(&state.Ship{Owner: scout, Fleet: f, Class: state.ShipScout})

	r := rng.New(1)
	events := gatherIntel(r, st, scout, st.Fleets[f], command.CmdHackStarbase, 5)
	if events != nil {
		t.Errorf("expected nil events with no starbase present, got %+v", events)
	}
}

func TestViewWorldCommitsSystemAndForeignColonyObservation(t *testing.T) {
	st := state.New()
	sys := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	viewer := st.AddHouse(&state.House{Name: "Viewer"})
	owner := st.AddHouse(&state.House{Name: "Owner"})
	st.AddColony(&state.Colony{Owner: owner, System: sys, PopulationUnits: 8})

	f := st.AddFleet(&state.Fleet{Owner: viewer, Location: sys})
	st.AddShip(&state.Ship{Owner: viewer, Fleet: f, Class: state.ShipFrigate, AS: 3})

	viewWorld(st, viewer, st.Fleets[f], 9)

	si, ok := st.Houses[viewer].IntelDB.Systems[sys]
	if !ok || si.Level != state.VisibilityObserved {
		t.Fatalf("Systems[sys] = %+v, ok=%v, want VisibilityObserved", si, ok)
	}
	cid := st.ColonyBySystem[sys]
	if _, ok := st.Houses[viewer].IntelDB.Colonies[cid]; !ok {
		t.Errorf("expected foreign colony intel to be recorded by ViewWorld")
	}
}

func TestSalvageSystemCreditsTreasuryAtUncolonizedSystem(t *testing.T) {
	st := state.New()
	sys := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	house := &state.House{Name: "A", Treasury: 100}
	st.AddHouse(house)
	f := st.AddFleet(&state.Fleet{Owner: house.ID, Location: sys})

	rules := config.Default()
	events := salvageSystem(st, rules, house.ID, st.Fleets[f], 3)

	if len(events) != 0 {
		t.Errorf("expected no events on successful salvage, got %+v", events)
	}
	if house.Treasury != 100+rules.SalvageValuePP {
		t.Errorf("Treasury = %d, want %d", house.Treasury, 100+rules.SalvageValuePP)
	}
}

func TestSalvageSystemFailsAtColonizedSystem(t *testing.T) {
	st := state.New()
	sys := st.AddSystem(&state.System{Hex: state.HexCoord{Q: 0, R: 0}, PlanetClass: state.Benign})
	house := &state.House{Name: "A", Treasury: 100}
	st.AddHouse(house)
	st.AddColony(&state.Colony{Owner: house.ID, System: sys})
	f := st.AddFleet(&state.Fleet{Owner: house.ID, Location: sys})

	rules := config.Default()
	events := salvageSystem(st, rules, house.ID, st.Fleets[f], 3)

	if len(events) != 1 || events[0].Kind != event.OrderFailed {
		t.Fatalf("events = %+v, want a single OrderFailed", events)
	}
	if house.Treasury != 100 {
		t.Errorf("Treasury = %d, want unchanged 100", house.Treasury)
	}
}
