package state

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestStateBSONRoundTrip(t *testing.T) {
	st := New()
	st.GameSeed = 42
	st.Turn = 3
	st.Phase = PhaseCommand

	house := &House{Name: "Test House", Prestige: 7}
	hid := st.AddHouse(house)

	sys := &System{Hex: HexCoord{Q: 1, R: 2}, PlanetClass: Benign}
	sysID := st.AddSystem(sys)

	col := &Colony{Owner: hid, System: sysID, PopulationUnits: 100}
	st.AddColony(col)
	st.RemoveColony(col.ID) // bumps the colony table's generation counter, worth round-tripping too

	data, err := bson.Marshal(st)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got := New()
	if err := bson.Unmarshal(data, got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.GameSeed != st.GameSeed || got.Turn != st.Turn || got.Phase != st.Phase {
		t.Errorf("scalar fields = %+v, %+v, %+v; want %+v, %+v, %+v", got.GameSeed, got.Turn, got.Phase, st.GameSeed, st.Turn, st.Phase)
	}
	if len(got.Houses) != 1 || got.Houses[hid] == nil || got.Houses[hid].Name != "Test House" {
		t.Fatalf("Houses round-trip = %+v", got.Houses)
	}
	if len(got.Systems) != 1 || got.Systems[sysID] == nil {
		t.Fatalf("Systems round-trip = %+v", got.Systems)
	}
	if len(got.Colonies) != 0 {
		t.Fatalf("Colonies round-trip = %+v, want empty (removed before marshal)", got.Colonies)
	}

	// A fresh colony allocated post-restore must not reuse the freed
	// generation, proving the table snapshot round-tripped too.
	newCol := &Colony{Owner: hid, System: sysID}
	newID := got.AddColony(newCol)
	if got.colonyTbl.Valid(col.ID) {
		t.Errorf("restored table still reports removed colony %v as valid", col.ID)
	}
	if newID == col.ID {
		t.Errorf("reallocated colony id %v reused the removed id exactly (generation not preserved)", newID)
	}
}
