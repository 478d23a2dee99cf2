package combat

import (
	"testing"

	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/rng"
	"github.com/greenm01/ec4x/internal/state"
)

func TestDetectOutcomes(t *testing.T) {
	tests := []struct {
		name                string
		attackerCLK         int
		defenderELI         int
		defenderSurveillance bool
		want                DetectionOutcome
	}{
		{"even footing is intercept", 3, 3, false, Intercept},
		{"small edge is surprise", 5, 3, false, Surprise},
		{"large edge is ambush", 9, 3, false, Ambush},
		{"surveillance bonus raises drm but stays surprise", 5, 3, true, Surprise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.attackerCLK, tt.defenderELI, tt.defenderSurveillance)
			if got != tt.want {
				t.Errorf("Detect(%d,%d,%v) = %v, want %v", tt.attackerCLK, tt.defenderELI, tt.defenderSurveillance, got, tt.want)
			}
		})
	}
}

func TestCERBucketClamps(t *testing.T) {
	if b := CERBucket(100, 0); b != 4 {
		t.Errorf("CERBucket high WEP = %d, want 4", b)
	}
	if b := CERBucket(0, 100); b != -4 {
		t.Errorf("CERBucket high DS = %d, want -4", b)
	}
	if b := CERBucket(5, 5); b != 0 {
		t.Errorf("CERBucket even = %d, want 0", b)
	}
}

func TestRollCERClampsExtremeDRM(t *testing.T) {
	rules := config.Default()
	// drm pushes the effective bucket past +4; RollCER must clamp rather
	// than panic on a missing map key.
	outcome := RollCER(rules, 40, 0, 10, 99)
	if outcome != config.CERDestroy {
		t.Errorf("RollCER with extreme drm = %v, want CERDestroy at roll 99", outcome)
	}
}

func TestMoraleTierFor(t *testing.T) {
	tests := []struct {
		prestige int
		want     string
	}{
		{-100, "Collapsing"},
		{-20, "VeryLow"},
		{-5, "Low"},
		{10, "Normal"},
		{75, "High"},
		{500, "VeryHigh"},
	}
	for _, tt := range tests {
		if got := MoraleTierFor(tt.prestige); got != tt.want {
			t.Errorf("MoraleTierFor(%d) = %q, want %q", tt.prestige, got, tt.want)
		}
	}
}

// setupBattle builds a two-house Space battle: a lone attacking
// destroyer against a lone defending frigate, at a system with no colony.
func setupBattle() (*state.State, *Battle, id.ID, id.ID) {
	st := state.New()
	sys := &state.System{Hex: state.HexCoord{Q: 0, R: 0}}
	sysID := st.AddSystem(sys)

	attackerHouse := st.AddHouse(&state.House{Name: "Attacker"})
	defenderHouse := st.AddHouse(&state.House{Name: "Defender"})

	af := st.AddFleet(&state.Fleet{Owner: attackerHouse, Location: sysID})
	df := st.AddFleet(&state.Fleet{Owner: defenderHouse, Location: sysID})

	rules := config.Default()
	aStats := rules.Ships[state.ShipDestroyer]
	dStats := rules.Ships[state.ShipFrigate]

	asid := st.AddShip(&state.Ship{Owner: attackerHouse, Fleet: af, Class: state.ShipDestroyer, AS: aStats.AS, DS: aStats.DS, WEPAtBuild: 3})
	dsid := st.AddShip(&state.Ship{Owner: defenderHouse, Fleet: df, Class: state.ShipFrigate, AS: dStats.AS, DS: dStats.DS, WEPAtBuild: 1})

	b := &Battle{
		System: sysID,
		Forces: map[id.ID]*Force{
			attackerHouse: {House: attackerHouse, Ships: []id.ID{asid}, Attacker: true},
			defenderHouse: {House: defenderHouse, Ships: []id.ID{dsid}},
		},
	}
	return st, b, attackerHouse, defenderHouse
}

func TestResolveProducesPhaseEvents(t *testing.T) {
	st, b, _, _ := setupBattle()
	rules := config.Default()
	r := rng.New(12345)

	events := Resolve(r, st, rules, b, false, false, false, 1)
	if len(events) == 0 {
		t.Fatal("Resolve produced no events")
	}
	if events[0].Kind != event.CombatPhaseBegan {
		t.Errorf("first event kind = %v, want CombatPhaseBegan", events[0].Kind)
	}
	last := events[len(events)-1]
	if last.Kind != event.CombatPhaseCompleted {
		t.Errorf("last event kind = %v, want CombatPhaseCompleted", last.Kind)
	}
}

func TestFightTheaterEventuallyLeavesOneSurvivor(t *testing.T) {
	st, b, attackerHouse, defenderHouse := setupBattle()
	rules := config.Default()
	r := rng.New(99)

	Resolve(r, st, rules, b, false, false, false, 1)

	survivors := housesWithLiveShips(st, b)
	if len(survivors) > 1 {
		t.Fatalf("expected at most one survivor after the round cap, got %d", len(survivors))
	}
	_ = attackerHouse
	_ = defenderHouse
}

func TestEvenSplitExcludesSelfAndDeadForces(t *testing.T) {
	st, b, attackerHouse, defenderHouse := setupBattle()

	fractions := EvenSplit(b, attackerHouse, st)
	if len(fractions) != 1 || fractions[0].Target != defenderHouse {
		t.Fatalf("EvenSplit(attacker) = %+v, want single fraction targeting defender", fractions)
	}

	// Kill the defender's only ship; it should no longer be a valid target.
	for _, sid := range b.Forces[defenderHouse].Ships {
		st.Ships[sid].State = state.Destroyed
	}
	if f := EvenSplit(b, attackerHouse, st); f != nil {
		t.Errorf("EvenSplit(attacker) after defender wipeout = %+v, want nil", f)
	}
}
