package event

import (
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/state"
)

func visibilityClass(k Kind) int {
	switch k {
	case FleetArrived, OrderFailed, FallbackSuccess, NoViableTarget, ConstructionFinished,
		TechAdvance, IntelGathered, PrestigeGain, PrestigeLoss, ResourceWarning,
		TransferRedirected, TransferDelivered, TransferLost:
		return classActingHouseOnly

	case DiplomaticStateChanged, TreatyProposed, TreatyAccepted, TreatyBroken, HouseEliminated:
		return classAllHouses

	case CombatTheaterBegan, CombatTheaterCompleted, CombatPhaseBegan, CombatPhaseCompleted,
		WeaponFired, ShipDamaged, ShipDestroyed, ShieldActivated, BombardmentRoundBegan,
		BombardmentRoundCompleted, FleetRetreat, StarbaseCombat, InvasionBegan, InvasionRepelled,
		BlitzBegan, GroundCombatRound, FighterEngagement, CarrierDestroyed, BattleOccurred,
		ColonyCaptured, SystemCaptured, ColonyEstablished:
		return classSystemPresence

	case TechTheftExecuted, SabotageConducted, AssassinationAttempted, CyberAttackConducted,
		IntelligenceTheftExecuted, DisinformationPlanted, EconomicManipulationExecuted,
		PsyopsCampaignLaunched, CounterIntelSweepExecuted:
		return classAttackerOnly

	case SpyMissionDetected, ScoutDetected, ScoutDestroyed:
		return classDetectingHouseOnly

	case RaiderStealthSuccess, StarbaseSurveillanceDetection:
		return classOwnerObserverOnly

	case ColonyIncomeReport:
		return classActingHouseOnly

	case InvariantPoisoned:
		return classAllHouses

	default:
		return classActingHouseOnly
	}
}

const (
	classActingHouseOnly = iota
	classAllHouses
	classSystemPresence
	classAttackerOnly
	classDetectingHouseOnly
	classOwnerObserverOnly
)

// Filter returns the subset of events visible to viewer, per the table
// in spec.md section 4.5. st must be the post-turn state the events
// were produced against, since system-presence visibility depends on
// current fleet/colony/starbase locations.
func Filter(events []Event, viewer id.ID, st *state.State) []Event {
	var out []Event
	for _, e := range events {
		if visible(e, viewer, st) {
			out = append(out, e)
		}
	}
	return out
}

func visible(e Event, viewer id.ID, st *state.State) bool {
	switch visibilityClass(e.Kind) {
	case classActingHouseOnly:
		return e.House == viewer
	case classAllHouses:
		return true
	case classSystemPresence:
		if e.System.IsNil() {
			return e.House == viewer || e.TargetHouse == viewer
		}
		return st.HouseHasPresence(viewer, e.System)
	case classAttackerOnly:
		return e.House == viewer
	case classDetectingHouseOnly:
		return e.TargetHouse == viewer || e.House == viewer
	case classOwnerObserverOnly:
		return e.House == viewer
	default:
		return false
	}
}
