// Package event defines the resolver's typed event log and the
// visibility filter described in spec.md section 4.5. Grounded on the
// teacher's diplomacy.DiplomaticEvent / players event-log convention
// (a small closed Kind enum plus a kind-specific payload struct)
// generalized to the full event surface named across spec.md sections
// 4.3/4.5/4.6/4.7, since the teacher's own event enum only covers
// diplomatic state changes.
package event

import "github.com/greenm01/ec4x/internal/id"

// Kind is the closed set of event kinds the resolver can emit.
type Kind int

const (
	// Command-phase / own-house events.
	FleetArrived Kind = iota
	OrderFailed
	FallbackSuccess
	NoViableTarget
	ConstructionFinished
	TechAdvance
	IntelGathered
	PrestigeGain
	PrestigeLoss
	ResourceWarning
	TransferRedirected
	TransferDelivered
	TransferLost

	// Diplomatic / global events.
	DiplomaticStateChanged
	TreatyProposed
	TreatyAccepted
	TreatyBroken
	HouseEliminated

	// Combat events.
	CombatTheaterBegan
	CombatTheaterCompleted
	CombatPhaseBegan
	CombatPhaseCompleted
	WeaponFired
	ShipDamaged
	ShipDestroyed
	ShieldActivated
	BombardmentRoundBegan
	BombardmentRoundCompleted
	FleetRetreat
	StarbaseCombat
	InvasionBegan
	InvasionRepelled
	BlitzBegan
	GroundCombatRound
	FighterEngagement
	CarrierDestroyed
	BattleOccurred
	ColonyCaptured
	SystemCaptured
	ColonyEstablished

	// Espionage events.
	TechTheftExecuted
	SabotageConducted
	AssassinationAttempted
	CyberAttackConducted
	IntelligenceTheftExecuted
	DisinformationPlanted
	EconomicManipulationExecuted
	PsyopsCampaignLaunched
	CounterIntelSweepExecuted
	SpyMissionDetected
	ScoutDetected
	ScoutDestroyed
	RaiderStealthSuccess
	StarbaseSurveillanceDetection

	// Income / diagnostics.
	ColonyIncomeReport

	// Engine-level failure.
	InvariantPoisoned
)

// Event is one entry in the resolver's flat event log.
type Event struct {
	Kind          Kind
	House         id.ID // primary actor, Nil if none
	TargetHouse   id.ID // Nil if none
	System        id.ID // Nil if none
	Turn          int
	Payload       map[string]any
}

// New builds an Event with the given kind and optional field setters.
func New(kind Kind, turn int) Event {
	return Event{Kind: kind, Turn: turn, Payload: make(map[string]any)}
}

func (e Event) WithHouse(h id.ID) Event {
	e.House = h
	return e
}

func (e Event) WithTarget(h id.ID) Event {
	e.TargetHouse = h
	return e
}

func (e Event) WithSystem(s id.ID) Event {
	e.System = s
	return e
}

func (e Event) With(key string, val any) Event {
	e.Payload[key] = val
	return e
}
