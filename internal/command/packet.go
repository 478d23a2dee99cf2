// Package command defines the typed command-packet schema and the pure
// validator described in spec.md section 4.1. Grounded on the teacher's
// maps.PlayerAction (a typed, versioned action record keyed by
// player/map with a string Type discriminator) generalized into a
// closed Go type per command kind instead of a stringly-typed Type
// field plus loosely-typed Payload bson.D, since spec.md section 6
// requires "field shapes correspond 1:1 to section 4.1".
package command

import "github.com/greenm01/ec4x/internal/id"

// FleetCommandKind mirrors state.FleetCommandKind; duplicated here (as
// a distinct named type) so the wire schema does not leak internal
// state package types into the command surface other than ids.
type FleetCommandKind int

const (
	CmdHold FleetCommandKind = iota
	CmdMove
	CmdPatrol
	CmdSeekHome
	CmdColonize
	CmdBombard
	CmdInvade
	CmdBlitz
	CmdSpyPlanet
	CmdSpySystem
	CmdHackStarbase
	CmdJoinFleet
	CmdRendezvous
	CmdSalvage
	CmdReserve
	CmdMothball
	CmdViewWorld
)

// FleetCommand is one ordered instruction for one fleet.
type FleetCommand struct {
	Fleet        id.ID
	Kind         FleetCommandKind
	TargetSystem id.ID
	TargetFleet  id.ID
	Priority     int
}

// BuildCommand requests construction of a ship, facility, ground unit,
// or raw industrial units at a colony.
type BuildTargetKind int

const (
	BuildShip BuildTargetKind = iota
	BuildFacility
	BuildGroundUnit
	BuildIndustrialUnits
)

type BuildCommand struct {
	Colony        id.ID
	Kind          BuildTargetKind
	ShipClass     int // state.ShipClass, kept as int to avoid import cycle noise at the wire layer
	FacilityClass int // state.NeoriaClass
	IsKastra      bool
	GroundClass   int // state.GroundUnitClass
	IUAmount      int
	Quantity      int
}

// ResearchAllocation is a house's per-turn research spend.
type ResearchAllocation struct {
	ERP       int
	SRP       int
	PerFieldTRP map[int]int // state.TechField -> TRP
}

// DiplomaticActionKind enumerates the allowed relation transitions
// (spec.md section 4.3 state machines).
type DiplomaticActionKind int

const (
	DiploProposePact DiplomaticActionKind = iota
	DiploAcceptPact
	DiploWithdrawProposal
	DiploBreakPact
	DiploDeclareHostile
	DiploDeclareEnemy
	DiploSetNeutral
)

type DiplomaticCommand struct {
	Kind   DiplomaticActionKind
	Target id.ID
}

// PopulationTransferCommand moves PTU between two owned colonies.
type PopulationTransferCommand struct {
	Source      id.ID
	Destination id.ID
	PTU         int
}

// TerraformCommand starts a terraform project at a colony.
type TerraformCommand struct {
	Colony      id.ID
	TargetClass int // state.PlanetClass
}

// ColonyManagementCommand adjusts a colony's tax rate or auto-repair flag.
type ColonyManagementCommand struct {
	Colony     id.ID
	TaxRate    *int
	AutoRepair *bool
}

// EspionageActionKind enumerates the single espionage action a house
// may take per turn (spec.md section 4.7).
type EspionageActionKind int

const (
	EspionageTechTheft EspionageActionKind = iota
	EspionageSabotage
	EspionageAssassination
	EspionageCyberAttack
	EspionageIntelligenceTheft
	EspionageDisinformation
	EspionageEconomicManipulation
	EspionagePsyops
	EspionageCounterIntelSweep
)

type EspionageAction struct {
	Kind   EspionageActionKind
	Target id.ID
	System id.ID
}

// StandingCommand persists a fleet's default order across turns.
type StandingCommand struct {
	Fleet id.ID
	Kind  FleetCommandKind
	Target id.ID
}

// CommandPacket bundles one house's orders for one turn (spec.md
// section 4.1/6). TreasuryAtSubmission lets the validator/budget gate
// detect a stale client view without trusting it as ground truth.
type CommandPacket struct {
	GameID                string
	House                 id.ID
	Turn                  int
	TreasuryAtSubmission  int

	FleetCommands       []FleetCommand
	BuildCommands       []BuildCommand
	ResearchAllocation  ResearchAllocation
	DiplomaticCommands  []DiplomaticCommand
	PopulationTransfers []PopulationTransferCommand
	TerraformCommands   []TerraformCommand
	ColonyManagement    []ColonyManagementCommand
	StandingCommands    []StandingCommand

	EspionageAction *EspionageAction
	EBPInvestment   int
	CIPInvestment   int
}
