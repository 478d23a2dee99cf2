package command

import (
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

// RejectionKind classifies why a single command was rejected. Every
// outcome a validator produces is one of these, never a bare error
// string, so downstream code (telemetry, UI) can switch on it (spec.md
// section 4.1: "validate returns typed Accepted/Rejected outcomes").
type RejectionKind int

const (
	RejectSecurityViolation RejectionKind = iota
	RejectEntityMissing
	RejectNoPath
	RejectCapabilityMissing
	RejectTechGate
	RejectCapacityExceeded
	RejectInvalidDiplomaticTarget
	RejectInvalidParameter
	RejectInsufficientFunds
)

// Rejection explains why one sub-command of a packet did not validate.
type Rejection struct {
	Kind   RejectionKind
	Detail string
}

// Outcome is the total result of validating one CommandPacket: every
// fleet, build, diplomatic, transfer, terraform, management and
// espionage sub-command is sorted into exactly one of Accepted or
// Rejected, never causing a panic/exception (spec.md section 4.1/7: "a
// total, pure function"). The ResearchAllocation is passed through
// unchecked. StandingCommands and the EBP/CIP investments are not part
// of the Outcome; the engine and the budget gate read them from the
// packet directly.
type Outcome struct {
	AcceptedFleet       []FleetCommand
	AcceptedBuild       []BuildCommand
	AcceptedResearch    ResearchAllocation
	AcceptedDiplomatic  []DiplomaticCommand
	AcceptedTransfers   []PopulationTransferCommand
	AcceptedTerraform   []TerraformCommand
	AcceptedManagement  []ColonyManagementCommand
	AcceptedEspionage   *EspionageAction

	Rejected map[string][]Rejection // keyed by a caller-assigned sub-command label
}

// Validate checks a CommandPacket against st (the state as of the start
// of the Command phase) and returns a total Outcome. Validate never
// mutates st; it is called once per submitted packet before any packet
// is applied, so one house's invalid order never blocks another
// house's valid ones (spec.md section 4.1).
func Validate(st *state.State, graph *starmap.Graph, rules config.Rules, pkt CommandPacket) Outcome {
	out := Outcome{Rejected: make(map[string][]Rejection)}

	house, ok := st.Houses[pkt.House]
	if !ok {
		out.Rejected["packet"] = []Rejection{{RejectEntityMissing, "house not found"}}
		return out
	}
	if house.IsDefensiveCollapse() {
		out.Rejected["packet"] = []Rejection{{RejectSecurityViolation, "house is in defensive collapse"}}
		return out
	}

	for i, fc := range pkt.FleetCommands {
		if rej, bad := validateFleetCommand(st, graph, house, fc); bad {
			out.Rejected[label("fleet", i)] = []Rejection{rej}
			continue
		}
		out.AcceptedFleet = append(out.AcceptedFleet, fc)
	}

	for i, bc := range pkt.BuildCommands {
		if rej, bad := validateBuildCommand(st, rules, house, bc); bad {
			out.Rejected[label("build", i)] = []Rejection{rej}
			continue
		}
		out.AcceptedBuild = append(out.AcceptedBuild, bc)
	}

	out.AcceptedResearch = pkt.ResearchAllocation

	for i, dc := range pkt.DiplomaticCommands {
		if rej, bad := validateDiplomaticCommand(st, house, dc); bad {
			out.Rejected[label("diplo", i)] = []Rejection{rej}
			continue
		}
		out.AcceptedDiplomatic = append(out.AcceptedDiplomatic, dc)
	}

	for i, pt := range pkt.PopulationTransfers {
		if rej, bad := validateTransfer(st, house, pt); bad {
			out.Rejected[label("transfer", i)] = []Rejection{rej}
			continue
		}
		out.AcceptedTransfers = append(out.AcceptedTransfers, pt)
	}

	for i, tc := range pkt.TerraformCommands {
		if rej, bad := validateTerraform(st, house, tc); bad {
			out.Rejected[label("terraform", i)] = []Rejection{rej}
			continue
		}
		out.AcceptedTerraform = append(out.AcceptedTerraform, tc)
	}

	for i, cm := range pkt.ColonyManagement {
		if rej, bad := validateManagement(st, house, cm); bad {
			out.Rejected[label("manage", i)] = []Rejection{rej}
			continue
		}
		out.AcceptedManagement = append(out.AcceptedManagement, cm)
	}

	if pkt.EspionageAction != nil {
		if rej, bad := validateEspionage(st, house, *pkt.EspionageAction); bad {
			out.Rejected["espionage"] = []Rejection{rej}
		} else {
			out.AcceptedEspionage = pkt.EspionageAction
		}
	}

	return out
}

func label(prefix string, i int) string {
	return prefix + ":" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		p--
		buf[p] = '-'
	}
	return string(buf[p:])
}

func validateFleetCommand(st *state.State, graph *starmap.Graph, house *state.House, fc FleetCommand) (Rejection, bool) {
	f, ok := st.Fleets[fc.Fleet]
	if !ok {
		return Rejection{RejectEntityMissing, "fleet not found"}, true
	}
	if f.Owner != house.ID {
		return Rejection{RejectSecurityViolation, "fleet not owned by submitting house"}, true
	}
	switch fc.Kind {
	case CmdMove, CmdPatrol, CmdRendezvous:
		if fc.TargetSystem.IsNil() {
			return Rejection{RejectInvalidParameter, "missing target system"}, true
		}
		if _, ok := st.Systems[fc.TargetSystem]; !ok {
			return Rejection{RejectEntityMissing, "target system not found"}, true
		}
		classes := fleetShipClasses(st, f)
		if _, reachable := graph.ShortestPath(f.Location, fc.TargetSystem, classes, fleetIsCrippled(st, f)); !reachable {
			return Rejection{RejectNoPath, "no lane path to target system respecting fleet restrictions"}, true
		}
	case CmdColonize:
		if fleetIsCrippled(st, f) {
			return Rejection{RejectCapabilityMissing, "crippled fleet cannot colonize"}, true
		}
		if !fleetHasColonistCargo(st, f) {
			return Rejection{RejectCapabilityMissing, "fleet has no functional Expansion/Auxiliary squadron holding colonist cargo"}, true
		}
	case CmdInvade, CmdBlitz, CmdBombard:
		cid, ok := st.ColonyBySystem[f.Location]
		if !ok {
			return Rejection{RejectInvalidParameter, "no colony present at fleet location to target"}, true
		}
		if !fleetHasCombatCapability(st, f) {
			return Rejection{RejectCapabilityMissing, "fleet has no functional combat squadron"}, true
		}
		if c := st.Colonies[cid]; c != nil && relationState(st, house.ID, c.Owner) != state.RelationEnemy {
			return Rejection{RejectInvalidDiplomaticTarget, "planetary attack requires an Enemy-state target"}, true
		}
	case CmdSpyPlanet, CmdSpySystem, CmdHackStarbase:
		if !f.IsScoutOnly(st) {
			return Rejection{RejectCapabilityMissing, "spy/hack commands require a scout-only fleet"}, true
		}
	case CmdJoinFleet:
		tf, ok := st.Fleets[fc.TargetFleet]
		if !ok {
			return Rejection{RejectEntityMissing, "target fleet not found"}, true
		}
		if tf.Owner != house.ID || tf.Location != f.Location {
			return Rejection{RejectInvalidParameter, "target fleet not co-located and owned"}, true
		}
	}
	return Rejection{}, false
}

// fleetIsCrippled reports whether any member ship is below Undamaged,
// which blocks Restricted-lane traversal and colonization (spec.md
// section 3).
func fleetIsCrippled(st *state.State, f *state.Fleet) bool {
	for _, sid := range f.Ships {
		if sh := st.Ships[sid]; sh != nil && sh.State != state.Undamaged {
			return true
		}
	}
	return false
}

func fleetShipClasses(st *state.State, f *state.Fleet) []state.ShipClass {
	seen := make(map[state.ShipClass]bool)
	var out []state.ShipClass
	for _, sid := range f.Ships {
		if sh := st.Ships[sid]; sh != nil && !seen[sh.Class] {
			seen[sh.Class] = true
			out = append(out, sh.Class)
		}
	}
	return out
}

// fleetHasCombatCapability reports whether f has at least one
// functional (non-Destroyed) ship with AS > 0 (spec.md section 4.1
// Capability gate: planetary attacks need "a combat squadron with
// AS>0").
func fleetHasCombatCapability(st *state.State, f *state.Fleet) bool {
	for _, sid := range f.Ships {
		if sh := st.Ships[sid]; sh != nil && sh.State != state.Destroyed && sh.AS > 0 {
			return true
		}
	}
	return false
}

// fleetHasColonistCargo reports whether f carries at least one
// functional Expansion/Auxiliary squadron (ETAC/TroopTransport)
// holding Colonist cargo > 0 (spec.md section 4.1 Capability gate for
// Colonize).
func fleetHasColonistCargo(st *state.State, f *state.Fleet) bool {
	for _, sid := range f.Ships {
		sh := st.Ships[sid]
		if sh == nil || sh.State == state.Destroyed || !sh.Class.IsExpansionOrAuxiliary() {
			continue
		}
		if sh.Cargo != nil && sh.Cargo.Kind == state.CargoColonists && sh.Cargo.Amount > 0 {
			return true
		}
	}
	return false
}

// relationState returns the DiplomaticState between a and b without
// allocating a Relation entity when none exists, unlike
// state.State.FindRelation (which persists a default Neutral Relation
// as a side effect). Validate is documented to never mutate st, so it
// must use this read-only path instead.
func relationState(st *state.State, a, b id.ID) state.DiplomaticState {
	house := st.Houses[a]
	if house == nil {
		return state.RelationNeutral
	}
	if rid, ok := house.Relations[b]; ok {
		if r := st.Relations[rid]; r != nil {
			return r.State
		}
	}
	return state.RelationNeutral
}

func validateBuildCommand(st *state.State, rules config.Rules, house *state.House, bc BuildCommand) (Rejection, bool) {
	c, ok := st.Colonies[bc.Colony]
	if !ok {
		return Rejection{RejectEntityMissing, "colony not found"}, true
	}
	if c.Owner != house.ID {
		return Rejection{RejectSecurityViolation, "colony not owned by submitting house"}, true
	}
	if bc.Quantity < 0 || bc.IUAmount < 0 {
		return Rejection{RejectInvalidParameter, "negative quantity"}, true
	}

	quantity := bc.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	switch bc.Kind {
	case BuildShip:
		if len(c.Neoriae) == 0 {
			return Rejection{RejectCapabilityMissing, "no shipbuilding facility at colony"}, true
		}
		class := state.ShipClass(bc.ShipClass)
		if house.Tech[state.TechCST] < rules.Ships[class].RequiredCST {
			return Rejection{RejectTechGate, "house Construction tech below ship class requirement"}, true
		}
		switch {
		case class == state.ShipFighter:
			if fighterCountAt(st, c)+quantity > rules.FighterColonyCapacity {
				return Rejection{RejectCapacityExceeded, "fighter colony capacity exceeded"}, true
			}
		case class != state.ShipScout:
			if houseSquadronCount(st, house.ID)+quantity > rules.HouseSquadronCapacity {
				return Rejection{RejectCapacityExceeded, "house squadron capacity exceeded"}, true
			}
		}
	case BuildFacility:
		fs := rules.Facilities[state.NeoriaClass(bc.FacilityClass)]
		if house.Tech[state.TechCST] < fs.RequiredCST {
			return Rejection{RejectTechGate, "house Construction tech below facility requirement"}, true
		}
		if fs.RequiresShipyardAssist && !colonyHasUncrippledShipyard(st, c) {
			return Rejection{RejectTechGate, "facility requires an uncrippled shipyard at the colony"}, true
		}
	}
	return Rejection{}, false
}

func colonyHasUncrippledShipyard(st *state.State, c *state.Colony) bool {
	for _, nid := range c.Neoriae {
		if n := st.Neoriae[nid]; n != nil && n.Class == state.Shipyard && n.State == state.Undamaged {
			return true
		}
	}
	return false
}

// fighterCountAt counts Fighter-class ships currently stationed at c
// (spec.md section 4.1 Capacity gate: "fighter colony capacity").
func fighterCountAt(st *state.State, c *state.Colony) int {
	n := 0
	for _, sh := range st.Ships {
		if sh.Colony == c.ID && sh.Class == state.ShipFighter {
			n++
		}
	}
	return n
}

// houseSquadronCount counts every non-Scout ship house owns across all
// fleets (spec.md section 4.1 Capacity gate: "house squadron capacity,
// excluding scouts").
func houseSquadronCount(st *state.State, house id.ID) int {
	n := 0
	for _, fid := range st.FleetsByOwner[house] {
		for _, sid := range st.ShipsByFleet[fid] {
			if sh := st.Ships[sid]; sh != nil && sh.Class != state.ShipScout {
				n++
			}
		}
	}
	return n
}

func validateDiplomaticCommand(st *state.State, house *state.House, dc DiplomaticCommand) (Rejection, bool) {
	if dc.Target == house.ID {
		return Rejection{RejectInvalidDiplomaticTarget, "cannot target self"}, true
	}
	target, ok := st.Houses[dc.Target]
	if !ok {
		return Rejection{RejectEntityMissing, "target house not found"}, true
	}
	if target.Eliminated {
		return Rejection{RejectInvalidDiplomaticTarget, "target house eliminated"}, true
	}
	return Rejection{}, false
}

func validateTransfer(st *state.State, house *state.House, pt PopulationTransferCommand) (Rejection, bool) {
	src, ok := st.Colonies[pt.Source]
	if !ok || src.Owner != house.ID {
		return Rejection{RejectSecurityViolation, "source colony not owned"}, true
	}
	dst, ok := st.Colonies[pt.Destination]
	if !ok || dst.Owner != house.ID {
		return Rejection{RejectSecurityViolation, "destination colony not owned"}, true
	}
	if pt.PTU <= 0 {
		return Rejection{RejectInvalidParameter, "non-positive PTU"}, true
	}
	if pt.PTU > src.PopulationUnits {
		return Rejection{RejectCapacityExceeded, "transfer exceeds source population"}, true
	}
	return Rejection{}, false
}

func validateTerraform(st *state.State, house *state.House, tc TerraformCommand) (Rejection, bool) {
	c, ok := st.Colonies[tc.Colony]
	if !ok || c.Owner != house.ID {
		return Rejection{RejectSecurityViolation, "colony not owned"}, true
	}
	if c.Terraform != nil {
		return Rejection{RejectCapacityExceeded, "terraform project already in progress"}, true
	}
	return Rejection{}, false
}

func validateManagement(st *state.State, house *state.House, cm ColonyManagementCommand) (Rejection, bool) {
	c, ok := st.Colonies[cm.Colony]
	if !ok || c.Owner != house.ID {
		return Rejection{RejectSecurityViolation, "colony not owned"}, true
	}
	if cm.TaxRate != nil && (*cm.TaxRate < 0 || *cm.TaxRate > 100) {
		return Rejection{RejectInvalidParameter, "tax rate out of [0,100]"}, true
	}
	return Rejection{}, false
}

func validateEspionage(st *state.State, house *state.House, ea EspionageAction) (Rejection, bool) {
	if house.Espionage.ActionTakenTurn == st.Turn {
		return Rejection{RejectCapacityExceeded, "at most one espionage action per house per turn"}, true
	}
	switch ea.Kind {
	case EspionageTechTheft, EspionageSabotage, EspionageAssassination, EspionageEconomicManipulation, EspionagePsyops:
		if _, ok := st.Houses[ea.Target]; !ok {
			return Rejection{RejectEntityMissing, "target house not found"}, true
		}
		if ea.Target == house.ID {
			return Rejection{RejectInvalidDiplomaticTarget, "cannot target self"}, true
		}
	case EspionageCounterIntelSweep:
		// targets own house implicitly; no external target required.
	default:
		if ea.System.IsNil() {
			return Rejection{RejectInvalidParameter, "missing system target"}, true
		}
		if _, ok := st.Systems[ea.System]; !ok {
			return Rejection{RejectEntityMissing, "target system not found"}, true
		}
	}
	return Rejection{}, false
}
