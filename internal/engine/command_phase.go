package engine

import (
	"sort"

	"github.com/greenm01/ec4x/internal/budget"
	"github.com/greenm01/ec4x/internal/command"
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/diplomacy"
	"github.com/greenm01/ec4x/internal/economy"
	"github.com/greenm01/ec4x/internal/espionage"
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/research"
	"github.com/greenm01/ec4x/internal/rng"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

// resolveCommand is Phase 3 (spec.md section 4.3): build orders,
// movement, colonization, population transfers, terraform starts,
// diplomacy, standing commands, and research allocation.
func resolveCommand(r *rng.RNG, st *state.State, rules config.Rules, graph *starmap.Graph, outcomes map[id.ID]command.Outcome, budgets map[id.ID]budget.Result, pktByHouse map[id.ID]command.CommandPacket, turn int) []event.Event {
	var events []event.Event

	houseIDs := make([]id.ID, 0, len(outcomes))
	for hid := range outcomes {
		houseIDs = append(houseIDs, hid)
	}
	sort.Slice(houseIDs, func(i, j int) bool { return houseIDs[i].Index() < houseIDs[j].Index() })

	touchedColonies := make(map[id.ID]bool)
	var claims []economy.ColonizeClaim

	for _, hid := range houseIDs {
		bres := budgets[hid]
		out := outcomes[hid]

		for _, bc := range bres.Build {
			applyBuildCommand(st, bc, turn)
			touchedColonies[bc.Colony] = true
		}

		for _, fc := range out.AcceptedFleet {
			f := st.Fleets[fc.Fleet]
			if f == nil {
				continue
			}
			switch fc.Kind {
			case command.CmdMove, command.CmdPatrol, command.CmdRendezvous, command.CmdSeekHome:
				events = append(events, advanceFleet(st, graph, f, turn)...)
			case command.CmdColonize:
				claims = append(claims, economy.ColonizeClaim{House: hid, Fleet: fc.Fleet, System: f.Location})
			case command.CmdSpySystem, command.CmdSpyPlanet, command.CmdHackStarbase:
				events = append(events, gatherIntel(r, st, hid, f, fc.Kind, turn)...)
			case command.CmdViewWorld:
				events = append(events, viewWorld(st, hid, f, turn)...)
			case command.CmdSalvage:
				events = append(events, salvageSystem(st, rules, hid, f, turn)...)
			case command.CmdReserve:
				f.Status = state.FleetReserve
			case command.CmdMothball:
				f.Status = state.FleetMothballed
			}
		}

		for _, pt := range bres.Transfers {
			src := st.Colonies[pt.Source]
			dst := st.Colonies[pt.Destination]
			if src == nil || dst == nil {
				continue
			}
			jumps := transferJumpCount(st, src, dst)
			economy.CreateTransfer(st, src, dst, pt.PTU, 0, jumps, turn)
		}

		for _, tc := range bres.Terraform {
			c := st.Colonies[tc.Colony]
			if c == nil || c.Terraform != nil {
				continue
			}
			target := state.PlanetClass(tc.TargetClass)
			c.Terraform = &state.TerraformProject{
				TargetClass: target,
				TotalCost:   rules.TerraformBaseCost[target],
			}
		}

		for _, dc := range out.AcceptedDiplomatic {
			house := st.Houses[hid]
			if house == nil {
				continue
			}
			events = append(events, diplomacy.Apply(st, house, dc, turn)...)
		}

		for _, cm := range out.AcceptedManagement {
			c := st.Colonies[cm.Colony]
			if c == nil {
				continue
			}
			if cm.TaxRate != nil {
				c.TaxRate = *cm.TaxRate
			}
			if cm.AutoRepair != nil {
				c.AutoRepair = *cm.AutoRepair
			}
		}

		if pkt, ok := pktByHouse[hid]; ok {
			for _, sc := range pkt.StandingCommands {
				if f := st.Fleets[sc.Fleet]; f != nil {
					f.Standing = state.StandingOrder{Kind: state.FleetCommandKind(sc.Kind), TargetSystem: sc.Target}
				}
			}
		}

		house := st.Houses[hid]
		if house != nil {
			trp := bres.Research.PerFieldTRP
			if research.IsUpgradeTurn(rules.ResearchUpgradeMonths, turnMonth(turn)) {
				events = append(events, research.Advance(r, st, hid, trp, turn)...)
			}
		}
	}

	events = append(events, economy.ResolveColonization(st, rules, claims, turn)...)

	for cid := range touchedColonies {
		if c := st.Colonies[cid]; c != nil {
			events = append(events, economy.AssignDocks(st, c)...)
		}
	}

	return events
}

func applyBuildCommand(st *state.State, bc command.BuildCommand, turn int) {
	c := st.Colonies[bc.Colony]
	if c == nil {
		return
	}
	target := state.ProjectTarget{
		Kind:          state.ProjectTargetKind(bc.Kind),
		ShipClass:     state.ShipClass(bc.ShipClass),
		FacilityClass: state.NeoriaClass(bc.FacilityClass),
		IsKastra:      bc.IsKastra,
		GroundClass:   state.GroundUnitClass(bc.GroundClass),
		IUAmount:      bc.IUAmount,
	}
	quantity := bc.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	p := &state.ConstructionProject{
		Colony:         c.ID,
		Target:         target,
		Quantity:       quantity,
		TurnsRemaining: buildTurns(bc),
		Stage:          state.StageQueued,
	}
	pid := st.AddProject(p)
	c.ConstructionQueue = append(c.ConstructionQueue, pid)
}

// buildTurns picks a flat construction time by target kind: ships 2
// turns, facilities 4, ground units and everything else 1. Hull class
// and quantity are not considered.
func buildTurns(bc command.BuildCommand) int {
	switch bc.Kind {
	case command.BuildShip:
		return 2
	case command.BuildFacility:
		return 4
	case command.BuildGroundUnit:
		return 1
	default:
		return 1
	}
}

// advanceFleet moves f one hop along its cached shortest path,
// computing the path when none is cached; a cached path is not
// re-checked (spec.md section 4.3:
// "advance the fleet one lane along the precomputed shortest path").
func advanceFleet(st *state.State, graph *starmap.Graph, f *state.Fleet, turn int) []event.Event {
	if f.TargetSystem.IsNil() {
		return nil
	}
	if len(f.PathCache) == 0 {
		classes := fleetClasses(st, f)
		path, ok := graph.ShortestPath(f.Location, f.TargetSystem, classes, fleetCrippled(st, f))
		if !ok {
			return nil
		}
		f.PathCache = path
	}
	if len(f.PathCache) == 0 {
		return nil
	}
	next := f.PathCache[0]
	f.PathCache = f.PathCache[1:]
	st.MoveFleet(f.ID, next)

	var events []event.Event
	if next == f.TargetSystem {
		events = append(events, event.New(event.FleetArrived, turn).WithHouse(f.Owner).WithSystem(next))
		f.TargetSystem = id.Nil
		f.PathCache = nil
	}
	return events
}

func fleetClasses(st *state.State, f *state.Fleet) []state.ShipClass {
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

func fleetCrippled(st *state.State, f *state.Fleet) bool {
	for _, sid := range f.Ships {
		if sh := st.Ships[sid]; sh != nil && sh.State != state.Undamaged {
			return true
		}
	}
	return false
}

// gatherIntel resolves a scout-only fleet's SpySystem/SpyPlanet/
// HackStarbase order at its current system, writing sightings into the
// owning house's IntelDatabase (spec.md section 3/4.4: the Intelligence
// database/fog-of-war projector has nothing to read until something
// writes it). HackStarbase additionally rolls for detection against
// the target house's counter-intelligence, the same chance-vs-CIC
// shape espionage.DetectionChance already uses for the standalone
// espionage action.
func gatherIntel(r *rng.RNG, st *state.State, hid id.ID, f *state.Fleet, kind command.FleetCommandKind, turn int) []event.Event {
	house := st.Houses[hid]
	if house == nil {
		return nil
	}

	switch kind {
	case command.CmdSpySystem:
		house.IntelDB.UpsertSystem(f.Location, state.VisibilityScouted, turn)
		for _, ofid := range st.FleetsBySystem[f.Location] {
			of := st.Fleets[ofid]
			if of == nil || of.Owner == hid {
				continue
			}
			house.IntelDB.UpsertFleet(ofid, of.Owner, of.Location, turn, fleetShipCounts(st, of))
		}
		return []event.Event{event.New(event.IntelGathered, turn).WithHouse(hid).WithSystem(f.Location)}

	case command.CmdSpyPlanet:
		cid, ok := st.ColonyBySystem[f.Location]
		if !ok {
			return nil
		}
		c := st.Colonies[cid]
		if c == nil || c.Owner == hid {
			return nil
		}
		house.IntelDB.UpsertColony(cid, c.Owner, c.PopulationUnits, c.IndustrialUnits, colonyDefenseEstimate(st, c), turn)
		return []event.Event{event.New(event.IntelGathered, turn).WithHouse(hid).WithSystem(f.Location)}

	case command.CmdHackStarbase:
		cid, ok := st.ColonyBySystem[f.Location]
		if !ok {
			return nil
		}
		c := st.Colonies[cid]
		if c == nil || c.Owner == hid || !colonyHasActiveKastra(st, c) {
			return nil
		}
		target := st.Houses[c.Owner]
		targetCIC, targetCIP := 0, 0
		if target != nil {
			targetCIC = target.Tech[state.TechCIC]
			targetCIP = target.Espionage.CIP
		}
		if r.D100() <= espionage.DetectionChance(targetCIC, targetCIP) {
			return []event.Event{event.New(event.ScoutDetected, turn).WithHouse(hid).WithTarget(c.Owner).WithSystem(f.Location)}
		}
		house.IntelDB.UpsertSystem(f.Location, state.VisibilityObserved, turn)
		house.IntelDB.UpsertColony(cid, c.Owner, c.PopulationUnits, c.IndustrialUnits, colonyDefenseEstimate(st, c), turn)
		return []event.Event{event.New(event.IntelGathered, turn).WithHouse(hid).WithSystem(f.Location)}
	}
	return nil
}

// viewWorld commits a fleet's current-presence view of its own system
// to the owning house's IntelDatabase, so visibility does not collapse
// straight to VisibilityNone the moment the fleet moves on (spec.md
// section 4.4: "never downgrades"). Unlike the scout commands, any
// fleet may submit ViewWorld — it is not in the scout-only capability
// gate's command set.
func viewWorld(st *state.State, hid id.ID, f *state.Fleet, turn int) []event.Event {
	house := st.Houses[hid]
	if house == nil {
		return nil
	}
	house.IntelDB.UpsertSystem(f.Location, state.VisibilityObserved, turn)
	if cid, ok := st.ColonyBySystem[f.Location]; ok {
		if c := st.Colonies[cid]; c != nil && c.Owner != hid {
			house.IntelDB.UpsertColony(cid, c.Owner, c.PopulationUnits, c.IndustrialUnits, colonyDefenseEstimate(st, c), turn)
		}
	}
	return []event.Event{event.New(event.IntelGathered, turn).WithHouse(hid).WithSystem(f.Location)}
}

// salvageSystem credits hid's treasury for picking over an uncolonized
// system's wreckage; Salvage pays out only where no colony already
// claims the system.
func salvageSystem(st *state.State, rules config.Rules, hid id.ID, f *state.Fleet, turn int) []event.Event {
	if _, ok := st.ColonyBySystem[f.Location]; ok {
		return []event.Event{event.New(event.OrderFailed, turn).WithHouse(hid).WithSystem(f.Location).With("reason", "nothing to salvage at a colonized system")}
	}
	house := st.Houses[hid]
	if house == nil {
		return nil
	}
	house.Treasury += rules.SalvageValuePP
	return nil
}

func colonyHasActiveKastra(st *state.State, c *state.Colony) bool {
	for _, kid := range c.Kastrai {
		if k := st.Kastrai[kid]; k != nil && k.State != state.Destroyed {
			return true
		}
	}
	return false
}

// colonyDefenseEstimate summarizes c's defensive strength for an
// intel-gathering sighting: starbase dock capacity plus ground-unit
// defense strength.
func colonyDefenseEstimate(st *state.State, c *state.Colony) int {
	def := 0
	for _, kid := range c.Kastrai {
		if k := st.Kastrai[kid]; k != nil && k.State != state.Destroyed {
			def += k.EffectiveDocks
		}
	}
	for _, gid := range c.GroundUnits {
		if g := st.GroundUnits[gid]; g != nil {
			def += g.DS
		}
	}
	return def
}

func fleetShipCounts(st *state.State, f *state.Fleet) map[state.ShipClass]int {
	counts := make(map[state.ShipClass]int)
	for _, sid := range f.Ships {
		if sh := st.Ships[sid]; sh != nil {
			counts[sh.Class]++
		}
	}
	return counts
}

func transferJumpCount(st *state.State, src, dst *state.Colony) int {
	ssys := st.Systems[src.System]
	dsys := st.Systems[dst.System]
	if ssys == nil || dsys == nil {
		return 1
	}
	d := starmap.HexDistance(ssys.Hex, dsys.Hex)
	if d < 1 {
		d = 1
	}
	return d
}

// turnMonth maps a 1-indexed turn counter onto a 12-month year (spec.md
// section 4.3 Maintenance: "Advance turn counter, year/month"), used to
// gate research upgrade turns against rules.ResearchUpgradeMonths.
func turnMonth(turn int) int {
	m := turn % 12
	if m == 0 {
		m = 12
	}
	return m
}
