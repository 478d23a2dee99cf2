// Package budget implements the fixed-order treasury gate that runs
// after command validation (spec.md section 4.2): maintenance
// reservation, build commands, research allocation, espionage
// investment, population transfers, terraform starts — each checked
// against a running remaining-budget counter and either deducted or
// rejected with InsufficientFunds. Grounded on ships.EconomicCap /
// the teacher's "compute a cost, compare to a cap, accept or reject"
// shape for squadron upkeep, generalized from a single upkeep check
// into the full fixed six-step pipeline spec.md names.
package budget

import (
	"github.com/greenm01/ec4x/internal/command"
	"github.com/greenm01/ec4x/internal/config"
	"github.com/greenm01/ec4x/internal/id"
	"github.com/greenm01/ec4x/internal/starmap"
	"github.com/greenm01/ec4x/internal/state"
)

// LineItem is one costed entry in the gate's running ledger.
type LineItem struct {
	Label string
	Cost  int
	Paid  bool
}

// Summary is the cost summary appended to the per-house event stream
// (spec.md section 4.2): "build, research, espionage, totals,
// canAfford flag, errors, warnings".
type Summary struct {
	MaintenanceReserved int
	BuildCost           int
	ResearchCost        int
	EspionageCost       int
	TransferCost        int
	TerraformCost       int
	Total               int
	CanAfford           bool
	Items               []LineItem
	Errors              []string
	Warnings            []string
}

// Result is the output of Gate: the subset of each accepted-command
// list that cleared the budget, plus the cost summary. Rejected items
// are listed by their sub-command label with an InsufficientFunds
// rejection, mirroring command.Outcome's shape.
type Result struct {
	Build     []command.BuildCommand
	Research  command.ResearchAllocation
	Espionage *command.EspionageAction
	Transfers []command.PopulationTransferCommand
	Terraform []command.TerraformCommand
	Summary   Summary
	Rejected  map[string]command.Rejection
}

// Gate runs the fixed six-step pipeline (spec.md section 4.2) against
// house's treasury, deducting from st (the caller's mutable working
// copy — Gate is invoked from within the Command phase against the
// turn's in-progress clone, not the prior-turn state) as it goes.
func Gate(st *state.State, rules config.Rules, house *state.House, pkt command.CommandPacket, out command.Outcome) Result {
	res := Result{Rejected: make(map[string]command.Rejection)}
	remaining := house.Treasury

	maint := projectedMaintenance(st, rules, house)
	remaining -= maint
	res.Summary.MaintenanceReserved = maint
	res.Summary.Items = append(res.Summary.Items, LineItem{Label: "maintenance", Cost: maint, Paid: true})

	for i, bc := range out.AcceptedBuild {
		cost := buildCost(st, rules, bc)
		label := itemLabel("build", i)
		if cost > remaining {
			res.Rejected[label] = command.Rejection{Kind: command.RejectInsufficientFunds, Detail: "cannot afford build order"}
			res.Summary.Errors = append(res.Summary.Errors, label+": insufficient funds")
			continue
		}
		remaining -= cost
		res.Build = append(res.Build, bc)
		res.Summary.BuildCost += cost
		res.Summary.Items = append(res.Summary.Items, LineItem{Label: label, Cost: cost, Paid: true})
	}

	rCost := researchCost(out.AcceptedResearch)
	if rCost > remaining {
		res.Rejected["research"] = command.Rejection{Kind: command.RejectInsufficientFunds, Detail: "cannot afford research allocation"}
		res.Summary.Errors = append(res.Summary.Errors, "research: insufficient funds")
	} else {
		remaining -= rCost
		res.Research = out.AcceptedResearch
		res.Summary.ResearchCost = rCost
		res.Summary.Items = append(res.Summary.Items, LineItem{Label: "research", Cost: rCost, Paid: true})
	}

	// Espionage investment (spec.md section 4.2 step 4: "40 PP per
	// EBP/CIP") is priced off this turn's submitted investment amounts,
	// not the house's pre-existing pool, and accumulates into that pool
	// on success. It runs whether or not an EspionageAction was also
	// submitted this turn — the two are independent: EBP/CIP build a
	// standing pool; AcceptedEspionage spends a single action against it.
	invested := pkt.EBPInvestment + pkt.CIPInvestment
	if invested > 0 {
		cost := espionageCost(rules, invested)
		if cost > remaining {
			res.Rejected["espionage-investment"] = command.Rejection{Kind: command.RejectInsufficientFunds, Detail: "cannot afford espionage investment"}
			res.Summary.Errors = append(res.Summary.Errors, "espionage-investment: insufficient funds")
		} else {
			remaining -= cost
			house.Espionage.EBP += pkt.EBPInvestment
			house.Espionage.CIP += pkt.CIPInvestment
			house.Espionage.EBPInvestedTotal += pkt.EBPInvestment
			house.Espionage.CIPInvestedTotal += pkt.CIPInvestment
			res.Summary.EspionageCost = cost
			res.Summary.Items = append(res.Summary.Items, LineItem{Label: "espionage-investment", Cost: cost, Paid: true})
		}
	}

	if out.AcceptedEspionage != nil {
		res.Espionage = out.AcceptedEspionage
	}

	for i, pt := range out.AcceptedTransfers {
		jumps := transferJumps(st, pt)
		cost := transferCost(jumps, pt.PTU)
		label := itemLabel("transfer", i)
		if cost > remaining {
			res.Rejected[label] = command.Rejection{Kind: command.RejectInsufficientFunds, Detail: "cannot afford population transfer"}
			res.Summary.Errors = append(res.Summary.Errors, label+": insufficient funds")
			continue
		}
		remaining -= cost
		res.Transfers = append(res.Transfers, pt)
		res.Summary.TransferCost += cost
		res.Summary.Items = append(res.Summary.Items, LineItem{Label: label, Cost: cost, Paid: true})
	}

	for i, tc := range out.AcceptedTerraform {
		cost := terraformCost(rules, state.PlanetClass(tc.TargetClass))
		label := itemLabel("terraform", i)
		if cost > remaining {
			res.Rejected[label] = command.Rejection{Kind: command.RejectInsufficientFunds, Detail: "cannot afford terraform start"}
			res.Summary.Errors = append(res.Summary.Errors, label+": insufficient funds")
			continue
		}
		remaining -= cost
		res.Terraform = append(res.Terraform, tc)
		res.Summary.TerraformCost += cost
		res.Summary.Items = append(res.Summary.Items, LineItem{Label: label, Cost: cost, Paid: true})
	}

	res.Summary.Total = res.Summary.BuildCost + res.Summary.ResearchCost + res.Summary.EspionageCost +
		res.Summary.TransferCost + res.Summary.TerraformCost
	res.Summary.CanAfford = len(res.Rejected) == 0
	house.Treasury = remaining
	return res
}

func itemLabel(prefix string, i int) string {
	return prefix + ":" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[p:])
}

// projectedMaintenance sums per-turn upkeep for every ship, neoria and
// kastra a house owns (spec.md section 4.3 Maintenance: "pay ship,
// facility and ground-unit upkeep"), at a fixed fraction of build cost
// per ship and flat per-facility rates.
func projectedMaintenance(st *state.State, rules config.Rules, house *state.House) int {
	total := 0
	for _, fid := range st.FleetsByOwner[house.ID] {
		for _, sid := range st.ShipsByFleet[fid] {
			sh := st.Ships[sid]
			if sh == nil {
				continue
			}
			stats := rules.Ships[sh.Class]
			total += stats.MetalCost / 20
		}
	}
	for _, cid := range st.ColoniesByOwner[house.ID] {
		c := st.Colonies[cid]
		if c == nil {
			continue
		}
		for _, nid := range c.Neoriae {
			n := st.Neoriae[nid]
			if n == nil || n.State == state.Destroyed {
				continue
			}
			total += 10
		}
		for _, kid := range c.Kastrai {
			k := st.Kastrai[kid]
			if k == nil || k.State == state.Destroyed {
				continue
			}
			total += 25
		}
	}
	return total
}

// buildCost computes baseCost(S) x quantity, doubled when built
// planet-side (no shipyard, only spaceport), except Fighters which
// never incur the penalty (spec.md section 4.2).
func buildCost(st *state.State, rules config.Rules, bc command.BuildCommand) int {
	switch bc.Kind {
	case command.BuildShip:
		stats := rules.Ships[state.ShipClass(bc.ShipClass)]
		base := stats.MetalCost * bc.Quantity
		if state.ShipClass(bc.ShipClass) != state.ShipFighter && !hasShipyard(st, bc.Colony) {
			base *= 2
		}
		return base
	case command.BuildFacility:
		fs := rules.Facilities[state.NeoriaClass(bc.FacilityClass)]
		return fs.BaseCost
	case command.BuildGroundUnit:
		return 50 * bc.Quantity
	case command.BuildIndustrialUnits:
		return iuStepCost(st, bc)
	default:
		return 0
	}
}

func hasShipyard(st *state.State, colonyID id.ID) bool {
	c := st.Colonies[colonyID]
	if c == nil {
		return false
	}
	for _, nid := range c.Neoriae {
		n := st.Neoriae[nid]
		if n != nil && n.Class == state.Shipyard && n.State != state.Destroyed {
			return true
		}
	}
	return false
}

// iuStepCost scales with the colony's current IU per a step table
// (spec.md section 4.2: "Infrastructure cost scales with current
// colony IU per a step table").
func iuStepCost(st *state.State, bc command.BuildCommand) int {
	c := st.Colonies[bc.Colony]
	if c == nil {
		return bc.IUAmount * 15
	}
	switch {
	case c.IndustrialUnits < 50:
		return bc.IUAmount * 10
	case c.IndustrialUnits < 150:
		return bc.IUAmount * 15
	case c.IndustrialUnits < 300:
		return bc.IUAmount * 22
	default:
		return bc.IUAmount * 30
	}
}

// transferJumps estimates the hop count between a transfer's source
// and destination colonies' systems via hex distance — a cheap stand-in
// for the actual civilian-lane path. It only affects cost; no lane
// reachability between the two colonies is checked, here or by the
// validator.
func transferJumps(st *state.State, pt command.PopulationTransferCommand) int {
	src := st.Colonies[pt.Source]
	dst := st.Colonies[pt.Destination]
	if src == nil || dst == nil {
		return 1
	}
	ssys := st.Systems[src.System]
	dsys := st.Systems[dst.System]
	if ssys == nil || dsys == nil || ssys.ID == dsys.ID {
		return 1
	}
	d := starmap.HexDistance(ssys.Hex, dsys.Hex)
	if d < 1 {
		d = 1
	}
	return d
}

// transferCost applies a flat base of 4 PP per PTU and a
// +20%/extra-jump multiplier (spec.md section 4.3 Population transfers).
// The base does not depend on the planet class of either colony.
func transferCost(jumps, ptu int) int {
	base := 4 * ptu
	mult := 1.0 + 0.2*float64(jumps-1)
	if jumps < 1 {
		mult = 1.0
	}
	return int(float64(base) * mult)
}

// terraformCost scales 60-2000 by target class (spec.md section 4.3
// Terraform start).
func terraformCost(rules config.Rules, target state.PlanetClass) int {
	return rules.TerraformBaseCost[target]
}

// espionageCost is the flat 40 PP per EBP/CIP point (spec.md section
// 4.2).
func espionageCost(rules config.Rules, points int) int {
	return rules.EspionagePointCostPP * points
}

// researchCost converts ERP + SRP + per-field TRP allocations into a
// single PP figure at 1 PP per point, the simplest cost-conversion
// consistent with spec.md section 4.2's "each cost-converted" wording
// with no further ratio specified elsewhere in the document.
func researchCost(ra command.ResearchAllocation) int {
	total := ra.ERP + ra.SRP
	for _, v := range ra.PerFieldTRP {
		total += v
	}
	return total
}
