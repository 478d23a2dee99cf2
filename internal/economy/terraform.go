package economy

import (
	"github.com/greenm01/ec4x/internal/event"
	"github.com/greenm01/ec4x/internal/state"
)

// AdvanceTerraform applies this turn's paid terraform installment and,
// once PaidCost reaches TotalCost, raises col's system one PlanetClass
// step and clears the project (spec.md section 4.3 Maintenance phase
// "terraform progression"). payment has already been deducted from the
// house's treasury by the budget gate.
func AdvanceTerraform(st *state.State, col *state.Colony, payment int, turn int) []event.Event {
	if col.Terraform == nil {
		return nil
	}
	var events []event.Event

	col.Terraform.PaidCost += payment
	if col.Terraform.PaidCost < col.Terraform.TotalCost {
		return events
	}

	sys := st.Systems[col.System]
	if sys != nil && sys.PlanetClass != col.Terraform.TargetClass {
		sys.PlanetClass = col.Terraform.TargetClass
	}
	events = append(events, event.New(event.PrestigeGain, turn).WithHouse(col.Owner).
		With("reason", "terraform complete").With("amount", 3))
	col.Terraform = nil
	return events
}
