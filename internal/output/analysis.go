package output

import (
	"sort"

	"github.com/fungccc/HKMortgage2026/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection of the cheapest plan.
type Recommendation struct {
	Plan          domain.Plan
	NetTotalCost  decimal.Decimal
	RunnerUp      domain.Plan
	Margin        decimal.Decimal // runner-up net cost minus the winner's
	MarginPercent decimal.Decimal
}

// PlanLabel is the display name of a plan.
func PlanLabel(p domain.Plan) string {
	switch p {
	case domain.PlanH:
		return "H-Plan (HIBOR)"
	case domain.PlanP:
		return "P-Plan (Prime)"
	case domain.PlanFixed:
		return "Fixed-Rate Plan"
	default:
		return string(p)
	}
}

// AnalyzePlans ranks the enabled plans by net total cost. Ties keep display
// order, which matches the engine's CheapestPlan.
func AnalyzePlans(result *domain.SimulationResult) Recommendation {
	plans := result.PlanResults()
	if len(plans) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(plans, func(i, j int) bool { return plans[i].NetTotalCost.LessThan(plans[j].NetTotalCost) })

	best := plans[0]
	rec := Recommendation{Plan: best.Plan, NetTotalCost: best.NetTotalCost}
	if len(plans) > 1 {
		rec.RunnerUp = plans[1].Plan
		rec.Margin = plans[1].NetTotalCost.Sub(best.NetTotalCost)
		if !plans[1].NetTotalCost.IsZero() {
			rec.MarginPercent = rec.Margin.Div(plans[1].NetTotalCost).Mul(decimalHundred)
		}
	}
	return rec
}
