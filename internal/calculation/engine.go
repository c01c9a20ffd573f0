package calculation

import (
	"fmt"

	"github.com/fungccc/HKMortgage2026/internal/domain"
	mdec "github.com/fungccc/HKMortgage2026/pkg/decimal"
	"github.com/shopspring/decimal"
)

// residualTolerance is how far from zero a plan may finish.
var residualTolerance = decimal.NewFromFloat(0.01)

// MortgageSimulator orchestrates one simulation: the lockstep monthly loop
// over the three plans and the refinance harvester, then the stress test,
// affordability and rent-vs-buy post-processing.
type MortgageSimulator struct {
	Tables        domain.MarketTables
	Affordability *AffordabilityCalculator
	Logger        Logger
}

// NewMortgageSimulator creates a simulator on the built-in tables
func NewMortgageSimulator() *MortgageSimulator {
	sim, err := NewMortgageSimulatorWithTables(nil)
	if err != nil {
		// the built-in tables are known good
		panic(err)
	}
	return sim
}

// NewMortgageSimulatorWithTables creates a simulator with user table
// overrides layered on the defaults.
func NewMortgageSimulatorWithTables(override *domain.MarketTables) (*MortgageSimulator, error) {
	tables := ResolveTables(override)
	if len(tables.MarketCycle) == 0 {
		return nil, fmt.Errorf("market cycle table is empty")
	}
	duty, err := NewStampDutyTable(tables.StampDuty)
	if err != nil {
		return nil, fmt.Errorf("invalid stamp duty table: %w", err)
	}
	afford, err := NewAffordabilityCalculator(duty, *tables.Fees)
	if err != nil {
		return nil, fmt.Errorf("invalid fee schedule: %w", err)
	}
	return &MortgageSimulator{
		Tables:        tables,
		Affordability: afford,
		Logger:        NopLogger{},
	}, nil
}

// SetLogger sets the logger for the simulator. If nil is provided, a no-op logger is used.
func (ms *MortgageSimulator) SetLogger(l Logger) {
	if l == nil {
		ms.Logger = NopLogger{}
		return
	}
	ms.Logger = l
}

// Simulate runs the full simulation. It is a pure function of params and
// the simulator's tables.
func (ms *MortgageSimulator) Simulate(params domain.SimulationParameters) (*domain.SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.StartYear == 0 {
		params.StartYear = DefaultStartYear
	}
	if params.RateMode == "" {
		params.RateMode = domain.RateModeHistorical
	}

	rates, err := NewRateEnvironment(&params, ms.Tables.MarketCycle)
	if err != nil {
		return nil, err
	}
	fees := *ms.Tables.Fees
	loan := params.LoanAmount()
	totalMonths := params.TotalMonths()

	ms.Logger.Debugf("simulating loan=%s tenure=%dm mode=%s", loan.StringFixed(0), totalMonths, params.RateMode)

	link := MortgageLink{CapRatio: fees.MortgageLinkCapRatio}
	if params.MortgageLink.Enabled {
		link.Deposit = params.MortgageLink.DepositAmount
	}
	h := NewPlanAmortizer(domain.PlanH, loan, link)
	p := NewPlanAmortizer(domain.PlanP, loan, link)
	fixed := NewPlanAmortizer(domain.PlanFixed, loan, MortgageLink{})
	refi := NewRefinanceHarvester(params.Refinance.Enabled, params.Refinance.RebatePercent, fees.RefinanceLegalFee)

	extraMonth := params.PartialRepaymentMonth()
	monthly := make([]domain.MonthlyRecord, 0, totalMonths)
	capMonths := 0

	for month := 1; month <= totalMonths; month++ {
		yearIndex := (month - 1) / 12
		market := rates.Resolve(yearIndex)
		remaining := totalMonths - month + 1

		extra := decimal.Zero
		if month == extraMonth {
			extra = params.PartialRepayment.Amount
		}

		pRate := mdec.ClampZero(market.Prime.Sub(params.PDiscount))
		capRate := mdec.ClampZero(market.Prime.Sub(params.HCapDiscount))
		hFormula := market.Hibor.Add(params.HSpread)
		capTriggered := hFormula.GreaterThanOrEqual(capRate)
		hRate := mdec.Min(hFormula, capRate)

		fRate := pRate
		if params.FixedPlan.Enabled && yearIndex < params.FixedPlan.LockYears {
			fRate = params.FixedPlan.Rate
		}

		record := domain.MonthlyRecord{
			Month:          month,
			YearIndex:      yearIndex,
			CalendarYear:   params.StartYear + yearIndex,
			Prime:          market.Prime,
			Hibor:          market.Hibor,
			Label:          market.Label,
			H:              h.Step(month, hRate, remaining, extra),
			P:              p.Step(month, pRate, remaining, extra),
			CapTriggered:   capTriggered,
			ExtraRepayment: extra,
		}
		if params.FixedPlan.Enabled {
			record.Fixed = fixed.Step(month, fRate, remaining, extra)
		} else {
			record.Fixed = domain.PlanMonth{EffectiveRate: fRate}
		}
		if capTriggered {
			capMonths++
		}

		if ev, ok := refi.Observe(month, totalMonths, record.H.EndingBalance); ok {
			ms.Logger.Debugf("refinance at month %d: rebate=%s net=%s", ev.Month, ev.RebateAmount.StringFixed(0), ev.NetGain.StringFixed(0))
		}
		monthly = append(monthly, record)
	}

	active := []*PlanAmortizer{h, p}
	if params.FixedPlan.Enabled {
		active = append(active, fixed)
	}
	for _, pa := range active {
		if !mdec.AlmostEqual(pa.Balance(), decimal.Zero, residualTolerance) {
			ms.Logger.Warnf("plan %s left a residual balance of %s", pa.plan, pa.Balance().StringFixed(2))
		}
	}

	cashRebate := loan.Mul(mdec.FromPercent(fees.CashRebatePercent))
	result := &domain.SimulationResult{
		Parameters:   params,
		LoanAmount:   loan,
		TotalMonths:  totalMonths,
		Monthly:      monthly,
		H:            h.Result(cashRebate),
		P:            p.Result(cashRebate),
		CashRebate:   cashRebate,
		CapMonths:    capMonths,
		Refinance:    refi.Summary(),
		FixedSavings: decimal.Zero,
	}
	if params.FixedPlan.Enabled {
		result.Fixed = fixed.Result(cashRebate)
		result.FixedSavings = result.H.TotalPayment.Sub(result.Fixed.TotalPayment)
	} else {
		result.Fixed = domain.PlanResult{Plan: domain.PlanFixed}
	}
	result.Savings = result.P.TotalPayment.Sub(result.H.TotalPayment)
	result.CheapestPlan = cheapestPlan(result)

	// Month-1 P rate drives both the bank's approval test and the stress baseline.
	approvalRate := monthly[0].P.EffectiveRate
	result.Affordability = ms.Affordability.Calculate(params.PropertyPrice, params.DownPayment, loan, totalMonths, approvalRate)

	baseline := mdec.AnnuityPayment(loan, mdec.MonthlyRate(approvalRate), totalMonths)
	result.StressTest = StressTest(loan, totalMonths, params.PDiscount, ms.Tables.MarketCycle, baseline)

	if params.RentVsBuy.Enabled {
		result.RentVsBuy = CompareRentVsBuy(monthly, RentVsBuyInputs{
			PropertyPrice:    params.PropertyPrice,
			LoanAmount:       loan,
			TotalUpfrontCash: result.Affordability.TotalUpfrontCash,
			TransactionCosts: result.Affordability.TransactionCosts,
			Options:          params.RentVsBuy,
		})
	}

	ms.Logger.Infof("simulation complete: H=%s P=%s cheapest=%s refinance_events=%d",
		result.H.TotalPayment.StringFixed(0), result.P.TotalPayment.StringFixed(0), result.CheapestPlan, len(result.Refinance.Events))
	return result, nil
}

// cheapestPlan picks the lowest net total cost among the active plans.
// Ties go to the earlier plan in H, P, Fixed order.
func cheapestPlan(r *domain.SimulationResult) domain.Plan {
	best := r.H
	for _, pr := range r.PlanResults()[1:] {
		if pr.NetTotalCost.LessThan(best.NetTotalCost) {
			best = pr
		}
	}
	return best.Plan
}
