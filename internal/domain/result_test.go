package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationResult_YearlySchedule(t *testing.T) {
	var monthly []MonthlyRecord
	for m := 1; m <= 24; m++ {
		monthly = append(monthly, MonthlyRecord{
			Month:        m,
			YearIndex:    (m - 1) / 12,
			CalendarYear: 2026 + (m-1)/12,
			Label:        "x",
			CapTriggered: m%2 == 0,
			H: PlanMonth{
				Payment:       decimal.NewFromInt(100),
				Interest:      decimal.NewFromInt(40),
				EndingBalance: decimal.NewFromInt(int64(10_000 - m*60)),
			},
			P: PlanMonth{Payment: decimal.NewFromInt(110), Interest: decimal.NewFromInt(50)},
		})
	}
	r := &SimulationResult{Monthly: monthly}

	years := r.YearlySchedule()
	require.Len(t, years, 2)
	assert.Equal(t, 2027, years[1].CalendarYear)
	assert.True(t, years[0].HPayment.Equal(decimal.NewFromInt(1200)))
	assert.True(t, years[0].HInterest.Equal(decimal.NewFromInt(480)))
	assert.True(t, years[0].PPayment.Equal(decimal.NewFromInt(1320)))
	assert.True(t, years[0].HBalance.Equal(decimal.NewFromInt(10_000-12*60)))
	assert.True(t, years[1].HBalance.Equal(decimal.NewFromInt(10_000-24*60)))
	assert.Equal(t, 6, years[0].CapMonths)
	assert.True(t, years[0].FixedPayment.IsZero())
}

func TestSimulationResult_PlanResults(t *testing.T) {
	r := &SimulationResult{
		H:     PlanResult{Plan: PlanH},
		P:     PlanResult{Plan: PlanP},
		Fixed: PlanResult{Plan: PlanFixed},
	}
	assert.Len(t, r.PlanResults(), 2)

	r.Parameters.FixedPlan.Enabled = true
	plans := r.PlanResults()
	require.Len(t, plans, 3)
	assert.Equal(t, PlanFixed, plans[2].Plan)
}
