// Package estimate derives the monthly net gain, breakeven horizon and
// ten-year net worth of a cost projection.
package estimate

import (
	"math"

	"go.uber.org/zap"

	"github.com/sells-group/roi-cli/internal/cost"
	"github.com/sells-group/roi-cli/internal/model"
)

// DefaultBaselineAnnualWage is the opportunity-cost wage assumed for someone
// who starts working immediately instead of studying.
const DefaultBaselineAnnualWage = 30_000

// Outcome is the breakeven and net-worth estimate for a projection.
type Outcome struct {
	MonthlyNetGain  float64         `json:"monthly_net_gain"`
	Breakeven       model.Breakeven `json:"-"`
	TenYearNetWorth float64         `json:"ten_year_net_worth"`
}

// Estimator turns projections into outcomes against a baseline wage.
type Estimator struct {
	baselineAnnual float64
}

// NewEstimator creates an Estimator. A non-positive baseline falls back to
// DefaultBaselineAnnualWage.
func NewEstimator(baselineAnnual float64) *Estimator {
	if baselineAnnual <= 0 {
		baselineAnnual = DefaultBaselineAnnualWage
	}
	return &Estimator{baselineAnnual: baselineAnnual}
}

// BaselineAnnual returns the opportunity-cost wage in use.
func (e *Estimator) BaselineAnnual() float64 {
	return e.baselineAnnual
}

// Estimate computes the outcome for p.
func (e *Estimator) Estimate(p cost.Projection) Outcome {
	gain := MonthlyNetGain(p.MonthlySalary, e.baselineAnnual)
	out := Outcome{
		MonthlyNetGain:  gain,
		Breakeven:       Breakeven(p.NetCost, gain),
		TenYearNetWorth: TenYearNetWorth(p.Salary, p.NetCost),
	}

	zap.L().Debug("estimate: outcome computed",
		zap.Float64("net_cost", p.NetCost),
		zap.Float64("monthly_net_gain", gain),
		zap.Bool("breaks_even", out.Breakeven.Reached),
		zap.Int("breakeven_months", out.Breakeven.Months),
		zap.Float64("ten_year_net_worth", out.TenYearNetWorth),
	)
	return out
}

// MonthlyNetGain is the monthly salary minus the monthly baseline wage.
func MonthlyNetGain(monthlySalary, baselineAnnual float64) float64 {
	return monthlySalary - baselineAnnual/12
}

// Breakeven returns the number of whole months of net gain needed to cover
// netCost. A non-positive gain never breaks even; a zero net cost breaks
// even immediately. Non-finite inputs, or a month count too large for an
// int32, never break even.
func Breakeven(netCost, monthlyNetGain float64) model.Breakeven {
	if math.IsNaN(monthlyNetGain) || monthlyNetGain <= 0 {
		return model.Never()
	}
	if netCost <= 0 {
		return model.InMonths(0)
	}
	months := math.Ceil(netCost / monthlyNetGain)
	if math.IsNaN(months) || months > math.MaxInt32 {
		return model.Never()
	}
	return model.InMonths(int(months))
}

// TenYearNetWorth approximates earnings as a salary staircase: four years
// at the year-1 rate, five at year-5 and one at year-10, less net cost.
func TenYearNetWorth(s model.SalaryCurve, netCost float64) float64 {
	return 4*s.Year1 + 5*s.Year5 + s.Year10 - netCost
}
