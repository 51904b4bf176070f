// Package cost projects the cost of an education path and the salary it
// leads to, after school tier, living situation, location and scholarship
// adjustments.
package cost

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/registry"
)

// Options tunes the projection.
type Options struct {
	// LocationAdjustsCost also applies the location scalar to the tuition
	// term. Off by default: location only moves salary.
	LocationAdjustsCost bool `yaml:"location_adjusts_cost" mapstructure:"location_adjusts_cost"`
}

// Projection is the cost and salary outcome for one path and input set.
type Projection struct {
	TotalCost     float64           `json:"total_cost"`
	NetCost       float64           `json:"net_cost"`
	Salary        model.SalaryCurve `json:"salary"`
	MonthlySalary float64           `json:"monthly_salary"`
	Location      float64           `json:"location_multiplier"`
}

// Calculator projects costs and salaries using a Dataset's adjustment
// tables.
type Calculator struct {
	ds   *registry.Dataset
	opts Options
}

// NewCalculator creates a Calculator over ds.
func NewCalculator(ds *registry.Dataset, opts Options) *Calculator {
	return &Calculator{ds: ds, opts: opts}
}

// Project computes the projection for path under in. It fails only when the
// tier or living situation has no adjustment data, which Dataset
// construction rules out for every parsed enum value.
func (c *Calculator) Project(path model.EducationPath, in model.CalculatorInputs) (Projection, error) {
	tier, ok := c.ds.Tier(in.SchoolTier)
	if !ok {
		return Projection{}, eris.Errorf("cost: no adjustment for school tier %q", in.SchoolTier)
	}
	living, ok := c.ds.Living(in.Living)
	if !ok {
		return Projection{}, eris.Errorf("cost: no monthly cost for living situation %q", in.Living)
	}
	loc := c.ds.LocationMultiplier(in.Location)

	costLoc := 1.0
	if c.opts.LocationAdjustsCost {
		costLoc = loc
	}

	total := TotalCost(path, tier, living, costLoc)
	salary := AdjustedSalary(path.Salary, loc, tier.SalaryBonus)
	return Projection{
		TotalCost:     total,
		NetCost:       NetCost(total, in.Scholarships),
		Salary:        salary,
		MonthlySalary: MonthlySalary(salary),
		Location:      loc,
	}, nil
}

// TotalCost is tuition scaled by the tier and location multipliers plus
// living costs over the program's duration.
func TotalCost(path model.EducationPath, tier model.TierAdjustment, living model.LivingCost, location float64) float64 {
	return path.TotalCost*tier.CostMultiplier*location + living.Monthly*float64(path.DurationMonths)
}

// NetCost subtracts scholarships from total, floored at zero. A NaN
// scholarship amount is ignored.
func NetCost(total, scholarships float64) float64 {
	if math.IsNaN(scholarships) {
		scholarships = 0
	}
	return math.Max(0, total-scholarships)
}

// AdjustedSalary scales every salary anchor by the location and tier bonus.
func AdjustedSalary(s model.SalaryCurve, location, tierBonus float64) model.SalaryCurve {
	return s.Scale(location * tierBonus)
}

// MonthlySalary is the adjusted first-year salary spread over twelve months.
func MonthlySalary(s model.SalaryCurve) float64 {
	return s.Year1 / 12
}
