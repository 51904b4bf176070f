package cost

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/registry"
)

func testCalculator(t *testing.T, opts Options) (*Calculator, *registry.Dataset) {
	t.Helper()
	ds, err := registry.LoadDefault()
	require.NoError(t, err)
	return NewCalculator(ds, opts), ds
}

func inputs(path, location string, tier model.SchoolTier, living model.LivingSituation, scholarships float64) model.CalculatorInputs {
	return model.CalculatorInputs{
		Path:         path,
		Location:     location,
		SchoolTier:   tier,
		Living:       living,
		Scholarships: scholarships,
	}
}

func TestProject_CollegeTechMidwest(t *testing.T) {
	t.Parallel()
	calc, ds := testCalculator(t, Options{})
	path, ok := ds.Path("college_tech")
	require.True(t, ok)

	p, err := calc.Project(path, inputs("college_tech", "midwest", model.TierAverage, model.LivingWithParents, 0))
	require.NoError(t, err)

	// 120,000 tuition x 1.0 + 200/mo x 48 months.
	assert.InDelta(t, 129600, p.TotalCost, 0.01)
	assert.InDelta(t, 129600, p.NetCost, 0.01)
	assert.InDelta(t, 75000*0.9, p.Salary.Year1, 0.01)
	assert.InDelta(t, 105000*0.9, p.Salary.Year5, 0.01)
	assert.InDelta(t, 140000*0.9, p.Salary.Year10, 0.01)
	assert.InDelta(t, 5625, p.MonthlySalary, 0.01)
	assert.InDelta(t, 0.9, p.Location, 1e-9)
}

func TestProject_LocationLeavesCostAloneByDefault(t *testing.T) {
	t.Parallel()
	calc, ds := testCalculator(t, Options{})
	path, _ := ds.Path("college_tech")

	mid, err := calc.Project(path, inputs("college_tech", "midwest", model.TierAverage, model.LivingDorm, 0))
	require.NoError(t, err)
	ca, err := calc.Project(path, inputs("college_tech", "california", model.TierAverage, model.LivingDorm, 0))
	require.NoError(t, err)

	assert.InDelta(t, mid.TotalCost, ca.TotalCost, 0.01)
	assert.Greater(t, ca.Salary.Year1, mid.Salary.Year1)
}

func TestProject_LocationAdjustsCost(t *testing.T) {
	t.Parallel()
	calc, ds := testCalculator(t, Options{LocationAdjustsCost: true})
	path, _ := ds.Path("college_tech")

	p, err := calc.Project(path, inputs("college_tech", "midwest", model.TierAverage, model.LivingWithParents, 0))
	require.NoError(t, err)
	assert.InDelta(t, 120000*0.9+200*48, p.TotalCost, 0.01)
}

func TestProject_UnknownLocationDefaultsToOne(t *testing.T) {
	t.Parallel()
	calc, ds := testCalculator(t, Options{})
	path, _ := ds.Path("trade_electrician")

	p, err := calc.Project(path, inputs("trade_electrician", "atlantis", model.TierAverage, model.LivingWithParents, 0))
	require.NoError(t, err)
	assert.InDelta(t, 52000, p.Salary.Year1, 0.01)
}

func TestProject_PremiumCostsMoreThanAverage(t *testing.T) {
	t.Parallel()
	calc, ds := testCalculator(t, Options{})

	for _, path := range ds.Paths() {
		avg, err := calc.Project(path, inputs(path.Key, "national", model.TierAverage, model.LivingRoommates, 0))
		require.NoError(t, err)
		prem, err := calc.Project(path, inputs(path.Key, "national", model.TierPremium, model.LivingRoommates, 0))
		require.NoError(t, err)
		assert.Greater(t, prem.TotalCost, avg.TotalCost, path.Key)
	}
}

func TestProject_MissingAdjustment(t *testing.T) {
	t.Parallel()
	calc, ds := testCalculator(t, Options{})
	path, _ := ds.Path("college_tech")

	_, err := calc.Project(path, inputs("college_tech", "midwest", "ivy", model.LivingDorm, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "school tier")

	_, err = calc.Project(path, inputs("college_tech", "midwest", model.TierAverage, "castle", 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "living situation")
}

func TestNetCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		total        float64
		scholarships float64
		want         float64
	}{
		{"no scholarship", 50000, 0, 50000},
		{"partial", 50000, 20000, 30000},
		{"exact", 50000, 50000, 0},
		{"scholarship exceeds cost", 38000, 200000, 0},
		{"nan scholarship ignored", 50000, math.NaN(), 50000},
		{"infinite scholarship", 50000, math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NetCost(tt.total, tt.scholarships)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestTotalCost(t *testing.T) {
	t.Parallel()
	path := model.EducationPath{TotalCost: 10000, DurationMonths: 12}
	tier := model.TierAdjustment{CostMultiplier: 1.8, SalaryBonus: 1.1}
	living := model.LivingCost{Monthly: 900}

	assert.InDelta(t, 10000*1.8+900*12, TotalCost(path, tier, living, 1), 1e-9)
	assert.InDelta(t, 10000*1.8*1.2+900*12, TotalCost(path, tier, living, 1.2), 1e-9)
}

func TestAdjustedSalary(t *testing.T) {
	t.Parallel()
	s := AdjustedSalary(model.SalaryCurve{Year1: 40000, Year5: 50000, Year10: 60000}, 1.2, 1.25)
	assert.InDelta(t, 60000, s.Year1, 1e-6)
	assert.InDelta(t, 75000, s.Year5, 1e-6)
	assert.InDelta(t, 90000, s.Year10, 1e-6)
	assert.InDelta(t, 5000, MonthlySalary(s), 1e-6)
}
