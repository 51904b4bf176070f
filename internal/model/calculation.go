package model

import "encoding/json"

// MaxScholarship is the largest scholarship amount accepted by input policy.
const MaxScholarship = 100_000

// CalculatorInputs describes a single ROI calculation request. Triple is
// only used to derive Path when Path is empty.
type CalculatorInputs struct {
	Path         string          `json:"path" yaml:"path"`
	Triple       *Triple         `json:"triple,omitempty" yaml:"triple,omitempty"`
	Location     string          `json:"location" yaml:"location"`
	SchoolTier   SchoolTier      `json:"school_tier" yaml:"school_tier"`
	Living       LivingSituation `json:"living_cost" yaml:"living_cost"`
	Scholarships float64         `json:"scholarships" yaml:"scholarships"`
}

// NeverBreakevenMonths is the legacy serialized value for a breakeven that
// is never reached.
const NeverBreakevenMonths = 999

// Breakeven is the month count at which cumulative net gain covers the
// adjusted cost. Reached is false when the path never pays for itself.
type Breakeven struct {
	Months  int
	Reached bool
}

// Never returns a Breakeven that is never reached.
func Never() Breakeven {
	return Breakeven{}
}

// InMonths returns a reached Breakeven after m months.
func InMonths(m int) Breakeven {
	return Breakeven{Months: m, Reached: true}
}

// LegacyMonths returns Months, or NeverBreakevenMonths when not reached.
func (b Breakeven) LegacyMonths() int {
	if !b.Reached {
		return NeverBreakevenMonths
	}
	return b.Months
}

// Beyond reports whether the breakeven lies strictly after horizon months.
// An unreached breakeven lies beyond every horizon.
func (b Breakeven) Beyond(horizon int) bool {
	return !b.Reached || b.Months > horizon
}

// Verdict is the user-facing composite score and its band.
type Verdict struct {
	Score int    `json:"score"`
	Band  string `json:"band"`
	Label string `json:"label"`
}

// CalculationResult is the derived outcome of a calculation. A fresh value
// is produced for every call.
type CalculationResult struct {
	PathKey         string
	PathName        string
	TotalCost       float64
	AdjustedCost    float64
	Salary          SalaryCurve
	MonthlySalary   float64
	MonthlyNetGain  float64
	Breakeven       Breakeven
	TenYearNetWorth float64
	EmploymentRate  float64
	Risk            string
	DoubtScore      int
	AutomationRisk  *int
	Verdict         Verdict
}

type calculationResultJSON struct {
	PathKey         string      `json:"path"`
	PathName        string      `json:"path_name"`
	TotalCost       float64     `json:"total_cost"`
	AdjustedCost    float64     `json:"adjusted_cost"`
	Salary          SalaryCurve `json:"salary"`
	MonthlySalary   float64     `json:"monthly_salary"`
	MonthlyNetGain  float64     `json:"monthly_net_gain"`
	BreakevenMonths int         `json:"breakeven_months"`
	BreaksEven      bool        `json:"breaks_even"`
	TenYearNetWorth float64     `json:"ten_year_net_worth"`
	EmploymentRate  float64     `json:"employment_rate"`
	Risk            string      `json:"risk"`
	DoubtScore      int         `json:"doubt_score"`
	AutomationRisk  *int        `json:"automation_risk,omitempty"`
	Verdict         Verdict     `json:"verdict"`
}

// MarshalJSON writes the breakeven as the legacy month count plus an
// explicit breaks_even flag.
func (r CalculationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(calculationResultJSON{
		PathKey:         r.PathKey,
		PathName:        r.PathName,
		TotalCost:       r.TotalCost,
		AdjustedCost:    r.AdjustedCost,
		Salary:          r.Salary,
		MonthlySalary:   r.MonthlySalary,
		MonthlyNetGain:  r.MonthlyNetGain,
		BreakevenMonths: r.Breakeven.LegacyMonths(),
		BreaksEven:      r.Breakeven.Reached,
		TenYearNetWorth: r.TenYearNetWorth,
		EmploymentRate:  r.EmploymentRate,
		Risk:            r.Risk,
		DoubtScore:      r.DoubtScore,
		AutomationRisk:  r.AutomationRisk,
		Verdict:         r.Verdict,
	})
}

// UnmarshalJSON reverses MarshalJSON.
func (r *CalculationResult) UnmarshalJSON(data []byte) error {
	var raw calculationResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	be := Never()
	if raw.BreaksEven {
		be = InMonths(raw.BreakevenMonths)
	}
	*r = CalculationResult{
		PathKey:         raw.PathKey,
		PathName:        raw.PathName,
		TotalCost:       raw.TotalCost,
		AdjustedCost:    raw.AdjustedCost,
		Salary:          raw.Salary,
		MonthlySalary:   raw.MonthlySalary,
		MonthlyNetGain:  raw.MonthlyNetGain,
		Breakeven:       be,
		TenYearNetWorth: raw.TenYearNetWorth,
		EmploymentRate:  raw.EmploymentRate,
		Risk:            raw.Risk,
		DoubtScore:      raw.DoubtScore,
		AutomationRisk:  raw.AutomationRisk,
		Verdict:         raw.Verdict,
	}
	return nil
}

// Winner identifies which side of a comparison came out ahead.
type Winner string

const (
	WinnerNone Winner = "none"
	WinnerA    Winner = "a"
	WinnerB    Winner = "b"
)

// ComparisonResult holds two calculations and their head-to-head outcome.
// A or B is nil when that side's inputs did not resolve to a path.
// BreakevenDiff is only meaningful when BothBreakEven is set; otherwise it
// is zero.
type ComparisonResult struct {
	A             *CalculationResult `json:"a"`
	B             *CalculationResult `json:"b"`
	Winner        Winner             `json:"winner"`
	BreakevenDiff int                `json:"breakeven_diff_months"`
	BothBreakEven bool               `json:"both_break_even"`
	NetWorthDiff  float64            `json:"net_worth_diff"`
}
