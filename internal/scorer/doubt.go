package scorer

import "github.com/sells-group/roi-cli/internal/model"

// MaxScore caps every score produced by this package.
const MaxScore = 100

// Signals are the inputs the doubt rules look at.
type Signals struct {
	EmploymentRate float64
	Breakeven      model.Breakeven
	AdjustedCost   float64
}

// Rule is one threshold condition of the doubt score.
type Rule struct {
	Name   string
	Points int
	Match  func(Signals) bool
}

// Rules is the doubt rule table. Rules are independent; a path that trips
// a stricter threshold also trips the looser one.
var Rules = []Rule{
	{Name: "employment_below_70", Points: 30, Match: func(s Signals) bool { return s.EmploymentRate < 0.7 }},
	{Name: "employment_below_50", Points: 20, Match: func(s Signals) bool { return s.EmploymentRate < 0.5 }},
	{Name: "breakeven_over_60", Points: 20, Match: func(s Signals) bool { return s.Breakeven.Beyond(60) }},
	{Name: "breakeven_over_120", Points: 15, Match: func(s Signals) bool { return s.Breakeven.Beyond(120) }},
	{Name: "cost_over_100k", Points: 15, Match: func(s Signals) bool { return s.AdjustedCost > 100_000 }},
}

// Doubt sums the points of every matching rule, capped at MaxScore.
func Doubt(s Signals) int {
	score, _ := DoubtDetail(s)
	return score
}

// DoubtDetail returns the doubt score and the names of the rules that fired.
func DoubtDetail(s Signals) (int, []string) {
	var score int
	var fired []string
	for _, r := range Rules {
		if r.Match(s) {
			score += r.Points
			fired = append(fired, r.Name)
		}
	}
	return clamp(score), fired
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > MaxScore:
		return MaxScore
	default:
		return v
	}
}
