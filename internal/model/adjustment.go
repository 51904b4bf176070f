package model

import "github.com/rotisserie/eris"

// SchoolTier selects the cost and salary adjustment for a school's prestige.
type SchoolTier string

const (
	TierBudget  SchoolTier = "budget"
	TierAverage SchoolTier = "average"
	TierPremium SchoolTier = "premium"
	TierElite   SchoolTier = "elite"
)

// SchoolTiers lists every school tier from cheapest to most expensive.
var SchoolTiers = []SchoolTier{TierBudget, TierAverage, TierPremium, TierElite}

// ParseSchoolTier returns the SchoolTier for s.
func ParseSchoolTier(s string) (SchoolTier, error) {
	for _, t := range SchoolTiers {
		if string(t) == s {
			return t, nil
		}
	}
	return "", eris.Errorf("model: unknown school tier %q", s)
}

// TierAdjustment holds the multipliers attached to a school tier.
type TierAdjustment struct {
	Name           string  `json:"name" yaml:"name"`
	CostMultiplier float64 `json:"costMultiplier" yaml:"costMultiplier"`
	SalaryBonus    float64 `json:"salaryBonus" yaml:"salaryBonus"`
}

// LivingSituation selects the monthly living cost while studying.
type LivingSituation string

const (
	LivingWithParents LivingSituation = "withparents"
	LivingRoommates   LivingSituation = "roommates"
	LivingDorm        LivingSituation = "dorm"
	LivingSolo        LivingSituation = "solo"
)

// LivingSituations lists every living situation from cheapest to most expensive.
var LivingSituations = []LivingSituation{LivingWithParents, LivingRoommates, LivingDorm, LivingSolo}

// ParseLivingSituation returns the LivingSituation for s.
func ParseLivingSituation(s string) (LivingSituation, error) {
	for _, l := range LivingSituations {
		if string(l) == s {
			return l, nil
		}
	}
	return "", eris.Errorf("model: unknown living situation %q", s)
}

// LivingCost is the monthly cost of a living situation.
type LivingCost struct {
	Name    string  `json:"name" yaml:"name"`
	Monthly float64 `json:"monthly" yaml:"monthly"`
}

// DefaultLocationMultiplier applies to locations absent from reference data.
const DefaultLocationMultiplier = 1.0
