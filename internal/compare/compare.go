// Package compare decides the head-to-head outcome of two calculations.
package compare

import (
	"math"

	"github.com/sells-group/roi-cli/internal/model"
)

// TieWinner wins when both sides break even in the same month.
const TieWinner = model.WinnerB

// Results compares two calculation results. When either side is nil no
// winner is declared and both differences are zero.
func Results(a, b *model.CalculationResult) model.ComparisonResult {
	out := model.ComparisonResult{A: a, B: b, Winner: model.WinnerNone}
	if a == nil || b == nil {
		return out
	}

	switch Sooner(a.Breakeven, b.Breakeven) {
	case -1:
		out.Winner = model.WinnerA
	case 1:
		out.Winner = model.WinnerB
	default:
		out.Winner = TieWinner
	}

	if a.Breakeven.Reached && b.Breakeven.Reached {
		out.BothBreakEven = true
		out.BreakevenDiff = abs(a.Breakeven.Months - b.Breakeven.Months)
	}
	out.NetWorthDiff = math.Abs(a.TenYearNetWorth - b.TenYearNetWorth)
	return out
}

// Sooner orders two breakevens: -1 when a is reached first, 1 when b is,
// 0 when they are equal. A reached breakeven always precedes one that is
// never reached, however many months it takes.
func Sooner(a, b model.Breakeven) int {
	switch {
	case a.Reached && !b.Reached:
		return -1
	case !a.Reached && b.Reached:
		return 1
	case !a.Reached && !b.Reached:
		return 0
	case a.Months < b.Months:
		return -1
	case b.Months < a.Months:
		return 1
	default:
		return 0
	}
}

// Swap returns r with its sides exchanged. Ties keep TieWinner.
func Swap(r model.ComparisonResult) model.ComparisonResult {
	return Results(r.B, r.A)
}

// WinnerResult returns the winning side's result, or nil.
func WinnerResult(r model.ComparisonResult) *model.CalculationResult {
	switch r.Winner {
	case model.WinnerA:
		return r.A
	case model.WinnerB:
		return r.B
	default:
		return nil
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
