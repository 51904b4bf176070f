package report

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/roi-cli/internal/model"
)

// Currency formats whole dollars with thousands separators, e.g. "$129,600".
func Currency(v float64) string {
	if v < 0 {
		return "-" + Currency(-v)
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("$%d", int64(math.Round(v)))
}

// Short formats a dollar amount in compact form, e.g. "$1.2M", "$130K".
func Short(v float64) string {
	if v < 0 {
		return "-" + Short(-v)
	}
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// Months renders a breakeven for display.
func Months(b model.Breakeven) string {
	if !b.Reached {
		return "never"
	}
	if b.Months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", b.Months)
}

// Percent renders a 0..1 rate as a whole percentage.
func Percent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}
