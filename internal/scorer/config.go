// Package scorer implements the rule-based doubt score and the banded
// composite verdict shown to users.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/roi-cli/internal/config"
)

// DefaultAutomationWeight is the share of the composite score taken by a
// path's automation-risk score.
const DefaultAutomationWeight = 0.5

// DefaultBands returns the verdict band table, highest threshold first.
func DefaultBands() []config.BandConfig {
	return []config.BandConfig{
		{Min: 70, Band: "scammed", Label: "being scammed"},
		{Min: 50, Band: "questionable", Label: "questionable"},
		{Min: 30, Band: "caution", Label: "caution"},
		{Min: 0, Band: "smart", Label: "smart choice"},
	}
}

// DefaultScorerConfig returns a config.ScorerConfig with the default weight
// and band table.
func DefaultScorerConfig() config.ScorerConfig {
	return config.ScorerConfig{
		AutomationWeight: DefaultAutomationWeight,
		Bands:            DefaultBands(),
	}
}

// withDefaults fills an empty band table.
func withDefaults(c config.ScorerConfig) config.ScorerConfig {
	if len(c.Bands) == 0 {
		c.Bands = DefaultBands()
	}
	return c
}

// ValidateConfig checks that a ScorerConfig is internally consistent.
func ValidateConfig(c config.ScorerConfig) error {
	var errs []string

	if c.AutomationWeight < 0 || c.AutomationWeight > 1 {
		errs = append(errs, fmt.Sprintf("automation_weight must be between 0 and 1, got %.2f", c.AutomationWeight))
	}

	if len(c.Bands) == 0 {
		errs = append(errs, "bands must not be empty")
	}
	seen := make(map[string]bool, len(c.Bands))
	for i, b := range c.Bands {
		if b.Band == "" {
			errs = append(errs, fmt.Sprintf("bands[%d].band is required", i))
		} else if seen[b.Band] {
			errs = append(errs, fmt.Sprintf("bands[%d].band %q is duplicated", i, b.Band))
		}
		seen[b.Band] = true

		if b.Min < 0 || b.Min > MaxScore {
			errs = append(errs, fmt.Sprintf("bands[%d].min must be between 0 and %d", i, MaxScore))
		}
		if i > 0 && b.Min >= c.Bands[i-1].Min {
			errs = append(errs, fmt.Sprintf("bands[%d].min must be below bands[%d].min", i, i-1))
		}
	}
	if n := len(c.Bands); n > 0 && c.Bands[n-1].Min != 0 {
		errs = append(errs, "last band must start at 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
