package scorer

import (
	"math"

	"go.uber.org/zap"

	"github.com/sells-group/roi-cli/internal/config"
	"github.com/sells-group/roi-cli/internal/model"
)

// Scorer produces composite verdicts from doubt and automation-risk scores.
type Scorer struct {
	cfg config.ScorerConfig
}

// New creates a Scorer. An empty band table selects DefaultBands.
func New(cfg config.ScorerConfig) (*Scorer, error) {
	cfg = withDefaults(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

// Composite blends doubt with automation risk. Without an automation score
// the composite is the doubt score.
func (s *Scorer) Composite(doubt int, automation *int) int {
	if automation == nil {
		return clamp(doubt)
	}
	w := s.cfg.AutomationWeight
	blended := (1-w)*float64(doubt) + w*float64(*automation)
	return clamp(int(math.Round(blended)))
}

// Band returns the first band whose threshold score meets.
func (s *Scorer) Band(score int) config.BandConfig {
	for _, b := range s.cfg.Bands {
		if score >= b.Min {
			return b
		}
	}
	// ValidateConfig guarantees a terminal band at 0.
	return s.cfg.Bands[len(s.cfg.Bands)-1]
}

// Verdict scores a path's signals and returns the doubt score with the
// banded composite verdict.
func (s *Scorer) Verdict(sig Signals, automation *int) (int, model.Verdict) {
	doubt, fired := DoubtDetail(sig)
	score := s.Composite(doubt, automation)
	b := s.Band(score)

	zap.L().Debug("scorer: verdict",
		zap.Int("doubt", doubt),
		zap.Strings("rules", fired),
		zap.Int("composite", score),
		zap.String("band", b.Band),
	)

	return doubt, model.Verdict{Score: score, Band: b.Band, Label: b.Label}
}

// Bands returns a copy of the band table in use.
func (s *Scorer) Bands() []config.BandConfig {
	return append([]config.BandConfig(nil), s.cfg.Bands...)
}
