package engine

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/roi-cli/internal/config"
	"github.com/sells-group/roi-cli/internal/model"
)

// DefaultViralConcurrency bounds RunViral when no limit is given.
const DefaultViralConcurrency = 4

// Profile is the shared location, tier and living situation both sides of
// a curated comparison are run under.
type Profile struct {
	Location   string                `json:"location"`
	SchoolTier model.SchoolTier      `json:"school_tier"`
	Living     model.LivingSituation `json:"living_cost"`
}

// ProfileFromConfig parses the viral section of the config.
func ProfileFromConfig(cfg config.ViralConfig) (Profile, error) {
	tier, err := model.ParseSchoolTier(cfg.SchoolTier)
	if err != nil {
		return Profile{}, eris.Wrap(err, "engine: viral profile")
	}
	living, err := model.ParseLivingSituation(cfg.Living)
	if err != nil {
		return Profile{}, eris.Wrap(err, "engine: viral profile")
	}
	return Profile{Location: cfg.Location, SchoolTier: tier, Living: living}, nil
}

// Inputs returns calculator inputs for path under the profile.
func (p Profile) Inputs(path string) model.CalculatorInputs {
	return model.CalculatorInputs{
		Path:       path,
		Location:   p.Location,
		SchoolTier: p.SchoolTier,
		Living:     p.Living,
	}
}

// ViralResult is one curated comparison and its outcome.
type ViralResult struct {
	ID         string                 `json:"id"`
	Title      string                 `json:"title"`
	Comparison model.ComparisonResult `json:"comparison"`
}

// RunViral compares every curated pair in the dataset under profile, at
// most concurrency at a time. Results keep dataset order.
func (e *Engine) RunViral(ctx context.Context, profile Profile, concurrency int) ([]ViralResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultViralConcurrency
	}
	pairs := e.ds.Viral()
	log := zap.L().With(zap.Int("pairs", len(pairs)), zap.Int("concurrency", concurrency))
	log.Debug("engine: running viral comparisons")

	out := make([]ViralResult, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, pair := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cmp, err := e.Compare(profile.Inputs(pair.A), profile.Inputs(pair.B))
			if err != nil {
				return eris.Wrapf(err, "engine: viral %s", pair.ID)
			}
			out[i] = ViralResult{ID: pair.ID, Title: pair.Title, Comparison: cmp}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "engine: run viral")
	}
	log.Debug("engine: viral comparisons complete")
	return out, nil
}
