// Package engine runs the ROI pipeline: taxonomy resolution, cost and
// salary projection, breakeven and net worth, and the doubt verdict.
package engine

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/roi-cli/internal/compare"
	"github.com/sells-group/roi-cli/internal/config"
	"github.com/sells-group/roi-cli/internal/cost"
	"github.com/sells-group/roi-cli/internal/estimate"
	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/registry"
	"github.com/sells-group/roi-cli/internal/scorer"
	"github.com/sells-group/roi-cli/internal/taxonomy"
)

// Options configures an Engine.
type Options struct {
	BaselineAnnualWage  float64
	LocationAdjustsCost bool
	Scorer              config.ScorerConfig
}

// OptionsFromConfig maps application config onto engine options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaselineAnnualWage:  cfg.Engine.BaselineAnnualWage,
		LocationAdjustsCost: cfg.Engine.LocationAdjustsCost,
		Scorer:              cfg.Scorer,
	}
}

// Engine is safe for concurrent use; it holds only immutable state.
type Engine struct {
	ds        *registry.Dataset
	resolver  *taxonomy.Resolver
	calc      *cost.Calculator
	estimator *estimate.Estimator
	scorer    *scorer.Scorer
}

// New builds an Engine over ds.
func New(ds *registry.Dataset, opts Options) (*Engine, error) {
	if ds == nil {
		return nil, eris.New("engine: dataset is required")
	}
	sc, err := scorer.New(opts.Scorer)
	if err != nil {
		return nil, eris.Wrap(err, "engine: build scorer")
	}
	return &Engine{
		ds:        ds,
		resolver:  taxonomy.NewResolver(ds),
		calc:      cost.NewCalculator(ds, cost.Options{LocationAdjustsCost: opts.LocationAdjustsCost}),
		estimator: estimate.NewEstimator(opts.BaselineAnnualWage),
		scorer:    sc,
	}, nil
}

// Dataset returns the reference data the engine runs on.
func (e *Engine) Dataset() *registry.Dataset { return e.ds }

// Resolver returns the engine's taxonomy resolver.
func (e *Engine) Resolver() *taxonomy.Resolver { return e.resolver }

// Scorer returns the engine's verdict scorer.
func (e *Engine) Scorer() *scorer.Scorer { return e.scorer }

// Calculate runs the pipeline for in. An unresolvable path yields a nil
// result and no error. An error means the tier or living situation has no
// adjustment data, which input validation rules out.
func (e *Engine) Calculate(in model.CalculatorInputs) (*model.CalculationResult, error) {
	key, ok := e.resolver.PathKey(in)
	if !ok {
		zap.L().Debug("engine: path not resolved",
			zap.String("path", in.Path),
		)
		return nil, nil
	}
	path, _ := e.ds.Path(key)

	proj, err := e.calc.Project(path, in)
	if err != nil {
		return nil, eris.Wrapf(err, "engine: project %s", key)
	}
	out := e.estimator.Estimate(proj)

	doubt, verdict := e.scorer.Verdict(scorer.Signals{
		EmploymentRate: path.EmploymentRate,
		Breakeven:      out.Breakeven,
		AdjustedCost:   proj.NetCost,
	}, path.AutomationRisk)

	return &model.CalculationResult{
		PathKey:         key,
		PathName:        path.Name,
		TotalCost:       proj.TotalCost,
		AdjustedCost:    proj.NetCost,
		Salary:          proj.Salary,
		MonthlySalary:   proj.MonthlySalary,
		MonthlyNetGain:  out.MonthlyNetGain,
		Breakeven:       out.Breakeven,
		TenYearNetWorth: out.TenYearNetWorth,
		EmploymentRate:  path.EmploymentRate,
		Risk:            path.Risk,
		DoubtScore:      doubt,
		AutomationRisk:  path.AutomationRisk,
		Verdict:         verdict,
	}, nil
}

// Compare runs both input sets independently and compares the results.
func (e *Engine) Compare(a, b model.CalculatorInputs) (model.ComparisonResult, error) {
	ra, err := e.Calculate(a)
	if err != nil {
		return model.ComparisonResult{}, eris.Wrap(err, "engine: calculate a")
	}
	rb, err := e.Calculate(b)
	if err != nil {
		return model.ComparisonResult{}, eris.Wrap(err, "engine: calculate b")
	}
	return compare.Results(ra, rb), nil
}
