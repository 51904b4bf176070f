package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/roi-cli/internal/engine"
	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/report"
	"github.com/sells-group/roi-cli/internal/store"
	"github.com/sells-group/roi-cli/internal/validate"
)

func newEngine(mode string) (*engine.Engine, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}
	return engine.New(ds, engine.OptionsFromConfig(cfg))
}

func initStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		st, err = store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// profileFlags are the location, tier, living and scholarship flags shared
// by every command that runs a calculation.
type profileFlags struct {
	location     string
	tier         string
	living       string
	scholarships string
}

func (p *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.location, "location", "national", "location multiplier key")
	cmd.Flags().StringVar(&p.tier, "tier", string(model.TierAverage), "school tier: budget, average, premium or elite")
	cmd.Flags().StringVar(&p.living, "living", string(model.LivingRoommates), "living situation: withparents, roommates, dorm or solo")
	cmd.Flags().StringVar(&p.scholarships, "scholarships", "", "total scholarships in dollars")
}

func (p profileFlags) form(path string) validate.Form {
	return validate.Form{
		Path:         path,
		Location:     p.location,
		SchoolTier:   p.tier,
		Living:       p.living,
		Scholarships: p.scholarships,
	}
}

// inputs validates the flags for path and returns engine inputs.
func (p profileFlags) inputs(path string) (model.CalculatorInputs, error) {
	return formInputs(p.form(path))
}

func formInputs(f validate.Form) (model.CalculatorInputs, error) {
	in, msgs := validate.ToInputs(f)
	if len(msgs) > 0 {
		return model.CalculatorInputs{}, eris.New(strings.Join(msgs, " "))
	}
	return in, nil
}

// outputFlags select the report format and destination.
type outputFlags struct {
	format string
	out    string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", string(report.FormatTable), "output format: table, csv, json or xlsx")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write output to a file instead of stdout")
}

// write renders t, or v for JSON, to the configured destination.
func (o outputFlags) write(cmd *cobra.Command, t report.Table, v any) error {
	f, err := report.ParseFormat(o.format)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if o.out != "" {
		file, err := os.Create(o.out)
		if err != nil {
			return eris.Wrap(err, "create output file")
		}
		defer file.Close() //nolint:errcheck
		w = file
	}
	return report.Write(w, f, t, v)
}
