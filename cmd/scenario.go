package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/registry"
	"github.com/sells-group/roi-cli/internal/report"
	"github.com/sells-group/roi-cli/internal/store"
	"github.com/sells-group/roi-cli/internal/taxonomy"
	"github.com/sells-group/roi-cli/internal/validate"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Save, list and re-run named calculator inputs",
}

// -- scenario save --

var (
	saveProfile profileFlags
	saveID      string
)

var scenarioSaveCmd = &cobra.Command{
	Use:   "save <name> <path>",
	Short: "Save calculator inputs under a name",
	Long:  "Creates a new scenario, or replaces the name and inputs of an existing one when --id is given.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := cfg.Validate("scenario"); err != nil {
			return err
		}
		in, err := saveProfile.inputs(args[1])
		if err != nil {
			return err
		}
		if !taxonomy.NewResolver(ds).Exists(in.Path) {
			return eris.Errorf("unknown path %q", in.Path)
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if saveID != "" {
			if err := st.UpdateScenario(ctx, saveID, args[0], in); err != nil {
				return eris.Wrap(err, "scenario save")
			}
			fmt.Fprintln(cmd.OutOrStdout(), saveID)
			return nil
		}

		sc, err := st.CreateScenario(ctx, args[0], in)
		if err != nil {
			return eris.Wrap(err, "scenario save")
		}
		zap.L().Info("scenario saved", zap.String("id", sc.ID), zap.String("name", sc.Name))
		fmt.Fprintln(cmd.OutOrStdout(), sc.ID)
		return nil
	},
}

// -- scenario list --

var (
	listPath   string
	listLimit  int
	listOffset int
	listOutput outputFlags
)

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		st, err := openScenarioStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		list, err := st.ListScenarios(ctx, store.ScenarioFilter{Path: listPath, Limit: listLimit, Offset: listOffset})
		if err != nil {
			return eris.Wrap(err, "scenario list")
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No scenarios found.")
			return nil
		}
		return listOutput.write(cmd, report.ScenarioTable(list), list)
	},
}

// -- scenario show --

var scenarioShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openScenarioStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		sc, err := st.GetScenario(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "scenario show")
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(sc)
	},
}

// -- scenario delete --

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openScenarioStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.DeleteScenario(ctx, args[0]); err != nil {
			return eris.Wrap(err, "scenario delete")
		}
		zap.L().Info("scenario deleted", zap.String("id", args[0]))
		return nil
	},
}

// -- scenario run --

var runOutput outputFlags

var scenarioRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Re-run a saved scenario against the current reference data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, err := newEngine("scenario")
		if err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		sc, err := st.GetScenario(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "scenario run")
		}

		if sel, ok := eng.Resolver().SelectionFromKey(sc.Inputs.Path); ok {
			zap.L().Debug("scenario selection",
				zap.String("type", string(sel.Type)),
				zap.String("field", sel.Field),
				zap.String("program", sel.Program),
			)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "Path %q is no longer in the reference data.\n", sc.Inputs.Path)
		}

		res, err := eng.Calculate(sc.Inputs)
		if err != nil {
			return eris.Wrap(err, "scenario run")
		}
		return runOutput.write(cmd, report.ResultTable(res), res)
	},
}

// -- scenario import --

var scenarioImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import scenarios from a JSON or YAML file",
	Long:  "Reads a list of scenarios and upserts them by ID. Scenarios without an ID get a new one.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		scenarios, err := readScenarios(args[0])
		if err != nil {
			return err
		}
		if err := checkScenarios(scenarios); err != nil {
			return eris.Wrapf(err, "scenario import %s", args[0])
		}

		st, err := openScenarioStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		n, err := st.ImportScenarios(ctx, scenarios)
		if err != nil {
			return eris.Wrap(err, "scenario import")
		}
		zap.L().Info("import complete", zap.Int64("scenarios", n), zap.String("file", args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d scenarios\n", n)
		return nil
	},
}

// checkScenarios validates every imported scenario the way saved input is
// validated and resolves taxonomy selections to path keys in place. Nothing
// is imported unless every scenario passes.
func checkScenarios(scenarios []model.Scenario) error {
	resolver := taxonomy.NewResolver(ds)
	var problems []string
	for i := range scenarios {
		sc := &scenarios[i]
		msgs := validate.Check(validate.FromInputs(sc.Inputs))
		if sc.Name == "" {
			msgs = append([]string{"Please name the scenario."}, msgs...)
		}
		if len(msgs) > 0 {
			problems = append(problems, fmt.Sprintf("scenario %d (%s): %s", i+1, sc.ID, strings.Join(msgs, " ")))
			continue
		}

		key, ok := resolver.PathKey(sc.Inputs)
		if !ok {
			zap.L().Warn("importing scenario with unknown path",
				zap.String("name", sc.Name),
				zap.String("path", sc.Inputs.Path),
			)
			continue
		}
		sc.Inputs.Path, sc.Inputs.Triple = key, nil
	}
	if len(problems) > 0 {
		return eris.New(strings.Join(problems, "; "))
	}
	return nil
}

func openScenarioStore(cmd *cobra.Command) (store.Store, error) {
	if err := cfg.Validate("scenario"); err != nil {
		return nil, err
	}
	return initStore(cmd.Context())
}

// readScenarios decodes a scenario list, choosing JSON or YAML by extension.
func readScenarios(path string) ([]model.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read scenarios")
	}
	var out []model.Scenario
	switch registry.FormatFor(path) {
	case registry.FormatYAML:
		err = yaml.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "decode scenarios from %s", path)
	}
	return out, nil
}

func init() {
	saveProfile.register(scenarioSaveCmd)
	scenarioSaveCmd.Flags().StringVar(&saveID, "id", "", "update this scenario instead of creating one")

	scenarioListCmd.Flags().StringVar(&listPath, "path", "", "only scenarios for this path key")
	scenarioListCmd.Flags().IntVar(&listLimit, "limit", 100, "max scenarios to list")
	scenarioListCmd.Flags().IntVar(&listOffset, "offset", 0, "scenarios to skip")
	listOutput.register(scenarioListCmd)

	runOutput.register(scenarioRunCmd)

	scenarioCmd.AddCommand(scenarioSaveCmd, scenarioListCmd, scenarioShowCmd, scenarioDeleteCmd, scenarioRunCmd, scenarioImportCmd)
	rootCmd.AddCommand(scenarioCmd)
}
