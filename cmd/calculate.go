package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/report"
)

var (
	calcPath    string
	calcTriple  model.Triple
	calcProfile profileFlags
	calcOutput  outputFlags
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate ROI for one education path",
	Long:  "Selects a path by key (--path) or by taxonomy (--type, --field, --program) and prints its cost, salary, breakeven, net worth and verdict.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		eng, err := newEngine("calculate")
		if err != nil {
			return err
		}

		in, err := calculateInputs()
		if err != nil {
			return err
		}

		res, err := eng.Calculate(in)
		if err != nil {
			return eris.Wrap(err, "calculate")
		}
		if res == nil {
			zap.L().Warn("no education path matches the selection",
				zap.String("path", in.Path),
				zap.String("triple", calcTriple.String()),
			)
			fmt.Fprintln(cmd.ErrOrStderr(), "No education path matches the selection.")
		}
		return calcOutput.write(cmd, report.ResultTable(res), res)
	},
}

// calculateInputs builds inputs from --path, or from the taxonomy flags
// when --path is empty.
func calculateInputs() (model.CalculatorInputs, error) {
	f := calcProfile.form(calcPath)
	if calcPath == "" {
		f.Type, f.Field, f.Program = string(calcTriple.Type), calcTriple.Field, calcTriple.Program
	}
	return formInputs(f)
}

func init() {
	calculateCmd.Flags().StringVarP(&calcPath, "path", "p", "", "education path key, e.g. college_tech")
	calculateCmd.Flags().StringVar((*string)(&calcTriple.Type), "type", "", "education type: college, community, trade, bootcamp or certification")
	calculateCmd.Flags().StringVar(&calcTriple.Field, "field", "", "field of study within the type")
	calculateCmd.Flags().StringVar(&calcTriple.Program, "program", "", "program within the field")
	calcProfile.register(calculateCmd)
	calcOutput.register(calculateCmd)
	rootCmd.AddCommand(calculateCmd)
}
