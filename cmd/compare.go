package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/roi-cli/internal/report"
)

var (
	compareProfile profileFlags
	compareOutput  outputFlags
)

var compareCmd = &cobra.Command{
	Use:   "compare <path-a> <path-b>",
	Short: "Compare two education paths head to head",
	Long:  "Runs both paths under the same location, tier, living situation and scholarships. The earlier breakeven wins; B wins ties.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine("calculate")
		if err != nil {
			return err
		}

		a, err := compareProfile.inputs(args[0])
		if err != nil {
			return eris.Wrap(err, "path a")
		}
		b, err := compareProfile.inputs(args[1])
		if err != nil {
			return eris.Wrap(err, "path b")
		}

		cmp, err := eng.Compare(a, b)
		if err != nil {
			return eris.Wrap(err, "compare")
		}
		return compareOutput.write(cmd, report.ComparisonTable(cmp), cmp)
	},
}

func init() {
	compareProfile.register(compareCmd)
	compareOutput.register(compareCmd)
	rootCmd.AddCommand(compareCmd)
}
