package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/roi-cli/internal/config"
	"github.com/sells-group/roi-cli/internal/registry"
)

var (
	cfg *config.Config
	ds  *registry.Dataset
)

// dataPath overrides data.path from config when set.
var dataPath string

// skipDataset marks commands that read reference data themselves.
const skipDataset = "skip-dataset"

var rootCmd = &cobra.Command{
	Use:   "roi-cli",
	Short: "Education ROI calculator",
	Long:  "Projects cost, salary, breakeven and ten-year net worth for college, community college, trade, bootcamp and certification paths, and scores how much doubt each deserves.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c
		if dataPath != "" {
			cfg.Data.Path = dataPath
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		if cmd.Annotations[skipDataset] != "" {
			return nil
		}
		d, err := registry.Load(cfg.Data.Path)
		if err != nil {
			return eris.Wrap(err, "load reference data")
		}
		ds = d
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "reference data file, JSON or YAML (default embedded)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
