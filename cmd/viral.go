package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/roi-cli/internal/engine"
	"github.com/sells-group/roi-cli/internal/report"
)

var (
	viralProfile     profileFlags
	viralOutput      outputFlags
	viralConcurrency int
)

var viralCmd = &cobra.Command{
	Use:   "viral",
	Short: "Run every curated comparison in the reference data",
	Long:  "Compares each curated pair under one shared profile. Unset profile flags fall back to the viral section of the config.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		eng, err := newEngine("calculate")
		if err != nil {
			return err
		}

		profile, err := viralProfileFor(cmd)
		if err != nil {
			return err
		}
		concurrency := cfg.Viral.Concurrency
		if viralConcurrency > 0 {
			concurrency = viralConcurrency
		}

		results, err := eng.RunViral(cmd.Context(), profile, concurrency)
		if err != nil {
			return err
		}
		return viralOutput.write(cmd, report.ViralTable(results), results)
	},
}

// viralProfileFor merges explicitly set flags over the configured profile.
func viralProfileFor(cmd *cobra.Command) (engine.Profile, error) {
	vc := cfg.Viral
	if cmd.Flags().Changed("location") {
		vc.Location = viralProfile.location
	}
	if cmd.Flags().Changed("tier") {
		vc.SchoolTier = viralProfile.tier
	}
	if cmd.Flags().Changed("living") {
		vc.Living = viralProfile.living
	}
	return engine.ProfileFromConfig(vc)
}

func init() {
	viralCmd.Flags().StringVar(&viralProfile.location, "location", "", "location multiplier key")
	viralCmd.Flags().StringVar(&viralProfile.tier, "tier", "", "school tier")
	viralCmd.Flags().StringVar(&viralProfile.living, "living", "", "living situation")
	viralCmd.Flags().IntVar(&viralConcurrency, "concurrency", 0, "comparisons run at once (default from config)")
	viralOutput.register(viralCmd)
	rootCmd.AddCommand(viralCmd)
}
