package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/roi-cli/internal/registry"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Inspect and check reference data",
}

var dataValidateCmd = &cobra.Command{
	Use:         "validate [file]",
	Short:       "Check a reference data file for integrity errors",
	Long:        "Validates the given file, or the configured reference data when no file is given. Exits non-zero on any integrity error.",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipDataset: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, source, err := readDocument(args)
		if err != nil {
			return err
		}
		if err := registry.Validate(doc); err != nil {
			return eris.Wrapf(err, "%s", source)
		}
		d, err := registry.New(doc)
		if err != nil {
			return err
		}
		zap.L().Info("reference data valid",
			zap.String("source", source),
			zap.Int("paths", len(d.Paths())),
			zap.Int("locations", len(d.Locations())),
			zap.Int("viral", len(d.Viral())),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d paths, %d locations, %d viral comparisons)\n",
			source, len(d.Paths()), len(d.Locations()), len(d.Viral()))
		return nil
	},
}

var (
	flattenFormat string
	flattenOut    string
)

var dataFlattenCmd = &cobra.Command{
	Use:         "flatten [file]",
	Short:       "Write reference data with the derived flat educationPaths table",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipDataset: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, err := readDocument(args)
		if err != nil {
			return err
		}
		if err := registry.Validate(doc); err != nil {
			return err
		}

		format := registry.Format(flattenFormat)
		if format != registry.FormatJSON && format != registry.FormatYAML {
			return eris.Errorf("unknown format %q", flattenFormat)
		}
		out, err := registry.Encode(registry.WithLegacyPaths(doc), format)
		if err != nil {
			return err
		}

		if flattenOut == "" {
			_, err = cmd.OutOrStdout().Write(out)
			return eris.Wrap(err, "write flattened data")
		}
		return eris.Wrap(os.WriteFile(flattenOut, out, 0o644), "write flattened data")
	},
}

// readDocument reads the file named in args, the configured data file, or
// the embedded data, in that order.
func readDocument(args []string) (registry.Document, string, error) {
	path := cfg.Data.Path
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		doc, err := registry.DefaultDocument()
		return doc, "embedded", err
	}
	doc, err := registry.ReadDocument(path)
	return doc, path, err
}

func init() {
	dataFlattenCmd.Flags().StringVarP(&flattenFormat, "format", "f", string(registry.FormatJSON), "output format: json or yaml")
	dataFlattenCmd.Flags().StringVarP(&flattenOut, "out", "o", "", "write to a file instead of stdout")
	dataCmd.AddCommand(dataValidateCmd, dataFlattenCmd)
	rootCmd.AddCommand(dataCmd)
}
