package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/report"
	"github.com/sells-group/roi-cli/internal/taxonomy"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Browse the education path taxonomy",
}

var pathsListOutput outputFlags

var pathsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every education path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return pathsListOutput.write(cmd, report.PathsTable(ds), ds.Paths())
	},
}

var pathsTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the type, field and program hierarchy",
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatTree(cmd.OutOrStdout(), taxonomy.NewResolver(ds).Tree())
		return nil
	},
}

var pathsResolveCmd = &cobra.Command{
	Use:   "resolve <type> <field> <program>",
	Short: "Print the path key a taxonomy triple maps to",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := model.Triple{Type: model.EducationType(args[0]), Field: args[1], Program: args[2]}
		key, ok := taxonomy.NewResolver(ds).Resolve(t)
		if !ok {
			return eris.Errorf("no path for %s", t)
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}

var pathsUnresolveCmd = &cobra.Command{
	Use:   "unresolve <key>",
	Short: "Print the taxonomy triple behind a path key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := taxonomy.NewResolver(ds).Unresolve(args[0])
		if !ok {
			return eris.Errorf("unknown path %q", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", t.Type, t.Field, t.Program)
		return nil
	},
}

// formatTree writes the taxonomy as an indented outline.
func formatTree(out io.Writer, tree []taxonomy.Node) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, tn := range tree {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", tn.Value, tn.Name)
		for _, fn := range tn.Children {
			_, _ = fmt.Fprintf(w, "  %s\t%s\n", fn.Value, fn.Name)
			for _, pn := range fn.Children {
				_, _ = fmt.Fprintf(w, "    %s\t%s -> %s\n", pn.Value, pn.Name, pn.PathKey)
			}
		}
	}
	_ = w.Flush()
}

func init() {
	pathsListOutput.register(pathsListCmd)
	pathsCmd.AddCommand(pathsListCmd, pathsTreeCmd, pathsResolveCmd, pathsUnresolveCmd)
	rootCmd.AddCommand(pathsCmd)
}
