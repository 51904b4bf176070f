package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCLI runs the test in an empty directory so config.Load sees only
// defaults and the SQLite store lands in a temp dir.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	oldCfg, oldDS := cfg, ds
	t.Cleanup(func() { cfg, ds = oldCfg, oldDS })
	return dir
}

// resetFlags restores every flag to its default. Cobra keeps parsed values
// in the bound variables between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"calculate", "compare", "paths", "data", "viral", "scenario", "serve"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "roi-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("data"))
}

func TestScenarioCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range scenarioCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"save", "list", "show", "delete", "run", "import"} {
		assert.True(t, names[name], "scenario should have subcommand %q", name)
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestRootCmd_PersistentPreRunE_Defaults(t *testing.T) {
	setupCLI(t)
	cfg, ds = nil, nil

	require.NoError(t, rootCmd.PersistentPreRunE(calculateCmd, nil))
	require.NotNil(t, cfg)
	require.NotNil(t, ds)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestRootCmd_PersistentPreRunE_BadLogLevel(t *testing.T) {
	dir := setupCLI(t)
	configContent := `
log:
  level: NOT_A_LEVEL
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0o644))

	err := rootCmd.PersistentPreRunE(calculateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init logger")
}

func TestRootCmd_BadDataFileRefusesToRun(t *testing.T) {
	dir := setupCLI(t)
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"educationTypes": {}}`), 0o644))

	_, _, err := execute(t, "--data", bad, "calculate", "--path", "college_tech")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load reference data")
}

func TestRootCmd_SkipDatasetAnnotation(t *testing.T) {
	setupCLI(t)
	ds = nil
	dataPath = filepath.Join(t.TempDir(), "missing.json")
	t.Cleanup(func() { dataPath = "" })

	require.NoError(t, rootCmd.PersistentPreRunE(dataValidateCmd, nil))
	assert.Nil(t, ds)
}
