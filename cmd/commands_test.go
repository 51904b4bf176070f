package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/roi-cli/internal/engine"
	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/registry"
)

var midwestFlags = []string{"--location", "midwest", "--tier", "average", "--living", "withparents"}

func TestCalculate_Table(t *testing.T) {
	setupCLI(t)

	out, _, err := execute(t, append([]string{"calculate", "--path", "college_tech"}, midwestFlags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "$129,600")
	assert.Contains(t, out, "42 months")
	assert.Contains(t, out, "30 caution")
}

func TestCalculate_TripleJSON(t *testing.T) {
	setupCLI(t)

	args := append([]string{"calculate", "--type", "college", "--field", "tech", "--program", "bachelors", "-f", "json"}, midwestFlags...)
	out, _, err := execute(t, args...)
	require.NoError(t, err)

	var r model.CalculationResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "college_tech", r.PathKey)
	assert.Equal(t, 42, r.Breakeven.Months)
}

func TestCalculate_UnknownPath(t *testing.T) {
	setupCLI(t)

	out, errOut, err := execute(t, "calculate", "--path", "invalid_path")
	require.NoError(t, err)
	assert.Contains(t, out, "no matching path")
	assert.Contains(t, errOut, "No education path matches")
}

func TestCalculate_InvalidInput(t *testing.T) {
	setupCLI(t)

	_, _, err := execute(t, "calculate", "--path", "college_tech", "--tier", "ivy", "--scholarships", "-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "School tier must be")
	assert.Contains(t, err.Error(), "between $0 and $100,000")
}

func TestCompare_CSV(t *testing.T) {
	setupCLI(t)

	args := append([]string{"compare", "college_tech", "trade_electrician", "-f", "csv"}, midwestFlags...)
	out, _, err := execute(t, args...)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	var winner string
	for _, rec := range records {
		if rec[0] == "winner" {
			winner = rec[1]
		}
	}
	assert.Equal(t, "b", winner)
}

func TestPaths_ResolveUnresolve(t *testing.T) {
	setupCLI(t)

	out, _, err := execute(t, "paths", "resolve", "trade", "electrical", "apprenticeship")
	require.NoError(t, err)
	assert.Equal(t, "trade_electrician\n", out)

	out, _, err = execute(t, "paths", "unresolve", "college_tech")
	require.NoError(t, err)
	assert.Equal(t, "college tech bachelors\n", out)

	_, _, err = execute(t, "paths", "resolve", "college", "tech", "phd")
	assert.Error(t, err)
	_, _, err = execute(t, "paths", "unresolve", "invalid_path")
	assert.Error(t, err)
}

func TestPaths_ListAndTree(t *testing.T) {
	setupCLI(t)

	out, _, err := execute(t, "paths", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "college.tech.bachelors")

	out, _, err = execute(t, "paths", "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "-> college_tech")
}

func TestData_ValidateEmbedded(t *testing.T) {
	setupCLI(t)

	out, _, err := execute(t, "data", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "embedded: ok")
}

func TestData_ValidateBrokenFile(t *testing.T) {
	dir := setupCLI(t)

	doc, err := registry.DefaultDocument()
	require.NoError(t, err)
	doc.PathMappings["college.tech.phd"] = "college_tech_phd"
	data, err := registry.Encode(doc, registry.FormatJSON)
	require.NoError(t, err)
	bad := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(bad, data, 0o644))

	_, _, err = execute(t, "data", "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
	assert.Contains(t, err.Error(), "no such taxonomy leaf")
}

func TestData_FlattenYAML(t *testing.T) {
	dir := setupCLI(t)
	out := filepath.Join(dir, "flat.yaml")

	_, _, err := execute(t, "data", "flatten", "-f", "yaml", "-o", out)
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	doc, err := registry.Decode(raw, registry.FormatYAML)
	require.NoError(t, err)
	require.Contains(t, doc.EducationPaths, "college_tech")
	assert.Equal(t, "college_tech", doc.EducationPaths["college_tech"].Key)

	// The flattened file is itself valid reference data.
	_, err = registry.New(doc)
	assert.NoError(t, err)
}

func TestViral_JSON(t *testing.T) {
	setupCLI(t)

	out, _, err := execute(t, "viral", "-f", "json", "--concurrency", "2", "--tier", "budget")
	require.NoError(t, err)

	var results []engine.ViralResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.NotEmpty(t, results)
	assert.Equal(t, "art-vs-electrician", results[0].ID)
}

func TestScenario_Flow(t *testing.T) {
	dir := setupCLI(t)

	out, _, err := execute(t, append([]string{"scenario", "save", "my tech plan", "college_tech"}, midwestFlags...)...)
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, _, err = execute(t, "scenario", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "my tech plan")

	out, _, err = execute(t, "scenario", "run", id, "-f", "json")
	require.NoError(t, err)
	var r model.CalculationResult
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 42, r.Breakeven.Months)

	out, _, err = execute(t, append([]string{"scenario", "save", "renamed", "trade_electrician", "--id", id}, midwestFlags...)...)
	require.NoError(t, err)
	assert.Equal(t, id, strings.TrimSpace(out))

	out, _, err = execute(t, "scenario", "show", id)
	require.NoError(t, err)
	var sc model.Scenario
	require.NoError(t, json.Unmarshal([]byte(out), &sc))
	assert.Equal(t, "renamed", sc.Name)
	assert.Equal(t, "trade_electrician", sc.Inputs.Path)

	importFile := filepath.Join(dir, "scenarios.yaml")
	require.NoError(t, os.WriteFile(importFile, []byte(`
- id: imported-1
  name: plumber
  inputs:
    path: trade_plumber
    location: south
    school_tier: budget
    living_cost: dorm
`), 0o644))
	out, _, err = execute(t, "scenario", "import", importFile)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 scenarios")

	out, _, err = execute(t, "scenario", "list", "-f", "json", "--path", "trade_plumber")
	require.NoError(t, err)
	var list []model.Scenario
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, model.LivingDorm, list[0].Inputs.Living)

	_, _, err = execute(t, "scenario", "delete", id)
	require.NoError(t, err)
	_, _, err = execute(t, "scenario", "show", id)
	assert.Error(t, err)
}

func TestScenario_SaveUnknownPath(t *testing.T) {
	setupCLI(t)

	_, _, err := execute(t, "scenario", "save", "nope", "invalid_path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown path")
}

func TestCalculate_IncompleteTriple(t *testing.T) {
	setupCLI(t)

	_, _, err := execute(t, "calculate", "--type", "trade")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please select a field.")
	assert.Contains(t, err.Error(), "Please select a program.")
}

func TestScenario_ImportRejectsInvalidInputs(t *testing.T) {
	dir := setupCLI(t)

	importFile := filepath.Join(dir, "scenarios.yaml")
	require.NoError(t, os.WriteFile(importFile, []byte(`
- id: good
  name: plumber
  inputs:
    path: trade_plumber
    location: south
    school_tier: budget
    living_cost: dorm
- id: bad
  name: ivy plan
  inputs:
    path: college_tech
    location: midwest
    school_tier: ivy
    living_cost: castle
`), 0o644))

	_, _, err := execute(t, "scenario", "import", importFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario 2 (bad)")
	assert.Contains(t, err.Error(), "School tier must be")
	assert.Contains(t, err.Error(), "Living situation must be")

	_, errOut, err := execute(t, "scenario", "list")
	require.NoError(t, err)
	assert.Contains(t, errOut, "No scenarios found.")
}

func TestScenario_ImportResolvesTriple(t *testing.T) {
	dir := setupCLI(t)

	importFile := filepath.Join(dir, "scenarios.json")
	require.NoError(t, os.WriteFile(importFile, []byte(`[
  {"name": "sparky", "inputs": {
    "triple": {"type": "trade", "field": "electrical", "program": "apprenticeship"},
    "location": "midwest", "school_tier": "average", "living_cost": "withparents"}}
]`), 0o644))

	_, _, err := execute(t, "scenario", "import", importFile)
	require.NoError(t, err)

	out, _, err := execute(t, "scenario", "list", "-f", "json", "--path", "trade_electrician")
	require.NoError(t, err)
	var list []model.Scenario
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Inputs.Triple)
	assert.NotEmpty(t, list[0].ID)
}
