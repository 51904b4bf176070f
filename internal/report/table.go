// Package report renders calculation results, comparisons and saved
// scenarios as text tables, CSV, JSON or XLSX.
package report

import (
	"strconv"
	"time"

	"github.com/sells-group/roi-cli/internal/engine"
	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/registry"
)

// Cell is one table value. Num is set for numeric cells so CSV and XLSX
// output keep the raw number while text output shows Text.
type Cell struct {
	Text string
	Num  *float64
}

// Text returns a plain text cell.
func Text(s string) Cell { return Cell{Text: s} }

// Money returns a numeric cell displayed as currency.
func Money(v float64) Cell { return Cell{Text: Currency(v), Num: &v} }

// Int returns a numeric cell displayed as an integer.
func Int(n int) Cell {
	v := float64(n)
	return Cell{Text: strconv.Itoa(n), Num: &v}
}

// Rate returns a numeric cell displayed as a percentage.
func Rate(r float64) Cell { return Cell{Text: Percent(r), Num: &r} }

// Raw returns the machine-readable form of the cell.
func (c Cell) Raw() string {
	if c.Num != nil {
		return strconv.FormatFloat(*c.Num, 'f', -1, 64)
	}
	return c.Text
}

// Table is a titled grid ready for any output format.
type Table struct {
	Title  string
	Header []string
	Rows   [][]Cell
}

func (t *Table) add(cells ...Cell) {
	t.Rows = append(t.Rows, cells)
}

const unresolved = "no matching path"

// ResultTable lays out a single calculation as metric/value rows.
func ResultTable(r *model.CalculationResult) Table {
	t := Table{Title: "Result", Header: []string{"METRIC", "VALUE"}}
	if r == nil {
		t.add(Text("path"), Text(unresolved))
		return t
	}
	for _, m := range metrics {
		t.add(Text(m.name), m.cell(r))
	}
	return t
}

// ComparisonTable lays out two calculations side by side with the outcome.
func ComparisonTable(c model.ComparisonResult) Table {
	t := Table{Title: "Comparison", Header: []string{"METRIC", "A", "B"}}
	for _, m := range metrics {
		t.add(Text(m.name), sideCell(c.A, m), sideCell(c.B, m))
	}
	t.add(Text("winner"), Text(string(c.Winner)), Text(""))
	diff := Text("n/a")
	if c.BothBreakEven {
		diff = Int(c.BreakevenDiff)
	}
	t.add(Text("breakeven diff (months)"), diff, Text(""))
	t.add(Text("net worth diff"), Money(c.NetWorthDiff), Text(""))
	return t
}

// ViralTable summarizes curated comparisons one per row.
func ViralTable(results []engine.ViralResult) Table {
	t := Table{
		Title:  "Viral",
		Header: []string{"ID", "TITLE", "A", "B", "A BREAKEVEN", "B BREAKEVEN", "WINNER", "NET WORTH DIFF"},
	}
	for _, v := range results {
		c := v.Comparison
		t.add(
			Text(v.ID),
			Text(v.Title),
			Text(pathName(c.A)),
			Text(pathName(c.B)),
			Text(breakeven(c.A)),
			Text(breakeven(c.B)),
			Text(string(c.Winner)),
			Money(c.NetWorthDiff),
		)
	}
	return t
}

// ScenarioTable lists saved scenarios.
func ScenarioTable(scenarios []model.Scenario) Table {
	t := Table{
		Title:  "Scenarios",
		Header: []string{"ID", "NAME", "PATH", "LOCATION", "TIER", "LIVING", "SCHOLARSHIPS", "UPDATED"},
	}
	for _, sc := range scenarios {
		in := sc.Inputs
		t.add(
			Text(sc.ID),
			Text(sc.Name),
			Text(in.Path),
			Text(in.Location),
			Text(string(in.SchoolTier)),
			Text(string(in.Living)),
			Money(in.Scholarships),
			Text(sc.UpdatedAt.Format(time.DateTime)),
		)
	}
	return t
}

// PathsTable lists every education path in the dataset with its taxonomy
// position and unadjusted figures.
func PathsTable(ds *registry.Dataset) Table {
	t := Table{
		Title:  "Paths",
		Header: []string{"KEY", "TAXONOMY", "NAME", "COST", "MONTHS", "YEAR 1", "EMPLOYMENT"},
	}
	for _, p := range ds.Paths() {
		triple, _ := ds.TripleFor(p.Key)
		t.add(
			Text(p.Key),
			Text(triple.String()),
			Text(p.Name),
			Money(p.TotalCost),
			Int(p.DurationMonths),
			Money(p.Salary.Year1),
			Rate(p.EmploymentRate),
		)
	}
	return t
}

type metric struct {
	name string
	cell func(r *model.CalculationResult) Cell
}

var metrics = []metric{
	{"path", func(r *model.CalculationResult) Cell { return Text(r.PathKey) }},
	{"name", func(r *model.CalculationResult) Cell { return Text(r.PathName) }},
	{"total cost", func(r *model.CalculationResult) Cell { return Money(r.TotalCost) }},
	{"adjusted cost", func(r *model.CalculationResult) Cell { return Money(r.AdjustedCost) }},
	{"year 1 salary", func(r *model.CalculationResult) Cell { return Money(r.Salary.Year1) }},
	{"year 5 salary", func(r *model.CalculationResult) Cell { return Money(r.Salary.Year5) }},
	{"year 10 salary", func(r *model.CalculationResult) Cell { return Money(r.Salary.Year10) }},
	{"monthly salary", func(r *model.CalculationResult) Cell { return Money(r.MonthlySalary) }},
	{"monthly net gain", func(r *model.CalculationResult) Cell { return Money(r.MonthlyNetGain) }},
	{"breakeven", func(r *model.CalculationResult) Cell {
		v := float64(r.Breakeven.LegacyMonths())
		return Cell{Text: Months(r.Breakeven), Num: &v}
	}},
	{"10-year net worth", func(r *model.CalculationResult) Cell { return Money(r.TenYearNetWorth) }},
	{"employment rate", func(r *model.CalculationResult) Cell { return Rate(r.EmploymentRate) }},
	{"doubt score", func(r *model.CalculationResult) Cell { return Int(r.DoubtScore) }},
	{"automation risk", func(r *model.CalculationResult) Cell {
		if r.AutomationRisk == nil {
			return Text("")
		}
		return Int(*r.AutomationRisk)
	}},
	{"verdict", func(r *model.CalculationResult) Cell {
		v := float64(r.Verdict.Score)
		return Cell{Text: strconv.Itoa(r.Verdict.Score) + " " + r.Verdict.Label, Num: &v}
	}},
}

func sideCell(r *model.CalculationResult, m metric) Cell {
	if r == nil {
		if m.name == "path" {
			return Text(unresolved)
		}
		return Text("")
	}
	return m.cell(r)
}

func pathName(r *model.CalculationResult) string {
	if r == nil {
		return unresolved
	}
	return r.PathName
}

func breakeven(r *model.CalculationResult) string {
	if r == nil {
		return ""
	}
	return Months(r.Breakeven)
}
