package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/roi-cli/internal/model"
)

func intPtr(v int) *int { return &v }

// fixtureDocument is a minimal document covering every enum member.
func fixtureDocument() Document {
	return Document{
		EducationTypes: map[string]TypeNode{
			"college": {
				Name: "4-Year College",
				Fields: map[string]FieldNode{
					"tech": {
						Name: "Technology",
						Programs: map[string]model.EducationPath{
							"bachelors": {
								Name:           "CS",
								TotalCost:      40000,
								DurationMonths: 48,
								Salary:         model.SalaryCurve{Year1: 70000, Year5: 90000, Year10: 120000},
								EmploymentRate: 0.9,
								Risk:           "ok",
								AutomationRisk: intPtr(40),
							},
						},
					},
				},
			},
			"trade": {
				Name: "Trade School",
				Fields: map[string]FieldNode{
					"electrical": {
						Name: "Electrical",
						Programs: map[string]model.EducationPath{
							"apprenticeship": {
								Name:           "Electrician",
								TotalCost:      10000,
								DurationMonths: 12,
								Salary:         model.SalaryCurve{Year1: 50000, Year5: 65000, Year10: 80000},
								EmploymentRate: 0.92,
								Risk:           "physical",
							},
						},
					},
				},
			},
		},
		PathMappings: map[string]string{
			"college.tech.bachelors":         "college_tech",
			"trade.electrical.apprenticeship": "trade_electrician",
		},
		LocationMultipliers: map[string]float64{"midwest": 0.9, "west": 1.2},
		SchoolTiers: map[string]model.TierAdjustment{
			"budget":  {Name: "Budget", CostMultiplier: 0.6, SalaryBonus: 0.95},
			"average": {Name: "Average", CostMultiplier: 1, SalaryBonus: 1},
			"premium": {Name: "Premium", CostMultiplier: 1.8, SalaryBonus: 1.1},
			"elite":   {Name: "Elite", CostMultiplier: 2.8, SalaryBonus: 1.25},
		},
		LivingCosts: map[string]model.LivingCost{
			"withparents": {Name: "Parents", Monthly: 200},
			"roommates":   {Name: "Roommates", Monthly: 900},
			"dorm":        {Name: "Dorm", Monthly: 1300},
			"solo":        {Name: "Solo", Monthly: 1700},
		},
		ViralComparisons: []ViralComparison{
			{ID: "cs-vs-sparky", Title: "CS vs electrician", A: "college_tech", B: "trade_electrician"},
		},
	}
}

func TestNew_Fixture(t *testing.T) {
	ds, err := New(fixtureDocument())
	require.NoError(t, err)

	assert.Len(t, ds.Paths(), 2)
	assert.Equal(t, []model.EducationType{model.EducationCollege, model.EducationTrade}, ds.Types())
	assert.InDelta(t, 0.9, ds.LocationMultiplier("midwest"), 1e-9)
	assert.InDelta(t, 1.0, ds.LocationMultiplier("atlantis"), 1e-9)
	assert.False(t, ds.HasLocation("atlantis"))
	assert.Equal(t, []string{"midwest", "west"}, ds.Locations())

	tier, ok := ds.Tier(model.TierPremium)
	require.True(t, ok)
	assert.InDelta(t, 1.8, tier.CostMultiplier, 1e-9)

	lc, ok := ds.Living(model.LivingWithParents)
	require.True(t, ok)
	assert.InDelta(t, 200, lc.Monthly, 1e-9)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantErr string
	}{
		{
			name:    "mapping to missing leaf",
			mutate:  func(d *Document) { d.PathMappings["college.tech.masters"] = "college_tech_masters" },
			wantErr: "no such taxonomy leaf",
		},
		{
			name:    "unmapped leaf",
			mutate:  func(d *Document) { delete(d.PathMappings, "trade.electrical.apprenticeship") },
			wantErr: "leaf has no pathMappings entry",
		},
		{
			name: "duplicate canonical key",
			mutate: func(d *Document) {
				d.PathMappings["trade.electrical.apprenticeship"] = "college_tech"
			},
			wantErr: "mapped from both",
		},
		{
			name:    "malformed mapping key",
			mutate:  func(d *Document) { d.PathMappings["college-tech"] = "x" },
			wantErr: "must have form type.field.program",
		},
		{
			name: "unknown education type",
			mutate: func(d *Document) {
				d.EducationTypes["apprentice"] = d.EducationTypes["trade"]
			},
			wantErr: `unknown type "apprentice"`,
		},
		{
			name:    "missing tier",
			mutate:  func(d *Document) { delete(d.SchoolTiers, "elite") },
			wantErr: `missing tier "elite"`,
		},
		{
			name: "unknown tier",
			mutate: func(d *Document) {
				d.SchoolTiers["ivy"] = model.TierAdjustment{CostMultiplier: 3, SalaryBonus: 1.3}
			},
			wantErr: `unknown tier "ivy"`,
		},
		{
			name: "non-positive cost multiplier",
			mutate: func(d *Document) {
				d.SchoolTiers["average"] = model.TierAdjustment{CostMultiplier: 0, SalaryBonus: 1}
			},
			wantErr: "costMultiplier must be > 0",
		},
		{
			name:    "missing living situation",
			mutate:  func(d *Document) { delete(d.LivingCosts, "dorm") },
			wantErr: `missing living situation "dorm"`,
		},
		{
			name:    "non-positive location",
			mutate:  func(d *Document) { d.LocationMultipliers["mars"] = 0 },
			wantErr: "locationMultipliers.mars",
		},
		{
			name: "viral comparison unknown path",
			mutate: func(d *Document) {
				d.ViralComparisons = append(d.ViralComparisons, ViralComparison{ID: "x", A: "college_tech", B: "nope"})
			},
			wantErr: `unknown path "nope"`,
		},
		{
			name: "employment rate out of range",
			mutate: func(d *Document) {
				f := d.EducationTypes["college"].Fields["tech"]
				p := f.Programs["bachelors"]
				p.EmploymentRate = 1.5
				f.Programs["bachelors"] = p
			},
			wantErr: "employmentRate must be within [0,1]",
		},
		{
			name: "zero duration",
			mutate: func(d *Document) {
				f := d.EducationTypes["trade"].Fields["electrical"]
				p := f.Programs["apprenticeship"]
				p.DurationMonths = 0
				f.Programs["apprenticeship"] = p
			},
			wantErr: "duration must be > 0",
		},
		{
			name: "legacy flat table mismatch",
			mutate: func(d *Document) {
				flat := Flatten(*d)
				p := flat["college_tech"]
				p.TotalCost = 1
				flat["college_tech"] = p
				d.EducationPaths = flat
			},
			wantErr: "educationPaths.college_tech: differs from taxonomy leaf",
		},
		{
			name: "legacy flat table extra key",
			mutate: func(d *Document) {
				flat := Flatten(*d)
				flat["ghost"] = model.EducationPath{Name: "Ghost", DurationMonths: 1}
				d.EducationPaths = flat
			},
			wantErr: "educationPaths.ghost: not reachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fixtureDocument()
			tt.mutate(&doc)
			err := Validate(doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			_, err = New(doc)
			assert.Error(t, err)
		})
	}
}

func TestValidate_LegacyFlatTableConsistent(t *testing.T) {
	doc := WithLegacyPaths(fixtureDocument())
	assert.NoError(t, Validate(doc))
}

// Every hierarchical leaf must appear unchanged in the flat table, and the
// flat table must contain nothing else.
func TestFlatten_RoundTripsEveryLeaf(t *testing.T) {
	doc, err := DefaultDocument()
	require.NoError(t, err)
	flat := Flatten(doc)

	leaves := 0
	for typeName, tn := range doc.EducationTypes {
		for fieldName, fn := range tn.Fields {
			for progName, want := range fn.Programs {
				leaves++
				key, ok := doc.PathMappings[typeName+"."+fieldName+"."+progName]
				require.True(t, ok, "leaf %s.%s.%s unmapped", typeName, fieldName, progName)

				got, ok := flat[key]
				require.True(t, ok, "flat table missing %s", key)
				want.Key = key
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("flat %s mismatch (-leaf +flat):\n%s", key, diff)
				}
			}
		}
	}
	assert.Len(t, flat, leaves)
}

func TestDefaultDocument_PassesIntegrity(t *testing.T) {
	doc, err := DefaultDocument()
	require.NoError(t, err)
	require.NoError(t, Validate(doc))
	require.NoError(t, Validate(WithLegacyPaths(doc)))
}

func TestDefaultDataset_MappingsResolveToPaths(t *testing.T) {
	ds, err := LoadDefault()
	require.NoError(t, err)

	for triple, key := range ds.Mappings() {
		p, ok := ds.Path(key)
		require.True(t, ok, "mapping %s -> %s has no path", triple, key)
		assert.Equal(t, key, p.Key)

		back, ok := ds.TripleFor(key)
		require.True(t, ok)
		assert.Equal(t, triple, back)
	}
}
