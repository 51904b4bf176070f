package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/registry"
)

func newTestResolver(t *testing.T) (*Resolver, *registry.Dataset) {
	t.Helper()
	ds, err := registry.LoadDefault()
	require.NoError(t, err)
	return NewResolver(ds), ds
}

func TestResolve_UnresolveInverse(t *testing.T) {
	t.Parallel()
	r, ds := newTestResolver(t)

	mappings := ds.Mappings()
	require.NotEmpty(t, mappings)

	for triple, key := range mappings {
		got, ok := r.Resolve(triple)
		require.True(t, ok, "resolve %s", triple)
		assert.Equal(t, key, got)

		back, ok := r.Unresolve(got)
		require.True(t, ok, "unresolve %s", got)
		assert.Equal(t, triple, back)

		assert.True(t, r.Exists(got), "resolved key %s missing from flat table", got)
	}
}

func TestResolve_Invalid(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t)

	tests := []struct {
		name   string
		triple model.Triple
	}{
		{"empty", model.Triple{}},
		{"type only", model.Triple{Type: model.EducationCollege}},
		{"type and field", model.Triple{Type: model.EducationCollege, Field: "tech"}},
		{"unknown program", model.Triple{Type: model.EducationCollege, Field: "tech", Program: "phd"}},
		{"field from other type", model.Triple{Type: model.EducationTrade, Field: "tech", Program: "bachelors"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := r.Resolve(tt.triple)
			assert.False(t, ok)
			assert.Empty(t, key)
		})
	}

	_, ok := r.Unresolve("invalid_path")
	assert.False(t, ok)
}

func TestPathKey(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t)

	key, ok := r.PathKey(model.CalculatorInputs{Path: "college_tech"})
	assert.True(t, ok)
	assert.Equal(t, "college_tech", key)

	_, ok = r.PathKey(model.CalculatorInputs{Path: "invalid_path"})
	assert.False(t, ok)

	key, ok = r.PathKey(model.CalculatorInputs{
		Triple: &model.Triple{Type: model.EducationTrade, Field: "electrical", Program: "apprenticeship"},
	})
	assert.True(t, ok)
	assert.Equal(t, "trade_electrician", key)

	_, ok = r.PathKey(model.CalculatorInputs{})
	assert.False(t, ok)
}

func TestListing(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t)

	types := r.Types()
	require.NotEmpty(t, types)
	assert.Equal(t, "college", types[0].Value)

	fields := r.Fields(model.EducationCollege)
	require.NotEmpty(t, fields)
	for i := 1; i < len(fields); i++ {
		assert.Less(t, fields[i-1].Value, fields[i].Value)
	}

	progs := r.Programs(model.EducationCollege, "tech")
	var values []string
	for _, p := range progs {
		values = append(values, p.Value)
	}
	assert.Equal(t, []string{"bachelors", "masters"}, values)

	assert.Nil(t, r.Fields("nope"))
	assert.Nil(t, r.Programs(model.EducationCollege, "nope"))
}
