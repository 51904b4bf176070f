// Package registry loads and indexes the education reference data: paths,
// the type/field/program taxonomy, and the tier, living-cost and location
// adjustment tables.
package registry

import (
	"sort"

	"github.com/sells-group/roi-cli/internal/model"
)

// Document is the on-disk shape of a reference data file.
type Document struct {
	EducationTypes      map[string]TypeNode             `json:"educationTypes" yaml:"educationTypes"`
	PathMappings        map[string]string               `json:"pathMappings" yaml:"pathMappings"`
	LocationMultipliers map[string]float64              `json:"locationMultipliers" yaml:"locationMultipliers"`
	SchoolTiers         map[string]model.TierAdjustment `json:"schoolTiers" yaml:"schoolTiers"`
	LivingCosts         map[string]model.LivingCost     `json:"livingCosts" yaml:"livingCosts"`
	ViralComparisons    []ViralComparison               `json:"viralComparisons" yaml:"viralComparisons"`
	EducationPaths      map[string]model.EducationPath  `json:"educationPaths,omitempty" yaml:"educationPaths,omitempty"`
}

// TypeNode is the first level of the taxonomy.
type TypeNode struct {
	Name   string               `json:"name" yaml:"name"`
	Fields map[string]FieldNode `json:"fields" yaml:"fields"`
}

// FieldNode is the second level of the taxonomy. Its programs are the leaves.
type FieldNode struct {
	Name     string                         `json:"name" yaml:"name"`
	Programs map[string]model.EducationPath `json:"programs" yaml:"programs"`
}

// ViralComparison is a curated pair of paths used for promotional
// head-to-head comparisons.
type ViralComparison struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	A     string `json:"a" yaml:"a"`
	B     string `json:"b" yaml:"b"`
}

// Dataset is a validated, indexed and immutable view over a Document.
// Construct it with New or one of the Load functions.
type Dataset struct {
	types     map[model.EducationType]TypeNode
	paths     map[string]model.EducationPath
	byTriple  map[model.Triple]string
	byKey     map[string]model.Triple
	tiers     map[model.SchoolTier]model.TierAdjustment
	living    map[model.LivingSituation]model.LivingCost
	locations map[string]float64
	viral     []ViralComparison
}

// New validates doc and builds the indexed Dataset. Any integrity failure
// is returned as an error; callers treat it as fatal.
func New(doc Document) (*Dataset, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	ds := &Dataset{
		types:     make(map[model.EducationType]TypeNode, len(doc.EducationTypes)),
		paths:     Flatten(doc),
		byTriple:  make(map[model.Triple]string, len(doc.PathMappings)),
		byKey:     make(map[string]model.Triple, len(doc.PathMappings)),
		tiers:     make(map[model.SchoolTier]model.TierAdjustment, len(doc.SchoolTiers)),
		living:    make(map[model.LivingSituation]model.LivingCost, len(doc.LivingCosts)),
		locations: make(map[string]float64, len(doc.LocationMultipliers)),
		viral:     append([]ViralComparison(nil), doc.ViralComparisons...),
	}
	for name, node := range doc.EducationTypes {
		ds.types[model.EducationType(name)] = node
	}
	for raw, key := range doc.PathMappings {
		t, _ := model.ParseTriple(raw) // checked by Validate
		ds.byTriple[t] = key
		ds.byKey[key] = t
	}
	for name, adj := range doc.SchoolTiers {
		ds.tiers[model.SchoolTier(name)] = adj
	}
	for name, lc := range doc.LivingCosts {
		ds.living[model.LivingSituation(name)] = lc
	}
	for name, m := range doc.LocationMultipliers {
		ds.locations[name] = m
	}
	return ds, nil
}

// Path returns the path stored under key.
func (d *Dataset) Path(key string) (model.EducationPath, bool) {
	p, ok := d.paths[key]
	return p, ok
}

// Paths returns every path ordered by key.
func (d *Dataset) Paths() []model.EducationPath {
	out := make([]model.EducationPath, 0, len(d.paths))
	for _, k := range model.SortedKeys(d.paths) {
		out = append(out, d.paths[k])
	}
	return out
}

// KeyFor returns the canonical path key mapped from t.
func (d *Dataset) KeyFor(t model.Triple) (string, bool) {
	k, ok := d.byTriple[t]
	return k, ok
}

// TripleFor returns the taxonomy triple that maps to key.
func (d *Dataset) TripleFor(key string) (model.Triple, bool) {
	t, ok := d.byKey[key]
	return t, ok
}

// Mappings returns a copy of the triple to key table.
func (d *Dataset) Mappings() map[model.Triple]string {
	out := make(map[model.Triple]string, len(d.byTriple))
	for t, k := range d.byTriple {
		out[t] = k
	}
	return out
}

// Type returns the taxonomy node for an education type.
func (d *Dataset) Type(t model.EducationType) (TypeNode, bool) {
	n, ok := d.types[t]
	return n, ok
}

// Types returns the education types present in the data, in the enum's
// display order.
func (d *Dataset) Types() []model.EducationType {
	var out []model.EducationType
	for _, t := range model.EducationTypes {
		if _, ok := d.types[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Tier returns the adjustment for a school tier.
func (d *Dataset) Tier(t model.SchoolTier) (model.TierAdjustment, bool) {
	a, ok := d.tiers[t]
	return a, ok
}

// Living returns the monthly cost for a living situation.
func (d *Dataset) Living(l model.LivingSituation) (model.LivingCost, bool) {
	c, ok := d.living[l]
	return c, ok
}

// LocationMultiplier returns the scalar for a location key, or
// model.DefaultLocationMultiplier when the key is unknown.
func (d *Dataset) LocationMultiplier(location string) float64 {
	if m, ok := d.locations[location]; ok {
		return m
	}
	return model.DefaultLocationMultiplier
}

// HasLocation reports whether location has an explicit multiplier.
func (d *Dataset) HasLocation(location string) bool {
	_, ok := d.locations[location]
	return ok
}

// Locations returns every known location key in sorted order.
func (d *Dataset) Locations() []string {
	keys := make([]string, 0, len(d.locations))
	for k := range d.locations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Viral returns the curated comparison pairs in file order.
func (d *Dataset) Viral() []ViralComparison {
	return append([]ViralComparison(nil), d.viral...)
}
