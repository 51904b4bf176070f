package model

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// EducationType is the top level of the path taxonomy.
type EducationType string

const (
	EducationCollege       EducationType = "college"
	EducationCommunity     EducationType = "community"
	EducationTrade         EducationType = "trade"
	EducationBootcamp      EducationType = "bootcamp"
	EducationCertification EducationType = "certification"
)

// EducationTypes lists every known education type in display order.
var EducationTypes = []EducationType{
	EducationCollege,
	EducationCommunity,
	EducationTrade,
	EducationBootcamp,
	EducationCertification,
}

// ParseEducationType returns the EducationType for s, or an error when s
// names no known type.
func ParseEducationType(s string) (EducationType, error) {
	for _, t := range EducationTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", eris.Errorf("model: unknown education type %q", s)
}

// SalaryCurve holds annual compensation at three anchor years.
type SalaryCurve struct {
	Year1  float64 `json:"year1" yaml:"year1"`
	Year5  float64 `json:"year5" yaml:"year5"`
	Year10 float64 `json:"year10" yaml:"year10"`
}

// Scale returns a copy of the curve with every anchor multiplied by f.
func (c SalaryCurve) Scale(f float64) SalaryCurve {
	return SalaryCurve{
		Year1:  c.Year1 * f,
		Year5:  c.Year5 * f,
		Year10: c.Year10 * f,
	}
}

// EducationPath is a fully specified education option. Paths are loaded
// from reference data and never modified afterwards.
type EducationPath struct {
	Key              string      `json:"key,omitempty" yaml:"key,omitempty"`
	Name             string      `json:"name" yaml:"name"`
	TotalCost        float64     `json:"totalCost" yaml:"totalCost"`
	DurationMonths   int         `json:"duration" yaml:"duration"`
	Salary           SalaryCurve `json:"salary" yaml:"salary"`
	EmploymentRate   float64     `json:"employmentRate" yaml:"employmentRate"`
	Risk             string      `json:"risk" yaml:"risk"`
	AutomationRisk   *int        `json:"automationRisk,omitempty" yaml:"automationRisk,omitempty"`
	AutomationDetail string      `json:"automationRiskNarrative,omitempty" yaml:"automationRiskNarrative,omitempty"`
	JobSecurity      *int        `json:"jobSecurityScore,omitempty" yaml:"jobSecurityScore,omitempty"`
	BrutalTruth      string      `json:"brutalTruth,omitempty" yaml:"brutalTruth,omitempty"`
}

// Triple is a (type, field, program) taxonomy selection.
type Triple struct {
	Type    EducationType `json:"type" yaml:"type"`
	Field   string        `json:"field" yaml:"field"`
	Program string        `json:"program" yaml:"program"`
}

// Complete reports whether every level of the triple is set.
func (t Triple) Complete() bool {
	return t.Type != "" && t.Field != "" && t.Program != ""
}

// String renders the triple as "type.field.program", the form used as the
// key of the pathMappings table.
func (t Triple) String() string {
	return string(t.Type) + "." + t.Field + "." + t.Program
}

// ParseTriple splits a "type.field.program" mapping key.
func ParseTriple(s string) (Triple, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Triple{}, eris.Errorf("model: mapping key %q must have form type.field.program", s)
	}
	et, err := ParseEducationType(parts[0])
	if err != nil {
		return Triple{}, err
	}
	if parts[1] == "" || parts[2] == "" {
		return Triple{}, eris.Errorf("model: mapping key %q has an empty level", s)
	}
	return Triple{Type: et, Field: parts[1], Program: parts[2]}, nil
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
