package registry

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/roi-cli/internal/model"
)

// Validate checks the structural invariants of a reference Document:
//   - every taxonomy level names a known education type and has children;
//   - every leaf has sane attribute ranges;
//   - every pathMappings entry points at an existing leaf, every leaf is
//     mapped exactly once, and canonical keys are unique;
//   - school tiers and living costs cover their enums exactly;
//   - location multipliers are positive;
//   - viral comparisons reference known keys;
//   - a legacy educationPaths table, when present, equals Flatten(doc).
//
// All problems are collected into a single error.
func Validate(doc Document) error {
	var errs []string

	if len(doc.EducationTypes) == 0 {
		errs = append(errs, "educationTypes is empty")
	}
	for typeName, tn := range doc.EducationTypes {
		if _, err := model.ParseEducationType(typeName); err != nil {
			errs = append(errs, fmt.Sprintf("educationTypes: unknown type %q", typeName))
		}
		if len(tn.Fields) == 0 {
			errs = append(errs, fmt.Sprintf("educationTypes.%s has no fields", typeName))
		}
		for fieldName, fn := range tn.Fields {
			if len(fn.Programs) == 0 {
				errs = append(errs, fmt.Sprintf("educationTypes.%s.%s has no programs", typeName, fieldName))
			}
			for progName, p := range fn.Programs {
				where := typeName + "." + fieldName + "." + progName
				errs = append(errs, checkPath(where, p)...)
			}
		}
	}

	mapped := make(map[string]string, len(doc.PathMappings))
	keyOwners := make(map[string]string, len(doc.PathMappings))
	for raw, key := range doc.PathMappings {
		t, err := model.ParseTriple(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("pathMappings: %v", err))
			continue
		}
		if key == "" {
			errs = append(errs, fmt.Sprintf("pathMappings.%s: empty path key", raw))
			continue
		}
		if _, ok := leaf(doc, t); !ok {
			errs = append(errs, fmt.Sprintf("pathMappings.%s -> %s: no such taxonomy leaf", raw, key))
		}
		if prev, dup := keyOwners[key]; dup {
			errs = append(errs, fmt.Sprintf("pathMappings: key %s mapped from both %s and %s", key, prev, raw))
		}
		keyOwners[key] = raw
		mapped[t.String()] = key
	}
	for typeName, tn := range doc.EducationTypes {
		for fieldName, fn := range tn.Fields {
			for progName := range fn.Programs {
				where := typeName + "." + fieldName + "." + progName
				if _, ok := mapped[where]; !ok {
					errs = append(errs, fmt.Sprintf("educationTypes.%s: leaf has no pathMappings entry", where))
				}
			}
		}
	}

	for name, adj := range doc.SchoolTiers {
		if _, err := model.ParseSchoolTier(name); err != nil {
			errs = append(errs, fmt.Sprintf("schoolTiers: unknown tier %q", name))
		}
		if adj.CostMultiplier <= 0 {
			errs = append(errs, fmt.Sprintf("schoolTiers.%s: costMultiplier must be > 0", name))
		}
		if adj.SalaryBonus <= 0 {
			errs = append(errs, fmt.Sprintf("schoolTiers.%s: salaryBonus must be > 0", name))
		}
	}
	for _, t := range model.SchoolTiers {
		if _, ok := doc.SchoolTiers[string(t)]; !ok {
			errs = append(errs, fmt.Sprintf("schoolTiers: missing tier %q", t))
		}
	}

	for name, lc := range doc.LivingCosts {
		if _, err := model.ParseLivingSituation(name); err != nil {
			errs = append(errs, fmt.Sprintf("livingCosts: unknown living situation %q", name))
		}
		if lc.Monthly < 0 {
			errs = append(errs, fmt.Sprintf("livingCosts.%s: monthly must be >= 0", name))
		}
	}
	for _, l := range model.LivingSituations {
		if _, ok := doc.LivingCosts[string(l)]; !ok {
			errs = append(errs, fmt.Sprintf("livingCosts: missing living situation %q", l))
		}
	}

	for name, m := range doc.LocationMultipliers {
		if m <= 0 {
			errs = append(errs, fmt.Sprintf("locationMultipliers.%s: must be > 0", name))
		}
	}

	seenViral := make(map[string]bool, len(doc.ViralComparisons))
	for i, vc := range doc.ViralComparisons {
		if vc.ID == "" {
			errs = append(errs, fmt.Sprintf("viralComparisons[%d]: missing id", i))
		} else if seenViral[vc.ID] {
			errs = append(errs, fmt.Sprintf("viralComparisons[%d]: duplicate id %q", i, vc.ID))
		}
		seenViral[vc.ID] = true
		for _, key := range []string{vc.A, vc.B} {
			if _, ok := keyOwners[key]; !ok {
				errs = append(errs, fmt.Sprintf("viralComparisons[%d]: unknown path %q", i, key))
			}
		}
	}

	if len(doc.EducationPaths) > 0 {
		errs = append(errs, checkLegacy(doc)...)
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return eris.Errorf("registry: integrity check failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func checkPath(where string, p model.EducationPath) []string {
	var errs []string
	if p.Name == "" {
		errs = append(errs, where+": name is required")
	}
	if p.TotalCost < 0 {
		errs = append(errs, where+": totalCost must be >= 0")
	}
	if p.DurationMonths <= 0 {
		errs = append(errs, where+": duration must be > 0")
	}
	if p.Salary.Year1 < 0 || p.Salary.Year5 < 0 || p.Salary.Year10 < 0 {
		errs = append(errs, where+": salary anchors must be >= 0")
	}
	if p.EmploymentRate < 0 || p.EmploymentRate > 1 {
		errs = append(errs, where+": employmentRate must be within [0,1]")
	}
	if p.AutomationRisk != nil && (*p.AutomationRisk < 0 || *p.AutomationRisk > 100) {
		errs = append(errs, where+": automationRisk must be within [0,100]")
	}
	if p.JobSecurity != nil && (*p.JobSecurity < 0 || *p.JobSecurity > 100) {
		errs = append(errs, where+": jobSecurityScore must be within [0,100]")
	}
	return errs
}

// checkLegacy compares a hand-supplied flat table against the derived one.
func checkLegacy(doc Document) []string {
	var errs []string
	derived := Flatten(doc)
	for key, want := range derived {
		got, ok := doc.EducationPaths[key]
		if !ok {
			errs = append(errs, fmt.Sprintf("educationPaths: missing %s", key))
			continue
		}
		got.Key = key
		if !reflect.DeepEqual(got, want) {
			errs = append(errs, fmt.Sprintf("educationPaths.%s: differs from taxonomy leaf", key))
		}
	}
	for key := range doc.EducationPaths {
		if _, ok := derived[key]; !ok {
			errs = append(errs, fmt.Sprintf("educationPaths.%s: not reachable from pathMappings", key))
		}
	}
	return errs
}

func leaf(doc Document, t model.Triple) (model.EducationPath, bool) {
	tn, ok := doc.EducationTypes[string(t.Type)]
	if !ok {
		return model.EducationPath{}, false
	}
	fn, ok := tn.Fields[t.Field]
	if !ok {
		return model.EducationPath{}, false
	}
	p, ok := fn.Programs[t.Program]
	return p, ok
}
