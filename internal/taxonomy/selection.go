package taxonomy

import "github.com/sells-group/roi-cli/internal/model"

// Selection is the stepped selection state behind a path picker. Choosing a
// value at one level clears every deeper level, and PathKey is only set
// while the three levels form a valid triple.
type Selection struct {
	Type    model.EducationType `json:"type,omitempty"`
	Field   string              `json:"field,omitempty"`
	Program string              `json:"program,omitempty"`
	PathKey string              `json:"path,omitempty"`
}

// SelectionFromKey re-hydrates a Selection from a stored path key.
func (r *Resolver) SelectionFromKey(key string) (Selection, bool) {
	t, ok := r.Unresolve(key)
	if !ok {
		return Selection{}, false
	}
	return Selection{Type: t.Type, Field: t.Field, Program: t.Program, PathKey: key}, true
}

// SelectType sets the education type and clears field, program and key.
func (r *Resolver) SelectType(_ Selection, t model.EducationType) Selection {
	return Selection{Type: t}
}

// SelectField sets the field, clears program and key.
func (r *Resolver) SelectField(s Selection, field string) Selection {
	return Selection{Type: s.Type, Field: field}
}

// SelectProgram sets the program and resolves the key when the triple is
// valid.
func (r *Resolver) SelectProgram(s Selection, program string) Selection {
	next := Selection{Type: s.Type, Field: s.Field, Program: program}
	if key, ok := r.Resolve(next.Triple()); ok {
		next.PathKey = key
	}
	return next
}

// Triple returns the selection as a taxonomy triple.
func (s Selection) Triple() model.Triple {
	return model.Triple{Type: s.Type, Field: s.Field, Program: s.Program}
}

// Complete reports whether the selection resolved to a path.
func (s Selection) Complete() bool {
	return s.PathKey != ""
}
