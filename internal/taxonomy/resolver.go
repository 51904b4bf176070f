// Package taxonomy turns stepped type/field/program selections into
// canonical path keys and back.
package taxonomy

import (
	"github.com/sells-group/roi-cli/internal/model"
	"github.com/sells-group/roi-cli/internal/registry"
)

// Option is a selectable taxonomy entry.
type Option struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// Resolver maps taxonomy triples to path keys using a Dataset. It is the
// single source of truth for whether a path exists.
type Resolver struct {
	ds *registry.Dataset
}

// NewResolver creates a Resolver over ds.
func NewResolver(ds *registry.Dataset) *Resolver {
	return &Resolver{ds: ds}
}

// Resolve returns the canonical path key for t. ok is false for incomplete
// or unknown triples.
func (r *Resolver) Resolve(t model.Triple) (string, bool) {
	if !t.Complete() {
		return "", false
	}
	return r.ds.KeyFor(t)
}

// Unresolve returns the triple that produced key.
func (r *Resolver) Unresolve(key string) (model.Triple, bool) {
	return r.ds.TripleFor(key)
}

// Exists reports whether key names a known path.
func (r *Resolver) Exists(key string) bool {
	_, ok := r.ds.Path(key)
	return ok
}

// PathKey returns the key the inputs refer to: Path when set, otherwise the
// key derived from Triple.
func (r *Resolver) PathKey(in model.CalculatorInputs) (string, bool) {
	if in.Path != "" {
		return in.Path, r.Exists(in.Path)
	}
	if in.Triple == nil {
		return "", false
	}
	return r.Resolve(*in.Triple)
}

// Types lists the education types present in the data.
func (r *Resolver) Types() []Option {
	var out []Option
	for _, t := range r.ds.Types() {
		node, _ := r.ds.Type(t)
		out = append(out, Option{Value: string(t), Name: node.Name})
	}
	return out
}

// Fields lists the fields under an education type, sorted by value.
func (r *Resolver) Fields(t model.EducationType) []Option {
	node, ok := r.ds.Type(t)
	if !ok {
		return nil
	}
	var out []Option
	for _, k := range model.SortedKeys(node.Fields) {
		out = append(out, Option{Value: k, Name: node.Fields[k].Name})
	}
	return out
}

// Programs lists the programs under a type and field, sorted by value.
func (r *Resolver) Programs(t model.EducationType, field string) []Option {
	node, ok := r.ds.Type(t)
	if !ok {
		return nil
	}
	fn, ok := node.Fields[field]
	if !ok {
		return nil
	}
	var out []Option
	for _, k := range model.SortedKeys(fn.Programs) {
		out = append(out, Option{Value: k, Name: fn.Programs[k].Name})
	}
	return out
}
