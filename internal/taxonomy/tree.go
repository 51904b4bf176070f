package taxonomy

import "github.com/sells-group/roi-cli/internal/model"

// Node is one entry of the taxonomy tree. Leaves carry the path key their
// triple resolves to.
type Node struct {
	Option
	PathKey  string `json:"path,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Tree returns the full type, field and program hierarchy. Programs with no
// path mapping are omitted so every leaf is selectable.
func (r *Resolver) Tree() []Node {
	var out []Node
	for _, t := range r.Types() {
		et := model.EducationType(t.Value)
		typeNode := Node{Option: t}
		for _, f := range r.Fields(et) {
			fieldNode := Node{Option: f}
			for _, p := range r.Programs(et, f.Value) {
				key, ok := r.Resolve(model.Triple{Type: et, Field: f.Value, Program: p.Value})
				if !ok {
					continue
				}
				fieldNode.Children = append(fieldNode.Children, Node{Option: p, PathKey: key})
			}
			typeNode.Children = append(typeNode.Children, fieldNode)
		}
		out = append(out, typeNode)
	}
	return out
}
