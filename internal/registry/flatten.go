package registry

import "github.com/sells-group/roi-cli/internal/model"

// Flatten derives the legacy flat key -> path table from the taxonomy and
// pathMappings. Mappings that point at a missing leaf are skipped; Validate
// reports them.
func Flatten(doc Document) map[string]model.EducationPath {
	out := make(map[string]model.EducationPath, len(doc.PathMappings))
	for raw, key := range doc.PathMappings {
		t, err := model.ParseTriple(raw)
		if err != nil {
			continue
		}
		p, ok := leaf(doc, t)
		if !ok {
			continue
		}
		p.Key = key
		out[key] = p
	}
	return out
}

// WithLegacyPaths returns a copy of doc whose educationPaths table is the
// derived flattening, for consumers that still read the flat form.
func WithLegacyPaths(doc Document) Document {
	doc.EducationPaths = Flatten(doc)
	return doc
}
