package taxonomy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/roi-cli/internal/model"
)

func TestTree_LeavesCoverEveryMapping(t *testing.T) {
	t.Parallel()
	r, ds := newTestResolver(t)

	got := make(map[model.Triple]string)
	for _, tn := range r.Tree() {
		for _, fn := range tn.Children {
			for _, pn := range fn.Children {
				require.Empty(t, pn.Children)
				triple := model.Triple{Type: model.EducationType(tn.Value), Field: fn.Value, Program: pn.Value}
				got[triple] = pn.PathKey
			}
		}
	}

	if diff := cmp.Diff(ds.Mappings(), got); diff != "" {
		t.Errorf("tree leaves mismatch (-want +got):\n%s", diff)
	}
}

func TestTree_CollegeTech(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t)

	var tech *Node
	for _, tn := range r.Tree() {
		if tn.Value != string(model.EducationCollege) {
			continue
		}
		for i := range tn.Children {
			if tn.Children[i].Value == "tech" {
				tech = &tn.Children[i]
			}
		}
	}
	require.NotNil(t, tech)
	assert.Empty(t, tech.PathKey)

	var keys []string
	for _, p := range tech.Children {
		keys = append(keys, p.PathKey)
	}
	assert.Contains(t, keys, "college_tech")
}
