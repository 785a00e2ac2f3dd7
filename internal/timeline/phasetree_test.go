package timeline

import (
	"testing"

	"github.com/mkellerhals/opline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPhaseTree_GroupsAndSorts(t *testing.T) {
	phases := []domain.Phase{
		makePhase("ph-surgical", "Surgical", 2),
		makePhase("ph-preop", "Pre-Op", 1),
		makeSubPhase("ph-graft", "Graft", 2, "ph-surgical"),
		makeSubPhase("ph-prep", "Prep", 1, "ph-surgical"),
		makePhase("ph-postop", "Post-Op", 3),
	}

	tree := BuildPhaseTree(phases)

	require.Len(t, tree, 3)
	assert.Equal(t, "ph-preop", tree[0].Phase.ID)
	assert.Equal(t, "ph-surgical", tree[1].Phase.ID)
	assert.Equal(t, "ph-postop", tree[2].Phase.ID)

	require.Len(t, tree[1].Children, 2)
	assert.Equal(t, "ph-prep", tree[1].Children[0].ID)
	assert.Equal(t, "ph-graft", tree[1].Children[1].ID)
	assert.Empty(t, tree[0].Children)
}

func TestBuildPhaseTree_ContradictoryParentageFlattens(t *testing.T) {
	phases := []domain.Phase{
		makePhase("ph-top", "Top", 1),
		makeSubPhase("ph-self", "Self", 2, "ph-self"),
		makeSubPhase("ph-orphan", "Orphan", 3, "ph-missing"),
		makeSubPhase("ph-nested", "Nested", 4, "ph-top"),
		makeSubPhase("ph-deep", "Deep", 5, "ph-nested"),
	}

	tree := BuildPhaseTree(phases)

	// Self-parent, dangling parent, and a parent that is itself nested all
	// flatten to top level.
	ids := make([]string, len(tree))
	for i, n := range tree {
		ids[i] = n.Phase.ID
	}
	assert.Equal(t, []string{"ph-top", "ph-self", "ph-orphan", "ph-deep"}, ids)

	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "ph-nested", tree[0].Children[0].ID)
}

func TestBuildPhaseTree_Empty(t *testing.T) {
	assert.Empty(t, BuildPhaseTree(nil))
}

func TestColorFromKey(t *testing.T) {
	assert.Equal(t, "#3b82f6", ColorFromKey("blue").Hex)
	assert.Equal(t, "#14b8a6", ColorFromKey("teal").Hex)

	fallback := ColorFromKey("chartreuse")
	assert.Equal(t, "slate", fallback.Key)
	assert.Equal(t, "#64748b", fallback.Hex)
	assert.Equal(t, fallback, ColorFromKey(""))
}
