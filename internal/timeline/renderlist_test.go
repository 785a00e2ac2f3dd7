package timeline

import (
	"testing"

	"github.com/mkellerhals/opline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func makePhase(id, name string, order int) domain.Phase {
	return domain.Phase{ID: id, Name: name, DisplayName: name, ColorKey: "blue", DisplayOrder: order}
}

func makeSubPhase(id, name string, order int, parentID string) domain.Phase {
	p := makePhase(id, name, order)
	p.ParentPhaseID = strPtr(parentID)
	return p
}

func makeMilestone(id, name string) domain.Milestone {
	return domain.Milestone{ID: id, Name: name, DisplayName: name}
}

func makeItem(id, milestoneID, phaseID string, order int) domain.TemplateItem {
	it := domain.TemplateItem{ID: id, TemplateID: "tpl-1", MilestoneID: milestoneID, DisplayOrder: order}
	if phaseID != "" {
		it.PhaseID = strPtr(phaseID)
	}
	return it
}

func kinds(blocks []Block) []BlockKind {
	out := make([]BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func TestBuildRenderList_ConcreteScenario(t *testing.T) {
	// Pre-Op and Surgical share the Incision milestone as a boundary.
	phases := []domain.Phase{
		makePhase("ph-preop", "Pre-Op", 1),
		makePhase("ph-surgical", "Surgical", 2),
	}
	milestones := []domain.Milestone{
		makeMilestone("ms-in", "Patient In"),
		makeMilestone("ms-incision", "Incision"),
		makeMilestone("ms-closure", "Closure"),
	}
	items := []domain.TemplateItem{
		makeItem("it-1", "ms-in", "ph-preop", 1),
		makeItem("it-2", "ms-incision", "ph-preop", 2),
		makeItem("it-3", "ms-incision", "ph-surgical", 1),
		makeItem("it-4", "ms-closure", "ph-surgical", 2),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{})

	require.Equal(t, []BlockKind{
		KindPhaseHeader,
		KindEdgeMilestone,
		KindSharedBoundary,
		KindDropZone,
		KindPhaseHeader,
		KindEdgeMilestone,
		KindDropZone,
	}, kinds(blocks))

	assert.Equal(t, "ph-preop", blocks[0].Phase.ID)
	assert.Equal(t, 2, blocks[0].ItemCount)

	assert.Equal(t, "ms-in", blocks[1].Milestone.ID)
	assert.Equal(t, EdgeStart, blocks[1].Edge)

	boundary := blocks[2]
	assert.Equal(t, "ms-incision", boundary.Milestone.ID)
	assert.Equal(t, "ph-preop", boundary.EndsPhase.ID)
	assert.Equal(t, "ph-surgical", boundary.StartsPhase.ID)
	assert.Equal(t, "it-2", boundary.EndsItem.ID)
	assert.Equal(t, "it-3", boundary.StartsItem.ID)

	assert.Equal(t, "ph-preop", blocks[3].Phase.ID)

	assert.Equal(t, "ph-surgical", blocks[4].Phase.ID)
	assert.Equal(t, "ms-closure", blocks[5].Milestone.ID)
	assert.Equal(t, EdgeEnd, blocks[5].Edge, "Closure keeps its end edge, no start edge is promoted")
	assert.Equal(t, "ph-surgical", blocks[6].Phase.ID)
}

func TestBuildRenderList_EdgeAndInteriorClassification(t *testing.T) {
	phases := []domain.Phase{makePhase("ph-1", "Surgical", 1)}
	milestones := []domain.Milestone{
		makeMilestone("ms-a", "A"),
		makeMilestone("ms-b", "B"),
		makeMilestone("ms-c", "C"),
	}
	items := []domain.TemplateItem{
		makeItem("it-3", "ms-c", "ph-1", 3),
		makeItem("it-1", "ms-a", "ph-1", 1),
		makeItem("it-2", "ms-b", "ph-1", 2),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{})

	require.Equal(t, []BlockKind{
		KindPhaseHeader,
		KindEdgeMilestone,
		KindInteriorMilestone,
		KindEdgeMilestone,
		KindDropZone,
	}, kinds(blocks))
	assert.Equal(t, "ms-a", blocks[1].Milestone.ID)
	assert.Equal(t, EdgeStart, blocks[1].Edge)
	assert.Equal(t, "ms-b", blocks[2].Milestone.ID)
	assert.Equal(t, "ms-c", blocks[3].Milestone.ID)
	assert.Equal(t, EdgeEnd, blocks[3].Edge)
}

func TestBuildRenderList_SingleItemPhaseIsStartEdge(t *testing.T) {
	phases := []domain.Phase{makePhase("ph-1", "Post-Op", 1)}
	milestones := []domain.Milestone{makeMilestone("ms-a", "Patient Out")}
	items := []domain.TemplateItem{makeItem("it-1", "ms-a", "ph-1", 1)}

	blocks := BuildRenderList(items, phases, milestones, Options{})

	require.Equal(t, []BlockKind{KindPhaseHeader, KindEdgeMilestone, KindDropZone}, kinds(blocks))
	assert.Equal(t, EdgeStart, blocks[1].Edge)
}

func TestBuildRenderList_SingleItemBoundaryTakesPrecedence(t *testing.T) {
	// Closing holds only the Closure milestone, which also starts Post-Op.
	phases := []domain.Phase{
		makePhase("ph-closing", "Closing", 1),
		makePhase("ph-postop", "Post-Op", 2),
	}
	milestones := []domain.Milestone{
		makeMilestone("ms-closure", "Closure"),
		makeMilestone("ms-out", "Patient Out"),
	}
	items := []domain.TemplateItem{
		makeItem("it-1", "ms-closure", "ph-closing", 1),
		makeItem("it-2", "ms-closure", "ph-postop", 1),
		makeItem("it-3", "ms-out", "ph-postop", 2),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{})

	require.Equal(t, []BlockKind{
		KindPhaseHeader,
		KindSharedBoundary,
		KindDropZone,
		KindPhaseHeader,
		KindEdgeMilestone,
		KindDropZone,
	}, kinds(blocks))
	assert.Equal(t, "ms-closure", blocks[1].Milestone.ID)
	assert.Equal(t, EdgeEnd, blocks[4].Edge)
}

func TestBuildRenderList_EmptyPhases(t *testing.T) {
	phases := []domain.Phase{
		makePhase("ph-1", "Pre-Op", 1),
		makePhase("ph-2", "Surgical", 2),
		makePhase("ph-3", "Post-Op", 3),
	}
	milestones := []domain.Milestone{makeMilestone("ms-a", "A")}
	items := []domain.TemplateItem{makeItem("it-1", "ms-a", "ph-1", 1)}

	t.Run("listed empty phase renders header and drop zone", func(t *testing.T) {
		blocks := BuildRenderList(items, phases, milestones, Options{
			EmptyPhaseIDs: map[string]bool{"ph-2": true},
		})
		require.Equal(t, []BlockKind{
			KindPhaseHeader, KindEdgeMilestone, KindDropZone,
			KindPhaseHeader, KindDropZone,
		}, kinds(blocks))
		assert.Equal(t, "ph-2", blocks[3].Phase.ID)
		assert.Equal(t, 0, blocks[3].ItemCount)
	})

	t.Run("unlisted empty phase is silently omitted", func(t *testing.T) {
		blocks := BuildRenderList(items, phases, milestones, Options{})
		require.Equal(t, []BlockKind{KindPhaseHeader, KindEdgeMilestone, KindDropZone}, kinds(blocks))
	})
}

func TestBuildRenderList_BoundarySpansExplicitEmptyPhase(t *testing.T) {
	// An explicitly-empty phase between two phases with items does not break
	// boundary adjacency, which is computed among phases with items.
	phases := []domain.Phase{
		makePhase("ph-1", "Pre-Op", 1),
		makePhase("ph-2", "Induction", 2),
		makePhase("ph-3", "Surgical", 3),
	}
	milestones := []domain.Milestone{
		makeMilestone("ms-a", "A"),
		makeMilestone("ms-b", "B"),
	}
	items := []domain.TemplateItem{
		makeItem("it-1", "ms-a", "ph-1", 1),
		makeItem("it-2", "ms-b", "ph-1", 2),
		makeItem("it-3", "ms-b", "ph-3", 1),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{
		EmptyPhaseIDs: map[string]bool{"ph-2": true},
	})

	require.Equal(t, []BlockKind{
		KindPhaseHeader, KindEdgeMilestone, KindSharedBoundary, KindDropZone,
		KindPhaseHeader, KindDropZone,
		KindPhaseHeader, KindDropZone,
	}, kinds(blocks))
	assert.Equal(t, "ph-1", blocks[2].EndsPhase.ID)
	assert.Equal(t, "ph-3", blocks[2].StartsPhase.ID)
}

func TestBuildRenderList_SameOrderPhasesNoBoundary(t *testing.T) {
	phases := []domain.Phase{
		makePhase("ph-1", "Alpha", 1),
		makePhase("ph-2", "Beta", 1),
	}
	milestones := []domain.Milestone{
		makeMilestone("ms-a", "A"),
		makeMilestone("ms-b", "B"),
	}
	items := []domain.TemplateItem{
		makeItem("it-1", "ms-a", "ph-1", 1),
		makeItem("it-2", "ms-b", "ph-1", 2),
		makeItem("it-3", "ms-b", "ph-2", 1),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{})

	// Stable tie keeps input order and emits plain edges on both sides.
	require.Equal(t, []BlockKind{
		KindPhaseHeader, KindEdgeMilestone, KindEdgeMilestone, KindDropZone,
		KindPhaseHeader, KindEdgeMilestone, KindDropZone,
	}, kinds(blocks))
	assert.Equal(t, "ph-1", blocks[0].Phase.ID)
	assert.Equal(t, "ph-2", blocks[4].Phase.ID)
}

func TestBuildRenderList_BlockOrderOverride(t *testing.T) {
	phases := []domain.Phase{makePhase("ph-1", "Surgical", 1)}
	milestones := []domain.Milestone{
		makeMilestone("ms-a", "A"),
		makeMilestone("ms-b", "B"),
		makeMilestone("ms-c", "C"),
	}
	items := []domain.TemplateItem{
		makeItem("it-1", "ms-a", "ph-1", 1),
		makeItem("it-2", "ms-b", "ph-1", 2),
		makeItem("it-3", "ms-c", "ph-1", 3),
	}

	t.Run("explicit order replaces display order", func(t *testing.T) {
		blocks := BuildRenderList(items, phases, milestones, Options{
			BlockOrder: map[string][]string{"ph-1": {"it-3", "it-1", "it-2"}},
		})
		require.Len(t, blocks, 5)
		assert.Equal(t, "ms-c", blocks[1].Milestone.ID)
		assert.Equal(t, EdgeStart, blocks[1].Edge)
		assert.Equal(t, "ms-a", blocks[2].Milestone.ID)
		assert.Equal(t, KindInteriorMilestone, blocks[2].Kind)
		assert.Equal(t, "ms-b", blocks[3].Milestone.ID)
		assert.Equal(t, EdgeEnd, blocks[3].Edge)
	})

	t.Run("stale override re-appends missing items in default order", func(t *testing.T) {
		blocks := BuildRenderList(items, phases, milestones, Options{
			BlockOrder: map[string][]string{"ph-1": {"it-2", "it-gone"}},
		})
		require.Len(t, blocks, 5)
		assert.Equal(t, "ms-b", blocks[1].Milestone.ID)
		assert.Equal(t, "ms-a", blocks[2].Milestone.ID)
		assert.Equal(t, "ms-c", blocks[3].Milestone.ID)
	})
}

func TestBuildRenderList_SubPhases(t *testing.T) {
	phases := []domain.Phase{
		makePhase("ph-surgical", "Surgical", 1),
		makeSubPhase("ph-graft", "Graft", 1, "ph-surgical"),
	}
	milestones := []domain.Milestone{
		makeMilestone("ms-a", "A"),
		makeMilestone("ms-b", "B"),
		makeMilestone("ms-g1", "Graft Start"),
		makeMilestone("ms-g2", "Graft End"),
	}
	items := []domain.TemplateItem{
		makeItem("it-1", "ms-a", "ph-surgical", 1),
		makeItem("it-2", "ms-b", "ph-surgical", 2),
		makeItem("it-3", "ms-g1", "ph-graft", 1),
		makeItem("it-4", "ms-g2", "ph-graft", 2),
	}

	t.Run("sub-phase renders nested after parent items by default", func(t *testing.T) {
		blocks := BuildRenderList(items, phases, milestones, Options{})
		require.Equal(t, []BlockKind{
			KindPhaseHeader, KindEdgeMilestone, KindEdgeMilestone, KindSubPhase, KindDropZone,
		}, kinds(blocks))
		sub := blocks[3]
		assert.Equal(t, "ph-graft", sub.Phase.ID)
		assert.Equal(t, "ph-surgical", sub.ParentPhase.ID)
		require.Len(t, sub.Members, 2)
		assert.Equal(t, "ms-g1", sub.Members[0].Milestone.ID)
		assert.Equal(t, "ms-g2", sub.Members[1].Milestone.ID)
		assert.Equal(t, 4, blocks[0].ItemCount, "header counts nested members too")
	})

	t.Run("block order interleaves the sub-phase between items", func(t *testing.T) {
		blocks := BuildRenderList(items, phases, milestones, Options{
			BlockOrder: map[string][]string{"ph-surgical": {"it-1", "ph-graft", "it-2"}},
		})
		require.Equal(t, []BlockKind{
			KindPhaseHeader, KindEdgeMilestone, KindSubPhase, KindEdgeMilestone, KindDropZone,
		}, kinds(blocks))
	})

	t.Run("sub-phase map overrides flat phase records", func(t *testing.T) {
		flat := []domain.Phase{
			makePhase("ph-surgical", "Surgical", 1),
			makePhase("ph-graft", "Graft", 2),
		}
		blocks := BuildRenderList(items, flat, milestones, Options{
			SubPhaseMap: map[string]string{"ph-graft": "ph-surgical"},
		})
		require.Equal(t, []BlockKind{
			KindPhaseHeader, KindEdgeMilestone, KindEdgeMilestone, KindSubPhase, KindDropZone,
		}, kinds(blocks))
	})

	t.Run("contradictory parentage flattens to top level", func(t *testing.T) {
		for name, badPhases := range map[string][]domain.Phase{
			"self-parent": {
				makePhase("ph-surgical", "Surgical", 1),
				makeSubPhase("ph-graft", "Graft", 2, "ph-graft"),
			},
			"unknown parent": {
				makePhase("ph-surgical", "Surgical", 1),
				makeSubPhase("ph-graft", "Graft", 2, "ph-nope"),
			},
		} {
			t.Run(name, func(t *testing.T) {
				blocks := BuildRenderList(items, badPhases, milestones, Options{})
				require.Equal(t, []BlockKind{
					KindPhaseHeader, KindEdgeMilestone, KindEdgeMilestone, KindDropZone,
					KindPhaseHeader, KindEdgeMilestone, KindEdgeMilestone, KindDropZone,
				}, kinds(blocks))
			})
		}
	})
}

func TestBuildRenderList_UnassignedSection(t *testing.T) {
	phases := []domain.Phase{makePhase("ph-1", "Pre-Op", 1)}
	milestones := []domain.Milestone{
		makeMilestone("ms-a", "A"),
		makeMilestone("ms-b", "B"),
		makeMilestone("ms-c", "C"),
	}
	items := []domain.TemplateItem{
		makeItem("it-1", "ms-a", "ph-1", 1),
		makeItem("it-3", "ms-c", "", 2),
		makeItem("it-2", "ms-b", "", 1),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{})

	require.Equal(t, []BlockKind{
		KindPhaseHeader, KindEdgeMilestone, KindDropZone,
		KindUnassignedHeader, KindUnassignedMilestone, KindUnassignedMilestone,
	}, kinds(blocks))
	assert.Equal(t, 2, blocks[3].Count)
	assert.Equal(t, "ms-b", blocks[4].Milestone.ID, "unassigned items sort by display order")
	assert.Equal(t, "ms-c", blocks[5].Milestone.ID)
}

func TestBuildRenderList_DanglingReferencesSkipped(t *testing.T) {
	phases := []domain.Phase{makePhase("ph-1", "Pre-Op", 1)}
	milestones := []domain.Milestone{makeMilestone("ms-a", "A")}
	items := []domain.TemplateItem{
		makeItem("it-1", "ms-a", "ph-1", 1),
		makeItem("it-2", "ms-unknown", "ph-1", 2),
		makeItem("it-3", "ms-a", "ph-unknown", 3),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{})

	require.Equal(t, []BlockKind{KindPhaseHeader, KindEdgeMilestone, KindDropZone}, kinds(blocks))
	assert.Equal(t, "it-1", blocks[1].Item.ID)
}

func TestBuildRenderList_RoundTripStability(t *testing.T) {
	phases := []domain.Phase{
		makePhase("ph-1", "Pre-Op", 1),
		makePhase("ph-2", "Surgical", 2),
		makeSubPhase("ph-sub", "Graft", 1, "ph-2"),
	}
	milestones := []domain.Milestone{
		makeMilestone("ms-a", "A"),
		makeMilestone("ms-b", "B"),
		makeMilestone("ms-c", "C"),
	}
	items := []domain.TemplateItem{
		makeItem("it-1", "ms-a", "ph-1", 1),
		makeItem("it-2", "ms-b", "ph-1", 2),
		makeItem("it-3", "ms-b", "ph-2", 1),
		makeItem("it-4", "ms-c", "ph-sub", 1),
		makeItem("it-5", "ms-a", "", 1),
	}
	itemsBefore := make([]domain.TemplateItem, len(items))
	copy(itemsBefore, items)

	first := BuildRenderList(items, phases, milestones, Options{})
	second := BuildRenderList(items, phases, milestones, Options{})

	assert.Equal(t, first, second, "identical inputs must produce deep-equal output")
	assert.Equal(t, itemsBefore, items, "inputs must not be mutated")
}
