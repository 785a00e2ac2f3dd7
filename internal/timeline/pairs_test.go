package timeline

import (
	"testing"

	"github.com/mkellerhals/opline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePair(startID, startName, endID, endName string) (domain.Milestone, domain.Milestone) {
	start := makeMilestone(startID, startName)
	start.PairWithID = strPtr(endID)
	start.PairPosition = domain.PairStart
	end := makeMilestone(endID, endName)
	end.PairWithID = strPtr(startID)
	end.PairPosition = domain.PairEnd
	return start, end
}

func TestDetectPairOrderIssues_EndBeforeStart(t *testing.T) {
	phases := []domain.Phase{makePhase("ph-1", "Surgical", 1)}
	anesStart, anesEnd := makePair("ms-as", "Anesthesia Start", "ms-ae", "Anesthesia End")
	milestones := []domain.Milestone{anesStart, anesEnd}
	items := []domain.TemplateItem{
		makeItem("it-end", "ms-ae", "ph-1", 1),
		makeItem("it-start", "ms-as", "ph-1", 2),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{})
	issues := DetectPairOrderIssues(blocks, milestones)

	assert.True(t, issues["it-end"], "the end half placed first must be flagged")
	assert.False(t, issues["it-start"], "only the end item is flagged")
	assert.Len(t, issues, 1)
}

func TestDetectPairOrderIssues_CorrectOrderNotFlagged(t *testing.T) {
	phases := []domain.Phase{makePhase("ph-1", "Surgical", 1)}
	anesStart, anesEnd := makePair("ms-as", "Anesthesia Start", "ms-ae", "Anesthesia End")
	milestones := []domain.Milestone{anesStart, anesEnd}
	items := []domain.TemplateItem{
		makeItem("it-start", "ms-as", "ph-1", 1),
		makeItem("it-end", "ms-ae", "ph-1", 2),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{})

	assert.Empty(t, DetectPairOrderIssues(blocks, milestones))
}

func TestDetectPairOrderIssues_MissingHalfNotFlagged(t *testing.T) {
	phases := []domain.Phase{makePhase("ph-1", "Surgical", 1)}
	anesStart, anesEnd := makePair("ms-as", "Anesthesia Start", "ms-ae", "Anesthesia End")
	milestones := []domain.Milestone{anesStart, anesEnd}
	items := []domain.TemplateItem{
		makeItem("it-end", "ms-ae", "ph-1", 1),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{})

	assert.Empty(t, DetectPairOrderIssues(blocks, milestones),
		"a pair with an absent half has nothing to compare")
}

func TestDetectPairOrderIssues_OrderSpansPhasesAndSubPhases(t *testing.T) {
	// End half nested in an earlier sub-phase, start half in a later phase.
	phases := []domain.Phase{
		makePhase("ph-1", "Surgical", 1),
		makeSubPhase("ph-sub", "Graft", 1, "ph-1"),
		makePhase("ph-2", "Closing", 2),
	}
	pStart, pEnd := makePair("ms-ps", "Perfusion Start", "ms-pe", "Perfusion End")
	filler := makeMilestone("ms-x", "X")
	milestones := []domain.Milestone{pStart, pEnd, filler}
	items := []domain.TemplateItem{
		makeItem("it-x", "ms-x", "ph-1", 1),
		makeItem("it-end", "ms-pe", "ph-sub", 1),
		makeItem("it-start", "ms-ps", "ph-2", 1),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{})
	issues := DetectPairOrderIssues(blocks, milestones)

	require.Len(t, issues, 1)
	assert.True(t, issues["it-end"], "sub-phase members count in the total order")
}

func TestDetectPairOrderIssues_SyntheticRenderList(t *testing.T) {
	// Built directly from blocks, without the builder: milestone B (end,
	// paired with A) placed before A must flag B's item and only B's.
	a, b := makePair("ms-a", "A Start", "ms-b", "A End")
	milestones := []domain.Milestone{a, b}
	phase := makePhase("ph-1", "Surgical", 1)
	itemB := makeItem("it-b", "ms-b", "ph-1", 1)
	itemA := makeItem("it-a", "ms-a", "ph-1", 2)

	blocks := []Block{
		{Kind: KindPhaseHeader, Phase: &phase, ItemCount: 2},
		{Kind: KindEdgeMilestone, Phase: &phase, Milestone: &b, Item: &itemB, Edge: EdgeStart},
		{Kind: KindEdgeMilestone, Phase: &phase, Milestone: &a, Item: &itemA, Edge: EdgeEnd},
		{Kind: KindDropZone, Phase: &phase},
	}

	issues := DetectPairOrderIssues(blocks, milestones)

	assert.Equal(t, map[string]bool{"it-b": true}, issues)
}
