package formatter

import (
	"strings"
	"testing"

	"github.com/mkellerhals/opline/internal/domain"
	"github.com/mkellerhals/opline/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewBlocks(t *testing.T) ([]timeline.Block, []domain.Milestone) {
	t.Helper()
	phase := domain.Phase{ID: "p1", Name: "intra-op", ColorKey: "blue", DisplayOrder: 20}
	startID, endID := "ms-start", "ms-end"
	milestones := []domain.Milestone{
		{ID: startID, Name: "anesthesia-start", PairWithID: &endID, PairPosition: domain.PairStart},
		{ID: endID, Name: "anesthesia-end", PairWithID: &startID, PairPosition: domain.PairEnd},
	}
	items := []domain.TemplateItem{
		{ID: "it-1", TemplateID: "t", MilestoneID: startID, PhaseID: &phase.ID, DisplayOrder: 1},
		{ID: "it-2", TemplateID: "t", MilestoneID: endID, PhaseID: &phase.ID, DisplayOrder: 2},
	}
	blocks := timeline.BuildRenderList(items, []domain.Phase{phase}, milestones, timeline.Options{})
	return blocks, milestones
}

func TestRenderTimeline_BasicStructure(t *testing.T) {
	blocks, milestones := previewBlocks(t)
	issues := timeline.DetectPairOrderIssues(blocks, milestones)
	rows := timeline.FlattenRows(blocks)
	brackets := timeline.ComputeBracketData(rows, issues)

	out := RenderTimeline(blocks, brackets, issues)

	assert.Contains(t, out, "INTRA-OP (2)")
	assert.Contains(t, out, "anesthesia-start")
	assert.Contains(t, out, "anesthesia-end")
	assert.Contains(t, out, "· · ·")
	assert.NotContains(t, out, "pair out of order")

	// One pair means one bracket lane in the gutter.
	require.Len(t, brackets, 1)
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
}

func TestRenderTimeline_FlagsReversedPair(t *testing.T) {
	phase := domain.Phase{ID: "p1", Name: "intra-op", ColorKey: "blue", DisplayOrder: 20}
	startID, endID := "ms-start", "ms-end"
	milestones := []domain.Milestone{
		{ID: startID, Name: "anesthesia-start", PairWithID: &endID, PairPosition: domain.PairStart},
		{ID: endID, Name: "anesthesia-end", PairWithID: &startID, PairPosition: domain.PairEnd},
	}
	items := []domain.TemplateItem{
		{ID: "it-1", TemplateID: "t", MilestoneID: endID, PhaseID: &phase.ID, DisplayOrder: 1},
		{ID: "it-2", TemplateID: "t", MilestoneID: startID, PhaseID: &phase.ID, DisplayOrder: 2},
	}
	blocks := timeline.BuildRenderList(items, []domain.Phase{phase}, milestones, timeline.Options{})
	issues := timeline.DetectPairOrderIssues(blocks, milestones)
	brackets := timeline.ComputeBracketData(timeline.FlattenRows(blocks), issues)

	out := RenderTimeline(blocks, brackets, issues)
	assert.Contains(t, out, "pair out of order")
}

func TestRenderTimeline_GutterLinesAlign(t *testing.T) {
	blocks, milestones := previewBlocks(t)
	issues := timeline.DetectPairOrderIssues(blocks, milestones)
	brackets := timeline.ComputeBracketData(timeline.FlattenRows(blocks), issues)

	out := RenderTimeline(blocks, brackets, issues)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header + 2 milestone rows + drop zone
	assert.Len(t, lines, 4)
}

func TestRenderPhaseTree(t *testing.T) {
	parentID := "p1"
	nodes := timeline.BuildPhaseTree([]domain.Phase{
		{ID: parentID, Name: "intra-op", ColorKey: "blue", DisplayOrder: 20},
		{ID: "p2", Name: "exposure", ColorKey: "teal", DisplayOrder: 21, ParentPhaseID: &parentID},
	})

	out := RenderPhaseTree(nodes)
	assert.Contains(t, out, "intra-op")
	assert.Contains(t, out, "exposure")
	assert.Contains(t, out, "└─")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"NAME", "COLOR"}, [][]string{
		{"pre-op", "teal"},
		{"intra-op", "blue"},
	})
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "pre-op")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
}
