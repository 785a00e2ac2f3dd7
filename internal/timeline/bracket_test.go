package timeline

import (
	"testing"

	"github.com/mkellerhals/opline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairRows(group string, start, end int) []Row {
	return []Row{
		{Index: start, ItemID: "it-" + group + "-s", PairGroup: group},
		{Index: end, ItemID: "it-" + group + "-e", PairGroup: group},
	}
}

func TestComputeBracketData_LaneAssignment(t *testing.T) {
	// Ranges [0,5] and [1,3] overlap and need distinct lanes; [6,8] is
	// disjoint from both and reuses lane 0.
	var rows []Row
	rows = append(rows, pairRows("g1", 0, 5)...)
	rows = append(rows, pairRows("g2", 1, 3)...)
	rows = append(rows, pairRows("g3", 6, 8)...)

	brackets := ComputeBracketData(rows, nil)

	require.Len(t, brackets, 3)
	byGroup := make(map[string]Bracket, 3)
	for _, b := range brackets {
		byGroup[b.Group] = b
	}

	assert.Equal(t, 0, byGroup["g1"].Lane)
	assert.Equal(t, 1, byGroup["g2"].Lane, "overlapping ranges need different lanes")
	assert.Equal(t, 0, byGroup["g3"].Lane, "disjoint range reuses the lowest lane")

	assert.Equal(t, 0, byGroup["g1"].Start)
	assert.Equal(t, 5, byGroup["g1"].End)
}

func TestComputeBracketData_SharedIndexCountsAsOverlap(t *testing.T) {
	var rows []Row
	rows = append(rows, pairRows("g1", 0, 3)...)
	rows = append(rows, pairRows("g2", 3, 6)...)

	brackets := ComputeBracketData(rows, nil)

	require.Len(t, brackets, 2)
	assert.NotEqual(t, brackets[0].Lane, brackets[1].Lane,
		"ranges touching at an index overlap there")
}

func TestComputeBracketData_IssueColorsRed(t *testing.T) {
	var rows []Row
	rows = append(rows, pairRows("g1", 0, 2)...)
	rows = append(rows, pairRows("g2", 4, 6)...)

	brackets := ComputeBracketData(rows, map[string]bool{"it-g2-s": true})

	byGroup := make(map[string]Bracket, 2)
	for _, b := range brackets {
		byGroup[b.Group] = b
	}
	assert.Equal(t, bracketIssueColor, byGroup["g2"].Color)
	assert.NotEqual(t, bracketIssueColor, byGroup["g1"].Color)
}

func TestComputeBracketData_LoneHalfSkipped(t *testing.T) {
	rows := []Row{
		{Index: 0, ItemID: "it-1", PairGroup: "g1"},
		{Index: 1, ItemID: "it-2", PairGroup: ""},
	}

	assert.Empty(t, ComputeBracketData(rows, nil))
}

func TestComputeBracketAreaWidth(t *testing.T) {
	assert.Equal(t, 0, ComputeBracketAreaWidth(nil))

	one := []Bracket{{Lane: 0}}
	two := []Bracket{{Lane: 0}, {Lane: 1}, {Lane: 0}}
	assert.Equal(t, bracketAreaBase+bracketLaneWidth, ComputeBracketAreaWidth(one))
	assert.Equal(t, bracketAreaBase+2*bracketLaneWidth, ComputeBracketAreaWidth(two))
}

func TestFlattenRows_PairGroupSharedAcrossHalves(t *testing.T) {
	phases := []domain.Phase{makePhase("ph-1", "Surgical", 1)}
	pStart, pEnd := makePair("ms-ps", "Perfusion Start", "ms-pe", "Perfusion End")
	solo := makeMilestone("ms-x", "X")
	milestones := []domain.Milestone{pStart, pEnd, solo}
	items := []domain.TemplateItem{
		makeItem("it-1", "ms-ps", "ph-1", 1),
		makeItem("it-2", "ms-x", "ph-1", 2),
		makeItem("it-3", "ms-pe", "ph-1", 3),
	}

	blocks := BuildRenderList(items, phases, milestones, Options{})
	rows := FlattenRows(blocks)

	require.Len(t, rows, 3)
	assert.Equal(t, "ms-ps", rows[0].PairGroup, "start half keys the group by its own id")
	assert.Equal(t, "", rows[1].PairGroup)
	assert.Equal(t, "ms-ps", rows[2].PairGroup, "end half shares the start half's group")
	assert.Equal(t, []int{0, 1, 2}, []int{rows[0].Index, rows[1].Index, rows[2].Index})
}
