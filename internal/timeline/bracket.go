package timeline

import (
	"sort"

	"github.com/mkellerhals/opline/internal/domain"
)

// Row is one line of the flat-list view, carrying the pair group key shared
// by both halves of a declared milestone pair. Unpaired rows have an empty
// PairGroup.
type Row struct {
	Index     int
	ItemID    string
	Label     string
	PairGroup string
}

// Bracket is a vertical span connecting the two halves of a pair in the flat
// list, assigned to a horizontal lane so simultaneous brackets never overlap.
type Bracket struct {
	Group string
	Start int
	End   int
	Lane  int
	Color string
}

const (
	bracketLaneWidth = 14
	bracketAreaBase  = 8

	bracketIssueColor = "#ef4444"
)

// bracketPalette colors brackets per pair group, cycling when a list carries
// more groups than the palette.
var bracketPalette = []string{"#3b82f6", "#14b8a6", "#8b5cf6", "#f59e0b", "#22c55e"}

// FlattenRows projects a render list into flat rows for the bracket view.
// The pair group key is the start half's milestone id, so both halves of a
// pair share one group.
func FlattenRows(blocks []Block) []Row {
	occ := flattenOccurrences(blocks)
	rows := make([]Row, 0, len(occ))
	for _, o := range occ {
		group := ""
		if o.Milestone.IsPaired() {
			if o.Milestone.PairPosition == domain.PairStart {
				group = o.Milestone.ID
			} else {
				group = *o.Milestone.PairWithID
			}
		}
		rows = append(rows, Row{
			Index:     o.Position,
			ItemID:    o.ItemID,
			Label:     o.Milestone.Label(),
			PairGroup: group,
		})
	}
	return rows
}

// ComputeBracketData finds, per pair group with both halves present, the row
// span to bracket, colors it (red when the span is flagged as an ordering
// issue), and assigns non-overlapping lanes greedily: intervals sorted by
// start index each take the lowest lane whose previous interval has ended.
func ComputeBracketData(rows []Row, pairIssues map[string]bool) []Bracket {
	type span struct {
		group      string
		start, end int
		count      int
		flagged    bool
		firstSeen  int
	}
	spans := make(map[string]*span)
	order := 0
	for _, r := range rows {
		if r.PairGroup == "" {
			continue
		}
		s, ok := spans[r.PairGroup]
		if !ok {
			s = &span{group: r.PairGroup, start: r.Index, end: r.Index, firstSeen: order}
			order++
			spans[r.PairGroup] = s
		}
		if r.Index < s.start {
			s.start = r.Index
		}
		if r.Index > s.end {
			s.end = r.Index
		}
		s.count++
		if pairIssues[r.ItemID] {
			s.flagged = true
		}
	}

	var list []*span
	for _, s := range spans {
		// A lone half has nothing to connect.
		if s.count < 2 {
			continue
		}
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].start != list[j].start {
			return list[i].start < list[j].start
		}
		if list[i].end != list[j].end {
			return list[i].end < list[j].end
		}
		return list[i].firstSeen < list[j].firstSeen
	})

	brackets := make([]Bracket, 0, len(list))
	var laneEnds []int
	for _, s := range list {
		lane := -1
		for l, end := range laneEnds {
			if end < s.start {
				lane = l
				break
			}
		}
		if lane == -1 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, 0)
		}
		laneEnds[lane] = s.end

		color := bracketPalette[s.firstSeen%len(bracketPalette)]
		if s.flagged {
			color = bracketIssueColor
		}
		brackets = append(brackets, Bracket{
			Group: s.group,
			Start: s.start,
			End:   s.end,
			Lane:  lane,
			Color: color,
		})
	}
	return brackets
}

// ComputeBracketAreaWidth returns the pixel width needed to draw the maximum
// lane count found, or zero when there is nothing to draw.
func ComputeBracketAreaWidth(brackets []Bracket) int {
	maxLane := -1
	for _, b := range brackets {
		if b.Lane > maxLane {
			maxLane = b.Lane
		}
	}
	if maxLane < 0 {
		return 0
	}
	return bracketAreaBase + (maxLane+1)*bracketLaneWidth
}
