package timeline

import "github.com/mkellerhals/opline/internal/domain"

// milestoneOccurrence is one milestone row in the flattened total order of a
// render list.
type milestoneOccurrence struct {
	Position  int
	ItemID    string
	Milestone domain.Milestone
}

// flattenOccurrences walks the render list and yields every milestone row in
// order: edge and interior rows, shared boundaries (once, at their inline
// position), sub-phase members in place, and unassigned rows at the end.
func flattenOccurrences(blocks []Block) []milestoneOccurrence {
	var occ []milestoneOccurrence
	pos := 0
	add := func(ms *domain.Milestone, itemID string) {
		if ms == nil {
			return
		}
		occ = append(occ, milestoneOccurrence{Position: pos, ItemID: itemID, Milestone: *ms})
		pos++
	}

	for _, b := range blocks {
		switch b.Kind {
		case KindEdgeMilestone, KindInteriorMilestone, KindUnassignedMilestone:
			id := ""
			if b.Item != nil {
				id = b.Item.ID
			}
			add(b.Milestone, id)
		case KindSharedBoundary:
			id := ""
			if b.EndsItem != nil {
				id = b.EndsItem.ID
			}
			add(b.Milestone, id)
		case KindSubPhase:
			for _, m := range b.Members {
				ms := m.Milestone
				add(&ms, m.Item.ID)
			}
		}
	}
	return occ
}

// DetectPairOrderIssues flags template items whose "end" pair half appears
// before its "start" half in the flattened render order. The returned set
// holds the offending end items' ids. Pairs with a half missing from the
// render list are never flagged.
func DetectPairOrderIssues(blocks []Block, milestones []domain.Milestone) map[string]bool {
	byID := make(map[string]domain.Milestone, len(milestones))
	for _, m := range milestones {
		byID[m.ID] = m
	}

	// First occurrence position and item id per milestone id.
	firstPos := make(map[string]int)
	firstItem := make(map[string]string)
	for _, o := range flattenOccurrences(blocks) {
		if _, seen := firstPos[o.Milestone.ID]; seen {
			continue
		}
		firstPos[o.Milestone.ID] = o.Position
		firstItem[o.Milestone.ID] = o.ItemID
	}

	issues := make(map[string]bool)
	for _, m := range milestones {
		if m.PairPosition != domain.PairEnd || !m.IsPaired() {
			continue
		}
		start, ok := byID[*m.PairWithID]
		if !ok {
			continue
		}
		endPos, endPresent := firstPos[m.ID]
		startPos, startPresent := firstPos[start.ID]
		if !endPresent || !startPresent {
			continue
		}
		if endPos < startPos {
			if id := firstItem[m.ID]; id != "" {
				issues[id] = true
			}
		}
	}
	return issues
}
