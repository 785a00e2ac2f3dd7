package timeline

import (
	"sort"

	"github.com/mkellerhals/opline/internal/domain"
)

// BuildRenderList turns a template's flat item list into the ordered,
// annotated block sequence the builder canvas and the preview render.
//
// The function is total over its inputs: items with dangling milestone or
// phase references are skipped, contradictory sub-phase parentage flattens to
// top level, and the inputs are never mutated. Identical inputs always
// produce deep-equal output.
//
// Shared boundaries (one milestone ending phase N and starting phase N+1)
// render inline as the terminal row of the ending phase's block, replacing
// both edge rows.
func BuildRenderList(
	items []domain.TemplateItem,
	phases []domain.Phase,
	milestones []domain.Milestone,
	opts Options,
) []Block {
	phaseCopies := make([]domain.Phase, len(phases))
	copy(phaseCopies, phases)
	phaseByID := make(map[string]*domain.Phase, len(phases))
	for i := range phaseCopies {
		phaseByID[phaseCopies[i].ID] = &phaseCopies[i]
	}

	msCopies := make([]domain.Milestone, len(milestones))
	copy(msCopies, milestones)
	msByID := make(map[string]*domain.Milestone, len(milestones))
	for i := range msCopies {
		msByID[msCopies[i].ID] = &msCopies[i]
	}

	parentOf := func(p *domain.Phase) string {
		candidate := ""
		if mapped, ok := opts.SubPhaseMap[p.ID]; ok {
			candidate = mapped
		} else if p.IsSubPhase() {
			candidate = *p.ParentPhaseID
		}
		if candidate == "" || candidate == p.ID {
			return ""
		}
		parent, ok := phaseByID[candidate]
		if !ok {
			return ""
		}
		// One level of nesting only: a nested parent flattens the child.
		if grand, ok := opts.SubPhaseMap[parent.ID]; ok && grand != "" {
			return ""
		}
		if _, mapped := opts.SubPhaseMap[parent.ID]; !mapped && parent.IsSubPhase() {
			return ""
		}
		return candidate
	}

	// Step 1: partition by phase, dropping dangling references.
	byPhase := make(map[string][]domain.TemplateItem)
	var unassigned []domain.TemplateItem
	for _, it := range items {
		if msByID[it.MilestoneID] == nil {
			continue
		}
		if it.PhaseID == nil || *it.PhaseID == "" {
			unassigned = append(unassigned, it)
			continue
		}
		if phaseByID[*it.PhaseID] == nil {
			continue
		}
		byPhase[*it.PhaseID] = append(byPhase[*it.PhaseID], it)
	}

	// Step 2: per-phase canonical order, then the manual override projection.
	finalItems := make(map[string][]domain.TemplateItem, len(byPhase))
	for pid, list := range byPhase {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].DisplayOrder < list[j].DisplayOrder
		})
		ids := make([]string, len(list))
		byItemID := make(map[string]domain.TemplateItem, len(list))
		for i, it := range list {
			ids[i] = it.ID
			byItemID[it.ID] = it
		}
		ordered := applyBlockOrder(ids, opts.BlockOrder[pid])
		final := make([]domain.TemplateItem, len(ordered))
		for i, id := range ordered {
			final[i] = byItemID[id]
		}
		finalItems[pid] = final
	}

	// Step 3: sub-phase children with items, grouped under their parent.
	childPhases := make(map[string][]*domain.Phase)
	for i := range phaseCopies {
		p := &phaseCopies[i]
		pid := parentOf(p)
		if pid == "" || len(finalItems[p.ID]) == 0 {
			continue
		}
		childPhases[pid] = append(childPhases[pid], p)
	}
	for pid := range childPhases {
		kids := childPhases[pid]
		sort.SliceStable(kids, func(i, j int) bool {
			return kids[i].DisplayOrder < kids[j].DisplayOrder
		})
	}

	// Visible top-level phases: own items, nested items, or explicitly empty.
	var tops []*domain.Phase
	for i := range phaseCopies {
		p := &phaseCopies[i]
		if parentOf(p) != "" {
			continue
		}
		if len(finalItems[p.ID]) > 0 || len(childPhases[p.ID]) > 0 || opts.EmptyPhaseIDs[p.ID] {
			tops = append(tops, p)
		}
	}
	sort.SliceStable(tops, func(i, j int) bool {
		return tops[i].DisplayOrder < tops[j].DisplayOrder
	})

	// Step 5: boundary detection between order-adjacent phases with items.
	type boundary struct {
		milestone  *domain.Milestone
		endPhase   *domain.Phase
		startPhase *domain.Phase
		endItem    domain.TemplateItem
		startItem  domain.TemplateItem
	}
	boundaryByEnd := make(map[string]*boundary)
	consumedStart := make(map[string]bool)

	var withItems []*domain.Phase
	for _, p := range tops {
		if len(finalItems[p.ID]) > 0 {
			withItems = append(withItems, p)
		}
	}
	for i := 0; i+1 < len(withItems); i++ {
		p, q := withItems[i], withItems[i+1]
		// Same-order phases are a stable-sort tie, not an adjacency.
		if p.DisplayOrder == q.DisplayOrder {
			continue
		}
		pItems := finalItems[p.ID]
		// A single item already consumed by the previous boundary cannot
		// also end this phase.
		if len(pItems) == 1 && consumedStart[p.ID] {
			continue
		}
		pLast := pItems[len(pItems)-1]
		qFirst := finalItems[q.ID][0]
		if pLast.MilestoneID != qFirst.MilestoneID {
			continue
		}
		boundaryByEnd[p.ID] = &boundary{
			milestone:  msByID[pLast.MilestoneID],
			endPhase:   p,
			startPhase: q,
			endItem:    pLast,
			startItem:  qFirst,
		}
		consumedStart[q.ID] = true
	}

	// Steps 2-6: emit phase blocks in display order.
	var out []Block
	for _, p := range tops {
		color := ColorFromKey(p.ColorKey)
		own := finalItems[p.ID]
		kids := childPhases[p.ID]

		count := len(own)
		for _, kid := range kids {
			count += len(finalItems[kid.ID])
		}
		out = append(out, Block{Kind: KindPhaseHeader, Phase: p, Color: color, ItemCount: count})

		// Slot order interleaves items and sub-phase blocks. Without an
		// override, sub-phases follow the parent's own items.
		slotIDs := make([]string, 0, len(own)+len(kids))
		itemIndex := make(map[string]int, len(own))
		for i, it := range own {
			slotIDs = append(slotIDs, it.ID)
			itemIndex[it.ID] = i
		}
		kidByID := make(map[string]*domain.Phase, len(kids))
		for _, kid := range kids {
			slotIDs = append(slotIDs, kid.ID)
			kidByID[kid.ID] = kid
		}
		ordered := applyBlockOrder(slotIDs, opts.BlockOrder[p.ID])

		for _, slotID := range ordered {
			if kid, ok := kidByID[slotID]; ok {
				out = append(out, buildSubPhaseBlock(kid, p, finalItems[kid.ID], msByID))
				continue
			}

			idx := itemIndex[slotID]
			it := own[idx]
			isFirst := idx == 0
			isLast := idx == len(own)-1

			// The first row of a phase whose start is consumed by the
			// previous boundary is already represented by that block.
			if isFirst && consumedStart[p.ID] {
				continue
			}
			if b := boundaryByEnd[p.ID]; b != nil && isLast {
				out = append(out, Block{
					Kind:        KindSharedBoundary,
					Milestone:   b.milestone,
					EndsPhase:   b.endPhase,
					StartsPhase: b.startPhase,
					EndsColor:   ColorFromKey(b.endPhase.ColorKey),
					StartsColor: ColorFromKey(b.startPhase.ColorKey),
					EndsItem:    itemPtr(b.endItem),
					StartsItem:  itemPtr(b.startItem),
				})
				continue
			}

			block := Block{
				Phase:     p,
				Color:     color,
				Milestone: msByID[it.MilestoneID],
				Item:      itemPtr(it),
			}
			switch {
			case isFirst:
				// A lone item counts as the start edge.
				block.Kind = KindEdgeMilestone
				block.Edge = EdgeStart
			case isLast:
				block.Kind = KindEdgeMilestone
				block.Edge = EdgeEnd
			default:
				block.Kind = KindInteriorMilestone
			}
			out = append(out, block)
		}

		out = append(out, Block{Kind: KindDropZone, Phase: p, Color: color})
	}

	// Step 7: unassigned section.
	if len(unassigned) > 0 {
		sort.SliceStable(unassigned, func(i, j int) bool {
			return unassigned[i].DisplayOrder < unassigned[j].DisplayOrder
		})
		out = append(out, Block{Kind: KindUnassignedHeader, Count: len(unassigned)})
		for _, it := range unassigned {
			out = append(out, Block{
				Kind:      KindUnassignedMilestone,
				Milestone: msByID[it.MilestoneID],
				Item:      itemPtr(it),
			})
		}
	}

	return out
}

func buildSubPhaseBlock(
	sub, parent *domain.Phase,
	items []domain.TemplateItem,
	msByID map[string]*domain.Milestone,
) Block {
	members := make([]SubPhaseMember, 0, len(items))
	for _, it := range items {
		ms := msByID[it.MilestoneID]
		if ms == nil {
			continue
		}
		members = append(members, SubPhaseMember{Milestone: *ms, Item: it})
	}
	return Block{
		Kind:        KindSubPhase,
		Phase:       sub,
		ParentPhase: parent,
		Color:       ColorFromKey(sub.ColorKey),
		Members:     members,
	}
}

func itemPtr(it domain.TemplateItem) *domain.TemplateItem {
	cp := it
	return &cp
}
