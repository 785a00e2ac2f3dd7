package timeline

import (
	"sort"

	"github.com/mkellerhals/opline/internal/domain"
)

// PhaseNode is one top-level phase with its directly nested sub-phases.
type PhaseNode struct {
	Phase    domain.Phase
	Children []domain.Phase
}

// BuildPhaseTree groups a flat phase list into top-level phases with at most
// one level of sub-phase nesting, both levels sorted by DisplayOrder with
// stable ties. Contradictory parentage (self-parent, unknown parent, or a
// parent that is itself nested) flattens the phase to top level.
func BuildPhaseTree(phases []domain.Phase) []PhaseNode {
	byID := make(map[string]domain.Phase, len(phases))
	for _, p := range phases {
		byID[p.ID] = p
	}

	parentOf := func(p domain.Phase) string {
		if !p.IsSubPhase() {
			return ""
		}
		pid := *p.ParentPhaseID
		if pid == p.ID {
			return ""
		}
		parent, ok := byID[pid]
		if !ok || parent.IsSubPhase() {
			return ""
		}
		return pid
	}

	var roots []domain.Phase
	children := make(map[string][]domain.Phase)
	for _, p := range phases {
		if pid := parentOf(p); pid != "" {
			children[pid] = append(children[pid], p)
		} else {
			roots = append(roots, p)
		}
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].DisplayOrder < roots[j].DisplayOrder
	})

	nodes := make([]PhaseNode, 0, len(roots))
	for _, root := range roots {
		kids := children[root.ID]
		sort.SliceStable(kids, func(i, j int) bool {
			return kids[i].DisplayOrder < kids[j].DisplayOrder
		})
		nodes = append(nodes, PhaseNode{Phase: root, Children: kids})
	}
	return nodes
}
