package timeline

import "github.com/mkellerhals/opline/internal/domain"

// BlockKind discriminates the variants of a render Block. The presentation
// layer switches on it and renders one visual row per block; it must not
// reclassify rows itself.
type BlockKind string

const (
	KindPhaseHeader         BlockKind = "phase-header"
	KindEdgeMilestone       BlockKind = "edge-milestone"
	KindInteriorMilestone   BlockKind = "interior-milestone"
	KindSharedBoundary      BlockKind = "shared-boundary"
	KindSubPhase            BlockKind = "sub-phase"
	KindDropZone            BlockKind = "drop-zone"
	KindUnassignedHeader    BlockKind = "unassigned-header"
	KindUnassignedMilestone BlockKind = "unassigned-milestone"
)

// Edge marks whether an edge milestone opens or closes its phase.
type Edge string

const (
	EdgeStart Edge = "start"
	EdgeEnd   Edge = "end"
)

// SubPhaseMember is one milestone row nested inside a sub-phase block.
type SubPhaseMember struct {
	Milestone domain.Milestone
	Item      domain.TemplateItem
}

// Block is one element of the ordered render list. Which fields are set
// depends on Kind:
//
//	phase-header        Phase, Color, ItemCount
//	edge-milestone      Phase, Color, Milestone, Item, Edge
//	interior-milestone  Phase, Color, Milestone, Item
//	shared-boundary     Milestone, EndsPhase/EndsColor/EndsItem,
//	                    StartsPhase/StartsColor/StartsItem
//	sub-phase           Phase (the sub-phase), ParentPhase, Color, Members
//	drop-zone           Phase, Color
//	unassigned-header   Count
//	unassigned-milestone Milestone, Item
type Block struct {
	Kind BlockKind

	Phase *domain.Phase
	Color PhaseColor

	ItemCount int

	Milestone *domain.Milestone
	Item      *domain.TemplateItem
	Edge      Edge

	EndsPhase   *domain.Phase
	StartsPhase *domain.Phase
	EndsColor   PhaseColor
	StartsColor PhaseColor
	EndsItem    *domain.TemplateItem
	StartsItem  *domain.TemplateItem

	ParentPhase *domain.Phase
	Members     []SubPhaseMember

	Count int
}

// Options carries the optional inputs of BuildRenderList.
type Options struct {
	// EmptyPhaseIDs lists phases with zero items that must still render an
	// empty header plus drop zone, so they stay valid drag targets.
	EmptyPhaseIDs map[string]bool

	// SubPhaseMap maps phase id -> parent phase id for phases that render
	// nested in this template, overriding or confirming Phase.ParentPhaseID.
	SubPhaseMap map[string]string

	// BlockOrder is the persisted manual ordering override per phase:
	// phase id -> ordered block ids (template item ids and sub-phase ids).
	BlockOrder map[string][]string
}
