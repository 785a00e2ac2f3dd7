package domain

import "time"

// TemplateItem places one milestone inside a phase at a given position.
// A nil PhaseID leaves the milestone unassigned (it renders in the
// unassigned section of the builder canvas).
type TemplateItem struct {
	ID           string
	TemplateID   string
	MilestoneID  string
	PhaseID      *string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Template is a named, orderable assignment of milestones to phases,
// selectable per procedure type or per surgeon.
//
// BlockOrder is a persisted manual override of block ordering within a phase:
// phase id -> ordered list of block ids (template item ids and sub-phase ids
// mixed). SubPhaseMap records which phases render nested for this template:
// phase id -> parent phase id. Both are stored opaquely and interpreted only
// by the timeline package.
type Template struct {
	ID          string
	Name        string
	IsDefault   bool
	IsActive    bool
	BlockOrder  map[string][]string
	SubPhaseMap map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
