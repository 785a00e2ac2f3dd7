package service

import (
	"context"

	"github.com/mkellerhals/opline/internal/domain"
	"github.com/mkellerhals/opline/internal/timeline"
)

type MilestoneService interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	List(ctx context.Context) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error

	// Pair links two milestones as a start/end pair. Both sides are
	// updated in one transaction; any prior pairing on either side is
	// dissolved first.
	Pair(ctx context.Context, startID, endID string) error
	Unpair(ctx context.Context, id string) error
}

type PhaseService interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	List(ctx context.Context) ([]*domain.Phase, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	Delete(ctx context.Context, id string) error
}

// TemplatePreview is the fully resolved render model for one template:
// the ordered block list plus pair diagnostics and bracket layout.
type TemplatePreview struct {
	Template     *domain.Template
	Blocks       []timeline.Block
	Rows         []timeline.Row
	PairIssues   map[string]bool
	Brackets     []timeline.Bracket
	BracketWidth int
}

type TemplateService interface {
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	GetDefault(ctx context.Context) (*domain.Template, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Template, error)
	Update(ctx context.Context, t *domain.Template) error
	SetDefault(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	AddItem(ctx context.Context, templateID, milestoneID string, phaseID *string) (*domain.TemplateItem, error)
	MoveItem(ctx context.Context, itemID string, phaseID *string, displayOrder int) error
	RemoveItem(ctx context.Context, itemID string) error
	SetBlockOrder(ctx context.Context, templateID, phaseID string, itemIDs []string) error
	SetSubPhaseParent(ctx context.Context, templateID, subPhaseID string, parentID *string) error

	Preview(ctx context.Context, templateID string) (*TemplatePreview, error)
}

// ResolvedTemplate reports which template applies to a case and why.
type ResolvedTemplate struct {
	Template *domain.Template
	// Source is "override", "procedure", or "facility".
	Source string
}

type AssignmentService interface {
	AssignProcedureDefault(ctx context.Context, templateID, procedureTypeID string) error
	AssignSurgeonOverride(ctx context.Context, templateID, procedureTypeID, surgeonID string) error
	Unassign(ctx context.Context, procedureTypeID string, surgeonID *string) error
	List(ctx context.Context) ([]*domain.TemplateAssignment, error)

	// Resolve picks the template for a case: surgeon override first, then
	// the procedure default, then the facility-wide default template.
	Resolve(ctx context.Context, procedureTypeID string, surgeonID *string) (*ResolvedTemplate, error)
}

type ProcedureTypeService interface {
	Create(ctx context.Context, p *domain.ProcedureType) error
	GetByID(ctx context.Context, id string) (*domain.ProcedureType, error)
	List(ctx context.Context) ([]*domain.ProcedureType, error)
	Update(ctx context.Context, p *domain.ProcedureType) error
	Delete(ctx context.Context, id string) error
}

type SurgeonService interface {
	Create(ctx context.Context, s *domain.Surgeon) error
	GetByID(ctx context.Context, id string) (*domain.Surgeon, error)
	List(ctx context.Context) ([]*domain.Surgeon, error)
	Update(ctx context.Context, s *domain.Surgeon) error
	Delete(ctx context.Context, id string) error
}
