package repository

import (
	"context"

	"github.com/mkellerhals/opline/internal/domain"
)

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	List(ctx context.Context) ([]*domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	List(ctx context.Context) ([]*domain.Phase, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Phase, error)
	Update(ctx context.Context, p *domain.Phase) error
	Delete(ctx context.Context, id string) error
}

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	GetDefault(ctx context.Context) (*domain.Template, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Template, error)
	Update(ctx context.Context, t *domain.Template) error
	ClearDefault(ctx context.Context) error
	Delete(ctx context.Context, id string) error

	AddItem(ctx context.Context, it *domain.TemplateItem) error
	GetItem(ctx context.Context, id string) (*domain.TemplateItem, error)
	ListItems(ctx context.Context, templateID string) ([]*domain.TemplateItem, error)
	UpdateItem(ctx context.Context, it *domain.TemplateItem) error
	DeleteItem(ctx context.Context, id string) error
}

type ProcedureTypeRepo interface {
	Create(ctx context.Context, p *domain.ProcedureType) error
	GetByID(ctx context.Context, id string) (*domain.ProcedureType, error)
	List(ctx context.Context) ([]*domain.ProcedureType, error)
	Update(ctx context.Context, p *domain.ProcedureType) error
	Delete(ctx context.Context, id string) error
}

type SurgeonRepo interface {
	Create(ctx context.Context, s *domain.Surgeon) error
	GetByID(ctx context.Context, id string) (*domain.Surgeon, error)
	List(ctx context.Context) ([]*domain.Surgeon, error)
	Update(ctx context.Context, s *domain.Surgeon) error
	Delete(ctx context.Context, id string) error
}

type AssignmentRepo interface {
	Upsert(ctx context.Context, a *domain.TemplateAssignment) error
	Delete(ctx context.Context, procedureTypeID string, surgeonID *string) error
	List(ctx context.Context) ([]*domain.TemplateAssignment, error)
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.TemplateAssignment, error)
	GetDefault(ctx context.Context, procedureTypeID string) (*domain.TemplateAssignment, error)
	GetOverride(ctx context.Context, procedureTypeID, surgeonID string) (*domain.TemplateAssignment, error)
}
