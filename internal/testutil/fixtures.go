package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mkellerhals/opline/internal/domain"
)

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithDisplayName(n string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.DisplayName = n
	}
}

func WithPair(partnerID string, pos domain.PairPosition) MilestoneOption {
	return func(m *domain.Milestone) {
		m.PairWithID = &partnerID
		m.PairPosition = pos
	}
}

func NewTestMilestone(name string, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC()
	m := &domain.Milestone{
		ID:           uuid.New().String(),
		Name:         name,
		PairPosition: domain.PairNone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewTestMilestonePair creates a linked start/end milestone pair.
func NewTestMilestonePair(startName, endName string) (*domain.Milestone, *domain.Milestone) {
	start := NewTestMilestone(startName)
	end := NewTestMilestone(endName)
	start.PairWithID = &end.ID
	start.PairPosition = domain.PairStart
	end.PairWithID = &start.ID
	end.PairPosition = domain.PairEnd
	return start, end
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithColorKey(k string) PhaseOption {
	return func(p *domain.Phase) {
		p.ColorKey = k
	}
}

func WithParentPhase(id string) PhaseOption {
	return func(p *domain.Phase) {
		p.ParentPhaseID = &id
	}
}

func WithPhaseDisplayName(n string) PhaseOption {
	return func(p *domain.Phase) {
		p.DisplayName = n
	}
}

func NewTestPhase(name string, displayOrder int, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC()
	p := &domain.Phase{
		ID:           uuid.New().String(),
		Name:         name,
		ColorKey:     "blue",
		DisplayOrder: displayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Template options
type TemplateOption func(*domain.Template)

func WithDefault() TemplateOption {
	return func(t *domain.Template) {
		t.IsDefault = true
	}
}

func WithInactive() TemplateOption {
	return func(t *domain.Template) {
		t.IsActive = false
	}
}

func WithBlockOrder(bo map[string][]string) TemplateOption {
	return func(t *domain.Template) {
		t.BlockOrder = bo
	}
}

func WithSubPhaseMap(sm map[string]string) TemplateOption {
	return func(t *domain.Template) {
		t.SubPhaseMap = sm
	}
}

func NewTestTemplate(name string, opts ...TemplateOption) *domain.Template {
	now := time.Now().UTC()
	t := &domain.Template{
		ID:        uuid.New().String(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TemplateItem options
type ItemOption func(*domain.TemplateItem)

func WithItemPhase(phaseID string) ItemOption {
	return func(it *domain.TemplateItem) {
		it.PhaseID = &phaseID
	}
}

func WithDisplayOrder(o int) ItemOption {
	return func(it *domain.TemplateItem) {
		it.DisplayOrder = o
	}
}

func NewTestItem(templateID, milestoneID string, opts ...ItemOption) *domain.TemplateItem {
	now := time.Now().UTC()
	it := &domain.TemplateItem{
		ID:          uuid.New().String(),
		TemplateID:  templateID,
		MilestoneID: milestoneID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

func NewTestProcedureType(name, specialty string) *domain.ProcedureType {
	now := time.Now().UTC()
	return &domain.ProcedureType{
		ID:        uuid.New().String(),
		Name:      name,
		Specialty: specialty,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestSurgeon(name, specialty string) *domain.Surgeon {
	now := time.Now().UTC()
	return &domain.Surgeon{
		ID:        uuid.New().String(),
		Name:      name,
		Specialty: specialty,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
