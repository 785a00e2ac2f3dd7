package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkellerhals/opline/internal/domain"
	"github.com/mkellerhals/opline/internal/repository"
)

type phaseService struct {
	phases repository.PhaseRepo
}

func NewPhaseService(phases repository.PhaseRepo) PhaseService {
	return &phaseService{phases: phases}
}

func (s *phaseService) Create(ctx context.Context, p *domain.Phase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Name == "" {
		return fmt.Errorf("phase name is required")
	}
	if p.ColorKey == "" {
		p.ColorKey = "slate"
	}
	if !domain.ValidColorKeys[p.ColorKey] {
		return fmt.Errorf("unknown color key %q", p.ColorKey)
	}
	if err := s.checkParent(ctx, p); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.phases.Create(ctx, p)
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) List(ctx context.Context) ([]*domain.Phase, error) {
	return s.phases.List(ctx)
}

func (s *phaseService) ListChildren(ctx context.Context, parentID string) ([]*domain.Phase, error) {
	return s.phases.ListChildren(ctx, parentID)
}

func (s *phaseService) Update(ctx context.Context, p *domain.Phase) error {
	if p.ColorKey != "" && !domain.ValidColorKeys[p.ColorKey] {
		return fmt.Errorf("unknown color key %q", p.ColorKey)
	}
	if err := s.checkParent(ctx, p); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.phases.Update(ctx, p)
}

func (s *phaseService) Delete(ctx context.Context, id string) error {
	return s.phases.Delete(ctx, id)
}

// checkParent enforces single-level nesting: a sub-phase's parent must be a
// top-level phase, and a phase with children cannot itself become a sub-phase.
func (s *phaseService) checkParent(ctx context.Context, p *domain.Phase) error {
	if p.ParentPhaseID != nil {
		if *p.ParentPhaseID == p.ID {
			return fmt.Errorf("phase cannot be its own parent")
		}
		parent, err := s.phases.GetByID(ctx, *p.ParentPhaseID)
		if err != nil {
			return fmt.Errorf("resolving parent phase: %w", err)
		}
		if parent.IsSubPhase() {
			return fmt.Errorf("phase %q is already a sub-phase and cannot have children", parent.Label())
		}
		children, err := s.phases.ListChildren(ctx, p.ID)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return fmt.Errorf("phase has sub-phases and cannot be nested itself")
		}
	}
	return nil
}
