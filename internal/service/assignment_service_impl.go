package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkellerhals/opline/internal/domain"
	"github.com/mkellerhals/opline/internal/repository"
)

type assignmentService struct {
	assignments repository.AssignmentRepo
	templates   repository.TemplateRepo
	procedures  repository.ProcedureTypeRepo
	surgeons    repository.SurgeonRepo
}

func NewAssignmentService(
	assignments repository.AssignmentRepo,
	templates repository.TemplateRepo,
	procedures repository.ProcedureTypeRepo,
	surgeons repository.SurgeonRepo,
) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		templates:   templates,
		procedures:  procedures,
		surgeons:    surgeons,
	}
}

func (s *assignmentService) AssignProcedureDefault(ctx context.Context, templateID, procedureTypeID string) error {
	return s.assign(ctx, templateID, procedureTypeID, nil)
}

func (s *assignmentService) AssignSurgeonOverride(ctx context.Context, templateID, procedureTypeID, surgeonID string) error {
	if _, err := s.surgeons.GetByID(ctx, surgeonID); err != nil {
		return err
	}
	return s.assign(ctx, templateID, procedureTypeID, &surgeonID)
}

func (s *assignmentService) assign(ctx context.Context, templateID, procedureTypeID string, surgeonID *string) error {
	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return err
	}
	if !t.IsActive {
		return fmt.Errorf("template %q is inactive and cannot be assigned", t.Name)
	}
	if _, err := s.procedures.GetByID(ctx, procedureTypeID); err != nil {
		return err
	}
	return s.assignments.Upsert(ctx, &domain.TemplateAssignment{
		ID:              uuid.New().String(),
		TemplateID:      templateID,
		ProcedureTypeID: procedureTypeID,
		SurgeonID:       surgeonID,
		CreatedAt:       time.Now().UTC(),
	})
}

func (s *assignmentService) Unassign(ctx context.Context, procedureTypeID string, surgeonID *string) error {
	return s.assignments.Delete(ctx, procedureTypeID, surgeonID)
}

func (s *assignmentService) List(ctx context.Context) ([]*domain.TemplateAssignment, error) {
	return s.assignments.List(ctx)
}

func (s *assignmentService) Resolve(ctx context.Context, procedureTypeID string, surgeonID *string) (*ResolvedTemplate, error) {
	if surgeonID != nil {
		ovr, err := s.assignments.GetOverride(ctx, procedureTypeID, *surgeonID)
		switch {
		case err == nil:
			t, err := s.templates.GetByID(ctx, ovr.TemplateID)
			if err != nil {
				return nil, err
			}
			return &ResolvedTemplate{Template: t, Source: "override"}, nil
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}

	def, err := s.assignments.GetDefault(ctx, procedureTypeID)
	switch {
	case err == nil:
		t, err := s.templates.GetByID(ctx, def.TemplateID)
		if err != nil {
			return nil, err
		}
		return &ResolvedTemplate{Template: t, Source: "procedure"}, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	t, err := s.templates.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("no template applies to this case: %w", repository.ErrNotFound)
		}
		return nil, err
	}
	return &ResolvedTemplate{Template: t, Source: "facility"}, nil
}
