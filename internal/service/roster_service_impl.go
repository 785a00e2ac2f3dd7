package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkellerhals/opline/internal/domain"
	"github.com/mkellerhals/opline/internal/repository"
)

type procedureTypeService struct {
	procedures repository.ProcedureTypeRepo
}

func NewProcedureTypeService(procedures repository.ProcedureTypeRepo) ProcedureTypeService {
	return &procedureTypeService{procedures: procedures}
}

func (s *procedureTypeService) Create(ctx context.Context, p *domain.ProcedureType) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Name == "" {
		return fmt.Errorf("procedure type name is required")
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.procedures.Create(ctx, p)
}

func (s *procedureTypeService) GetByID(ctx context.Context, id string) (*domain.ProcedureType, error) {
	return s.procedures.GetByID(ctx, id)
}

func (s *procedureTypeService) List(ctx context.Context) ([]*domain.ProcedureType, error) {
	return s.procedures.List(ctx)
}

func (s *procedureTypeService) Update(ctx context.Context, p *domain.ProcedureType) error {
	p.UpdatedAt = time.Now().UTC()
	return s.procedures.Update(ctx, p)
}

func (s *procedureTypeService) Delete(ctx context.Context, id string) error {
	return s.procedures.Delete(ctx, id)
}

type surgeonService struct {
	surgeons repository.SurgeonRepo
}

func NewSurgeonService(surgeons repository.SurgeonRepo) SurgeonService {
	return &surgeonService{surgeons: surgeons}
}

func (s *surgeonService) Create(ctx context.Context, sg *domain.Surgeon) error {
	if sg.ID == "" {
		sg.ID = uuid.New().String()
	}
	if sg.Name == "" {
		return fmt.Errorf("surgeon name is required")
	}
	now := time.Now().UTC()
	sg.CreatedAt = now
	sg.UpdatedAt = now
	return s.surgeons.Create(ctx, sg)
}

func (s *surgeonService) GetByID(ctx context.Context, id string) (*domain.Surgeon, error) {
	return s.surgeons.GetByID(ctx, id)
}

func (s *surgeonService) List(ctx context.Context) ([]*domain.Surgeon, error) {
	return s.surgeons.List(ctx)
}

func (s *surgeonService) Update(ctx context.Context, sg *domain.Surgeon) error {
	sg.UpdatedAt = time.Now().UTC()
	return s.surgeons.Update(ctx, sg)
}

func (s *surgeonService) Delete(ctx context.Context, id string) error {
	return s.surgeons.Delete(ctx, id)
}
