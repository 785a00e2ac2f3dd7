package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkellerhals/opline/internal/db"
	"github.com/mkellerhals/opline/internal/domain"
	"github.com/mkellerhals/opline/internal/repository"
)

type milestoneService struct {
	milestones repository.MilestoneRepo
	uow        db.UnitOfWork
}

func NewMilestoneService(milestones repository.MilestoneRepo, uow db.UnitOfWork) MilestoneService {
	return &milestoneService{milestones: milestones, uow: uow}
}

func (s *milestoneService) Create(ctx context.Context, m *domain.Milestone) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Name == "" {
		return fmt.Errorf("milestone name is required")
	}
	if m.PairPosition == "" {
		m.PairPosition = domain.PairNone
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.milestones.Create(ctx, m)
}

func (s *milestoneService) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	return s.milestones.GetByID(ctx, id)
}

func (s *milestoneService) List(ctx context.Context) ([]*domain.Milestone, error) {
	return s.milestones.List(ctx)
}

func (s *milestoneService) Update(ctx context.Context, m *domain.Milestone) error {
	m.UpdatedAt = time.Now().UTC()
	return s.milestones.Update(ctx, m)
}

func (s *milestoneService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)

		m, err := txMilestones.GetByID(ctx, id)
		if err != nil {
			return err
		}
		// Dissolve the pairing on the surviving partner so it does not
		// keep a dangling half.
		if m.PairWithID != nil {
			if err := unpairOne(ctx, txMilestones, *m.PairWithID); err != nil {
				return err
			}
		}
		return txMilestones.Delete(ctx, id)
	})
}

func (s *milestoneService) Pair(ctx context.Context, startID, endID string) error {
	if startID == endID {
		return fmt.Errorf("a milestone cannot pair with itself")
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)

		start, err := txMilestones.GetByID(ctx, startID)
		if err != nil {
			return err
		}
		end, err := txMilestones.GetByID(ctx, endID)
		if err != nil {
			return err
		}

		// Dissolve any existing pairings so both sides end up reciprocal.
		for _, m := range []*domain.Milestone{start, end} {
			if m.PairWithID != nil && *m.PairWithID != startID && *m.PairWithID != endID {
				if err := unpairOne(ctx, txMilestones, *m.PairWithID); err != nil {
					return err
				}
			}
		}

		now := time.Now().UTC()
		start.PairWithID = &end.ID
		start.PairPosition = domain.PairStart
		start.UpdatedAt = now
		end.PairWithID = &start.ID
		end.PairPosition = domain.PairEnd
		end.UpdatedAt = now

		if err := txMilestones.Update(ctx, start); err != nil {
			return err
		}
		return txMilestones.Update(ctx, end)
	})
}

func (s *milestoneService) Unpair(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)

		m, err := txMilestones.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m.PairWithID == nil {
			return nil
		}
		partnerID := *m.PairWithID
		if err := unpairOne(ctx, txMilestones, id); err != nil {
			return err
		}
		return unpairOne(ctx, txMilestones, partnerID)
	})
}

func unpairOne(ctx context.Context, repo repository.MilestoneRepo, id string) error {
	m, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	m.PairWithID = nil
	m.PairPosition = domain.PairNone
	m.UpdatedAt = time.Now().UTC()
	return repo.Update(ctx, m)
}
