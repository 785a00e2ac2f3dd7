package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mkellerhals/opline/internal/db"
	"github.com/mkellerhals/opline/internal/domain"
	"github.com/mkellerhals/opline/internal/repository"
	"github.com/mkellerhals/opline/internal/timeline"
)

type templateService struct {
	templates  repository.TemplateRepo
	phases     repository.PhaseRepo
	milestones repository.MilestoneRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewTemplateService(
	templates repository.TemplateRepo,
	phases repository.PhaseRepo,
	milestones repository.MilestoneRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TemplateService {
	return &templateService{
		templates:  templates,
		phases:     phases,
		milestones: milestones,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) Create(ctx context.Context, t *domain.Template) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.IsActive = true
	if t.IsDefault {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txTemplates := repository.NewSQLiteTemplateRepo(tx)
			if err := txTemplates.ClearDefault(ctx); err != nil {
				return err
			}
			return txTemplates.Create(ctx, t)
		})
	}
	return s.templates.Create(ctx, t)
}

func (s *templateService) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *templateService) GetDefault(ctx context.Context) (*domain.Template, error) {
	return s.templates.GetDefault(ctx)
}

func (s *templateService) List(ctx context.Context, includeInactive bool) ([]*domain.Template, error) {
	return s.templates.List(ctx, includeInactive)
}

func (s *templateService) Update(ctx context.Context, t *domain.Template) error {
	t.UpdatedAt = time.Now().UTC()
	return s.templates.Update(ctx, t)
}

// SetDefault moves the default flag to the given template atomically.
func (s *templateService) SetDefault(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTemplates := repository.NewSQLiteTemplateRepo(tx)

		t, err := txTemplates.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !t.IsActive {
			return fmt.Errorf("inactive template cannot be the default")
		}
		if err := txTemplates.ClearDefault(ctx); err != nil {
			return err
		}
		t.IsDefault = true
		t.UpdatedAt = time.Now().UTC()
		return txTemplates.Update(ctx, t)
	})
}

func (s *templateService) Deactivate(ctx context.Context, id string) error {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return err
	}
	t.IsActive = false
	t.IsDefault = false
	t.UpdatedAt = time.Now().UTC()
	return s.templates.Update(ctx, t)
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	return s.templates.Delete(ctx, id)
}

func (s *templateService) AddItem(ctx context.Context, templateID, milestoneID string, phaseID *string) (*domain.TemplateItem, error) {
	if _, err := s.templates.GetByID(ctx, templateID); err != nil {
		return nil, err
	}
	if _, err := s.milestones.GetByID(ctx, milestoneID); err != nil {
		return nil, err
	}
	if phaseID != nil {
		if _, err := s.phases.GetByID(ctx, *phaseID); err != nil {
			return nil, err
		}
	}

	items, err := s.templates.ListItems(ctx, templateID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.MilestoneID == milestoneID {
			return nil, fmt.Errorf("milestone already present in template")
		}
	}

	// New items land at the end of their phase.
	next := 0
	for _, it := range items {
		if samePhase(it.PhaseID, phaseID) && it.DisplayOrder >= next {
			next = it.DisplayOrder + 1
		}
	}

	now := time.Now().UTC()
	item := &domain.TemplateItem{
		ID:           uuid.New().String(),
		TemplateID:   templateID,
		MilestoneID:  milestoneID,
		PhaseID:      phaseID,
		DisplayOrder: next,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.templates.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *templateService) MoveItem(ctx context.Context, itemID string, phaseID *string, displayOrder int) error {
	item, err := s.templates.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if phaseID != nil {
		if _, err := s.phases.GetByID(ctx, *phaseID); err != nil {
			return err
		}
	}
	item.PhaseID = phaseID
	item.DisplayOrder = displayOrder
	item.UpdatedAt = time.Now().UTC()
	return s.templates.UpdateItem(ctx, item)
}

func (s *templateService) RemoveItem(ctx context.Context, itemID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTemplates := repository.NewSQLiteTemplateRepo(tx)

		item, err := txTemplates.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if err := txTemplates.DeleteItem(ctx, itemID); err != nil {
			return err
		}
		// Scrub the item from any stored block order so stale ids do
		// not accumulate in the override maps.
		t, err := txTemplates.GetByID(ctx, item.TemplateID)
		if err != nil {
			return err
		}
		changed := false
		for phase, ids := range t.BlockOrder {
			filtered := ids[:0:0]
			for _, id := range ids {
				if id != itemID {
					filtered = append(filtered, id)
				}
			}
			if len(filtered) != len(ids) {
				t.BlockOrder[phase] = filtered
				changed = true
			}
		}
		if !changed {
			return nil
		}
		t.UpdatedAt = time.Now().UTC()
		return txTemplates.Update(ctx, t)
	})
}

func (s *templateService) SetBlockOrder(ctx context.Context, templateID, phaseID string, itemIDs []string) error {
	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return err
	}
	if t.BlockOrder == nil {
		t.BlockOrder = make(map[string][]string)
	}
	if len(itemIDs) == 0 {
		delete(t.BlockOrder, phaseID)
	} else {
		t.BlockOrder[phaseID] = itemIDs
	}
	t.UpdatedAt = time.Now().UTC()
	return s.templates.Update(ctx, t)
}

func (s *templateService) SetSubPhaseParent(ctx context.Context, templateID, subPhaseID string, parentID *string) error {
	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return err
	}
	if parentID == nil {
		delete(t.SubPhaseMap, subPhaseID)
	} else {
		if *parentID == subPhaseID {
			return fmt.Errorf("phase cannot be its own parent")
		}
		parent, err := s.phases.GetByID(ctx, *parentID)
		if err != nil {
			return fmt.Errorf("resolving parent phase: %w", err)
		}
		if parent.IsSubPhase() {
			return fmt.Errorf("phase %q is a sub-phase and cannot have children", parent.Label())
		}
		if t.SubPhaseMap == nil {
			t.SubPhaseMap = make(map[string]string)
		}
		t.SubPhaseMap[subPhaseID] = *parentID
	}
	t.UpdatedAt = time.Now().UTC()
	return s.templates.Update(ctx, t)
}

func (s *templateService) Preview(ctx context.Context, templateID string) (preview *TemplatePreview, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"template_id": templateID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "template-preview",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	itemPtrs, err := s.templates.ListItems(ctx, templateID)
	if err != nil {
		return nil, err
	}
	phasePtrs, err := s.phases.List(ctx)
	if err != nil {
		return nil, err
	}
	msPtrs, err := s.milestones.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]domain.TemplateItem, len(itemPtrs))
	for i, it := range itemPtrs {
		items[i] = *it
	}
	phases := make([]domain.Phase, len(phasePtrs))
	for i, p := range phasePtrs {
		phases[i] = *p
	}
	milestones := make([]domain.Milestone, len(msPtrs))
	for i, m := range msPtrs {
		milestones[i] = *m
	}

	opts := timeline.Options{
		EmptyPhaseIDs: emptyTopLevelPhases(items, phases, t.SubPhaseMap),
		SubPhaseMap:   t.SubPhaseMap,
		BlockOrder:    t.BlockOrder,
	}
	blocks := timeline.BuildRenderList(items, phases, milestones, opts)
	issues := timeline.DetectPairOrderIssues(blocks, milestones)
	rows := timeline.FlattenRows(blocks)
	brackets := timeline.ComputeBracketData(rows, issues)

	fields["block_count"] = len(blocks)
	fields["pair_issue_count"] = len(issues)

	return &TemplatePreview{
		Template:     t,
		Blocks:       blocks,
		Rows:         rows,
		PairIssues:   issues,
		Brackets:     brackets,
		BracketWidth: timeline.ComputeBracketAreaWidth(brackets),
	}, nil
}

// emptyTopLevelPhases marks phases with no items so they still render as
// drop targets in the preview.
func emptyTopLevelPhases(items []domain.TemplateItem, phases []domain.Phase, subPhaseMap map[string]string) map[string]bool {
	hasItems := make(map[string]bool)
	for _, it := range items {
		if it.PhaseID != nil {
			hasItems[*it.PhaseID] = true
		}
	}
	empty := make(map[string]bool)
	for _, p := range phases {
		if hasItems[p.ID] {
			continue
		}
		if p.IsSubPhase() {
			continue
		}
		if _, nested := subPhaseMap[p.ID]; nested {
			continue
		}
		empty[p.ID] = true
	}
	return empty
}

func samePhase(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
