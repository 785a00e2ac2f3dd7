package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkellerhals/opline/internal/db"
	"github.com/mkellerhals/opline/internal/domain"
)

const templateColumns = `id, name, is_default, is_active, block_order, sub_phase_map, created_at, updated_at`

const templateItemColumns = `id, template_id, milestone_id, phase_id, display_order, created_at, updated_at`

// SQLiteTemplateRepo implements TemplateRepo using a SQLite database. It owns
// both the templates table and the template_items rows nested under it.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

// NewSQLiteTemplateRepo creates a new SQLiteTemplateRepo.
func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	query := `INSERT INTO templates (` + templateColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		boolToInt(t.IsDefault),
		boolToInt(t.IsActive),
		mapToJSON(t.BlockOrder),
		mapToJSON(t.SubPhaseMap),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTemplate(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("template: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	return t, nil
}

func (r *SQLiteTemplateRepo) GetDefault(ctx context.Context) (*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE is_default = 1 AND is_active = 1`
	row := r.db.QueryRowContext(ctx, query)
	t, err := scanTemplate(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("default template: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning default template: %w", err)
	}
	return t, nil
}

func (r *SQLiteTemplateRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var out []*domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning template row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return out, nil
}

func (r *SQLiteTemplateRepo) Update(ctx context.Context, t *domain.Template) error {
	query := `UPDATE templates SET name = ?, is_default = ?, is_active = ?,
		block_order = ?, sub_phase_map = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		t.Name,
		boolToInt(t.IsDefault),
		boolToInt(t.IsActive),
		mapToJSON(t.BlockOrder),
		mapToJSON(t.SubPhaseMap),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	return nil
}

// ClearDefault unsets the default flag on whichever template holds it, so a
// new default can be set without violating the partial unique index.
func (r *SQLiteTemplateRepo) ClearDefault(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE templates SET is_default = 0 WHERE is_default = 1`); err != nil {
		return fmt.Errorf("clearing default template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) AddItem(ctx context.Context, it *domain.TemplateItem) error {
	query := `INSERT INTO template_items (` + templateItemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		it.ID,
		it.TemplateID,
		it.MilestoneID,
		nullableStringToValue(it.PhaseID),
		it.DisplayOrder,
		it.CreatedAt.Format(time.RFC3339),
		it.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting template item: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetItem(ctx context.Context, id string) (*domain.TemplateItem, error) {
	query := `SELECT ` + templateItemColumns + ` FROM template_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	it, err := scanTemplateItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("template item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning template item: %w", err)
	}
	return it, nil
}

func (r *SQLiteTemplateRepo) ListItems(ctx context.Context, templateID string) ([]*domain.TemplateItem, error) {
	query := `SELECT ` + templateItemColumns + ` FROM template_items
		WHERE template_id = ? ORDER BY display_order, created_at`
	rows, err := r.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing template items: %w", err)
	}
	defer rows.Close()

	var out []*domain.TemplateItem
	for rows.Next() {
		it, err := scanTemplateItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning template item row: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template items: %w", err)
	}
	return out, nil
}

func (r *SQLiteTemplateRepo) UpdateItem(ctx context.Context, it *domain.TemplateItem) error {
	query := `UPDATE template_items SET milestone_id = ?, phase_id = ?, display_order = ?,
		updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		it.MilestoneID,
		nullableStringToValue(it.PhaseID),
		it.DisplayOrder,
		it.UpdatedAt.Format(time.RFC3339),
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template item: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) DeleteItem(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM template_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting template item: %w", err)
	}
	return nil
}

func scanTemplate(scan func(dest ...any) error) (*domain.Template, error) {
	var t domain.Template
	var isDefault, isActive int
	var blockOrder, subPhaseMap, createdAt, updatedAt string

	if err := scan(&t.ID, &t.Name, &isDefault, &isActive, &blockOrder, &subPhaseMap,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	t.IsDefault = intToBool(isDefault)
	t.IsActive = intToBool(isActive)
	t.BlockOrder = jsonToBlockOrder(blockOrder)
	t.SubPhaseMap = jsonToSubPhaseMap(subPhaseMap)
	t.CreatedAt = parseTimestamp(createdAt)
	t.UpdatedAt = parseTimestamp(updatedAt)
	return &t, nil
}

func scanTemplateItem(scan func(dest ...any) error) (*domain.TemplateItem, error) {
	var it domain.TemplateItem
	var phaseID sql.NullString
	var createdAt, updatedAt string

	if err := scan(&it.ID, &it.TemplateID, &it.MilestoneID, &phaseID, &it.DisplayOrder,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	it.PhaseID = nullStringToPtr(phaseID)
	it.CreatedAt = parseTimestamp(createdAt)
	it.UpdatedAt = parseTimestamp(updatedAt)
	return &it, nil
}
