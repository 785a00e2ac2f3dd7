package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkellerhals/opline/internal/db"
	"github.com/mkellerhals/opline/internal/domain"
)

const phaseColumns = `id, name, display_name, color_key, display_order, parent_phase_id, created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.DisplayName,
		p.ColorKey,
		p.DisplayOrder,
		nullableStringToValue(p.ParentPhaseID),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanPhase(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}
	return p, nil
}

func (r *SQLitePhaseRepo) List(ctx context.Context) ([]*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases ORDER BY display_order, created_at`
	return r.queryPhases(ctx, query)
}

func (r *SQLitePhaseRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE parent_phase_id = ? ORDER BY display_order, created_at`
	return r.queryPhases(ctx, query, parentID)
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, p *domain.Phase) error {
	query := `UPDATE phases SET name = ?, display_name = ?, color_key = ?, display_order = ?,
		parent_phase_id = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.DisplayName,
		p.ColorKey,
		p.DisplayOrder,
		nullableStringToValue(p.ParentPhaseID),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) queryPhases(ctx context.Context, query string, args ...any) ([]*domain.Phase, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var out []*domain.Phase
	for rows.Next() {
		p, err := scanPhase(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning phase row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return out, nil
}

func scanPhase(scan func(dest ...any) error) (*domain.Phase, error) {
	var p domain.Phase
	var parentID sql.NullString
	var createdAt, updatedAt string

	if err := scan(&p.ID, &p.Name, &p.DisplayName, &p.ColorKey, &p.DisplayOrder,
		&parentID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	p.ParentPhaseID = nullStringToPtr(parentID)
	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}
