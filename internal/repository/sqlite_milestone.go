package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkellerhals/opline/internal/db"
	"github.com/mkellerhals/opline/internal/domain"
)

const milestoneColumns = `id, name, display_name, pair_with_id, pair_position, created_at, updated_at`

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

// NewSQLiteMilestoneRepo creates a new SQLiteMilestoneRepo.
func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: conn}
}

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (` + milestoneColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.DisplayName,
		nullableStringToValue(m.PairWithID),
		string(m.PairPosition),
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	m, err := scanMilestone(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("milestone: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}
	return m, nil
}

func (r *SQLiteMilestoneRepo) List(ctx context.Context) ([]*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var out []*domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning milestone row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	return out, nil
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	query := `UPDATE milestones SET name = ?, display_name = ?, pair_with_id = ?,
		pair_position = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		m.Name,
		m.DisplayName,
		nullableStringToValue(m.PairWithID),
		string(m.PairPosition),
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return nil
}

func scanMilestone(scan func(dest ...any) error) (*domain.Milestone, error) {
	var m domain.Milestone
	var pairWith sql.NullString
	var pairPos, createdAt, updatedAt string

	if err := scan(&m.ID, &m.Name, &m.DisplayName, &pairWith, &pairPos, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	m.PairWithID = nullStringToPtr(pairWith)
	m.PairPosition = domain.PairPosition(pairPos)
	m.CreatedAt = parseTimestamp(createdAt)
	m.UpdatedAt = parseTimestamp(updatedAt)
	return &m, nil
}
