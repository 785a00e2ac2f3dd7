package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkellerhals/opline/internal/db"
	"github.com/mkellerhals/opline/internal/domain"
)

const assignmentColumns = `id, template_id, procedure_type_id, surgeon_id, created_at`

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

// Upsert replaces any existing assignment for the same (procedure type,
// surgeon) key. The partial unique indexes make the key unambiguous for both
// defaults (NULL surgeon) and overrides.
func (r *SQLiteAssignmentRepo) Upsert(ctx context.Context, a *domain.TemplateAssignment) error {
	if err := r.Delete(ctx, a.ProcedureTypeID, a.SurgeonID); err != nil {
		return err
	}
	query := `INSERT INTO template_assignments (` + assignmentColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.TemplateID,
		a.ProcedureTypeID,
		nullableStringToValue(a.SurgeonID),
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting template assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, procedureTypeID string, surgeonID *string) error {
	var err error
	if surgeonID == nil || *surgeonID == "" {
		_, err = r.db.ExecContext(ctx,
			`DELETE FROM template_assignments WHERE procedure_type_id = ? AND surgeon_id IS NULL`,
			procedureTypeID)
	} else {
		_, err = r.db.ExecContext(ctx,
			`DELETE FROM template_assignments WHERE procedure_type_id = ? AND surgeon_id = ?`,
			procedureTypeID, *surgeonID)
	}
	if err != nil {
		return fmt.Errorf("deleting template assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) List(ctx context.Context) ([]*domain.TemplateAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM template_assignments ORDER BY procedure_type_id, surgeon_id`
	return r.queryAssignments(ctx, query)
}

func (r *SQLiteAssignmentRepo) ListByTemplate(ctx context.Context, templateID string) ([]*domain.TemplateAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM template_assignments
		WHERE template_id = ? ORDER BY procedure_type_id, surgeon_id`
	return r.queryAssignments(ctx, query, templateID)
}

func (r *SQLiteAssignmentRepo) GetDefault(ctx context.Context, procedureTypeID string) (*domain.TemplateAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM template_assignments
		WHERE procedure_type_id = ? AND surgeon_id IS NULL`
	row := r.db.QueryRowContext(ctx, query, procedureTypeID)
	a, err := scanAssignment(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("default assignment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning default assignment: %w", err)
	}
	return a, nil
}

func (r *SQLiteAssignmentRepo) GetOverride(ctx context.Context, procedureTypeID, surgeonID string) (*domain.TemplateAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM template_assignments
		WHERE procedure_type_id = ? AND surgeon_id = ?`
	row := r.db.QueryRowContext(ctx, query, procedureTypeID, surgeonID)
	a, err := scanAssignment(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("surgeon override: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning surgeon override: %w", err)
	}
	return a, nil
}

func (r *SQLiteAssignmentRepo) queryAssignments(ctx context.Context, query string, args ...any) ([]*domain.TemplateAssignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing template assignments: %w", err)
	}
	defer rows.Close()

	var out []*domain.TemplateAssignment
	for rows.Next() {
		a, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning template assignment row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating template assignments: %w", err)
	}
	return out, nil
}

func scanAssignment(scan func(dest ...any) error) (*domain.TemplateAssignment, error) {
	var a domain.TemplateAssignment
	var surgeonID sql.NullString
	var createdAt string

	if err := scan(&a.ID, &a.TemplateID, &a.ProcedureTypeID, &surgeonID, &createdAt); err != nil {
		return nil, err
	}

	a.SurgeonID = nullStringToPtr(surgeonID)
	a.CreatedAt = parseTimestamp(createdAt)
	return &a, nil
}
