package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkellerhals/opline/internal/db"
	"github.com/mkellerhals/opline/internal/domain"
)

// SQLiteProcedureTypeRepo implements ProcedureTypeRepo using a SQLite database.
type SQLiteProcedureTypeRepo struct {
	db db.DBTX
}

// NewSQLiteProcedureTypeRepo creates a new SQLiteProcedureTypeRepo.
func NewSQLiteProcedureTypeRepo(conn db.DBTX) *SQLiteProcedureTypeRepo {
	return &SQLiteProcedureTypeRepo{db: conn}
}

func (r *SQLiteProcedureTypeRepo) Create(ctx context.Context, p *domain.ProcedureType) error {
	query := `INSERT INTO procedure_types (id, name, specialty, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Specialty,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting procedure type: %w", err)
	}
	return nil
}

func (r *SQLiteProcedureTypeRepo) GetByID(ctx context.Context, id string) (*domain.ProcedureType, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, specialty, created_at, updated_at FROM procedure_types WHERE id = ?`, id)

	var p domain.ProcedureType
	var createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.Name, &p.Specialty, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("procedure type: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning procedure type: %w", err)
	}
	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}

func (r *SQLiteProcedureTypeRepo) List(ctx context.Context) ([]*domain.ProcedureType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, specialty, created_at, updated_at FROM procedure_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing procedure types: %w", err)
	}
	defer rows.Close()

	var out []*domain.ProcedureType
	for rows.Next() {
		var p domain.ProcedureType
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Specialty, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning procedure type row: %w", err)
		}
		p.CreatedAt = parseTimestamp(createdAt)
		p.UpdatedAt = parseTimestamp(updatedAt)
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating procedure types: %w", err)
	}
	return out, nil
}

func (r *SQLiteProcedureTypeRepo) Update(ctx context.Context, p *domain.ProcedureType) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE procedure_types SET name = ?, specialty = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Specialty, p.UpdatedAt.Format(time.RFC3339), p.ID)
	if err != nil {
		return fmt.Errorf("updating procedure type: %w", err)
	}
	return nil
}

func (r *SQLiteProcedureTypeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM procedure_types WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting procedure type: %w", err)
	}
	return nil
}

// SQLiteSurgeonRepo implements SurgeonRepo using a SQLite database.
type SQLiteSurgeonRepo struct {
	db db.DBTX
}

// NewSQLiteSurgeonRepo creates a new SQLiteSurgeonRepo.
func NewSQLiteSurgeonRepo(conn db.DBTX) *SQLiteSurgeonRepo {
	return &SQLiteSurgeonRepo{db: conn}
}

func (r *SQLiteSurgeonRepo) Create(ctx context.Context, s *domain.Surgeon) error {
	query := `INSERT INTO surgeons (id, name, specialty, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Specialty,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting surgeon: %w", err)
	}
	return nil
}

func (r *SQLiteSurgeonRepo) GetByID(ctx context.Context, id string) (*domain.Surgeon, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, specialty, created_at, updated_at FROM surgeons WHERE id = ?`, id)

	var s domain.Surgeon
	var createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.Name, &s.Specialty, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("surgeon: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning surgeon: %w", err)
	}
	s.CreatedAt = parseTimestamp(createdAt)
	s.UpdatedAt = parseTimestamp(updatedAt)
	return &s, nil
}

func (r *SQLiteSurgeonRepo) List(ctx context.Context) ([]*domain.Surgeon, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, specialty, created_at, updated_at FROM surgeons ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing surgeons: %w", err)
	}
	defer rows.Close()

	var out []*domain.Surgeon
	for rows.Next() {
		var s domain.Surgeon
		var createdAt, updatedAt string
		if err := rows.Scan(&s.ID, &s.Name, &s.Specialty, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning surgeon row: %w", err)
		}
		s.CreatedAt = parseTimestamp(createdAt)
		s.UpdatedAt = parseTimestamp(updatedAt)
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating surgeons: %w", err)
	}
	return out, nil
}

func (r *SQLiteSurgeonRepo) Update(ctx context.Context, s *domain.Surgeon) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE surgeons SET name = ?, specialty = ?, updated_at = ? WHERE id = ?`,
		s.Name, s.Specialty, s.UpdatedAt.Format(time.RFC3339), s.ID)
	if err != nil {
		return fmt.Errorf("updating surgeon: %w", err)
	}
	return nil
}

func (r *SQLiteSurgeonRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM surgeons WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting surgeon: %w", err)
	}
	return nil
}
