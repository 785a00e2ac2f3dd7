package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS milestones (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		display_name  TEXT NOT NULL DEFAULT '',
		pair_with_id  TEXT REFERENCES milestones(id) ON DELETE SET NULL,
		pair_position TEXT NOT NULL DEFAULT ''
		              CHECK(pair_position IN ('', 'start', 'end')),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		display_name    TEXT NOT NULL DEFAULT '',
		color_key       TEXT NOT NULL DEFAULT 'slate',
		display_order   INTEGER NOT NULL DEFAULT 0,
		parent_phase_id TEXT REFERENCES phases(id) ON DELETE SET NULL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_parent ON phases(parent_phase_id)`,

	`CREATE TABLE IF NOT EXISTS templates (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		is_default    INTEGER NOT NULL DEFAULT 0,
		is_active     INTEGER NOT NULL DEFAULT 1,
		block_order   TEXT NOT NULL DEFAULT '{}',
		sub_phase_map TEXT NOT NULL DEFAULT '{}',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS template_items (
		id            TEXT PRIMARY KEY,
		template_id   TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
		milestone_id  TEXT NOT NULL REFERENCES milestones(id) ON DELETE CASCADE,
		phase_id      TEXT REFERENCES phases(id) ON DELETE SET NULL,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_template_items_template ON template_items(template_id)`,
	`CREATE INDEX IF NOT EXISTS idx_template_items_phase ON template_items(phase_id)`,

	`CREATE TABLE IF NOT EXISTS procedure_types (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		specialty  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS surgeons (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		specialty  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS template_assignments (
		id                TEXT PRIMARY KEY,
		template_id       TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
		procedure_type_id TEXT NOT NULL REFERENCES procedure_types(id) ON DELETE CASCADE,
		surgeon_id        TEXT REFERENCES surgeons(id) ON DELETE CASCADE,
		created_at        TEXT NOT NULL
	)`,

	// One default assignment per procedure type, one override per
	// (procedure type, surgeon) pair.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_default
		ON template_assignments(procedure_type_id) WHERE surgeon_id IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_override
		ON template_assignments(procedure_type_id, surgeon_id) WHERE surgeon_id IS NOT NULL`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_templates_default
		ON templates(is_default) WHERE is_default = 1`,
}
