package domain

import "time"

// ProcedureType is a kind of operation a facility performs (e.g. "Total Knee
// Arthroplasty"). Templates are assigned per procedure type.
type ProcedureType struct {
	ID        string
	Name      string
	Specialty string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Surgeon is a credentialed operator who may carry per-procedure template
// overrides.
type Surgeon struct {
	ID        string
	Name      string
	Specialty string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateAssignment binds a template to a procedure type. A nil SurgeonID is
// the procedure-type default; a non-nil SurgeonID is a per-surgeon override
// that wins over the default during resolution.
type TemplateAssignment struct {
	ID              string
	TemplateID      string
	ProcedureTypeID string
	SurgeonID       *string
	CreatedAt       time.Time
}
