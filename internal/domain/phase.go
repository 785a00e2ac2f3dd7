package domain

import "time"

// Phase is a named segment of the procedure timeline (e.g. "Pre-Op", "Surgical").
// A non-nil ParentPhaseID marks a sub-phase nested one level inside a top-level
// phase; deeper nesting is rejected at the service boundary.
type Phase struct {
	ID            string
	Name          string
	DisplayName   string
	ColorKey      string
	DisplayOrder  int
	ParentPhaseID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Label returns the display name, falling back to the internal name.
func (p Phase) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// IsSubPhase reports whether this phase is nested under a parent phase.
func (p Phase) IsSubPhase() bool {
	return p.ParentPhaseID != nil && *p.ParentPhaseID != ""
}
