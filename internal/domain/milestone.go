package domain

import "time"

// Milestone is one clinical checkpoint type (e.g. "Incision").
// PairWithID links the two halves of a declared start/end pair such as
// "Anesthesia Start" / "Anesthesia End"; PairPosition says which half this is.
type Milestone struct {
	ID           string
	Name         string
	DisplayName  string
	PairWithID   *string
	PairPosition PairPosition
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Label returns the display name, falling back to the internal name.
func (m Milestone) Label() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}

// IsPaired reports whether this milestone is half of a start/end pair.
func (m Milestone) IsPaired() bool {
	return m.PairWithID != nil && *m.PairWithID != ""
}
