package repository

import (
	"database/sql"
	"encoding/json"
	"time"
)

// nullableStringToValue converts a *string to a value suitable for SQLite
// storage. Returns nil (SQL NULL) when the pointer is nil or empty.
func nullableStringToValue(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// nullStringToPtr converts a scanned sql.NullString to a *string.
// Returns nil when the value is NULL or empty.
func nullStringToPtr(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// parseTimestamp parses an RFC3339 timestamp, returning the zero time when
// the stored value is malformed rather than failing the whole scan.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// mapToJSON encodes an ordering/nesting map column. A nil map stores as "{}"
// so the column stays non-null.
func mapToJSON(v any) string {
	if v == nil {
		return "{}"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// jsonToBlockOrder decodes a templates.block_order column. Malformed stored
// JSON decodes to nil rather than failing the scan.
func jsonToBlockOrder(s string) map[string][]string {
	if s == "" || s == "{}" {
		return nil
	}
	var m map[string][]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	return m
}

// jsonToSubPhaseMap decodes a templates.sub_phase_map column.
func jsonToSubPhaseMap(s string) map[string]string {
	if s == "" || s == "{}" {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	return m
}
