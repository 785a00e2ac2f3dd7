package timeline

// applyBlockOrder projects a persisted manual ordering override onto a
// default-ordered id list. Ids named by the override come first, in override
// order; override ids that no longer exist are ignored; ids missing from a
// stale override are appended preserving their default relative order.
// The input slices are never mutated.
func applyBlockOrder(defaultOrder, override []string) []string {
	if len(override) == 0 {
		out := make([]string, len(defaultOrder))
		copy(out, defaultOrder)
		return out
	}

	present := make(map[string]bool, len(defaultOrder))
	for _, id := range defaultOrder {
		present[id] = true
	}

	out := make([]string, 0, len(defaultOrder))
	placed := make(map[string]bool, len(override))
	for _, id := range override {
		if present[id] && !placed[id] {
			out = append(out, id)
			placed[id] = true
		}
	}
	for _, id := range defaultOrder {
		if !placed[id] {
			out = append(out, id)
		}
	}
	return out
}
