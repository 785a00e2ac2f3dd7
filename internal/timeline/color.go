package timeline

// PhaseColor is a resolved display palette entry for a phase color key.
type PhaseColor struct {
	Key  string
	Hex  string
	Name string
}

var palette = map[string]PhaseColor{
	"blue":   {Key: "blue", Hex: "#3b82f6", Name: "Blue"},
	"teal":   {Key: "teal", Hex: "#14b8a6", Name: "Teal"},
	"amber":  {Key: "amber", Hex: "#f59e0b", Name: "Amber"},
	"violet": {Key: "violet", Hex: "#8b5cf6", Name: "Violet"},
	"rose":   {Key: "rose", Hex: "#f43f5e", Name: "Rose"},
	"green":  {Key: "green", Hex: "#22c55e", Name: "Green"},
	"slate":  {Key: "slate", Hex: "#64748b", Name: "Slate"},
}

var fallbackColor = palette["slate"]

// ColorFromKey resolves a stored color key to its palette entry. Unknown or
// empty keys resolve to the slate fallback rather than failing.
func ColorFromKey(key string) PhaseColor {
	if c, ok := palette[key]; ok {
		return c
	}
	return fallbackColor
}
