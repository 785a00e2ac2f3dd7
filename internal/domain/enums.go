package domain

type PairPosition string

const (
	PairStart PairPosition = "start"
	PairEnd   PairPosition = "end"
	PairNone  PairPosition = ""
)

// ValidPairPositions is the canonical set of accepted pair position strings.
var ValidPairPositions = map[string]bool{
	"start": true, "end": true,
}

// ValidColorKeys is the canonical set of accepted phase color keys.
// Unknown keys fall back to the slate palette entry at render time.
var ValidColorKeys = map[string]bool{
	"blue": true, "teal": true, "amber": true, "violet": true,
	"rose": true, "green": true, "slate": true,
}
