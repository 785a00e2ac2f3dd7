package formatter

import (
	"fmt"
	"strings"

	"github.com/mkellerhals/opline/internal/timeline"
)

// RenderPhaseTree renders top-level phases with their sub-phases nested
// underneath, each prefixed with its palette color dot.
func RenderPhaseTree(nodes []timeline.PhaseNode) string {
	var b strings.Builder
	for _, node := range nodes {
		color := timeline.ColorFromKey(node.Phase.ColorKey)
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			PhaseDot(color),
			StyleBold.Render(node.Phase.Label()),
			StyleDim.Render(fmt.Sprintf("(order %d)", node.Phase.DisplayOrder))))
		for i, child := range node.Children {
			glyph := "├─"
			if i == len(node.Children)-1 {
				glyph = "└─"
			}
			childColor := timeline.ColorFromKey(child.ColorKey)
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StyleDim.Render(glyph),
				PhaseDot(childColor),
				StyleFg.Render(child.Label())))
		}
	}
	return b.String()
}
