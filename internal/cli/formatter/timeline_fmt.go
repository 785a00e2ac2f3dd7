package formatter

import (
	"fmt"
	"strings"

	"github.com/mkellerhals/opline/internal/domain"
	"github.com/mkellerhals/opline/internal/timeline"
)

// RenderTimeline renders a block list as an indented milestone timeline with
// a bracket gutter on the left. Bracket lanes mark paired milestone spans;
// a red lane means the pair is out of order.
func RenderTimeline(blocks []timeline.Block, brackets []timeline.Bracket, issues map[string]bool) string {
	lanes := 0
	for _, br := range brackets {
		if br.Lane+1 > lanes {
			lanes = br.Lane + 1
		}
	}

	var b strings.Builder
	rowIdx := 0

	writeRow := func(line string) {
		b.WriteString(bracketGutter(brackets, rowIdx, lanes))
		b.WriteString(line)
		b.WriteString("\n")
		rowIdx++
	}
	writeChrome := func(line string) {
		b.WriteString(strings.Repeat(" ", gutterWidth(lanes)))
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, blk := range blocks {
		switch blk.Kind {
		case timeline.KindPhaseHeader:
			style := PhaseStyle(blk.Color).Bold(true)
			label := fmt.Sprintf("▌ %s (%d)", strings.ToUpper(blk.Phase.Label()), blk.ItemCount)
			writeChrome(style.Render(label))

		case timeline.KindEdgeMilestone:
			marker := "┌"
			if blk.Edge == timeline.EdgeEnd {
				marker = "└"
			}
			writeRow(fmt.Sprintf("  %s %s",
				PhaseStyle(blk.Color).Render(marker+"◆"),
				milestoneLabel(blk.Milestone, blk.Item, issues)))

		case timeline.KindInteriorMilestone:
			writeRow(fmt.Sprintf("  %s %s",
				PhaseStyle(blk.Color).Render("│·"),
				milestoneLabel(blk.Milestone, blk.Item, issues)))

		case timeline.KindSharedBoundary:
			ends := PhaseStyle(blk.EndsColor).Render("└")
			starts := PhaseStyle(blk.StartsColor).Render("┌")
			writeRow(fmt.Sprintf("  %s%s %s %s",
				ends, starts,
				milestoneLabel(blk.Milestone, blk.EndsItem, issues),
				StyleDim.Render(fmt.Sprintf("(ends %s, starts %s)",
					blk.EndsPhase.Label(), blk.StartsPhase.Label()))))

		case timeline.KindSubPhase:
			style := PhaseStyle(blk.Color)
			writeChrome("    " + style.Bold(true).Render(fmt.Sprintf("▸ %s", blk.Phase.Label())))
			for _, member := range blk.Members {
				writeRow(fmt.Sprintf("      %s %s",
					style.Render("·"),
					milestoneLabel(&member.Milestone, &member.Item, issues)))
			}

		case timeline.KindDropZone:
			writeChrome("  " + StyleDim.Render("· · ·"))

		case timeline.KindUnassignedHeader:
			writeChrome("")
			writeChrome(StyleDim.Render(fmt.Sprintf("UNASSIGNED (%d)", blk.Count)))

		case timeline.KindUnassignedMilestone:
			writeRow(fmt.Sprintf("  %s %s",
				StyleDim.Render("·"),
				milestoneLabel(blk.Milestone, blk.Item, issues)))
		}
	}

	return b.String()
}

func milestoneLabel(m *domain.Milestone, item *domain.TemplateItem, issues map[string]bool) string {
	label := "(unknown)"
	if m != nil {
		label = m.Label()
	}
	if item != nil && issues[item.ID] {
		return StyleRed.Render(label + " ⚠ pair out of order")
	}
	return StyleFg.Render(label)
}

func gutterWidth(lanes int) int {
	if lanes == 0 {
		return 0
	}
	return lanes*2 + 1
}

// bracketGutter draws one gutter line for the given milestone row index.
// Each lane occupies two characters; spans are drawn top to bottom with
// corner glyphs at their endpoints.
func bracketGutter(brackets []timeline.Bracket, rowIdx, lanes int) string {
	if lanes == 0 {
		return ""
	}
	cells := make([]string, lanes)
	for i := range cells {
		cells[i] = "  "
	}
	for _, br := range brackets {
		style := StyleDim
		if br.Color != "" {
			style = PhaseStyle(timeline.PhaseColor{Hex: br.Color})
		}
		switch {
		case rowIdx == br.Start && rowIdx == br.End:
			cells[br.Lane] = style.Render("╶ ")
		case rowIdx == br.Start:
			cells[br.Lane] = style.Render("┌ ")
		case rowIdx == br.End:
			cells[br.Lane] = style.Render("└ ")
		case rowIdx > br.Start && rowIdx < br.End:
			cells[br.Lane] = style.Render("│ ")
		}
	}
	return strings.Join(cells, "") + " "
}
