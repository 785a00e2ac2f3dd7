package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkellerhals/opline/internal/cli/formatter"
	"github.com/mkellerhals/opline/internal/domain"
	"github.com/mkellerhals/opline/internal/service"
	"github.com/mkellerhals/opline/internal/timeline"
)

// builderRow is one selectable item row in the builder, grouped by the
// phase block it renders under.
type builderRow struct {
	phaseID    string
	phaseLabel string
	itemID     string
	label      string
	issue      bool
}

type builderKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	MovePrev key.Binding
	MoveNext key.Binding
	Quit     key.Binding
}

func defaultBuilderKeys() builderKeyMap {
	return builderKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "select previous")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select next")),
		MoveUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("shift+↑/K", "move item up")),
		MoveDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("shift+↓/J", "move item down")),
		MovePrev: key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←/H", "move to previous phase")),
		MoveNext: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+→/L", "move to next phase")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// builderModel is an interactive reordering surface for one template. Moving
// an item within its phase persists a manual block order and re-renders the
// preview, so pair warnings update live.
type builderModel struct {
	app        *App
	templateID string
	keys       builderKeyMap

	preview *service.TemplatePreview
	rows    []builderRow
	cursor  int
	err     error
}

func newBuilderModel(app *App, templateID string) (*builderModel, error) {
	m := &builderModel{
		app:        app,
		templateID: templateID,
		keys:       defaultBuilderKeys(),
	}
	if err := m.reload(context.Background()); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *builderModel) reload(ctx context.Context) error {
	preview, err := m.app.Templates.Preview(ctx, m.templateID)
	if err != nil {
		return err
	}
	m.preview = preview
	m.rows = builderRows(preview)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return nil
}

// builderRows flattens the preview's phase-assigned milestone rows in render
// order. Unassigned milestones are excluded; they have no block to reorder.
func builderRows(preview *service.TemplatePreview) []builderRow {
	var rows []builderRow
	add := func(phaseID, phaseLabel, itemID, label string) {
		rows = append(rows, builderRow{
			phaseID:    phaseID,
			phaseLabel: phaseLabel,
			itemID:     itemID,
			label:      label,
			issue:      preview.PairIssues[itemID],
		})
	}

	for _, blk := range preview.Blocks {
		switch blk.Kind {
		case timeline.KindEdgeMilestone, timeline.KindInteriorMilestone:
			add(blk.Phase.ID, blk.Phase.Label(), blk.Item.ID, blk.Milestone.Label())
		case timeline.KindSharedBoundary:
			add(blk.EndsPhase.ID, blk.EndsPhase.Label(), blk.EndsItem.ID, blk.Milestone.Label())
		case timeline.KindSubPhase:
			for _, member := range blk.Members {
				add(blk.Phase.ID, blk.Phase.Label(), member.Item.ID, member.Milestone.Label())
			}
		}
	}
	return rows
}

func (m *builderModel) Init() tea.Cmd {
	return nil
}

func (m *builderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.MoveUp):
		m.moveSelected(-1)

	case key.Matches(keyMsg, m.keys.MoveDown):
		m.moveSelected(+1)

	case key.Matches(keyMsg, m.keys.MovePrev):
		m.moveSelectedToPhase(-1)

	case key.Matches(keyMsg, m.keys.MoveNext):
		m.moveSelectedToPhase(+1)
	}

	return m, nil
}

// moveSelected swaps the selected item with its neighbor in the same phase
// and persists the resulting order.
func (m *builderModel) moveSelected(dir int) {
	if len(m.rows) == 0 {
		return
	}
	selected := m.rows[m.cursor]

	var phaseItems []string
	selfIdx := -1
	for _, row := range m.rows {
		if row.phaseID != selected.phaseID {
			continue
		}
		if row.itemID == selected.itemID {
			selfIdx = len(phaseItems)
		}
		phaseItems = append(phaseItems, row.itemID)
	}

	target := selfIdx + dir
	if selfIdx < 0 || target < 0 || target >= len(phaseItems) {
		return
	}
	phaseItems[selfIdx], phaseItems[target] = phaseItems[target], phaseItems[selfIdx]

	ctx := context.Background()
	if err := m.app.Templates.SetBlockOrder(ctx, m.templateID, selected.phaseID, phaseItems); err != nil {
		m.err = err
		return
	}
	if err := m.reload(ctx); err != nil {
		m.err = err
		return
	}
	m.err = nil

	// Keep the moved item selected.
	for i, row := range m.rows {
		if row.itemID == selected.itemID {
			m.cursor = i
			break
		}
	}
}

// moveSelectedToPhase reassigns the selected item to the previous or next
// top-level phase in render order, appending it after that phase's items.
func (m *builderModel) moveSelectedToPhase(dir int) {
	if len(m.rows) == 0 {
		return
	}
	selected := m.rows[m.cursor]

	var phaseOrder []string
	for _, blk := range m.preview.Blocks {
		if blk.Kind == timeline.KindPhaseHeader {
			phaseOrder = append(phaseOrder, blk.Phase.ID)
		}
	}
	cur := -1
	for i, id := range phaseOrder {
		if id == selected.phaseID {
			cur = i
			break
		}
	}
	target := cur + dir
	if cur < 0 || target < 0 || target >= len(phaseOrder) {
		return
	}
	targetID := phaseOrder[target]

	ctx := context.Background()
	if err := m.app.Templates.MoveItem(ctx, selected.itemID, &targetID, m.nextDisplayOrder(targetID)); err != nil {
		m.err = err
		return
	}
	if err := m.reload(ctx); err != nil {
		m.err = err
		return
	}
	m.err = nil

	for i, row := range m.rows {
		if row.itemID == selected.itemID {
			m.cursor = i
			break
		}
	}
}

// nextDisplayOrder returns one past the highest display order among the
// preview's items assigned to the given phase.
func (m *builderModel) nextDisplayOrder(phaseID string) int {
	next := 0
	bump := func(it *domain.TemplateItem) {
		if it != nil && it.PhaseID != nil && *it.PhaseID == phaseID && it.DisplayOrder >= next {
			next = it.DisplayOrder + 1
		}
	}
	for _, blk := range m.preview.Blocks {
		bump(blk.Item)
		bump(blk.EndsItem)
		bump(blk.StartsItem)
		for i := range blk.Members {
			bump(&blk.Members[i].Item)
		}
	}
	return next
}

func (m *builderModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("Template Builder: " + m.preview.Template.Name))
	b.WriteString("\n\n")

	lastPhase := ""
	for i, row := range m.rows {
		if row.phaseID != lastPhase {
			b.WriteString(formatter.StyleBold.Render(strings.ToUpper(row.phaseLabel)))
			b.WriteString("\n")
			lastPhase = row.phaseID
		}
		marker := "  "
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("▸ ")
		}
		label := formatter.StyleFg.Render(row.label)
		if row.issue {
			label = formatter.StyleRed.Render(row.label + " ⚠")
		}
		b.WriteString(fmt.Sprintf("  %s%s\n", marker, label))
	}

	if len(m.rows) == 0 {
		b.WriteString(formatter.StyleDim.Render("No phase-assigned items in this template.\n"))
	}

	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + formatter.StyleDim.Render(
		"↑/↓ select · shift+↑/↓ move within phase · shift+←/→ change phase · q quit"))
	b.WriteString("\n")
	return b.String()
}
