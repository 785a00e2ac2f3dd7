package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBuilderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "builder <template>",
		Short: "Interactively reorder a template's milestones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("builder requires an interactive terminal")
			}
			ctx := cmd.Context()
			id, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			model, err := newBuilderModel(app, id)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}
