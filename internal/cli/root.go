package cli

import (
	"github.com/mkellerhals/opline/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Milestones  service.MilestoneService
	Phases      service.PhaseService
	Templates   service.TemplateService
	Assignments service.AssignmentService
	Procedures  service.ProcedureTypeService
	Surgeons    service.SurgeonService

	// IsInteractive reports whether stdin is attached to a terminal, so
	// interactive surfaces (forms, builder TUI) can refuse to start in
	// pipes and scripts.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "opline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "opline",
		Short: "Operating room milestone template manager",
	}

	root.AddCommand(
		newMilestoneCmd(app),
		newPhaseCmd(app),
		newTemplateCmd(app),
		newAssignCmd(app),
		newProcedureCmd(app),
		newSurgeonCmd(app),
		newBuilderCmd(app),
	)

	return root
}
