package cli

import (
	"fmt"

	"github.com/mkellerhals/opline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Bind templates to procedure types and surgeons",
	}

	cmd.AddCommand(
		newAssignSetCmd(app),
		newAssignRemoveCmd(app),
		newAssignListCmd(app),
		newAssignResolveCmd(app),
	)

	return cmd
}

func newAssignSetCmd(app *App) *cobra.Command {
	var surgeon string

	cmd := &cobra.Command{
		Use:   "set <template> <procedure>",
		Short: "Assign a template to a procedure type, optionally for one surgeon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			procedureID, err := resolveProcedureID(ctx, app, args[1])
			if err != nil {
				return err
			}
			if surgeon == "" {
				if err := app.Assignments.AssignProcedureDefault(ctx, templateID, procedureID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now the default for %s\n", args[0], args[1])
				return nil
			}
			surgeonID, err := resolveSurgeonID(ctx, app, surgeon)
			if err != nil {
				return err
			}
			if err := app.Assignments.AssignSurgeonOverride(ctx, templateID, procedureID, surgeonID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s overrides %s for %s\n", args[0], args[1], surgeon)
			return nil
		},
	}

	cmd.Flags().StringVar(&surgeon, "surgeon", "", "Limit the assignment to one surgeon")
	return cmd
}

func newAssignRemoveCmd(app *App) *cobra.Command {
	var surgeon string

	cmd := &cobra.Command{
		Use:   "rm <procedure>",
		Short: "Remove an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			procedureID, err := resolveProcedureID(ctx, app, args[0])
			if err != nil {
				return err
			}
			var surgeonID *string
			if surgeon != "" {
				id, err := resolveSurgeonID(ctx, app, surgeon)
				if err != nil {
					return err
				}
				surgeonID = &id
			}
			if err := app.Assignments.Unassign(ctx, procedureID, surgeonID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed assignment for %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&surgeon, "surgeon", "", "Remove the surgeon override instead of the default")
	return cmd
}

func newAssignListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			assignments, err := app.Assignments.List(ctx)
			if err != nil {
				return err
			}

			templateNames := make(map[string]string)
			for _, a := range assignments {
				if _, ok := templateNames[a.TemplateID]; ok {
					continue
				}
				t, err := app.Templates.GetByID(ctx, a.TemplateID)
				if err != nil {
					return err
				}
				templateNames[a.TemplateID] = t.Name
			}

			rows := make([][]string, 0, len(assignments))
			for _, a := range assignments {
				proc, err := app.Procedures.GetByID(ctx, a.ProcedureTypeID)
				if err != nil {
					return err
				}
				scope := "procedure default"
				if a.SurgeonID != nil {
					s, err := app.Surgeons.GetByID(ctx, *a.SurgeonID)
					if err != nil {
						return err
					}
					scope = "override: " + s.Name
				}
				rows = append(rows, []string{proc.Name, scope, templateNames[a.TemplateID]})
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"PROCEDURE", "SCOPE", "TEMPLATE"}, rows))
			return nil
		},
	}
}

func newAssignResolveCmd(app *App) *cobra.Command {
	var surgeon string

	cmd := &cobra.Command{
		Use:   "resolve <procedure>",
		Short: "Show which template applies to a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			procedureID, err := resolveProcedureID(ctx, app, args[0])
			if err != nil {
				return err
			}
			var surgeonID *string
			if surgeon != "" {
				id, err := resolveSurgeonID(ctx, app, surgeon)
				if err != nil {
					return err
				}
				surgeonID = &id
			}
			resolved, err := app.Assignments.Resolve(ctx, procedureID, surgeonID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				formatter.StyleBold.Render(resolved.Template.Name),
				formatter.StyleDim.Render("(via "+resolved.Source+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&surgeon, "surgeon", "", "Resolve for a specific surgeon")
	return cmd
}
