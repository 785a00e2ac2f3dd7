package cli

import (
	"fmt"
	"strings"

	"github.com/mkellerhals/opline/internal/cli/formatter"
	"github.com/mkellerhals/opline/internal/domain"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage milestone templates",
	}

	cmd.AddCommand(
		newTemplateCreateCmd(app),
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateAddItemCmd(app),
		newTemplateMoveItemCmd(app),
		newTemplateRemoveItemCmd(app),
		newTemplateOrderCmd(app),
		newTemplateNestCmd(app),
		newTemplateDefaultCmd(app),
		newTemplateDeactivateCmd(app),
		newTemplateRemoveCmd(app),
	)

	return cmd
}

func newTemplateCreateCmd(app *App) *cobra.Command {
	var name string
	var makeDefault bool

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				name = args[0]
			}
			if name == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("template name is required")
				}
				form := templateCreateForm(&name, &makeDefault)
				if err := form.Run(); err != nil {
					return err
				}
			}
			t := &domain.Template{Name: name, IsDefault: makeDefault}
			if err := app.Templates.Create(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created template %s (%s)\n", t.Name, t.ID[:8])
			return nil
		},
	}

	cmd.Flags().BoolVar(&makeDefault, "default", false, "Make this the facility default")
	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(cmd.Context(), includeInactive)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(templates))
			for _, t := range templates {
				def := ""
				if t.IsDefault {
					def = formatter.StyleGreen.Render("default")
				}
				status := "active"
				if !t.IsActive {
					status = formatter.StyleDim.Render("inactive")
				}
				rows = append(rows, []string{t.Name, def, status, t.ID[:8]})
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"NAME", "DEFAULT", "STATUS", "ID"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&includeInactive, "all", "a", false, "Include inactive templates")
	return cmd
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "show <template>",
		Aliases: []string{"preview"},
		Short:   "Render a template's timeline",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			preview, err := app.Templates.Preview(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(preview.Template.Name))
			fmt.Fprint(out, formatter.RenderTimeline(preview.Blocks, preview.Brackets, preview.PairIssues))
			if len(preview.PairIssues) > 0 {
				fmt.Fprintln(out, formatter.StyleRed.Render(
					fmt.Sprintf("%d pair(s) out of order", len(preview.PairIssues))))
			}
			return nil
		},
	}
}

func newTemplateAddItemCmd(app *App) *cobra.Command {
	var phase string

	cmd := &cobra.Command{
		Use:   "add-item <template> <milestone>",
		Short: "Add a milestone to a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			milestoneID, err := resolveMilestoneID(ctx, app, args[1])
			if err != nil {
				return err
			}
			var phaseID *string
			if phase != "" {
				id, err := resolvePhaseID(ctx, app, phase)
				if err != nil {
					return err
				}
				phaseID = &id
			}
			item, err := app.Templates.AddItem(ctx, templateID, milestoneID, phaseID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %s\n", item.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Phase to place the milestone in (omit for unassigned)")
	return cmd
}

func newTemplateMoveItemCmd(app *App) *cobra.Command {
	var phase string
	var order int
	var unassign bool

	cmd := &cobra.Command{
		Use:   "move-item <item-id>",
		Short: "Move an item to another phase or position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var phaseID *string
			if unassign {
				phaseID = nil
			} else if phase != "" {
				id, err := resolvePhaseID(ctx, app, phase)
				if err != nil {
					return err
				}
				phaseID = &id
			} else {
				return fmt.Errorf("either --phase or --unassign is required")
			}
			if err := app.Templates.MoveItem(ctx, args[0], phaseID, order); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved item %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Destination phase")
	cmd.Flags().BoolVar(&unassign, "unassign", false, "Move to the unassigned section")
	cmd.Flags().IntVar(&order, "order", 0, "Display order within the destination")
	return cmd
}

func newTemplateRemoveItemCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-item <item-id>",
		Short: "Remove an item from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Templates.RemoveItem(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %s\n", args[0])
			return nil
		},
	}
}

func newTemplateOrderCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "order <template> <phase> [item-id...]",
		Short: "Set the manual item order within a phase block",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phaseID, err := resolvePhaseID(ctx, app, args[1])
			if err != nil {
				return err
			}
			itemIDs := args[2:]
			if clear {
				itemIDs = nil
			}
			if err := app.Templates.SetBlockOrder(ctx, templateID, phaseID, itemIDs); err != nil {
				return err
			}
			if clear {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared manual order for %s\n", args[1])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Ordered %d item(s) in %s\n", len(itemIDs), args[1])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Revert to default display order")
	return cmd
}

func newTemplateNestCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "nest <template> <sub-phase> [parent]",
		Short: "Nest a phase under a parent for this template",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			templateID, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			subID, err := resolvePhaseID(ctx, app, args[1])
			if err != nil {
				return err
			}
			if clear || len(args) < 3 {
				if err := app.Templates.SetSubPhaseParent(ctx, templateID, subID, nil); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared nesting for %s\n", args[1])
				return nil
			}
			parentID, err := resolvePhaseID(ctx, app, args[2])
			if err != nil {
				return err
			}
			if err := app.Templates.SetSubPhaseParent(ctx, templateID, subID, &parentID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Nested %s under %s\n", args[1], args[2])
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the nesting override")
	return cmd
}

func newTemplateDefaultCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "default <template>",
		Short: "Make a template the facility default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Templates.SetDefault(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now the facility default\n", args[0])
			return nil
		},
	}
}

func newTemplateDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <template>",
		Short: "Retire a template without deleting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Templates.Deactivate(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated %s\n", args[0])
			return nil
		},
	}
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <template>",
		Short: "Delete a template and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTemplateID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Templates.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if t.IsActive && !force {
				return fmt.Errorf("template %q is active; deactivate it first or use --force", t.Name)
			}
			if err := app.Templates.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", strings.TrimSpace(t.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete even if active")
	return cmd
}
