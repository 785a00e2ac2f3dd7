package cli

import (
	"fmt"

	"github.com/mkellerhals/opline/internal/cli/formatter"
	"github.com/mkellerhals/opline/internal/domain"
	"github.com/mkellerhals/opline/internal/timeline"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage timeline phases",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseUpdateCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var displayName, colorKey, parent string
	var order int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := &domain.Phase{
				Name:         args[0],
				DisplayName:  displayName,
				ColorKey:     colorKey,
				DisplayOrder: order,
			}
			if parent != "" {
				parentID, err := resolvePhaseID(ctx, app, parent)
				if err != nil {
					return err
				}
				p.ParentPhaseID = &parentID
			}
			if err := app.Phases.Create(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added phase %s (%s)\n", p.Label(), p.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "Display label shown on the timeline")
	cmd.Flags().StringVar(&colorKey, "color", "slate", "Palette color key")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent phase (makes this a sub-phase)")
	cmd.Flags().IntVar(&order, "order", 0, "Display order on the timeline")
	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List phases as a tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			phasePtrs, err := app.Phases.List(cmd.Context())
			if err != nil {
				return err
			}
			phases := make([]domain.Phase, len(phasePtrs))
			for i, p := range phasePtrs {
				phases[i] = *p
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderPhaseTree(timeline.BuildPhaseTree(phases)))
			return nil
		},
	}
}

func newPhaseUpdateCmd(app *App) *cobra.Command {
	var displayName, colorKey, parent string
	var order int
	var clearParent bool

	cmd := &cobra.Command{
		Use:   "update <phase>",
		Short: "Update a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Phases.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("display-name") {
				p.DisplayName = displayName
			}
			if cmd.Flags().Changed("color") {
				p.ColorKey = colorKey
			}
			if cmd.Flags().Changed("order") {
				p.DisplayOrder = order
			}
			if clearParent {
				p.ParentPhaseID = nil
			} else if parent != "" {
				parentID, err := resolvePhaseID(ctx, app, parent)
				if err != nil {
					return err
				}
				p.ParentPhaseID = &parentID
			}
			if err := app.Phases.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated phase %s\n", p.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "New display label")
	cmd.Flags().StringVar(&colorKey, "color", "", "New palette color key")
	cmd.Flags().StringVar(&parent, "parent", "", "New parent phase")
	cmd.Flags().BoolVar(&clearParent, "no-parent", false, "Promote to a top-level phase")
	cmd.Flags().IntVar(&order, "order", 0, "New display order")
	return cmd
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <phase>",
		Short: "Remove a phase (its items become unassigned)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Phases.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed phase %s\n", args[0])
			return nil
		},
	}
}
