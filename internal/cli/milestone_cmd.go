package cli

import (
	"fmt"

	"github.com/mkellerhals/opline/internal/cli/formatter"
	"github.com/mkellerhals/opline/internal/domain"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage the milestone catalog",
	}

	cmd.AddCommand(
		newMilestoneAddCmd(app),
		newMilestoneListCmd(app),
		newMilestoneUpdateCmd(app),
		newMilestonePairCmd(app),
		newMilestoneUnpairCmd(app),
		newMilestoneRemoveCmd(app),
	)

	return cmd
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a milestone",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			if name == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("milestone name is required")
				}
				form := milestoneAddForm(&name, &displayName)
				if err := form.Run(); err != nil {
					return err
				}
			}
			m := &domain.Milestone{Name: name, DisplayName: displayName}
			if err := app.Milestones.Create(cmd.Context(), m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added milestone %s (%s)\n", m.Label(), m.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "display-name", "", "Display label shown on the timeline")
	return cmd
}

func newMilestoneListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List milestones",
		RunE: func(cmd *cobra.Command, args []string) error {
			milestones, err := app.Milestones.List(cmd.Context())
			if err != nil {
				return err
			}

			byID := make(map[string]*domain.Milestone, len(milestones))
			for _, m := range milestones {
				byID[m.ID] = m
			}

			rows := make([][]string, 0, len(milestones))
			for _, m := range milestones {
				pair := ""
				if m.PairWithID != nil {
					if partner, ok := byID[*m.PairWithID]; ok {
						pair = fmt.Sprintf("%s of pair with %s", m.PairPosition, partner.Label())
					} else {
						pair = formatter.StyleRed.Render("dangling pair reference")
					}
				}
				rows = append(rows, []string{m.Label(), string(m.PairPosition), pair, m.ID[:8]})
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"NAME", "POSITION", "PAIRING", "ID"}, rows))
			return nil
		},
	}
}

func newMilestoneUpdateCmd(app *App) *cobra.Command {
	var name, displayName string

	cmd := &cobra.Command{
		Use:   "update <milestone>",
		Short: "Update a milestone's names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveMilestoneID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Milestones.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if name != "" {
				m.Name = name
			}
			if cmd.Flags().Changed("display-name") {
				m.DisplayName = displayName
			}
			if err := app.Milestones.Update(ctx, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated milestone %s\n", m.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&displayName, "display-name", "", "New display label (empty clears it)")
	return cmd
}

func newMilestonePairCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pair <start> <end>",
		Short: "Link two milestones as a start/end pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			startID, err := resolveMilestoneID(ctx, app, args[0])
			if err != nil {
				return err
			}
			endID, err := resolveMilestoneID(ctx, app, args[1])
			if err != nil {
				return err
			}
			if err := app.Milestones.Pair(ctx, startID, endID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Paired %s (start) with %s (end)\n", args[0], args[1])
			return nil
		},
	}
}

func newMilestoneUnpairCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unpair <milestone>",
		Short: "Dissolve a milestone's pairing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveMilestoneID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Milestones.Unpair(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unpaired %s\n", args[0])
			return nil
		},
	}
}

func newMilestoneRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <milestone>",
		Short: "Remove a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveMilestoneID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Milestones.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed milestone %s\n", args[0])
			return nil
		},
	}
}
