package cli

import (
	"fmt"

	"github.com/mkellerhals/opline/internal/cli/formatter"
	"github.com/mkellerhals/opline/internal/domain"
	"github.com/spf13/cobra"
)

func newProcedureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "procedure",
		Short: "Manage procedure types",
	}

	var specialty string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a procedure type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.ProcedureType{Name: args[0], Specialty: specialty}
			if err := app.Procedures.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added procedure type %s (%s)\n", p.Name, p.ID[:8])
			return nil
		},
	}
	add.Flags().StringVar(&specialty, "specialty", "", "Surgical specialty")

	list := &cobra.Command{
		Use:   "list",
		Short: "List procedure types",
		RunE: func(cmd *cobra.Command, args []string) error {
			procedures, err := app.Procedures.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(procedures))
			for _, p := range procedures {
				rows = append(rows, []string{p.Name, p.Specialty, p.ID[:8]})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"NAME", "SPECIALTY", "ID"}, rows))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "rm <procedure>",
		Short: "Remove a procedure type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProcedureID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Procedures.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed procedure type %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}

func newSurgeonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surgeon",
		Short: "Manage the surgeon roster",
	}

	var specialty string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a surgeon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &domain.Surgeon{Name: args[0], Specialty: specialty}
			if err := app.Surgeons.Create(cmd.Context(), s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added surgeon %s (%s)\n", s.Name, s.ID[:8])
			return nil
		},
	}
	add.Flags().StringVar(&specialty, "specialty", "", "Surgical specialty")

	list := &cobra.Command{
		Use:   "list",
		Short: "List surgeons",
		RunE: func(cmd *cobra.Command, args []string) error {
			surgeons, err := app.Surgeons.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(surgeons))
			for _, s := range surgeons {
				rows = append(rows, []string{s.Name, s.Specialty, s.ID[:8]})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(
				[]string{"NAME", "SPECIALTY", "ID"}, rows))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "rm <surgeon>",
		Short: "Remove a surgeon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSurgeonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Surgeons.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed surgeon %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}
