package main

import (
	"context"
	"fmt"

	"github.com/dskvich/supatools/pkg/database"
	"github.com/dskvich/supatools/pkg/migration"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

func (a *app) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations",
	}
	cmd.AddCommand(a.migrateApplyCmd(), a.migrateUpCmd(), a.migrateStatusCmd())
	return cmd
}

func (a *app) migrateApplyCmd() *cobra.Command {
	var via string

	cmd := &cobra.Command{
		Use:   "apply <file.sql>",
		Short: "Execute one SQL file as a single batch (no applied-migrations ledger)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := migration.NewRunner(cmd.OutOrStdout())

			err := runner.Run(cmd.Context(), args[0], func(context.Context) (migration.Executor, error) {
				return a.openStore(via, false)
			})
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), color.RedString("Migration failed: %s", err))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Migration completed"))
			return nil
		},
	}
	addViaFlag(cmd, &via, viaDirect)

	return cmd
}

func (a *app) openDirect() (*bun.DB, error) {
	opts, err := a.cfg.dbOptions()
	if err != nil {
		return nil, err
	}
	return database.NewDB(opts)
}

func (a *app) migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up [dir]",
		Short: "Apply pending annotated migrations and record them in gorp_migrations",
		Long:  "Apply pending annotated migrations from dir, or the ones built into the binary when dir is omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDirect()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := database.RunMigrations(db.DB, dirArg(args))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Applied %d migration(s)", n))
			return nil
		},
	}
}

func (a *app) migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [dir]",
		Short: "List annotated migrations and whether they are recorded as applied",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDirect()
			if err != nil {
				return err
			}
			defer db.Close()

			statuses, err := database.Status(db.DB, dirArg(args))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range statuses {
				if s.Applied {
					fmt.Fprintf(out, "%s  %s  %s\n", color.GreenString("applied"), s.ID, s.AppliedAt.Format("2006-01-02 15:04:05"))
				} else {
					fmt.Fprintf(out, "%s  %s\n", color.YellowString("pending"), s.ID)
				}
			}
			return nil
		},
	}
}

func dirArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
