package main

import (
	"context"
	"fmt"

	"github.com/dskvich/supatools/pkg/tablecheck"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) checkTableCmd() *cobra.Command {
	var (
		via         string
		remediation string
	)

	cmd := &cobra.Command{
		Use:   "check-table <table>",
		Short: "Exit 0 when the table answers a limit-1 read, 1 otherwise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := tablecheck.NewChecker(cmd.OutOrStdout(), remediation)
			err := checker.Run(cmd.Context(), args[0], func(context.Context) (tablecheck.Conn, error) {
				return a.openStore(via, true)
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("OK"))
			return nil
		},
	}
	addViaFlag(cmd, &via, viaAPI)
	cmd.Flags().StringVar(&remediation, "migration", "", "migration file that creates the table, shown when it is missing")

	return cmd
}
