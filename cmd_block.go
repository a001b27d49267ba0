package main

import (
	"fmt"

	"github.com/dskvich/supatools/pkg/blocks/disclaimer"
	"github.com/spf13/cobra"
)

func (a *app) blockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Render page-builder blocks",
	}
	cmd.AddCommand(a.disclaimerCmd())
	return cmd
}

func (a *app) disclaimerCmd() *cobra.Command {
	var (
		props      disclaimer.Props
		showConfig bool
		format     string
	)
	defaults := disclaimer.BlockConfig.DefaultProps

	cmd := &cobra.Command{
		Use:   "disclaimer",
		Short: "Print the disclaimer block markup, or its page-builder config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if showConfig {
				return disclaimer.BlockConfig.Export(out, format)
			}

			markup, err := disclaimer.Render(props)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, markup)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&props.PaidForBy, "paid-for-by", defaults.PaidForBy, "committee that paid for the communication")
	f.StringVar(&props.PacID, "pac-id", defaults.PacID, "committee ID")
	f.StringVar(&props.TextColor, "text-color", defaults.TextColor, "text color")
	f.StringVar(&props.BackgroundColor, "background-color", defaults.BackgroundColor, "background color")
	f.StringVar(&props.Note, "note", defaults.Note, "additional note, markdown")
	f.BoolVar(&showConfig, "config", false, "print the block config instead of markup")
	f.StringVar(&format, "format", disclaimer.FormatJSON, fmt.Sprintf("config format, one of %v", disclaimer.Formats))

	return cmd
}
