package main

import (
	"fmt"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/dskvich/supatools/pkg/imagegen"
	"github.com/spf13/cobra"
)

func (a *app) generateImageCmd() *cobra.Command {
	var req imagegen.Request

	cmd := &cobra.Command{
		Use:   "generate-image",
		Short: "Ask the app's generate-image route for an image and print its URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := imagegen.NewClient(a.cfg.ImageAPIURL)
			if err != nil {
				return err
			}

			url, err := c.GenerateImage(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Prompt, "prompt", "", "image prompt")
	f.IntVar(&req.Width, "width", domain.DefaultImageDimension, "image width")
	f.IntVar(&req.Height, "height", domain.DefaultImageDimension, "image height")
	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}
