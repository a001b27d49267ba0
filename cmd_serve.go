package main

import (
	"errors"
	"fmt"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/dskvich/supatools/pkg/llm"
	"github.com/dskvich/supatools/pkg/llm/openai"
	"github.com/dskvich/supatools/pkg/llm/replicate"
	"github.com/dskvich/supatools/pkg/server"
	"github.com/dskvich/supatools/pkg/services"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func (a *app) imageProviders() (map[string]llm.ImageGenerator, error) {
	providers := map[string]llm.ImageGenerator{}

	if a.cfg.OpenAIToken != "" {
		openAIClient, err := openai.NewClient(a.cfg.OpenAIToken)
		if err != nil {
			return nil, fmt.Errorf("creating open ai client: %w", err)
		}
		providers[domain.DallE2Model] = openAIClient
		providers[domain.DallE3Model] = openAIClient
	}

	if a.cfg.ReplicateToken != "" {
		replicateClient, err := replicate.NewClient(a.cfg.ReplicateToken)
		if err != nil {
			return nil, fmt.Errorf("creating replicate client: %w", err)
		}
		for model := range replicate.ModelToReplicateModel {
			providers[model] = replicateClient
		}
	}

	if _, ok := providers[a.cfg.ImageModel]; !ok {
		return nil, errors.New("no image provider configured for IMAGE_MODEL " + a.cfg.ImageModel)
	}

	return providers, nil
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generate-image route and the disclaimer block endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			providers, err := a.imageProviders()
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			router := server.NewRouter(llm.NewMultiProviderImageClient(providers), a.cfg.ImageModel)

			var svcGroup services.Group
			if svc, err := services.NewHTTPServer(a.cfg.HTTPAddr, router); err == nil {
				svcGroup = append(svcGroup, svc)
			} else {
				return err
			}

			return svcGroup.Start(cmd.Context())
		},
	}
}
