package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/dskvich/supatools/pkg/imagegen"
	"github.com/dskvich/supatools/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type generateImageProvider interface {
	GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error)
}

func GenerateImage(imageProvider generateImageProvider, model string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req imagegen.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, imagegen.ErrorResponse{Error: "Invalid request body"})
			return
		}

		if strings.TrimSpace(req.Prompt) == "" {
			c.JSON(http.StatusBadRequest, imagegen.ErrorResponse{Error: "Prompt is required"})
			return
		}

		imageReq := domain.ImageRequest{
			Model:  model,
			Prompt: req.Prompt,
			Width:  lo.Ternary(req.Width > 0, req.Width, domain.DefaultImageDimension),
			Height: lo.Ternary(req.Height > 0, req.Height, domain.DefaultImageDimension),
		}

		url, err := imageProvider.GenerateImage(c.Request.Context(), imageReq)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "image generation failed", "model", model, logger.Err(err))
			c.JSON(http.StatusInternalServerError, imagegen.ErrorResponse{Error: "Failed to generate image"})
			return
		}

		slog.InfoContext(c.Request.Context(), "image generated", "model", model, "width", imageReq.Width, "height", imageReq.Height)
		c.JSON(http.StatusOK, imagegen.Response{ImageURL: url})
	}
}
