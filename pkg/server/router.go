package server

import (
	"context"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/dskvich/supatools/pkg/imagegen"
	"github.com/dskvich/supatools/pkg/server/handlers"
	"github.com/dskvich/supatools/pkg/server/middleware"
	"github.com/gin-gonic/gin"
)

type ImageProvider interface {
	GenerateImage(ctx context.Context, req domain.ImageRequest) (string, error)
}

func NewRouter(imageProvider ImageProvider, imageModel string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog())

	r.POST(imagegen.GenerateImagePath, handlers.GenerateImage(imageProvider, imageModel))
	r.GET("/api/blocks/disclaimer", handlers.DisclaimerConfig())
	r.GET("/blocks/disclaimer", handlers.DisclaimerPreview())

	return r
}
