package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dskvich/supatools/pkg/blocks/disclaimer"
	"github.com/dskvich/supatools/pkg/logger"
	"github.com/gin-gonic/gin"
)

func DisclaimerConfig() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, disclaimer.BlockConfig)
	}
}

// DisclaimerPreview renders the block from query props; missing ones take
// the block defaults.
func DisclaimerPreview() gin.HandlerFunc {
	return func(c *gin.Context) {
		props := disclaimer.Props{
			PaidForBy:       c.Query("paidForBy"),
			PacID:           c.Query("pacId"),
			TextColor:       c.Query("textColor"),
			BackgroundColor: c.Query("backgroundColor"),
			Note:            c.Query("note"),
		}.WithDefaults(disclaimer.BlockConfig.DefaultProps)

		out, err := disclaimer.Render(props)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "rendering disclaimer", logger.Err(err))
			c.String(http.StatusInternalServerError, "failed to render block")
			return
		}

		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
	}
}
