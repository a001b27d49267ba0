package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/dskvich/supatools/pkg/logger"
	"github.com/samber/lo"
)

type client struct {
	baseURL string
	hc      *http.Client
}

// NewClient calls the generate-image route of the app served at baseURL.
// The http.Client has no timeout; cancel through the context.
func NewClient(baseURL string) (*client, error) {
	if baseURL == "" {
		return nil, errors.New("base url cannot be empty")
	}
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
	}, nil
}

func (c *client) GenerateImage(ctx context.Context, r Request) (string, error) {
	if strings.TrimSpace(r.Prompt) == "" {
		return "", domain.ErrEmptyPrompt
	}
	r.Width = lo.Ternary(r.Width > 0, r.Width, domain.DefaultImageDimension)
	r.Height = lo.Ternary(r.Height > 0, r.Height, domain.DefaultImageDimension)

	reqBody, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+GenerateImagePath, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "error generating image", logger.Err(err))
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.ErrorContext(ctx, "error generating image", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", domain.ErrGenerateImage, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.ErrorContext(ctx, "error generating image", logger.Err(err))
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		slog.ErrorContext(ctx, "error generating image", logger.Err(err))
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if out.ImageURL == "" {
		err := errors.New("response has no imageUrl")
		slog.ErrorContext(ctx, "error generating image", logger.Err(err), "body", string(respBody))
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return out.ImageURL, nil
}
