package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/samber/lo"
)

const defaultBaseURL = "https://api.openai.com/v1"

type client struct {
	token   string
	baseURL string
	hc      *http.Client
}

func NewClient(token string) (*client, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}
	return &client{
		token:   token,
		baseURL: defaultBaseURL,
		hc:      &http.Client{},
	}, nil
}

func (c *client) GenerateImage(ctx context.Context, r domain.ImageRequest) (string, error) {
	model := lo.CoalesceOrEmpty(r.Model, domain.DallE3Model)

	reqBody, err := json.Marshal(imageRequest{
		Model:          model,
		Prompt:         r.Prompt,
		N:              1,
		Size:           closestSize(model, r.Width, r.Height),
		Quality:        lo.Ternary(model == domain.DallE3Model, qualityStandard, ""),
		ResponseFormat: imageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.doRequest(req)
	if err != nil {
		return "", fmt.Errorf("failed to create image: %w", err)
	}

	var resp imageResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to parse image response: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("no image returned")
	}

	return resp.Data[0].URL, nil
}

func (c *client) doRequest(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("unexpected status code: %d, %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// closestSize maps free-form dimensions onto the sizes each model accepts.
// dall-e-2 only does squares; dall-e-3 does 1024 squares and two 7:4 shapes.
func closestSize(model string, width, height int) imageSize {
	width = lo.Ternary(width > 0, width, domain.DefaultImageDimension)
	height = lo.Ternary(height > 0, height, domain.DefaultImageDimension)

	if model == domain.DallE2Model {
		switch side := max(width, height); {
		case side <= 256:
			return size256x256
		case side <= 512:
			return size512x512
		default:
			return size1024x1024
		}
	}

	switch {
	case width > height:
		return size1792x1024
	case height > width:
		return size1024x1792
	default:
		return size1024x1024
	}
}
