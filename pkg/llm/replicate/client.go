package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dskvich/supatools/pkg/domain"
)

const (
	defaultBaseURL         = "https://api.replicate.com/v1"
	predictionsPath        = "/predictions"
	modelsPath             = "/models"
	defaultPollingTimeout  = 60 * time.Second
	defaultPollingInterval = 1 * time.Second
)

type client struct {
	token           string
	baseURL         string
	pollingInterval time.Duration
	hc              *http.Client
}

func NewClient(token string) (*client, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}
	return &client{
		token:           token,
		baseURL:         defaultBaseURL,
		pollingInterval: defaultPollingInterval,
		hc:              &http.Client{},
	}, nil
}

// GenerateImage returns the URL of the prediction output. Replicate keeps
// outputs for an hour, so callers that need the image longer must copy it.
func (c *client) GenerateImage(ctx context.Context, r domain.ImageRequest) (string, error) {
	replicateModel, ok := ModelToReplicateModel[r.Model]
	if !ok {
		return "", fmt.Errorf("unsupported model: %s", r.Model)
	}

	predictionURL := fmt.Sprintf("%s/%s/predictions", c.baseURL+modelsPath, replicateModel)

	reqBody, err := json.Marshal(CreatePredictionRequest{
		Input: FluxInput{
			Prompt:       r.Prompt,
			AspectRatio:  AspectRatioFor(r.Width, r.Height),
			OutputFormat: "png",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, predictionURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "wait")

	respBody, err := c.doRequest(req)
	if err != nil {
		return "", fmt.Errorf("failed to create prediction: %w", err)
	}

	var prediction Prediction
	if err := json.Unmarshal(respBody, &prediction); err != nil {
		return "", fmt.Errorf("failed to parse prediction response: %w", err)
	}

	if prediction.Status != PredictionStatusSucceeded {
		prediction, err = c.pollPrediction(ctx, prediction.ID)
		if err != nil {
			return "", fmt.Errorf("failed to poll prediction: %w", err)
		}
	}

	if prediction.Status != PredictionStatusSucceeded {
		return "", fmt.Errorf("prediction failed with status %s: %s", prediction.Status, prediction.Error)
	}

	if prediction.Output == "" {
		return "", errors.New("no output returned")
	}

	return prediction.Output, nil
}

func (c *client) doRequest(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return respBody, nil
}

func (c *client) pollPrediction(ctx context.Context, predictionID string) (Prediction, error) {
	var prediction Prediction

	timeoutCtx, cancel := context.WithTimeout(ctx, defaultPollingTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeoutCtx.Done():
			return prediction, errors.New("polling timed out")
		case <-ticker.C:
			predictionURL := fmt.Sprintf("%s/%s", c.baseURL+predictionsPath, predictionID)
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, predictionURL, nil)
			if err != nil {
				return prediction, fmt.Errorf("failed to create HTTP request: %w", err)
			}

			respBody, err := c.doRequest(req)
			if err != nil {
				return prediction, fmt.Errorf("failed to get prediction: %w", err)
			}

			if err := json.Unmarshal(respBody, &prediction); err != nil {
				return prediction, fmt.Errorf("failed to parse prediction response: %w", err)
			}

			if prediction.Status == PredictionStatusSucceeded ||
				prediction.Status == PredictionStatusFailed ||
				prediction.Status == PredictionStatusCanceled {
				return prediction, nil
			}
		}
	}
}
