package replicate

import "time"

type Prediction struct {
	ID          string         `json:"id"`
	Version     string         `json:"version"`
	Logs        string         `json:"logs"`
	Error       string         `json:"error"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt time.Time      `json:"completed_at,omitempty"`
	URLs        map[string]any `json:"urls"`
	Metrics     map[string]any `json:"metrics"`
	Output      string         `json:"output"`
	StartedAt   time.Time      `json:"started_at,omitempty"`
}

type CreatePredictionRequest struct {
	Input FluxInput `json:"input"`
}

type FluxInput struct {
	Prompt       string `json:"prompt"`
	AspectRatio  string `json:"aspect_ratio"`
	OutputFormat string `json:"output_format,omitempty"`
}

const (
	PredictionStatusStarting   = "starting"
	PredictionStatusProcessing = "processing"
	PredictionStatusSucceeded  = "succeeded"
	PredictionStatusFailed     = "failed"
	PredictionStatusCanceled   = "canceled"
)
