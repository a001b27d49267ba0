package replicate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient("r8-test")
	require.NoError(t, err)
	c.baseURL = srv.URL
	c.pollingInterval = 10 * time.Millisecond
	return c
}

func TestClient_GenerateImage_Immediate(t *testing.T) {
	var got CreatePredictionRequest
	var gotPath, gotPrefer string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPrefer = r.Header.Get("Prefer")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"id":"p1","status":"succeeded","output":"https://replicate.delivery/cat.png"}`))
	})

	url, err := c.GenerateImage(context.Background(), domain.ImageRequest{
		Model: domain.FluxProUltra11, Prompt: "a cat", Width: 1792, Height: 1024,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://replicate.delivery/cat.png", url)
	assert.Equal(t, "/models/black-forest-labs/flux-1.1-pro-ultra/predictions", gotPath)
	assert.Equal(t, "wait", gotPrefer)
	assert.Equal(t, "a cat", got.Input.Prompt)
	assert.Equal(t, "16:9", got.Input.AspectRatio)
}

func TestClient_GenerateImage_Polls(t *testing.T) {
	var polls atomic.Int32

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"id":"p2","status":"starting"}`))
			return
		}
		assert.Equal(t, "/predictions/p2", r.URL.Path)
		if polls.Add(1) < 2 {
			w.Write([]byte(`{"id":"p2","status":"processing"}`))
			return
		}
		w.Write([]byte(`{"id":"p2","status":"succeeded","output":"https://replicate.delivery/dog.png"}`))
	})

	url, err := c.GenerateImage(context.Background(), domain.ImageRequest{Model: domain.FluxProUltra11, Prompt: "a dog"})
	require.NoError(t, err)
	assert.Equal(t, "https://replicate.delivery/dog.png", url)
	assert.EqualValues(t, 2, polls.Load())
}

func TestClient_GenerateImage_Failed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"id":"p3","status":"starting"}`))
			return
		}
		w.Write([]byte(`{"id":"p3","status":"failed","error":"NSFW content detected"}`))
	})

	_, err := c.GenerateImage(context.Background(), domain.ImageRequest{Model: domain.FluxProUltra11, Prompt: "x"})
	assert.ErrorContains(t, err, "NSFW content detected")
}

func TestClient_GenerateImage_UnsupportedModel(t *testing.T) {
	c, err := NewClient("r8-test")
	require.NoError(t, err)

	_, err = c.GenerateImage(context.Background(), domain.ImageRequest{Model: domain.DallE3Model, Prompt: "x"})
	assert.ErrorContains(t, err, "unsupported model")
}

func TestAspectRatioFor(t *testing.T) {
	assert.Equal(t, "1:1", AspectRatioFor(1024, 1024))
	assert.Equal(t, "1:1", AspectRatioFor(0, 0))
	assert.Equal(t, "16:9", AspectRatioFor(1920, 1080))
	assert.Equal(t, "9:16", AspectRatioFor(1080, 1920))
	assert.Equal(t, "3:2", AspectRatioFor(1500, 1000))
	assert.Equal(t, "21:9", AspectRatioFor(3000, 1000))
}
