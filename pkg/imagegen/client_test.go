package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dskvich/supatools/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GenerateImage(t *testing.T) {
	var got Request
	var gotPath, gotMethod, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"imageUrl":"http://x/y.png"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	url, err := c.GenerateImage(context.Background(), Request{Prompt: "a cat"})
	require.NoError(t, err)

	assert.Equal(t, "http://x/y.png", url)
	assert.Equal(t, GenerateImagePath, gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, Request{Prompt: "a cat", Width: 1024, Height: 1024}, got)
}

func TestClient_GenerateImage_CustomDimensions(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"imageUrl":"http://x/wide.png"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.GenerateImage(context.Background(), Request{Prompt: "a cat", Width: 1792, Height: 1024})
	require.NoError(t, err)
	assert.Equal(t, 1792, got.Width)
	assert.Equal(t, 1024, got.Height)
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestClient_GenerateImage_ServerError(t *testing.T) {
	logs := captureLog(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"upstream failed"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	url, err := c.GenerateImage(context.Background(), Request{Prompt: "a cat"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerateImage)
	assert.Empty(t, url)
	assert.Contains(t, logs.String(), "error generating image")
	assert.Contains(t, logs.String(), "status=500")
}

func TestClient_GenerateImage_MissingURL(t *testing.T) {
	logs := captureLog(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"oops"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	url, err := c.GenerateImage(context.Background(), Request{Prompt: "a cat"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no imageUrl")
	assert.Empty(t, url)
	assert.Contains(t, logs.String(), "error generating image")
}

func TestClient_GenerateImage_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.GenerateImage(context.Background(), Request{Prompt: "a cat"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrGenerateImage)
}

func TestClient_GenerateImage_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c, err := NewClient(baseURL)
	require.NoError(t, err)

	_, err = c.GenerateImage(context.Background(), Request{Prompt: "a cat"})
	assert.Error(t, err)
}

func TestClient_GenerateImage_EmptyPrompt(t *testing.T) {
	c, err := NewClient("http://localhost")
	require.NoError(t, err)

	_, err = c.GenerateImage(context.Background(), Request{Prompt: "  "})
	assert.ErrorIs(t, err, domain.ErrEmptyPrompt)
}
