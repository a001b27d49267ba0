package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	restPath     = "/rest/v1"
	execSQLProc  = "exec_sql"
	headerAPIKey = "apikey"
)

type client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

// NewClient talks to the project's REST gateway. Schema changes through
// exec_sql need the service role key; table probes work with the anon key
// as long as RLS lets the row through.
func NewClient(baseURL, apiKey string) (*client, error) {
	if baseURL == "" {
		return nil, errors.New("supabase url cannot be empty")
	}
	if apiKey == "" {
		return nil, errors.New("supabase api key cannot be empty")
	}
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		hc:      &http.Client{},
	}, nil
}

type execSQLRequest struct {
	SQL string `json:"sql"`
}

// ExecSQL calls the exec_sql remote procedure, which must exist in the
// project and run with security definer rights.
func (c *client) ExecSQL(ctx context.Context, script string) error {
	reqBody, err := json.Marshal(execSQLRequest{SQL: script})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+restPath+"/rpc/"+execSQLProc, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if _, err := c.doRequest(req); err != nil {
		return fmt.Errorf("failed to execute sql: %w", err)
	}
	return nil
}

func (c *client) ProbeTable(ctx context.Context, table string) error {
	schema, name := splitTable(table)

	q := url.Values{}
	q.Set("select", "*")
	q.Set("limit", "1")
	tableURL := fmt.Sprintf("%s%s/%s?%s", c.baseURL, restPath, url.PathEscape(name), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tableURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	if schema != "" {
		req.Header.Set("Accept-Profile", schema)
	}

	if _, err := c.doRequest(req); err != nil {
		return fmt.Errorf("failed to query table %s: %w", table, err)
	}
	return nil
}

func (c *client) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *client) doRequest(req *http.Request) ([]byte, error) {
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

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
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

func splitTable(table string) (schema, name string) {
	if i := strings.IndexByte(table, '.'); i > -1 {
		return table[:i], table[i+1:]
	}
	return "", table
}
