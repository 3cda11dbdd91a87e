// Package client talks to the review backend: it starts workflow and chat
// streams and fetches workflow results. Stream bodies are returned raw for
// the ingest package to consume.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chartlight/chartlight/pkg/results"
)

const (
	supervisorStreamPath = "/api/chat/supervisor/stream"
	agentStreamPath      = "/api/workflows/agent/stream"
	workflowResultsPath  = "/api/workflows/%s/results"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ChatMessage is one prior turn sent with a supervisor request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SupervisorRequest starts a supervisor chat stream over a patient dataset.
type SupervisorRequest struct {
	Messages  []ChatMessage `json:"messages"`
	DatasetID string        `json:"dataset_id,omitempty"`
}

// AgentRequest sends a message to a workflow agent for one encounter.
type AgentRequest struct {
	WorkflowID string `json:"workflow_id"`
	Message    string `json:"message"`
	MRN        string `json:"mrn,omitempty"`
	CSN        string `json:"csn,omitempty"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// StreamSupervisor opens the supervisor chat stream. The returned body is a
// newline-delimited JSON event stream; the caller owns closing it.
func (c *Client) StreamSupervisor(ctx context.Context, req SupervisorRequest) (io.ReadCloser, error) {
	return c.postStream(ctx, supervisorStreamPath, req)
}

// StreamAgent opens a workflow-agent message stream.
func (c *Client) StreamAgent(ctx context.Context, req AgentRequest) (io.ReadCloser, error) {
	return c.postStream(ctx, agentStreamPath, req)
}

func (c *Client) postStream(ctx context.Context, path string, payload any) (io.ReadCloser, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, decodeErrorResponse(resp)
	}

	return resp.Body, nil
}

// decodeErrorResponse extracts a useful message from a non-200 response,
// preferring a JSON {"error": ...} body and falling back to the raw body.
func decodeErrorResponse(resp *http.Response) error {
	errorBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("request failed with status %d (failed to read error response: %w)", resp.StatusCode, err)
	}

	var errorResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(errorBody, &errorResp) == nil && errorResp.Error != "" {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, errorResp.Error)
	}

	return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(errorBody))
}

// resultsEnvelope covers both result formats the backend is known to emit.
type resultsEnvelope struct {
	Rows        []results.LegacyRow        `json:"rows,omitempty"`
	Definitions []results.OutputDefinition `json:"output_definitions,omitempty"`
	Values      []results.OutputValue      `json:"output_values,omitempty"`
}

// FetchResults retrieves a finished workflow's results and normalizes
// whichever shape the backend returned into uniform rows.
func (c *Client) FetchResults(ctx context.Context, workflowID string) ([]results.Row, error) {
	url := c.baseURL + fmt.Sprintf(workflowResultsPath, workflowID)
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeErrorResponse(resp)
	}

	var envelope resultsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	if len(envelope.Definitions) > 0 || len(envelope.Values) > 0 {
		return results.FromOutputValues(envelope.Definitions, envelope.Values), nil
	}
	return results.FromLegacy(envelope.Rows), nil
}
