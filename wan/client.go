// Package wan is a client for the DashScope Wan asynchronous
// video-generation API: it submits synthesis tasks and normalizes task
// lookups into a stable status shape.
package wan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"wanproxy/config"
)

const synthesisPath = "/services/aigc/video-generation/video-synthesis"

// Client talks to the upstream API. It borrows a long-lived
// *http.Client so that every call reuses one pooled connection set; it
// never constructs or closes the transport itself.
type Client struct {
	cfg  *config.Config
	http *http.Client
}

func NewClient(cfg *config.Config, httpClient *http.Client) *Client {
	return &Client{cfg: cfg, http: httpClient}
}

// Submit creates a video-generation task upstream and returns its task
// id. Transport-level failures (connect errors, timeouts) are retried up
// to cfg.SubmitAttempts total attempts with cfg.RetryDelay between them.
// Upstream rejections and malformed success bodies are terminal on the
// first attempt; repeating the call cannot change the outcome.
func (c *Client) Submit(ctx context.Context, genReq GenerationRequest) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrAPIKeyMissing
	}

	payload := buildSynthesisPayload(c.cfg.Model, genReq)
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("could not encode synthesis payload: %w", err)
	}

	url := c.cfg.BaseURL + synthesisPath

	var lastErr error
	for attempt := 1; attempt <= c.cfg.SubmitAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", &NetworkError{Attempts: attempt - 1, Err: ctx.Err()}
			case <-time.After(c.cfg.RetryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("could not build synthesis request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("X-DashScope-Async", "enable")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			log.Printf("Submission attempt %d/%d failed: %v", attempt, c.cfg.SubmitAttempts, err)
			continue
		}

		return parseSubmitResponse(resp)
	}

	return "", &NetworkError{Attempts: c.cfg.SubmitAttempts, Err: lastErr}
}

func parseSubmitResponse(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Attempts: 1, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: raw}
	}

	var decoded struct {
		Output struct {
			TaskID string `json:"task_id"`
		} `json:"output"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded.Output.TaskID == "" {
		return "", &ContractError{Reason: "response missing output.task_id"}
	}

	return decoded.Output.TaskID, nil
}

// TaskStatus looks up a task and normalizes the upstream's answer into a
// StatusReport. Lookups are not retried; polling callers re-invoke on
// their own cadence. The task id is forwarded as-is, unvalidated, and
// whatever body the upstream returns is translated regardless of its
// HTTP status.
func (c *Client) TaskStatus(ctx context.Context, taskID string) (StatusReport, error) {
	url := c.cfg.BaseURL + "/tasks/" + taskID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return StatusReport{}, fmt.Errorf("could not build task lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return StatusReport{}, &NetworkError{Attempts: 1, Err: err}
	}
	defer resp.Body.Close()

	var decoded taskResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return StatusReport{}, &ContractError{Reason: "task response is not valid JSON"}
	}

	return translateTask(decoded), nil
}
