// Package api talks to the study backend over HTTP/JSON. It implements every
// collaborator port of the session controller plus the statistics endpoints
// used by the dashboard.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client is a thin JSON transport shared by the endpoint clients.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the backend at cfg.BaseURL.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// do sends in as the JSON body (when non-nil) and decodes the response into
// out (when non-nil). Calls are never retried.
func (c *Client) do(ctx context.Context, call Call, method, path string, in, out any) error {
	start := time.Now()
	if d := c.cfg.CallTimeout(call); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	status, err := c.roundTrip(ctx, method, path, in, out)
	err = classify(ctx, err)

	c.observer.OnCallComplete(CallEvent{
		Call:       call,
		Method:     method,
		Path:       path,
		StatusCode: status,
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
		ErrorCode:  errorCode(err),
	})
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return resp.StatusCode, fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return resp.StatusCode, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return resp.StatusCode, nil
}

// classify maps transport failures onto the package sentinels.
func classify(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case ctx.Err() != nil:
		return ctx.Err()
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("HTTP_%d", statusErr.StatusCode)
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}
