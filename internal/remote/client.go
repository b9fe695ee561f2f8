// Package remote pushes and pulls full snapshots to a backup endpoint.
//
// The endpoint speaks a small JSON envelope: a POST carries the snapshot
// and answers {ok, error?}; a GET answers {ok, data?, error?}. There is no
// retry and no merge. A failed attempt leaves local data as it was.
package remote

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
	"time"

	"github.com/xolan/truflow/internal/logging"
	"github.com/xolan/truflow/internal/store"
)

// Fallback messages used when the endpoint gives no reason.
const (
	PushFailedMessage = "Sync failed"
	NoBackupMessage   = "No backup found"
)

// maxResponseBytes bounds the size of a pulled snapshot.
const maxResponseBytes = 64 << 20

var (
	// ErrNoURL is returned when no endpoint is configured.
	ErrNoURL = errors.New("sync URL is not configured")
	// ErrRejected wraps a response with ok=false.
	ErrRejected = errors.New("backup endpoint rejected the request")
)

// Response is the envelope returned by the endpoint.
type Response struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client talks to one backup endpoint.
type Client struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

// NewClient returns a client for url. A non-positive timeout leaves requests
// bounded only by ctx.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	hc := &http.Client{}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{
		url:    strings.TrimSpace(url),
		http:   hc,
		logger: logger.With("component", "remote"),
	}
}

// URL returns the endpoint address.
func (c *Client) URL() string {
	return c.url
}

// Push uploads snap.
func (c *Client) Push(ctx context.Context, snap store.Snapshot) error {
	if c.url == "" {
		return ErrNoURL
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		c.logger.Error("push failed", "error", err)
		return err
	}
	if !resp.OK {
		msg := resp.Error
		if msg == "" {
			msg = PushFailedMessage
		}
		c.logger.Warn("push rejected", "reason", msg)
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	}

	c.logger.Info("pushed snapshot", "bytes", len(body),
		"projects", len(snap.Projects), "tasks", len(snap.Tasks), "timeLogs", len(snap.TimeLogs))
	return nil
}

// Pull downloads the latest snapshot.
func (c *Client) Pull(ctx context.Context) (store.Snapshot, error) {
	if c.url == "" {
		return store.Snapshot{}, ErrNoURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		c.logger.Error("pull failed", "error", err)
		return store.Snapshot{}, err
	}
	if !resp.OK || len(resp.Data) == 0 || string(resp.Data) == "null" {
		msg := resp.Error
		if msg == "" {
			msg = NoBackupMessage
		}
		c.logger.Warn("pull rejected", "reason", msg)
		return store.Snapshot{}, fmt.Errorf("%w: %s", ErrRejected, msg)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(resp.Data, &snap); err != nil {
		c.logger.Error("pull returned invalid snapshot", "error", err)
		return store.Snapshot{}, fmt.Errorf("invalid snapshot in response: %w", err)
	}

	c.logger.Info("pulled snapshot",
		"projects", len(snap.Projects), "tasks", len(snap.Tasks), "timeLogs", len(snap.TimeLogs))
	return snap, nil
}

// do sends req and decodes the envelope. A non-JSON body is an error even
// when the status is 2xx; a JSON envelope is honoured whatever the status.
func (c *Client) do(req *http.Request) (Response, error) {
	httpResp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("request to backup endpoint failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		if httpResp.StatusCode >= 300 {
			return Response{}, fmt.Errorf("backup endpoint returned %s", httpResp.Status)
		}
		return Response{}, fmt.Errorf("invalid response from backup endpoint: %w", err)
	}
	return resp, nil
}
