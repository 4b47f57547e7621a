// -- pkg/snapshot/client.go --

// Package snapshot fetches graph snapshots from the remote endpoint. The
// client enforces the request lifecycle the host relies on: at most one
// request in flight, superseded requests are canceled and reported as
// aborted (never as errors), and every phase transition emits a RequestInfo
// for the diagnostics surface.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/kynelabs/graphscope/api/schemas"
	"github.com/kynelabs/graphscope/internal/metrics"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Observer receives every RequestInfo phase transition (pending, then one of
// success/error/aborted). Useful for diagnostic UI and tests.
type Observer func(schemas.RequestInfo)

// Options configures a Client.
type Options struct {
	BaseURL      string
	EndpointPath string
	Timeout      time.Duration
	ForceHTTP2   bool
	Observer     Observer
	Logger       *zap.Logger
	// HTTPClient overrides the built transport, mainly for tests.
	HTTPClient *http.Client
}

// Client is a cancelable snapshot fetcher. Safe for concurrent use; a new
// Fetch supersedes and cancels the previous one.
type Client struct {
	baseURL      string
	endpointPath string
	http         *http.Client
	observer     Observer
	log          *zap.Logger

	mu         sync.Mutex
	generation uint64
	cancelPrev context.CancelFunc
}

// NewClient creates a snapshot client.
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("snapshot")

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(opts.Timeout, opts.ForceHTTP2, logger)
	}
	return &Client{
		baseURL:      opts.BaseURL,
		endpointPath: opts.EndpointPath,
		http:         httpClient,
		observer:     opts.Observer,
		log:          logger,
	}
}

// BuildURL resolves the exact request URL for a config. Query parameters are
// encoded in sorted key order, so equal configs always produce equal URLs.
func BuildURL(baseURL, endpointPath string, cfg schemas.RequestConfig) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	u.Path = endpointPath

	q := url.Values{}
	q.Set("mode", cfg.Mode)
	q.Set("depth", strconv.Itoa(cfg.Depth))
	q.Set("limit", strconv.Itoa(cfg.Filters.Limit))
	if cfg.RootNodeID != "" {
		q.Set("rootId", cfg.RootNodeID)
	}
	if cfg.ProjectID != "" {
		q.Set("projectId", cfg.ProjectID)
	}
	for _, m := range cfg.Filters.Modalities {
		q.Add("modalities", m)
	}
	if cfg.Filters.SnapshotAt != nil {
		q.Set("snapshotAt", cfg.Filters.SnapshotAt.UTC().Format(time.RFC3339))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// URL resolves the request URL against the client's configured endpoint.
func (c *Client) URL(cfg schemas.RequestConfig) (string, error) {
	return BuildURL(c.baseURL, c.endpointPath, cfg)
}

// Abort cancels any request currently in flight. Used on teardown.
func (c *Client) Abort() {
	c.mu.Lock()
	if c.cancelPrev != nil {
		c.cancelPrev()
		c.cancelPrev = nil
	}
	c.mu.Unlock()
}

// Fetch issues a snapshot request, canceling any request still in flight
// from a previous call. On abort the returned error is nil and the snapshot
// is nil; callers inspect RequestInfo.Status. All other failures are
// classified into RequestInfo.ErrorKind and also returned as an error.
func (c *Client) Fetch(ctx context.Context, cfg schemas.RequestConfig) (*schemas.Snapshot, schemas.RequestInfo, error) {
	target, err := c.URL(cfg)
	if err != nil {
		info := newRequestInfo(target)
		finishError(&info, schemas.ErrorKindUnknown, 0, err)
		c.emit(info)
		return nil, info, err
	}

	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	if c.cancelPrev != nil {
		c.cancelPrev()
	}
	c.cancelPrev = cancel
	c.generation++
	gen := c.generation
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		// Only clear the stored cancel if no newer request replaced it.
		if c.generation == gen {
			c.cancelPrev = nil
		}
		c.mu.Unlock()
		cancel()
	}()

	info := newRequestInfo(target)
	c.emit(info)
	c.log.Debug("Fetching snapshot", zap.String("url", target), zap.String("request_id", info.ID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		finishError(&info, schemas.ErrorKindUnknown, 0, err)
		c.emit(info)
		return nil, info, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.classifyTransportFailure(ctx, info, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("snapshot endpoint returned %d: %s", resp.StatusCode, string(body))
		finishError(&info, schemas.ErrorKindHTTP, resp.StatusCode, err)
		c.emit(info)
		return nil, info, err
	}

	var snap schemas.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		err = fmt.Errorf("decoding snapshot: %w", err)
		finishError(&info, schemas.ErrorKindUnknown, resp.StatusCode, err)
		c.emit(info)
		return nil, info, err
	}

	finishSuccess(&info, resp.StatusCode)
	c.emit(info)
	c.log.Debug("Snapshot received",
		zap.Int("nodes", len(snap.Nodes)),
		zap.Int("edges", len(snap.Edges)),
		zap.Int64("duration_ms", info.DurationMs))
	return &snap, info, nil
}

// classifyTransportFailure maps a transport-level error into the taxonomy:
// aborted (superseded, swallowed), timeout, or network.
func (c *Client) classifyTransportFailure(ctx context.Context, info schemas.RequestInfo, err error) (*schemas.Snapshot, schemas.RequestInfo, error) {
	switch {
	case ctx.Err() == context.Canceled || errors.Is(err, context.Canceled):
		finishAborted(&info)
		c.emit(info)
		return nil, info, nil
	case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
		finishError(&info, schemas.ErrorKindTimeout, 0, err)
	default:
		finishError(&info, schemas.ErrorKindNetwork, 0, err)
	}
	c.emit(info)
	return nil, info, err
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func (c *Client) emit(info schemas.RequestInfo) {
	if info.Terminal() {
		metrics.SnapshotFetchesTotal.WithLabelValues(string(info.Status), string(info.ErrorKind)).Inc()
		metrics.SnapshotFetchDuration.Observe(float64(info.DurationMs) / 1000)
	}
	if c.observer != nil {
		c.observer(info)
	}
}

func newRequestInfo(target string) schemas.RequestInfo {
	return schemas.RequestInfo{
		ID:        uuid.NewString(),
		Target:    target,
		Status:    schemas.RequestPending,
		StartedAt: time.Now(),
	}
}

func finishSuccess(info *schemas.RequestInfo, httpStatus int) {
	now := time.Now()
	info.Status = schemas.RequestSuccess
	info.HTTPStatus = httpStatus
	info.CompletedAt = &now
	info.DurationMs = now.Sub(info.StartedAt).Milliseconds()
}

func finishError(info *schemas.RequestInfo, kind schemas.ErrorKind, httpStatus int, err error) {
	now := time.Now()
	info.Status = schemas.RequestError
	info.ErrorKind = kind
	info.HTTPStatus = httpStatus
	info.ErrorMessage = err.Error()
	info.CompletedAt = &now
	info.DurationMs = now.Sub(info.StartedAt).Milliseconds()
}

func finishAborted(info *schemas.RequestInfo) {
	now := time.Now()
	info.Status = schemas.RequestAborted
	info.ErrorKind = schemas.ErrorKindAborted
	info.CompletedAt = &now
	info.DurationMs = now.Sub(info.StartedAt).Milliseconds()
}
