// Package client provides a client for the cultivation tracking service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mycotrack/mycotrack/pkg/apperrors"
	"github.com/mycotrack/mycotrack/pkg/jsonutil"
	"github.com/mycotrack/mycotrack/pkg/logging"
	"github.com/mycotrack/mycotrack/pkg/middleware"
	"github.com/mycotrack/mycotrack/pkg/models"
)

// DefaultTimeout is the maximum time to wait for service responses.
const DefaultTimeout = 30 * time.Second

// UsernameHeader carries the caller identity on every request.
const UsernameHeader = "X-Username"

// API is the set of service operations the dashboard consumes.
type API interface {
	ListBatches(ctx context.Context) ([]models.Batch, error)
	GetBatch(ctx context.Context, batchID int) (*models.Batch, error)
	CreateBatch(ctx context.Context, batch models.NewBatch) (*models.Batch, error)
	ListObservations(ctx context.Context, batchID int) ([]models.Observation, error)
	CreateObservation(ctx context.Context, batchID int, obs models.NewObservation) (*models.Observation, error)
	ListHarvests(ctx context.Context, batchID int) ([]models.Harvest, error)
	CreateHarvest(ctx context.Context, batchID int, harvest models.NewHarvest) (*models.Harvest, error)
	GetInsights(ctx context.Context, batchID int) (*models.Insights, error)
	CompareBatches(ctx context.Context, batchIDs []int) (*models.Comparison, error)
}

// Client provides access to the tracking service REST API.
type Client struct {
	baseURL    string
	username   string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithUsername sets the identity sent in the X-Username header.
func WithUsername(username string) Option {
	return func(c *Client) {
		c.username = username
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client. Request logging is still added.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new service client rooted at baseURL (e.g. "http://localhost:3000/api").
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger.Named("client"),
	}
	for _, opt := range opts {
		opt(c)
	}

	wrapped := *c.httpClient
	wrapped.Transport = middleware.RequestLogger(c.logger)(c.httpClient.Transport)
	c.httpClient = &wrapped

	return c, nil
}

// ListBatches fetches every batch visible to the caller.
func (c *Client) ListBatches(ctx context.Context) ([]models.Batch, error) {
	var batches []models.Batch
	if err := c.do(ctx, "fetch batches", http.MethodGet, nil, &batches, "batches"); err != nil {
		return nil, err
	}
	return batches, nil
}

// GetBatch fetches one batch.
func (c *Client) GetBatch(ctx context.Context, batchID int) (*models.Batch, error) {
	var batch models.Batch
	if err := c.do(ctx, "fetch batch", http.MethodGet, nil, &batch, "batches", strconv.Itoa(batchID)); err != nil {
		return nil, err
	}
	return &batch, nil
}

// CreateBatch validates and submits a new batch.
func (c *Client) CreateBatch(ctx context.Context, batch models.NewBatch) (*models.Batch, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}

	var created models.Batch
	if err := c.do(ctx, "create batch", http.MethodPost, batch, &created, "batches"); err != nil {
		return nil, err
	}

	c.logger.Info("Created batch",
		zap.Int("batch_id", created.ID),
		zap.String("substrate_type", created.SubstrateType))

	return &created, nil
}

// ListObservations fetches the observations logged for a batch.
func (c *Client) ListObservations(ctx context.Context, batchID int) ([]models.Observation, error) {
	var observations []models.Observation
	if err := c.do(ctx, "fetch observations", http.MethodGet, nil, &observations,
		"batches", strconv.Itoa(batchID), "observations"); err != nil {
		return nil, err
	}
	return observations, nil
}

// CreateObservation validates and logs an observation for a batch.
func (c *Client) CreateObservation(ctx context.Context, batchID int, obs models.NewObservation) (*models.Observation, error) {
	if err := obs.Validate(); err != nil {
		return nil, err
	}

	var created models.Observation
	if err := c.do(ctx, "create observation", http.MethodPost, obs, &created,
		"batches", strconv.Itoa(batchID), "observations"); err != nil {
		return nil, err
	}

	c.logger.Info("Logged observation",
		zap.Int("batch_id", batchID),
		zap.String("date", obs.Date.String()))

	return &created, nil
}

// ListHarvests fetches the harvests recorded for a batch.
func (c *Client) ListHarvests(ctx context.Context, batchID int) ([]models.Harvest, error) {
	var harvests []models.Harvest
	if err := c.do(ctx, "fetch harvests", http.MethodGet, nil, &harvests,
		"batches", strconv.Itoa(batchID), "harvests"); err != nil {
		return nil, err
	}
	return harvests, nil
}

// CreateHarvest validates and records a flush for a batch.
func (c *Client) CreateHarvest(ctx context.Context, batchID int, harvest models.NewHarvest) (*models.Harvest, error) {
	if err := harvest.Validate(); err != nil {
		return nil, err
	}

	var created models.Harvest
	if err := c.do(ctx, "create harvest", http.MethodPost, harvest, &created,
		"batches", strconv.Itoa(batchID), "harvests"); err != nil {
		return nil, err
	}

	c.logger.Info("Recorded harvest",
		zap.Int("batch_id", batchID),
		zap.Int("flush_number", harvest.FlushNumber),
		zap.Float64("flush_yield_kg", harvest.FlushYieldKg))

	return &created, nil
}

// GetInsights fetches the server-computed insights for a batch.
func (c *Client) GetInsights(ctx context.Context, batchID int) (*models.Insights, error) {
	var insights models.Insights
	if err := c.do(ctx, "fetch insights", http.MethodGet, nil, &insights,
		"batches", strconv.Itoa(batchID), "insights"); err != nil {
		return nil, err
	}
	return &insights, nil
}

// CompareBatches asks the service to aggregate the given batches.
// Duplicate ids are collapsed; fewer than two distinct ids are rejected before dispatch.
func (c *Client) CompareBatches(ctx context.Context, batchIDs []int) (*models.Comparison, error) {
	ids := distinct(batchIDs)
	if len(ids) < 2 {
		return nil, apperrors.Validation("compare batches", "select at least 2 batches to compare")
	}

	body := struct {
		BatchIDs []int `json:"batch_ids"`
	}{BatchIDs: ids}

	var comparison models.Comparison
	if err := c.do(ctx, "compare batches", http.MethodPost, body, &comparison, "batches", "compare"); err != nil {
		return nil, err
	}
	return &comparison, nil
}

// do executes one request. A non-nil out is decoded from a 2xx body.
func (c *Client) do(ctx context.Context, op, method string, in, out any, pathSegments ...string) error {
	endpoint, err := buildURL(c.baseURL, pathSegments...)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.Header.Set(UsernameHeader, c.username)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Network(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Network(op, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := errorMessage(resp.StatusCode, respBody)
		c.logger.Warn("Service returned error",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("body", logging.SanitizeBody(string(respBody))))
		return apperrors.Service(op, resp.StatusCode, message)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apperrors.Network(op, fmt.Errorf("failed to parse response: %w", err))
	}
	return nil
}

// errorMessage extracts a human-readable message from an error response.
// Response format: { "error": "...", "message": "..." }, else plain text.
func errorMessage(statusCode int, body []byte) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := jsonutil.FlexibleStringValue(payload.Message); msg != "" {
			return msg
		}
		if msg := jsonutil.FlexibleStringValue(payload.Error); msg != "" {
			return msg
		}
	}

	text := strings.TrimSpace(string(body))
	if text != "" && !strings.HasPrefix(text, "<") && !strings.HasPrefix(text, "{") {
		return logging.TruncateString(text, logging.MaxBodyLogLength)
	}

	if status := http.StatusText(statusCode); status != "" {
		return status
	}
	return fmt.Sprintf("unexpected status %d", statusCode)
}

// distinct returns ids without duplicates, keeping first-seen order.
func distinct(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// buildURL constructs a URL by parsing the base and joining path segments.
func buildURL(baseURL string, pathSegments ...string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	// Join all path segments
	segments := append([]string{u.Path}, pathSegments...)
	u.Path = path.Join(segments...)
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}

	return u.String(), nil
}
