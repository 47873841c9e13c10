// Package apify provides a client for the Apify platform API: actor runs,
// dataset reads/appends, and key-value store records.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Default base URL for the Apify v2 API.
const defaultBaseURL = "https://api.apify.com/v2"

// Run statuses reported by the platform.
const (
	StatusReady     = "READY"
	StatusRunning   = "RUNNING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusTimedOut  = "TIMED-OUT"
	StatusAborted   = "ABORTED"
)

// Client defines the Apify API operations used by the pipeline.
type Client interface {
	StartActorRun(ctx context.Context, actorID string, input any, opts ...RunOption) (*Run, error)
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListDatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error)
	PushItems(ctx context.Context, datasetID string, items ...any) error
	SetRecord(ctx context.Context, storeID, key, contentType string, value any) error
	ChargeRun(ctx context.Context, runID, eventName string, count int) error
}

// Run describes a single actor run.
type Run struct {
	ID                     string  `json:"id"`
	ActorID                string  `json:"actId"`
	Status                 string  `json:"status"`
	DefaultDatasetID       string  `json:"defaultDatasetId"`
	DefaultKeyValueStoreID string  `json:"defaultKeyValueStoreId"`
	ComputeUnits           float64 `json:"computeUnits"`
}

// Finished reports whether the run reached a terminal status.
func (r *Run) Finished() bool {
	switch r.Status {
	case StatusSucceeded, StatusFailed, StatusTimedOut, StatusAborted:
		return true
	}
	return false
}

// RunOption configures a StartActorRun call.
type RunOption func(*runOpts)

type runOpts struct {
	memoryMB int
	timeout  time.Duration
}

// WithMemoryMB sets the resource-sizing hint for the run.
func WithMemoryMB(mb int) RunOption {
	return func(o *runOpts) {
		o.memoryMB = mb
	}
}

// WithRunTimeout caps the run duration on the platform side.
func WithRunTimeout(d time.Duration) RunOption {
	return func(o *runOpts) {
		o.timeout = d
	}
}

// APIError is returned when Apify responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apify: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default request rate limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new Apify client.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// actorPath converts an actor ID like "apify/rag-web-browser" into the
// tilde-separated form the API expects in URL paths.
func actorPath(actorID string) string {
	return strings.ReplaceAll(actorID, "/", "~")
}

func (c *httpClient) StartActorRun(ctx context.Context, actorID string, input any, opts ...RunOption) (*Run, error) {
	var ro runOpts
	for _, opt := range opts {
		opt(&ro)
	}

	path := fmt.Sprintf("/acts/%s/runs", actorPath(actorID))
	var params []string
	if ro.memoryMB > 0 {
		params = append(params, fmt.Sprintf("memory=%d", ro.memoryMB))
	}
	if ro.timeout > 0 {
		params = append(params, fmt.Sprintf("timeout=%d", int(ro.timeout.Seconds())))
	}
	if len(params) > 0 {
		path += "?" + strings.Join(params, "&")
	}

	var out runEnvelope
	if err := c.post(ctx, path, input, &out); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("apify: start actor run %s", actorID))
	}
	return &out.Data, nil
}

func (c *httpClient) GetRun(ctx context.Context, runID string) (*Run, error) {
	var out runEnvelope
	if err := c.get(ctx, fmt.Sprintf("/actor-runs/%s", runID), &out); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("apify: get run %s", runID))
	}
	return &out.Data, nil
}

func (c *httpClient) ListDatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error) {
	var raw []json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("/datasets/%s/items?format=json&clean=true", datasetID), &raw); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("apify: list dataset items %s", datasetID))
	}

	// Datasets occasionally carry stray non-record values; skip those rather
	// than failing the whole read.
	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		var item map[string]any
		if err := json.Unmarshal(entry, &item); err != nil || item == nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *httpClient) PushItems(ctx context.Context, datasetID string, items ...any) error {
	if len(items) == 0 {
		return nil
	}
	if err := c.post(ctx, fmt.Sprintf("/datasets/%s/items", datasetID), items, nil); err != nil {
		return eris.Wrap(err, fmt.Sprintf("apify: push dataset items %s", datasetID))
	}
	return nil
}

func (c *httpClient) SetRecord(ctx context.Context, storeID, key, contentType string, value any) error {
	var body []byte
	switch v := value.(type) {
	case []byte:
		body = v
	case string:
		body = []byte(v)
	default:
		var err error
		body, err = json.Marshal(v)
		if err != nil {
			return eris.Wrap(err, "apify: marshal record")
		}
		if contentType == "" {
			contentType = "application/json"
		}
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	path := fmt.Sprintf("/key-value-stores/%s/records/%s", storeID, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "apify: create record request")
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token)

	if err := c.do(req, nil); err != nil {
		return eris.Wrap(err, fmt.Sprintf("apify: set record %s", key))
	}
	return nil
}

func (c *httpClient) ChargeRun(ctx context.Context, runID, eventName string, count int) error {
	body := map[string]any{"eventName": eventName, "count": count}
	if err := c.post(ctx, fmt.Sprintf("/actor-runs/%s/charge", runID), body, nil); err != nil {
		return eris.Wrap(err, fmt.Sprintf("apify: charge run %s", runID))
	}
	return nil
}

type runEnvelope struct {
	Data Run `json:"data"`
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	return c.do(req, out)
}

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	return c.do(req, out)
}

func (c *httpClient) do(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return eris.Wrap(err, "rate limit wait")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}

	return nil
}
