package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shantum/COH-ERP2-sub002/pkg/config"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
	"github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/metrics"
)

// Client talks to the sibling worker process over its local HTTP API. Calls
// forward the caller's bearer token so the worker applies the same auth
// decisions as this service. No retries: the worker is local and callers
// surface upstream failures directly.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.WorkerConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Ping hits the worker's health endpoint for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/healthz", nil, "", nil, nil)
}

func (c *Client) GetLogs(ctx context.Context, token string, q LogsQuery) (*LogsPage, error) {
	vals := url.Values{}
	if q.Level != "" {
		vals.Set("level", q.Level)
	}
	if q.Source != "" {
		vals.Set("source", q.Source)
	}
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	if q.Page > 0 {
		vals.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		vals.Set("limit", strconv.Itoa(q.Limit))
	}

	var page LogsPage
	if err := c.do(ctx, "get_logs", http.MethodGet, "/logs", vals, token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetWorkerRuns(ctx context.Context, token string, jobID string, limit int) ([]JobRun, error) {
	vals := url.Values{}
	if jobID != "" {
		vals.Set("jobId", jobID)
	}
	if limit > 0 {
		vals.Set("limit", strconv.Itoa(limit))
	}

	var runs []JobRun
	if err := c.do(ctx, "get_runs", http.MethodGet, "/runs", vals, token, nil, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

func (c *Client) GetWorkerStats(ctx context.Context, token string) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, "get_stats", http.MethodGet, "/stats", nil, token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) StartJob(ctx context.Context, token string, jobID enums.JobID) error {
	if !jobID.IsValid() {
		return errors.New(errors.CodeBadRequest, fmt.Sprintf("unknown job %q", jobID))
	}
	return c.do(ctx, "start_job", http.MethodPost, "/jobs/"+string(jobID)+"/start", nil, token, nil, nil)
}

func (c *Client) CancelJob(ctx context.Context, token string, jobID enums.JobID) error {
	if !jobID.IsValid() {
		return errors.New(errors.CodeBadRequest, fmt.Sprintf("unknown job %q", jobID))
	}
	return c.do(ctx, "cancel_job", http.MethodPost, "/jobs/"+string(jobID)+"/cancel", nil, token, nil, nil)
}

func (c *Client) SetJobEnabled(ctx context.Context, token string, jobID enums.JobID, enabled bool) error {
	if !jobID.IsValid() {
		return errors.New(errors.CodeBadRequest, fmt.Sprintf("unknown job %q", jobID))
	}
	body := map[string]bool{"enabled": enabled}
	return c.do(ctx, "set_job_enabled", http.MethodPut, "/jobs/"+string(jobID)+"/enabled", nil, token, body, nil)
}

func (c *Client) GetShopifyConfig(ctx context.Context, token string) (*ShopifyConfig, error) {
	var cfg ShopifyConfig
	if err := c.do(ctx, "get_shopify_config", http.MethodGet, "/shopify/config", nil, token, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) UpdateShopifyConfig(ctx context.Context, token string, cfg ShopifyConfig) (*ShopifyConfig, error) {
	var updated ShopifyConfig
	if err := c.do(ctx, "update_shopify_config", http.MethodPut, "/shopify/config", nil, token, cfg, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) TriggerShopifySync(ctx context.Context, token string) error {
	return c.do(ctx, "trigger_shopify_sync", http.MethodPost, "/shopify/sync", nil, token, nil, nil)
}

func (c *Client) TestShopifyConnection(ctx context.Context, token string) (*ConnectionTest, error) {
	var result ConnectionTest
	if err := c.do(ctx, "test_shopify_connection", http.MethodPost, "/shopify/test", nil, token, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// workerError is the worker's error envelope. Anything that doesn't decode
// into this shape still surfaces as EXTERNAL_ERROR with the raw status.
type workerError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, token string, body any, out any) (err error) {
	defer func() { metrics.ObserveWorkerCall(operation, err) }()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return errors.Wrap(errors.CodeInternal, marshalErr, "encoding worker request")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "building worker request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(errors.CodeExternal, err, "worker unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.Wrap(errors.CodeExternal, err, "reading worker response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var we workerError
		if json.Unmarshal(raw, &we) == nil && we.Error.Message != "" {
			msg := fmt.Sprintf("worker %s: %s", operation, we.Error.Message)
			return errors.New(errors.CodeExternal, msg).WithDetails(map[string]string{
				"upstreamCode":   we.Error.Code,
				"upstreamStatus": strconv.Itoa(resp.StatusCode),
			})
		}
		return errors.New(errors.CodeExternal, fmt.Sprintf("worker %s returned status %d", operation, resp.StatusCode))
	}

	if out == nil {
		return nil
	}

	// Successful responses use the same {"success":true,"data":...} envelope
	// as this service.
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return errors.Wrap(errors.CodeExternal, err, "decoding worker response")
	}
	payload := envelope.Data
	if len(payload) == 0 {
		payload = raw
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrap(errors.CodeExternal, err, "decoding worker payload")
	}
	return nil
}
