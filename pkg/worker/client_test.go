package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shantum/COH-ERP2-sub002/pkg/config"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(config.WorkerConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	})
	return client, srv
}

func TestGetLogsForwardsQueryAndToken(t *testing.T) {
	var gotAuth string
	var gotQuery map[string]string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logs" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": LogsPage{
				Logs:  []LogEntry{{ID: "log-1", Level: "error", Message: "sync failed"}},
				Total: 1,
			},
		})
	}))

	page, err := client.GetLogs(context.Background(), "tok-123", LogsQuery{
		Level:  "error",
		Source: "shopify_sync",
		Search: "failed",
		Page:   2,
		Limit:  25,
	})
	if err != nil {
		t.Fatalf("GetLogs returned error: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer token forwarded, got %q", gotAuth)
	}
	want := map[string]string{"level": "error", "source": "shopify_sync", "search": "failed", "page": "2", "limit": "25"}
	for key, value := range want {
		if gotQuery[key] != value {
			t.Fatalf("expected query %s=%s, got %q", key, value, gotQuery[key])
		}
	}
	if page.Total != 1 || len(page.Logs) != 1 || page.Logs[0].ID != "log-1" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestDoDecodesWorkerErrorEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "JOB_RUNNING", "message": "job already running"},
		})
	}))

	err := client.StartJob(context.Background(), "tok", enums.JobShopifySync)
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeExternal {
		t.Fatalf("expected EXTERNAL_ERROR, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected string map details, got %T", typed.Details())
	}
	if details["upstreamCode"] != "JOB_RUNNING" || details["upstreamStatus"] != "409" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestDoHandlesOpaqueUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))

	_, err := client.GetWorkerStats(context.Background(), "tok")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeExternal {
		t.Fatalf("expected EXTERNAL_ERROR, got %v", err)
	}
}

func TestDoUnwrapsEnvelopeAndBarePayloads(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stats":
			// enveloped
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    Stats{QueueDepth: 7},
			})
		case "/runs":
			// bare payload, no envelope
			json.NewEncoder(w).Encode([]JobRun{{ID: "run-1", JobID: "tracking_sync", Status: "ok"}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	stats, err := client.GetWorkerStats(context.Background(), "tok")
	if err != nil {
		t.Fatalf("GetWorkerStats returned error: %v", err)
	}
	if stats.QueueDepth != 7 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	runs, err := client.GetWorkerRuns(context.Background(), "tok", "tracking_sync", 10)
	if err != nil {
		t.Fatalf("GetWorkerRuns returned error: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "run-1" {
		t.Fatalf("unexpected runs %+v", runs)
	}
}

func TestJobCallsRejectUnknownJobWithoutNetwork(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, err := range []error{
		client.StartJob(context.Background(), "tok", enums.JobID("rm_rf")),
		client.CancelJob(context.Background(), "tok", enums.JobID("rm_rf")),
		client.SetJobEnabled(context.Background(), "tok", enums.JobID("rm_rf"), true),
	} {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeBadRequest {
			t.Fatalf("expected BAD_REQUEST for unknown job, got %v", err)
		}
	}
	if called {
		t.Fatal("unknown jobs must not reach the worker")
	}
}

func TestSetJobEnabledSendsBody(t *testing.T) {
	var body map[string]bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/jobs/cache_cleanup/enabled" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.SetJobEnabled(context.Background(), "tok", enums.JobCacheCleanup, false); err != nil {
		t.Fatalf("SetJobEnabled returned error: %v", err)
	}
	enabled, ok := body["enabled"]
	if !ok || enabled {
		t.Fatalf("expected enabled=false in body, got %v", body)
	}
}

func TestWorkerUnreachable(t *testing.T) {
	client := NewClient(config.WorkerConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
	})

	err := client.Ping(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeExternal {
		t.Fatalf("expected EXTERNAL_ERROR when worker is down, got %v", err)
	}
}
