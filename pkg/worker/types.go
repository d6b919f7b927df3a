package worker

import "time"

// LogEntry is one structured log line stored by the worker.
type LogEntry struct {
	ID        string         `json:"id"`
	Level     string         `json:"level"`
	Source    string         `json:"source"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// LogsPage is a page of worker logs plus the total match count.
type LogsPage struct {
	Logs  []LogEntry `json:"logs"`
	Total int64      `json:"total"`
}

// LogsQuery narrows GetLogs. Zero values mean "no filter".
type LogsQuery struct {
	Level  string
	Source string
	Search string
	Page   int
	Limit  int
}

// JobRun is a single execution record of a scheduled job.
type JobRun struct {
	ID         string     `json:"id"`
	JobID      string     `json:"jobId"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Error      string     `json:"error,omitempty"`
	ItemCount  int        `json:"itemCount"`
}

// JobState is the worker's current view of one registered job.
type JobState struct {
	JobID     string     `json:"jobId"`
	Enabled   bool       `json:"enabled"`
	Running   bool       `json:"running"`
	LastRunAt *time.Time `json:"lastRunAt,omitempty"`
	NextRunAt *time.Time `json:"nextRunAt,omitempty"`
}

// Stats summarises worker health for the admin dashboard.
type Stats struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Jobs          []JobState `json:"jobs"`
	QueueDepth    int        `json:"queueDepth"`
	LastSyncAt    *time.Time `json:"lastSyncAt,omitempty"`
}

// ShopifyConfig is the worker-held Shopify connection settings. The access
// token is write-only: reads come back masked.
type ShopifyConfig struct {
	ShopDomain   string `json:"shopDomain"`
	AccessToken  string `json:"accessToken,omitempty"`
	APIVersion   string `json:"apiVersion"`
	SyncEnabled  bool   `json:"syncEnabled"`
	SyncInterval int    `json:"syncIntervalMinutes"`
}

// ConnectionTest reports the outcome of a live Shopify credential check.
type ConnectionTest struct {
	OK       bool   `json:"ok"`
	ShopName string `json:"shopName,omitempty"`
	Detail   string `json:"detail,omitempty"`
}
