package enums

// JobID identifies a background job owned by the sibling worker process.
// Only ids in this allow-list may be started, cancelled or toggled.
type JobID string

const (
	JobShopifySync  JobID = "shopify_sync"
	JobTrackingSync JobID = "tracking_sync"
	JobCacheCleanup JobID = "cache_cleanup"
	JobSheetIngest  JobID = "sheet_ingest"
)

var allowedJobs = map[JobID]struct{}{
	JobShopifySync:  {},
	JobTrackingSync: {},
	JobCacheCleanup: {},
	JobSheetIngest:  {},
}

func (j JobID) IsValid() bool {
	_, ok := allowedJobs[j]
	return ok
}
