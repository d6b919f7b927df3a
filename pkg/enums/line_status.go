package enums

// LineStatus is the per-line fulfillment state, independent of the
// order-level release flags.
type LineStatus string

const (
	LineStatusPending   LineStatus = "pending"
	LineStatusAllocated LineStatus = "allocated"
	LineStatusPicked    LineStatus = "picked"
	LineStatusPacked    LineStatus = "packed"
	LineStatusShipped   LineStatus = "shipped"
	LineStatusDelivered LineStatus = "delivered"
	LineStatusCancelled LineStatus = "cancelled"
)

func (s LineStatus) IsValid() bool {
	switch s {
	case LineStatusPending, LineStatusAllocated, LineStatusPicked,
		LineStatusPacked, LineStatusShipped, LineStatusDelivered, LineStatusCancelled:
		return true
	default:
		return false
	}
}

// FulfillmentStage is the order-level stage derived from the multiset of
// line statuses. It is a view concept, never stored.
type FulfillmentStage string

const (
	FulfillmentStagePending     FulfillmentStage = "pending"
	FulfillmentStageAllocated   FulfillmentStage = "allocated"
	FulfillmentStageInProgress  FulfillmentStage = "in_progress"
	FulfillmentStageReadyToShip FulfillmentStage = "ready_to_ship"
)

// RTOStatus is derived per line from the RTO timestamps.
type RTOStatus string

const (
	RTOStatusNone      RTOStatus = ""
	RTOStatusInTransit RTOStatus = "in_transit"
	RTOStatusReceived  RTOStatus = "received"
)
