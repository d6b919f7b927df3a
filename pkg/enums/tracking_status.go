package enums

// TrackingStatus values mirror what the courier-tracking sync writes onto
// order lines. The set is open-ended upstream; only the values below carry
// business meaning here.
type TrackingStatus string

const (
	TrackingStatusInTransit    TrackingStatus = "in_transit"
	TrackingStatusOutForDeliv  TrackingStatus = "out_for_delivery"
	TrackingStatusDelivered    TrackingStatus = "delivered"
	TrackingStatusRTOInitiated TrackingStatus = "rto_initiated"
	TrackingStatusRTOInTransit TrackingStatus = "rto_in_transit"
	TrackingStatusRTODelivered TrackingStatus = "rto_delivered"
	TrackingStatusRTOReceived  TrackingStatus = "rto_received"
)

// RTOTrackingStatuses is the fixed set that marks a line as return-to-origin.
var RTOTrackingStatuses = []TrackingStatus{
	TrackingStatusRTOInitiated,
	TrackingStatusRTOInTransit,
	TrackingStatusRTODelivered,
	TrackingStatusRTOReceived,
}

// RTOTrackingStatusStrings returns the RTO set as raw strings for SQL IN
// clauses.
func RTOTrackingStatusStrings() []string {
	out := make([]string, len(RTOTrackingStatuses))
	for i, s := range RTOTrackingStatuses {
		out[i] = string(s)
	}
	return out
}

// TerminalTrackingStatusStrings returns delivered plus the RTO set as raw
// strings; a line in any of these is no longer moving toward the customer.
func TerminalTrackingStatusStrings() []string {
	out := []string{string(TrackingStatusDelivered)}
	return append(out, RTOTrackingStatusStrings()...)
}

// IsRTO reports whether the status belongs to the RTO set.
func (s TrackingStatus) IsRTO() bool {
	for _, rto := range RTOTrackingStatuses {
		if s == rto {
			return true
		}
	}
	return false
}
