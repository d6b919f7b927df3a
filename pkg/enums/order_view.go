package enums

// OrderView is the primary listing taxonomy for the orders grid.
type OrderView string

const (
	OrderViewOpen      OrderView = "open"
	OrderViewShipped   OrderView = "shipped"
	OrderViewCancelled OrderView = "cancelled"
)

func (v OrderView) IsValid() bool {
	switch v {
	case OrderViewOpen, OrderViewShipped, OrderViewCancelled:
		return true
	default:
		return false
	}
}

// ShippedSubFilter narrows the shipped view.
type ShippedSubFilter string

const (
	ShippedSubFilterAll        ShippedSubFilter = "all"
	ShippedSubFilterRTO        ShippedSubFilter = "rto"
	ShippedSubFilterCODPending ShippedSubFilter = "cod_pending"
)

func (f ShippedSubFilter) IsValid() bool {
	switch f {
	case ShippedSubFilterAll, ShippedSubFilterRTO, ShippedSubFilterCODPending:
		return true
	default:
		return false
	}
}

// SearchBucket is the cross-category taxonomy used by search-all and the
// unified search grid. It overlaps OrderView deliberately; both are live.
type SearchBucket string

const (
	SearchBucketOpen       SearchBucket = "open"
	SearchBucketShipped    SearchBucket = "shipped"
	SearchBucketInTransit  SearchBucket = "in_transit"
	SearchBucketDelivered  SearchBucket = "delivered"
	SearchBucketRTO        SearchBucket = "rto"
	SearchBucketCODPending SearchBucket = "cod_pending"
	SearchBucketCancelled  SearchBucket = "cancelled"
	SearchBucketArchived   SearchBucket = "archived"
)

// SearchBuckets lists every bucket in display order.
var SearchBuckets = []SearchBucket{
	SearchBucketOpen,
	SearchBucketShipped,
	SearchBucketInTransit,
	SearchBucketDelivered,
	SearchBucketRTO,
	SearchBucketCODPending,
	SearchBucketCancelled,
	SearchBucketArchived,
}

var searchBucketNames = map[SearchBucket]string{
	SearchBucketOpen:       "Open Orders",
	SearchBucketShipped:    "Shipped",
	SearchBucketInTransit:  "In Transit",
	SearchBucketDelivered:  "Delivered",
	SearchBucketRTO:        "RTO",
	SearchBucketCODPending: "COD Pending",
	SearchBucketCancelled:  "Cancelled",
	SearchBucketArchived:   "Archived",
}

// DisplayName returns the human label shown above a search bucket.
func (b SearchBucket) DisplayName() string {
	if name, ok := searchBucketNames[b]; ok {
		return name
	}
	return string(b)
}
