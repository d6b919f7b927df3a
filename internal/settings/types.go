package settings

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SettingKeyCustomerTiers is the system_settings row holding tier
// thresholds.
const SettingKeyCustomerTiers = "customer_tiers"

// TierThresholds holds the lifetime-spend cutoffs for each customer tier.
// A customer sits in the highest tier whose threshold their lifetime value
// meets; below silver they are untiered.
type TierThresholds struct {
	Silver   decimal.Decimal `json:"silver"`
	Gold     decimal.Decimal `json:"gold"`
	Platinum decimal.Decimal `json:"platinum"`
}

// DefaultTierThresholds returns the shipped cutoffs, used whenever the
// stored row is absent or unreadable.
func DefaultTierThresholds() TierThresholds {
	return TierThresholds{
		Silver:   decimal.NewFromInt(10000),
		Gold:     decimal.NewFromInt(25000),
		Platinum: decimal.NewFromInt(50000),
	}
}

// Validate enforces positive, strictly ascending thresholds.
func (t TierThresholds) Validate() error {
	if t.Silver.LessThanOrEqual(decimal.Zero) {
		return errThresholdNotPositive
	}
	if t.Gold.LessThanOrEqual(t.Silver) || t.Platinum.LessThanOrEqual(t.Gold) {
		return errThresholdsNotAscending
	}
	return nil
}

// decodeTierThresholds parses a stored JSON value, falling back to the
// defaults on any decode failure. Malformed stored settings never crash a
// read path.
func decodeTierThresholds(raw string) TierThresholds {
	var decoded TierThresholds
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return DefaultTierThresholds()
	}
	if decoded.Validate() != nil {
		return DefaultTierThresholds()
	}
	return decoded
}

// GridColumn is one persisted column layout entry for a data grid.
type GridColumn struct {
	Key    string `json:"key"`
	Width  int    `json:"width,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

// decodeGridColumns parses a stored column layout, returning nil (caller
// falls through to the next layer of defaults) when the JSON is unusable.
func decodeGridColumns(raw string) []GridColumn {
	var cols []GridColumn
	if err := json.Unmarshal([]byte(raw), &cols); err != nil {
		return nil
	}
	return cols
}

// ChannelView is the API shape of a sales channel.
type ChannelView struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}
