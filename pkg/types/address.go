package types

import (
	"encoding/json"
	"strings"
)

// ShippingAddress is the typed form of the JSON blob the Shopify sync
// stores on each order. Decoding is lenient by contract: malformed input
// yields safe defaults, never an error surfaced to the grid.
type ShippingAddress struct {
	Name    string `json:"name,omitempty"`
	Line1   string `json:"address1,omitempty"`
	Line2   string `json:"address2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"province,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// DecodeShippingAddress parses the stored blob. The boolean reports whether
// the blob decoded to a usable address.
func DecodeShippingAddress(raw string) (ShippingAddress, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ShippingAddress{}, false
	}
	var addr ShippingAddress
	if err := json.Unmarshal([]byte(trimmed), &addr); err != nil {
		return ShippingAddress{}, false
	}
	return addr, true
}

// CityFromRawAddress extracts the city for grid display, falling back to
// "-" on any parse failure or absence.
func CityFromRawAddress(raw string) string {
	addr, ok := DecodeShippingAddress(raw)
	if !ok || strings.TrimSpace(addr.City) == "" {
		return "-"
	}
	return addr.City
}
