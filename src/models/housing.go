// backend/src/models/housing.go
package models

import (
	"encoding/json"
	"strings"
)

// Housing is the citizen's current residence, if any.
type Housing struct {
	Tier       int     `json:"tier"`
	Address    Address `json:"address"`
	MoveInDate string  `json:"move_in_date"`
	WeeklyRent float64 `json:"weeklyRent"`
	Status     string  `json:"status"`
}

// Address tolerates both shapes the bot has been seen to emit: a plain string
// or a structured object. Either way it normalizes to one display string.
type Address struct {
	Display string
}

type structuredAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Display = strings.TrimSpace(s)
		return nil
	}

	var obj structuredAddress
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unknown shape: leave the address empty rather than failing the
		// whole housing record.
		a.Display = ""
		return nil
	}

	parts := make([]string, 0, 4)
	for _, p := range []string{obj.Street, obj.City, obj.State, obj.Zip} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	a.Display = strings.Join(parts, ", ")
	return nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Display)
}

// HousingConfig mirrors the bot's housing configuration blob (tier table and
// utility definitions). The portal does not interpret it.
type HousingConfig struct {
	Tiers     json.RawMessage `json:"tiers,omitempty"`
	Utilities json.RawMessage `json:"utilities,omitempty"`
}

// AvailableProperty is a listing on the housing market page.
type AvailableProperty struct {
	PropertyID string `json:"property_id"`
	Tier       int    `json:"tier"`
	City       string `json:"city"`
	State      string `json:"state"`
	Status     string `json:"status"`
}
