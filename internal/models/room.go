package models

// Room represents one rentable room in the catalog.
type Room struct {
	// ID is the store-assigned row identifier.
	ID int64 `json:"id"`

	// Code is the user-visible room number, unique among all rooms.
	// Codes are usually numeric strings ("101") but free text is allowed.
	Code string `json:"code"`

	// Type is a free-text room type label (e.g. "Non/AC Family Room").
	Type string `json:"type"`

	// PricePerDay is the non-negative charge for one day.
	PricePerDay float64 `json:"price_per_day"`

	// Status is a free-text availability label, defaulting to "Available".
	Status string `json:"status"`
}

// DefaultRoomStatus is applied when a room is created or updated with a
// blank status.
const DefaultRoomStatus = "Available"
