package models

import (
	"fmt"
	"time"
)

// Bill is one persisted checkout transaction. Bills are created exactly once
// and never mutated; they are deleted only as a whole unit together with
// their lines.
type Bill struct {
	// ID is the store-assigned, monotonically increasing identifier.
	ID int64 `json:"id"`

	// RoomID references the room this bill was charged to, if any.
	// A walk-in café bill has no room.
	RoomID *int64 `json:"room_id,omitempty"`

	// CreatedAt is when the bill was saved.
	CreatedAt time.Time `json:"created_at"`

	// Total is the caller-supplied total amount.
	Total float64 `json:"total"`
}

// BillLine is a denormalized snapshot of one purchased item or room-day
// within a bill. It carries no foreign key into the catalog on purpose.
type BillLine struct {
	ItemName   string  `json:"item_name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// BillSummary is the list-view projection of a bill: header fields plus the
// room code resolved at query time (nil if the bill has no room).
type BillSummary struct {
	ID       int64   `json:"id"`
	BillNo   string  `json:"bill_no"`
	Date     string  `json:"date"`
	RoomCode *string `json:"room_code,omitempty"`
	Total    float64 `json:"total"`
}

// BillNumber formats a bill identifier as the human-readable bill number,
// e.g. id 42 -> "BILL-000042".
func BillNumber(id int64) string {
	return fmt.Sprintf("BILL-%06d", id)
}
