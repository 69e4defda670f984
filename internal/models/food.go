package models

// FoodItem represents one menu item in the catalog.
type FoodItem struct {
	// ID is the store-assigned row identifier.
	ID int64 `json:"id"`

	// Name is the non-empty item name shown on receipts.
	Name string `json:"name"`

	// Price is the non-negative unit price.
	Price float64 `json:"price"`

	// Category groups items for presentation (e.g. "Lunch", "Drinks").
	Category string `json:"category"`
}
