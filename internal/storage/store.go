// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/maykapos/hotelpos/internal/models"
)

// Store defines the interface for catalog and ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// AddRoom validates and inserts a room, returning the new id.
	// A blank code is auto-assigned: the highest purely numeric existing
	// code (baseline 100) plus one.
	AddRoom(ctx context.Context, code, roomType string, pricePerDay float64, status string) (int64, error)

	// UpdateRoom overwrites all mutable fields of the room with the given
	// id. Returns ErrNotFound if the id does not exist.
	UpdateRoom(ctx context.Context, id int64, code, roomType string, pricePerDay float64, status string) error

	// DeleteRoom removes a room. Returns ErrConflict while any bill still
	// references the room.
	DeleteRoom(ctx context.Context, id int64) error

	// ListRooms returns all rooms ordered by code.
	ListRooms(ctx context.Context) ([]models.Room, error)

	// GetRoom retrieves one room by id.
	GetRoom(ctx context.Context, id int64) (*models.Room, error)

	// AddFoodItem validates and inserts a food item, returning the new id.
	AddFoodItem(ctx context.Context, name string, price float64, category string) (int64, error)

	// UpdateFoodItem overwrites all mutable fields of the food item with
	// the given id. Returns ErrNotFound if the id does not exist.
	UpdateFoodItem(ctx context.Context, id int64, name string, price float64, category string) error

	// DeleteFoodItem removes a food item. Returns ErrConflict while any
	// persisted bill line carries the item's current name.
	DeleteFoodItem(ctx context.Context, id int64) error

	// ListFoodItems returns all food items ordered by (category, name).
	ListFoodItems(ctx context.Context) ([]models.FoodItem, error)

	// GetFoodItem retrieves one food item by id.
	GetFoodItem(ctx context.Context, id int64) (*models.FoodItem, error)

	// SaveBill persists one bill header plus its lines as a single atomic
	// unit, preserving line order, and returns the new bill id.
	SaveBill(ctx context.Context, roomID *int64, total float64, lines []models.BillLine) (int64, error)

	// ListBills returns up to limit bills, most recent first.
	ListBills(ctx context.Context, limit int) ([]models.BillSummary, error)

	// GetBill retrieves one bill summary by id.
	GetBill(ctx context.Context, billID int64) (*models.BillSummary, error)

	// LoadBillLines returns a bill's lines in original insertion order.
	LoadBillLines(ctx context.Context, billID int64) ([]models.BillLine, error)

	// DeleteBill atomically removes a bill and all of its lines.
	DeleteBill(ctx context.Context, billID int64) error

	// Close releases any resources held by the store.
	Close() error
}
