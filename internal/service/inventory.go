// Package service implements the application services between the HTTP
// surface and the store: catalog management and the sales/billing flow.
package service

import (
	"context"
	"log/slog"

	"github.com/maykapos/hotelpos/internal/metrics"
	"github.com/maykapos/hotelpos/internal/models"
	"github.com/maykapos/hotelpos/internal/storage"
)

// InventoryService manages the room and food catalogs.
type InventoryService struct {
	store storage.Store
}

// NewInventoryService creates a new InventoryService with the given storage
// backend.
func NewInventoryService(store storage.Store) *InventoryService {
	return &InventoryService{store: store}
}

// ListRooms returns all rooms ordered by code.
func (s *InventoryService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.store.ListRooms(ctx)
}

// GetRoom retrieves one room by id.
func (s *InventoryService) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	return s.store.GetRoom(ctx, id)
}

// AddRoom creates a room and returns its id.
func (s *InventoryService) AddRoom(ctx context.Context, code, roomType string, pricePerDay float64, status string) (int64, error) {
	id, err := s.store.AddRoom(ctx, code, roomType, pricePerDay, status)
	if err != nil {
		slog.Warn("AddRoom rejected", "code", code, "error", err)
		return 0, err
	}
	slog.Info("Room added", "id", id, "type", roomType)
	metrics.CatalogMutations.WithLabelValues("room", "add").Inc()
	return id, nil
}

// UpdateRoom overwrites a room's fields.
func (s *InventoryService) UpdateRoom(ctx context.Context, id int64, code, roomType string, pricePerDay float64, status string) error {
	if err := s.store.UpdateRoom(ctx, id, code, roomType, pricePerDay, status); err != nil {
		slog.Warn("UpdateRoom rejected", "id", id, "error", err)
		return err
	}
	slog.Info("Room updated", "id", id)
	metrics.CatalogMutations.WithLabelValues("room", "update").Inc()
	return nil
}

// DeleteRoom removes a room unless bills reference it.
func (s *InventoryService) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.store.DeleteRoom(ctx, id); err != nil {
		slog.Warn("DeleteRoom rejected", "id", id, "error", err)
		return err
	}
	slog.Info("Room deleted", "id", id)
	metrics.CatalogMutations.WithLabelValues("room", "delete").Inc()
	return nil
}

// ListFoodItems returns the menu ordered by (category, name).
func (s *InventoryService) ListFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	return s.store.ListFoodItems(ctx)
}

// GetFoodItem retrieves one menu item by id.
func (s *InventoryService) GetFoodItem(ctx context.Context, id int64) (*models.FoodItem, error) {
	return s.store.GetFoodItem(ctx, id)
}

// AddFoodItem creates a menu item and returns its id.
func (s *InventoryService) AddFoodItem(ctx context.Context, name string, price float64, category string) (int64, error) {
	id, err := s.store.AddFoodItem(ctx, name, price, category)
	if err != nil {
		slog.Warn("AddFoodItem rejected", "name", name, "error", err)
		return 0, err
	}
	slog.Info("Food item added", "id", id, "name", name)
	metrics.CatalogMutations.WithLabelValues("food", "add").Inc()
	return id, nil
}

// UpdateFoodItem overwrites a menu item's fields.
func (s *InventoryService) UpdateFoodItem(ctx context.Context, id int64, name string, price float64, category string) error {
	if err := s.store.UpdateFoodItem(ctx, id, name, price, category); err != nil {
		slog.Warn("UpdateFoodItem rejected", "id", id, "error", err)
		return err
	}
	slog.Info("Food item updated", "id", id)
	metrics.CatalogMutations.WithLabelValues("food", "update").Inc()
	return nil
}

// DeleteFoodItem removes a menu item unless bill lines reference its name.
func (s *InventoryService) DeleteFoodItem(ctx context.Context, id int64) error {
	if err := s.store.DeleteFoodItem(ctx, id); err != nil {
		slog.Warn("DeleteFoodItem rejected", "id", id, "error", err)
		return err
	}
	slog.Info("Food item deleted", "id", id)
	metrics.CatalogMutations.WithLabelValues("food", "delete").Inc()
	return nil
}
