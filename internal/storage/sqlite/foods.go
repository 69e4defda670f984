package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/maykapos/hotelpos/internal/models"
	"github.com/maykapos/hotelpos/internal/storage"
)

func validateFood(name, category string, price float64) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("%w: food name is required", storage.ErrValidation)
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return "", "", fmt.Errorf("%w: category is required", storage.ErrValidation)
	}
	if price < 0 {
		return "", "", fmt.Errorf("%w: price must not be negative", storage.ErrRange)
	}
	return name, category, nil
}

// AddFoodItem validates and inserts a food item.
func (s *SQLiteStore) AddFoodItem(ctx context.Context, name string, price float64, category string) (int64, error) {
	name, category, err := validateFood(name, category, price)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO food_items (name, price, category) VALUES (?, ?, ?)",
		name, price, category,
	)
	if err != nil {
		return 0, storeErr("insert food item", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storeErr("food item id", err)
	}
	return id, nil
}

// UpdateFoodItem overwrites all mutable fields of one food item.
func (s *SQLiteStore) UpdateFoodItem(ctx context.Context, id int64, name string, price float64, category string) error {
	name, category, err := validateFood(name, category, price)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE food_items SET name = ?, price = ?, category = ? WHERE id = ?",
		name, price, category, id,
	)
	if err != nil {
		return storeErr("update food item", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("update food item", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: food item %d", storage.ErrNotFound, id)
	}
	return nil
}

// DeleteFoodItem removes a food item unless a persisted bill line carries
// its current name. Guard and delete share one transaction.
func (s *SQLiteStore) DeleteFoodItem(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin delete food item", err)
	}
	defer tx.Rollback()

	var name string
	err = tx.QueryRowContext(ctx, "SELECT name FROM food_items WHERE id = ?", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: food item %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return storeErr("load food item", err)
	}

	var used int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM bill_lines WHERE item_name = ?", name).Scan(&used)
	if err != nil {
		return storeErr("check food usage", err)
	}
	if used > 0 {
		return fmt.Errorf("%w: food is used in existing bills", storage.ErrConflict)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM food_items WHERE id = ?", id); err != nil {
		return storeErr("delete food item", err)
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit delete food item", err)
	}
	return nil
}

// GetFoodItem retrieves one food item by id.
func (s *SQLiteStore) GetFoodItem(ctx context.Context, id int64) (*models.FoodItem, error) {
	var f models.FoodItem
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, price, category FROM food_items WHERE id = ?", id,
	).Scan(&f.ID, &f.Name, &f.Price, &f.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: food item %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, storeErr("get food item", err)
	}
	return &f, nil
}

// ListFoodItems returns all food items ordered by category, then name.
func (s *SQLiteStore) ListFoodItems(ctx context.Context) ([]models.FoodItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price, category FROM food_items ORDER BY category, name",
	)
	if err != nil {
		return nil, storeErr("list food items", err)
	}
	defer rows.Close()

	var list []models.FoodItem
	for rows.Next() {
		var f models.FoodItem
		if err := rows.Scan(&f.ID, &f.Name, &f.Price, &f.Category); err != nil {
			return nil, storeErr("scan food item", err)
		}
		list = append(list, f)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate food items", err)
	}
	return list, nil
}
