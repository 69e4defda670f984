package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/maykapos/hotelpos/internal/models"
	"github.com/maykapos/hotelpos/internal/storage"
)

// AddRoom validates and inserts a room. A blank code is auto-assigned
// inside the same transaction as the insert.
func (s *SQLiteStore) AddRoom(ctx context.Context, code, roomType string, pricePerDay float64, status string) (int64, error) {
	roomType = strings.TrimSpace(roomType)
	if roomType == "" {
		return 0, fmt.Errorf("%w: room type is required", storage.ErrValidation)
	}
	if pricePerDay < 0 {
		return 0, fmt.Errorf("%w: price per day must not be negative", storage.ErrRange)
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = models.DefaultRoomStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeErr("begin add room", err)
	}
	defer tx.Rollback()

	code = strings.TrimSpace(code)
	if code == "" {
		code, err = nextRoomCode(ctx, tx)
		if err != nil {
			return 0, storeErr("assign room code", err)
		}
	} else {
		var n int
		err = tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM rooms WHERE code = ?", code).Scan(&n)
		if err != nil {
			return 0, storeErr("check room code", err)
		}
		if n > 0 {
			return 0, fmt.Errorf("%w: room code %q already exists", storage.ErrConflict, code)
		}
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO rooms (code, type, price_per_day, status) VALUES (?, ?, ?, ?)",
		code, roomType, pricePerDay, status,
	)
	if err != nil {
		return 0, storeErr("insert room", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storeErr("room id", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr("commit add room", err)
	}
	return id, nil
}

// UpdateRoom overwrites all mutable fields of one room.
func (s *SQLiteStore) UpdateRoom(ctx context.Context, id int64, code, roomType string, pricePerDay float64, status string) error {
	roomType = strings.TrimSpace(roomType)
	if roomType == "" {
		return fmt.Errorf("%w: room type is required", storage.ErrValidation)
	}
	if pricePerDay < 0 {
		return fmt.Errorf("%w: price per day must not be negative", storage.ErrRange)
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = models.DefaultRoomStatus
	}
	code = strings.TrimSpace(code)

	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM rooms WHERE code = ? AND id <> ?", code, id,
	).Scan(&n)
	if err != nil {
		return storeErr("check room code", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: room code %q already exists", storage.ErrConflict, code)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE rooms SET code = ?, type = ?, price_per_day = ?, status = ? WHERE id = ?",
		code, roomType, pricePerDay, status, id,
	)
	if err != nil {
		return storeErr("update room", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("update room", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: room %d", storage.ErrNotFound, id)
	}
	return nil
}

// DeleteRoom removes a room unless a bill still references it. The guard
// and the delete run in one transaction so the check cannot go stale.
func (s *SQLiteStore) DeleteRoom(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin delete room", err)
	}
	defer tx.Rollback()

	var used int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM bills WHERE room_id = ?", id).Scan(&used)
	if err != nil {
		return storeErr("check room usage", err)
	}
	if used > 0 {
		return fmt.Errorf("%w: room is used in existing bills", storage.ErrConflict)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", id)
	if err != nil {
		return storeErr("delete room", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete room", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: room %d", storage.ErrNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit delete room", err)
	}
	return nil
}

// ListRooms returns all rooms ordered by code.
func (s *SQLiteStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, code, type, price_per_day, status FROM rooms ORDER BY code",
	)
	if err != nil {
		return nil, storeErr("list rooms", err)
	}
	defer rows.Close()

	var list []models.Room
	for rows.Next() {
		var r models.Room
		var status sql.NullString
		if err := rows.Scan(&r.ID, &r.Code, &r.Type, &r.PricePerDay, &status); err != nil {
			return nil, storeErr("scan room", err)
		}
		r.Status = models.DefaultRoomStatus
		if status.Valid && status.String != "" {
			r.Status = status.String
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate rooms", err)
	}
	return list, nil
}

// GetRoom retrieves one room by id.
func (s *SQLiteStore) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	var r models.Room
	var status sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, code, type, price_per_day, status FROM rooms WHERE id = ?", id,
	).Scan(&r.ID, &r.Code, &r.Type, &r.PricePerDay, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: room %d", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, storeErr("get room", err)
	}
	r.Status = models.DefaultRoomStatus
	if status.Valid && status.String != "" {
		r.Status = status.String
	}
	return &r, nil
}

// nextRoomCode generates the next numeric room code: the maximum of all
// purely numeric codes (baseline 100 if none) plus one.
func nextRoomCode(ctx context.Context, tx *sql.Tx) (string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT code FROM rooms")
	if err != nil {
		return "", err
	}
	defer rows.Close()

	max := uint64(0)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return "", err
		}
		// ParseUint rejects signs, so "+12" and "-3" stay free-text codes.
		if n, err := strconv.ParseUint(strings.TrimSpace(code), 10, 63); err == nil && n > max {
			max = n
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if max == 0 {
		max = 100
	}
	return strconv.FormatUint(max+1, 10), nil
}
