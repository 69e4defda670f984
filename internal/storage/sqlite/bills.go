package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/maykapos/hotelpos/internal/models"
	"github.com/maykapos/hotelpos/internal/storage"
)

// defaultBillLimit caps ListBills when the caller passes no limit.
const defaultBillLimit = 200

// SaveBill inserts one bill header plus one row per line as a single atomic
// unit: either all rows commit or none do. Line order is preserved.
func (s *SQLiteStore) SaveBill(ctx context.Context, roomID *int64, total float64, lines []models.BillLine) (int64, error) {
	if len(lines) == 0 {
		return 0, fmt.Errorf("%w: bill has no lines", storage.ErrValidation)
	}
	if total < 0 {
		return 0, fmt.Errorf("%w: total must not be negative", storage.ErrRange)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storeErr("begin save bill", err)
	}
	defer tx.Rollback()

	var room any
	if roomID != nil {
		room = *roomID
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO bills (room_id, created_at, total) VALUES (?, CURRENT_TIMESTAMP, ?)",
		room, total,
	)
	if err != nil {
		return 0, storeErr("insert bill", err)
	}
	billID, err := res.LastInsertId()
	if err != nil {
		return 0, storeErr("bill id", err)
	}

	for _, ln := range lines {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO bill_lines (bill_id, item_name, quantity, unit_price, total_price) VALUES (?, ?, ?, ?, ?)",
			billID, ln.ItemName, ln.Quantity, ln.UnitPrice, ln.TotalPrice,
		)
		if err != nil {
			return 0, storeErr("insert bill line", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, storeErr("commit save bill", err)
	}
	return billID, nil
}

// ListBills returns up to limit bills, most recent first, with the room
// code resolved where the room still exists.
func (s *SQLiteStore) ListBills(ctx context.Context, limit int) ([]models.BillSummary, error) {
	if limit <= 0 {
		limit = defaultBillLimit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT b.id, b.created_at, r.code, b.total
FROM bills b
LEFT JOIN rooms r ON r.id = b.room_id
ORDER BY b.id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, storeErr("list bills", err)
	}
	defer rows.Close()

	var list []models.BillSummary
	for rows.Next() {
		b, err := scanBillSummary(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate bills", err)
	}
	return list, nil
}

// GetBill retrieves one bill summary by id.
func (s *SQLiteStore) GetBill(ctx context.Context, billID int64) (*models.BillSummary, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT b.id, b.created_at, r.code, b.total
FROM bills b
LEFT JOIN rooms r ON r.id = b.room_id
WHERE b.id = ?`, billID)

	b, err := scanBillSummary(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: bill %d", storage.ErrNotFound, billID)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func scanBillSummary(scan func(...any) error) (*models.BillSummary, error) {
	var b models.BillSummary
	var date sql.NullString
	var code sql.NullString
	if err := scan(&b.ID, &date, &code, &b.Total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, storeErr("scan bill", err)
	}
	b.Date = date.String
	if code.Valid {
		b.RoomCode = &code.String
	}
	b.BillNo = models.BillNumber(b.ID)
	return &b, nil
}

// LoadBillLines returns a bill's lines in original insertion order.
func (s *SQLiteStore) LoadBillLines(ctx context.Context, billID int64) ([]models.BillLine, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT item_name, quantity, unit_price, total_price
FROM bill_lines
WHERE bill_id = ?
ORDER BY id ASC`, billID)
	if err != nil {
		return nil, storeErr("load bill lines", err)
	}
	defer rows.Close()

	var lines []models.BillLine
	for rows.Next() {
		var ln models.BillLine
		if err := rows.Scan(&ln.ItemName, &ln.Quantity, &ln.UnitPrice, &ln.TotalPrice); err != nil {
			return nil, storeErr("scan bill line", err)
		}
		lines = append(lines, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate bill lines", err)
	}
	return lines, nil
}

// DeleteBill removes a bill; its lines go with it via ON DELETE CASCADE.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin delete bill", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return storeErr("delete bill", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete bill", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: bill %d", storage.ErrNotFound, billID)
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit delete bill", err)
	}
	return nil
}
