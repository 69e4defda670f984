package sqlite

import (
	"database/sql"
	"fmt"
)

// schema contains the SQL statements to set up the database.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS rooms (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    code TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL,
    price_per_day REAL NOT NULL,
    status TEXT DEFAULT 'Available'
);

CREATE TABLE IF NOT EXISTS food_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    price REAL NOT NULL,
    category TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    room_id INTEGER,
    created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    total REAL NOT NULL,
    FOREIGN KEY (room_id) REFERENCES rooms(id)
);

CREATE TABLE IF NOT EXISTS bill_lines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    bill_id INTEGER NOT NULL,
    item_name TEXT NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity >= 1),
    unit_price REAL NOT NULL,
    total_price REAL NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_bill_lines_bill_id ON bill_lines(bill_id);
CREATE INDEX IF NOT EXISTS idx_bills_room_id ON bills(room_id);
`

// seedRoom is one row of the baseline room catalog.
type seedRoom struct {
	code        string
	roomType    string
	pricePerDay float64
	status      string
}

// seedRooms is the fixed catalog baseline: six rooms across three types.
// These codes are self-healing; see ensureBaseline.
var seedRooms = []seedRoom{
	{"101", "Non/AC Family Room", 100.00, "Available"},
	{"102", "Non/AC Family Room", 100.00, "Available"},
	{"103", "Non/AC Triple Room", 150.00, "Occupied"},
	{"104", "Non/AC Triple Room", 150.00, "Available"},
	{"105", "Outside Family Room", 250.00, "Available"},
	{"106", "Outside Family Room", 250.00, "Available"},
}

type seedFood struct {
	name     string
	price    float64
	category string
}

// seedFoods is the starter menu: ten items across four categories.
var seedFoods = []seedFood{
	{"Biryani", 250.00, "Lunch"},
	{"Butter Chicken", 280.00, "Lunch"},
	{"Paneer Tikka", 200.00, "Snacks"},
	{"Dal Makhani", 150.00, "Lunch"},
	{"Naan", 50.00, "Breakfast"},
	{"Coffee", 80.00, "Drinks"},
	{"Tea", 40.00, "Drinks"},
	{"Samosa", 30.00, "Snacks"},
	{"Tandoori Chicken", 320.00, "Lunch"},
	{"Ice Cream", 100.00, "Snacks"},
}

// runMigrations executes the schema setup, seeds an empty catalog, and
// repairs the room baseline.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	var roomCount int
	if err := db.QueryRow("SELECT COUNT(1) FROM rooms").Scan(&roomCount); err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}

	if roomCount == 0 {
		if err := seedCatalog(db); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	if err := ensureBaseline(db); err != nil {
		return fmt.Errorf("ensure room baseline: %w", err)
	}
	return nil
}

// seedCatalog inserts the baseline rooms and menu in one transaction.
// Only called when the rooms table is empty.
func seedCatalog(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range seedRooms {
		_, err = tx.Exec(
			"INSERT INTO rooms (code, type, price_per_day, status) VALUES (?, ?, ?, ?)",
			r.code, r.roomType, r.pricePerDay, r.status,
		)
		if err != nil {
			return err
		}
	}
	for _, f := range seedFoods {
		_, err = tx.Exec(
			"INSERT INTO food_items (name, price, category) VALUES (?, ?, ?)",
			f.name, f.price, f.category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ensureBaseline runs on every startup. It re-normalizes the type label of
// any room whose code matches a seeded code (keeping its price and status)
// and re-inserts seeded codes that were deleted. Idempotent.
func ensureBaseline(db *sql.DB) error {
	for _, r := range seedRooms {
		_, err := db.Exec(
			"UPDATE rooms SET type = ? WHERE code = ?",
			r.roomType, r.code,
		)
		if err != nil {
			return err
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range seedRooms {
		_, err = tx.Exec(
			"INSERT OR IGNORE INTO rooms (code, type, price_per_day, status) VALUES (?, ?, ?, 'Available')",
			r.code, r.roomType, r.pricePerDay,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
