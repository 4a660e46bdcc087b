package repos

import (
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB opens the shared store file, switches it to WAL journaling, ensures the
// schema exists and seeds baseline rows on first run. Every station opens the
// same file; SQLite's single-statement atomicity is the only cross-station lock.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite serializes writers anyway, and the pragmas below
	// are per-connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if the store is empty (categories + default admin)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the store schema if it does not exist yet. Exposed so
// tests can lay it over an in-memory database.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA journal_mode = WAL;
PRAGMA foreign_keys = ON;

-- Product categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT (datetime('now','localtime'))
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  barcode TEXT UNIQUE,
  name TEXT NOT NULL,
  category_id TEXT REFERENCES categories(id) ON DELETE SET NULL,
  cost_price NUMERIC NOT NULL DEFAULT 0 CHECK (cost_price >= 0),
  sale_price NUMERIC NOT NULL DEFAULT 0 CHECK (sale_price >= 0),
  stock INTEGER NOT NULL DEFAULT 0,
  image_ref TEXT,
  created_at TEXT DEFAULT (datetime('now','localtime'))
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Table categories (floor sections)
CREATE TABLE IF NOT EXISTS table_categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT (datetime('now','localtime'))
);

-- Tables: status + serialized pending cart, shared by all stations.
-- version is advisory; every payload write bumps it.
CREATE TABLE IF NOT EXISTS tables(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  table_category_id TEXT REFERENCES table_categories(id) ON DELETE SET NULL,
  status TEXT NOT NULL DEFAULT 'EMPTY' CHECK (status IN ('EMPTY','OCCUPIED')),
  pending_cart TEXT,
  version INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT (datetime('now','localtime'))
);
CREATE INDEX IF NOT EXISTS idx_tables_category ON tables(table_category_id);

-- Staff (sale attribution only; secrets stored hashed)
CREATE TABLE IF NOT EXISTS staff(
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  secret_hash TEXT NOT NULL,
  created_at TEXT DEFAULT (datetime('now','localtime'))
);

-- Sale ledger: headers never updated or deleted once written
CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  sold_at TEXT NOT NULL DEFAULT (datetime('now','localtime')),
  total NUMERIC NOT NULL,
  payment_method TEXT NOT NULL,
  cashier_name TEXT,
  staff_id TEXT REFERENCES staff(id),
  table_id TEXT,
  table_label TEXT
);
CREATE INDEX IF NOT EXISTS idx_sales_sold_at ON sales(sold_at);

CREATE TABLE IF NOT EXISTS sale_lines(
  id TEXT PRIMARY KEY,
  sale_id TEXT NOT NULL REFERENCES sales(id),
  product_id TEXT NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sale_lines_sale    ON sale_lines(sale_id);
CREATE INDEX IF NOT EXISTS idx_sale_lines_product ON sale_lines(product_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n == 0 {
		tx := db.MustBegin()
		tx.MustExec(`INSERT INTO categories(id,name) VALUES
		  ('cat-general','General'),
		  ('cat-food','Food'),
		  ('cat-drinks','Drinks'),
		  ('cat-cleaning','Cleaning'),
		  ('cat-stationery','Stationery')`)
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	if err := db.Get(&n, `SELECT COUNT(*) FROM staff`); err != nil {
		return err
	}
	if n == 0 {
		h, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := db.Exec(
			`INSERT INTO staff(id,first_name,last_name,secret_hash) VALUES('staff-admin','Admin','Manager',?)`,
			string(h)); err != nil {
			return err
		}
	}

	return nil
}
