package store

import (
	"database/sql"
	"testing"

	_ "github.com/glebarez/go-sqlite"
	"github.com/stretchr/testify/require"
)

// testSchema mirrors the production schema in SQLite's dialect. Every query
// in this package stays on the shared subset (? placeholders, LIMIT/OFFSET,
// LOWER) so the in-memory database exercises the real statements.
const testSchema = `
CREATE TABLE categories (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	slug       TEXT NOT NULL DEFAULT '',
	parent_id  INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE (name, parent_id)
);

CREATE TABLE products (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	name           TEXT NOT NULL,
	sku            TEXT NOT NULL DEFAULT '',
	price          TEXT NOT NULL DEFAULT '0',
	stock_quantity INTEGER NOT NULL DEFAULT 0,
	description    TEXT NOT NULL DEFAULT '',
	image_path     TEXT NOT NULL DEFAULT '',
	images_json    TEXT NOT NULL DEFAULT '',
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL
);

CREATE TABLE product_categories (
	product_id  INTEGER NOT NULL,
	category_id INTEGER NOT NULL,
	PRIMARY KEY (product_id, category_id)
);

CREATE TABLE users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'admin',
	created_at    DATETIME NOT NULL
);

CREATE TABLE videos (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	thm         TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL
);

CREATE TABLE orders (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	order_date     DATETIME NOT NULL,
	customer_name  TEXT,
	customer_phone TEXT,
	contacted      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE order_items (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id   INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	quantity   INTEGER NOT NULL DEFAULT 1
);
`

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// One connection keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	return New(db)
}
