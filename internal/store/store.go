// Package store wraps every SQL operation behind an explicit capability
// object so handlers never touch a global connection.
package store

import "database/sql"

type Store struct {
	DB *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

// timeLayout matches the MySQL DATETIME rendering the admin UI expects.
const timeLayout = "2006-01-02 15:04:05"
