// To handle all database interactions. This is our
// data access layer, keeping SQL queries separate from business logic.

package store

import (
	"database/sql"
	"errors"
)

// Sentinel errors returned by the data access layer. Callers match them with
// errors.Is and map them to their own result kinds.
var (
	ErrBookNotFound  = errors.New("book not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrEntryNotFound = errors.New("library entry not found")
	ErrEntryExists   = errors.New("book is already in the library")
)

// Store provides all functions to interact with the database.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}
