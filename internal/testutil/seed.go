package testutil

import (
	"database/sql"
	"testing"
)

// CreateBook inserts a catalog book directly and returns its id.
func CreateBook(t *testing.T, db *sql.DB, title, author string, totalPages int) int64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO books (title, author, total_pages) VALUES (?, ?, ?)",
		title, author, totalPages,
	)
	if err != nil {
		t.Fatalf("Failed to insert book %q: %v", title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get book id: %v", err)
	}
	return id
}

// CreateUser inserts a user row directly and returns its id.
func CreateUser(t *testing.T, db *sql.DB, externalID string) int64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO users (external_id) VALUES (?)", externalID)
	if err != nil {
		t.Fatalf("Failed to insert user %q: %v", externalID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get user id: %v", err)
	}
	return id
}
