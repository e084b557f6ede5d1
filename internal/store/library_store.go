package store

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/ademenev/booktrack/internal/models"
)

// InsertEntry creates a library entry for (userID, bookID). The composite
// primary key guarantees at most one entry per pair; a second insert fails
// with ErrEntryExists.
func (s *Store) InsertEntry(userID, bookID int64, status models.Status) error {
	_, err := s.db.Exec(
		"INSERT INTO library_entries (user_id, book_id, status) VALUES (?, ?, ?)",
		userID, bookID, status,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrEntryExists
		}
		return err
	}
	return nil
}

// DeleteEntry removes a user's library entry. It reports whether a row was
// actually deleted.
func (s *Store) DeleteEntry(userID, bookID int64) (bool, error) {
	res, err := s.db.Exec("DELETE FROM library_entries WHERE user_id = ? AND book_id = ?", userID, bookID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetEntry fetches a single library entry joined with its catalog book.
func (s *Store) GetEntry(userID, bookID int64) (*models.LibraryEntry, error) {
	query := `
		SELECT le.user_id, le.book_id, le.status, le.current_page, le.rating,
		       le.created_at, le.updated_at,
		       b.title, b.author, b.total_pages
		FROM library_entries le
		JOIN books b ON b.id = le.book_id
		WHERE le.user_id = ? AND le.book_id = ?
	`
	var entry models.LibraryEntry
	var rating sql.NullInt64
	err := s.db.QueryRow(query, userID, bookID).Scan(
		&entry.UserID, &entry.BookID, &entry.Status, &entry.CurrentPage, &rating,
		&entry.CreatedAt, &entry.UpdatedAt,
		&entry.Title, &entry.Author, &entry.TotalPages,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if rating.Valid {
		r := int(rating.Int64)
		entry.Rating = &r
	}
	return &entry, nil
}

// ListEntries returns a user's library entries in insertion order, joined with
// their catalog books and optionally filtered by status.
func (s *Store) ListEntries(userID int64, statusFilter models.Status) ([]*models.LibraryEntry, error) {
	query := `
		SELECT le.user_id, le.book_id, le.status, le.current_page, le.rating,
		       le.created_at, le.updated_at,
		       b.title, b.author, b.total_pages
		FROM library_entries le
		JOIN books b ON b.id = le.book_id
		WHERE le.user_id = ?
	`
	args := []interface{}{userID}
	if statusFilter != "" {
		query += " AND le.status = ?"
		args = append(args, statusFilter)
	}
	query += " ORDER BY le.rowid ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.LibraryEntry
	for rows.Next() {
		var entry models.LibraryEntry
		var rating sql.NullInt64
		if err := rows.Scan(
			&entry.UserID, &entry.BookID, &entry.Status, &entry.CurrentPage, &rating,
			&entry.CreatedAt, &entry.UpdatedAt,
			&entry.Title, &entry.Author, &entry.TotalPages,
		); err != nil {
			return nil, err
		}
		if rating.Valid {
			r := int(rating.Int64)
			entry.Rating = &r
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// HasEntry reports whether the user already has the book in their library.
func (s *Store) HasEntry(userID, bookID int64) (bool, error) {
	var exists int
	err := s.db.QueryRow(
		"SELECT 1 FROM library_entries WHERE user_id = ? AND book_id = ?",
		userID, bookID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateEntryStatus sets the status and current page of an entry.
func (s *Store) UpdateEntryStatus(userID, bookID int64, status models.Status, currentPage int) error {
	res, err := s.db.Exec(`
		UPDATE library_entries
		SET status = ?, current_page = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND book_id = ?`,
		status, currentPage, userID, bookID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// UpdateEntryProgress sets the current page and, when complete is true, moves
// the entry to completed in the same statement so a page update and its
// status promotion are never observable separately.
func (s *Store) UpdateEntryProgress(userID, bookID int64, page int, complete bool) error {
	res, err := s.db.Exec(`
		UPDATE library_entries
		SET current_page = ?,
		    status = CASE WHEN ? THEN 'completed' ELSE status END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND book_id = ?`,
		page, complete, userID, bookID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// UpdateEntryRating overwrites the entry's rating. Last write wins; no rating
// history is kept.
func (s *Store) UpdateEntryRating(userID, bookID int64, rating int) error {
	res, err := s.db.Exec(`
		UPDATE library_entries
		SET rating = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND book_id = ?`,
		rating, userID, bookID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}
