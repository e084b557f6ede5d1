package store

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/ademenev/booktrack/internal/models"
)

// Validation errors for catalog adds.
var (
	ErrInvalidPageCount  = errors.New("total pages must be a positive integer")
	ErrMissingBookFields = errors.New("title and author are required")
)

// GetBookByID fetches a single catalog book by its primary key.
func (s *Store) GetBookByID(id int64) (*models.Book, error) {
	var book models.Book
	var description sql.NullString
	query := "SELECT id, title, author, genre, description, total_pages, created_at FROM books WHERE id = ?"
	err := s.db.QueryRow(query, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.Genre, &description, &book.TotalPages, &book.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	book.Description = description.String
	return &book, nil
}

// SearchBooks returns up to limit catalog books ordered by title. A non-empty
// query matches as a case-insensitive substring against title or author. An
// empty query browses the catalog, optionally narrowed by genre.
func (s *Store) SearchBooks(query, genre string, limit int) ([]*models.Book, error) {
	sqlQuery := "SELECT id, title, author, genre, description, total_pages, created_at FROM books"
	var conditions []string
	var args []interface{}

	query = strings.TrimSpace(query)
	if query != "" {
		conditions = append(conditions, "(title LIKE ? COLLATE NOCASE OR author LIKE ? COLLATE NOCASE)")
		pattern := "%" + query + "%"
		args = append(args, pattern, pattern)
	}
	if genre != "" {
		conditions = append(conditions, "lower(genre) = lower(?)")
		args = append(args, genre)
	}
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY title COLLATE NOCASE ASC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		var book models.Book
		var description sql.NullString
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Genre, &description, &book.TotalPages, &book.CreatedAt); err != nil {
			return nil, err
		}
		book.Description = description.String
		books = append(books, &book)
	}
	return books, rows.Err()
}

// AddBookIfAbsent inserts a book unless one with the same title and author
// (compared case-insensitively) already exists. It reports whether a row was
// created and returns the id of the new or existing book. Duplicate adds
// never mutate the existing row.
func (s *Store) AddBookIfAbsent(title, author string, totalPages int, genre, description string) (bool, int64, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" || author == "" {
		return false, 0, ErrMissingBookFields
	}
	if totalPages <= 0 {
		return false, 0, ErrInvalidPageCount
	}
	genre = strings.TrimSpace(genre)
	if genre == "" {
		genre = models.DefaultGenre
	}

	var existingID int64
	err := s.db.QueryRow(
		"SELECT id FROM books WHERE lower(title) = lower(?) AND lower(author) = lower(?)",
		title, author,
	).Scan(&existingID)
	if err == nil {
		return false, existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, 0, err
	}

	res, err := s.db.Exec(
		"INSERT INTO books (title, author, genre, description, total_pages) VALUES (?, ?, ?, ?, ?)",
		title, author, genre, nullableString(description), totalPages,
	)
	if err != nil {
		// A concurrent insert can win the race between the lookup above and
		// this insert. The unique index resolves it; fetch the winner.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			err = s.db.QueryRow(
				"SELECT id FROM books WHERE lower(title) = lower(?) AND lower(author) = lower(?)",
				title, author,
			).Scan(&existingID)
			if err != nil {
				return false, 0, err
			}
			return false, existingID, nil
		}
		return false, 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return false, 0, err
	}
	return true, id, nil
}

// ListGenres returns the distinct genres present in the catalog, for filter menus.
func (s *Store) ListGenres() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT genre FROM books ORDER BY genre ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	return genres, rows.Err()
}

func nullableString(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
