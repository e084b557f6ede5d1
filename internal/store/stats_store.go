// Aggregate queries for user summaries and catalog-wide leaderboards. All
// numbers are recomputed from library entry rows on every call; nothing here
// is cached.

package store

import (
	"database/sql"

	"github.com/ademenev/booktrack/internal/models"
)

// GetUserSummary derives per-status counts and the mean of the user's non-null
// ratings from their library entries. AverageRating stays nil when the user
// has rated nothing.
func (s *Store) GetUserSummary(userID int64) (*models.UserSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'planned' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'reading' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'dropped' THEN 1 ELSE 0 END), 0),
			AVG(rating)
		FROM library_entries
		WHERE user_id = ?
	`
	var summary models.UserSummary
	var avg sql.NullFloat64
	err := s.db.QueryRow(query, userID).Scan(
		&summary.Total, &summary.Planned, &summary.Reading, &summary.Completed, &summary.Dropped, &avg,
	)
	if err != nil {
		return nil, err
	}
	if avg.Valid {
		summary.AverageRating = &avg.Float64
	}
	return &summary, nil
}

// GetTopBooksByRating ranks the whole catalog by mean rating across all users,
// descending. Ties break on higher rating count, then lower id, so the order
// is deterministic. Books nobody has rated rank last rather than being
// excluded.
func (s *Store) GetTopBooksByRating(limit int) ([]*models.RankedBook, error) {
	query := `
		SELECT b.id, b.title, b.author, b.genre, b.description, b.total_pages, b.created_at,
		       AVG(le.rating) AS avg_rating,
		       COUNT(le.rating) AS rating_count,
		       COUNT(le.user_id) AS reader_count
		FROM books b
		LEFT JOIN library_entries le ON le.book_id = b.id
		GROUP BY b.id
		ORDER BY (avg_rating IS NULL) ASC, avg_rating DESC, rating_count DESC, b.id ASC
		LIMIT ?
	`
	return s.queryRankedBooks(query, limit)
}

// GetTopBooksByPopularity ranks the whole catalog by the number of library
// entries referencing each book, descending, with the same tie-break rule as
// the rating leaderboard.
func (s *Store) GetTopBooksByPopularity(limit int) ([]*models.RankedBook, error) {
	query := `
		SELECT b.id, b.title, b.author, b.genre, b.description, b.total_pages, b.created_at,
		       AVG(le.rating) AS avg_rating,
		       COUNT(le.rating) AS rating_count,
		       COUNT(le.user_id) AS reader_count
		FROM books b
		LEFT JOIN library_entries le ON le.book_id = b.id
		GROUP BY b.id
		ORDER BY reader_count DESC, rating_count DESC, b.id ASC
		LIMIT ?
	`
	return s.queryRankedBooks(query, limit)
}

func (s *Store) queryRankedBooks(query string, limit int) ([]*models.RankedBook, error) {
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.RankedBook
	for rows.Next() {
		var book models.RankedBook
		var description sql.NullString
		var avg sql.NullFloat64
		if err := rows.Scan(
			&book.ID, &book.Title, &book.Author, &book.Genre, &description, &book.TotalPages, &book.CreatedAt,
			&avg, &book.RatingCount, &book.ReaderCount,
		); err != nil {
			return nil, err
		}
		book.Description = description.String
		if avg.Valid {
			book.AverageRating = &avg.Float64
		}
		books = append(books, &book)
	}
	return books, rows.Err()
}
