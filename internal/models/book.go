// This file defines the core data structures (models) for our application.
// These structs represent the catalog books, users, and per-user library
// entries the engine operates on.

package models

import "time"

// DefaultGenre is applied when a book is added without a genre.
const DefaultGenre = "unspecified"

// Book represents a single catalog entry. Catalog rows are immutable after
// insert; there is no edit operation.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       string    `json:"genre"`
	Description string    `json:"description,omitempty"`
	TotalPages  int       `json:"total_pages"`
	CreatedAt   time.Time `json:"-"`
}

// RankedBook is a catalog book enriched with the aggregate numbers a
// leaderboard is ranked on. Aggregates are recomputed from library entry rows
// on every query, never cached.
type RankedBook struct {
	Book
	AverageRating *float64 `json:"average_rating"` // nil when no user has rated the book
	RatingCount   int      `json:"rating_count"`
	ReaderCount   int      `json:"reader_count"`
}
