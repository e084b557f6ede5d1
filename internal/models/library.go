package models

import "time"

// Status is the reading state of a library entry.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusReading   Status = "reading"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
)

// AllStatuses lists the recognized statuses in lifecycle order.
var AllStatuses = []Status{StatusPlanned, StatusReading, StatusCompleted, StatusDropped}

// Valid reports whether s is one of the four recognized statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusReading, StatusCompleted, StatusDropped:
		return true
	}
	return false
}

// LibraryEntry is one user's relationship to one catalog book. At most one
// entry exists per (UserID, BookID) pair. Title, Author and TotalPages are
// joined in from the catalog when entries are listed.
type LibraryEntry struct {
	UserID      int64     `json:"user_id"`
	BookID      int64     `json:"book_id"`
	Status      Status    `json:"status"`
	CurrentPage int       `json:"current_page"`
	Rating      *int      `json:"rating"` // nil until the user rates the book
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	Title      string `json:"title,omitempty"`
	Author     string `json:"author,omitempty"`
	TotalPages int    `json:"total_pages,omitempty"`
}

// ProgressPercent is the derived reading percentage for the entry.
func (e *LibraryEntry) ProgressPercent() float64 {
	return ProgressPercent(e.CurrentPage, e.TotalPages)
}

// ProgressPercent computes page/totalPages as a percentage. A book with zero
// total pages or nothing read yields 0.0, never an error and never NaN.
func ProgressPercent(page, totalPages int) float64 {
	if totalPages <= 0 || page <= 0 {
		return 0.0
	}
	return float64(page) / float64(totalPages) * 100.0
}

// ProgressResult is returned by a progress update so the caller can branch
// presentation without recomputing the percentage.
type ProgressResult struct {
	Page      int     `json:"page"`
	Percent   float64 `json:"percent"`
	Completed bool    `json:"completed"` // true when this update transitioned the entry to completed
}
