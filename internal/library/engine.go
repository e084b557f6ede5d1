// The library engine owns the per-user book state machine: how an entry moves
// between planned, reading, completed and dropped, how page progress is
// validated against the book's page count, and how ratings are constrained.

package library

import (
	"errors"
	"fmt"

	"github.com/ademenev/booktrack/internal/models"
	"github.com/ademenev/booktrack/internal/store"
)

// Validation errors returned by the engine. Storage-level conditions
// (store.ErrBookNotFound, store.ErrEntryNotFound, store.ErrEntryExists) pass
// through unwrapped so callers can match them with errors.Is.
var (
	ErrInvalidStatus     = errors.New("unrecognized status")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrPageOutOfRange    = errors.New("page is out of range for this book")
	ErrIllegalTransition = errors.New("status transition not allowed")
)

// Config controls optional engine behavior.
type Config struct {
	// StrictTransitions rejects status changes out of the terminal states
	// (completed, dropped) except re-entering reading as a fresh attempt.
	// When false, any jump between recognized statuses is permitted.
	StrictTransitions bool
}

// Engine implements the user-library state machine on top of the store.
type Engine struct {
	st     *store.Store
	strict bool
}

// New creates a library engine backed by st.
func New(st *store.Store, cfg Config) *Engine {
	return &Engine{st: st, strict: cfg.StrictTransitions}
}

// AddToLibrary creates a library entry for the user. The book must exist in
// the catalog, and a second add of the same (user, book) pair fails with
// store.ErrEntryExists, leaving the existing entry untouched.
func (e *Engine) AddToLibrary(userID, bookID int64, initialStatus models.Status) error {
	if initialStatus == "" {
		initialStatus = models.StatusPlanned
	}
	if !initialStatus.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, initialStatus)
	}
	if _, err := e.st.GetBookByID(bookID); err != nil {
		return err
	}
	return e.st.InsertEntry(userID, bookID, initialStatus)
}

// RemoveFromLibrary deletes the user's entry for the book.
func (e *Engine) RemoveFromLibrary(userID, bookID int64) error {
	deleted, err := e.st.DeleteEntry(userID, bookID)
	if err != nil {
		return err
	}
	if !deleted {
		return store.ErrEntryNotFound
	}
	return nil
}

// SetStatus moves an entry to newStatus and sets its current page. Unknown
// statuses are always rejected, and the page must stay within the book's page
// count, same as a progress update. In strict mode, transitions out of
// completed or dropped are rejected too, except back to reading as a fresh
// attempt.
func (e *Engine) SetStatus(userID, bookID int64, newStatus models.Status, currentPage int) error {
	if !newStatus.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}
	if currentPage < 0 {
		return ErrPageOutOfRange
	}

	entry, err := e.st.GetEntry(userID, bookID)
	if err != nil {
		return err
	}
	if currentPage > entry.TotalPages {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, currentPage, entry.TotalPages)
	}
	if e.strict && !transitionAllowed(entry.Status, newStatus) {
		return fmt.Errorf("%w: %s to %s", ErrIllegalTransition, entry.Status, newStatus)
	}

	return e.st.UpdateEntryStatus(userID, bookID, newStatus, currentPage)
}

// transitionAllowed encodes the strict status graph. Skipping forward from
// planned is always fine; the only way out of a terminal state is a fresh
// reading attempt.
func transitionAllowed(from, to models.Status) bool {
	if from == to {
		return true
	}
	switch from {
	case models.StatusCompleted, models.StatusDropped:
		return to == models.StatusReading
	default:
		return true
	}
}

// UpdateProgress sets the entry's current page. A page beyond the book's page
// count is rejected without mutation. Reaching 100 percent promotes the entry
// to completed in the same write; the result tells the caller whether that
// promotion happened so it can branch presentation.
func (e *Engine) UpdateProgress(userID, bookID int64, newPage int) (*models.ProgressResult, error) {
	if newPage < 0 {
		return nil, ErrPageOutOfRange
	}

	entry, err := e.st.GetEntry(userID, bookID)
	if err != nil {
		return nil, err
	}
	if newPage > entry.TotalPages {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, newPage, entry.TotalPages)
	}

	percent := models.ProgressPercent(newPage, entry.TotalPages)
	finished := percent >= 100.0

	if err := e.st.UpdateEntryProgress(userID, bookID, newPage, finished); err != nil {
		return nil, err
	}

	return &models.ProgressResult{
		Page:      newPage,
		Percent:   percent,
		Completed: finished && entry.Status != models.StatusCompleted,
	}, nil
}

// Rate records the user's rating for a book in their library, overwriting any
// prior value. Ratings are valid for any status, not just completed reads;
// gating on completion is left to the presentation layer if it wants it.
func (e *Engine) Rate(userID, bookID int64, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	return e.st.UpdateEntryRating(userID, bookID, rating)
}

// GetEntries lists the user's library in insertion order, optionally filtered
// by status. Entries come enriched with title, author and page count from the
// catalog.
func (e *Engine) GetEntries(userID int64, statusFilter models.Status) ([]*models.LibraryEntry, error) {
	if statusFilter != "" && !statusFilter.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, statusFilter)
	}
	return e.st.ListEntries(userID, statusFilter)
}

// HasEntry reports whether the book is already in the user's library.
func (e *Engine) HasEntry(userID, bookID int64) (bool, error) {
	return e.st.HasEntry(userID, bookID)
}
