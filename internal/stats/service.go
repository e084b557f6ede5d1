// Statistics aggregation over the catalog and user libraries. The service is
// a thin policy layer over the store's aggregate queries: it validates the
// ranking criterion and bounds result sizes.

package stats

import (
	"errors"
	"fmt"

	"github.com/ademenev/booktrack/internal/models"
	"github.com/ademenev/booktrack/internal/store"
)

// ErrUnknownCriterion is returned for a leaderboard criterion other than
// rating or popularity.
var ErrUnknownCriterion = errors.New("unknown ranking criterion")

// Criterion selects how TopBooks ranks the catalog.
type Criterion string

const (
	ByRating     Criterion = "rating"
	ByPopularity Criterion = "popularity"
)

const defaultLimit = 10

// Service computes aggregate statistics.
type Service struct {
	st *store.Store
}

// New creates a statistics service backed by st.
func New(st *store.Store) *Service {
	return &Service{st: st}
}

// UserSummary returns per-status counts and the user's average rating. A user
// with no entries gets all-zero counts and a nil average.
func (s *Service) UserSummary(userID int64) (*models.UserSummary, error) {
	return s.st.GetUserSummary(userID)
}

// TopBooks returns the catalog-wide leaderboard for the given criterion.
func (s *Service) TopBooks(criterion Criterion, limit int) ([]*models.RankedBook, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	switch criterion {
	case ByRating:
		return s.st.GetTopBooksByRating(limit)
	case ByPopularity:
		return s.st.GetTopBooksByPopularity(limit)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCriterion, criterion)
	}
}
