package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/ademenev/booktrack/internal/library"
	"github.com/ademenev/booktrack/internal/stats"
	"github.com/ademenev/booktrack/internal/store"
)

// respondWithDomainError maps engine and store errors onto HTTP statuses:
// validation failures are 400, missing things are 404, duplicates and
// forbidden transitions are 409, everything else is a 500.
func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, library.ErrInvalidStatus),
		errors.Is(err, library.ErrInvalidRating),
		errors.Is(err, library.ErrPageOutOfRange),
		errors.Is(err, store.ErrInvalidPageCount),
		errors.Is(err, store.ErrMissingBookFields),
		errors.Is(err, stats.ErrUnknownCriterion):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrBookNotFound),
		errors.Is(err, store.ErrEntryNotFound),
		errors.Is(err, store.ErrUserNotFound):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrEntryExists),
		errors.Is(err, library.ErrIllegalTransition):
		RespondWithError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("Unexpected error: %v", err)
		RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
