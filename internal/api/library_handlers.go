package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ademenev/booktrack/internal/models"
)

func bookIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	return id, err == nil
}

func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil {
		RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	statusFilter := models.Status(r.URL.Query().Get("status"))
	entries, err := s.engine.GetEntries(user.ID, statusFilter)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.LibraryEntry{}
	}
	RespondWithJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAddToLibrary(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil {
		RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	bookID, ok := bookIDParam(r)
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var payload struct {
		Status models.Status `json:"status"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
	}

	if err := s.engine.AddToLibrary(user.ID, bookID, payload.Status); err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, map[string]bool{"added": true})
}

func (s *Server) handleRemoveFromLibrary(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil {
		RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	bookID, ok := bookIDParam(r)
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	if err := s.engine.RemoveFromLibrary(user.ID, bookID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil {
		RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	bookID, ok := bookIDParam(r)
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var payload struct {
		Status      models.Status `json:"status"`
		CurrentPage int           `json:"current_page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.engine.SetStatus(user.ID, bookID, payload.Status, payload.CurrentPage); err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// handleUpdateProgress records a page update. The response carries the
// computed percentage and whether this update completed the book, so the
// transport can pick between a routine acknowledgment and a celebration.
func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil {
		RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	bookID, ok := bookIDParam(r)
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var payload struct {
		Page int `json:"page"`
	}
	// Decoding rejects fractional pages; they are not representable.
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := s.engine.UpdateProgress(user.ID, bookID, payload.Page)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	if result.Completed {
		s.app.WsHub().BroadcastJSON(models.LibraryEvent{
			Type:    "book_completed",
			UserID:  user.ID,
			BookID:  bookID,
			Percent: result.Percent,
		})
	}

	RespondWithJSON(w, http.StatusOK, result)
}

func (s *Server) handleRateBook(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil {
		RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	bookID, ok := bookIDParam(r)
	if !ok {
		RespondWithError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	var payload struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.engine.Rate(user.ID, bookID, payload.Rating); err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]bool{"rated": true})
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if user == nil {
		RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := s.stats.UserSummary(user.ID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, summary)
}
