package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ademenev/booktrack/internal/models"
	"github.com/ademenev/booktrack/internal/stats"
)

const defaultSearchLimit = 20

// handleSearchBooks searches the catalog by title/author substring, with an
// optional genre filter. An empty query browses the catalog.
func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	genre := r.URL.Query().Get("genre")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	books, err := s.store.SearchBooks(query, genre, limit)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if books == nil {
		books = []*models.Book{}
	}
	RespondWithJSON(w, http.StatusOK, books)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid book ID")
		return
	}

	book, err := s.store.GetBookByID(bookID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, book)
}

// handleAddBook adds a book to the catalog unless an equivalent one already
// exists. The response always carries the id the caller should use.
func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title       string `json:"title"`
		Author      string `json:"author"`
		Genre       string `json:"genre"`
		Description string `json:"description"`
		TotalPages  int    `json:"total_pages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, id, err := s.store.AddBookIfAbsent(payload.Title, payload.Author, payload.TotalPages, payload.Genre, payload.Description)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	RespondWithJSON(w, code, map[string]interface{}{"created": created, "id": id})
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.store.ListGenres()
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if genres == nil {
		genres = []string{}
	}
	RespondWithJSON(w, http.StatusOK, genres)
}

// handleTopBooks serves the catalog-wide leaderboard ranked by rating or
// popularity.
func (s *Server) handleTopBooks(w http.ResponseWriter, r *http.Request) {
	criterion := stats.Criterion(r.URL.Query().Get("by"))
	if criterion == "" {
		criterion = stats.ByRating
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	books, err := s.stats.TopBooks(criterion, limit)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if books == nil {
		books = []*models.RankedBook{}
	}
	RespondWithJSON(w, http.StatusOK, books)
}
