package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ademenev/booktrack/internal/core"
	"github.com/ademenev/booktrack/internal/library"
	"github.com/ademenev/booktrack/internal/stats"
	"github.com/ademenev/booktrack/internal/store"
)

// Server wires the HTTP surface to the engine, the catalog and the
// statistics service. It performs no business logic of its own.
type Server struct {
	app    *core.App
	store  *store.Store
	engine *library.Engine
	stats  *stats.Service
}

func NewServer(app *core.App) *Server {
	storeInstance := store.New(app.DB())
	return &Server{
		app:   app,
		store: storeInstance,
		engine: library.New(storeInstance, library.Config{
			StrictTransitions: app.Config().Library.StrictTransitions,
		}),
		stats: stats.New(storeInstance),
	}
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	// Catalog routes do not depend on who is asking.
	r.Get("/api/books", s.handleSearchBooks)
	r.Get("/api/books/top", s.handleTopBooks)
	r.Get("/api/books/{bookID}", s.handleGetBook)
	r.Post("/api/books", s.handleAddBook)
	r.Get("/api/genres", s.handleListGenres)

	r.Get("/api/jobs/status", s.handleJobStatus)
	r.Post("/api/jobs/run", s.handleRunJob)

	r.Get("/api/ws", func(w http.ResponseWriter, r *http.Request) {
		s.app.WsHub().ServeWs(w, r)
	})

	// Library routes act on behalf of the chat identity asserted by the
	// transport in the X-External-ID header.
	r.Group(func(r chi.Router) {
		r.Use(s.IdentityMiddleware)

		r.Get("/api/library", s.handleListLibrary)
		r.Post("/api/library/{bookID}", s.handleAddToLibrary)
		r.Delete("/api/library/{bookID}", s.handleRemoveFromLibrary)
		r.Post("/api/library/{bookID}/status", s.handleSetStatus)
		r.Post("/api/library/{bookID}/progress", s.handleUpdateProgress)
		r.Post("/api/library/{bookID}/rating", s.handleRateBook)
		r.Get("/api/summary", s.handleGetSummary)
	})

	return r
}
