package main

import (
	"context"
	"embed"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ademenev/booktrack/internal/api"
	"github.com/ademenev/booktrack/internal/core"
	"github.com/ademenev/booktrack/internal/importer"
	"github.com/ademenev/booktrack/internal/jobs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize the core application components
	app, err := core.New(migrationsFS)
	if err != nil {
		log.Fatalf("Fatal error during application setup: %v", err)
	}
	defer app.Close()

	// Register background jobs and run an initial catalog import.
	app.JobManager().Register(importer.JobID, importer.CatalogImport)
	if err := app.JobManager().RunJob(importer.JobID, app); err != nil {
		log.Printf("Warning: initial catalog import could not start: %v", err)
	}

	// Start the scheduled import sweep.
	jobs.StartJobs(app)

	// Watch the import directory so dropped seed files are picked up
	// without waiting for the next scheduled run.
	watcher := importer.NewWatcherService(app)
	if err := watcher.Start(); err != nil {
		log.Printf("Warning: import directory watcher failed to start: %v", err)
	} else {
		defer watcher.Stop()
	}

	// Setup the API server
	server := api.NewServer(app)
	addr := fmt.Sprintf(":%d", app.Config().Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	// --- Graceful Shutdown ---
	// Start the server in a goroutine so it doesn't block.
	go func() {
		log.Printf("Starting web server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %v", err)
		}
	}()

	// Wait for an interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a context with a timeout to allow existing connections to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
