// Catalog seed importer. Seed files are JSON documents dropped into the
// import directory, each holding one book or an array of books. Importing is
// idempotent: duplicates resolve to the existing catalog row and are skipped.

package importer

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ademenev/booktrack/internal/jobs"
	"github.com/ademenev/booktrack/internal/models"
	"github.com/ademenev/booktrack/internal/store"
)

const JobID = "catalog-import"

// SeedBook is the shape of one book in a seed file.
type SeedBook struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	TotalPages  int    `json:"total_pages"`
}

// CatalogImport walks the import directory and feeds every seed book through
// the catalog's duplicate-safe insert. It is registered with the job manager
// and also triggered by the directory watcher.
func CatalogImport(ctx jobs.JobContext) {
	st := store.New(ctx.DB())
	root := ctx.Config().Import.Path

	sendProgress(ctx, "Scanning import directory...", 0, false)

	var seedFiles []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			seedFiles = append(seedFiles, path)
		}
		return nil
	})
	if err != nil {
		log.Printf("Catalog import: failed to walk %s: %v", root, err)
		sendProgress(ctx, fmt.Sprintf("Import failed: %v", err), 100, true)
		return
	}

	var created, skipped, failed int
	for i, path := range seedFiles {
		books, err := readSeedFile(path)
		if err != nil {
			log.Printf("Catalog import: skipping %s: %v", path, err)
			failed++
			continue
		}
		for _, seed := range books {
			wasCreated, _, err := st.AddBookIfAbsent(seed.Title, seed.Author, seed.TotalPages, seed.Genre, seed.Description)
			if err != nil {
				log.Printf("Catalog import: could not add %q by %q: %v", seed.Title, seed.Author, err)
				failed++
				continue
			}
			if wasCreated {
				created++
			} else {
				skipped++
			}
		}
		progress := float64(i+1) / float64(len(seedFiles)) * 100
		sendProgress(ctx, fmt.Sprintf("Imported %s", filepath.Base(path)), progress, false)
	}

	summary := fmt.Sprintf("Catalog import finished: %d created, %d duplicates skipped, %d failed", created, skipped, failed)
	log.Println(summary)
	sendProgress(ctx, summary, 100, true)
}

// readSeedFile accepts either a single JSON object or a JSON array of books.
func readSeedFile(path string) ([]SeedBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var books []SeedBook
		if err := json.Unmarshal(data, &books); err != nil {
			return nil, fmt.Errorf("invalid seed file: %w", err)
		}
		return books, nil
	}

	var book SeedBook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return []SeedBook{book}, nil
}

// sendProgress broadcasts an import progress update to connected clients.
func sendProgress(ctx jobs.JobContext, message string, progress float64, done bool) {
	hub := ctx.WsHub()
	if hub == nil {
		return
	}
	hub.BroadcastJSON(models.ProgressUpdate{
		JobID:    JobID,
		Message:  message,
		Progress: progress,
		Done:     done,
	})
}
