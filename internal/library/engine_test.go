package library_test

import (
	"errors"
	"testing"

	"github.com/ademenev/booktrack/internal/library"
	"github.com/ademenev/booktrack/internal/models"
	"github.com/ademenev/booktrack/internal/store"
	"github.com/ademenev/booktrack/internal/testutil"
)

func setupEngine(t *testing.T, cfg library.Config) (*library.Engine, *store.Store, int64, int64) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	st := store.New(db)
	userID := testutil.CreateUser(t, db, "tg:7")
	bookID := testutil.CreateBook(t, db, "Crime and Punishment", "Fyodor Dostoevsky", 672)
	return library.New(st, cfg), st, userID, bookID
}

func TestEngine_AddToLibrary(t *testing.T) {
	engine, st, userID, bookID := setupEngine(t, library.Config{})

	t.Run("Defaults To Planned", func(t *testing.T) {
		if err := engine.AddToLibrary(userID, bookID, ""); err != nil {
			t.Fatalf("AddToLibrary failed: %v", err)
		}
		entry, err := st.GetEntry(userID, bookID)
		if err != nil {
			t.Fatalf("GetEntry failed: %v", err)
		}
		if entry.Status != models.StatusPlanned {
			t.Errorf("Expected planned status, got %q", entry.Status)
		}
	})

	t.Run("Second Add Fails And Leaves One Entry", func(t *testing.T) {
		err := engine.AddToLibrary(userID, bookID, "")
		if !errors.Is(err, store.ErrEntryExists) {
			t.Fatalf("Expected ErrEntryExists, got %v", err)
		}
		entries, _ := engine.GetEntries(userID, "")
		if len(entries) != 1 {
			t.Errorf("Expected exactly one entry, got %d", len(entries))
		}
	})

	t.Run("Unknown Book", func(t *testing.T) {
		err := engine.AddToLibrary(userID, bookID+500, "")
		if !errors.Is(err, store.ErrBookNotFound) {
			t.Fatalf("Expected ErrBookNotFound, got %v", err)
		}
	})

	t.Run("Unknown Initial Status", func(t *testing.T) {
		err := engine.AddToLibrary(userID, bookID, "finished")
		if !errors.Is(err, library.ErrInvalidStatus) {
			t.Fatalf("Expected ErrInvalidStatus, got %v", err)
		}
	})
}

func TestEngine_RemoveFromLibrary(t *testing.T) {
	engine, _, userID, bookID := setupEngine(t, library.Config{})

	if err := engine.RemoveFromLibrary(userID, bookID); !errors.Is(err, store.ErrEntryNotFound) {
		t.Fatalf("Expected ErrEntryNotFound for absent entry, got %v", err)
	}

	engine.AddToLibrary(userID, bookID, "")
	if err := engine.RemoveFromLibrary(userID, bookID); err != nil {
		t.Fatalf("RemoveFromLibrary failed: %v", err)
	}
	has, _ := engine.HasEntry(userID, bookID)
	if has {
		t.Error("Entry still present after removal")
	}
}

func TestEngine_UpdateProgress(t *testing.T) {
	engine, st, userID, bookID := setupEngine(t, library.Config{})
	engine.AddToLibrary(userID, bookID, models.StatusReading)

	t.Run("Routine Update", func(t *testing.T) {
		result, err := engine.UpdateProgress(userID, bookID, 336)
		if err != nil {
			t.Fatalf("UpdateProgress failed: %v", err)
		}
		if result.Percent != 50.0 || result.Completed {
			t.Errorf("Unexpected result: %+v", result)
		}
	})

	t.Run("Page Beyond Total Is Rejected Without Mutation", func(t *testing.T) {
		_, err := engine.UpdateProgress(userID, bookID, 1000)
		if !errors.Is(err, library.ErrPageOutOfRange) {
			t.Fatalf("Expected ErrPageOutOfRange, got %v", err)
		}
		entry, _ := st.GetEntry(userID, bookID)
		if entry.CurrentPage != 336 || entry.Status != models.StatusReading {
			t.Errorf("Entry mutated by a rejected update: %+v", entry)
		}
	})

	t.Run("Negative Page Is Rejected", func(t *testing.T) {
		_, err := engine.UpdateProgress(userID, bookID, -1)
		if !errors.Is(err, library.ErrPageOutOfRange) {
			t.Fatalf("Expected ErrPageOutOfRange, got %v", err)
		}
	})

	t.Run("Reaching Last Page Completes The Book", func(t *testing.T) {
		result, err := engine.UpdateProgress(userID, bookID, 672)
		if err != nil {
			t.Fatalf("UpdateProgress failed: %v", err)
		}
		if result.Percent != 100.0 || !result.Completed {
			t.Errorf("Expected a completing update, got %+v", result)
		}
		entry, _ := st.GetEntry(userID, bookID)
		if entry.Status != models.StatusCompleted {
			t.Errorf("Expected completed status, got %q", entry.Status)
		}
	})

	t.Run("Repeat At Last Page Does Not Re-Celebrate", func(t *testing.T) {
		result, err := engine.UpdateProgress(userID, bookID, 672)
		if err != nil {
			t.Fatalf("UpdateProgress failed: %v", err)
		}
		if result.Completed {
			t.Error("Completion reported again for an already completed entry")
		}
	})

	t.Run("Missing Entry", func(t *testing.T) {
		_, err := engine.UpdateProgress(userID, bookID+500, 10)
		if !errors.Is(err, store.ErrEntryNotFound) {
			t.Fatalf("Expected ErrEntryNotFound, got %v", err)
		}
	})
}

func TestEngine_Rate(t *testing.T) {
	engine, st, userID, bookID := setupEngine(t, library.Config{})
	engine.AddToLibrary(userID, bookID, "")

	t.Run("Valid Rating", func(t *testing.T) {
		if err := engine.Rate(userID, bookID, 5); err != nil {
			t.Fatalf("Rate failed: %v", err)
		}
		entry, _ := st.GetEntry(userID, bookID)
		if entry.Rating == nil || *entry.Rating != 5 {
			t.Errorf("Rating not stored: %+v", entry.Rating)
		}
	})

	t.Run("Out Of Range Leaves Prior Rating", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1, 100} {
			if err := engine.Rate(userID, bookID, rating); !errors.Is(err, library.ErrInvalidRating) {
				t.Errorf("Expected ErrInvalidRating for %d, got %v", rating, err)
			}
		}
		entry, _ := st.GetEntry(userID, bookID)
		if entry.Rating == nil || *entry.Rating != 5 {
			t.Errorf("Prior rating changed by rejected update: %+v", entry.Rating)
		}
	})

	t.Run("Rating Allowed Regardless Of Status", func(t *testing.T) {
		// The entry is still planned; rating must succeed anyway.
		entry, _ := st.GetEntry(userID, bookID)
		if entry.Status != models.StatusPlanned {
			t.Fatalf("Precondition failed, status is %q", entry.Status)
		}
		if err := engine.Rate(userID, bookID, 3); err != nil {
			t.Fatalf("Rate failed for a planned entry: %v", err)
		}
	})
}

func TestEngine_SetStatus(t *testing.T) {
	t.Run("Permissive Mode Allows Any Jump", func(t *testing.T) {
		engine, st, userID, bookID := setupEngine(t, library.Config{})
		engine.AddToLibrary(userID, bookID, "")

		if err := engine.SetStatus(userID, bookID, models.StatusCompleted, 0); err != nil {
			t.Fatalf("SetStatus failed: %v", err)
		}
		if err := engine.SetStatus(userID, bookID, models.StatusPlanned, 0); err != nil {
			t.Fatalf("Backward jump rejected in permissive mode: %v", err)
		}
		entry, _ := st.GetEntry(userID, bookID)
		if entry.Status != models.StatusPlanned {
			t.Errorf("Expected planned, got %q", entry.Status)
		}
	})

	t.Run("Page Beyond Total Is Rejected Without Mutation", func(t *testing.T) {
		engine, st, userID, bookID := setupEngine(t, library.Config{})
		engine.AddToLibrary(userID, bookID, "")

		err := engine.SetStatus(userID, bookID, models.StatusReading, 10000)
		if !errors.Is(err, library.ErrPageOutOfRange) {
			t.Fatalf("Expected ErrPageOutOfRange, got %v", err)
		}
		entry, _ := st.GetEntry(userID, bookID)
		if entry.Status != models.StatusPlanned || entry.CurrentPage != 0 {
			t.Errorf("Entry mutated by a rejected status update: %+v", entry)
		}
	})

	t.Run("Page At Total Is Accepted", func(t *testing.T) {
		engine, st, userID, bookID := setupEngine(t, library.Config{})
		engine.AddToLibrary(userID, bookID, "")

		if err := engine.SetStatus(userID, bookID, models.StatusCompleted, 672); err != nil {
			t.Fatalf("SetStatus failed at the last page: %v", err)
		}
		entry, _ := st.GetEntry(userID, bookID)
		if entry.CurrentPage != 672 || entry.ProgressPercent() != 100.0 {
			t.Errorf("Unexpected entry after status update: %+v", entry)
		}
	})

	t.Run("Unknown Status Always Rejected", func(t *testing.T) {
		engine, _, userID, bookID := setupEngine(t, library.Config{})
		engine.AddToLibrary(userID, bookID, "")

		if err := engine.SetStatus(userID, bookID, "on-hold", 0); !errors.Is(err, library.ErrInvalidStatus) {
			t.Fatalf("Expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("Strict Mode Guards Terminal States", func(t *testing.T) {
		engine, st, userID, bookID := setupEngine(t, library.Config{StrictTransitions: true})
		engine.AddToLibrary(userID, bookID, "")

		// planned -> completed skips reading; skipping forward is permitted.
		if err := engine.SetStatus(userID, bookID, models.StatusCompleted, 0); err != nil {
			t.Fatalf("Forward skip rejected: %v", err)
		}

		// completed -> planned is not a recognized way out of a terminal state.
		err := engine.SetStatus(userID, bookID, models.StatusPlanned, 0)
		if !errors.Is(err, library.ErrIllegalTransition) {
			t.Fatalf("Expected ErrIllegalTransition, got %v", err)
		}

		// completed -> reading is a fresh attempt.
		if err := engine.SetStatus(userID, bookID, models.StatusReading, 0); err != nil {
			t.Fatalf("Fresh reading attempt rejected: %v", err)
		}
		entry, _ := st.GetEntry(userID, bookID)
		if entry.Status != models.StatusReading {
			t.Errorf("Expected reading, got %q", entry.Status)
		}
	})

	t.Run("Missing Entry", func(t *testing.T) {
		engine, _, userID, bookID := setupEngine(t, library.Config{})
		err := engine.SetStatus(userID, bookID, models.StatusReading, 0)
		if !errors.Is(err, store.ErrEntryNotFound) {
			t.Fatalf("Expected ErrEntryNotFound, got %v", err)
		}
	})
}

func TestEngine_GetEntries(t *testing.T) {
	engine, _, userID, bookID := setupEngine(t, library.Config{})
	engine.AddToLibrary(userID, bookID, "")

	t.Run("Invalid Filter", func(t *testing.T) {
		_, err := engine.GetEntries(userID, "abandoned")
		if !errors.Is(err, library.ErrInvalidStatus) {
			t.Fatalf("Expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("Entries Are Enriched From Catalog", func(t *testing.T) {
		entries, err := engine.GetEntries(userID, "")
		if err != nil {
			t.Fatalf("GetEntries failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(entries))
		}
		entry := entries[0]
		if entry.Title != "Crime and Punishment" || entry.Author != "Fyodor Dostoevsky" || entry.TotalPages != 672 {
			t.Errorf("Entry missing catalog fields: %+v", entry)
		}
	})
}
