package store_test

import (
	"errors"
	"testing"

	"github.com/ademenev/booktrack/internal/models"
	"github.com/ademenev/booktrack/internal/store"
	"github.com/ademenev/booktrack/internal/testutil"
)

func TestLibraryStore_Entries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	userID := testutil.CreateUser(t, db, "tg:100")
	bookID := testutil.CreateBook(t, db, "Crime and Punishment", "Fyodor Dostoevsky", 672)

	t.Run("Insert And Get", func(t *testing.T) {
		if err := s.InsertEntry(userID, bookID, models.StatusPlanned); err != nil {
			t.Fatalf("InsertEntry failed: %v", err)
		}

		entry, err := s.GetEntry(userID, bookID)
		if err != nil {
			t.Fatalf("GetEntry failed: %v", err)
		}
		if entry.Status != models.StatusPlanned || entry.CurrentPage != 0 {
			t.Errorf("Unexpected fresh entry: %+v", entry)
		}
		if entry.Title != "Crime and Punishment" || entry.TotalPages != 672 {
			t.Errorf("Catalog join missing on entry: %+v", entry)
		}
		if entry.Rating != nil {
			t.Errorf("Expected nil rating on a fresh entry, got %d", *entry.Rating)
		}
	})

	t.Run("Duplicate Insert Fails", func(t *testing.T) {
		err := s.InsertEntry(userID, bookID, models.StatusReading)
		if !errors.Is(err, store.ErrEntryExists) {
			t.Fatalf("Expected ErrEntryExists, got %v", err)
		}

		var count int
		db.QueryRow("SELECT COUNT(*) FROM library_entries WHERE user_id = ? AND book_id = ?", userID, bookID).Scan(&count)
		if count != 1 {
			t.Errorf("Expected exactly one entry, got %d", count)
		}
	})

	t.Run("HasEntry", func(t *testing.T) {
		has, err := s.HasEntry(userID, bookID)
		if err != nil || !has {
			t.Errorf("Expected HasEntry true, got %v (%v)", has, err)
		}
		has, err = s.HasEntry(userID, bookID+100)
		if err != nil || has {
			t.Errorf("Expected HasEntry false, got %v (%v)", has, err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		deleted, err := s.DeleteEntry(userID, bookID)
		if err != nil || !deleted {
			t.Fatalf("Expected delete to succeed, got %v (%v)", deleted, err)
		}
		deleted, err = s.DeleteEntry(userID, bookID)
		if err != nil || deleted {
			t.Errorf("Expected second delete to report false, got %v (%v)", deleted, err)
		}
	})
}

func TestLibraryStore_ListEntries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	userID := testutil.CreateUser(t, db, "tg:200")
	first := testutil.CreateBook(t, db, "Book One", "Author A", 100)
	second := testutil.CreateBook(t, db, "Book Two", "Author B", 200)
	third := testutil.CreateBook(t, db, "Book Three", "Author C", 300)

	s.InsertEntry(userID, second, models.StatusReading)
	s.InsertEntry(userID, first, models.StatusPlanned)
	s.InsertEntry(userID, third, models.StatusReading)

	t.Run("Insertion Order", func(t *testing.T) {
		entries, err := s.ListEntries(userID, "")
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("Expected 3 entries, got %d", len(entries))
		}
		got := []int64{entries[0].BookID, entries[1].BookID, entries[2].BookID}
		want := []int64{second, first, third}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("Entries out of insertion order: got %v, want %v", got, want)
			}
		}
	})

	t.Run("Status Filter", func(t *testing.T) {
		entries, err := s.ListEntries(userID, models.StatusReading)
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("Expected 2 reading entries, got %d", len(entries))
		}
		for _, entry := range entries {
			if entry.Status != models.StatusReading {
				t.Errorf("Filter leaked entry with status %q", entry.Status)
			}
		}
	})

	t.Run("Other User Sees Nothing", func(t *testing.T) {
		otherID := testutil.CreateUser(t, db, "tg:201")
		entries, err := s.ListEntries(otherID, "")
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("Expected no entries for another user, got %d", len(entries))
		}
	})
}

func TestLibraryStore_Updates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	userID := testutil.CreateUser(t, db, "tg:300")
	bookID := testutil.CreateBook(t, db, "Anna Karenina", "Leo Tolstoy", 864)
	s.InsertEntry(userID, bookID, models.StatusPlanned)

	t.Run("UpdateEntryStatus", func(t *testing.T) {
		if err := s.UpdateEntryStatus(userID, bookID, models.StatusReading, 50); err != nil {
			t.Fatalf("UpdateEntryStatus failed: %v", err)
		}
		entry, _ := s.GetEntry(userID, bookID)
		if entry.Status != models.StatusReading || entry.CurrentPage != 50 {
			t.Errorf("Status update not applied: %+v", entry)
		}
	})

	t.Run("UpdateEntryProgress Without Completion", func(t *testing.T) {
		if err := s.UpdateEntryProgress(userID, bookID, 432, false); err != nil {
			t.Fatalf("UpdateEntryProgress failed: %v", err)
		}
		entry, _ := s.GetEntry(userID, bookID)
		if entry.CurrentPage != 432 || entry.Status != models.StatusReading {
			t.Errorf("Progress update not applied: %+v", entry)
		}
	})

	t.Run("UpdateEntryProgress With Completion", func(t *testing.T) {
		if err := s.UpdateEntryProgress(userID, bookID, 864, true); err != nil {
			t.Fatalf("UpdateEntryProgress failed: %v", err)
		}
		entry, _ := s.GetEntry(userID, bookID)
		if entry.CurrentPage != 864 || entry.Status != models.StatusCompleted {
			t.Errorf("Page and status must change together: %+v", entry)
		}
	})

	t.Run("UpdateEntryRating", func(t *testing.T) {
		if err := s.UpdateEntryRating(userID, bookID, 5); err != nil {
			t.Fatalf("UpdateEntryRating failed: %v", err)
		}
		entry, _ := s.GetEntry(userID, bookID)
		if entry.Rating == nil || *entry.Rating != 5 {
			t.Errorf("Rating not stored: %+v", entry.Rating)
		}

		// Last write wins.
		s.UpdateEntryRating(userID, bookID, 3)
		entry, _ = s.GetEntry(userID, bookID)
		if entry.Rating == nil || *entry.Rating != 3 {
			t.Errorf("Rating not overwritten: %+v", entry.Rating)
		}
	})

	t.Run("Updates On Missing Entry", func(t *testing.T) {
		missing := bookID + 100
		if err := s.UpdateEntryStatus(userID, missing, models.StatusReading, 0); !errors.Is(err, store.ErrEntryNotFound) {
			t.Errorf("UpdateEntryStatus: expected ErrEntryNotFound, got %v", err)
		}
		if err := s.UpdateEntryProgress(userID, missing, 10, false); !errors.Is(err, store.ErrEntryNotFound) {
			t.Errorf("UpdateEntryProgress: expected ErrEntryNotFound, got %v", err)
		}
		if err := s.UpdateEntryRating(userID, missing, 4); !errors.Is(err, store.ErrEntryNotFound) {
			t.Errorf("UpdateEntryRating: expected ErrEntryNotFound, got %v", err)
		}
	})
}
