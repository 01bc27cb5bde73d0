package prefs

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/desertthunder/damx/internal/shared"
)

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestStore(t *testing.T) {
	t.Run("NewStore on empty database", func(t *testing.T) {
		db := openTestDB(t, ":memory:")
		store, err := NewStore(db)
		if err != nil {
			t.Fatalf("NewStore failed: %v", err)
		}
		if len(store.Favorites()) != 0 {
			t.Error("expected empty favorites")
		}
		if len(store.Downloads()) != 0 {
			t.Error("expected empty downloads")
		}
	})

	t.Run("ToggleFavorite", func(t *testing.T) {
		db := openTestDB(t, ":memory:")
		store, err := NewStore(db)
		if err != nil {
			t.Fatalf("NewStore failed: %v", err)
		}

		t.Run("absent id becomes favorite", func(t *testing.T) {
			favorite, err := store.ToggleFavorite("a")
			if err != nil {
				t.Fatalf("toggle failed: %v", err)
			}
			if !favorite {
				t.Error("expected membership after first toggle")
			}
			if !store.IsFavorite("a") {
				t.Error("expected IsFavorite to report membership")
			}
		})

		t.Run("second toggle removes it", func(t *testing.T) {
			favorite, err := store.ToggleFavorite("a")
			if err != nil {
				t.Fatalf("toggle failed: %v", err)
			}
			if favorite {
				t.Error("expected removal after second toggle")
			}
			if store.IsFavorite("a") {
				t.Error("expected IsFavorite to report absence")
			}
		})

		t.Run("toggle writes through to the database", func(t *testing.T) {
			if _, err := store.ToggleFavorite("b"); err != nil {
				t.Fatalf("toggle failed: %v", err)
			}
			var count int
			if err := db.QueryRow("SELECT COUNT(*) FROM favorites WHERE item_id = 'b'").Scan(&count); err != nil {
				t.Fatalf("query failed: %v", err)
			}
			if count != 1 {
				t.Errorf("expected 1 row for b, got %d", count)
			}
		})
	})

	t.Run("RecordDownload", func(t *testing.T) {
		db := openTestDB(t, ":memory:")
		store, err := NewStore(db)
		if err != nil {
			t.Fatalf("NewStore failed: %v", err)
		}

		t.Run("records a new id", func(t *testing.T) {
			if err := store.RecordDownload("x"); err != nil {
				t.Fatalf("record failed: %v", err)
			}
			if !store.Downloads().Has("x") {
				t.Error("expected x in downloads")
			}
		})

		t.Run("recording again is a no-op", func(t *testing.T) {
			if err := store.RecordDownload("x"); err != nil {
				t.Fatalf("repeat record failed: %v", err)
			}
			var count int
			if err := db.QueryRow("SELECT COUNT(*) FROM downloads").Scan(&count); err != nil {
				t.Fatalf("query failed: %v", err)
			}
			if count != 1 {
				t.Errorf("expected 1 row, got %d", count)
			}
		})

		t.Run("download does not affect favorites", func(t *testing.T) {
			if store.IsFavorite("x") {
				t.Error("downloads must not leak into favorites")
			}
		})
	})

	t.Run("snapshots are copies", func(t *testing.T) {
		db := openTestDB(t, ":memory:")
		store, err := NewStore(db)
		if err != nil {
			t.Fatalf("NewStore failed: %v", err)
		}
		if _, err := store.ToggleFavorite("a"); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}

		snapshot := store.Favorites()
		snapshot.Remove("a")
		if !store.IsFavorite("a") {
			t.Error("mutating a snapshot must not affect the store")
		}
	})

	t.Run("state survives reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prefs.db")

		db := openTestDB(t, path)
		store, err := NewStore(db)
		if err != nil {
			t.Fatalf("NewStore failed: %v", err)
		}
		if _, err := store.ToggleFavorite("fav"); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
		if err := store.RecordDownload("dl"); err != nil {
			t.Fatalf("record failed: %v", err)
		}
		db.Close()

		reopened := openTestDB(t, path)
		restored, err := NewStore(reopened)
		if err != nil {
			t.Fatalf("NewStore on reopen failed: %v", err)
		}
		if !restored.IsFavorite("fav") {
			t.Error("expected favorite to survive reopen")
		}
		if !restored.Downloads().Has("dl") {
			t.Error("expected download to survive reopen")
		}
	})
}
