package prefs

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/desertthunder/damx/internal/models"
)

// Store is the durable preference store backed by SQLite.
//
// Both sets are read into memory once at open; reads after that never touch
// the database. Mutations write through before updating the in-memory sets,
// so a failed write leaves the observable state unchanged.
type Store struct {
	db *sql.DB

	mu        sync.RWMutex
	favorites Set
	downloads Set
}

// NewStore creates a Store over an open database connection and loads both
// preference sets. The favorites and downloads tables must already exist
// (see shared.RunMigrations).
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{db: db, favorites: NewSet(), downloads: NewSet()}

	favorites, err := loadSet(db, "favorites")
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	downloads, err := loadSet(db, "downloads")
	if err != nil {
		return nil, fmt.Errorf("failed to load downloads: %w", err)
	}

	s.favorites = favorites
	s.downloads = downloads
	return s, nil
}

// loadSet reads every item id from the named table. Rows that fail to scan
// are skipped rather than failing the load.
func loadSet(db *sql.DB, table string) (Set, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT item_id FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	set := NewSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			continue
		}
		set.Add(models.ItemID(id))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}

	return set, nil
}

// Favorites returns a snapshot copy of the favorites set.
func (s *Store) Favorites() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewSet(s.favorites.IDs()...)
}

// Downloads returns a snapshot copy of the downloads set.
func (s *Store) Downloads() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewSet(s.downloads.IDs()...)
}

// IsFavorite reports whether id is currently a favorite.
func (s *Store) IsFavorite(id models.ItemID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.favorites.Has(id)
}

// ToggleFavorite flips membership of id in the favorites set: add if absent,
// remove if present. Returns the resulting membership.
func (s *Store) ToggleFavorite(id models.ItemID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.favorites.Has(id) {
		if _, err := s.db.Exec("DELETE FROM favorites WHERE item_id = ?", string(id)); err != nil {
			return true, fmt.Errorf("failed to remove favorite: %w", err)
		}
		s.favorites.Remove(id)
		return false, nil
	}

	if _, err := s.db.Exec("INSERT INTO favorites (item_id) VALUES (?)", string(id)); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	s.favorites.Add(id)
	return true, nil
}

// RecordDownload marks id as downloaded. Recording an id that is already
// present is a no-op.
func (s *Store) RecordDownload(id models.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.downloads.Has(id) {
		return nil
	}

	if _, err := s.db.Exec("INSERT OR IGNORE INTO downloads (item_id) VALUES (?)", string(id)); err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	s.downloads.Add(id)
	return nil
}
