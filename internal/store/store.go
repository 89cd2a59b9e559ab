package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/barcart/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketFavorites = []byte("favorites")
)

const favoritesKey = "list"

// FavoritesStore implements domain.FavoritesStore using BoltDB.
// With no directory it keeps favorites in memory only.
type FavoritesStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of every key written or read
	cache map[string][]byte
}

// NewFavoritesStore opens the favorites database for a catalog under baseDir.
// Favorites of different catalogs live in different files.
func NewFavoritesStore(baseDir, catalogURL string) (*FavoritesStore, error) {
	if baseDir == "" {
		// Memory-only mode (no persistence)
		return &FavoritesStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseDir
	if catalogURL != "" {
		dir = filepath.Join(baseDir, hashCatalogURL(catalogURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "favorites.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFavorites)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &FavoritesStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashCatalogURL(catalogURL string) string {
	normalized := strings.TrimRight(strings.ToLower(catalogURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// Persistent reports whether favorites survive Close
func (s *FavoritesStore) Persistent() bool {
	return s.db != nil
}

func (s *FavoritesStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *FavoritesStore) get(bucket []byte, key string, dest interface{}) (bool, error) {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return true, json.Unmarshal(data, dest)
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil || data == nil {
		return false, err
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return true, json.Unmarshal(data, dest)
}

func (s *FavoritesStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Favorites ===

// Load returns the saved favorites in insertion order
func (s *FavoritesStore) Load() ([]domain.CocktailID, error) {
	var ids []domain.CocktailID
	if _, err := s.get(bucketFavorites, favoritesKey, &ids); err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}
	return ids, nil
}

// Save replaces the saved favorites
func (s *FavoritesStore) Save(ids []domain.CocktailID) error {
	if ids == nil {
		ids = []domain.CocktailID{}
	}
	if err := s.set(bucketFavorites, favoritesKey, ids); err != nil {
		return fmt.Errorf("failed to write favorites: %w", err)
	}
	return nil
}
