// Package favorites maintains the persisted set of favorited listings
// behind the key-value collaborator. Every operation is one atomic
// read-modify-write; a store-level mutex serializes concurrent callers
// so duplicate checks and id assignment never race.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"homescape/server/internal/models"
	"homescape/server/internal/storage"
)

// StorageKey is the namespaced key all favorites live under.
const StorageKey = "homescape_favorites"

// ErrNotFound is returned when no favorite exists for a property id.
var ErrNotFound = errors.New("favorites: not found")

// Store is the favorites CRUD surface consumed by the API layer.
type Store struct {
	kv     storage.KV
	logger *logrus.Logger

	mu          sync.Mutex
	subMu       sync.RWMutex
	subscribers []func()
}

// NewStore creates a favorites store over the given key-value backend.
func NewStore(kv storage.KV, logger *logrus.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logger,
	}
}

// Subscribe registers fn to be called after every successful mutation.
// Subscribers re-fetch rather than receiving the new state, so a stale
// callback can never deliver stale data. Callbacks run after the store
// lock is released and may call back into the store.
func (s *Store) Subscribe(fn func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	s.subMu.RLock()
	subscribers := s.subscribers
	s.subMu.RUnlock()

	for _, fn := range subscribers {
		fn()
	}
}

// GetAll returns a copy of all stored favorites.
func (s *Store) GetAll(ctx context.Context) ([]models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// GetByPropertyID returns the favorite referencing propertyID, or
// ErrNotFound.
func (s *Store) GetByPropertyID(ctx context.Context, propertyID int64) (models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.load(ctx)
	if err != nil {
		return models.Favorite{}, err
	}
	for _, f := range favorites {
		if f.PropertyID == propertyID {
			return f, nil
		}
	}
	return models.Favorite{}, ErrNotFound
}

// Create saves a favorite for fav.PropertyID. If one already exists it
// is returned unchanged; Create never produces duplicates. New records
// get id max+1, or 1 for an empty store.
func (s *Store) Create(ctx context.Context, fav models.Favorite) (models.Favorite, error) {
	fav, created, err := s.createLocked(ctx, fav)
	if err != nil {
		return models.Favorite{}, err
	}
	if !created {
		return fav, nil
	}

	s.logger.WithField("property_id", fav.PropertyID).Debug("Favorite created")
	s.notify()
	return fav, nil
}

// createLocked performs the read-modify-write under the store lock so
// notify can run after the lock is released.
func (s *Store) createLocked(ctx context.Context, fav models.Favorite) (models.Favorite, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.load(ctx)
	if err != nil {
		return models.Favorite{}, false, err
	}

	for _, existing := range favorites {
		if existing.PropertyID == fav.PropertyID {
			return existing, false, nil
		}
	}

	var maxID int64
	for _, existing := range favorites {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	fav.ID = maxID + 1
	if fav.SavedDate.IsZero() {
		fav.SavedDate = time.Now().UTC()
	}

	favorites = append(favorites, fav)
	if err := s.save(ctx, favorites); err != nil {
		return models.Favorite{}, false, err
	}
	return fav, true, nil
}

// Delete removes any favorite referencing propertyID. Deleting a
// property that was never favorited succeeds without rewriting the
// store or notifying subscribers.
func (s *Store) Delete(ctx context.Context, propertyID int64) (bool, error) {
	removed, err := s.deleteLocked(ctx, propertyID)
	if err != nil {
		return false, err
	}
	if removed {
		s.notify()
	}
	return true, nil
}

func (s *Store) deleteLocked(ctx context.Context, propertyID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	remaining := favorites[:0]
	for _, f := range favorites {
		if f.PropertyID != propertyID {
			remaining = append(remaining, f)
		}
	}
	if len(remaining) == len(favorites) {
		return false, nil
	}

	if err := s.save(ctx, remaining); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes all favorites.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	err := s.kv.Remove(ctx, StorageKey)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	s.notify()
	return nil
}

// Count returns the number of stored favorites. The header badge in
// the client re-derives this after every mutation notification.
func (s *Store) Count(ctx context.Context) (int, error) {
	favorites, err := s.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(favorites), nil
}

func (s *Store) load(ctx context.Context) ([]models.Favorite, error) {
	data, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []models.Favorite{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	var favorites []models.Favorite
	if err := json.Unmarshal(data, &favorites); err != nil {
		return nil, fmt.Errorf("failed to parse favorites: %w", err)
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	return favorites, nil
}

func (s *Store) save(ctx context.Context, favorites []models.Favorite) error {
	data, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}
