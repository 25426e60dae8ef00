package favorites

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"homescape/server/internal/models"
	"homescape/server/internal/storage"
)

// memoryKV is an in-memory stand-in for the persistence collaborator.
type memoryKV struct {
	entries map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{entries: make(map[string][]byte)}
}

func (m *memoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := m.entries[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return value, nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.entries[key] = value
	return nil
}

func (m *memoryKV) Remove(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

// MockKV is a mock implementation of the storage.KV interface.
type MockKV struct {
	mock.Mock
}

func (m *MockKV) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKV) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKV) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newTestStore() *Store {
	return NewStore(newMemoryKV(), logrus.New())
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	first, err := store.Create(ctx, models.Favorite{PropertyID: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.False(t, first.SavedDate.IsZero())

	second, err := store.Create(ctx, models.Favorite{PropertyID: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreateIsIdempotent(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	saved := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	first, err := store.Create(ctx, models.Favorite{PropertyID: 10, SavedDate: saved})
	assert.NoError(t, err)

	// A second create for the same property returns the existing
	// record and does not grow the store.
	second, err := store.Create(ctx, models.Favorite{PropertyID: 10})
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	all, err := store.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateReusesMaxIDAfterDelete(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.Create(ctx, models.Favorite{PropertyID: 10})
	store.Create(ctx, models.Favorite{PropertyID: 20})
	store.Delete(ctx, 10)

	// id follows max existing id, not the historical count.
	third, err := store.Create(ctx, models.Favorite{PropertyID: 30})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), third.ID)
}

func TestGetByPropertyID(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	created, err := store.Create(ctx, models.Favorite{PropertyID: 10})
	assert.NoError(t, err)

	found, err := store.GetByPropertyID(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = store.GetByPropertyID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.Create(ctx, models.Favorite{PropertyID: 10})

	ok, err := store.Delete(ctx, 10)
	assert.NoError(t, err)
	assert.True(t, ok)

	// Deleting an id that is not stored still succeeds and leaves the
	// store unchanged.
	ok, err = store.Delete(ctx, 99)
	assert.NoError(t, err)
	assert.True(t, ok)

	all, err := store.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestClear(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.Create(ctx, models.Favorite{PropertyID: 10})
	store.Create(ctx, models.Favorite{PropertyID: 20})

	assert.NoError(t, store.Clear(ctx))

	all, err := store.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetAllReturnsCopy(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.Create(ctx, models.Favorite{PropertyID: 10})

	all, err := store.GetAll(ctx)
	assert.NoError(t, err)
	all[0].PropertyID = 999

	reloaded, err := store.GetAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), reloaded[0].PropertyID)
}

func TestSubscribersNotifiedAfterMutation(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	var notifications int
	store.Subscribe(func() { notifications++ })

	store.Create(ctx, models.Favorite{PropertyID: 10})
	store.Delete(ctx, 10)
	store.Clear(ctx)
	assert.Equal(t, 3, notifications)

	// Reads never notify.
	store.GetAll(ctx)
	assert.Equal(t, 3, notifications)
}

func TestSubscriberMayRefetchState(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	// The contract is that subscribers re-derive state, so a callback
	// must be able to call back into the store without blocking the
	// mutation that triggered it.
	var seen int
	store.Subscribe(func() {
		count, err := store.Count(ctx)
		assert.NoError(t, err)
		seen = count
	})

	done := make(chan struct{})
	go func() {
		_, err := store.Create(ctx, models.Favorite{PropertyID: 10})
		assert.NoError(t, err)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Create did not return; re-fetching subscriber blocked on the store lock")
	}
	assert.Equal(t, 1, seen)
}

func TestDeleteOnAbsentPropertyDoesNotNotify(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.Create(ctx, models.Favorite{PropertyID: 10})

	var notifications int
	store.Subscribe(func() { notifications++ })

	// Nothing matched, so no mutation is published.
	ok, err := store.Delete(ctx, 99)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, notifications)

	ok, err = store.Delete(ctx, 10)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, notifications)
}

func TestStoreSurfacesBackendFailure(t *testing.T) {
	mockKV := &MockKV{}
	store := NewStore(mockKV, logrus.New())

	backendErr := errors.New("disk gone")
	mockKV.On("Get", mock.Anything, StorageKey).Return(nil, backendErr)

	_, err := store.GetAll(context.Background())
	assert.ErrorIs(t, err, backendErr)
	mockKV.AssertExpectations(t)
}

func TestCountTracksMutations(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	count, err := store.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	store.Create(ctx, models.Favorite{PropertyID: 10})
	store.Create(ctx, models.Favorite{PropertyID: 20})
	store.Create(ctx, models.Favorite{PropertyID: 10})

	count, err = store.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
