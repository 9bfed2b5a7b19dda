package storage

import (
	"context"
	"testing"
	"time"

	"webinar-token-service/internal/domain"
	"webinar-token-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIssuer struct{}

func (stubIssuer) CreateMeetingToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResult, error) {
	return &domain.TokenResult{Token: "abc"}, nil
}

// fakeClock is advanced by hand
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore() (*MemoryFormStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryFormStore(service.NewTokenService(stubIssuer{}, "https://discover.daily.co"))
	store.now = clock.Now
	return store, clock
}

func TestMemoryFormStore_CreateGet(t *testing.T) {
	store, _ := newTestStore()

	id, form := store.Create()
	assert.NotEmpty(t, id)
	require.NotNil(t, form)

	got, ok := store.Get(id)
	assert.True(t, ok)
	assert.Same(t, form, got)

	_, ok = store.Get("unknown")
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())

	otherID, _ := store.Create()
	assert.NotEqual(t, id, otherID)
}

func TestMemoryFormStore_SweepIdle(t *testing.T) {
	store, clock := newTestStore()

	staleID, staleForm := store.Create()
	clock.Advance(20 * time.Minute)
	freshID, freshForm := store.Create()
	clock.Advance(15 * time.Minute)

	removed := store.SweepIdle(30 * time.Minute)
	assert.Equal(t, 1, removed)

	_, ok := store.Get(staleID)
	assert.False(t, ok)
	assert.True(t, staleForm.Closed())

	_, ok = store.Get(freshID)
	assert.True(t, ok)
	assert.False(t, freshForm.Closed())
}

func TestMemoryFormStore_GetKeepsFormAlive(t *testing.T) {
	store, clock := newTestStore()

	id, _ := store.Create()
	clock.Advance(25 * time.Minute)
	_, ok := store.Get(id)
	require.True(t, ok)
	clock.Advance(25 * time.Minute)

	assert.Equal(t, 0, store.SweepIdle(30*time.Minute))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryFormStore_DeleteAndCloseAll(t *testing.T) {
	store, _ := newTestStore()

	id, form := store.Create()
	store.Delete(id)
	assert.True(t, form.Closed())
	assert.Equal(t, 0, store.Len())
	store.Delete(id)

	_, a := store.Create()
	_, b := store.Create()
	store.CloseAll()
	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
	assert.Equal(t, 0, store.Len())
}
