package scroll

import (
	"sync"
	"testing"
	"time"

	"github.com/daksh-app/daksh/backend/pkg/kvstore"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViewport struct {
	mu   sync.Mutex
	sets []float64
}

func (v *fakeViewport) SetScrollTop(offset float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sets = append(v.sets, offset)
}

func (v *fakeViewport) calls() []float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]float64(nil), v.sets...)
}

func storedOffset(t *testing.T, store kvstore.Store) float64 {
	t.Helper()
	var got float64
	require.NoError(t, kvstore.GetJSON(store, DefaultKey, &got))
	return got
}

func TestRestorer_RestoresStoredOffsetOnce(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, kvstore.SetJSON(store, DefaultKey, 842))
	clock := clockwork.NewFakeClock()
	vp := &fakeViewport{}
	var changes []float64
	r := New(vp, store, Options{Clock: clock, OnChange: func(o float64) { changes = append(changes, o) }})

	r.Mount(3)
	// A scroll event before the restore (the browser reporting 0) must not
	// overwrite the saved position.
	r.OnScroll(0)
	assert.Equal(t, float64(842), storedOffset(t, store))
	assert.Empty(t, changes)

	clock.Advance(DefaultRestoreDelay)
	require.Eventually(t, func() bool { return len(vp.calls()) == 1 }, time.Second, 5*time.Millisecond)
	require.True(t, r.Restored())
	assert.Equal(t, []float64{842}, vp.calls())

	// Re-mounting after new renders does not snap back.
	r.Mount(5)
	clock.Advance(DefaultRestoreDelay)
	assert.Equal(t, []float64{842}, vp.calls())

	r.OnScroll(900)
	assert.Equal(t, float64(900), storedOffset(t, store))
	assert.Equal(t, []float64{900}, changes)
}

func TestRestorer_SkipsWhenNoPosts(t *testing.T) {
	store := kvstore.NewMemory()
	clock := clockwork.NewFakeClock()
	vp := &fakeViewport{}
	r := New(vp, store, Options{Clock: clock})

	r.Mount(0)
	clock.Advance(time.Second)

	assert.False(t, r.Restored())
	assert.Empty(t, vp.calls())
}

func TestRestorer_UsesFallback(t *testing.T) {
	store := kvstore.NewMemory()
	clock := clockwork.NewFakeClock()
	vp := &fakeViewport{}
	r := New(vp, store, Options{Clock: clock, Fallback: 120, Key: "other_key"})

	r.Mount(1)
	clock.Advance(DefaultRestoreDelay)
	require.Eventually(t, func() bool { return len(vp.calls()) == 1 }, time.Second, 5*time.Millisecond)
	require.True(t, r.Restored())
	assert.Equal(t, []float64{120}, vp.calls())
}

func TestRestorer_UnmountCancelsRestore(t *testing.T) {
	clock := clockwork.NewFakeClock()
	vp := &fakeViewport{}
	r := New(vp, kvstore.NewMemory(), Options{Clock: clock})

	r.Mount(2)
	r.Unmount()
	clock.Advance(time.Second)

	assert.False(t, r.Restored())
	assert.Empty(t, vp.calls())
}
