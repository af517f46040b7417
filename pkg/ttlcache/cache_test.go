package ttlcache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func counter(calls *int32, value string) func() (string, error) {
	return func() (string, error) {
		atomic.AddInt32(calls, 1)
		return value, nil
	}
}

func TestGetOrComputeTTLBoundary(t *testing.T) {
	clock := newFakeClock()
	c := New[string, string](10*time.Minute, WithClock(clock.Now))

	var calls int32
	v, err := c.GetOrCompute("k", counter(&calls, "first"))
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	clock.Advance(10*time.Minute - time.Millisecond)
	v, err = c.GetOrCompute("k", counter(&calls, "second"))
	require.NoError(t, err)
	assert.Equal(t, "first", v)
	assert.EqualValues(t, 1, calls)

	clock.Advance(2 * time.Millisecond)
	v, err = c.GetOrCompute("k", counter(&calls, "second"))
	require.NoError(t, err)
	assert.Equal(t, "second", v)
	assert.EqualValues(t, 2, calls)
}

func TestGetEvictsExpired(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](time.Second, WithClock(clock.Now))

	c.Put("a", 1)
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	clock.Advance(time.Second + time.Millisecond)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestComputeErrorIsNotStored(t *testing.T) {
	c := New[string, int](time.Minute)
	boom := errors.New("boom")

	_, err := c.GetOrCompute("k", func() (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrCompute("k", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestOverflowClearsEverything(t *testing.T) {
	c := New[string, int](time.Minute, WithMaxEntries(2))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	assert.Equal(t, 3, c.Len())

	c.Put("d", 4)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	v, ok := c.Get("d")
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestPutReplaces(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](time.Minute, WithClock(clock.Now))

	c.Put("a", 1)
	clock.Advance(50 * time.Second)
	c.Put("a", 2)
	clock.Advance(50 * time.Second)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestInvalidateAndClear(t *testing.T) {
	c := New[string, int](time.Minute)
	c.Put("a", 1)
	c.Put("b", 2)

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](time.Minute, WithMaxEntries(16))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := (g*200 + i) % 32
				v, err := c.GetOrCompute(key, func() (int, error) { return key * 2, nil })
				assert.NoError(t, err)
				assert.Equal(t, key*2, v)
				if i%17 == 0 {
					c.Invalidate(key)
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestCoalescingSharesOneCompute(t *testing.T) {
	c := New[string, string](time.Minute, WithCoalescing())

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	compute := func() (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrCompute("k", compute)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	<-started
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, "v", v)
	}
}
