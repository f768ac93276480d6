package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New()
	c.Set("owner-1", "tok-1", time.Minute)

	token, ok := c.Get("owner-1")
	require.True(t, ok)
	require.Equal(t, "tok-1", token)

	_, ok = c.Get("owner-2")
	require.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New()
	c.Set("owner", "tok", 30*time.Millisecond)

	require.True(t, c.Has("owner"))

	time.Sleep(60 * time.Millisecond)

	_, ok := c.Get("owner")
	require.False(t, ok, "expired entry must behave as never set")
	require.False(t, c.Has("owner"))
}

func TestOverwrite(t *testing.T) {
	c := New()
	c.Set("owner", "old", time.Minute)
	c.Set("owner", "new", time.Minute)

	token, ok := c.Get("owner")
	require.True(t, ok)
	require.Equal(t, "new", token)
}

func TestNonPositiveTTLRemoves(t *testing.T) {
	c := New()
	c.Set("owner", "tok", time.Minute)
	c.Set("owner", "tok", 0)
	require.False(t, c.Has("owner"))
}

func TestRemove(t *testing.T) {
	c := New()
	c.Set("owner", "tok", time.Minute)

	require.True(t, c.Remove("owner"))
	require.False(t, c.Remove("owner"), "second remove finds nothing")
	require.False(t, c.Has("owner"))
}

func TestTTL(t *testing.T) {
	c := New()
	c.Set("owner", "tok", time.Minute)

	d, ok := c.TTL("owner")
	require.True(t, ok)
	require.Greater(t, d, 50*time.Second)
	require.LessOrEqual(t, d, time.Minute)

	_, ok = c.TTL("missing")
	require.False(t, ok)
}

func TestJanitorEvicts(t *testing.T) {
	c := NewWithJanitor(20 * time.Millisecond)
	defer c.Stop()

	c.Set("owner", "tok", 10*time.Millisecond)
	time.Sleep(80 * time.Millisecond)

	c.mu.Lock()
	_, present := c.entries["owner"]
	c.mu.Unlock()
	require.False(t, present, "janitor should have evicted the expired entry")
}

// TestConcurrentAccess drives readers and writers at the same map; the race
// detector is the actual assertion here.
func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			owner := fmt.Sprintf("owner-%d", i%5)
			c.Set(owner, "tok", time.Minute)
			c.Get(owner)
			c.TTL(owner)
			c.Remove(owner)
		}(i)
	}
	wg.Wait()
}
