package cache

import (
	"errors"
	"strconv"
	"sync"
	"testing"
)

func TestShardedGetSet(t *testing.T) {
	c := NewSharded[string, int](8, StringHasher)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on empty cache returned ok")
	}

	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("Get(b) = %d, %v; want 2, true", v, ok)
	}

	// Overwrite keeps a single entry.
	c.Set("a", 10)
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("Get(a) after overwrite = %d; want 10", v)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d; want 2", c.Len())
	}
}

func TestShardedEviction(t *testing.T) {
	// Uint64Hasher is an identity hash, so keys 0..15 map to distinct
	// shards and key k+16 shares a shard with key k.
	c := NewSharded[uint64, string](2, Uint64Hasher)

	c.Set(0, "first")
	c.Set(16, "second")
	c.Set(32, "third") // shard 0 now over capacity, evicts key 0

	if _, ok := c.Get(0); ok {
		t.Error("oldest entry survived eviction")
	}
	if _, ok := c.Get(16); !ok {
		t.Error("entry evicted too early")
	}
	if _, ok := c.Get(32); !ok {
		t.Error("newest entry missing")
	}
	if ev := c.Stats().Evictions; ev != 1 {
		t.Errorf("Evictions = %d; want 1", ev)
	}
}

func TestShardedLRUOrder(t *testing.T) {
	c := NewSharded[uint64, int](2, Uint64Hasher)

	c.Set(0, 0)
	c.Set(16, 16)
	c.Get(0) // refresh key 0 so key 16 is now oldest
	c.Set(32, 32)

	if _, ok := c.Get(0); !ok {
		t.Error("recently used entry was evicted")
	}
	if _, ok := c.Get(16); ok {
		t.Error("least recently used entry survived")
	}
}

func TestGetOrCreate(t *testing.T) {
	c := NewSharded[string, int](8, StringHasher)

	calls := 0
	create := func() int {
		calls++
		return 42
	}

	if v := c.GetOrCreate("k", create); v != 42 {
		t.Errorf("GetOrCreate = %d; want 42", v)
	}
	if v := c.GetOrCreate("k", create); v != 42 {
		t.Errorf("GetOrCreate (hit) = %d; want 42", v)
	}
	if calls != 1 {
		t.Errorf("create called %d times; want 1", calls)
	}
}

func TestGetOrCreateErrNoInsertOnError(t *testing.T) {
	c := NewSharded[string, int](8, StringHasher)
	fail := errors.New("fill failed")

	_, err := c.GetOrCreateErr("k", func() (int, error) { return 0, fail })
	if !errors.Is(err, fail) {
		t.Fatalf("err = %v; want %v", err, fail)
	}
	if c.Len() != 0 {
		t.Fatalf("Len() after failed fill = %d; want 0", c.Len())
	}

	// A later call retries and succeeds.
	v, err := c.GetOrCreateErr("k", func() (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Fatalf("retry = %d, %v; want 7, nil", v, err)
	}
}

func TestShardedDeleteClear(t *testing.T) {
	c := NewSharded[string, int](8, StringHasher)
	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Delete("a") {
		t.Error("Delete(a) = false; want true")
	}
	if c.Delete("a") {
		t.Error("Delete(a) twice = true; want false")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry still present")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d; want 0", c.Len())
	}
}

func TestShardedStats(t *testing.T) {
	c := NewSharded[string, int](8, StringHasher)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 2 {
		t.Errorf("Hits = %d; want 2", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("Misses = %d; want 1", s.Misses)
	}
}

func TestShardedConcurrent(t *testing.T) {
	c := NewSharded[string, int](64, StringHasher)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa(i % 50)
				c.Set(key, i)
				c.Get(key)
				c.GetOrCreate(key, func() int { return i })
			}
		}(g)
	}
	wg.Wait()
}

func BenchmarkShardedGet(b *testing.B) {
	c := NewSharded[string, int](256, StringHasher)
	c.Set("key", 1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}

func BenchmarkShardedGetOrCreate(b *testing.B) {
	c := NewSharded[uint64, int](256, Uint64Hasher)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.GetOrCreate(7, func() int { return 1 })
	}
}
