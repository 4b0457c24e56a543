package cache

import (
	"fmt"
	"testing"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(10)

	if err := c.Set("k1", []byte("v1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("k1")
	if !found {
		t.Fatal("expected hit")
	}
	if string(val) != "v1" {
		t.Errorf("expected v1, got %s", val)
	}

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}
}

func TestMemoryCache_EvictsOldestFirst(t *testing.T) {
	c := NewMemoryCache(3)

	for i := 0; i < 4; i++ {
		key := fmt.Sprintf("k%d", i)
		if err := c.Set(key, []byte(key), 0); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if _, found := c.Get("k0"); found {
		t.Error("oldest entry should have been evicted")
	}
	for i := 1; i < 4; i++ {
		if _, found := c.Get(fmt.Sprintf("k%d", i)); !found {
			t.Errorf("entry k%d should have survived", i)
		}
	}
}

func TestMemoryCache_OverwriteDoesNotDuplicate(t *testing.T) {
	c := NewMemoryCache(2)

	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("a", []byte("2"), 0)
	_ = c.Set("b", []byte("3"), 0)

	// Two distinct keys fit the bound; overwriting "a" must not have
	// consumed a second slot.
	if val, found := c.Get("a"); !found || string(val) != "2" {
		t.Errorf("expected updated value for a, found=%v val=%s", found, val)
	}
	if _, found := c.Get("b"); !found {
		t.Error("expected b to survive")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(10)

	_ = c.Set("a", []byte("1"), 0)
	if err := c.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("expected miss after delete")
	}

	_ = c.Set("b", []byte("2"), 0)
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("b"); found {
		t.Error("expected miss after clear")
	}
}

func TestMemoryCache_Unbounded(t *testing.T) {
	c := NewMemoryCache(0)

	for i := 0; i < 100; i++ {
		_ = c.Set(fmt.Sprintf("k%d", i), []byte("v"), 0)
	}
	if _, found := c.Get("k0"); !found {
		t.Error("unbounded cache must not evict")
	}
}
