package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, found := c.Get("k")
	if !found || string(got) != "v" {
		t.Errorf("expected v, got %q (found=%v)", got, found)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expected entry to expire")
	}
}

func TestMemoryCache_NoDefaultExpiry(t *testing.T) {
	c := NewMemoryCache(0, time.Minute)
	_ = c.Set("k", []byte("v"), 0)

	if _, found := c.Get("k"); !found {
		t.Error("expected entry without expiry to be present")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	_ = c.Delete("a")
	if _, found := c.Get("a"); found {
		t.Error("expected a to be deleted")
	}

	_ = c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Len())
	}
}

func TestKey(t *testing.T) {
	if Key("verdict", "ab", "c") == Key("verdict", "a", "bc") {
		t.Error("length-prefixed parts must not collide")
	}
	if Key("verdict", "a") != Key("verdict", "a") {
		t.Error("keys must be deterministic")
	}
	if Key("verdict", "a") == Key("other", "a") {
		t.Error("namespaces must separate keys")
	}
}
