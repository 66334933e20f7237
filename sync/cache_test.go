package sync

import (
	"testing"
)

func TestNewCacheEmpty(t *testing.T) {
	cache := NewCache()
	if len(cache.Entries) != 0 {
		t.Error("new cache should be empty")
	}
}

func TestCacheGetNilReceiver(t *testing.T) {
	var cache *Cache
	if entry, ok := cache.get("anything"); ok || entry != nil {
		t.Error("nil cache should report no entries")
	}
}

func TestCacheGetMissing(t *testing.T) {
	cache := NewCache()
	if _, ok := cache.get("nonexistent"); ok {
		t.Error("lookup for missing path should fail")
	}
}

func TestCacheEqual(t *testing.T) {
	a := NewCache()
	a.Entries["f"] = &CacheEntry{ModificationTimeSeconds: 1, Size: 3, Digest: []byte{1, 2, 3}}
	b := NewCache()
	b.Entries["f"] = &CacheEntry{ModificationTimeSeconds: 1, Size: 3, Digest: []byte{1, 2, 3}}
	if !a.Equal(b) {
		t.Error("equivalent caches should be equal")
	}
}

func TestCacheEqualDifferentDigest(t *testing.T) {
	a := NewCache()
	a.Entries["f"] = &CacheEntry{Size: 3, Digest: []byte{1, 2, 3}}
	b := NewCache()
	b.Entries["f"] = &CacheEntry{Size: 3, Digest: []byte{4, 5, 6}}
	if a.Equal(b) {
		t.Error("caches with differing digests should not be equal")
	}
}

func TestCacheEqualDifferentLength(t *testing.T) {
	a := NewCache()
	a.Entries["f"] = &CacheEntry{Size: 3}
	b := NewCache()
	if a.Equal(b) {
		t.Error("caches with different entry counts should not be equal")
	}
}
