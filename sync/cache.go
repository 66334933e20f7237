package sync

// CacheEntry is a single record in a Cache: the modification time, size, and
// last-computed digest observed for a file at some path during a scan. It is
// used to avoid re-hashing files whose metadata hasn't changed since the
// previous scan of the same root.
type CacheEntry struct {
	// ModificationTimeSeconds is the whole-seconds component of the file's
	// modification time, as observed by the scan that produced this entry.
	ModificationTimeSeconds int64
	// ModificationTimeNanoseconds is the nanoseconds component of the file's
	// modification time.
	ModificationTimeNanoseconds int32
	// Size is the file size in bytes, as observed by the scan that produced
	// this entry.
	Size uint64
	// Mode is reserved for future use by callers. The core never reads it,
	// and Scan always records it as zero in the caches it produces.
	Mode uint32
	// Digest is the last-computed content digest for the file.
	Digest []byte
}

// Cache is a side table mapping root-relative path (the root itself is the
// empty string) to a CacheEntry. A Cache is produced fresh by every Scan;
// callers are responsible for persisting the returned cache and supplying it
// as input to the next scan of the same root. Stale entries, for paths no
// longer present on disk, are never carried over by Scan.
type Cache struct {
	// Entries is the path-to-entry mapping.
	Entries map[string]*CacheEntry
}

// NewCache creates an empty cache, suitable for a cold scan.
func NewCache() *Cache {
	return &Cache{Entries: make(map[string]*CacheEntry)}
}

// get returns the cache entry for path, and whether it existed. A nil
// receiver behaves as an empty cache.
func (c *Cache) get(path string) (*CacheEntry, bool) {
	if c == nil || c.Entries == nil {
		return nil, false
	}
	entry, ok := c.Entries[path]
	return entry, ok
}

// Equal reports whether two caches hold equivalent entries. It is primarily
// useful in tests.
func (c *Cache) Equal(other *Cache) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.Entries) != len(other.Entries) {
		return false
	}
	for path, entry := range c.Entries {
		otherEntry, ok := other.Entries[path]
		if !ok {
			return false
		}
		if entry.ModificationTimeSeconds != otherEntry.ModificationTimeSeconds ||
			entry.ModificationTimeNanoseconds != otherEntry.ModificationTimeNanoseconds ||
			entry.Size != otherEntry.Size ||
			entry.Mode != otherEntry.Mode ||
			string(entry.Digest) != string(otherEntry.Digest) {
			return false
		}
	}
	return true
}
