package cache

import "errors"

// ErrCacheCorrupt indicates that on-disk cache data failed to decode into a
// well-formed wire cache.
var ErrCacheCorrupt = errors.New("cache data corrupt")
