package sync

import (
	"hash"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	// scannerCopyBufferSize specifies the size of the internal buffer that a
	// scanner uses to stream file data into its hasher.
	scannerCopyBufferSize = 32 * 1024
)

// anyExecutableBitSet returns whether any of the three POSIX executable bits
// are set in mode.
func anyExecutableBitSet(mode os.FileMode) bool {
	return mode&0111 != 0
}

// scanner provides the recursive implementation of scanning. It tracks both
// the scan root on disk (used to form paths passed to the os package) and
// the root-relative path of whatever it's currently visiting (used for cache
// keys, ignore matching, and the paths recorded in the resulting Entry
// tree).
type scanner struct {
	// root is the scan root's path on disk.
	root string
	// hasher is the hash function to use for computing file digests.
	hasher hash.Hash
	// cache is the existing cache to use for fast digest lookups.
	cache *Cache
	// ignorer identifies ignored paths.
	ignorer *ignorer
	// newCache is the new cache being populated as the scan progresses.
	newCache *Cache
	// recomposeUnicode indicates whether child names read from directories
	// need to be recomposed into canonical Unicode form.
	recomposeUnicode bool
	// buffer is the read buffer used when streaming file content into the
	// hasher.
	buffer []byte
}

// diskPath converts a root-relative path to a path usable with the os
// package.
func (s *scanner) diskPath(path string) string {
	if path == "" {
		return s.root
	}
	return s.root + string(os.PathSeparator) + path
}

// file performs processing of a file entry at root-relative path, given its
// already-probed os.FileInfo.
func (s *scanner) file(path string, info os.FileInfo) (*Entry, error) {
	executable := anyExecutableBitSet(info.Mode())
	modTime := info.ModTime()
	size := uint64(info.Size())

	cached, cacheHit := s.cache.get(path)
	cacheMatch := cacheHit &&
		cached.ModificationTimeSeconds == modTime.Unix() &&
		cached.ModificationTimeNanoseconds == int32(modTime.Nanosecond()) &&
		cached.Size == size

	var digest []byte
	if cacheMatch {
		digest = cached.Digest
	} else {
		f, err := os.Open(s.diskPath(path))
		if err != nil {
			return nil, errors.Wrap(ErrIO, err.Error())
		}
		s.hasher.Reset()
		copied, err := io.CopyBuffer(s.hasher, f, s.buffer)
		closeErr := f.Close()
		if err != nil {
			return nil, errors.Wrap(ErrIO, err.Error())
		}
		if closeErr != nil {
			return nil, errors.Wrap(ErrIO, closeErr.Error())
		}
		if uint64(copied) != size {
			return nil, errors.Wrap(ErrDigestMismatch, "short copy when hashing")
		}
		digest = s.hasher.Sum(nil)
	}

	s.newCache.Entries[path] = &CacheEntry{
		ModificationTimeSeconds:     modTime.Unix(),
		ModificationTimeNanoseconds: int32(modTime.Nanosecond()),
		Size:                        size,
		Digest:                      digest,
	}

	return &Entry{Kind: EntryKind_File, Executable: executable, Digest: digest}, nil
}

// directory performs processing of a directory entry at root-relative path.
func (s *scanner) directory(path string) (*Entry, error) {
	children, err := os.ReadDir(s.diskPath(path))
	if err != nil {
		return nil, errors.Wrap(ErrIO, err.Error())
	}

	contents := make(map[string]*Entry, len(children))
	for _, child := range children {
		name := child.Name()
		if !utf8.ValidString(name) {
			return nil, errors.Wrap(ErrEncoding, "invalid UTF-8 name")
		}
		if s.recomposeUnicode {
			name = recomposeUnicodeName(name)
		}

		childPath := pathJoin(path, name)
		if s.ignorer.ignored(childPath) {
			continue
		}

		info, err := child.Info()
		if err != nil {
			return nil, errors.Wrap(ErrIO, err.Error())
		}

		var entry *Entry
		if info.Mode().IsRegular() {
			entry, err = s.file(childPath, info)
		} else if info.IsDir() {
			entry, err = s.directory(childPath)
		} else {
			// Anything else (symlink, device, socket, ...) is silently
			// skipped.
			continue
		}
		if err != nil {
			return nil, err
		}

		contents[name] = entry
	}

	return &Entry{Kind: EntryKind_Directory, Contents: contents}, nil
}

// Scan walks the filesystem hierarchy rooted at root and produces a canonical
// Entry snapshot along with a fresh Cache to be persisted and supplied to the
// next Scan of the same root. hasher computes content digests for files that
// can't be served from cache. cache may be nil, representing a cold scan.
// ignores is an ordered sequence of glob patterns.
//
// If root does not exist, Scan returns (nil, an empty Cache, nil): a missing
// root is not an error.
func Scan(root string, hasher hash.Hash, cache *Cache, ignores []string) (*Entry, *Cache, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewCache(), nil
		}
		return nil, nil, errors.Wrap(ErrIO, err.Error())
	}

	if !info.Mode().IsRegular() && !info.IsDir() {
		return nil, nil, errors.Wrap(ErrUnsupportedEntry, "scan root is neither a file nor a directory")
	}

	if cache == nil {
		cache = NewCache()
	}

	ign, err := newIgnorer(ignores)
	if err != nil {
		return nil, nil, err
	}

	decomposes, err := filesystemDecomposesUnicode(root)
	if err != nil {
		return nil, nil, err
	}

	s := &scanner{
		root:             root,
		hasher:           hasher,
		cache:            cache,
		ignorer:          ign,
		newCache:         NewCache(),
		recomposeUnicode: decomposes,
		buffer:           make([]byte, scannerCopyBufferSize),
	}

	var result *Entry
	if info.IsDir() {
		result, err = s.directory("")
	} else {
		result, err = s.file("", info)
	}
	if err != nil {
		return nil, nil, err
	}

	return result, s.newCache, nil
}
