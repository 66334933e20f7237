package cache

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/synctool/synctool/framing"
	"github.com/synctool/synctool/sync"
)

// Load reads a cache previously written by Save from path. A missing file is
// not an error: it's treated identically to a cold scan and yields an empty
// cache.
func Load(path string) (*sync.Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sync.NewCache(), nil
		}
		return nil, errors.Wrap(err, "unable to read cache file")
	}

	decoder := framing.NewDecoder(bytes.NewReader(data))
	w := &wireCache{}
	if err := decoder.DecodeTo(w); err != nil {
		return nil, errors.Wrap(ErrCacheCorrupt, err.Error())
	}

	return toCache(w), nil
}

// Save encodes cache and writes it atomically to path, so that a process
// crash or concurrent reader never observes a partially written file. The
// file is written with owner-only permissions, since cache digests can leak
// file-content equivalence.
func Save(path string, cache *sync.Cache) error {
	var buffer bytes.Buffer
	encoder := framing.NewEncoder(&buffer)
	if err := encoder.Encode(fromCache(cache)); err != nil {
		return errors.Wrap(err, "unable to encode cache")
	}

	return writeFileAtomic(path, buffer.Bytes(), 0600)
}

// writeFileAtomic writes data to a temporary file in the same directory as
// path and then renames it into place, so that readers of path never
// observe a partial write.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	directory := filepath.Dir(path)
	temporary, err := os.CreateTemp(directory, ".cache-*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	temporaryPath := temporary.Name()

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("unable to write temporary file: %w", err)
	}
	if err := temporary.Chmod(perm); err != nil {
		temporary.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("unable to set temporary file permissions: %w", err)
	}
	if err := temporary.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("unable to close temporary file: %w", err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("unable to rename temporary file into place: %w", err)
	}

	return nil
}
