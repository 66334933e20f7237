package cache

import (
	"encoding/binary"
	"sort"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/synctool/synctool/sync"
)

// wireEntry is the on-the-wire representation of a single sync.CacheEntry,
// keyed by its root-relative path. Fields are encoded in declaration order:
// a length-prefixed UTF-8 path, a reserved mode, a modification time
// (seconds then nanoseconds), a size, and a length-prefixed digest.
type wireEntry struct {
	Path                        string
	Mode                        uint32
	ModificationTimeSeconds     int64
	ModificationTimeNanoseconds int32
	Size                        uint64
	Digest                      []byte
}

// wireCache is the on-the-wire representation of a sync.Cache: an ordered
// sequence of entries. Entries are sorted by path before encoding so that two
// encodings of an equivalent cache are byte-identical.
type wireCache struct {
	Entries []wireEntry
}

// sizeVarint returns the number of bytes required to encode v as an unsigned
// varint.
func sizeVarint(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// putVarint appends v to buffer in unsigned varint form and returns the
// number of bytes written.
func putVarint(buffer []byte, v uint64) int {
	return binary.PutUvarint(buffer, v)
}

// Size returns the encoded length of the wire cache, implementing the
// Encodable interface expected by the framing package.
func (w *wireCache) Size() int {
	size := sizeVarint(uint64(len(w.Entries)))
	for _, e := range w.Entries {
		size += sizeVarint(uint64(len(e.Path))) + len(e.Path)
		size += sizeVarint(uint64(e.Mode))
		size += sizeVarint(zigzagEncode(e.ModificationTimeSeconds))
		size += sizeVarint(uint64(uint32(e.ModificationTimeNanoseconds)))
		size += sizeVarint(e.Size)
		size += sizeVarint(uint64(len(e.Digest))) + len(e.Digest)
	}
	return size
}

// MarshalTo encodes the wire cache into buffer, implementing the Encodable
// interface expected by the framing package.
func (w *wireCache) MarshalTo(buffer []byte) (int, error) {
	offset := putVarint(buffer, uint64(len(w.Entries)))
	for _, e := range w.Entries {
		offset += putVarint(buffer[offset:], uint64(len(e.Path)))
		offset += copy(buffer[offset:], e.Path)
		offset += putVarint(buffer[offset:], uint64(e.Mode))
		offset += putVarint(buffer[offset:], zigzagEncode(e.ModificationTimeSeconds))
		offset += putVarint(buffer[offset:], uint64(uint32(e.ModificationTimeNanoseconds)))
		offset += putVarint(buffer[offset:], e.Size)
		offset += putVarint(buffer[offset:], uint64(len(e.Digest)))
		offset += copy(buffer[offset:], e.Digest)
	}
	return offset, nil
}

// Unmarshal decodes buffer into the wire cache, implementing the Decodable
// interface expected by the framing package.
func (w *wireCache) Unmarshal(buffer []byte) error {
	count, offset, err := readUvarint(buffer, 0)
	if err != nil {
		return errors.Wrap(err, "unable to decode entry count")
	}

	entries := make([]wireEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		var e wireEntry

		pathLength, n, err := readUvarint(buffer, offset)
		if err != nil {
			return errors.Wrap(err, "unable to decode path length")
		}
		offset = n
		if offset+int(pathLength) > len(buffer) {
			return errors.New("path data truncated")
		}
		path := string(buffer[offset : offset+int(pathLength)])
		if !utf8.ValidString(path) {
			return errors.Wrap(ErrCacheCorrupt, "invalid UTF-8 path")
		}
		e.Path = path
		offset += int(pathLength)

		mode, n, err := readUvarint(buffer, offset)
		if err != nil {
			return errors.Wrap(err, "unable to decode mode")
		}
		e.Mode = uint32(mode)
		offset = n

		seconds, n, err := readUvarint(buffer, offset)
		if err != nil {
			return errors.Wrap(err, "unable to decode modification time seconds")
		}
		e.ModificationTimeSeconds = zigzagDecode(seconds)
		offset = n

		nanoseconds, n, err := readUvarint(buffer, offset)
		if err != nil {
			return errors.Wrap(err, "unable to decode modification time nanoseconds")
		}
		e.ModificationTimeNanoseconds = int32(uint32(nanoseconds))
		offset = n

		size, n, err := readUvarint(buffer, offset)
		if err != nil {
			return errors.Wrap(err, "unable to decode size")
		}
		e.Size = size
		offset = n

		digestLength, n, err := readUvarint(buffer, offset)
		if err != nil {
			return errors.Wrap(err, "unable to decode digest length")
		}
		offset = n
		if offset+int(digestLength) > len(buffer) {
			return errors.New("digest data truncated")
		}
		if digestLength > 0 {
			e.Digest = append([]byte(nil), buffer[offset:offset+int(digestLength)]...)
		}
		offset += int(digestLength)

		entries = append(entries, e)
	}

	w.Entries = entries
	return nil
}

// readUvarint decodes an unsigned varint from buffer starting at offset,
// returning the decoded value and the offset immediately following it.
func readUvarint(buffer []byte, offset int) (uint64, int, error) {
	v, n := binary.Uvarint(buffer[offset:])
	if n <= 0 {
		return 0, 0, errors.New("malformed varint")
	}
	return v, offset + n, nil
}

// zigzagEncode maps a signed value onto the unsigned integers so that small
// magnitude values (positive or negative) encode compactly as varints.
func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// zigzagDecode reverses zigzagEncode.
func zigzagDecode(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// fromCache converts an in-memory sync.Cache into its wire representation,
// with entries sorted by path for deterministic encoding.
func fromCache(c *sync.Cache) *wireCache {
	w := &wireCache{}
	if c == nil {
		return w
	}
	paths := make([]string, 0, len(c.Entries))
	for path := range c.Entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	w.Entries = make([]wireEntry, 0, len(paths))
	for _, path := range paths {
		entry := c.Entries[path]
		w.Entries = append(w.Entries, wireEntry{
			Path:                        path,
			Mode:                        entry.Mode,
			ModificationTimeSeconds:     entry.ModificationTimeSeconds,
			ModificationTimeNanoseconds: entry.ModificationTimeNanoseconds,
			Size:                        entry.Size,
			Digest:                      entry.Digest,
		})
	}
	return w
}

// toCache converts a decoded wire cache back into an in-memory sync.Cache.
func toCache(w *wireCache) *sync.Cache {
	c := sync.NewCache()
	for _, e := range w.Entries {
		c.Entries[e.Path] = &sync.CacheEntry{
			ModificationTimeSeconds:     e.ModificationTimeSeconds,
			ModificationTimeNanoseconds: e.ModificationTimeNanoseconds,
			Size:                        e.Size,
			Mode:                        e.Mode,
			Digest:                      e.Digest,
		}
	}
	return c
}
