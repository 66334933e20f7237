package sync

import (
	"bytes"
	"sort"
)

// EntryKind identifies the shape of an Entry.
type EntryKind uint8

const (
	// EntryKind_Directory indicates that an Entry is a directory with ordered
	// named contents.
	EntryKind_Directory EntryKind = iota
	// EntryKind_File indicates that an Entry is a regular file with an
	// executability flag and a content digest.
	EntryKind_File
)

// String returns a human-readable representation of the entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryKind_Directory:
		return "directory"
	case EntryKind_File:
		return "file"
	default:
		return "unknown"
	}
}

// Entry is the canonical in-memory snapshot node. It is a tagged variant with
// exactly two shapes: a directory with ordered named children, or a file with
// an executability flag and a content digest. Entries are value types - two
// entries are equal if and only if they are structurally equal, deep. A nil
// *Entry represents the absence of content at a path (missing root, deleted
// file, etc.) and is always valid.
//
// Entries are immutable once produced by Scan (or constructed directly for
// tests) and safe to share across concurrent readers.
type Entry struct {
	// Kind indicates the entry's shape. It is only meaningful when the Entry
	// pointer is non-nil.
	Kind EntryKind
	// Contents are the ordered named children of a directory entry. It is nil
	// for file entries. Keys must be non-empty and must not contain '/'.
	Contents map[string]*Entry
	// Executable indicates whether a file entry's executable bits are set. It
	// is always false for directory entries.
	Executable bool
	// Digest is the content digest of a file entry, or nil if the file has
	// never been hashed. It is always nil for directory entries.
	Digest []byte
}

// sortedContentNames returns the names of a directory's contents in
// byte-wise ascending order. It gives walk its deterministic, lexicographic
// iteration order; Diff and Reconcile order their traversals with
// sortedNameUnion instead.
func sortedContentNames(contents map[string]*Entry) []string {
	if len(contents) == 0 {
		return nil
	}
	names := make([]string, 0, len(contents))
	for name := range contents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetContents returns the entry's content map, or nil if the entry is nil or
// not a directory. It allows callers to range over possibly-nil entries
// without an explicit nil check.
func (e *Entry) GetContents() map[string]*Entry {
	if e == nil || e.Kind != EntryKind_Directory {
		return nil
	}
	return e.Contents
}

// Find locates the child of a directory entry by name, returning the child
// and true if found. It is primarily useful in tests for navigating fixture
// trees.
func (e *Entry) Find(name string) (*Entry, bool) {
	contents := e.GetContents()
	if contents == nil {
		return nil, false
	}
	child, ok := contents[name]
	return child, ok
}

// Equal performs a deep structural equality comparison between this entry and
// another. Two nil entries are equal; a nil and non-nil entry are never
// equal.
func (e *Entry) Equal(other *Entry) bool {
	if e == other {
		return true
	} else if e == nil || other == nil {
		return false
	}
	if e.Kind != other.Kind {
		return false
	}
	switch e.Kind {
	case EntryKind_File:
		return e.Executable == other.Executable && bytes.Equal(e.Digest, other.Digest)
	case EntryKind_Directory:
		if len(e.Contents) != len(other.Contents) {
			return false
		}
		for name, child := range e.Contents {
			otherChild, ok := other.Contents[name]
			if !ok || !child.Equal(otherChild) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Copy creates a deep copy of the entry. A nil entry copies to nil.
func (e *Entry) Copy() *Entry {
	if e == nil {
		return nil
	}
	result := &Entry{
		Kind:       e.Kind,
		Executable: e.Executable,
	}
	if e.Digest != nil {
		result.Digest = append([]byte(nil), e.Digest...)
	}
	if e.Contents != nil {
		result.Contents = make(map[string]*Entry, len(e.Contents))
		for name, child := range e.Contents {
			result.Contents[name] = child.Copy()
		}
	}
	return result
}

// entryVisitor is the callback type used by walk.
type entryVisitor func(path string, entry *Entry)

// walk performs a pre-order depth-first traversal of the entry hierarchy,
// visiting children in lexicographic name order, as required for any
// operation whose output must be deterministic.
func (e *Entry) walk(path string, visitor entryVisitor) {
	visitor(path, e)
	if e == nil {
		return
	}
	for _, name := range sortedContentNames(e.Contents) {
		walkChild(path, name, e.Contents[name], visitor)
	}
}

// walkChild computes a child's path and recurses into it.
func walkChild(parent, name string, child *Entry, visitor entryVisitor) {
	child.walk(pathJoin(parent, name), visitor)
}

// Count returns the total number of entries within the hierarchy rooted at
// the entry (including the entry itself), or 0 if the entry is nil.
func (e *Entry) Count() uint64 {
	if e == nil {
		return 0
	}
	var count uint64 = 1
	for _, child := range e.Contents {
		count += child.Count()
	}
	return count
}
