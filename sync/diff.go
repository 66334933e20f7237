package sync

// differ provides recursive diffing infrastructure, accumulating changes in
// pre-order, name-lexicographic traversal order as it goes.
type differ struct {
	changes []Change
}

// diff is the recursive diff implementation.
func (d *differ) diff(path string, base, target *Entry) {
	// Both absent: nothing to report.
	if base == nil && target == nil {
		return
	}

	// Both present and both directories: recurse over the sorted union of
	// their contents rather than replacing the whole subtree, so that an
	// unrelated change deep within a large directory doesn't get reported as
	// a wholesale replacement of that directory.
	if base != nil && target != nil &&
		base.Kind == EntryKind_Directory && target.Kind == EntryKind_Directory {
		for _, name := range sortedNameUnion(base.Contents, target.Contents) {
			d.diff(pathJoin(path, name), base.Contents[name], target.Contents[name])
		}
		return
	}

	// Both present and both files: emit a change only if their properties
	// differ.
	if base != nil && target != nil &&
		base.Kind == EntryKind_File && target.Kind == EntryKind_File {
		if base.Executable != target.Executable || string(base.Digest) != string(target.Digest) {
			d.changes = append(d.changes, Change{Path: path, Old: base, New: target})
		}
		return
	}

	// Exactly one absent, or both present but of different kinds: a single
	// wholesale replacement change.
	d.changes = append(d.changes, Change{Path: path, Old: base, New: target})
}

// diff performs a diff operation between a base and target entry, both
// treated as rooted at path, and returns the list of changes that, applied to
// base, would transform it into target.
func diff(path string, base, target *Entry) []Change {
	d := &differ{}
	d.diff(path, base, target)
	return d.changes
}

// Diff performs a diff operation between a base and target entry and
// generates the minimal, pre-order-lexicographically-ordered list of changes
// that, if applied to base, would transform it into target. Diff is
// deterministic and returns an empty list if and only if base and target are
// structurally equal.
func Diff(base, target *Entry) []Change {
	return diff("", base, target)
}
