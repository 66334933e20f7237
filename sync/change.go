package sync

// Change records a transition at a single root-relative path from one
// optional Entry to another. At least one of Old/New is non-nil in any
// Change emitted by Diff or Reconcile: New nil is a deletion, Old nil is a
// creation, and both non-nil is a modification.
type Change struct {
	// Path is the root-relative path of the change. The empty string refers
	// to the synchronization root.
	Path string
	// Old is the entry value before the change, or nil if the change is a
	// creation.
	Old *Entry
	// New is the entry value after the change, or nil if the change is a
	// deletion.
	New *Entry
}

// IsCreation indicates whether the change represents a creation (no prior
// content at this path).
func (c *Change) IsCreation() bool {
	return c.Old == nil && c.New != nil
}

// IsDeletion indicates whether the change represents a deletion (no content
// remains at this path).
func (c *Change) IsDeletion() bool {
	return c.Old != nil && c.New == nil
}

// sortableChangeList implements sort.Interface for Change slices, ordering by
// path under the traversal order defined in path.go.
type sortableChangeList []Change

func (l sortableChangeList) Len() int           { return len(l) }
func (l sortableChangeList) Less(i, j int) bool { return pathLess(l[i].Path, l[j].Path) }
func (l sortableChangeList) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }
