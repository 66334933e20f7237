package sync

import "sort"

// Conflict records two non-empty, non-deletion change lists rooted at a
// common path where alpha and beta made incompatible modifications (or whose
// subtree deltas otherwise diverge) during reconciliation. Every Change in
// both AlphaChanges and BetaChanges has a non-nil New field - conflicts never
// carry deletion changes, since deletions are resolved automatically by the
// deletion heuristic in Reconcile.
type Conflict struct {
	// Root is the root-relative path at which the conflict occurs.
	Root string
	// AlphaChanges are alpha's non-deletion changes relative to the ancestor
	// at or below Root.
	AlphaChanges []Change
	// BetaChanges are beta's non-deletion changes relative to the ancestor at
	// or below Root.
	BetaChanges []Change
}

// sortableConflictList implements sort.Interface for Conflict slices,
// ordering by root path.
type sortableConflictList []Conflict

func (l sortableConflictList) Len() int           { return len(l) }
func (l sortableConflictList) Less(i, j int) bool { return pathLess(l[i].Root, l[j].Root) }
func (l sortableConflictList) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

// SortConflicts sorts a list of conflicts in place by root path.
func SortConflicts(conflicts []Conflict) {
	sort.Sort(sortableConflictList(conflicts))
}
