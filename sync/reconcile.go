package sync

// extractNonDeletionChanges returns the subset of changes whose New is
// present. The deletion heuristic only ever needs to know
// whether a side's delta is "purely deletions"; this is what lets it
// distinguish that case from a side that has any new content at all.
func extractNonDeletionChanges(changes []Change) []Change {
	var filtered []Change
	for _, change := range changes {
		if change.New != nil {
			filtered = append(filtered, change)
		}
	}
	return filtered
}

// reconciler provides the recursive implementation of reconciliation,
// accumulating its four output lists as it walks the three input trees in
// lockstep.
type reconciler struct {
	ancestorChanges []Change
	alphaChanges    []Change
	betaChanges     []Change
	conflicts       []Conflict
}

// reconcile performs recursive three-way reconciliation at path, given the
// ancestor/alpha/beta entries rooted there.
func (r *reconciler) reconcile(path string, ancestor, alpha, beta *Entry) {
	// Case 1: both alpha and beta are directories. Recurse over the
	// three-way (or, if the ancestor must first be converted, two-way)
	// union of their contents rather than handling this node as a scalar
	// disagreement.
	if alpha != nil && alpha.Kind == EntryKind_Directory &&
		beta != nil && beta.Kind == EntryKind_Directory {
		if ancestor != nil && ancestor.Kind == EntryKind_Directory {
			for _, name := range sortedNameUnion(ancestor.Contents, alpha.Contents, beta.Contents) {
				r.reconcile(pathJoin(path, name), ancestor.Contents[name], alpha.Contents[name], beta.Contents[name])
			}
			return
		}

		// The ancestor doesn't already agree that this path is a directory
		// (it's absent or a file). Retroactively establish an empty
		// directory ancestor here so that recursion at each child can treat
		// its own ancestor as simply absent, then recurse with no ancestor
		// at each name in the alpha/beta union.
		r.ancestorChanges = append(r.ancestorChanges, Change{Path: path, Old: ancestor, New: &Entry{Kind: EntryKind_Directory}})
		for _, name := range sortedNameUnion(alpha.Contents, beta.Contents) {
			r.reconcile(pathJoin(path, name), nil, alpha.Contents[name], beta.Contents[name])
		}
		return
	}

	// Case 2: alpha and beta already agree at this node. Only the ancestor
	// might need to catch up.
	if alpha.Equal(beta) {
		if !ancestor.Equal(alpha) {
			r.ancestorChanges = append(r.ancestorChanges, Change{Path: path, Old: ancestor, New: alpha})
		}
		return
	}

	// Case 3: alpha and beta disagree. Classic three-way merge: if one side
	// is unchanged from the ancestor, the disagreement is entirely the
	// other side's doing, and its state can simply be propagated.
	alphaDelta := diff(path, ancestor, alpha)
	betaDelta := diff(path, ancestor, beta)
	if len(alphaDelta) == 0 {
		r.alphaChanges = append(r.alphaChanges, Change{Path: path, Old: alpha, New: beta})
		return
	}
	if len(betaDelta) == 0 {
		r.betaChanges = append(r.betaChanges, Change{Path: path, Old: beta, New: alpha})
		return
	}

	// Both sides have modifications relative to the ancestor and neither
	// change set is empty. The only remaining form of automatic resolution
	// is the deletion heuristic: a side whose delta is purely deletions
	// can't lose anything by being overwritten with the other side's state.
	alphaNonDeletion := extractNonDeletionChanges(alphaDelta)
	betaNonDeletion := extractNonDeletionChanges(betaDelta)
	if len(alphaNonDeletion) == 0 {
		r.alphaChanges = append(r.alphaChanges, Change{Path: path, Old: alpha, New: beta})
		return
	}
	if len(betaNonDeletion) == 0 {
		r.betaChanges = append(r.betaChanges, Change{Path: path, Old: beta, New: alpha})
		return
	}

	// Neither side's delta can be discarded without losing information.
	// This is a true conflict.
	r.conflicts = append(r.conflicts, Conflict{
		Root:         path,
		AlphaChanges: alphaNonDeletion,
		BetaChanges:  betaNonDeletion,
	})
}

// Reconcile performs a three-way merge of an ancestor entry against two
// current entries (alpha and beta), returning the changes to apply to the
// ancestor, to alpha, and to beta, along with any conflicts that could not be
// resolved automatically. All three inputs may be nil, representing an
// absent root. All four outputs are ordered by pre-order, name-lexicographic
// traversal.
func Reconcile(ancestor, alpha, beta *Entry) (ancestorChanges, alphaChanges, betaChanges []Change, conflicts []Conflict) {
	r := &reconciler{}
	r.reconcile("", ancestor, alpha, beta)
	return r.ancestorChanges, r.alphaChanges, r.betaChanges, r.conflicts
}
