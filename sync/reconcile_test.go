package sync

import (
	"testing"
)

func changesEqual(a, b []Change) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Path != b[i].Path || !a[i].Old.Equal(b[i].Old) || !a[i].New.Equal(b[i].New) {
			return false
		}
	}
	return true
}

// TestReconcileBothDeleted covers scenario S4.
func TestReconcileBothDeleted(t *testing.T) {
	ancestor := testFile(true, 1)
	ancestorChanges, alphaChanges, betaChanges, conflicts := Reconcile(ancestor, nil, nil)

	if len(alphaChanges) != 0 || len(betaChanges) != 0 || len(conflicts) != 0 {
		t.Fatal("only ancestor changes should be emitted")
	}
	if len(ancestorChanges) != 1 {
		t.Fatalf("unexpected number of ancestor changes: got %d, want 1", len(ancestorChanges))
	}
	if ancestorChanges[0].Path != "" || !ancestorChanges[0].Old.Equal(ancestor) || ancestorChanges[0].New != nil {
		t.Error("unexpected ancestor change")
	}
}

// TestReconcileConflict covers scenario S5.
func TestReconcileConflict(t *testing.T) {
	ancestor := testFile(false, 1)
	alpha := testFile(false, 2)
	beta := testFile(false, 3)
	ancestorChanges, alphaChanges, betaChanges, conflicts := Reconcile(ancestor, alpha, beta)

	if len(ancestorChanges) != 0 || len(alphaChanges) != 0 || len(betaChanges) != 0 {
		t.Fatal("no propagating changes should be emitted on genuine conflict")
	}
	if len(conflicts) != 1 {
		t.Fatalf("unexpected number of conflicts: got %d, want 1", len(conflicts))
	}
	conflict := conflicts[0]
	if conflict.Root != "" {
		t.Error("unexpected conflict root")
	}
	if len(conflict.AlphaChanges) != 1 || !conflict.AlphaChanges[0].New.Equal(alpha) {
		t.Error("unexpected alpha side of conflict")
	}
	if len(conflict.BetaChanges) != 1 || !conflict.BetaChanges[0].New.Equal(beta) {
		t.Error("unexpected beta side of conflict")
	}
}

// TestReconcileDeletionHeuristic covers scenario S6.
func TestReconcileDeletionHeuristic(t *testing.T) {
	ancestor := testFile(false, 1)
	beta := testFile(false, 2)
	ancestorChanges, alphaChanges, betaChanges, conflicts := Reconcile(ancestor, nil, beta)

	if len(ancestorChanges) != 0 || len(betaChanges) != 0 || len(conflicts) != 0 {
		t.Fatal("only alpha changes should be emitted")
	}
	if len(alphaChanges) != 1 {
		t.Fatalf("unexpected number of alpha changes: got %d, want 1", len(alphaChanges))
	}
	if alphaChanges[0].Path != "" || alphaChanges[0].Old != nil || !alphaChanges[0].New.Equal(beta) {
		t.Error("unexpected alpha change")
	}
}

// TestReconcileIdentity covers universal property 4: when alpha and beta
// agree and match the ancestor, nothing is emitted at all.
func TestReconcileIdentity(t *testing.T) {
	shared := testFile(false, 1, 2)
	ancestorChanges, alphaChanges, betaChanges, conflicts := Reconcile(shared, shared, shared)
	if len(ancestorChanges) != 0 || len(alphaChanges) != 0 || len(betaChanges) != 0 || len(conflicts) != 0 {
		t.Fatal("fully agreeing inputs should produce no output")
	}
}

// TestReconcileBothModifiedSame covers the "both sides modified identically"
// case: alpha and beta agree but disagree with the ancestor, so only the
// ancestor needs to catch up.
func TestReconcileBothModifiedSame(t *testing.T) {
	ancestor := testFile(false, 1)
	updated := testFile(false, 2)
	ancestorChanges, alphaChanges, betaChanges, conflicts := Reconcile(ancestor, updated, updated)

	if len(alphaChanges) != 0 || len(betaChanges) != 0 || len(conflicts) != 0 {
		t.Fatal("agreeing sides should not generate propagating changes")
	}
	if len(ancestorChanges) != 1 || !ancestorChanges[0].New.Equal(updated) {
		t.Error("ancestor should be updated to match the agreed-upon state")
	}
}

// TestReconcileNoConflictPropagation covers universal property 5: when one
// side is unchanged from the ancestor, the other side's state propagates in
// full with no conflict. Here alpha is the unchanged side.
func TestReconcileNoConflictPropagation(t *testing.T) {
	ancestor := testDirectory(map[string]*Entry{
		"a": testFile(false, 1),
		"b": testFile(false, 2),
	})
	beta := testDirectory(map[string]*Entry{
		"a": testFile(false, 1),
		"b": testFile(true, 2),
		"c": testFile(false, 3),
	})

	_, alphaChanges, betaChanges, conflicts := Reconcile(ancestor, ancestor, beta)
	if len(conflicts) != 0 {
		t.Fatal("unchanged side should never produce a conflict")
	}
	if len(betaChanges) != 0 {
		t.Error("the modified side should not itself be changed")
	}
	if len(alphaChanges) != 2 {
		t.Fatalf("unexpected number of alpha changes: got %d, want 2", len(alphaChanges))
	}
}

// TestReconcileSymmetry covers universal property 3: swapping alpha and beta
// swaps alphaChanges and betaChanges (and, within each conflict, the two
// change lists), while ancestorChanges and the conflict count are unaffected.
func TestReconcileSymmetry(t *testing.T) {
	ancestor := testFile(false, 1)
	alpha := testFile(false, 2)
	beta := testFile(false, 3)

	ancestorChanges1, alphaChanges1, betaChanges1, conflicts1 := Reconcile(ancestor, alpha, beta)
	ancestorChanges2, alphaChanges2, betaChanges2, conflicts2 := Reconcile(ancestor, beta, alpha)

	if !changesEqual(ancestorChanges1, ancestorChanges2) {
		t.Error("ancestor changes should be unaffected by swapping alpha and beta")
	}
	if !changesEqual(alphaChanges1, betaChanges2) || !changesEqual(betaChanges1, alphaChanges2) {
		t.Error("alpha/beta changes should swap under swapping alpha and beta")
	}
	if len(conflicts1) != len(conflicts2) {
		t.Fatal("conflict count should be unaffected by swapping alpha and beta")
	}
	for i := range conflicts1 {
		if !changesEqual(conflicts1[i].AlphaChanges, conflicts2[i].BetaChanges) ||
			!changesEqual(conflicts1[i].BetaChanges, conflicts2[i].AlphaChanges) {
			t.Error("conflict sides should swap under swapping alpha and beta")
		}
	}
}

// TestReconcileRetroactiveAncestorDirectory covers the case where the
// ancestor must be retroactively converted into a directory because both
// alpha and beta are now directories at a path where the ancestor wasn't.
func TestReconcileRetroactiveAncestorDirectory(t *testing.T) {
	alpha := testDirectory(map[string]*Entry{"f": testFile(false, 1)})
	beta := testDirectory(map[string]*Entry{"f": testFile(false, 1)})

	ancestorChanges, alphaChanges, betaChanges, conflicts := Reconcile(testFile(false, 9), alpha, beta)
	if len(alphaChanges) != 0 || len(betaChanges) != 0 || len(conflicts) != 0 {
		t.Fatal("agreeing directory contents should not produce propagating changes or conflicts")
	}
	// Two ancestor changes are expected: the retroactive establishment of an
	// empty directory at the root, then catch-up for the agreeing child "f"
	// once recursion proceeds with a nil per-child ancestor.
	if len(ancestorChanges) != 2 {
		t.Fatalf("unexpected number of ancestor changes: got %d, want 2", len(ancestorChanges))
	}
	if ancestorChanges[0].Path != "" || ancestorChanges[0].New.Kind != EntryKind_Directory {
		t.Error("ancestor should be retroactively established as an empty directory at the root")
	}
	if ancestorChanges[1].Path != "f" || !ancestorChanges[1].New.Equal(alpha.Contents["f"]) {
		t.Error("ancestor should catch up on the agreeing child")
	}
}
