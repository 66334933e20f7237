package sync

import "golang.org/x/text/unicode/norm"

// recomposeUnicodeName converts a UTF-8 directory entry name into canonical
// composed form. It is applied to child names read from a filesystem that
// filesystemDecomposesUnicode reports as Unicode-decomposing, so that a snapshot's
// content names are stable regardless of which endpoint's filesystem stores
// its canonical form decomposed.
func recomposeUnicodeName(name string) string {
	return norm.NFC.String(name)
}
