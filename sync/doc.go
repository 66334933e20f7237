// Package sync implements the synchronization core: scanning a filesystem
// hierarchy into a content-hashed snapshot, diffing two snapshots, and
// performing a three-way reconciliation between an ancestor snapshot and two
// current snapshots.
//
// The package is pure with respect to its inputs - it never touches disk
// except during Scan, and it never applies a Change to disk. Callers (an
// external driver, such as cmd/synctool) are responsible for transporting
// snapshots, persisting caches and ancestors between cycles, and applying the
// change sets that Reconcile produces.
package sync
