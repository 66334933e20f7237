//go:build !darwin
// +build !darwin

package sync

// filesystemDecomposesUnicode reports whether the filesystem containing path
// is known to decompose Unicode directory entry names. No
// non-Darwin platform supported here is known to exhibit this behavior, so
// it unconditionally reports false.
func filesystemDecomposesUnicode(path string) (bool, error) {
	return false, nil
}
