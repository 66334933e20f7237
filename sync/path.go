package sync

import (
	"strings"
)

// pathJoin concatenates a root-relative base path and a leaf name with a
// forward slash, independent of host path conventions. The root path is the
// empty string, in which case the leaf is returned directly (no leading
// slash is ever introduced). Both arguments are assumed not to begin or end
// with '/'.
func pathJoin(base, leaf string) string {
	if base == "" {
		return leaf
	}
	return base + "/" + leaf
}

// PathBase returns the final path component of a root-relative
// synchronization path, or the empty string if path is the root path.
func PathBase(path string) string {
	if path == "" {
		return ""
	}
	if index := strings.LastIndexByte(path, '/'); index != -1 {
		return path[index+1:]
	}
	return path
}

// pathLess reports whether first sorts before second under the pre-order,
// lexicographic, component-wise traversal order required throughout. The
// root path ("") always sorts first.
func pathLess(first, second string) bool {
	if first == second {
		return false
	} else if first == "" {
		return true
	} else if second == "" {
		return false
	}
	for {
		firstSlash := strings.IndexByte(first, '/')
		secondSlash := strings.IndexByte(second, '/')

		firstComponent, secondComponent := first, second
		if firstSlash != -1 {
			firstComponent = first[:firstSlash]
		}
		if secondSlash != -1 {
			secondComponent = second[:secondSlash]
		}

		if firstComponent != secondComponent {
			return firstComponent < secondComponent
		}

		if firstSlash == -1 {
			return secondSlash != -1
		} else if secondSlash == -1 {
			return false
		}
		first = first[firstSlash+1:]
		second = second[secondSlash+1:]
	}
}
