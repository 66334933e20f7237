package sync

import "sort"

// sortedNameUnion computes the union of keys across the given directory
// content maps (any of which may be nil) and returns them in byte-wise
// ascending order. It underlies the "outer join" used by Diff (two maps) and
// Reconcile (three maps): diff and reconcile both need to visit every name
// appearing on any side, in deterministic order, even though most names will
// only appear on some of the sides.
func sortedNameUnion(contentMaps ...map[string]*Entry) []string {
	capacity := 0
	if len(contentMaps) > 0 {
		capacity = len(contentMaps[0])
	}
	seen := make(map[string]struct{}, capacity)
	for _, contents := range contentMaps {
		for name := range contents {
			seen[name] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
