package usecase

import "sort"

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// intersect returns the distinct members of names that appear in set, sorted
// so callers get a deterministic sequence.
func intersect(set map[string]struct{}, names []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, n := range names {
		if _, ok := set[n]; !ok {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// difference returns the distinct members of names that do NOT appear in set,
// sorted.
func difference(names []string, set map[string]struct{}) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, n := range names {
		if _, ok := set[n]; ok {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
