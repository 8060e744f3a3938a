package perm

import "sort"

// Key is a canonical permission key in RESOURCE_ACTION form, e.g. "HOSTS_VIEW".
type Key string

// Set is an unordered collection of permission keys.
type Set map[Key]struct{}

// NewSet builds a Set from the given keys.
func NewSet(keys ...Key) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}

	return s
}

// SetFromStrings builds a Set from raw strings without validation.
// Validation against the catalog is the caller's concern.
func SetFromStrings(keys []string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[Key(k)] = struct{}{}
	}

	return s
}

// Has reports whether the set contains the key.
func (s Set) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Add inserts the key into the set.
func (s Set) Add(k Key) {
	s[k] = struct{}{}
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k := range s {
		out[k] = struct{}{}
	}

	return out
}

// Equal reports whether both sets contain exactly the same keys.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}

	for k := range s {
		if !other.Has(k) {
			return false
		}
	}

	return true
}

// Sorted returns the keys in lexicographic order.
func (s Set) Sorted() []Key {
	out := make([]Key, 0, len(s))
	for k := range s {
		out = append(out, k)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Strings returns the keys as sorted plain strings, the form used for
// persistence and JSON responses.
func (s Set) Strings() []string {
	keys := s.Sorted()

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}

	return out
}
