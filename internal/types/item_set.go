// Package types provides type definitions for structured data used throughout the craft-cover system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"strings"
)

// ItemSet is a canonical set of item identifiers: sorted and free of duplicates.
// Always build one with NewItemSet so the canonical form holds.
type ItemSet []string

// NewItemSet returns the canonical ItemSet for the given items.
func NewItemSet(items ...string) ItemSet {
	if len(items) == 0 {
		return ItemSet{}
	}
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)

	out := sorted[:1]
	for _, item := range sorted[1:] {
		if item != out[len(out)-1] {
			out = append(out, item)
		}
	}
	return ItemSet(out)
}

// Len returns the number of items in the set
func (s ItemSet) Len() int {
	return len(s)
}

// Contains reports whether item is a member of the set
func (s ItemSet) Contains(item string) bool {
	i := sort.SearchStrings(s, item)
	return i < len(s) && s[i] == item
}

// Key returns the canonical string form of the set, usable as a map key.
func (s ItemSet) Key() string {
	return strings.Join(s, ",")
}

// Equal reports whether both sets hold the same items
func (s ItemSet) Equal(other ItemSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// IsSubsetOf reports whether every item of s is in other.
func (s ItemSet) IsSubsetOf(other ItemSet) bool {
	if len(s) > len(other) {
		return false
	}
	// Both sides are sorted, so a single merge pass is enough.
	j := 0
	for _, item := range s {
		for j < len(other) && other[j] < item {
			j++
		}
		if j == len(other) || other[j] != item {
			return false
		}
		j++
	}
	return true
}

// IsStrictSubsetOf reports whether s is a subset of other and smaller than it.
func (s ItemSet) IsStrictSubsetOf(other ItemSet) bool {
	return len(s) < len(other) && s.IsSubsetOf(other)
}

// Intersect returns the items present in both sets
func (s ItemSet) Intersect(other ItemSet) ItemSet {
	out := make(ItemSet, 0, min(len(s), len(other)))
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] == other[j]:
			out = append(out, s[i])
			i++
			j++
		case s[i] < other[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// Union returns the items present in either set
func (s ItemSet) Union(other ItemSet) ItemSet {
	merged := make([]string, 0, len(s)+len(other))
	merged = append(merged, s...)
	merged = append(merged, other...)
	return NewItemSet(merged...)
}

// Difference returns the items of s that are not in other
func (s ItemSet) Difference(other ItemSet) ItemSet {
	out := make(ItemSet, 0, len(s))
	for _, item := range s {
		if !other.Contains(item) {
			out = append(out, item)
		}
	}
	return out
}

// String renders the set like {a, b, c}
func (s ItemSet) String() string {
	return "{" + strings.Join(s, ", ") + "}"
}
