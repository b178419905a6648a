// Package params defines the ordered parameter sets tests run with and the
// builder that expands test identifiers (optionally through a multiplexer)
// into the exact sequence of sets to execute.
package params

import (
	"fmt"
	"strings"
)

// ShortnameKey is the mandatory key naming the test a set belongs to.
const ShortnameKey = "shortname"

// Prefix returns the resolvable unit of an identifier: the part before the
// first dot. Anything after the dot is a sub-test qualifier by convention and
// plays no role in finding the implementation.
func Prefix(identifier string) string {
	if i := strings.IndexByte(identifier, '.'); i >= 0 {
		return identifier[:i]
	}
	return identifier
}

// Pair is one key/value entry of a Set, used during construction.
type Pair struct {
	Key   string
	Value string
}

// Set is an ordered mapping from string keys to string values. Sets are
// immutable once built; the order of keys is the order they were added.
type Set struct {
	keys []string
	vals map[string]string
}

// FromPairs builds a Set from ordered key/value pairs. A repeated key keeps
// its first position but takes the last value.
func FromPairs(pairs []Pair) *Set {
	s := &Set{vals: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		if _, ok := s.vals[p.Key]; !ok {
			s.keys = append(s.keys, p.Key)
		}
		s.vals[p.Key] = p.Value
	}
	return s
}

// Bare builds the minimal Set for an identifier: {shortname: identifier}.
func Bare(identifier string) *Set {
	return FromPairs([]Pair{{Key: ShortnameKey, Value: identifier}})
}

// Get returns the value for key and whether it is present.
func (s *Set) Get(key string) (string, bool) {
	v, ok := s.vals[key]
	return v, ok
}

// Shortname returns the value of the shortname key, or "" if absent.
func (s *Set) Shortname() string {
	return s.vals[ShortnameKey]
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (s *Set) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.keys)
}

// String renders the set in insertion order, for logs and error messages.
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%s", k, s.vals[k])
	}
	sb.WriteByte('}')
	return sb.String()
}
