// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package roleset adapts a generic set abstraction to this system's
// domain: the declared role set of a
// choreography, and the recipients of a Broadcast.
package roleset

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/luxfi/choreo/role"
)

// Set is a set of unique roles.
type Set map[role.Role]struct{}

// Of returns a Set initialized with elts.
func Of(elts ...role.Role) Set {
	s := make(Set, len(elts))
	s.Add(elts...)
	return s
}

// Add adds roles to the set.
func (s Set) Add(elts ...role.Role) {
	for _, elt := range elts {
		s[elt] = struct{}{}
	}
}

// Contains returns true if the set contains the role.
func (s Set) Contains(elt role.Role) bool {
	_, ok := s[elt]
	return ok
}

// Remove removes roles from the set.
func (s Set) Remove(elts ...role.Role) {
	for _, elt := range elts {
		delete(s, elt)
	}
}

// Len returns the number of roles in the set.
func (s Set) Len() int {
	return len(s)
}

// List returns the set's roles in a deterministic order (by String()),
// so callers that fold over a Broadcast's recipients — whose send
// sequence is fixed at the sender — get a stable iteration order across
// runs.
func (s Set) List() []role.Role {
	out := maps.Keys(s)
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Equals returns true if the sets contain the same roles.
func (s Set) Equals(other Set) bool {
	return maps.Equal(s, other)
}

// Union returns a new set containing all roles from both sets.
func (s Set) Union(other Set) Set {
	result := make(Set, max(s.Len(), other.Len()))
	maps.Copy(result, s)
	maps.Copy(result, other)
	return result
}

// Difference returns a new set containing roles in s that are not in other.
func (s Set) Difference(other Set) Set {
	result := make(Set)
	for elt := range s {
		if !other.Contains(elt) {
			result.Add(elt)
		}
	}
	return result
}

// Clone returns a copy of the set.
func (s Set) Clone() Set {
	result := make(Set, s.Len())
	maps.Copy(result, s)
	return result
}

// String returns a deterministic string representation of the set.
func (s Set) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, r := range s.List() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, r)
	}
	sb.WriteString("}")
	return sb.String()
}
