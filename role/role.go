// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package role implements participant identity for a choreography.
//
// A Role names a participant: a simple name, an indexed member of a
// uniform group ("Worker[3]"), or a member parameterised by a symbolic
// tag ("Replica<primary>"). Two roles are equal iff their name, index,
// and parameter all match; Role is comparable and usable as a map key
// directly, so no separate hashing step is needed.
package role

import (
	"fmt"
	"strconv"
	"strings"
)

// Role is a participant identity. The zero value is not a valid role.
type Role struct {
	Name     string
	hasIndex bool
	index    int
	param    string
}

// New returns a plain, unindexed, unparameterised role.
func New(name string) Role {
	return Role{Name: name}
}

// Indexed returns a role identified by name and a numeric index, e.g. the
// third member of a "Worker" group.
func Indexed(name string, index int) Role {
	return Role{Name: name, hasIndex: true, index: index}
}

// Parameterised returns a role identified by name and a symbolic tag.
func Parameterised(name, param string) Role {
	return Role{Name: name, param: param}
}

// IndexedParameterised returns a role with both an index and a parameter.
func IndexedParameterised(name string, index int, param string) Role {
	return Role{Name: name, hasIndex: true, index: index, param: param}
}

// HasIndex reports whether the role carries a numeric index.
func (r Role) HasIndex() bool { return r.hasIndex }

// Index returns the role's numeric index. Only meaningful if HasIndex.
func (r Role) Index() int { return r.index }

// Param returns the role's symbolic parameter, or "" if none.
func (r Role) Param() string { return r.param }

// String returns the canonical textual form used for equality, hashing
// (Role is already a comparable Go value, so this is for display and
// serialisation only), and diagnostics.
func (r Role) String() string {
	s := r.Name
	if r.hasIndex {
		s += "[" + strconv.Itoa(r.index) + "]"
	}
	if r.param != "" {
		s += "<" + r.param + ">"
	}
	return s
}

// Parse reverses String, accepting "Name", "Name[Index]", "Name<Param>",
// or "Name[Index]<Param>". It is the inverse a caller needs when a role
// arrives as free text rather than already-structured data, e.g. a CLI
// flag naming a role declared in a protocol file.
func Parse(s string) (Role, error) {
	name := s
	var param string
	if i := strings.IndexByte(name, '<'); i != -1 {
		if !strings.HasSuffix(name, ">") {
			return Role{}, fmt.Errorf("role: malformed parameter in %q", s)
		}
		param = name[i+1 : len(name)-1]
		name = name[:i]
	}

	var hasIndex bool
	var index int
	if i := strings.IndexByte(name, '['); i != -1 {
		if !strings.HasSuffix(name, "]") {
			return Role{}, fmt.Errorf("role: malformed index in %q", s)
		}
		n, err := strconv.Atoi(name[i+1 : len(name)-1])
		if err != nil {
			return Role{}, fmt.Errorf("role: invalid index in %q: %w", s, err)
		}
		hasIndex, index = true, n
		name = name[:i]
	}

	if name == "" {
		return Role{}, fmt.Errorf("role: empty name in %q", s)
	}
	return Role{Name: name, hasIndex: hasIndex, index: index, param: param}, nil
}

// GoString supports %#v and debugger display.
func (r Role) GoString() string {
	return fmt.Sprintf("role.Role(%s)", r.String())
}
