// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package global

import "fmt"

// ValidationKind tags the family of a validation failure.
type ValidationKind int

const (
	// UndefinedRole names a role referenced in the tree but not
	// declared in the protocol's role set.
	UndefinedRole ValidationKind = iota
	// UnusedRole names a declared role never referenced anywhere in
	// the tree.
	UnusedRole
	// InvalidChoice names the decider of a Choice whose branches mix
	// communicated and local head shapes (resolved in DESIGN.md: mixed-head
	// branches are rejected here).
	InvalidChoice
	// UnboundVariable names a Var with no enclosing Rec of the same
	// label in scope.
	UnboundVariable
	// DuplicateProtocolName is produced by the surrounding choreography
	// DSL (out of scope for this package) when two protocols share a
	// declared name. Validate never returns it itself; the kind tag
	// exists so downstream tooling has one stable taxonomy to switch
	// on across both validation sources.
	DuplicateProtocolName
)

func (k ValidationKind) String() string {
	switch k {
	case UndefinedRole:
		return "UndefinedRole"
	case UnusedRole:
		return "UnusedRole"
	case InvalidChoice:
		return "InvalidChoice"
	case UnboundVariable:
		return "UnboundVariable"
	case DuplicateProtocolName:
		return "DuplicateProtocolName"
	default:
		return "Unknown"
	}
}

// ValidationError is the typed failure Validate returns. It carries the
// offending role or label name in Name.
type ValidationError struct {
	Kind ValidationKind
	Name string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Name)
}
