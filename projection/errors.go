// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package projection implements the global→local transformation: the
// derivation of one role's local type from a global protocol, including
// merge of bystander continuations, Parallel conflict detection, and
// recursion handling.
package projection

import "fmt"

// ErrorKind tags the family of a projection failure.
type ErrorKind int

const (
	// NonParticipantChoice marks a Choice whose communicated branches
	// disagree on who receives the decider's head send, so the
	// decider's role has no single consistent Select target.
	NonParticipantChoice ErrorKind = iota
	// InconsistentParallel marks a Parallel whose surviving children
	// have conflicting first operations against the same peer (V4).
	InconsistentParallel
	// UnboundVariable marks a Var reached with no enclosing Rec of the
	// same label in the projection's recursion scope.
	UnboundVariable
	// MergeFailure is reserved for a future strengthening of the
	// bystander merge rule to a full syntactic-mergeability
	// check; the current conservative merge never fails, so this kind
	// is not produced today.
	MergeFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NonParticipantChoice:
		return "NonParticipantChoice"
	case InconsistentParallel:
		return "InconsistentParallel"
	case UnboundVariable:
		return "UnboundVariable"
	case MergeFailure:
		return "MergeFailure"
	default:
		return "Unknown"
	}
}

// Error is the typed failure Project returns.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}
