// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package analyzer computes advisory, whole-protocol diagnostics over a
// global protocol: per-role participation counts, a progress predicate,
// and a simple deadlock heuristic. Nothing in package
// projection reads a Report — it exists for tooling and for tests;
// the choreo CLI does not call it. This mirrors a consensus engine's
// HealthCheck being purely observational of consensus state.
package analyzer

import (
	"github.com/luxfi/choreo/global"
	"github.com/luxfi/choreo/role"
)

// Report is the result of analyzing a global.Protocol.
type Report struct {
	// Participation counts, for every declared role, how many
	// communication operations (Send endpoints, Broadcast senders and
	// recipients, Choice deciders) mention it.
	Participation map[role.Role]int
	// Progress is true when every declared role participates in at
	// least one communication reachable from the protocol's root.
	Progress bool
	// HasDeadlockRisk is true when some Rec in the protocol has no
	// structural path to End other than through its own recursive
	// back-edge — a simple heuristic, not a full liveness proof.
	HasDeadlockRisk bool
}

// Analyze walks p once and returns a Report. Analyze does not require p
// to have passed global.Validate; an invalid protocol simply yields a
// Report whose numbers reflect the tree as given.
func Analyze(p global.Protocol) Report {
	participation := make(map[role.Role]int, p.Roles.Len())
	for _, r := range p.Roles.List() {
		participation[r] = 0
	}
	walkParticipation(p.Root, participation)

	progress := true
	for _, r := range p.Roles.List() {
		if participation[r] == 0 {
			progress = false
			break
		}
	}

	return Report{
		Participation:   participation,
		Progress:        progress,
		HasDeadlockRisk: hasDeadlockRisk(p.Root),
	}
}

func walkParticipation(n global.Node, counts map[role.Role]int) {
	switch x := n.(type) {
	case global.Send:
		counts[x.From]++
		counts[x.To]++
		walkParticipation(x.Cont, counts)
	case global.Broadcast:
		counts[x.From]++
		for _, r := range x.ToAll.List() {
			counts[r]++
		}
		walkParticipation(x.Cont, counts)
	case global.Choice:
		counts[x.Decider]++
		for _, b := range x.Branches {
			walkParticipation(b.Node, counts)
		}
	case global.Loop:
		walkParticipation(x.Body, counts)
	case global.Parallel:
		for _, c := range x.Children {
			walkParticipation(c, counts)
		}
	case global.Rec:
		walkParticipation(x.Body, counts)
	case global.Var, global.End, nil:
	}
}

// hasDeadlockRisk reports whether the tree contains a Rec whose body
// cannot reach End without looping back through its own Var.
func hasDeadlockRisk(n global.Node) bool {
	switch x := n.(type) {
	case global.Send:
		return hasDeadlockRisk(x.Cont)
	case global.Broadcast:
		return hasDeadlockRisk(x.Cont)
	case global.Choice:
		for _, b := range x.Branches {
			if hasDeadlockRisk(b.Node) {
				return true
			}
		}
		return false
	case global.Loop:
		return hasDeadlockRisk(x.Body)
	case global.Parallel:
		for _, c := range x.Children {
			if hasDeadlockRisk(c) {
				return true
			}
		}
		return false
	case global.Rec:
		if !canReachEndWithoutVar(x.Body, x.Label) {
			return true
		}
		return hasDeadlockRisk(x.Body)
	default:
		return false
	}
}

// canReachEndWithoutVar reports whether some path through n reaches End
// without taking label's own Var back-edge. A nested Rec of a different
// label is transparent to this check; its own deadlock risk is handled
// by the hasDeadlockRisk recursion into it.
func canReachEndWithoutVar(n global.Node, label string) bool {
	switch x := n.(type) {
	case global.Send:
		return canReachEndWithoutVar(x.Cont, label)
	case global.Broadcast:
		return canReachEndWithoutVar(x.Cont, label)
	case global.Choice:
		for _, b := range x.Branches {
			if canReachEndWithoutVar(b.Node, label) {
				return true
			}
		}
		return false
	case global.Loop:
		return true
	case global.Parallel:
		for _, c := range x.Children {
			if !canReachEndWithoutVar(c, label) {
				return false
			}
		}
		return true
	case global.Rec:
		return canReachEndWithoutVar(x.Body, label)
	case global.Var:
		return x.Label != label
	case global.End, nil:
		return true
	default:
		return true
	}
}
