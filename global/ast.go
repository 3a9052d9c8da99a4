// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package global implements the global protocol algebra: the data model
// of a choreography as seen from a single, whole-system viewpoint, and
// its structural validation.
package global

import (
	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
	"github.com/luxfi/choreo/roleset"
)

// Node is a global protocol tree. Continuations are single-child;
// Choice and Parallel carry multiple children. The tree is immutable
// once constructed — every constructor below returns a fresh value, and
// nothing in this package mutates a Node after it is built.
type Node interface {
	isGlobalNode()
}

// Send is a single point-to-point communication, then Cont.
type Send struct {
	From, To role.Role
	Msg      message.Message
	Cont     Node
}

func (Send) isGlobalNode() {}

// Broadcast has the sender emit Msg to every recipient in ToAll, then
// Cont. ToAll's iteration order (roleset.Set.List, sorted by role
// String()) fixes the send sequence at the sender.
type Broadcast struct {
	From  role.Role
	ToAll roleset.Set
	Msg   message.Message
	Cont  Node
}

func (Broadcast) isGlobalNode() {}

// ChoiceBranch is one labelled alternative of a Choice. Branches are
// stored in a slice, not a map, so their declaration order is
// deterministic for textual rendering and for the "first non-End
// branch" conservative merge rule.
type ChoiceBranch struct {
	Label string
	Node  Node
}

// Choice has Decider pick one labelled branch; every other role must
// discover the choice by receiving a carrier message at the head of
// each branch, or the choice must be uniformly local —
// see Validate's InvalidChoice check.
type Choice struct {
	Decider  role.Role
	Branches []ChoiceBranch
}

func (Choice) isGlobalNode() {}

// LoopConditionKind tags how a Loop decides to keep iterating. The core
// preserves the condition verbatim; interpreting it is
// the effect handler's responsibility (package runtime).
type LoopConditionKind int

const (
	// CondNone is an unconditioned loop (handler-defined termination,
	// e.g. an external signal).
	CondNone LoopConditionKind = iota
	// CondCount runs the body exactly Count times.
	CondCount
	// CondDecider has Decider choose, each iteration, whether to
	// continue.
	CondDecider
	// CondCustom names a handler-interpreted predicate.
	CondCustom
)

// LoopCondition is the tagged union of loop-continuation strategies.
type LoopCondition struct {
	Kind    LoopConditionKind
	Count   int
	Decider role.Role
	Custom  string
}

// Count returns a count-bounded loop condition.
func Count(n int) LoopCondition { return LoopCondition{Kind: CondCount, Count: n} }

// DecidedBy returns a condition where r chooses whether to continue.
func DecidedBy(r role.Role) LoopCondition { return LoopCondition{Kind: CondDecider, Decider: r} }

// CustomCondition returns a condition named by an opaque, handler-defined tag.
func CustomCondition(name string) LoopCondition { return LoopCondition{Kind: CondCustom, Custom: name} }

// Loop executes Body according to Condition.
type Loop struct {
	Condition LoopCondition
	Body      Node
}

func (Loop) isGlobalNode() {}

// Parallel's children execute concurrently. Projection enforces V4: no
// two children may have an ordering conflict over a shared peer.
// Validate does not check V4.
type Parallel struct {
	Children []Node
}

func (Parallel) isGlobalNode() {}

// Rec binds Label as a named recursion point around Body.
type Rec struct {
	Label string
	Body  Node
}

func (Rec) isGlobalNode() {}

// Var jumps back to the enclosing Rec of the same Label.
type Var struct {
	Label string
}

func (Var) isGlobalNode() {}

// End is the terminal node.
type End struct{}

func (End) isGlobalNode() {}

// Protocol is a whole choreography: a declared role set plus its global
// protocol tree.
type Protocol struct {
	Roles roleset.Set
	Root  Node
}
