// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package local implements the per-role local type: the program a
// single role runs, derived from a global protocol by projection
// (package projection).
package local

import (
	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
)

// Node is a local type tree.
type Node interface {
	isLocalNode()
}

// Send emits Msg to To, then Cont.
type Send struct {
	To   role.Role
	Msg  message.Message
	Cont Node
}

func (Send) isLocalNode() {}

// Receive blocks for Msg from From, then Cont.
type Receive struct {
	From role.Role
	Msg  message.Message
	Cont Node
}

func (Receive) isLocalNode() {}

// Case is one labelled continuation of a Select or Branch.
type Case struct {
	Label string
	Node  Node
}

// Select is this role communicating an internal decision to To: one of
// Cases, chosen by this role.
type Select struct {
	To    role.Role
	Cases []Case
}

func (Select) isLocalNode() {}

// Branch is this role discovering a decision made by From: one of
// Cases, chosen by the peer.
type Branch struct {
	From  role.Role
	Cases []Case
}

func (Branch) isLocalNode() {}

// LocalChoice is an internal decision with no communicated label —
// produced when projecting the decider's own side of a local
// (non-communicated) Choice.
type LocalChoice struct {
	Cases []Case
}

func (LocalChoice) isLocalNode() {}

// Loop executes Body according to Condition, carried over verbatim from
// the global protocol's loop condition.
type Loop struct {
	Condition LoopCondition
	Body      Node
}

func (Loop) isLocalNode() {}

// LoopCondition mirrors global.LoopCondition's shape so that projection
// can copy a condition without this package depending on global (local
// types are meant to stand alone, e.g. for serialisation).
type LoopCondition struct {
	Kind    LoopConditionKind
	Count   int
	Decider role.Role
	Custom  string
}

// LoopConditionKind mirrors global.LoopConditionKind.
type LoopConditionKind int

const (
	CondNone LoopConditionKind = iota
	CondCount
	CondDecider
	CondCustom
)

// Rec binds Label as a named recursion point around Body.
type Rec struct {
	Label string
	Body  Node
}

func (Rec) isLocalNode() {}

// Var jumps back to the enclosing Rec of the same Label.
type Var struct {
	Label string
}

func (Var) isLocalNode() {}

// End is the terminal node.
type End struct{}

func (End) isLocalNode() {}
