// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package program implements a free-algebra indirection: a role's
// execution lowered to data first — mostly a linear chain of
// effects, branching only at Offer, where the peer's label (not this
// role's) decides what runs next — so it can be introspected,
// transformed, or replayed before a single Interpret call drives it
// through a runtime.Handler. Its sum-type shape mirrors packages global
// and local (a marker-method Step interface, Cont-chained
// continuations). Lower builds a Step plan from a local.Node.
package program

import (
	"time"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
)

// Step is one node of a lowered program.
type Step interface {
	isStep()
}

// Send emits Payload to Peer, then Cont.
type Send struct {
	Peer    role.Role
	Payload message.Message
	Cont    Step
}

func (Send) isStep() {}

// Recv awaits a value of TypeTag from Peer, then Cont. TypeTag is
// advisory metadata for introspection; the actual received value is
// discarded by Interpret (the program only records that a recv of this
// shape happened, consistent with its role as a pre-execution plan).
type Recv struct {
	Peer    role.Role
	TypeTag string
	Cont    Step
}

func (Recv) isStep() {}

// Choose publishes Label to Peer, then Cont.
type Choose struct {
	Peer  role.Role
	Label string
	Cont  Step
}

func (Choose) isStep() {}

// Offer awaits a label from Peer, then continues with Cases[label]. Unlike
// Choose (this role's own decision, fixed at lowering time), the label
// here is only known once the peer actually sends it, so Offer carries
// every branch and Interpret dispatches on whichever one arrives.
type Offer struct {
	Peer  role.Role
	Cases map[string]Step
}

func (Offer) isStep() {}

// Parallel runs every child concurrently, then Cont once all finish.
type Parallel struct {
	Children []Step
	Cont     Step
}

func (Parallel) isStep() {}

// WithTimeout runs Body under a dur deadline naming Peer for tracing,
// then Cont.
type WithTimeout struct {
	Peer     role.Role
	Duration time.Duration
	Body     Step
	Cont     Step
}

func (WithTimeout) isStep() {}

// End is the terminal step.
type End struct{}

func (End) isStep() {}
