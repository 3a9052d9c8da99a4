// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"fmt"

	"github.com/luxfi/choreo/local"
)

// Chooser resolves which labelled case this role takes at a local
// decision point (local.Select or local.LocalChoice) during Lower.
// Lower has no way to observe that decision itself — Step plans one
// concrete run, and only the peer side of a choice (local.Branch) is
// left open, dispatched on the label Interpret actually receives.
type Chooser func(labels []string) string

// FirstLabel is the default Chooser: it always takes the first case, in
// the order local.Select/local.LocalChoice list them.
func FirstLabel(labels []string) string {
	return labels[0]
}

// Lower flattens a projected local type into a Step plan, resolving
// every local.Select and local.LocalChoice with choose. A local.Branch
// lowers to an Offer carrying every case; which one runs is left to the
// label Interpret receives at run time, so branch lowering never
// consults choose and never loses a case. A case that opens by receiving
// from the deciding peer has that Recv dropped: the decider's Select
// lowers to a single Choose whose label stands for that message, so no
// separate message follows the label.
//
// Lower rejects local.Rec/local.Var (open-ended recursion has no finite
// Step encoding) and a local.Loop whose condition is not a static count
// (CondDecider and CondCustom are only resolvable at run time, and Step
// has no loop construct to defer that decision to).
func Lower(n local.Node, choose Chooser) (Step, error) {
	if choose == nil {
		choose = FirstLabel
	}
	return lower(n, choose, End{})
}

func lower(n local.Node, choose Chooser, tail Step) (Step, error) {
	switch x := n.(type) {
	case local.End:
		return tail, nil

	case local.Send:
		cont, err := lower(x.Cont, choose, tail)
		if err != nil {
			return nil, err
		}
		return Send{Peer: x.To, Payload: x.Msg, Cont: cont}, nil

	case local.Receive:
		cont, err := lower(x.Cont, choose, tail)
		if err != nil {
			return nil, err
		}
		return Recv{Peer: x.From, TypeTag: x.Msg.String(), Cont: cont}, nil

	case local.Select:
		c, err := pickCase(x.Cases, choose)
		if err != nil {
			return nil, err
		}
		cont, err := lower(c.Node, choose, tail)
		if err != nil {
			return nil, err
		}
		return Choose{Peer: x.To, Label: c.Label, Cont: cont}, nil

	case local.Branch:
		cases := make(map[string]Step, len(x.Cases))
		for _, c := range x.Cases {
			step, err := lower(c.Node, choose, tail)
			if err != nil {
				return nil, err
			}
			if recv, ok := step.(Recv); ok && recv.Peer == x.From {
				step = recv.Cont
			}
			cases[c.Label] = step
		}
		return Offer{Peer: x.From, Cases: cases}, nil

	case local.LocalChoice:
		c, err := pickCase(x.Cases, choose)
		if err != nil {
			return nil, err
		}
		return lower(c.Node, choose, tail)

	case local.Loop:
		return lowerLoop(x, choose, tail)

	case local.Rec:
		return nil, fmt.Errorf("program: lower: Rec(%s) has no finite Step encoding", x.Label)

	case local.Var:
		return nil, fmt.Errorf("program: lower: unbound recursion target Var(%s)", x.Label)

	default:
		return nil, fmt.Errorf("program: lower: unhandled local node %T", n)
	}
}

func lowerLoop(l local.Loop, choose Chooser, tail Step) (Step, error) {
	if l.Condition.Kind != local.CondCount {
		return nil, fmt.Errorf("program: lower: loop condition %v is not statically bounded", l.Condition.Kind)
	}
	cur := tail
	for i := 0; i < l.Condition.Count; i++ {
		next, err := lower(l.Body, choose, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func pickCase(cases []local.Case, choose Chooser) (local.Case, error) {
	if len(cases) == 0 {
		return local.Case{}, fmt.Errorf("program: lower: choice with no cases")
	}
	labels := make([]string, len(cases))
	for i, c := range cases {
		labels[i] = c.Label
	}
	label := choose(labels)
	for _, c := range cases {
		if c.Label == label {
			return c, nil
		}
	}
	return local.Case{}, fmt.Errorf("program: lower: chooser returned unknown label %q", label)
}
