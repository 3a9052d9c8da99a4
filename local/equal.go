// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package local

import "github.com/luxfi/choreo/message"

// Equal reports whether two local types are structurally equal: their
// constructor trees match node-for-node, comparing role identity,
// message name (payload token ignored), branch label
// sets, and loop conditions. This is a syntactic check, not a
// bisimulation; projection's merge rule (package projection) uses it to
// detect when bystander branches can be collapsed to one projection.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Send:
		y, ok := b.(Send)
		return ok && x.To == y.To && message.SameName(x.Msg, y.Msg) && Equal(x.Cont, y.Cont)

	case Receive:
		y, ok := b.(Receive)
		return ok && x.From == y.From && message.SameName(x.Msg, y.Msg) && Equal(x.Cont, y.Cont)

	case Select:
		y, ok := b.(Select)
		return ok && x.To == y.To && casesEqual(x.Cases, y.Cases)

	case Branch:
		y, ok := b.(Branch)
		return ok && x.From == y.From && casesEqual(x.Cases, y.Cases)

	case LocalChoice:
		y, ok := b.(LocalChoice)
		return ok && casesEqual(x.Cases, y.Cases)

	case Loop:
		y, ok := b.(Loop)
		return ok && conditionEqual(x.Condition, y.Condition) && Equal(x.Body, y.Body)

	case Rec:
		y, ok := b.(Rec)
		return ok && x.Label == y.Label && Equal(x.Body, y.Body)

	case Var:
		y, ok := b.(Var)
		return ok && x.Label == y.Label

	case End:
		_, ok := b.(End)
		return ok

	default:
		return false
	}
}

func conditionEqual(a, b LoopCondition) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case CondCount:
		return a.Count == b.Count
	case CondDecider:
		return a.Decider == b.Decider
	case CondCustom:
		return a.Custom == b.Custom
	default:
		return true
	}
}

// casesEqual compares the label sets of two Select/Branch/LocalChoice
// case lists and, for each shared label, the continuations. Labels are
// compared as a set: equality calls for comparing "branch label
// sets", not a specific declaration order.
func casesEqual(a, b []Case) bool {
	if len(a) != len(b) {
		return false
	}
	bm := make(map[string]Node, len(b))
	for _, c := range b {
		bm[c.Label] = c.Node
	}
	for _, c := range a {
		other, ok := bm[c.Label]
		if !ok || !Equal(c.Node, other) {
			return false
		}
	}
	return true
}
