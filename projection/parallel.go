// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package projection

import (
	"github.com/luxfi/choreo/global"
	"github.com/luxfi/choreo/local"
	"github.com/luxfi/choreo/role"
)

func projectParallel(node global.Parallel, r role.Role, scope []string) (local.Node, error) {
	survivors := make([]local.Node, 0, len(node.Children))
	for _, c := range node.Children {
		proj, err := projectNode(c, r, scope)
		if err != nil {
			return nil, err
		}
		if isEnd(proj) {
			continue
		}
		survivors = append(survivors, proj)
	}

	switch len(survivors) {
	case 0:
		return local.End{}, nil
	case 1:
		return survivors[0], nil
	default:
		if err := checkParallelConflict(survivors); err != nil {
			return nil, err
		}
		return interleave(survivors), nil
	}
}

type operationKind int

const (
	opSend operationKind = iota
	opRecv
	opSelect
	opBranch
)

// firstOperationPeer finds the peer of a survivor's first communication
// operation, unwrapping Loop/Rec binders (which carry no peer of their
// own) to look at the operation they guard. Var and LocalChoice have no
// single determinable peer and are reported as "no peer" — conflict
// detection is conservative and only flags operations it can resolve to
// one peer.
func firstOperationPeer(n local.Node) (operationKind, role.Role, bool) {
	switch x := n.(type) {
	case local.Send:
		return opSend, x.To, true
	case local.Receive:
		return opRecv, x.From, true
	case local.Select:
		return opSelect, x.To, true
	case local.Branch:
		return opBranch, x.From, true
	case local.Loop:
		return firstOperationPeer(x.Body)
	case local.Rec:
		return firstOperationPeer(x.Body)
	default:
		return 0, role.Role{}, false
	}
}

// checkParallelConflict enforces V4: no two surviving children may both
// send to, or both receive from, or both select-to/branch-from the same
// peer as their first operation.
func checkParallelConflict(survivors []local.Node) error {
	type key struct {
		kind operationKind
		peer role.Role
	}
	seen := make(map[key]bool, len(survivors))
	for _, s := range survivors {
		kind, peer, ok := firstOperationPeer(s)
		if !ok {
			continue
		}
		k := key{kind, peer}
		if seen[k] {
			return &Error{Kind: InconsistentParallel, Detail: peer.String()}
		}
		seen[k] = true
	}
	return nil
}

// interleave folds survivors right-to-left with appendContinuation.
// Order within one interleaving carries no semantic meaning; any valid
// linearisation works, so folding right-to-left is an arbitrary but
// deterministic choice.
func interleave(survivors []local.Node) local.Node {
	result := survivors[len(survivors)-1]
	for i := len(survivors) - 2; i >= 0; i-- {
		result = appendContinuation(survivors[i], result)
	}
	return result
}

// appendContinuation appends b to the tail of a, recursively replacing
// any End inside Send/Receive/Select/Branch/LocalChoice chains. It does
// not reach into Loop/Rec/Var — those terminate the chain for append
// purposes, matching the narrower "Send/Receive chains" scope this
// helper targets.
func appendContinuation(a, b local.Node) local.Node {
	switch x := a.(type) {
	case local.Send:
		return local.Send{To: x.To, Msg: x.Msg, Cont: appendContinuation(x.Cont, b)}
	case local.Receive:
		return local.Receive{From: x.From, Msg: x.Msg, Cont: appendContinuation(x.Cont, b)}
	case local.Select:
		return local.Select{To: x.To, Cases: appendCases(x.Cases, b)}
	case local.Branch:
		return local.Branch{From: x.From, Cases: appendCases(x.Cases, b)}
	case local.LocalChoice:
		return local.LocalChoice{Cases: appendCases(x.Cases, b)}
	case local.End:
		return b
	default:
		return a
	}
}

func appendCases(cases []local.Case, b local.Node) []local.Case {
	out := make([]local.Case, len(cases))
	for i, c := range cases {
		out[i] = local.Case{Label: c.Label, Node: appendContinuation(c.Node, b)}
	}
	return out
}
