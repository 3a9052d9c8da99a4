// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package projection

import (
	"github.com/luxfi/choreo/global"
	"github.com/luxfi/choreo/local"
	"github.com/luxfi/choreo/role"
)

// Project derives role's local type from a global protocol, per the
// exhaustive rules below. Project does not require the
// protocol to have passed global.Validate first — it independently
// detects the recursion-scope and choice-consistency failures it can
// encounter during its own walk — but a validated protocol is
// guaranteed (P1) not to fail here with UnboundVariable.
func Project(p global.Protocol, r role.Role) (local.Node, error) {
	return projectNode(p.Root, r, nil)
}

func projectNode(n global.Node, r role.Role, scope []string) (local.Node, error) {
	switch node := n.(type) {
	case global.Send:
		return projectSend(node, r, scope)

	case global.Broadcast:
		return projectBroadcast(node, r, scope)

	case global.Choice:
		return projectChoice(node, r, scope)

	case global.Loop:
		return projectLoop(node, r, scope)

	case global.Parallel:
		return projectParallel(node, r, scope)

	case global.Rec:
		return projectRec(node, r, scope)

	case global.Var:
		return projectVar(node, scope)

	case global.End, nil:
		return local.End{}, nil

	default:
		return local.End{}, nil
	}
}

func projectSend(node global.Send, r role.Role, scope []string) (local.Node, error) {
	cont, err := projectNode(node.Cont, r, scope)
	if err != nil {
		return nil, err
	}
	switch r {
	case node.From:
		return local.Send{To: node.To, Msg: node.Msg, Cont: cont}, nil
	case node.To:
		return local.Receive{From: node.From, Msg: node.Msg, Cont: cont}, nil
	default:
		return cont, nil
	}
}

func projectBroadcast(node global.Broadcast, r role.Role, scope []string) (local.Node, error) {
	cont, err := projectNode(node.Cont, r, scope)
	if err != nil {
		return nil, err
	}
	if r == node.From {
		recipients := node.ToAll.List()
		result := cont
		for i := len(recipients) - 1; i >= 0; i-- {
			result = local.Send{To: recipients[i], Msg: node.Msg, Cont: result}
		}
		return result, nil
	}
	if node.ToAll.Contains(r) {
		return local.Receive{From: node.From, Msg: node.Msg, Cont: cont}, nil
	}
	return cont, nil
}

func projectLoop(node global.Loop, r role.Role, scope []string) (local.Node, error) {
	body, err := projectNode(node.Body, r, scope)
	if err != nil {
		return nil, err
	}
	if isEnd(body) {
		return local.End{}, nil
	}
	return local.Loop{Condition: convertCondition(node.Condition), Body: body}, nil
}

func projectRec(node global.Rec, r role.Role, scope []string) (local.Node, error) {
	body, err := projectNode(node.Body, r, append(append([]string{}, scope...), node.Label))
	if err != nil {
		return nil, err
	}
	if isEnd(body) {
		return local.End{}, nil
	}
	return local.Rec{Label: node.Label, Body: body}, nil
}

func projectVar(node global.Var, scope []string) (local.Node, error) {
	for _, l := range scope {
		if l == node.Label {
			return local.Var{Label: node.Label}, nil
		}
	}
	return nil, &Error{Kind: UnboundVariable, Detail: node.Label}
}

func isEnd(n local.Node) bool {
	_, ok := n.(local.End)
	return ok
}

func convertCondition(c global.LoopCondition) local.LoopCondition {
	return local.LoopCondition{
		Kind:    local.LoopConditionKind(c.Kind),
		Count:   c.Count,
		Decider: c.Decider,
		Custom:  c.Custom,
	}
}
