// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package projection

import (
	"github.com/luxfi/choreo/global"
	"github.com/luxfi/choreo/local"
	"github.com/luxfi/choreo/role"
)

func projectChoice(node global.Choice, r role.Role, scope []string) (local.Node, error) {
	communicated := isCommunicatedChoice(node)

	switch {
	case r == node.Decider && communicated:
		return projectDeciderCommunicated(node, r, scope)
	case r == node.Decider:
		return projectDeciderLocal(node, r, scope)
	case receivesChoiceHead(node, r):
		return projectBranchReceiver(node, r, scope)
	default:
		return projectBystander(node, r, scope)
	}
}

func isCommunicatedChoice(node global.Choice) bool {
	for _, b := range node.Branches {
		s, ok := b.Node.(global.Send)
		if !ok || s.From != node.Decider {
			return false
		}
	}
	return len(node.Branches) > 0
}

func receivesChoiceHead(node global.Choice, r role.Role) bool {
	for _, b := range node.Branches {
		if s, ok := b.Node.(global.Send); ok && s.From == node.Decider && s.To == r {
			return true
		}
	}
	return false
}

// projectDeciderCommunicated absorbs the head Send into a Select: the
// label encodes the message, and every branch must target the same
// recipient or this is NonParticipantChoice.
func projectDeciderCommunicated(node global.Choice, r role.Role, scope []string) (local.Node, error) {
	var recipient role.Role
	cases := make([]local.Case, 0, len(node.Branches))
	for i, b := range node.Branches {
		send, ok := b.Node.(global.Send)
		if !ok {
			return nil, &Error{Kind: NonParticipantChoice, Detail: node.Decider.String()}
		}
		if i == 0 {
			recipient = send.To
		} else if send.To != recipient {
			return nil, &Error{Kind: NonParticipantChoice, Detail: node.Decider.String()}
		}
		cont, err := projectNode(send.Cont, r, scope)
		if err != nil {
			return nil, err
		}
		cases = append(cases, local.Case{Label: b.Label, Node: cont})
	}
	return local.Select{To: recipient, Cases: cases}, nil
}

func projectDeciderLocal(node global.Choice, r role.Role, scope []string) (local.Node, error) {
	cases := make([]local.Case, 0, len(node.Branches))
	for _, b := range node.Branches {
		proj, err := projectNode(b.Node, r, scope)
		if err != nil {
			return nil, err
		}
		cases = append(cases, local.Case{Label: b.Label, Node: proj})
	}
	return local.LocalChoice{Cases: cases}, nil
}

func projectBranchReceiver(node global.Choice, r role.Role, scope []string) (local.Node, error) {
	cases := make([]local.Case, 0, len(node.Branches))
	for _, b := range node.Branches {
		proj, err := projectNode(b.Node, r, scope)
		if err != nil {
			return nil, err
		}
		cases = append(cases, local.Case{Label: b.Label, Node: proj})
	}
	return local.Branch{From: node.Decider, Cases: cases}, nil
}

// projectBystander computes every branch's projection for a role that
// is not the decider and does not receive the head send of any branch,
// then merges them. The merge is conservative: equal
// projections collapse to one; otherwise the first non-End branch wins.
// Callers wanting the full merge-condition guarantee should ensure V3
// holds on the source protocol.
func projectBystander(node global.Choice, r role.Role, scope []string) (local.Node, error) {
	projections := make([]local.Node, 0, len(node.Branches))
	for _, b := range node.Branches {
		proj, err := projectNode(b.Node, r, scope)
		if err != nil {
			return nil, err
		}
		projections = append(projections, proj)
	}
	return mergeBystander(projections), nil
}

func mergeBystander(projections []local.Node) local.Node {
	if len(projections) == 0 {
		return local.End{}
	}
	allEqual := true
	for _, p := range projections[1:] {
		if !local.Equal(projections[0], p) {
			allEqual = false
			break
		}
	}
	if allEqual {
		return projections[0]
	}
	for _, p := range projections {
		if !isEnd(p) {
			return p
		}
	}
	return local.End{}
}
