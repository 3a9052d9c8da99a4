// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"encoding/json"
	"fmt"

	"github.com/luxfi/choreo/global"
	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
	"github.com/luxfi/choreo/roleset"
)

// protocolFile is the on-disk shape a protocol file decodes to: a
// declared role list plus a tagged-union node tree. Field names match
// global's own constructor field names.
type protocolFile struct {
	Roles []roleJSON `json:"roles"`
	Root  nodeJSON   `json:"root"`
}

type roleJSON struct {
	Name     string `json:"name"`
	HasIndex bool   `json:"has_index,omitempty"`
	Index    int    `json:"index,omitempty"`
	Param    string `json:"param,omitempty"`
}

type msgJSON struct {
	Name    string `json:"name"`
	Payload string `json:"payload,omitempty"`
}

// nodeJSON is the tagged-union wire shape of a global.Node. Kind selects
// which fields are populated; only the fields that kind uses are set.
type nodeJSON struct {
	Kind string `json:"kind"`

	From  *roleJSON  `json:"from,omitempty"`
	To    *roleJSON  `json:"to,omitempty"`
	ToAll []roleJSON `json:"to_all,omitempty"`
	Msg   *msgJSON   `json:"msg,omitempty"`
	Cont  *nodeJSON  `json:"cont,omitempty"`

	Decider  *roleJSON         `json:"decider,omitempty"`
	Branches []choiceBranchDTO `json:"branches,omitempty"`

	Condition *conditionDTO `json:"condition,omitempty"`
	Body      *nodeJSON     `json:"body,omitempty"`

	Children []nodeJSON `json:"children,omitempty"`

	Label string `json:"label,omitempty"`
}

type choiceBranchDTO struct {
	Label string   `json:"label"`
	Node  nodeJSON `json:"node"`
}

type conditionDTO struct {
	Kind    string    `json:"kind"`
	Count   int       `json:"count,omitempty"`
	Decider *roleJSON `json:"decider,omitempty"`
	Custom  string    `json:"custom,omitempty"`
}

func roleToJSON(r role.Role) roleJSON {
	j := roleJSON{Name: r.Name, Param: r.Param()}
	if r.HasIndex() {
		j.Index = r.Index()
		j.HasIndex = true
	}
	return j
}

func roleFromJSON(r roleJSON) role.Role {
	switch {
	case r.HasIndex && r.Param != "":
		return role.IndexedParameterised(r.Name, r.Index, r.Param)
	case r.HasIndex:
		return role.Indexed(r.Name, r.Index)
	case r.Param != "":
		return role.Parameterised(r.Name, r.Param)
	default:
		return role.New(r.Name)
	}
}

func msgToJSON(m message.Message) msgJSON {
	return msgJSON{Name: m.Name, Payload: m.Payload.String()}
}

func msgFromJSON(m msgJSON) message.Message {
	if m.Payload == "" {
		return message.New(m.Name)
	}
	return message.WithPayload(m.Name, m.Payload)
}

func nodeToJSON(n global.Node) nodeJSON {
	switch x := n.(type) {
	case global.Send:
		cont := nodeToJSON(x.Cont)
		from, to := roleToJSON(x.From), roleToJSON(x.To)
		msg := msgToJSON(x.Msg)
		return nodeJSON{Kind: "send", From: &from, To: &to, Msg: &msg, Cont: &cont}

	case global.Broadcast:
		cont := nodeToJSON(x.Cont)
		from := roleToJSON(x.From)
		msg := msgToJSON(x.Msg)
		toAll := make([]roleJSON, 0, x.ToAll.Len())
		for _, r := range x.ToAll.List() {
			toAll = append(toAll, roleToJSON(r))
		}
		return nodeJSON{Kind: "broadcast", From: &from, ToAll: toAll, Msg: &msg, Cont: &cont}

	case global.Choice:
		decider := roleToJSON(x.Decider)
		branches := make([]choiceBranchDTO, 0, len(x.Branches))
		for _, b := range x.Branches {
			branches = append(branches, choiceBranchDTO{Label: b.Label, Node: nodeToJSON(b.Node)})
		}
		return nodeJSON{Kind: "choice", Decider: &decider, Branches: branches}

	case global.Loop:
		body := nodeToJSON(x.Body)
		cond := conditionToJSON(x.Condition)
		return nodeJSON{Kind: "loop", Condition: &cond, Body: &body}

	case global.Parallel:
		children := make([]nodeJSON, 0, len(x.Children))
		for _, c := range x.Children {
			children = append(children, nodeToJSON(c))
		}
		return nodeJSON{Kind: "parallel", Children: children}

	case global.Rec:
		body := nodeToJSON(x.Body)
		return nodeJSON{Kind: "rec", Label: x.Label, Body: &body}

	case global.Var:
		return nodeJSON{Kind: "var", Label: x.Label}

	case global.End:
		return nodeJSON{Kind: "end"}

	default:
		panic(fmt.Sprintf("wire: unhandled global.Node type %T", n))
	}
}

func conditionToJSON(c global.LoopCondition) conditionDTO {
	switch c.Kind {
	case global.CondCount:
		return conditionDTO{Kind: "count", Count: c.Count}
	case global.CondDecider:
		decider := roleToJSON(c.Decider)
		return conditionDTO{Kind: "decider", Decider: &decider}
	case global.CondCustom:
		return conditionDTO{Kind: "custom", Custom: c.Custom}
	default:
		return conditionDTO{Kind: "none"}
	}
}

func nodeFromJSON(n nodeJSON) (global.Node, error) {
	switch n.Kind {
	case "send":
		if n.From == nil || n.To == nil || n.Msg == nil || n.Cont == nil {
			return nil, fmt.Errorf("wire: send node missing a required field")
		}
		cont, err := nodeFromJSON(*n.Cont)
		if err != nil {
			return nil, err
		}
		return global.Send{From: roleFromJSON(*n.From), To: roleFromJSON(*n.To), Msg: msgFromJSON(*n.Msg), Cont: cont}, nil

	case "broadcast":
		if n.From == nil || n.Msg == nil || n.Cont == nil {
			return nil, fmt.Errorf("wire: broadcast node missing a required field")
		}
		cont, err := nodeFromJSON(*n.Cont)
		if err != nil {
			return nil, err
		}
		toAll := roleset.Of()
		for _, r := range n.ToAll {
			toAll.Add(roleFromJSON(r))
		}
		return global.Broadcast{From: roleFromJSON(*n.From), ToAll: toAll, Msg: msgFromJSON(*n.Msg), Cont: cont}, nil

	case "choice":
		if n.Decider == nil {
			return nil, fmt.Errorf("wire: choice node missing decider")
		}
		branches := make([]global.ChoiceBranch, 0, len(n.Branches))
		for _, b := range n.Branches {
			node, err := nodeFromJSON(b.Node)
			if err != nil {
				return nil, err
			}
			branches = append(branches, global.ChoiceBranch{Label: b.Label, Node: node})
		}
		return global.Choice{Decider: roleFromJSON(*n.Decider), Branches: branches}, nil

	case "loop":
		if n.Condition == nil || n.Body == nil {
			return nil, fmt.Errorf("wire: loop node missing condition or body")
		}
		body, err := nodeFromJSON(*n.Body)
		if err != nil {
			return nil, err
		}
		cond, err := conditionFromJSON(*n.Condition)
		if err != nil {
			return nil, err
		}
		return global.Loop{Condition: cond, Body: body}, nil

	case "parallel":
		children := make([]global.Node, 0, len(n.Children))
		for _, c := range n.Children {
			child, err := nodeFromJSON(c)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return global.Parallel{Children: children}, nil

	case "rec":
		if n.Body == nil {
			return nil, fmt.Errorf("wire: rec node missing body")
		}
		body, err := nodeFromJSON(*n.Body)
		if err != nil {
			return nil, err
		}
		return global.Rec{Label: n.Label, Body: body}, nil

	case "var":
		return global.Var{Label: n.Label}, nil

	case "end":
		return global.End{}, nil

	default:
		return nil, fmt.Errorf("wire: unknown node kind %q", n.Kind)
	}
}

func conditionFromJSON(c conditionDTO) (global.LoopCondition, error) {
	switch c.Kind {
	case "count":
		return global.Count(c.Count), nil
	case "decider":
		if c.Decider == nil {
			return global.LoopCondition{}, fmt.Errorf("wire: decider condition missing decider role")
		}
		return global.DecidedBy(roleFromJSON(*c.Decider)), nil
	case "custom":
		return global.CustomCondition(c.Custom), nil
	case "none", "":
		return global.LoopCondition{}, nil
	default:
		return global.LoopCondition{}, fmt.Errorf("wire: unknown loop condition kind %q", c.Kind)
	}
}

// MarshalProtocol encodes p as the CLI's canonical JSON protocol-file
// format.
func MarshalProtocol(p global.Protocol) ([]byte, error) {
	roles := make([]roleJSON, 0, p.Roles.Len())
	for _, r := range p.Roles.List() {
		roles = append(roles, roleToJSON(r))
	}
	return json.MarshalIndent(protocolFile{Roles: roles, Root: nodeToJSON(p.Root)}, "", "  ")
}

// UnmarshalProtocol decodes a protocol file written by MarshalProtocol.
func UnmarshalProtocol(data []byte) (global.Protocol, error) {
	var pf protocolFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return global.Protocol{}, fmt.Errorf("wire: decode protocol file: %w", err)
	}
	roles := roleset.Of()
	for _, r := range pf.Roles {
		roles.Add(roleFromJSON(r))
	}
	root, err := nodeFromJSON(pf.Root)
	if err != nil {
		return global.Protocol{}, err
	}
	return global.Protocol{Roles: roles, Root: root}, nil
}
