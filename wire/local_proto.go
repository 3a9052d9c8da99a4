// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/luxfi/choreo/local"
	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
)

// EncodeLocalCanonical produces the "optional canonical serialised local
// type": a local.Node lowered to a google.protobuf.Struct
// (via structpb, since the node tree is a recursive sum type rather
// than a fixed protobuf message set) and marshalled with proto's
// canonical deterministic wire format, suitable for cross-process
// consumption.
func EncodeLocalCanonical(n local.Node) ([]byte, error) {
	m := localNodeToMap(n)
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("wire: local node to struct: %w", err)
	}
	opts := proto.MarshalOptions{Deterministic: true}
	return opts.Marshal(s)
}

// DecodeLocalCanonical reverses EncodeLocalCanonical.
func DecodeLocalCanonical(data []byte) (local.Node, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("wire: decode struct: %w", err)
	}
	return localNodeFromMap(s.AsMap())
}

func roleToMap(r role.Role) map[string]any {
	m := map[string]any{"name": r.Name}
	if r.HasIndex() {
		m["has_index"] = true
		m["index"] = float64(r.Index())
	}
	if r.Param() != "" {
		m["param"] = r.Param()
	}
	return m
}

func roleFromMap(m map[string]any) role.Role {
	name, _ := m["name"].(string)
	hasIndex, _ := m["has_index"].(bool)
	index, _ := m["index"].(float64)
	param, _ := m["param"].(string)
	switch {
	case hasIndex && param != "":
		return role.IndexedParameterised(name, int(index), param)
	case hasIndex:
		return role.Indexed(name, int(index))
	case param != "":
		return role.Parameterised(name, param)
	default:
		return role.New(name)
	}
}

func msgToMap(m message.Message) map[string]any {
	out := map[string]any{"name": m.Name}
	if !m.Payload.IsZero() {
		out["payload"] = m.Payload.String()
	}
	return out
}

func msgFromMap(m map[string]any) message.Message {
	name, _ := m["name"].(string)
	payload, _ := m["payload"].(string)
	if payload == "" {
		return message.New(name)
	}
	return message.WithPayload(name, payload)
}

func casesToSlice(cases []local.Case) []any {
	out := make([]any, 0, len(cases))
	for _, c := range cases {
		out = append(out, map[string]any{
			"label": c.Label,
			"node":  localNodeToMap(c.Node),
		})
	}
	return out
}

func casesFromSlice(raw any) ([]local.Case, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("wire: cases field is not a list")
	}
	out := make([]local.Case, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("wire: case entry is not an object")
		}
		label, _ := obj["label"].(string)
		nodeRaw, ok := obj["node"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("wire: case %q missing node", label)
		}
		node, err := localNodeFromMap(nodeRaw)
		if err != nil {
			return nil, err
		}
		out = append(out, local.Case{Label: label, Node: node})
	}
	return out, nil
}

func localNodeToMap(n local.Node) map[string]any {
	switch x := n.(type) {
	case local.Send:
		return map[string]any{
			"kind": "send",
			"to":   roleToMap(x.To),
			"msg":  msgToMap(x.Msg),
			"cont": localNodeToMap(x.Cont),
		}

	case local.Receive:
		return map[string]any{
			"kind": "receive",
			"from": roleToMap(x.From),
			"msg":  msgToMap(x.Msg),
			"cont": localNodeToMap(x.Cont),
		}

	case local.Select:
		return map[string]any{
			"kind":  "select",
			"to":    roleToMap(x.To),
			"cases": casesToSlice(x.Cases),
		}

	case local.Branch:
		return map[string]any{
			"kind":  "branch",
			"from":  roleToMap(x.From),
			"cases": casesToSlice(x.Cases),
		}

	case local.LocalChoice:
		return map[string]any{
			"kind":  "local_choice",
			"cases": casesToSlice(x.Cases),
		}

	case local.Loop:
		return map[string]any{
			"kind":      "loop",
			"condition": conditionToMap(x.Condition),
			"body":      localNodeToMap(x.Body),
		}

	case local.Rec:
		return map[string]any{
			"kind":  "rec",
			"label": x.Label,
			"body":  localNodeToMap(x.Body),
		}

	case local.Var:
		return map[string]any{"kind": "var", "label": x.Label}

	case local.End:
		return map[string]any{"kind": "end"}

	default:
		panic(fmt.Sprintf("wire: unhandled local.Node type %T", n))
	}
}

func conditionToMap(c local.LoopCondition) map[string]any {
	switch c.Kind {
	case local.CondCount:
		return map[string]any{"kind": "count", "count": float64(c.Count)}
	case local.CondDecider:
		return map[string]any{"kind": "decider", "decider": roleToMap(c.Decider)}
	case local.CondCustom:
		return map[string]any{"kind": "custom", "custom": c.Custom}
	default:
		return map[string]any{"kind": "none"}
	}
}

func conditionFromMap(m map[string]any) (local.LoopCondition, error) {
	kind, _ := m["kind"].(string)
	switch kind {
	case "count":
		count, _ := m["count"].(float64)
		return local.LoopCondition{Kind: local.CondCount, Count: int(count)}, nil
	case "decider":
		decider, ok := m["decider"].(map[string]any)
		if !ok {
			return local.LoopCondition{}, fmt.Errorf("wire: decider condition missing decider role")
		}
		return local.LoopCondition{Kind: local.CondDecider, Decider: roleFromMap(decider)}, nil
	case "custom":
		custom, _ := m["custom"].(string)
		return local.LoopCondition{Kind: local.CondCustom, Custom: custom}, nil
	case "none", "":
		return local.LoopCondition{}, nil
	default:
		return local.LoopCondition{}, fmt.Errorf("wire: unknown loop condition kind %q", kind)
	}
}

func localNodeFromMap(m map[string]any) (local.Node, error) {
	kind, _ := m["kind"].(string)
	switch kind {
	case "send":
		to, _ := m["to"].(map[string]any)
		msg, _ := m["msg"].(map[string]any)
		cont, _ := m["cont"].(map[string]any)
		contNode, err := localNodeFromMap(cont)
		if err != nil {
			return nil, err
		}
		return local.Send{To: roleFromMap(to), Msg: msgFromMap(msg), Cont: contNode}, nil

	case "receive":
		from, _ := m["from"].(map[string]any)
		msg, _ := m["msg"].(map[string]any)
		cont, _ := m["cont"].(map[string]any)
		contNode, err := localNodeFromMap(cont)
		if err != nil {
			return nil, err
		}
		return local.Receive{From: roleFromMap(from), Msg: msgFromMap(msg), Cont: contNode}, nil

	case "select":
		to, _ := m["to"].(map[string]any)
		cases, err := casesFromSlice(m["cases"])
		if err != nil {
			return nil, err
		}
		return local.Select{To: roleFromMap(to), Cases: cases}, nil

	case "branch":
		from, _ := m["from"].(map[string]any)
		cases, err := casesFromSlice(m["cases"])
		if err != nil {
			return nil, err
		}
		return local.Branch{From: roleFromMap(from), Cases: cases}, nil

	case "local_choice":
		cases, err := casesFromSlice(m["cases"])
		if err != nil {
			return nil, err
		}
		return local.LocalChoice{Cases: cases}, nil

	case "loop":
		cond, _ := m["condition"].(map[string]any)
		body, _ := m["body"].(map[string]any)
		condition, err := conditionFromMap(cond)
		if err != nil {
			return nil, err
		}
		bodyNode, err := localNodeFromMap(body)
		if err != nil {
			return nil, err
		}
		return local.Loop{Condition: condition, Body: bodyNode}, nil

	case "rec":
		label, _ := m["label"].(string)
		body, _ := m["body"].(map[string]any)
		bodyNode, err := localNodeFromMap(body)
		if err != nil {
			return nil, err
		}
		return local.Rec{Label: label, Body: bodyNode}, nil

	case "var":
		label, _ := m["label"].(string)
		return local.Var{Label: label}, nil

	case "end":
		return local.End{}, nil

	default:
		return nil, fmt.Errorf("wire: unknown local node kind %q", kind)
	}
}
