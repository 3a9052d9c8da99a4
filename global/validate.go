// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package global

import (
	"sort"

	"github.com/luxfi/choreo/role"
	"github.com/luxfi/choreo/roleset"
)

// Validate checks a Protocol against invariants V1, V2, V3 (as
// structurally-shallow branch-head-shape uniformity), and V5. V4
// (Parallel conflict-freedom) is checked during
// projection, not here — it is role-specific, and validation is
// role-agnostic.
//
// Validate is a single depth-first pass that fails on the earliest
// violation it encounters; V5 (unused declared roles) can only be
// checked once the whole tree has been walked, so it is reported only
// if no earlier violation was found.
func Validate(p Protocol) error {
	v := &validator{roles: p.Roles, seen: roleset.Set{}, scope: nil}
	if err := v.walk(p.Root); err != nil {
		return err
	}
	return v.checkUnused()
}

type validator struct {
	roles roleset.Set
	seen  roleset.Set
	scope []string // enclosing Rec labels, innermost last
}

func (v *validator) requireDeclared(r role.Role) error {
	if !v.roles.Contains(r) {
		return &ValidationError{Kind: UndefinedRole, Name: r.String()}
	}
	v.seen.Add(r)
	return nil
}

func (v *validator) bound(label string) bool {
	for _, l := range v.scope {
		if l == label {
			return true
		}
	}
	return false
}

func (v *validator) walk(n Node) error {
	switch node := n.(type) {
	case Send:
		if err := v.requireDeclared(node.From); err != nil {
			return err
		}
		if err := v.requireDeclared(node.To); err != nil {
			return err
		}
		return v.walk(node.Cont)

	case Broadcast:
		if err := v.requireDeclared(node.From); err != nil {
			return err
		}
		for _, r := range node.ToAll.List() {
			if err := v.requireDeclared(r); err != nil {
				return err
			}
		}
		return v.walk(node.Cont)

	case Choice:
		if err := v.requireDeclared(node.Decider); err != nil {
			return err
		}
		if err := v.checkUniformHeadShape(node); err != nil {
			return err
		}
		for _, b := range node.Branches {
			if err := v.walk(b.Node); err != nil {
				return err
			}
		}
		return nil

	case Loop:
		if node.Condition.Kind == CondDecider {
			if err := v.requireDeclared(node.Condition.Decider); err != nil {
				return err
			}
		}
		return v.walk(node.Body)

	case Parallel:
		for _, c := range node.Children {
			if err := v.walk(c); err != nil {
				return err
			}
		}
		return nil

	case Rec:
		v.scope = append(v.scope, node.Label)
		err := v.walk(node.Body)
		v.scope = v.scope[:len(v.scope)-1]
		return err

	case Var:
		if !v.bound(node.Label) {
			return &ValidationError{Kind: UnboundVariable, Name: node.Label}
		}
		return nil

	case End:
		return nil

	default:
		return nil
	}
}

// checkUniformHeadShape enforces a decision on mixed-head Choice
// branches: every branch must begin with
// a Send from the decider ("communicated"), or none may
// ("local"). Mixing the two is rejected here as InvalidChoice, rather
// than silently picked one way by projection (see DESIGN.md).
func (v *validator) checkUniformHeadShape(c Choice) error {
	if len(c.Branches) == 0 {
		return nil
	}
	communicated := isCommunicatedHead(c.Branches[0].Node, c.Decider)
	for _, b := range c.Branches[1:] {
		if isCommunicatedHead(b.Node, c.Decider) != communicated {
			return &ValidationError{Kind: InvalidChoice, Name: c.Decider.String()}
		}
	}
	return nil
}

func isCommunicatedHead(n Node, decider role.Role) bool {
	s, ok := n.(Send)
	return ok && s.From == decider
}

func (v *validator) checkUnused() error {
	unused := v.roles.Difference(v.seen).List()
	if len(unused) == 0 {
		return nil
	}
	sort.Slice(unused, func(i, j int) bool { return unused[i].String() < unused[j].String() })
	return &ValidationError{Kind: UnusedRole, Name: unused[0].String()}
}
