// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package local

import (
	"fmt"
	"sort"
	"strings"
)

// Render returns the canonical textual form of a local type: an
// indented, s-expression-like rendering whose field names match the
// constructor field names. It is deterministic — cases
// are printed in label-sorted order regardless of slice order, so two
// structurally Equal (but differently-ordered) trees render identically.
func Render(n Node) string {
	var sb strings.Builder
	render(&sb, n, 0)
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func render(sb *strings.Builder, n Node, depth int) {
	indent(sb, depth)
	if n == nil {
		sb.WriteString("End\n")
		return
	}
	switch x := n.(type) {
	case Send:
		fmt.Fprintf(sb, "Send(to=%s, msg=%s)\n", x.To, x.Msg)
		render(sb, x.Cont, depth)

	case Receive:
		fmt.Fprintf(sb, "Receive(from=%s, msg=%s)\n", x.From, x.Msg)
		render(sb, x.Cont, depth)

	case Select:
		fmt.Fprintf(sb, "Select(to=%s) {\n", x.To)
		renderCases(sb, x.Cases, depth+1)
		indent(sb, depth)
		sb.WriteString("}\n")

	case Branch:
		fmt.Fprintf(sb, "Branch(from=%s) {\n", x.From)
		renderCases(sb, x.Cases, depth+1)
		indent(sb, depth)
		sb.WriteString("}\n")

	case LocalChoice:
		sb.WriteString("LocalChoice {\n")
		renderCases(sb, x.Cases, depth+1)
		indent(sb, depth)
		sb.WriteString("}\n")

	case Loop:
		fmt.Fprintf(sb, "Loop(condition=%s) {\n", renderCondition(x.Condition))
		render(sb, x.Body, depth+1)
		indent(sb, depth)
		sb.WriteString("}\n")

	case Rec:
		fmt.Fprintf(sb, "Rec(label=%s) {\n", x.Label)
		render(sb, x.Body, depth+1)
		indent(sb, depth)
		sb.WriteString("}\n")

	case Var:
		fmt.Fprintf(sb, "Var(label=%s)\n", x.Label)

	case End:
		sb.WriteString("End\n")

	default:
		fmt.Fprintf(sb, "?%T\n", x)
	}
}

func renderCases(sb *strings.Builder, cases []Case, depth int) {
	sorted := make([]Case, len(cases))
	copy(sorted, cases)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Label < sorted[j].Label })
	for _, c := range sorted {
		indent(sb, depth)
		fmt.Fprintf(sb, "%s:\n", c.Label)
		render(sb, c.Node, depth+1)
	}
}

func renderCondition(c LoopCondition) string {
	switch c.Kind {
	case CondCount:
		return fmt.Sprintf("count(%d)", c.Count)
	case CondDecider:
		return fmt.Sprintf("decider(%s)", c.Decider)
	case CondCustom:
		return fmt.Sprintf("custom(%s)", c.Custom)
	default:
		return "none"
	}
}
