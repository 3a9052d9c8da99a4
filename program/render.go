// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"fmt"
	"sort"
	"strings"
)

// Render returns a Step tree's textual form, one line per step, in the
// same indented style package local uses for its own trees.
func Render(step Step) string {
	var sb strings.Builder
	render(&sb, step, 0)
	return sb.String()
}

func render(sb *strings.Builder, step Step, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if step == nil {
		sb.WriteString("End\n")
		return
	}
	switch s := step.(type) {
	case Send:
		fmt.Fprintf(sb, "Send(peer=%s, payload=%s)\n", s.Peer, s.Payload)
		render(sb, s.Cont, depth)

	case Recv:
		fmt.Fprintf(sb, "Recv(peer=%s, type=%s)\n", s.Peer, s.TypeTag)
		render(sb, s.Cont, depth)

	case Choose:
		fmt.Fprintf(sb, "Choose(peer=%s, label=%s)\n", s.Peer, s.Label)
		render(sb, s.Cont, depth)

	case Offer:
		fmt.Fprintf(sb, "Offer(peer=%s) {\n", s.Peer)
		labels := make([]string, 0, len(s.Cases))
		for label := range s.Cases {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			sb.WriteString(strings.Repeat("  ", depth+1))
			fmt.Fprintf(sb, "%s:\n", label)
			render(sb, s.Cases[label], depth+2)
		}
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("}\n")

	case Parallel:
		sb.WriteString("Parallel {\n")
		for _, child := range s.Children {
			render(sb, child, depth+1)
		}
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("}\n")
		render(sb, s.Cont, depth)

	case WithTimeout:
		fmt.Fprintf(sb, "WithTimeout(peer=%s, duration=%s) {\n", s.Peer, s.Duration)
		render(sb, s.Body, depth+1)
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("}\n")
		render(sb, s.Cont, depth)

	case End:
		sb.WriteString("End\n")

	default:
		fmt.Fprintf(sb, "?%T\n", s)
	}
}
