// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package projection

import (
	"fmt"
	"testing"

	"github.com/luxfi/choreo/global"
	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
	"github.com/luxfi/choreo/roleset"
)

// ringProtocol builds a synthetic choreography of n roles forwarding a
// single message around a ring once: Role(0) -> Role(1) -> ... ->
// Role(n-1) -> Role(0) -> End.
func ringProtocol(n int) global.Protocol {
	roles := make([]role.Role, n)
	for i := 0; i < n; i++ {
		roles[i] = role.Indexed("Worker", i)
	}

	msg := message.New("Token")
	var root global.Node = global.End{}
	for i := n - 1; i >= 0; i-- {
		from := roles[i]
		to := roles[(i+1)%n]
		root = global.Send{From: from, To: to, Msg: msg, Cont: root}
	}

	return global.Protocol{Roles: roleset.Of(roles...), Root: root}
}

// BenchmarkProjectRing benchmarks projecting one role's local type out
// of rings of increasing size.
func BenchmarkProjectRing(b *testing.B) {
	sizes := []int{10, 100, 1000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Roles_%d", size), func(b *testing.B) {
			p := ringProtocol(size)
			target := role.Indexed("Worker", 0)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Project(p, target); err != nil {
					b.Fatalf("project: %v", err)
				}
			}
		})
	}
}

// BenchmarkProjectAllRoles benchmarks projecting every role's local
// type out of a single mid-sized ring, as a choreography-wide
// compilation step would.
func BenchmarkProjectAllRoles(b *testing.B) {
	const size = 200
	p := ringProtocol(size)
	roles := p.Roles.List()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, r := range roles {
			if _, err := Project(p, r); err != nil {
				b.Fatalf("project: %v", err)
			}
		}
	}
}
