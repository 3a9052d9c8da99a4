// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package local

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderIsOrderIndependent(t *testing.T) {
	require := require.New(t)

	a := Branch{From: alice, Cases: []Case{
		{Label: "accept", Node: End{}},
		{Label: "reject", Node: End{}},
	}}
	b := Branch{From: alice, Cases: []Case{
		{Label: "reject", Node: End{}},
		{Label: "accept", Node: End{}},
	}}
	require.Equal(Render(a), Render(b))
}

func TestRenderContainsFieldNames(t *testing.T) {
	require := require.New(t)

	out := Render(Send{To: bob, Msg: ping, Cont: Receive{From: bob, Msg: ping, Cont: End{}}})
	require.True(strings.Contains(out, "Send(to=Bob"))
	require.True(strings.Contains(out, "Receive(from=Bob"))
}
