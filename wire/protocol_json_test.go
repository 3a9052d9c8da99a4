// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/choreo/global"
	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
	"github.com/luxfi/choreo/roleset"
)

func TestMarshalUnmarshalProtocolRoundTrip(t *testing.T) {
	require := require.New(t)

	alice := role.New("Alice")
	bob := role.New("Bob")
	carol := role.Indexed("Worker", 2)

	toAll := roleset.Of(bob, carol)
	roles := roleset.Of(alice, bob, carol)

	p := global.Protocol{
		Roles: roles,
		Root: global.Choice{
			Decider: alice,
			Branches: []global.ChoiceBranch{
				{
					Label: "accept",
					Node: global.Broadcast{
						From:  alice,
						ToAll: toAll,
						Msg:   message.New("Accepted"),
						Cont: global.Loop{
							Condition: global.Count(3),
							Body: global.Send{
								From: bob,
								To:   carol,
								Msg:  message.WithPayload("Tick", "int32"),
								Cont: global.End{},
							},
						},
					},
				},
				{
					Label: "reject",
					Node:  global.End{},
				},
			},
		},
	}

	data, err := MarshalProtocol(p)
	require.NoError(err)

	got, err := UnmarshalProtocol(data)
	require.NoError(err)

	require.True(got.Roles.Equals(p.Roles))

	choice, ok := got.Root.(global.Choice)
	require.True(ok)
	require.Equal(alice, choice.Decider)
	require.Len(choice.Branches, 2)

	broadcast, ok := choice.Branches[0].Node.(global.Broadcast)
	require.True(ok)
	require.Equal(alice, broadcast.From)
	require.True(broadcast.ToAll.Equals(toAll))
	require.Equal("Accepted", broadcast.Msg.Name)

	loop, ok := broadcast.Cont.(global.Loop)
	require.True(ok)
	require.Equal(global.CondCount, loop.Condition.Kind)
	require.Equal(3, loop.Condition.Count)

	send, ok := loop.Body.(global.Send)
	require.True(ok)
	require.Equal(bob, send.From)
	require.Equal(carol, send.To)
	require.Equal("int32", send.Msg.Payload.String())
}

func TestUnmarshalProtocolRejectsUnknownNodeKind(t *testing.T) {
	require := require.New(t)
	_, err := UnmarshalProtocol([]byte(`{"roles":[{"name":"Alice"}],"root":{"kind":"bogus"}}`))
	require.Error(err)
}
