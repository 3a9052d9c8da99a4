// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package global

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
	"github.com/luxfi/choreo/roleset"
)

var (
	alice = role.New("Alice")
	bob   = role.New("Bob")
	carol = role.New("Carol")

	ping = message.New("Ping")
	pong = message.New("Pong")
)

func TestValidatePingPongOK(t *testing.T) {
	require := require.New(t)

	p := Protocol{
		Roles: roleset.Of(alice, bob),
		Root: Send{From: alice, To: bob, Msg: ping, Cont: Send{
			From: bob, To: alice, Msg: pong, Cont: End{},
		}},
	}
	require.NoError(Validate(p))
}

// S5: a role referenced but not declared is UndefinedRole.
func TestValidateUndefinedRole(t *testing.T) {
	require := require.New(t)

	charlie := role.New("Charlie")
	p := Protocol{
		Roles: roleset.Of(alice),
		Root:  Send{From: alice, To: charlie, Msg: ping, Cont: End{}},
	}

	err := Validate(p)
	var verr *ValidationError
	require.True(errors.As(err, &verr))
	require.Equal(UndefinedRole, verr.Kind)
	require.Equal("Charlie", verr.Name)
}

func TestValidateUnusedRole(t *testing.T) {
	require := require.New(t)

	p := Protocol{
		Roles: roleset.Of(alice, bob, carol),
		Root:  Send{From: alice, To: bob, Msg: ping, Cont: End{}},
	}

	err := Validate(p)
	var verr *ValidationError
	require.True(errors.As(err, &verr))
	require.Equal(UnusedRole, verr.Kind)
	require.Equal("Carol", verr.Name)
}

func TestValidateUnboundVariable(t *testing.T) {
	require := require.New(t)

	p := Protocol{
		Roles: roleset.Of(alice, bob),
		Root:  Send{From: alice, To: bob, Msg: ping, Cont: Var{Label: "loop"}},
	}

	err := Validate(p)
	var verr *ValidationError
	require.True(errors.As(err, &verr))
	require.Equal(UnboundVariable, verr.Kind)
	require.Equal("loop", verr.Name)
}

func TestValidateBoundVariableOK(t *testing.T) {
	require := require.New(t)

	p := Protocol{
		Roles: roleset.Of(alice, bob),
		Root: Rec{Label: "loop", Body: Send{
			From: alice, To: bob, Msg: ping, Cont: Var{Label: "loop"},
		}},
	}
	require.NoError(Validate(p))
}

// S4-shaped: communicated choice, uniform head shape, OK.
func TestValidateCommunicatedChoiceOK(t *testing.T) {
	require := require.New(t)

	p := Protocol{
		Roles: roleset.Of(alice, bob),
		Root: Choice{
			Decider: alice,
			Branches: []ChoiceBranch{
				{Label: "accept", Node: Send{From: alice, To: bob, Msg: message.New("accept_msg"), Cont: End{}}},
				{Label: "reject", Node: Send{From: alice, To: bob, Msg: message.New("reject_msg"), Cont: End{}}},
			},
		},
	}
	require.NoError(Validate(p))
}

func TestValidateMixedHeadChoiceRejected(t *testing.T) {
	require := require.New(t)

	p := Protocol{
		Roles: roleset.Of(alice, bob),
		Root: Choice{
			Decider: alice,
			Branches: []ChoiceBranch{
				{Label: "accept", Node: Send{From: alice, To: bob, Msg: message.New("accept_msg"), Cont: End{}}},
				{Label: "reject", Node: End{}},
			},
		},
	}

	err := Validate(p)
	var verr *ValidationError
	require.True(errors.As(err, &verr))
	require.Equal(InvalidChoice, verr.Kind)
	require.Equal("Alice", verr.Name)
}

func TestValidateLocalChoiceUniformOK(t *testing.T) {
	require := require.New(t)

	p := Protocol{
		Roles: roleset.Of(alice, bob),
		Root: Choice{
			Decider: alice,
			Branches: []ChoiceBranch{
				{Label: "fast", Node: Send{From: bob, To: alice, Msg: ping, Cont: End{}}},
				{Label: "slow", Node: End{}},
			},
		},
	}
	require.NoError(Validate(p))
}
