// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/choreo/global"
	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
	"github.com/luxfi/choreo/roleset"
)

var (
	alice = role.New("Alice")
	bob   = role.New("Bob")
	carol = role.New("Carol")

	ping = message.New("Ping")
)

func TestAnalyzePingPongProgress(t *testing.T) {
	require := require.New(t)

	p := global.Protocol{
		Roles: roleset.Of(alice, bob),
		Root: global.Send{From: alice, To: bob, Msg: ping, Cont: global.Send{
			From: bob, To: alice, Msg: message.New("Pong"), Cont: global.End{},
		}},
	}

	report := Analyze(p)
	require.True(report.Progress)
	require.False(report.HasDeadlockRisk)
	require.Equal(2, report.Participation[alice])
	require.Equal(2, report.Participation[bob])
}

func TestAnalyzeUnreachableRoleNoProgress(t *testing.T) {
	require := require.New(t)

	p := global.Protocol{
		Roles: roleset.Of(alice, bob, carol),
		Root:  global.Send{From: alice, To: bob, Msg: ping, Cont: global.End{}},
	}

	report := Analyze(p)
	require.False(report.Progress)
	require.Equal(0, report.Participation[carol])
}

func TestAnalyzeBoundedLoopNoDeadlockRisk(t *testing.T) {
	require := require.New(t)

	p := global.Protocol{
		Roles: roleset.Of(alice, bob),
		Root: global.Loop{
			Condition: global.Count(3),
			Body:      global.Send{From: alice, To: bob, Msg: ping, Cont: global.End{}},
		},
	}

	report := Analyze(p)
	require.False(report.HasDeadlockRisk)
}

func TestAnalyzeUnconditionalRecIsDeadlockRisk(t *testing.T) {
	require := require.New(t)

	p := global.Protocol{
		Roles: roleset.Of(alice, bob),
		Root: global.Rec{Label: "loop", Body: global.Send{
			From: alice, To: bob, Msg: ping, Cont: global.Var{Label: "loop"},
		}},
	}

	report := Analyze(p)
	require.True(report.HasDeadlockRisk)
}

func TestAnalyzeChoiceWithEscapeIsNotDeadlockRisk(t *testing.T) {
	require := require.New(t)

	p := global.Protocol{
		Roles: roleset.Of(alice, bob),
		Root: global.Rec{Label: "loop", Body: global.Choice{
			Decider: alice,
			Branches: []global.ChoiceBranch{
				{Label: "again", Node: global.Send{From: alice, To: bob, Msg: ping, Cont: global.Var{Label: "loop"}}},
				{Label: "stop", Node: global.Send{From: alice, To: bob, Msg: message.New("Stop"), Cont: global.End{}}},
			},
		}},
	}

	report := Analyze(p)
	require.False(report.HasDeadlockRisk)
}
