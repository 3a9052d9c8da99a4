// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
	"github.com/luxfi/choreo/runtime"
	"github.com/luxfi/choreo/runtime/runtimemock"
)

var (
	alice = role.New("Alice")
	bob   = role.New("Bob")
	carol = role.New("Carol")
)

func TestIntrospectCountsAndFlags(t *testing.T) {
	require := require.New(t)

	p := Send{
		Peer:    bob,
		Payload: message.New("Ping"),
		Cont: Recv{
			Peer: bob,
			Cont: WithTimeout{
				Peer:     bob,
				Duration: time.Second,
				Body: Send{
					Peer:    bob,
					Payload: message.New("Ack"),
					Cont:    End{},
				},
				Cont: End{},
			},
		},
	}

	require.Equal(2, SendCount(p))
	require.Equal(1, RecvCount(p))
	require.True(HasTimeouts(p))
	require.False(HasParallel(p))
}

func TestIntrospectParallel(t *testing.T) {
	require := require.New(t)

	p := Parallel{
		Children: []Step{
			Send{Peer: bob, Payload: message.New("A"), Cont: End{}},
			Send{Peer: carol, Payload: message.New("B"), Cont: End{}},
		},
		Cont: End{},
	}

	require.True(HasParallel(p))
	require.Equal(2, SendCount(p))
}

func TestInterpretLinearProgramAgainstInMemoryHandler(t *testing.T) {
	require := require.New(t)
	net := runtime.NewNetwork()

	aliceEP := runtime.NewEndpoint(alice, nil)
	bobEP := runtime.NewEndpoint(bob, nil)
	runtime.RegisterPeer(aliceEP, bob)
	runtime.RegisterPeer(bobEP, alice)

	h := runtime.NewInMemoryHandler(net)

	aliceProgram := Send{
		Peer:    bob,
		Payload: message.New("Ping"),
		Cont: Recv{
			Peer: bob,
			Cont: End{},
		},
	}
	bobProgram := Recv{
		Peer: alice,
		Cont: Send{
			Peer:    alice,
			Payload: message.New("Pong"),
			Cont:    End{},
		},
	}

	done := make(chan error, 1)
	go func() {
		done <- Interpret(context.Background(), h, bobEP, bobProgram)
	}()

	require.NoError(Interpret(context.Background(), h, aliceEP, aliceProgram))
	require.NoError(<-done)
}

func TestInterpretParallelRunsDisjointPeersConcurrently(t *testing.T) {
	require := require.New(t)
	net := runtime.NewNetwork()

	aliceEP := runtime.NewEndpoint(alice, nil)
	bobEP := runtime.NewEndpoint(bob, nil)
	carolEP := runtime.NewEndpoint(carol, nil)
	runtime.RegisterPeer(aliceEP, bob)
	runtime.RegisterPeer(aliceEP, carol)
	runtime.RegisterPeer(bobEP, alice)
	runtime.RegisterPeer(carolEP, alice)

	h := runtime.NewInMemoryHandler(net)

	alicesProgram := Parallel{
		Children: []Step{
			Send{Peer: bob, Payload: message.New("A"), Cont: End{}},
			Send{Peer: carol, Payload: message.New("B"), Cont: End{}},
		},
		Cont: End{},
	}

	bobDone := make(chan error, 1)
	carolDone := make(chan error, 1)
	go func() { bobDone <- Interpret(context.Background(), h, bobEP, Recv{Peer: alice, Cont: End{}}) }()
	go func() { carolDone <- Interpret(context.Background(), h, carolEP, Recv{Peer: alice, Cont: End{}}) }()

	require.NoError(Interpret(context.Background(), h, aliceEP, alicesProgram))
	require.NoError(<-bobDone)
	require.NoError(<-carolDone)
}

func TestInterpretStopsOnFirstError(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	h := runtimemock.NewHandler(ctrl)
	ep := runtime.NewEndpoint(alice, nil)

	boom := &runtime.ChoreographyError{Kind: runtime.Transport, Reason: "boom"}
	h.EXPECT().Send(gomock.Any(), ep, bob, message.New("Ping")).Return(boom)

	p := Send{
		Peer:    bob,
		Payload: message.New("Ping"),
		Cont: Send{
			Peer:    bob,
			Payload: message.New("ShouldNeverSend"),
			Cont:    End{},
		},
	}

	err := Interpret(context.Background(), h, ep, p)
	require.ErrorIs(err, boom)
}
