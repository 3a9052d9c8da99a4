// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
)

var (
	alice = role.New("Alice")
	bob   = role.New("Bob")
)

func newWiredPair() (*Endpoint, *Endpoint, *InMemoryHandler) {
	net := NewNetwork()
	h := NewInMemoryHandler(net)
	aliceEP := NewEndpoint(alice, nil)
	bobEP := NewEndpoint(bob, nil)
	RegisterPeer(aliceEP, bob)
	RegisterPeer(bobEP, alice)
	return aliceEP, bobEP, h
}

// S1 over the in-memory handler.
func TestInMemoryPingPong(t *testing.T) {
	require := require.New(t)
	aliceEP, bobEP, h := newWiredPair()
	ctx := context.Background()

	ping := message.New("Ping")
	pong := message.New("Pong")

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Send(ctx, aliceEP, bob, ping)
	}()

	got, err := h.Recv(ctx, bobEP, alice)
	require.NoError(err)
	require.Equal("Ping", got.Name)
	require.NoError(<-errCh)

	go func() {
		errCh <- h.Send(ctx, bobEP, alice, pong)
	}()
	got, err = h.Recv(ctx, aliceEP, bob)
	require.NoError(err)
	require.Equal("Pong", got.Name)
	require.NoError(<-errCh)

	require.Equal(2, aliceEP.GetMetadata(bob).OperationCount)
	require.Equal(2, bobEP.GetMetadata(alice).OperationCount)
}

// P8: endpoint discipline.
func TestEndpointTakePutDiscipline(t *testing.T) {
	require := require.New(t)
	aliceEP, _, h := newWiredPair()
	ctx := context.Background()

	require.True(aliceEP.HasChannel(bob))
	require.NoError(h.Send(ctx, aliceEP, bob, message.New("Ping")))
	require.True(aliceEP.HasChannel(bob))
	require.Equal(1, aliceEP.GetMetadata(bob).OperationCount)
}

func TestTakeChannelTwiceIsDefect(t *testing.T) {
	require := require.New(t)
	aliceEP, _, _ := newWiredPair()

	_, err := aliceEP.TakeChannel(bob)
	require.NoError(err)

	_, err = aliceEP.TakeChannel(bob)
	require.Error(err)
	var cerr *ChoreographyError
	require.ErrorAs(err, &cerr)
	require.Equal(ProtocolViolation, cerr.Kind)
}

func TestMissingChannelIsTransportError(t *testing.T) {
	require := require.New(t)
	ep := NewEndpoint(alice, nil)
	_, err := ep.TakeChannel(bob)
	require.Error(err)
	var cerr *ChoreographyError
	require.ErrorAs(err, &cerr)
	require.Equal(Transport, cerr.Kind)
}

// S7: timeout.
func TestRecvTimesOutWhenPeerNeverSends(t *testing.T) {
	require := require.New(t)
	_, bobEP, h := newWiredPair()

	err := h.WithTimeout(context.Background(), bobEP, alice, 20*time.Millisecond, func(ctx context.Context) error {
		_, err := h.Recv(ctx, bobEP, alice)
		return err
	})

	require.Error(err)
	var cerr *ChoreographyError
	require.ErrorAs(err, &cerr)
	require.Equal(Timeout, cerr.Kind)
	require.True(bobEP.GetMetadata(alice).Broken)
}

func TestBroadcastSendsToEveryRecipient(t *testing.T) {
	require := require.New(t)
	carol := role.New("Carol")

	net := NewNetwork()
	h := NewInMemoryHandler(net)
	aliceEP := NewEndpoint(alice, nil)
	bobEP := NewEndpoint(bob, nil)
	carolEP := NewEndpoint(carol, nil)
	RegisterPeer(aliceEP, bob)
	RegisterPeer(aliceEP, carol)
	RegisterPeer(bobEP, alice)
	RegisterPeer(carolEP, alice)

	ctx := context.Background()
	msg := message.New("Msg")

	done := make(chan error, 1)
	go func() { done <- h.Broadcast(ctx, aliceEP, []role.Role{bob, carol}, msg) }()

	gotBob, err := h.Recv(ctx, bobEP, alice)
	require.NoError(err)
	require.Equal("Msg", gotBob.Name)

	gotCarol, err := h.Recv(ctx, carolEP, alice)
	require.NoError(err)
	require.Equal("Msg", gotCarol.Name)

	require.NoError(<-done)
}
