// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
)

// Network is the shared queue registry behind InMemoryHandler. Every
// role endpoint participating in one choreography instance must share
// one Network — it, not the handler, is where the unbounded
// per-directed-pair queues live.
type Network struct {
	mu      sync.Mutex
	msgs    map[queueKey]*queue
	labels  map[queueKey]*queue
}

type queueKey struct {
	From, To role.Role
}

// NewNetwork returns an empty shared in-memory network.
func NewNetwork() *Network {
	return &Network{
		msgs:   make(map[queueKey]*queue),
		labels: make(map[queueKey]*queue),
	}
}

func (n *Network) messageQueue(from, to role.Role) *queue {
	n.mu.Lock()
	defer n.mu.Unlock()
	k := queueKey{from, to}
	q, ok := n.msgs[k]
	if !ok {
		q = newQueue()
		n.msgs[k] = q
	}
	return q
}

func (n *Network) labelQueue(from, to role.Role) *queue {
	n.mu.Lock()
	defer n.mu.Unlock()
	k := queueKey{from, to}
	q, ok := n.labels[k]
	if !ok {
		q = newQueue()
		n.labels[k] = q
	}
	return q
}

// marker is a zero-weight Channel: in-memory delivery runs through the
// shared Network, not through the channel value itself. Its only job is
// to let Endpoint enforce the take/put discipline.
type marker struct{}

func (marker) Close() error { return nil }

// InMemoryHandler delivers messages and labels through unbounded
// in-process queues keyed by (from, to). send never
// blocks; recv and offer block until a value is enqueued.
type InMemoryHandler struct {
	net *Network
}

// NewInMemoryHandler returns a handler backed by net.
func NewInMemoryHandler(net *Network) *InMemoryHandler {
	return &InMemoryHandler{net: net}
}

// RegisterPeer installs the marker channel ep needs to talk to peer —
// a convenience for tests and callers wiring an in-memory choreography,
// since the in-memory handler's real state lives in the Network, not
// in the channel.
func RegisterPeer(ep *Endpoint, peer role.Role) {
	ep.RegisterChannel(peer, marker{})
}

func (h *InMemoryHandler) Send(_ context.Context, ep *Endpoint, to role.Role, msg message.Message) error {
	ch, err := ep.TakeChannel(to)
	if err != nil {
		return err
	}
	defer ep.PutChannel(to, ch)
	h.net.messageQueue(ep.Role, to).push(msg)
	ep.MarkOperation(to, "send:"+msg.Name)
	return nil
}

func (h *InMemoryHandler) Recv(ctx context.Context, ep *Endpoint, from role.Role) (message.Message, error) {
	ch, err := ep.TakeChannel(from)
	if err != nil {
		return message.Message{}, err
	}
	defer ep.PutChannel(from, ch)

	item, err := h.net.messageQueue(from, ep.Role).pop(ctx)
	if err != nil {
		return message.Message{}, popError(err)
	}
	msg := item.(message.Message)
	ep.MarkOperation(from, "recv:"+msg.Name)
	return msg, nil
}

func (h *InMemoryHandler) Choose(_ context.Context, ep *Endpoint, peer role.Role, label string) error {
	ch, err := ep.TakeChannel(peer)
	if err != nil {
		return err
	}
	defer ep.PutChannel(peer, ch)
	h.net.labelQueue(ep.Role, peer).push(label)
	ep.MarkOperation(peer, "choose:"+label)
	return nil
}

func (h *InMemoryHandler) Offer(ctx context.Context, ep *Endpoint, from role.Role) (string, error) {
	ch, err := ep.TakeChannel(from)
	if err != nil {
		return "", err
	}
	defer ep.PutChannel(from, ch)

	item, err := h.net.labelQueue(from, ep.Role).pop(ctx)
	if err != nil {
		return "", popError(err)
	}
	label := item.(string)
	ep.MarkOperation(from, "offer:"+label)
	return label, nil
}

func (h *InMemoryHandler) Broadcast(ctx context.Context, ep *Endpoint, recipients []role.Role, msg message.Message) error {
	for _, r := range recipients {
		if err := h.Send(ctx, ep, r, msg); err != nil {
			return err
		}
	}
	return nil
}

func (h *InMemoryHandler) WithTimeout(ctx context.Context, ep *Endpoint, at role.Role, dur time.Duration, body func(context.Context) error) error {
	return withTimeout(ctx, ep, at, dur, body)
}

func popError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &ChoreographyError{Kind: Timeout, Reason: err.Error()}
	}
	return &ChoreographyError{Kind: Transport, Reason: fmt.Sprintf("queue: %v", err)}
}
