// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
	"github.com/luxfi/choreo/wire"
)

// byteChannel adapts an io.ReadWriteCloser (a net.Conn, a pipe end, ...)
// to Channel.
type byteChannel struct {
	rw io.ReadWriteCloser
}

// NewByteChannel wraps rw as a Channel for Endpoint.RegisterChannel.
func NewByteChannel(rw io.ReadWriteCloser) Channel {
	return &byteChannel{rw: rw}
}

func (c *byteChannel) Close() error { return c.rw.Close() }

// ByteStreamHandler is the production handler: it wraps a bidirectional
// byte channel per peer, framing each payload with the wire package's
// length prefix.
type ByteStreamHandler struct{}

// NewByteStreamHandler returns the byte-stream handler. It carries no
// state of its own; all state lives in the Channel registered on each
// Endpoint.
func NewByteStreamHandler() *ByteStreamHandler {
	return &ByteStreamHandler{}
}

func (h *ByteStreamHandler) asByteChannel(ch Channel, peer role.Role) (*byteChannel, error) {
	bc, ok := ch.(*byteChannel)
	if !ok {
		return nil, &ChoreographyError{Kind: Transport, Reason: fmt.Sprintf("peer %s has no byte-stream channel", peer)}
	}
	return bc, nil
}

func (h *ByteStreamHandler) Send(_ context.Context, ep *Endpoint, to role.Role, msg message.Message) error {
	ch, err := ep.TakeChannel(to)
	if err != nil {
		return err
	}
	bc, err := h.asByteChannel(ch, to)
	if err != nil {
		ep.PutChannel(to, ch)
		return err
	}

	payload, err := wire.MarshalEnvelope(msg.Name, msg.Payload.String())
	if err != nil {
		ep.PutChannel(to, ch)
		return &ChoreographyError{Kind: Serialization, Reason: err.Error()}
	}
	if err := wire.WriteFrame(bc.rw, payload); err != nil {
		return &ChoreographyError{Kind: Transport, Reason: err.Error()}
	}
	ep.PutChannel(to, ch)
	ep.MarkOperation(to, "send:"+msg.Name)
	return nil
}

func (h *ByteStreamHandler) Recv(_ context.Context, ep *Endpoint, from role.Role) (message.Message, error) {
	ch, err := ep.TakeChannel(from)
	if err != nil {
		return message.Message{}, err
	}
	bc, err := h.asByteChannel(ch, from)
	if err != nil {
		ep.PutChannel(from, ch)
		return message.Message{}, err
	}

	payload, err := wire.ReadFrame(bc.rw)
	if err != nil {
		return message.Message{}, &ChoreographyError{Kind: Transport, Reason: err.Error()}
	}
	env, err := wire.UnmarshalEnvelope(payload)
	if err != nil {
		ep.PutChannel(from, ch)
		return message.Message{}, &ChoreographyError{Kind: Serialization, Reason: err.Error()}
	}
	ep.PutChannel(from, ch)

	msg := message.WithPayload(env.Name, env.Payload)
	ep.MarkOperation(from, "recv:"+msg.Name)
	return msg, nil
}

func (h *ByteStreamHandler) Choose(_ context.Context, ep *Endpoint, peer role.Role, label string) error {
	ch, err := ep.TakeChannel(peer)
	if err != nil {
		return err
	}
	bc, err := h.asByteChannel(ch, peer)
	if err != nil {
		ep.PutChannel(peer, ch)
		return err
	}
	if err := wire.WriteFrame(bc.rw, []byte(label)); err != nil {
		return &ChoreographyError{Kind: Transport, Reason: err.Error()}
	}
	ep.PutChannel(peer, ch)
	ep.MarkOperation(peer, "choose:"+label)
	return nil
}

func (h *ByteStreamHandler) Offer(_ context.Context, ep *Endpoint, from role.Role) (string, error) {
	ch, err := ep.TakeChannel(from)
	if err != nil {
		return "", err
	}
	bc, err := h.asByteChannel(ch, from)
	if err != nil {
		ep.PutChannel(from, ch)
		return "", err
	}
	payload, err := wire.ReadFrame(bc.rw)
	if err != nil {
		return "", &ChoreographyError{Kind: Transport, Reason: err.Error()}
	}
	ep.PutChannel(from, ch)
	label := string(payload)
	ep.MarkOperation(from, "offer:"+label)
	return label, nil
}

func (h *ByteStreamHandler) Broadcast(ctx context.Context, ep *Endpoint, recipients []role.Role, msg message.Message) error {
	for _, r := range recipients {
		if err := h.Send(ctx, ep, r, msg); err != nil {
			return err
		}
	}
	return nil
}

func (h *ByteStreamHandler) WithTimeout(ctx context.Context, ep *Endpoint, at role.Role, dur time.Duration, body func(context.Context) error) error {
	return withTimeout(ctx, ep, at, dur, body)
}
