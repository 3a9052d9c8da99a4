// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"time"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
)

// Channel is the transport-level handle a Handler uses to reach one
// peer. Concrete handlers supply their own Channel (an in-memory
// marker, a byte-stream conn); Endpoint only manages ownership and
// lifecycle, never the channel's contents.
type Channel interface {
	Close() error
}

// Handler is the single effect-interpretation abstraction a choreography
// runs against. Every operation takes ctx first, the convention this
// module follows throughout.
type Handler interface {
	// Send serialises msg and delivers it to peer to over ep's channel.
	Send(ctx context.Context, ep *Endpoint, to role.Role, msg message.Message) error
	// Recv blocks until a message arrives from peer from.
	Recv(ctx context.Context, ep *Endpoint, from role.Role) (message.Message, error)
	// Choose publishes an internal choice: label is delivered to peer.
	Choose(ctx context.Context, ep *Endpoint, peer role.Role, label string) error
	// Offer blocks until a label arrives from peer from.
	Offer(ctx context.Context, ep *Endpoint, from role.Role) (string, error)
	// Broadcast delivers msg to every role in recipients.
	Broadcast(ctx context.Context, ep *Endpoint, recipients []role.Role, msg message.Message) error
	// WithTimeout runs body; if it does not complete within dur, body is
	// abandoned and Timeout is returned. at names the peer the timed
	// operation concerns, for tracing only.
	WithTimeout(ctx context.Context, ep *Endpoint, at role.Role, dur time.Duration, body func(context.Context) error) error
}
