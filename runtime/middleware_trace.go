// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"time"

	"github.com/luxfi/log"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
)

// Trace wraps a Handler, logging each operation's duration and outcome
// Grounded on a notification-forwarder's debug
// logging (networking/handler/notifier.go).
type Trace struct {
	next   Handler
	logger log.Logger
}

// NewTrace wraps next with structured logging via logger: one Debug
// event after each operation completes, carrying its elapsed time and
// error. No event is emitted before an operation starts.
func NewTrace(next Handler, logger log.Logger) *Trace {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Trace{next: next, logger: logger}
}

func (t *Trace) Send(ctx context.Context, ep *Endpoint, to role.Role, msg message.Message) error {
	start := time.Now()
	err := t.next.Send(ctx, ep, to, msg)
	t.logger.Debug("send",
		log.Stringer("to", to),
		log.String("message", msg.Name),
		log.String("elapsed", time.Since(start).String()),
		log.Err(err),
	)
	return err
}

func (t *Trace) Recv(ctx context.Context, ep *Endpoint, from role.Role) (message.Message, error) {
	start := time.Now()
	msg, err := t.next.Recv(ctx, ep, from)
	t.logger.Debug("recv",
		log.Stringer("from", from),
		log.String("elapsed", time.Since(start).String()),
		log.Err(err),
	)
	return msg, err
}

func (t *Trace) Choose(ctx context.Context, ep *Endpoint, peer role.Role, label string) error {
	start := time.Now()
	err := t.next.Choose(ctx, ep, peer, label)
	t.logger.Debug("choose",
		log.Stringer("peer", peer),
		log.String("label", label),
		log.String("elapsed", time.Since(start).String()),
		log.Err(err),
	)
	return err
}

func (t *Trace) Offer(ctx context.Context, ep *Endpoint, from role.Role) (string, error) {
	start := time.Now()
	label, err := t.next.Offer(ctx, ep, from)
	t.logger.Debug("offer",
		log.Stringer("from", from),
		log.String("elapsed", time.Since(start).String()),
		log.Err(err),
	)
	return label, err
}

func (t *Trace) Broadcast(ctx context.Context, ep *Endpoint, recipients []role.Role, msg message.Message) error {
	start := time.Now()
	err := t.next.Broadcast(ctx, ep, recipients, msg)
	t.logger.Debug("broadcast",
		log.Int("recipients", len(recipients)),
		log.String("message", msg.Name),
		log.String("elapsed", time.Since(start).String()),
		log.Err(err),
	)
	return err
}

func (t *Trace) WithTimeout(ctx context.Context, ep *Endpoint, at role.Role, dur time.Duration, body func(context.Context) error) error {
	start := time.Now()
	err := t.next.WithTimeout(ctx, ep, at, dur, body)
	t.logger.Debug("with_timeout",
		log.Stringer("at", at),
		log.String("elapsed", time.Since(start).String()),
		log.Err(err),
	)
	return err
}
