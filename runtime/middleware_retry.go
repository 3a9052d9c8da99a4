// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
)

// Retry wraps a Handler, retrying Transport failures on send only — up
// to maxAttempts, with exponential backoff. recv, offer,
// and choose are never retried: they advance protocol state, and a
// second attempt after a partial failure could duplicate it.
type Retry struct {
	next        Handler
	maxAttempts uint64
}

// NewRetry wraps next, retrying send up to maxAttempts times.
func NewRetry(next Handler, maxAttempts int) *Retry {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Retry{next: next, maxAttempts: uint64(maxAttempts - 1)}
}

func (r *Retry) Send(ctx context.Context, ep *Endpoint, to role.Role, msg message.Message) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.maxAttempts), ctx)
	return backoff.Retry(func() error {
		err := r.next.Send(ctx, ep, to, msg)
		if err == nil {
			return nil
		}
		var cerr *ChoreographyError
		if errors.As(err, &cerr) && cerr.Kind == Transport {
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}

func (r *Retry) Recv(ctx context.Context, ep *Endpoint, from role.Role) (message.Message, error) {
	return r.next.Recv(ctx, ep, from)
}

func (r *Retry) Choose(ctx context.Context, ep *Endpoint, peer role.Role, label string) error {
	return r.next.Choose(ctx, ep, peer, label)
}

func (r *Retry) Offer(ctx context.Context, ep *Endpoint, from role.Role) (string, error) {
	return r.next.Offer(ctx, ep, from)
}

func (r *Retry) Broadcast(ctx context.Context, ep *Endpoint, recipients []role.Role, msg message.Message) error {
	for _, to := range recipients {
		if err := r.Send(ctx, ep, to, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Retry) WithTimeout(ctx context.Context, ep *Endpoint, at role.Role, dur time.Duration, body func(context.Context) error) error {
	return r.next.WithTimeout(ctx, ep, at, dur, body)
}
