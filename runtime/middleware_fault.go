// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/luxfi/choreo/message"
	"github.com/luxfi/choreo/role"
)

// FaultInjection wraps a Handler, probabilistically failing or
// delaying sends. Test-only: it exists to exercise
// Retry and timeout handling deterministically, given a fixed seed.
type FaultInjection struct {
	next Handler

	mu              sync.Mutex
	rng             *rand.Rand
	failProbability float64
	maxDelay        time.Duration
}

// NewFaultInjection wraps next. failProbability is in [0,1]; maxDelay
// bounds an optional random pre-send delay (0 disables delay). seed
// makes the fault sequence reproducible across test runs.
func NewFaultInjection(next Handler, failProbability float64, maxDelay time.Duration, seed int64) *FaultInjection {
	return &FaultInjection{
		next:            next,
		rng:             rand.New(rand.NewSource(seed)),
		failProbability: failProbability,
		maxDelay:        maxDelay,
	}
}

func (f *FaultInjection) roll() (fail bool, delay time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fail = f.rng.Float64() < f.failProbability
	if f.maxDelay > 0 {
		delay = time.Duration(f.rng.Int63n(int64(f.maxDelay)))
	}
	return fail, delay
}

func (f *FaultInjection) Send(ctx context.Context, ep *Endpoint, to role.Role, msg message.Message) error {
	fail, delay := f.roll()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail {
		return &ChoreographyError{Kind: Transport, Reason: "fault injection: simulated send failure"}
	}
	return f.next.Send(ctx, ep, to, msg)
}

func (f *FaultInjection) Recv(ctx context.Context, ep *Endpoint, from role.Role) (message.Message, error) {
	return f.next.Recv(ctx, ep, from)
}

func (f *FaultInjection) Choose(ctx context.Context, ep *Endpoint, peer role.Role, label string) error {
	return f.next.Choose(ctx, ep, peer, label)
}

func (f *FaultInjection) Offer(ctx context.Context, ep *Endpoint, from role.Role) (string, error) {
	return f.next.Offer(ctx, ep, from)
}

func (f *FaultInjection) Broadcast(ctx context.Context, ep *Endpoint, recipients []role.Role, msg message.Message) error {
	for _, to := range recipients {
		if err := f.Send(ctx, ep, to, msg); err != nil {
			return err
		}
	}
	return nil
}

func (f *FaultInjection) WithTimeout(ctx context.Context, ep *Endpoint, at role.Role, dur time.Duration, body func(context.Context) error) error {
	return f.next.WithTimeout(ctx, ep, at, dur, body)
}
