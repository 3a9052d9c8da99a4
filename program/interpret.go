// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/luxfi/choreo/runtime"
)

// Interpret drives step through handler on ep, one effect at a time,
// until it reaches End or an operation fails. It is the sole consumer
// of runtime.Handler in this package: everything above this function is
// plain data.
func Interpret(ctx context.Context, handler runtime.Handler, ep *runtime.Endpoint, step Step) error {
	for {
		switch s := step.(type) {
		case End:
			return nil

		case Send:
			if err := handler.Send(ctx, ep, s.Peer, s.Payload); err != nil {
				return err
			}
			step = s.Cont

		case Recv:
			if _, err := handler.Recv(ctx, ep, s.Peer); err != nil {
				return err
			}
			step = s.Cont

		case Choose:
			if err := handler.Choose(ctx, ep, s.Peer, s.Label); err != nil {
				return err
			}
			step = s.Cont

		case Offer:
			label, err := handler.Offer(ctx, ep, s.Peer)
			if err != nil {
				return err
			}
			next, ok := s.Cases[label]
			if !ok {
				return &runtime.ChoreographyError{Kind: runtime.ProtocolViolation, Reason: fmt.Sprintf("offer from %s: unplanned label %q", s.Peer, label)}
			}
			step = next

		case Parallel:
			if err := interpretParallel(ctx, handler, ep, s.Children); err != nil {
				return err
			}
			step = s.Cont

		case WithTimeout:
			body := s.Body
			err := handler.WithTimeout(ctx, ep, s.Peer, s.Duration, func(bodyCtx context.Context) error {
				return Interpret(bodyCtx, handler, ep, body)
			})
			if err != nil {
				return err
			}
			step = s.Cont

		default:
			panic("program: unhandled step type")
		}
	}
}

// interpretParallel runs every child to completion concurrently,
// returning the first error encountered (if any) once all children have
// finished. Concurrent children must address disjoint peers: ep's
// take/put discipline turns an overlapping pair into a ProtocolViolation
// rather than silent corruption.
func interpretParallel(ctx context.Context, handler runtime.Handler, ep *runtime.Endpoint, children []Step) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for _, child := range children {
		child := child
		group.Go(func() error {
			return Interpret(groupCtx, handler, ep, child)
		})
	}
	return group.Wait()
}
