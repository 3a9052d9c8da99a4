// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"time"

	"github.com/luxfi/choreo/role"
)

// withTimeout runs body in its own goroutine under a context bounded
// by dur. If dur elapses first, at's session is marked broken and
// Timeout is returned; the goroutine is left to notice timeoutCtx's
// cancellation at its own next suspension point and exit on its own
// its result, once it arrives, is discarded.
func withTimeout(ctx context.Context, ep *Endpoint, at role.Role, dur time.Duration, body func(context.Context) error) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, dur)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- body(timeoutCtx)
	}()

	select {
	case err := <-done:
		return err
	case <-timeoutCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ep.MarkBroken(at)
		return &ChoreographyError{Kind: Timeout, Duration: dur}
	}
}
