package llm

import (
	"context"
	"time"

	perr "taskpulse/internal/platform/errors"
)

// maxAttempts is the per-call retry budget. Every call starts fresh;
// there is no circuit breaker across requests
const maxAttempts = 3

// sleep is a seam so tests can observe backoff without waiting.
// The timer-based wait keeps retries cancellable: a caller abandoning the
// request stops the backoff instead of pinning a worker for up to a minute
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// withRetry runs fn up to maxAttempts times, backing off per failure
// category. Terminal errors and budget exhaustion surface as *GatewayError
func (g *Gateway) withRetry(ctx context.Context, op string, fn func(context.Context) error) error {
	var last error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		last = fn(ctx)
		if last == nil {
			return nil
		}

		wait, retryable := backoffFor(last, attempt)
		if !retryable {
			g.log.Error().Str("op", op).Int("attempt", attempt+1).Err(last).
				Msg("llm call failed, not retryable")
			return terminal(op, attempt+1, last)
		}
		if attempt == maxAttempts-1 {
			break
		}

		g.log.Warn().Str("op", op).Int("attempt", attempt+1).Dur("backoff", wait).Err(last).
			Msg("llm call failed, retrying")
		if err := sleep(ctx, wait); err != nil {
			return terminal(op, attempt+1, err)
		}
	}
	return terminal(op, maxAttempts, last)
}

// terminal wraps the failure so transports map it to a
// service-unavailable class while errors.As still reaches the
// *GatewayError and its attempt count
func terminal(op string, attempts int, cause error) error {
	ge := &GatewayError{Op: op, Attempts: attempts, Err: cause}
	return perr.Wrapf(ge, perr.ErrorCodeGateway, "model provider unavailable (%s, %d attempt(s))", op, attempts)
}
