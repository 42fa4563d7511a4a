package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/openai/openai-go/v3"
)

// GatewayError is the terminal failure of a gateway operation: either a
// non-retryable provider error or retry-budget exhaustion. It carries the
// attempt count so callers can report how hard we tried
type GatewayError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("llm %s failed after %d attempt(s): %v", e.Op, e.Attempts, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// failureKind classifies a provider error into a retry category.
// Provider error types are treated as opaque beyond this classification
type failureKind int

const (
	kindFatal failureKind = iota
	kindRateLimit
	kindTimeout
	kindConnect
)

const retryBase = 2 * time.Second

// classify buckets err by category only
func classify(err error) failureKind {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429:
			return kindRateLimit
		case 408, 504:
			return kindTimeout
		case 502, 503:
			return kindConnect
		default:
			return kindFatal
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return kindTimeout
	}

	var nerr net.Error
	if errors.As(err, &nerr) {
		if nerr.Timeout() {
			return kindTimeout
		}
		return kindConnect
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return kindConnect
	}

	return kindFatal
}

// backoffFor returns the wait before the next attempt and whether a retry
// is allowed at all. attempt is zero-based
func backoffFor(err error, attempt int) (time.Duration, bool) {
	switch classify(err) {
	case kindRateLimit:
		return capped((1<<attempt)*retryBase, 60*time.Second), true
	case kindTimeout:
		return capped((1<<attempt)*retryBase, 30*time.Second), true
	case kindConnect:
		return retryBase, true
	default:
		return 0, false
	}
}

func capped(d, max time.Duration) time.Duration {
	if d > max {
		return max
	}
	return d
}
