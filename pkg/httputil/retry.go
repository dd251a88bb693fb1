package httputil

import (
	"context"
	"errors"
	"time"
)

// Backoff schedules retries for transient fetch failures. Delay is the
// wait before the second attempt and doubles after every further failure.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff retries twice more after a transient failure, waiting
// one second and then two.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Do runs fn until it succeeds, fails permanently, or the attempts are
// exhausted. Only errors marked with [Transient] trigger another attempt;
// everything else is returned as is. A cancelled context cuts the wait
// short and returns ctx.Err().
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := b.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := b.Delay

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsTransient(err) || attempt >= attempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// transientError marks a failure as worth another attempt.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as retryable. Connection failures and 5xx
// responses get the marker; validation errors and 4xx responses stay
// permanent so [Backoff.Do] fails them fast.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err carries the [Transient] marker.
func IsTransient(err error) bool {
	return errors.As(err, new(*transientError))
}
