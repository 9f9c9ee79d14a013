package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/actuallystonmai/catalog-service/internal/domain"
	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = time.Second
	DefaultFactor    = 2.0
	DefaultMaxDelay  = 10 * time.Second
)

// Policy retries an operation with exponential backoff: the first retry
// waits BaseDelay and each following one waits Factor times longer, capped
// at MaxDelay. Attempts counts the first call.
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	Factor    float64
	MaxDelay  time.Duration

	// OnRetry is called before each wait, after a transient failure.
	OnRetry func(err error, wait time.Duration)
}

func DefaultPolicy() Policy {
	return Policy{
		Attempts:  DefaultAttempts,
		BaseDelay: DefaultBaseDelay,
		Factor:    DefaultFactor,
		MaxDelay:  DefaultMaxDelay,
	}
}

// ExhaustedError carries the last transient error once every attempt failed.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Is makes an exhausted retry match domain.ErrUnavailable.
func (e *ExhaustedError) Is(target error) bool {
	return target == domain.ErrUnavailable
}

func IsExhausted(err error) bool {
	var target *ExhaustedError
	return errors.As(err, &target)
}

// Do runs op until it succeeds, returns an error that transient rejects,
// or the attempts run out.
func (p Policy) Do(ctx context.Context, op func() error, transient func(error) bool) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastTransient error
	operation := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !transient(err) {
			return backoff.Permanent(err)
		}
		lastTransient = err
		return err
	}

	var notify backoff.Notify
	if p.OnRetry != nil {
		notify = p.OnRetry
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(p.backoff(attempts), ctx), notify)
	if err == nil {
		return nil
	}
	if lastTransient != nil && err == lastTransient {
		return &ExhaustedError{Attempts: attempts, Err: err}
	}
	return err
}

func (p Policy) backoff(attempts int) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.Multiplier = p.Factor
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	if p.MaxDelay > 0 {
		b.MaxInterval = p.MaxDelay
	}
	if b.Multiplier < 1 {
		b.Multiplier = 1
	}
	b.Reset()
	return backoff.WithMaxRetries(b, uint64(attempts-1))
}

// IsConnectionError reports connection-level failures: network errors,
// dropped or refused connections. Context cancellation is not one of them.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
