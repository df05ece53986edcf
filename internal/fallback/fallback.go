// Package fallback tries an ordered list of providers and returns the first success.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fadilmartias/founder-assessment/internal/service"
)

// Attempt is one provider call in a chain.
type Attempt[T any] struct {
	Name string
	Call func(ctx context.Context) (T, error)
}

// Policy controls how each attempt runs. Zero values mean no timeout and no retry.
type Policy struct {
	Timeout time.Duration
	// Retries is the number of extra tries for a retryable ProviderError.
	Retries         uint64
	InitialInterval time.Duration
	// OnFailure is called once for every attempt that finally fails.
	OnFailure func(name string, err error)
}

// ExhaustedError is returned when every attempt failed.
type ExhaustedError struct {
	Errors []error
}

func (e *ExhaustedError) Error() string {
	if len(e.Errors) == 0 {
		return "no providers available"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("all %d providers failed: %s", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *ExhaustedError) Unwrap() []error { return e.Errors }

// First runs attempts in order and returns the first result together with
// the name of the attempt that produced it. A cancelled ctx stops the chain.
func First[T any](ctx context.Context, policy Policy, attempts ...Attempt[T]) (T, string, error) {
	var zero T
	errs := make([]error, 0, len(attempts))
	for _, a := range attempts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			return zero, "", &ExhaustedError{Errors: errs}
		}
		v, err := run(ctx, policy, a)
		if err == nil {
			return v, a.Name, nil
		}
		errs = append(errs, err)
		if policy.OnFailure != nil {
			policy.OnFailure(a.Name, err)
		}
	}
	return zero, "", &ExhaustedError{Errors: errs}
}

func run[T any](ctx context.Context, policy Policy, a Attempt[T]) (T, error) {
	var result T
	op := func() error {
		v, err := callWithTimeout(ctx, policy.Timeout, a)
		if err != nil {
			if ctx.Err() != nil || !retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = v
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	if policy.InitialInterval > 0 {
		bo.InitialInterval = policy.InitialInterval
	}
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, policy.Retries), ctx))
	return result, err
}

type outcome[T any] struct {
	v   T
	err error
}

// callWithTimeout returns when the call returns or the deadline passes,
// whichever is first, so an adapter that ignores ctx cannot stall the chain.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, a Attempt[T]) (T, error) {
	var zero T
	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	done := make(chan outcome[T], 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome[T]{err: &service.ProviderError{Provider: a.Name, Cause: fmt.Errorf("panic: %v", p)}}
			}
		}()
		v, err := a.Call(callCtx)
		done <- outcome[T]{v, err}
	}()

	select {
	case out := <-done:
		if out.err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return zero, timeoutError(a.Name, timeout)
		}
		return out.v, out.err
	case <-callCtx.Done():
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, timeoutError(a.Name, timeout)
	}
}

func timeoutError(name string, timeout time.Duration) error {
	return &service.ProviderError{
		Provider: name,
		Cause:    fmt.Errorf("no response within %s: %w", timeout, context.DeadlineExceeded),
	}
}

func retryable(err error) bool {
	var pe *service.ProviderError
	return errors.As(err, &pe) && pe.Retryable
}
