//
// Copyright (C) 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

package s3copy

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Operation is a single invocation of copy orchestration.
type Operation func(context.Context) (Outcome, error)

// RetryPolicy of the whole copy flow
type RetryPolicy struct {
	// Number of retries after the first attempt
	Retries int

	// Fixed delay between attempts
	Delay time.Duration

	// Optional callback, invoked before each retry
	OnRetry func(err error, wait time.Duration)
}

// DefaultRetryPolicy retries the flow 3 times with 500ms delay
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries: 3,
		Delay:   500 * time.Millisecond,
	}
}

// Retry decorates operation with bounded retries. Only faults (returned errors)
// are retried, the Fail outcome is final result and it is returned as-is.
func Retry(policy RetryPolicy, op Operation) Operation {
	return func(ctx context.Context) (Outcome, error) {
		retries := policy.Retries
		if retries < 0 {
			retries = 0
		}

		bo := backoff.WithContext(
			backoff.WithMaxRetries(
				backoff.NewConstantBackOff(policy.Delay),
				uint64(retries),
			),
			ctx,
		)

		return backoff.RetryNotifyWithData(
			func() (Outcome, error) {
				status, err := op(ctx)
				switch {
				case err == nil:
					return status, nil
				case ctx.Err() != nil:
					return status, backoff.Permanent(err)
				case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
					return status, backoff.Permanent(err)
				case errors.Is(err, ErrInvalidURI):
					return status, backoff.Permanent(err)
				default:
					return status, err
				}
			},
			bo,
			policy.OnRetry,
		)
	}
}
