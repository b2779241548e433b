package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronaldlvm7/finance-app/internal/service"
)

func fastRetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetryEventualSuccess(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, fastRetryOptions())

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		return errors.New("always broken")
	}, fastRetryOptions())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryStopsOnNonRetryable(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		return &RetryableError{Err: errors.New("fatal"), Retryable: false}
	}, fastRetryOptions())

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

// Validation and funds rejections are deterministic: retrying the same
// operation cannot change the outcome.
func TestWithRetryStopsOnRejection(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		return NewValidationError("amount", "must be a positive amount")
	}, fastRetryOptions())

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetryRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error {
		return errors.New("transient")
	}, fastRetryOptions())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(NewValidationError("x", "y")))
	assert.True(t, IsRejection(&InsufficientFundsError{AccountName: "a"}))
	assert.True(t, IsRejection(&InsufficientCreditError{AccountName: "a"}))
	assert.True(t, IsRejection(ErrNotFound))
	assert.False(t, IsRejection(errors.New("disk on fire")))
	assert.False(t, IsRejection(nil))
}
