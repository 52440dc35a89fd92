package runner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunnable struct {
	counter *atomic.Int32
}

func (r *countingRunnable) Run(_ context.Context) error {
	r.counter.Add(1)
	return nil
}

type failingRunnable struct{}

func (r *failingRunnable) Run(_ context.Context) error {
	return errors.New("runnable failed")
}

type blockingRunnable struct {
	cancelled *atomic.Bool
}

func (r *blockingRunnable) Run(ctx context.Context) error {
	<-ctx.Done()
	r.cancelled.Store(true)
	return ctx.Err()
}

func TestRunAll(t *testing.T) {
	t.Run("it should run all runnables and wait for completion", func(t *testing.T) {
		// GIVEN
		var counter atomic.Int32
		runnables := []Runnable{
			&countingRunnable{counter: &counter},
			&countingRunnable{counter: &counter},
			&countingRunnable{counter: &counter},
		}

		// WHEN
		err := RunAll(context.Background(), runnables...)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, int32(3), counter.Load())
	})

	t.Run("it should return the error of a failing runnable", func(t *testing.T) {
		// WHEN
		err := RunAll(context.Background(), &failingRunnable{})

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "runnable failed")
	})

	t.Run("it should cancel the other runnables when one fails", func(t *testing.T) {
		// GIVEN
		var cancelled atomic.Bool

		// WHEN
		err := RunAll(context.Background(), &failingRunnable{}, &blockingRunnable{cancelled: &cancelled})

		// THEN
		require.Error(t, err)
		assert.True(t, cancelled.Load())
	})

	t.Run("it should do nothing when no runnable is given", func(t *testing.T) {
		// WHEN
		err := RunAll(context.Background())

		// THEN
		assert.NoError(t, err)
	})
}
