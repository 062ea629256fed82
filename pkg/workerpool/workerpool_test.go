package workerpool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"payroll-bot/pkg/workerpool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReturnsResults(t *testing.T) {
	pool := workerpool.NewWorkerPool(2, 4)
	defer pool.Close()

	resCh := make(chan workerpool.Result, 1)
	err := pool.Submit(context.Background(), workerpool.Task{
		Fn:      func() (any, error) { return 42, nil },
		ResultC: resCh,
	})
	require.NoError(t, err)

	res := <-resCh
	assert.NoError(t, res.Err)
	assert.Equal(t, 42, res.Value)
}

func TestPanicBecomesError(t *testing.T) {
	pool := workerpool.NewWorkerPool(1, 1)
	defer pool.Close()

	resCh := make(chan workerpool.Result, 1)
	require.NoError(t, pool.Submit(context.Background(), workerpool.Task{
		Fn:      func() (any, error) { panic("boom") },
		ResultC: resCh,
	}))

	res := <-resCh
	assert.ErrorContains(t, res.Err, "boom")
}

func TestCloseDrainsQueue(t *testing.T) {
	pool := workerpool.NewWorkerPool(1, 8)
	var done atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, pool.Submit(context.Background(), workerpool.Task{
			Fn: func() (any, error) {
				time.Sleep(time.Millisecond)
				done.Add(1)
				return nil, nil
			},
		}))
	}
	pool.Close()
	assert.Equal(t, int32(5), done.Load())

	err := pool.Submit(context.Background(), workerpool.Task{Fn: func() (any, error) { return nil, nil }})
	assert.ErrorIs(t, err, workerpool.ErrClosed)

	pool.Close()
}

func TestSubmitHonoursContext(t *testing.T) {
	pool := workerpool.NewWorkerPool(1, 0)
	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(context.Background(), workerpool.Task{
		Fn: func() (any, error) {
			close(started)
			<-release
			return nil, nil
		},
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := pool.Submit(ctx, workerpool.Task{Fn: func() (any, error) { return nil, nil }})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	close(release)
	pool.Close()
}
