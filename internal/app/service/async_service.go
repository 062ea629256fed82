package service

import (
	"context"
	"fmt"

	"payroll-bot/pkg/workerpool"
)

// AsyncService runs bot work on the shared worker pool so long payroll runs
// and exports do not hold up update handling.
type AsyncService struct {
	Pool *workerpool.WorkerPool
}

func NewAsyncService(pool *workerpool.WorkerPool) *AsyncService {
	return &AsyncService{Pool: pool}
}

func (a *AsyncService) SubmitAsync(ctx context.Context, fn func() (any, error)) (any, error) {
	resCh := make(chan workerpool.Result, 1)
	if err := a.Pool.Submit(ctx, workerpool.Task{Fn: fn, ResultC: resCh}); err != nil {
		return nil, err
	}
	select {
	case res := <-resCh:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// RunAsync is SubmitAsync with a typed result.
func RunAsync[T any](ctx context.Context, a *AsyncService, fn func() (T, error)) (T, error) {
	v, err := a.SubmitAsync(ctx, func() (any, error) { return fn() })
	t, ok := v.(T)
	if err != nil {
		return t, err
	}
	if !ok {
		return t, fmt.Errorf("async: unexpected result type %T", v)
	}
	return t, nil
}
