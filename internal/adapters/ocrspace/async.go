package ocrspace

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// Pool runs submitted work on goroutines it owns. *errgroup.Group satisfies
// it; bounding and backpressure are the pool's admission policy.
type Pool interface {
	Go(f func() error)
}

// Future is the pending result of an asynchronous request. It resolves
// exactly once, with a response or with the failure that prevented one.
type Future struct {
	done chan struct{}
	once sync.Once
	resp *http.Response
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Done is closed once the future is resolved.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future resolves or ctx ends. When ctx ends first it
// returns ctx.Err() and the future stays pending, so Wait may be called
// again. A successful response must be closed by the caller.
func (f *Future) Wait(ctx context.Context) (*http.Response, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *Future) resolve(resp *http.Response, err error) {
	f.once.Do(func() {
		f.resp, f.err = resp, err
		close(f.done)
	})
}

// AsyncRequest sends the request on a new goroutine. Cancelling ctx aborts
// the transport call; an abandoned future keeps its goroutine until then.
func (r *TargetedRequest) AsyncRequest(ctx context.Context) *Future {
	f := newFuture()
	go r.run(ctx, f)
	return f
}

// AsyncRequestIn submits the request to pool. The submitted function never
// reports an error to the pool, so a failed call does not cancel its
// siblings in an errgroup; the failure is delivered through the future.
func (r *TargetedRequest) AsyncRequestIn(ctx context.Context, pool Pool) *Future {
	f := newFuture()
	if pool == nil {
		f.resolve(nil, fmt.Errorf("%w: nil pool", ErrConfiguration))
		return f
	}
	pool.Go(func() error {
		r.run(ctx, f)
		return nil
	})
	return f
}

func (r *TargetedRequest) run(ctx context.Context, f *Future) {
	defer func() {
		if p := recover(); p != nil {
			f.resolve(nil, fmt.Errorf("ocrspace: request panicked: %v", p))
		}
	}()
	resp, err := r.Request(ctx)
	f.resolve(resp, err)
}
