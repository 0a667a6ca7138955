package api

import "context"

// Result carries the outcome of one call run through Async.
type Result[T any] struct {
	Value T
	Err   error
}

// Async runs fn on its own goroutine. The returned channel receives exactly
// one Result and is then closed.
//
//	ch := api.Async(ctx, func(ctx context.Context) (*api.Account, error) {
//		return client.GetAccount(ctx, addr)
//	})
func Async[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		value, err := fn(ctx)
		ch <- Result[T]{Value: value, Err: err}
	}()
	return ch
}
