package blockcache

import (
	"context"
	"sync"
)

// Entry is the type-erased view of a Future held by a Store.
type Entry interface {
	// Done is closed once the entry has settled.
	Done() <-chan struct{}
	// Err returns the settled error, or nil while the entry is pending.
	Err() error
}

// Future is a pending-or-settled loader result. All callers that request the
// same key observe the same Future.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

var _ Entry = (*Future[any])(nil)

func newFuture[T any]() *Future[T] {
	return &Future[T]{
		done: make(chan struct{}),
	}
}

// Resolved returns a Future already settled with value.
func Resolved[T any](value T) *Future[T] {
	f := newFuture[T]()
	f.resolve(value, nil)
	return f
}

// Failed returns a Future already settled with err.
func Failed[T any](err error) *Future[T] {
	var zero T
	f := newFuture[T]()
	f.resolve(zero, err)
	return f
}

// resolve settles the future, later calls are ignored.
func (f *Future[T]) resolve(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

func (f *Future[T]) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Settled reports whether the future has a value or an error.
func (f *Future[T]) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Await blocks until the future settles or ctx is done. A ctx that ends
// early only stops this caller from waiting; the future itself keeps
// running and stays cached.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
