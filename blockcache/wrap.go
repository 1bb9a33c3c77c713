package blockcache

import (
	"context"
	"fmt"
)

// Wrap returns a function with the loader's arguments that serves repeated
// calls for the same key from c.Store instead of invoking loader again.
//
// The returned Future is stored before the loader settles. Loader errors are
// returned unchanged and stay cached under their key.
func Wrap[T any](
	c *Context,
	spec KeySpec,
	loader func(ctx context.Context, args ...any) (T, error),
) func(ctx context.Context, args ...any) *Future[T] {
	return func(ctx context.Context, args ...any) *Future[T] {
		return load(ctx, c, spec, args, func(ctx context.Context) (T, error) {
			return loader(ctx, args...)
		})
	}
}

// Wrap0 is Wrap for loaders without arguments.
func Wrap0[T any](
	c *Context,
	spec KeySpec,
	loader func(ctx context.Context) (T, error),
) func(ctx context.Context) *Future[T] {
	return func(ctx context.Context) *Future[T] {
		return load(ctx, c, spec, nil, loader)
	}
}

// Wrap1 is Wrap for single argument loaders.
func Wrap1[A, T any](
	c *Context,
	spec KeySpec,
	loader func(ctx context.Context, a A) (T, error),
) func(ctx context.Context, a A) *Future[T] {
	return func(ctx context.Context, a A) *Future[T] {
		return load(ctx, c, spec, []any{a}, func(ctx context.Context) (T, error) {
			return loader(ctx, a)
		})
	}
}

// Wrap2 is Wrap for two argument loaders.
func Wrap2[A, B, T any](
	c *Context,
	spec KeySpec,
	loader func(ctx context.Context, a A, b B) (T, error),
) func(ctx context.Context, a A, b B) *Future[T] {
	return func(ctx context.Context, a A, b B) *Future[T] {
		return load(ctx, c, spec, []any{a, b}, func(ctx context.Context) (T, error) {
			return loader(ctx, a, b)
		})
	}
}

// Wrap3 is Wrap for three argument loaders.
func Wrap3[A, B, C, T any](
	c *Context,
	spec KeySpec,
	loader func(ctx context.Context, a A, b B, cc C) (T, error),
) func(ctx context.Context, a A, b B, cc C) *Future[T] {
	return func(ctx context.Context, a A, b B, cc C) *Future[T] {
		return load(ctx, c, spec, []any{a, b, cc}, func(ctx context.Context) (T, error) {
			return loader(ctx, a, b, cc)
		})
	}
}

func load[T any](
	ctx context.Context,
	c *Context,
	spec KeySpec,
	args []any,
	call func(ctx context.Context) (T, error),
) *Future[T] {
	if c == nil {
		return Failed[T](ErrNilContext)
	}
	if c.Store == nil {
		return Failed[T](ErrNilStore)
	}

	key, err := c.Key(spec, args...)
	if err != nil {
		return Failed[T](err)
	}

	entry, found := c.Store.Load(key)
	if !found {
		pending := newFuture[T]()

		// check and insert happen under the store lock, so only one caller
		// per key gets loaded == false and starts the loader
		var loaded bool
		entry, loaded = c.Store.LoadOrStore(key, pending)
		if !loaded {
			c.emit(EventMiss, key, nil)
			go settle(ctx, c, key, pending, call)
			return pending
		}
	}

	c.emit(EventHit, key, nil)

	future, ok := entry.(*Future[T])
	if !ok {
		return Failed[T](fmt.Errorf("%w: key %s holds %T", ErrEntryTypeMismatch, key, entry))
	}
	return future
}

func settle[T any](
	ctx context.Context,
	c *Context,
	key string,
	future *Future[T],
	call func(ctx context.Context) (T, error),
) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrLoaderPanic, r)
			c.emit(EventLoaderError, key, err)

			var zero T
			future.resolve(zero, err)
		}
	}()

	tiered := c.tiered()
	if tiered {
		if value, ok := readTier[T](ctx, c, key); ok {
			future.resolve(value, nil)
			return
		}
	}

	value, err := call(ctx)
	if err != nil {
		c.emit(EventLoaderError, key, err)
		future.resolve(value, err)
		return
	}

	future.resolve(value, nil)

	if tiered {
		writeTier(c, key, value)
	}
}
