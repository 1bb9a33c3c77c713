package blockcache

import "errors"

var (
	ErrNilContext        = errors.New("block cache context is nil")
	ErrNilStore          = errors.New("block cache context has no store")
	ErrEntryTypeMismatch = errors.New("cached entry holds a different result type")
	ErrLoaderPanic       = errors.New("loader panicked")
)
