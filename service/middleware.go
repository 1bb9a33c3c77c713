package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/negroni"

	"github.com/kava-labs/block-resolver-cache/blockcache"
	"github.com/kava-labs/block-resolver-cache/clients/evm"
	"github.com/kava-labs/block-resolver-cache/decode"
)

type contextKey string

const (
	// BlockCacheContextKey holds the *blockcache.Context pinned for a request
	BlockCacheContextKey contextKey = "block-cache-context"
	// RequestIDContextKey holds the id assigned to a request
	RequestIDContextKey contextKey = "request-id"

	RequestIDHeaderName = "X-Request-Id"
	BlockQueryParam     = "block"
)

// BlockCacheFromContext returns the block cache context pinned for the
// request by the block pinning middleware
func BlockCacheFromContext(ctx context.Context) (*blockcache.Context, bool) {
	blockCache, ok := ctx.Value(BlockCacheContextKey).(*blockcache.Context)

	return blockCache, ok && blockCache != nil
}

// createBlockPinningMiddleware resolves the block requested with the `block`
// query parameter (the configured default when absent) to a concrete block
// number and attaches a fresh block cache context for it to the request.
// Every read made while serving the request shares that context and is
// discarded with it.
func createBlockPinningMiddleware(next http.HandlerFunc, service *BlockResolverService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestStartTime := time.Now()

		requestID := r.Header.Get(RequestIDHeaderName)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeaderName, requestID)

		requestedBlock := r.URL.Query().Get(BlockQueryParam)
		if requestedBlock == "" {
			requestedBlock = service.config.DefaultRequestedBlock
		}

		blockCache, err := evm.Pin(
			r.Context(),
			service.evmClient,
			service.config.NetworkName,
			requestedBlock,
			blockcache.NewMemoryStore(),
			service.cacheOptions()...,
		)
		if err != nil {
			service.Debug().Str("request_id", requestID).Err(err).Msg("error pinning requested block")

			status := http.StatusBadGateway
			if errors.Is(err, decode.ErrInvalidBlockIdentifier) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}

		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		ctx = context.WithValue(ctx, BlockCacheContextKey, blockCache)

		lrw := negroni.NewResponseWriter(w)
		next.ServeHTTP(lrw, r.WithContext(ctx))

		stats := blockCache.Stats()
		service.Debug().
			Str("request_id", requestID).
			Str("path", r.URL.Path).
			Str("network", blockCache.Network).
			Str("block", blockCache.Block).
			Int("status", lrw.Status()).
			Int64("cache_hits", stats.Hits).
			Int64("cache_misses", stats.Misses).
			Int("cache_entries", stats.Entries).
			Int64("duration_ms", time.Since(requestStartTime).Milliseconds()).
			Msg("request served")
	}
}
