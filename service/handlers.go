package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kava-labs/block-resolver-cache/clients/evm"
	"github.com/kava-labs/block-resolver-cache/decode"
)

const healthcheckTimeout = 5 * time.Second

// createHealthcheckHandler creates a health check handler function that
// will respond 200 ok if the service is able to reach the evm node and
// (when enabled) the shared cache tier, otherwise responding 500
func createHealthcheckHandler(service *BlockResolverService) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
		defer cancel()

		var combinedErrors error

		if _, err := service.evmClient.ChainID(ctx); err != nil {
			combinedErrors = errors.Join(combinedErrors, fmt.Errorf("evm node healthcheck failed: %w", err))
		}

		if service.tier != nil {
			if err := service.tier.Healthcheck(ctx); err != nil {
				combinedErrors = errors.Join(combinedErrors, fmt.Errorf("cache tier healthcheck failed: %w", err))
			}
		}

		if combinedErrors != nil {
			service.Error().Err(combinedErrors).Msg("healthcheck failed")
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintln(w, combinedErrors.Error())
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}
}

// createServicecheckHandler creates a service check handler function that
// responds 200 if the service is running
func createServicecheckHandler(service *BlockResolverService) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		service.Trace().Msg("servicecheck called")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}
}

// createCacheStatusHandler responds with the block cache context
// pinned for the request
func createCacheStatusHandler(service *BlockResolverService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blockCache, ok := BlockCacheFromContext(r.Context())
		if !ok {
			http.Error(w, "no block cache pinned for request", http.StatusInternalServerError)
			return
		}

		requestID, _ := r.Context().Value(RequestIDContextKey).(string)

		MarshalJSONResponse(w, CacheStatusResponse{
			RequestID:   requestID,
			Network:     blockCache.Network,
			Block:       blockCache.Block,
			Pinned:      decode.IsPinned(blockCache.Block),
			TierEnabled: service.tier != nil,
			Stats:       blockCache.Stats(),
		}, service)
	}
}

// createChainStatusHandler responds with the chain id and header at the
// block pinned for the request, read through the block cache
func createChainStatusHandler(service *BlockResolverService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blockCache, ok := BlockCacheFromContext(r.Context())
		if !ok {
			http.Error(w, "no block cache pinned for request", http.StatusInternalServerError)
			return
		}

		reader, err := evm.NewReader(service.evmClient, blockCache)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		chainID, err := reader.ChainID(r.Context())
		if err != nil {
			service.Error().Err(err).Msg("error reading chain id")
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		header, err := reader.Header(r.Context())
		if err != nil {
			service.Error().Err(err).Str("block", blockCache.Block).Msg("error reading header")
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		MarshalJSONResponse(w, ChainStatusResponse{
			Network:   blockCache.Network,
			Block:     blockCache.Block,
			ChainID:   chainID.String(),
			BlockHash: header.Hash().Hex(),
			Timestamp: header.Time,
			Stats:     blockCache.Stats(),
		}, service)
	}
}

// MarshalJSONResponse writes response as json, responding 500 if it
// can not be encoded
func MarshalJSONResponse(w http.ResponseWriter, response any, service *BlockResolverService) {
	marshalledResponse, err := json.Marshal(response)
	if err != nil {
		service.Error().Err(err).Msg("error marshalling response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(marshalledResponse)
	if err != nil {
		service.Error().Err(err).Msg("error writing response")
	}
}
