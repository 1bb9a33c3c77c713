// package service provides functions and methods
// for creating and running the api of the block resolver cache service
package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kava-labs/block-resolver-cache/blockcache"
	"github.com/kava-labs/block-resolver-cache/clients/cache"
	"github.com/kava-labs/block-resolver-cache/clients/evm"
	"github.com/kava-labs/block-resolver-cache/config"
	"github.com/kava-labs/block-resolver-cache/logging"
	"github.com/kava-labs/block-resolver-cache/metrics"
)

// BlockResolverService represents an instance of the block resolver cache service API
type BlockResolverService struct {
	httpServer *http.Server
	evmClient  evm.Client
	// tier is nil unless the shared cache tier is enabled
	tier     cache.Cache
	observer blockcache.Observer
	registry *prometheus.Registry
	config   config.Config
	*logging.ServiceLogger
}

// Dependencies wraps the clients used by the service
type Dependencies struct {
	EVMClient evm.Client
	// Tier is optional, when nil results are only cached per request
	Tier cache.Cache
}

// New connects to the evm node and (if enabled) the shared cache tier
// and returns a new BlockResolverService with the specified config and error (if any)
func New(ctx context.Context, config config.Config, serviceLogger *logging.ServiceLogger) (*BlockResolverService, error) {
	evmClient, err := evm.Dial(ctx, evm.DialConfig{
		URL:     config.EVMRPCURL,
		Timeout: config.EVMDialTimeout,
		Logger:  serviceLogger,
	})
	if err != nil {
		return nil, err
	}

	var tier cache.Cache
	if config.CacheTierEnabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Address:  config.RedisEndpointURL,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		}, serviceLogger)
		if err != nil {
			return nil, fmt.Errorf("error creating redis cache tier: %w", err)
		}
		tier = redisCache
	}

	return NewWithDependencies(config, serviceLogger, Dependencies{
		EVMClient: evmClient,
		Tier:      tier,
	})
}

// NewWithDependencies returns a new BlockResolverService using the provided clients
func NewWithDependencies(config config.Config, serviceLogger *logging.ServiceLogger, deps Dependencies) (*BlockResolverService, error) {
	if deps.EVMClient == nil {
		return nil, fmt.Errorf("evm client must not be nil")
	}

	service := &BlockResolverService{
		evmClient:     deps.EVMClient,
		tier:          deps.Tier,
		registry:      prometheus.NewRegistry(),
		config:        config,
		ServiceLogger: serviceLogger,
	}

	observers := []blockcache.Observer{newCacheEventLogger(serviceLogger)}
	if config.MetricsEnabled {
		metricsObserver, err := metrics.NewObserver(service.registry)
		if err != nil {
			return nil, fmt.Errorf("error registering cache metrics: %w", err)
		}
		observers = append(observers, metricsObserver)
	}
	service.observer = blockcache.Observers(observers...)

	// create an http router for registering handlers for a given route
	mux := http.NewServeMux()

	mux.HandleFunc(HealthcheckPath, createHealthcheckHandler(service))
	mux.HandleFunc(ServicecheckPath, createServicecheckHandler(service))

	// status routes each get a block cache context pinned for the request
	mux.HandleFunc(CacheStatusPath, createBlockPinningMiddleware(createCacheStatusHandler(service), service))
	mux.HandleFunc(ChainStatusPath, createBlockPinningMiddleware(createChainStatusHandler(service), service))

	if config.MetricsEnabled {
		mux.Handle(MetricsPath, metrics.Handler(service.registry))
	}

	// create an http server for the caller to start at their own discretion
	service.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%s", config.ServicePort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return service, nil
}

// Handler returns the http handler serving the service api
func (s *BlockResolverService) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run runs the service, returning error (if any) in the event
// the service stops
func (s *BlockResolverService) Run() error {
	s.Info().Str("addr", s.httpServer.Addr).Msg("starting block resolver cache service")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the http server and closes the shared cache tier
func (s *BlockResolverService) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	if closer, ok := s.tier.(interface{ Close() error }); ok {
		if closeErr := closer.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}

	return err
}

// cacheOptions returns the options every request scoped block cache context
// is created with
func (s *BlockResolverService) cacheOptions() []blockcache.Option {
	opts := []blockcache.Option{
		blockcache.WithObserver(s.observer),
	}

	if s.tier != nil {
		opts = append(opts, blockcache.WithTier(s.tier, blockcache.TierConfig{
			Prefix: s.config.CachePrefix,
			TTL:    s.config.CacheTTL,
		}))
	}

	return opts
}
