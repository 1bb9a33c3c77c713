package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kava-labs/block-resolver-cache/decode"
)

var (
	ValidLogLevels = [4]string{"TRACE", "DEBUG", "INFO", "ERROR"}
)

// Validate validates the provided config
// returning a list of errors that can be unwrapped with `errors.Unwrap`
// or nil if the config is valid
func Validate(config Config) error {
	var validLogLevel bool
	var allErrs error

	for _, validLevel := range ValidLogLevels {
		if config.LogLevel == validLevel {
			validLogLevel = true
			break
		}
	}

	if !validLogLevel {
		allErrs = fmt.Errorf("invalid %s specified %s, supported values are %v", LOG_LEVEL_ENVIRONMENT_KEY, config.LogLevel, ValidLogLevels)
	}

	_, err := strconv.Atoi(config.ServicePort)

	if err != nil {
		allErrs = errors.Join(allErrs, fmt.Errorf("invalid %s specified %s", SERVICE_PORT_ENVIRONMENT_KEY, config.ServicePort))
	}

	evmRPCURL, err := url.Parse(config.EVMRPCURL)
	if err != nil || evmRPCURL.Scheme == "" || evmRPCURL.Host == "" {
		allErrs = errors.Join(allErrs, fmt.Errorf("invalid %s specified %s, must be an absolute url", EVM_RPC_URL_ENVIRONMENT_KEY, config.EVMRPCURL))
	}

	if config.EVMDialTimeout <= 0 {
		allErrs = errors.Join(allErrs, fmt.Errorf("invalid %s specified %s, must be greater than zero", EVM_DIAL_TIMEOUT_SECONDS_ENVIRONMENT_KEY, config.EVMDialTimeout))
	}

	// network names become the first segment of every cache key
	if strings.Contains(config.NetworkName, ":") {
		allErrs = errors.Join(allErrs, fmt.Errorf("invalid %s specified %s, must not contain colon symbol", NETWORK_NAME_ENVIRONMENT_KEY, config.NetworkName))
	}

	if _, err := decode.ParseBlockIdentifier(config.DefaultRequestedBlock); err != nil {
		allErrs = errors.Join(allErrs, fmt.Errorf("invalid %s specified %s: %w", DEFAULT_REQUESTED_BLOCK_ENVIRONMENT_KEY, config.DefaultRequestedBlock, err))
	}

	if config.CacheTierEnabled {
		if config.RedisEndpointURL == "" {
			allErrs = errors.Join(allErrs, fmt.Errorf("invalid %s specified %s, must not be empty", REDIS_ENDPOINT_URL_ENVIRONMENT_KEY, config.RedisEndpointURL))
		}
		if config.RedisDB < 0 {
			allErrs = errors.Join(allErrs, fmt.Errorf("invalid %s specified %d, must not be negative", REDIS_DB_ENVIRONMENT_KEY, config.RedisDB))
		}
		if config.CacheTTL <= 0 && config.CacheTTL != -1 {
			allErrs = errors.Join(allErrs, fmt.Errorf("invalid %s specified %s, must be greater than zero or -1", CACHE_TTL_SECONDS_ENVIRONMENT_KEY, config.CacheTTL))
		}
		if strings.Contains(config.CachePrefix, ":") {
			allErrs = errors.Join(allErrs, fmt.Errorf("invalid %s specified %s, must not contain colon symbol", CACHE_PREFIX_ENVIRONMENT_KEY, config.CachePrefix))
		}
		if config.CachePrefix == "" {
			allErrs = errors.Join(allErrs, fmt.Errorf("invalid %s specified %s, must not be empty", CACHE_PREFIX_ENVIRONMENT_KEY, config.CachePrefix))
		}
	}

	return allErrs
}
