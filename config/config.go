// package config provides functions and values
// for reading and validating block resolver cache service configuration
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel              string
	ServicePort           string
	EVMRPCURL             string
	EVMDialTimeout        time.Duration
	NetworkName           string
	CacheTierEnabled      bool
	RedisEndpointURL      string
	RedisPassword         string
	RedisDB               int
	CachePrefix           string
	CacheTTL              time.Duration
	MetricsEnabled        bool
	DefaultRequestedBlock string
}

const (
	LOG_LEVEL_ENVIRONMENT_KEY                = "LOG_LEVEL"
	DEFAULT_LOG_LEVEL                        = "INFO"
	SERVICE_PORT_ENVIRONMENT_KEY             = "SERVICE_PORT"
	DEFAULT_SERVICE_PORT                     = "7777"
	EVM_RPC_URL_ENVIRONMENT_KEY              = "EVM_RPC_URL"
	DEFAULT_EVM_RPC_URL                      = "http://localhost:8545"
	EVM_DIAL_TIMEOUT_SECONDS_ENVIRONMENT_KEY = "EVM_DIAL_TIMEOUT_SECONDS"
	DEFAULT_EVM_DIAL_TIMEOUT_SECONDS         = 10
	NETWORK_NAME_ENVIRONMENT_KEY             = "NETWORK_NAME"
	CACHE_TIER_ENABLED_ENVIRONMENT_KEY       = "CACHE_TIER_ENABLED"
	DEFAULT_CACHE_TIER_ENABLED               = false
	REDIS_ENDPOINT_URL_ENVIRONMENT_KEY       = "REDIS_ENDPOINT_URL"
	DEFAULT_REDIS_ENDPOINT_URL               = "localhost:6379"
	REDIS_PASSWORD_ENVIRONMENT_KEY           = "REDIS_PASSWORD"
	REDIS_DB_ENVIRONMENT_KEY                 = "REDIS_DB"
	DEFAULT_REDIS_DB                         = 0
	CACHE_PREFIX_ENVIRONMENT_KEY             = "CACHE_PREFIX"
	DEFAULT_CACHE_PREFIX                     = "resolver"
	CACHE_TTL_SECONDS_ENVIRONMENT_KEY        = "CACHE_TTL_SECONDS"
	DEFAULT_CACHE_TTL_SECONDS                = 600
	METRICS_ENABLED_ENVIRONMENT_KEY          = "METRICS_ENABLED"
	DEFAULT_METRICS_ENABLED                  = true
	DEFAULT_REQUESTED_BLOCK_ENVIRONMENT_KEY  = "DEFAULT_REQUESTED_BLOCK"
	DEFAULT_DEFAULT_REQUESTED_BLOCK          = "latest"
)

// EnvOrDefault fetches an environment variable value, or if not set returns the fallback value
func EnvOrDefault(key string, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// EnvOrDefaultBool fetches an environment variable value, or if not set or
// not parseable as a bool returns the fallback value
func EnvOrDefaultBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		boolVal, err := strconv.ParseBool(val)
		if err != nil {
			return fallback
		}
		return boolVal
	}
	return fallback
}

// EnvOrDefaultInt fetches an environment variable value, or if not set or
// not parseable as an int returns the fallback value
func EnvOrDefaultInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		intVal, err := strconv.Atoi(val)
		if err != nil {
			return fallback
		}
		return intVal
	}
	return fallback
}

// LoadDotEnv loads environment values from the given files (.env when none
// are given) without overriding values that are already set. Missing files
// are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	for _, filename := range filenames {
		err := godotenv.Load(filename)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

// ReadConfig attempts to parse service config from environment values
// the returned config may be invalid and should be validated via the `Validate`
// function of the Config package before use
func ReadConfig() Config {
	return Config{
		LogLevel:              EnvOrDefault(LOG_LEVEL_ENVIRONMENT_KEY, DEFAULT_LOG_LEVEL),
		ServicePort:           EnvOrDefault(SERVICE_PORT_ENVIRONMENT_KEY, DEFAULT_SERVICE_PORT),
		EVMRPCURL:             EnvOrDefault(EVM_RPC_URL_ENVIRONMENT_KEY, DEFAULT_EVM_RPC_URL),
		EVMDialTimeout:        time.Duration(EnvOrDefaultInt(EVM_DIAL_TIMEOUT_SECONDS_ENVIRONMENT_KEY, DEFAULT_EVM_DIAL_TIMEOUT_SECONDS)) * time.Second,
		NetworkName:           EnvOrDefault(NETWORK_NAME_ENVIRONMENT_KEY, ""),
		CacheTierEnabled:      EnvOrDefaultBool(CACHE_TIER_ENABLED_ENVIRONMENT_KEY, DEFAULT_CACHE_TIER_ENABLED),
		RedisEndpointURL:      EnvOrDefault(REDIS_ENDPOINT_URL_ENVIRONMENT_KEY, DEFAULT_REDIS_ENDPOINT_URL),
		RedisPassword:         EnvOrDefault(REDIS_PASSWORD_ENVIRONMENT_KEY, ""),
		RedisDB:               EnvOrDefaultInt(REDIS_DB_ENVIRONMENT_KEY, DEFAULT_REDIS_DB),
		CachePrefix:           EnvOrDefault(CACHE_PREFIX_ENVIRONMENT_KEY, DEFAULT_CACHE_PREFIX),
		CacheTTL:              cacheTTL(EnvOrDefaultInt(CACHE_TTL_SECONDS_ENVIRONMENT_KEY, DEFAULT_CACHE_TTL_SECONDS)),
		MetricsEnabled:        EnvOrDefaultBool(METRICS_ENABLED_ENVIRONMENT_KEY, DEFAULT_METRICS_ENABLED),
		DefaultRequestedBlock: EnvOrDefault(DEFAULT_REQUESTED_BLOCK_ENVIRONMENT_KEY, DEFAULT_DEFAULT_REQUESTED_BLOCK),
	}
}

// -1 seconds means cache indefinitely and is kept as is
func cacheTTL(seconds int) time.Duration {
	if seconds == -1 {
		return -1
	}
	return time.Duration(seconds) * time.Second
}
