package service

import (
	"github.com/kava-labs/block-resolver-cache/blockcache"
)

const (
	HealthcheckPath  = "/healthcheck"
	ServicecheckPath = "/servicecheck"
	CacheStatusPath  = "/status/cache"
	ChainStatusPath  = "/status/chain"
	MetricsPath      = "/metrics"
)

// CacheStatusResponse describes the block cache context pinned for a request
type CacheStatusResponse struct {
	RequestID   string           `json:"request_id"`
	Network     string           `json:"network"`
	Block       string           `json:"block"`
	Pinned      bool             `json:"pinned"`
	TierEnabled bool             `json:"tier_enabled"`
	Stats       blockcache.Stats `json:"stats"`
}

// ChainStatusResponse describes the chain at the block pinned for a request
type ChainStatusResponse struct {
	Network   string           `json:"network"`
	Block     string           `json:"block"`
	ChainID   string           `json:"chain_id"`
	BlockHash string           `json:"block_hash"`
	Timestamp uint64           `json:"timestamp"`
	Stats     blockcache.Stats `json:"stats"`
}
