package blockcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/kava-labs/block-resolver-cache/clients/cache"
	"github.com/kava-labs/block-resolver-cache/decode"
)

// Tier is a byte level cache shared beyond a single Context, such as redis.
// Its Get returns cache.ErrNotFound for missing keys; cache.Cache
// implementations satisfy it.
type Tier interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, expiration time.Duration) error
}

const tierWriteTimeout = 5 * time.Second

type TierConfig struct {
	// Prefix is prepended to every key written to the tier.
	Prefix string
	// TTL for values written to the tier, -1 means no expiration.
	TTL time.Duration
}

// tiered reports whether results for this context may be shared through the
// tier. Tags such as latest resolve to different blocks over time so only
// pinned blocks qualify.
func (c *Context) tiered() bool {
	return c.tier != nil && decode.IsPinned(c.Block)
}

func (c *Context) tierKey(key string) string {
	if c.tierConfig.Prefix == "" {
		return key
	}
	return c.tierConfig.Prefix + ":" + key
}

func readTier[T any](ctx context.Context, c *Context, key string) (T, bool) {
	var value T

	data, err := c.tier.Get(ctx, c.tierKey(key))
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			c.emit(EventTierError, key, err)
		}
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		c.emit(EventTierError, key, err)
		return value, false
	}

	c.emit(EventTierHit, key, nil)
	return value, true
}

// writeTier runs after waiters have been released, so it does not use the
// context of the call that created the entry.
func writeTier[T any](c *Context, key string, value T) {
	ctx, cancel := context.WithTimeout(context.Background(), tierWriteTimeout)
	defer cancel()

	data, err := json.Marshal(value)
	if err != nil {
		c.emit(EventTierError, key, err)
		return
	}

	if err := c.tier.Set(ctx, c.tierKey(key), data, c.tierConfig.TTL); err != nil {
		c.emit(EventTierError, key, err)
	}
}
