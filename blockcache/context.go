package blockcache

import "sync/atomic"

// Context pins the network and block a set of loaders read from and holds the
// Store they share. Network, Block and Store must not be changed after the
// first wrapped call.
type Context struct {
	Network string
	Block   string
	Store   Store

	tier          Tier
	tierConfig    TierConfig
	observer      Observer
	fingerprintFn Fingerprinter

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures optional Context collaborators.
type Option func(*Context)

// WithObserver reports cache events to observer.
func WithObserver(observer Observer) Option {
	return func(c *Context) {
		c.observer = observer
	}
}

// WithFingerprinter replaces the default KeccakFingerprinter.
func WithFingerprinter(fingerprinter Fingerprinter) Option {
	return func(c *Context) {
		c.fingerprintFn = fingerprinter
	}
}

// WithTier consults tier for misses on pinned blocks and writes successful
// results back to it.
func WithTier(tier Tier, config TierConfig) Option {
	return func(c *Context) {
		c.tier = tier
		c.tierConfig = config
	}
}

// NewContext returns a Context for network and block. A nil store is
// replaced by a new MemoryStore.
func NewContext(network string, block string, store Store, opts ...Option) *Context {
	if store == nil {
		store = NewMemoryStore()
	}

	c := &Context{
		Network: network,
		Block:   block,
		Store:   store,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Stats is a snapshot of lookups made through a Context.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

func (c *Context) Stats() Stats {
	stats := Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
	if c.Store != nil {
		stats.Entries = c.Store.Len()
	}
	return stats
}

// Evict removes key from the store. Callers holding the evicted Future keep
// it; the next call for key invokes the loader again.
func (c *Context) Evict(key string) {
	c.Store.Delete(key)
}

func (c *Context) fingerprinter() Fingerprinter {
	if c.fingerprintFn == nil {
		return KeccakFingerprinter{}
	}
	return c.fingerprintFn
}

func (c *Context) emit(event Event, key string, err error) {
	switch event {
	case EventHit:
		c.hits.Add(1)
	case EventMiss:
		c.misses.Add(1)
	}

	if c.observer == nil {
		return
	}
	c.observer.On(EventData{
		Event:   event,
		Key:     key,
		Network: c.Network,
		Block:   c.Block,
		Err:     err,
	})
}
