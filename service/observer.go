package service

import (
	"github.com/kava-labs/block-resolver-cache/blockcache"
	"github.com/kava-labs/block-resolver-cache/logging"
)

// newCacheEventLogger logs block cache lookups at trace level
// and loader or tier failures at debug level
func newCacheEventLogger(logger *logging.ServiceLogger) blockcache.Observer {
	return blockcache.ObserverFunc(func(data blockcache.EventData) {
		event := logger.Trace()
		if data.Err != nil {
			event = logger.Debug().Err(data.Err)
		}

		event.
			Str("event", data.Event.String()).
			Str("network", data.Network).
			Str("block", data.Block).
			Str("key", data.Key).
			Msg("block cache event")
	})
}
