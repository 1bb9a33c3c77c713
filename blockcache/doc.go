// Package blockcache memoizes on-chain data loaders within a single
// (network, block) snapshot.
//
// A Context pins a network and block and owns a Store that is shared by every
// loader wrapped against it. Wrapping a loader returns a function with the same
// arguments which, instead of invoking the loader directly, looks up a Future
// under the key
//
//	{network}:{block}:{logicalKey}{argSuffix}
//
// and only invokes the loader when no Future is stored yet. The Future is
// stored before the loader settles, so callers racing on the same key share a
// single invocation. Settled failures stay cached until the key is evicted or
// the Context is discarded.
//
// The Store is never created or destroyed by the wrappers. Callers usually
// create one Context per request and let it go out of scope with the request.
package blockcache
