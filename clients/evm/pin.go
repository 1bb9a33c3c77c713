package evm

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/kava-labs/block-resolver-cache/blockcache"
	"github.com/kava-labs/block-resolver-cache/decode"
)

// Mapping of the moving block tags to the numbers ethclient
// sends as the corresponding tag when requesting a header.
// Pending state is not a block that can be pinned, so it is
// read at the latest block instead.
var movingBlockTagToRPCNumber = map[string]rpc.BlockNumber{
	decode.BlockTagLatest:    rpc.LatestBlockNumber,
	decode.BlockTagEmpty:     rpc.LatestBlockNumber,
	decode.BlockTagPending:   rpc.LatestBlockNumber,
	decode.BlockTagFinalized: rpc.FinalizedBlockNumber,
	decode.BlockTagSafe:      rpc.SafeBlockNumber,
}

// ResolveNetwork returns network when set, otherwise the chain id reported
// by the node.
func ResolveNetwork(ctx context.Context, client Client, network string) (string, error) {
	if network != "" {
		return network, nil
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("error fetching chain id: %w", err)
	}

	return chainID.String(), nil
}

// ResolveBlock turns a requested block identifier into one that refers to
// a single chain state: numbers are normalized to decimal, earliest is kept
// and moving tags such as latest are replaced by the number they currently
// refer to.
func ResolveBlock(ctx context.Context, client Client, requested string) (string, error) {
	blockNumber, err := decode.ParseBlockIdentifier(requested)
	if err != nil {
		return "", err
	}

	if blockNumber >= 0 {
		return decode.FormatBlockNumber(uint64(blockNumber)), nil
	}

	if blockNumber == decode.BlockTagToNumberCodec[decode.BlockTagEarliest] {
		return decode.BlockTagEarliest, nil
	}

	tag := strings.TrimSpace(requested)
	if tag == "" {
		tag = decode.BlockTagEmpty
	}

	rpcNumber, exists := movingBlockTagToRPCNumber[tag]
	if !exists {
		return "", fmt.Errorf("%w: unsupported block tag %s", decode.ErrInvalidBlockIdentifier, requested)
	}

	if rpcNumber == rpc.LatestBlockNumber {
		latest, err := client.BlockNumber(ctx)
		if err != nil {
			return "", fmt.Errorf("error fetching latest block number: %w", err)
		}
		return decode.FormatBlockNumber(latest), nil
	}

	header, err := client.HeaderByNumber(ctx, big.NewInt(rpcNumber.Int64()))
	if err != nil {
		return "", fmt.Errorf("error fetching %s header: %w", tag, err)
	}

	return decode.FormatBlockNumber(header.Number.Uint64()), nil
}

// Pin resolves network and block and returns a new block cache context for
// them backed by store.
func Pin(
	ctx context.Context,
	client Client,
	network string,
	requestedBlock string,
	store blockcache.Store,
	opts ...blockcache.Option,
) (*blockcache.Context, error) {
	network, err := ResolveNetwork(ctx, client, network)
	if err != nil {
		return nil, err
	}

	block, err := ResolveBlock(ctx, client, requestedBlock)
	if err != nil {
		return nil, err
	}

	return blockcache.NewContext(network, block, store, opts...), nil
}

// BlockNumberArg converts a pinned block identifier into the block number
// argument ethclient expects.
func BlockNumberArg(block string) (*big.Int, error) {
	blockNumber, err := decode.ParseBlockIdentifier(block)
	if err != nil {
		return nil, err
	}

	if blockNumber == decode.BlockTagToNumberCodec[decode.BlockTagEarliest] {
		return big.NewInt(0), nil
	}

	if blockNumber < 0 {
		return nil, fmt.Errorf("%w: block %s is not pinned", decode.ErrInvalidBlockIdentifier, block)
	}

	return big.NewInt(blockNumber), nil
}
