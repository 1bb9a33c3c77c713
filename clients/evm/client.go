// package evm provides access to an EVM json-rpc node and reads
// chain state through block cache contexts pinned to a single block
package evm

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/kava-labs/block-resolver-cache/logging"
)

// Client is the subset of the ethclient API used to resolve chain state.
type Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

var _ Client = (*ethclient.Client)(nil)

// DialConfig wraps values used to connect to an evm node
type DialConfig struct {
	URL string
	// Timeout bounds the total time spent waiting for the node to respond
	Timeout time.Duration
	// RetryInterval is the pause between connection attempts
	RetryInterval time.Duration
	Logger        *logging.ServiceLogger
}

// Dial connects to the evm node at config.URL and waits until it answers
// a chain id request, retrying until config.Timeout elapses.
func Dial(ctx context.Context, config DialConfig) (*ethclient.Client, error) {
	if config.RetryInterval == 0 {
		config.RetryInterval = 500 * time.Millisecond
	}

	dialCtx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	client, err := ethclient.DialContext(dialCtx, config.URL)
	if err != nil {
		return nil, fmt.Errorf("error dialing evm node %s: %w", config.URL, err)
	}

	var attempts int
	err = backoff.Retry(func() error {
		attempts++

		chainID, err := client.ChainID(dialCtx)
		if err != nil {
			config.Logger.Debug().
				Err(err).
				Int("attempt", attempts).
				Str("url", config.URL).
				Msg("evm node not ready")
			return err
		}

		config.Logger.Info().
			Str("url", config.URL).
			Str("chain_id", chainID.String()).
			Msg("connected to evm node")
		return nil
	}, backoff.WithContext(backoff.NewConstantBackOff(config.RetryInterval), dialCtx))

	if err != nil {
		client.Close()
		return nil, fmt.Errorf("evm node %s unreachable after %d attempts: %w", config.URL, attempts, err)
	}

	return client, nil
}
