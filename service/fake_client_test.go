package service_test

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/kava-labs/block-resolver-cache/clients/evm"
)

var errNodeUnavailable = errors.New("node unavailable")

// fakeEVMClient serves a fixed chain and counts the calls it receives.
type fakeEVMClient struct {
	latest uint64
	down   bool

	mutex sync.Mutex
	calls map[string]int
}

var _ evm.Client = (*fakeEVMClient)(nil)

func newFakeEVMClient() *fakeEVMClient {
	return &fakeEVMClient{
		latest: 42,
		calls:  make(map[string]int),
	}
}

func (c *fakeEVMClient) record(method string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.calls[method]++
	if c.down {
		return errNodeUnavailable
	}
	return nil
}

func (c *fakeEVMClient) callCount(method string) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.calls[method]
}

func (c *fakeEVMClient) ChainID(ctx context.Context) (*big.Int, error) {
	if err := c.record("ChainID"); err != nil {
		return nil, err
	}
	return big.NewInt(2222), nil
}

func (c *fakeEVMClient) BlockNumber(ctx context.Context) (uint64, error) {
	if err := c.record("BlockNumber"); err != nil {
		return 0, err
	}
	return c.latest, nil
}

func (c *fakeEVMClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	if err := c.record("HeaderByNumber"); err != nil {
		return nil, err
	}
	return &types.Header{
		Number:     new(big.Int).Set(number),
		Difficulty: big.NewInt(0),
		Time:       1700000000 + number.Uint64(),
	}, nil
}

func (c *fakeEVMClient) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return big.NewInt(0), c.record("BalanceAt")
}

func (c *fakeEVMClient) NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error) {
	return 0, c.record("NonceAt")
}

func (c *fakeEVMClient) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return nil, c.record("CodeAt")
}

func (c *fakeEVMClient) StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error) {
	return nil, c.record("StorageAt")
}

func (c *fakeEVMClient) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return nil, c.record("CallContract")
}
