package evm_test

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

// fakeClient serves fixed chain state and records every call it receives.
type fakeClient struct {
	chainID     int64
	latest      uint64
	finalized   uint64
	balances    map[common.Address]int64
	failBalance bool

	mutex        sync.Mutex
	calls        map[string]int
	blockNumbers []*big.Int
}

var _ evm.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{
		chainID:   2222,
		latest:    42,
		finalized: 40,
		balances:  make(map[common.Address]int64),
		calls:     make(map[string]int),
	}
}

func (c *fakeClient) record(method string, blockNumber *big.Int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.calls[method]++
	if blockNumber != nil {
		c.blockNumbers = append(c.blockNumbers, blockNumber)
	}
}

func (c *fakeClient) callCount(method string) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.calls[method]
}

func (c *fakeClient) ChainID(ctx context.Context) (*big.Int, error) {
	c.record("ChainID", nil)
	return big.NewInt(c.chainID), nil
}

func (c *fakeClient) BlockNumber(ctx context.Context) (uint64, error) {
	c.record("BlockNumber", nil)
	return c.latest, nil
}

func (c *fakeClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	c.record("HeaderByNumber", number)

	headerNumber := new(big.Int).Set(number)
	if number.Sign() < 0 {
		headerNumber = new(big.Int).SetUint64(c.finalized)
	}

	return &types.Header{
		Number:     headerNumber,
		Difficulty: big.NewInt(0),
		Time:       1700000000,
	}, nil
}

func (c *fakeClient) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	c.record("BalanceAt", blockNumber)
	if c.failBalance {
		return nil, errNodeUnavailable
	}
	return big.NewInt(c.balances[account]), nil
}

func (c *fakeClient) NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error) {
	c.record("NonceAt", blockNumber)
	return 7, nil
}

func (c *fakeClient) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	c.record("CodeAt", blockNumber)
	return []byte{0x60, 0x80, 0x60, 0x40}, nil
}

func (c *fakeClient) StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error) {
	c.record("StorageAt", blockNumber)
	return key.Bytes(), nil
}

func (c *fakeClient) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	c.record("CallContract", blockNumber)
	return msg.Data, nil
}
