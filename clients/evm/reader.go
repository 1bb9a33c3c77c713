package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/sync/errgroup"

	"github.com/kava-labs/block-resolver-cache/blockcache"
)

// Reader reads chain state at the block its cache context is pinned to.
// Every read goes through the context's store, so repeated and concurrent
// reads of the same value share one json-rpc request.
type Reader struct {
	cache       *blockcache.Context
	blockNumber *big.Int

	chainID func(ctx context.Context) *blockcache.Future[*big.Int]
	header  func(ctx context.Context) *blockcache.Future[*types.Header]
	balance func(ctx context.Context, account common.Address) *blockcache.Future[*big.Int]
	nonce   func(ctx context.Context, account common.Address) *blockcache.Future[uint64]
	code    func(ctx context.Context, account common.Address) *blockcache.Future[[]byte]
	storage func(ctx context.Context, account common.Address, slot common.Hash) *blockcache.Future[[]byte]
	call    func(ctx context.Context, msg ethereum.CallMsg) *blockcache.Future[[]byte]
}

// NewReader returns a Reader for client at the block c is pinned to.
func NewReader(client Client, c *blockcache.Context) (*Reader, error) {
	blockNumber, err := BlockNumberArg(c.Block)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		cache:       c,
		blockNumber: blockNumber,
	}

	r.chainID = blockcache.Wrap0(c, blockcache.StaticKey("chainId"), client.ChainID)

	r.header = blockcache.Wrap0(c, blockcache.StaticKey("header"), func(ctx context.Context) (*types.Header, error) {
		return client.HeaderByNumber(ctx, r.blockArg())
	})

	r.balance = blockcache.Wrap1(c, blockcache.StaticKey("balance"), func(ctx context.Context, account common.Address) (*big.Int, error) {
		return client.BalanceAt(ctx, account, r.blockArg())
	})

	r.nonce = blockcache.Wrap1(c, blockcache.StaticKey("nonce"), func(ctx context.Context, account common.Address) (uint64, error) {
		return client.NonceAt(ctx, account, r.blockArg())
	})

	r.code = blockcache.Wrap1(c, blockcache.StaticKey("code"), func(ctx context.Context, account common.Address) ([]byte, error) {
		return client.CodeAt(ctx, account, r.blockArg())
	})

	// account and slot fully identify a storage read, no fingerprint needed
	r.storage = blockcache.Wrap2(
		c,
		blockcache.KeyFunc2(func(account common.Address, slot common.Hash) string {
			return "storage:" + account.Hex() + ":" + slot.Hex()
		}),
		func(ctx context.Context, account common.Address, slot common.Hash) ([]byte, error) {
			return client.StorageAt(ctx, account, slot, r.blockArg())
		},
	)

	r.call = blockcache.Wrap1(c, blockcache.StaticKey("call"), func(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
		return client.CallContract(ctx, msg, r.blockArg())
	})

	return r, nil
}

// blockArg returns a copy since ethclient does not promise to leave
// the argument untouched.
func (r *Reader) blockArg() *big.Int {
	return new(big.Int).Set(r.blockNumber)
}

// Context returns the block cache context the reader is pinned to.
func (r *Reader) Context() *blockcache.Context {
	return r.cache
}

func (r *Reader) ChainID(ctx context.Context) (*big.Int, error) {
	return r.chainID(ctx).Await(ctx)
}

func (r *Reader) Header(ctx context.Context) (*types.Header, error) {
	return r.header(ctx).Await(ctx)
}

func (r *Reader) Balance(ctx context.Context, account common.Address) (*big.Int, error) {
	return r.balance(ctx, account).Await(ctx)
}

func (r *Reader) Nonce(ctx context.Context, account common.Address) (uint64, error) {
	return r.nonce(ctx, account).Await(ctx)
}

func (r *Reader) Code(ctx context.Context, account common.Address) ([]byte, error) {
	return r.code(ctx, account).Await(ctx)
}

func (r *Reader) Storage(ctx context.Context, account common.Address, slot common.Hash) ([]byte, error) {
	return r.storage(ctx, account, slot).Await(ctx)
}

// Call executes a read only contract call.
func (r *Reader) Call(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return r.call(ctx, msg).Await(ctx)
}

// AccountSnapshot is the state of an account at a pinned block
type AccountSnapshot struct {
	Network  string         `json:"network"`
	Block    string         `json:"block"`
	Address  common.Address `json:"address"`
	Balance  *big.Int       `json:"balance"`
	Nonce    uint64         `json:"nonce"`
	CodeSize int            `json:"code_size"`
}

// AccountSnapshot reads balance, nonce and code of account concurrently.
func (r *Reader) AccountSnapshot(ctx context.Context, account common.Address) (*AccountSnapshot, error) {
	snapshot := &AccountSnapshot{
		Network: r.cache.Network,
		Block:   r.cache.Block,
		Address: account,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balance, err := r.Balance(gctx, account)
		snapshot.Balance = balance
		return err
	})

	g.Go(func() error {
		nonce, err := r.Nonce(gctx, account)
		snapshot.Nonce = nonce
		return err
	})

	g.Go(func() error {
		code, err := r.Code(gctx, account)
		snapshot.CodeSize = len(code)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}
