package blockchain

import (
	"io"
	"log/slog"
	"math/big"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

// callArgs is the subset of eth_call / eth_estimateGas arguments the fake reads
type callArgs struct {
	From  *common.Address `json:"from"`
	To    *common.Address `json:"to"`
	Input hexutil.Bytes   `json:"input"`
	Data  hexutil.Bytes   `json:"data"`
}

func (a callArgs) payload() []byte {
	if len(a.Input) > 0 {
		return a.Input
	}
	return a.Data
}

// fakeEth serves the eth namespace methods the adapters use
type fakeEth struct {
	mu sync.Mutex

	chainID  uint64
	storage  map[common.Address]map[common.Hash]common.Hash
	code     map[common.Address][]byte
	onCall   func(to common.Address, data []byte) ([]byte, error)
	latest   uint64
	pending  uint64
	tip      *big.Int
	gasPrice *big.Int
	estimate uint64

	sendErr  error
	sent     []*types.Transaction
	receipts map[common.Hash]*types.Receipt
	// receiptAfter hides receipts for this many polls
	receiptAfter int
	polls        int
}

func newFakeEth(chainID uint64) *fakeEth {
	return &fakeEth{
		chainID:  chainID,
		storage:  make(map[common.Address]map[common.Hash]common.Hash),
		code:     make(map[common.Address][]byte),
		tip:      big.NewInt(2_000_000_000),
		gasPrice: big.NewInt(10_000_000_000),
		estimate: 50_000,
		receipts: make(map[common.Hash]*types.Receipt),
	}
}

func (f *fakeEth) ChainId() *hexutil.Big {
	return (*hexutil.Big)(new(big.Int).SetUint64(f.chainID))
}

func (f *fakeEth) GetStorageAt(addr common.Address, slot string, block *string) hexutil.Bytes {
	f.mu.Lock()
	defer f.mu.Unlock()
	value := f.storage[addr][common.HexToHash(slot)]
	return value.Bytes()
}

func (f *fakeEth) GetCode(addr common.Address, block *string) hexutil.Bytes {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.code[addr]
}

func (f *fakeEth) Call(args callArgs, block *string) (hexutil.Bytes, error) {
	if f.onCall == nil || args.To == nil {
		return nil, nil
	}
	return f.onCall(*args.To, args.payload())
}

func (f *fakeEth) GetTransactionCount(addr common.Address, block string) hexutil.Uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if block == "pending" {
		return hexutil.Uint64(f.pending)
	}
	return hexutil.Uint64(f.latest)
}

func (f *fakeEth) MaxPriorityFeePerGas() *hexutil.Big {
	return (*hexutil.Big)(f.tip)
}

func (f *fakeEth) GasPrice() *hexutil.Big {
	return (*hexutil.Big)(f.gasPrice)
}

func (f *fakeEth) EstimateGas(args callArgs, block *string) hexutil.Uint64 {
	return hexutil.Uint64(f.estimate)
}

func (f *fakeEth) SendRawTransaction(raw hexutil.Bytes) (common.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return common.Hash{}, f.sendErr
	}
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, err
	}
	f.sent = append(f.sent, tx)
	return tx.Hash(), nil
}

func (f *fakeEth) GetTransactionReceipt(hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	receipt, ok := f.receipts[hash]
	if !ok || f.polls <= f.receiptAfter {
		return nil, nil
	}
	return receipt, nil
}

// mine records a receipt for every sent transaction
func (f *fakeEth) mine(status uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, tx := range f.sent {
		f.receipts[tx.Hash()] = &types.Receipt{
			Type:              types.DynamicFeeTxType,
			Status:            status,
			CumulativeGasUsed: 45_000,
			Logs:              []*types.Log{},
			TxHash:            tx.Hash(),
			GasUsed:           45_000,
			BlockNumber:       big.NewInt(int64(100 + i)),
		}
	}
}

func (f *fakeEth) sentTxs() []*types.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*types.Transaction(nil), f.sent...)
}

// startFakeNode serves eth over HTTP and returns the endpoint
func startFakeNode(t *testing.T, eth *fakeEth) string {
	t.Helper()
	srv := rpc.NewServer()
	require.NoError(t, srv.RegisterName("eth", eth))
	hs := httptest.NewServer(srv)
	t.Cleanup(func() {
		hs.Close()
		srv.Stop()
	})
	return hs.URL
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
