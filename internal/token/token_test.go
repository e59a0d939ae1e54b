package token

import (
	"context"
	"encoding/hex"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe512961708279feb1be6ae5538da033"

type fakeEVM struct {
	sent    *gethtypes.Transaction
	receipt *gethtypes.Receipt
	sendErr error

	// pending makes the first N receipt lookups report the transaction as
	// not yet mined.
	pending      int
	receiptCalls int
}

func (f *fakeEVM) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeEVM) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeEVM) SendTransaction(ctx context.Context, tx *gethtypes.Transaction) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = tx
	return nil
}

func (f *fakeEVM) TransactionReceipt(ctx context.Context, txHash common.Hash) (*gethtypes.Receipt, error) {
	f.receiptCalls++
	if f.pending > 0 {
		f.pending--
		return nil, ethereum.NotFound
	}
	if f.receipt == nil {
		return nil, ethereum.NotFound
	}
	return f.receipt, nil
}

func (f *fakeEVM) NetworkID(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1337), nil
}

func successReceipt(token, recipient common.Address, amount *big.Int) *gethtypes.Receipt {
	return &gethtypes.Receipt{
		Status: gethtypes.ReceiptStatusSuccessful,
		Logs: []*gethtypes.Log{
			{
				Address: token,
				Topics: []common.Hash{
					transferEventSignature,
					common.Hash{},
					common.BytesToHash(recipient.Bytes()),
				},
				Data: common.LeftPadBytes(amount.Bytes(), 32),
			},
		},
	}
}

func TestClient_Transfer(t *testing.T) {
	tokenAddr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	recipient := common.HexToAddress("0x2222222222222222222222222222222222222222")
	amount := big.NewInt(500)

	signer, err := NewSigner(testKey)
	require.NoError(t, err)

	t.Run("settled transfer returns the transaction hash", func(t *testing.T) {
		evm := &fakeEVM{receipt: successReceipt(tokenAddr, recipient, amount)}
		client := NewClient(evm, signer, 0)

		ref, err := client.Transfer(context.Background(), tokenAddr.Hex(), recipient.Hex(), amount)
		require.NoError(t, err)
		require.NotNil(t, evm.sent)
		assert.Equal(t, evm.sent.Hash().Hex(), ref)

		data := evm.sent.Data()
		require.GreaterOrEqual(t, len(data), 4+32+32)
		assert.Equal(t, "a9059cbb", hex.EncodeToString(data[:4]))
		assert.Equal(t, recipient, common.BytesToAddress(data[4:36]))
		assert.Equal(t, amount, new(big.Int).SetBytes(data[36:68]))
		assert.Equal(t, &tokenAddr, evm.sent.To())
	})

	t.Run("pending transfer is polled until mined", func(t *testing.T) {
		evm := &fakeEVM{
			pending: 3,
			receipt: successReceipt(tokenAddr, recipient, amount),
		}
		client := NewClient(evm, signer, 0)
		client.receiptPoll = time.Millisecond
		client.receiptWait = time.Second

		ref, err := client.Transfer(context.Background(), tokenAddr.Hex(), recipient.Hex(), amount)
		require.NoError(t, err)
		assert.NotEmpty(t, ref)
		assert.GreaterOrEqual(t, evm.receiptCalls, 4)
	})

	t.Run("never-mined transfer errors after the wait budget", func(t *testing.T) {
		evm := &fakeEVM{}
		client := NewClient(evm, signer, 0)
		client.receiptPoll = time.Millisecond
		client.receiptWait = 10 * time.Millisecond

		_, err := client.Transfer(context.Background(), tokenAddr.Hex(), recipient.Hex(), amount)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not mined")
		assert.Greater(t, evm.receiptCalls, 1)
	})

	t.Run("failed receipt yields an error", func(t *testing.T) {
		evm := &fakeEVM{receipt: &gethtypes.Receipt{Status: gethtypes.ReceiptStatusFailed}}
		client := NewClient(evm, signer, 0)

		_, err := client.Transfer(context.Background(), tokenAddr.Hex(), recipient.Hex(), amount)
		assert.Error(t, err)
	})

	t.Run("receipt without a matching transfer log yields an error", func(t *testing.T) {
		other := common.HexToAddress("0x3333333333333333333333333333333333333333")
		evm := &fakeEVM{receipt: successReceipt(tokenAddr, other, amount)}
		client := NewClient(evm, signer, 0)

		_, err := client.Transfer(context.Background(), tokenAddr.Hex(), recipient.Hex(), amount)
		assert.Error(t, err)
	})

	t.Run("invalid addresses are rejected before any rpc call", func(t *testing.T) {
		evm := &fakeEVM{}
		client := NewClient(evm, signer, 0)

		_, err := client.Transfer(context.Background(), "not-an-address", recipient.Hex(), amount)
		assert.Error(t, err)

		_, err = client.Transfer(context.Background(), tokenAddr.Hex(), "not-an-address", amount)
		assert.Error(t, err)
		assert.Nil(t, evm.sent)
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		evm := &fakeEVM{}
		client := NewClient(evm, signer, 0)

		_, err := client.Transfer(context.Background(), tokenAddr.Hex(), recipient.Hex(), big.NewInt(0))
		assert.Error(t, err)
	})
}

func TestNewSigner(t *testing.T) {
	t.Run("accepts a 0x prefix", func(t *testing.T) {
		s, err := NewSigner("0x" + testKey)
		require.NoError(t, err)
		assert.NotEqual(t, common.Address{}, s.Address())
	})

	t.Run("rejects malformed keys", func(t *testing.T) {
		_, err := NewSigner("zz")
		assert.Error(t, err)
	})
}
