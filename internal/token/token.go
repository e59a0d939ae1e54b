// Package token sends ERC-20 payouts and confirms they settled. The reward
// service treats it as an opaque Transferor so tests can substitute a fake.
package token

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

var transferEventSignature = gethcrypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// transfer(address,uint256) selector.
var transferSelector = gethcrypto.Keccak256([]byte("transfer(address,uint256)"))[:4]

// Transferor moves tokens to a recipient and returns a reference identifying
// the settled transfer.
type Transferor interface {
	Transfer(ctx context.Context, tokenAddress, recipient string, amount *big.Int) (txRef string, err error)
}

// EVMClient is the subset of the Ethereum RPC the client uses.
type EVMClient interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *gethtypes.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*gethtypes.Receipt, error)
	NetworkID(ctx context.Context) (*big.Int, error)
}

// Dial initialises an EVM RPC client for the provided endpoint.
func Dial(endpoint string) (*ethclient.Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("evm endpoint required")
	}
	return ethclient.Dial(trimmed)
}

const (
	defaultReceiptPoll = 2 * time.Second
	defaultReceiptWait = 2 * time.Minute
)

// Client is a Transferor backed by an Ethereum node and a funded signing key.
type Client struct {
	client   EVMClient
	key      *Signer
	gasLimit uint64

	receiptPoll time.Duration
	receiptWait time.Duration
}

// Signer wraps the distribution account's private key.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner parses a hex-encoded secp256k1 private key.
func NewSigner(hexKey string) (*Signer, error) {
	key, err := gethcrypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse distribution key: %w", err)
	}
	return &Signer{
		key:     key,
		address: gethcrypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the distribution account address.
func (s *Signer) Address() common.Address { return s.address }

// NewClient constructs a Transferor from an Ethereum client and signer.
func NewClient(client EVMClient, signer *Signer, gasLimit uint64) *Client {
	if gasLimit == 0 {
		gasLimit = 100_000
	}
	return &Client{
		client:      client,
		key:         signer,
		gasLimit:    gasLimit,
		receiptPoll: defaultReceiptPoll,
		receiptWait: defaultReceiptWait,
	}
}

// Transfer sends an ERC-20 transfer and waits for its receipt. The returned
// reference is the transaction hash; a failed or unconfirmed transfer returns
// an error and no reference.
func (c *Client) Transfer(ctx context.Context, tokenAddress, recipient string, amount *big.Int) (string, error) {
	if c == nil || c.client == nil || c.key == nil {
		return "", fmt.Errorf("token client not initialised")
	}
	if !common.IsHexAddress(tokenAddress) {
		return "", fmt.Errorf("invalid token address %q", tokenAddress)
	}
	if !common.IsHexAddress(recipient) {
		return "", fmt.Errorf("invalid recipient address %q", recipient)
	}
	if amount == nil || amount.Sign() <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}

	token := common.HexToAddress(tokenAddress)
	to := common.HexToAddress(recipient)

	nonce, err := c.client.PendingNonceAt(ctx, c.key.address)
	if err != nil {
		return "", fmt.Errorf("fetch nonce: %w", err)
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch gas price: %w", err)
	}
	chainID, err := c.client.NetworkID(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch chain id: %w", err)
	}

	tx := gethtypes.NewTransaction(nonce, token, big.NewInt(0), c.gasLimit, gasPrice, packTransfer(to, amount))
	signed, err := gethtypes.SignTx(tx, gethtypes.NewEIP155Signer(chainID), c.key.key)
	if err != nil {
		return "", fmt.Errorf("sign transfer: %w", err)
	}
	if err := c.client.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("send transfer: %w", err)
	}

	if err := c.confirm(ctx, signed.Hash(), token, to, amount); err != nil {
		return "", err
	}
	return signed.Hash().Hex(), nil
}

// confirm waits for the transaction to be mined, then checks the receipt
// succeeded and carries a matching Transfer log. The transaction is already
// broadcast when confirm runs, so a pending receipt is polled rather than
// treated as failure; giving up early would let a retry double-pay.
func (c *Client) confirm(ctx context.Context, txHash common.Hash, token, to common.Address, amount *big.Int) error {
	receipt, err := c.waitMined(ctx, txHash)
	if err != nil {
		return err
	}
	if receipt.Status != gethtypes.ReceiptStatusSuccessful {
		return fmt.Errorf("transaction %s failed", txHash.Hex())
	}
	for _, log := range receipt.Logs {
		if log == nil || log.Address != token {
			continue
		}
		if len(log.Topics) < 3 || log.Topics[0] != transferEventSignature {
			continue
		}
		if common.BytesToAddress(log.Topics[2].Bytes()) != to {
			continue
		}
		if new(big.Int).SetBytes(log.Data).Cmp(amount) == 0 {
			return nil
		}
	}
	return fmt.Errorf("no matching transfer for %s", txHash.Hex())
}

// waitMined polls for the receipt until it appears or the wait budget runs
// out.
func (c *Client) waitMined(ctx context.Context, txHash common.Hash) (*gethtypes.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.receiptWait)
	defer cancel()

	ticker := time.NewTicker(c.receiptPoll)
	defer ticker.Stop()

	for {
		receipt, err := c.client.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("fetch receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transaction %s not mined before deadline: %w", txHash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// packTransfer ABI-encodes transfer(to, amount).
func packTransfer(to common.Address, amount *big.Int) []byte {
	data := make([]byte, 0, 4+32+32)
	data = append(data, transferSelector...)
	data = append(data, common.LeftPadBytes(to.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), 32)...)
	return data
}
