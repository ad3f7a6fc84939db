package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/blues/fundme/internal/config"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ERC20 ABI（托管所需的最小子集）
const erc20ABI = `[
	{
		"constant": true,
		"inputs": [{"name": "owner", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"name": "", "type": "uint256"}],
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "value", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "value", "type": "uint256"}
		],
		"name": "transferFrom",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	}
]`

// Client 链端客户端：金库账户的原生币与ERC20转账能力
type Client struct {
	client        *ethclient.Client
	privateKey    *ecdsa.PrivateKey
	chainId       *big.Int
	confirmations uint64
	erc20         abi.ABI
}

func Init(cfg config.EthereumConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	// 解析ABI
	parsedABI, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse erc20 ABI: %w", err)
	}

	return &Client{
		client:        client,
		privateKey:    privateKey,
		chainId:       big.NewInt(cfg.ChainId),
		confirmations: cfg.Confirmations,
		erc20:         parsedABI,
	}, nil
}

// GetLatestBlock 获取最新区块号
func (c *Client) GetLatestBlock(ctx context.Context) (uint64, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Uint64(), nil
}

// GetAccountAddress 获取金库账户地址
func (c *Client) GetAccountAddress() common.Address {
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}

// GetAuth 获取交易授权
func (c *Client) GetAuth() (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(c.privateKey, c.chainId)
}

// SendNative 从金库账户发送原生币
func (c *Client) SendNative(ctx context.Context, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return c.sendTransaction(ctx, to, amount, nil)
}

// TokenTransfer 金库账户的ERC20转出
func (c *Client) TokenTransfer(ctx context.Context, token, to common.Address, amount *big.Int) (*types.Transaction, error) {
	data, err := c.erc20.Pack("transfer", to, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to pack transfer: %w", err)
	}
	return c.sendTransaction(ctx, token, nil, data)
}

// TokenTransferFrom 凭捐赠者的批准将ERC20拉入金库账户
func (c *Client) TokenTransferFrom(ctx context.Context, token, from, to common.Address, amount *big.Int) (*types.Transaction, error) {
	data, err := c.erc20.Pack("transferFrom", from, to, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to pack transferFrom: %w", err)
	}
	return c.sendTransaction(ctx, token, nil, data)
}

// TokenBalanceOf 查询ERC20余额
func (c *Client) TokenBalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	data, err := c.erc20.Pack("balanceOf", owner)
	if err != nil {
		return nil, fmt.Errorf("failed to pack balanceOf: %w", err)
	}

	out, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("balanceOf call failed: %w", err)
	}

	results, err := c.erc20.Unpack("balanceOf", out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack balanceOf: %w", err)
	}
	return abi.ConvertType(results[0], new(big.Int)).(*big.Int), nil
}

// sendTransaction 构造、签名并发送一笔交易
func (c *Client) sendTransaction(ctx context.Context, to common.Address, value *big.Int, data []byte) (*types.Transaction, error) {
	from := c.GetAccountAddress()

	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	// 接收方可能是合约，gas 按实际估算
	gasLimit, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainId), c.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	return signedTx, nil
}

// VerifyNativeDeposit 核对一笔原生币入账：交易已确认、由 from 签发、
// 打给金库账户且金额一致。任何一项不符即视为未到账。
func (c *Client) VerifyNativeDeposit(ctx context.Context, txHash common.Hash, from common.Address, amount *big.Int) error {
	tx, pending, err := c.client.TransactionByHash(ctx, txHash)
	if err != nil {
		return fmt.Errorf("deposit transaction lookup failed: %w", err)
	}
	if pending {
		return fmt.Errorf("deposit transaction %s is still pending", txHash.Hex())
	}
	if tx.To() == nil || *tx.To() != c.GetAccountAddress() {
		return fmt.Errorf("deposit transaction %s does not pay the vault account", txHash.Hex())
	}
	if tx.Value().Cmp(amount) != 0 {
		return fmt.Errorf("deposit transaction %s value %s does not match amount %s", txHash.Hex(), tx.Value(), amount)
	}
	sender, err := types.Sender(types.LatestSignerForChainID(c.chainId), tx)
	if err != nil {
		return fmt.Errorf("failed to recover deposit sender: %w", err)
	}
	if sender != from {
		return fmt.Errorf("deposit transaction %s was not sent by %s", txHash.Hex(), from.Hex())
	}

	confirmed, err := c.IsTransactionConfirmed(ctx, txHash)
	if err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("deposit transaction %s is not confirmed yet", txHash.Hex())
	}
	return nil
}

// GetTransactionReceipt 获取交易回执
func (c *Client) GetTransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return c.client.TransactionReceipt(ctx, txHash)
}

// IsTransactionConfirmed 检查交易是否已确认
func (c *Client) IsTransactionConfirmed(ctx context.Context, txHash common.Hash) (bool, error) {
	receipt, err := c.GetTransactionReceipt(ctx, txHash)
	if err != nil {
		return false, err
	}
	if receipt == nil {
		return false, nil
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return false, fmt.Errorf("transaction %s reverted", txHash.Hex())
	}

	latestBlock, err := c.GetLatestBlock(ctx)
	if err != nil {
		return false, err
	}
	return latestBlock >= receipt.BlockNumber.Uint64()+c.confirmations, nil
}

// WaitConfirmed 轮询等待交易确认
func (c *Client) WaitConfirmed(ctx context.Context, txHash common.Hash) error {
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		confirmed, err := c.IsTransactionConfirmed(ctx, txHash)
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return err
		}
		if confirmed {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
