package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/blues/fundme/internal/campaign"
	"github.com/blues/fundme/internal/logger"
	"github.com/ethereum/go-ethereum/common"
)

// Vault 链上资产托管：以服务持有的金库账户收付活动资金。
// 原生币的入账随捐赠者自己的转账到达，Pull 凭交易哈希核对到账，
// 同一笔入账交易只能兑现一次；代币走 transferFrom
// （需捐赠者事先批准金库账户）。
type Vault struct {
	client *Client

	mu   sync.Mutex
	seen map[common.Hash]struct{} // 已兑现的入账交易
}

// NewVault 创建链上托管
func NewVault(client *Client) *Vault {
	return &Vault{client: client, seen: make(map[common.Hash]struct{})}
}

// Pull 将资金从捐赠者拉入金库账户
func (v *Vault) Pull(ctx context.Context, asset campaign.Asset, from common.Address, amount *big.Int, proof common.Hash) error {
	if asset.IsNative() {
		return v.claimNativeDeposit(ctx, from, amount, proof)
	}

	tx, err := v.client.TokenTransferFrom(ctx, asset.Token(), from, v.client.GetAccountAddress(), amount)
	if err != nil {
		return fmt.Errorf("token transferFrom failed: %w", err)
	}
	if err := v.client.WaitConfirmed(ctx, tx.Hash()); err != nil {
		return fmt.Errorf("token transferFrom not confirmed: %w", err)
	}

	logger.Info("Pulled %s token units from %s (tx %s)", amount, from.Hex(), tx.Hash().Hex())
	return nil
}

// claimNativeDeposit 兑现一笔原生币入账凭证。
// 凭证必须指向一笔已确认、由 from 打给金库账户、金额一致的交易，
// 且每个凭证只能兑现一次，否则捐款记录会对应不存在的资金。
func (v *Vault) claimNativeDeposit(ctx context.Context, from common.Address, amount *big.Int, proof common.Hash) error {
	if proof == (common.Hash{}) {
		return fmt.Errorf("native donation requires a deposit transaction hash")
	}

	v.mu.Lock()
	if _, ok := v.seen[proof]; ok {
		v.mu.Unlock()
		return fmt.Errorf("deposit transaction %s already claimed", proof.Hex())
	}
	v.mu.Unlock()

	if err := v.client.VerifyNativeDeposit(ctx, proof, from, amount); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.seen[proof]; ok {
		return fmt.Errorf("deposit transaction %s already claimed", proof.Hex())
	}
	v.seen[proof] = struct{}{}

	logger.Info("Claimed native deposit %s from %s (tx %s)", amount, from.Hex(), proof.Hex())
	return nil
}

// Push 将资金从金库账户转给接收方
func (v *Vault) Push(ctx context.Context, asset campaign.Asset, to common.Address, amount *big.Int) error {
	var (
		txHash common.Hash
		err    error
	)
	if asset.IsNative() {
		tx, sendErr := v.client.SendNative(ctx, to, amount)
		if sendErr != nil {
			return fmt.Errorf("native transfer failed: %w", sendErr)
		}
		txHash = tx.Hash()
	} else {
		tx, sendErr := v.client.TokenTransfer(ctx, asset.Token(), to, amount)
		if sendErr != nil {
			return fmt.Errorf("token transfer failed: %w", sendErr)
		}
		txHash = tx.Hash()
	}

	if err = v.client.WaitConfirmed(ctx, txHash); err != nil {
		return fmt.Errorf("transfer not confirmed: %w", err)
	}

	logger.Info("Pushed %s %s units to %s (tx %s)", amount, asset.Kind(), to.Hex(), txHash.Hex())
	return nil
}
