package campaign

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Vault 资产抽象：原生币与代币统一的存取原语。
// Push 对原生资产可能在返回前执行接收方代码，是唯一的重入面；
// 调用方必须在 Push 之前完成全部账本变更。
type Vault interface {
	// Pull 将资金从 from 拉入活动托管账户。
	// proof 是原生币入账的凭证（捐赠者转账的交易哈希）：
	// 链上托管据此核对到账，进程内托管直接划转、忽略凭证。
	Pull(ctx context.Context, asset Asset, from common.Address, amount *big.Int, proof common.Hash) error
	// Push 将资金从托管账户转给 to
	Push(ctx context.Context, asset Asset, to common.Address, amount *big.Int) error
}
