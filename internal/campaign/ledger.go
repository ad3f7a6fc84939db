package campaign

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ledgerKey 账本键：(捐赠者, 资产类别)
type ledgerKey struct {
	donor common.Address
	kind  AssetKind
}

// Ledger 贡献账本，所有余额查询与退款资格的唯一权威来源。
// 金额使用 big.Int，源域为256位无符号整数，累计总额不会溢出。
type Ledger struct {
	contributions map[ledgerKey]*big.Int
	totals        map[AssetKind]*big.Int    // 各资产的累计募集额，退款时扣减
	held          map[AssetKind]*big.Int    // 各资产的实际持有余额，退款与提取时扣减
	counts        map[common.Address]uint64 // 每个捐赠者的捐款次数，退款不回退
}

// NewLedger 创建空账本
func NewLedger() *Ledger {
	return &Ledger{
		contributions: make(map[ledgerKey]*big.Int),
		totals: map[AssetKind]*big.Int{
			AssetNative: new(big.Int),
			AssetToken:  new(big.Int),
		},
		held: map[AssetKind]*big.Int{
			AssetNative: new(big.Int),
			AssetToken:  new(big.Int),
		},
		counts: make(map[common.Address]uint64),
	}
}

// RecordDonation 记录一笔捐款：累加贡献记录、资产总额、持有余额与捐款次数
func (l *Ledger) RecordDonation(donor common.Address, asset Asset, amount *big.Int) {
	key := ledgerKey{donor: donor, kind: asset.kind}
	cur, ok := l.contributions[key]
	if !ok {
		cur = new(big.Int)
		l.contributions[key] = cur
	}
	cur.Add(cur, amount)
	l.totals[asset.kind].Add(l.totals[asset.kind], amount)
	l.held[asset.kind].Add(l.held[asset.kind], amount)
	l.counts[donor]++
}

// RollbackDonation 撤销一笔刚记录的捐款，外部拉取资金失败时调用
func (l *Ledger) RollbackDonation(donor common.Address, asset Asset, amount *big.Int) {
	key := ledgerKey{donor: donor, kind: asset.kind}
	if cur, ok := l.contributions[key]; ok {
		cur.Sub(cur, amount)
	}
	l.totals[asset.kind].Sub(l.totals[asset.kind], amount)
	l.held[asset.kind].Sub(l.held[asset.kind], amount)
	if l.counts[donor] > 0 {
		l.counts[donor]--
	}
}

// ConsumeForRefund 返回并原子清零 (donor, asset) 的余额。
// 必须在外部转账之前调用，重入调用只能观察到零余额。
func (l *Ledger) ConsumeForRefund(donor common.Address, asset Asset) (*big.Int, error) {
	key := ledgerKey{donor: donor, kind: asset.kind}
	cur, ok := l.contributions[key]
	if !ok || cur.Sign() == 0 {
		return nil, ErrNothingToRefund
	}
	amount := new(big.Int).Set(cur)
	cur.SetUint64(0)
	l.totals[asset.kind].Sub(l.totals[asset.kind], amount)
	l.held[asset.kind].Sub(l.held[asset.kind], amount)
	return amount, nil
}

// RestoreContribution 恢复被消费的余额，外部转账失败时回滚
func (l *Ledger) RestoreContribution(donor common.Address, asset Asset, amount *big.Int) {
	key := ledgerKey{donor: donor, kind: asset.kind}
	cur, ok := l.contributions[key]
	if !ok {
		cur = new(big.Int)
		l.contributions[key] = cur
	}
	cur.Add(cur, amount)
	l.totals[asset.kind].Add(l.totals[asset.kind], amount)
	l.held[asset.kind].Add(l.held[asset.kind], amount)
}

// ConsumeForWithdraw 返回并清零某资产的全部持有余额。
// 首次成功后余额即为零，重入调用自然失效。
func (l *Ledger) ConsumeForWithdraw(asset Asset) (*big.Int, error) {
	cur := l.held[asset.kind]
	if cur.Sign() == 0 {
		return nil, ErrNothingToWithdraw
	}
	amount := new(big.Int).Set(cur)
	cur.SetUint64(0)
	return amount, nil
}

// RestoreHeld 恢复持有余额，提取转账失败时回滚
func (l *Ledger) RestoreHeld(asset Asset, amount *big.Int) {
	l.held[asset.kind].Add(l.held[asset.kind], amount)
}

// Contribution 查询累计贡献
func (l *Ledger) Contribution(donor common.Address, asset Asset) *big.Int {
	if cur, ok := l.contributions[ledgerKey{donor: donor, kind: asset.kind}]; ok {
		return new(big.Int).Set(cur)
	}
	return new(big.Int)
}

// CombinedContribution 捐赠者原生币与代币贡献的原始相加，不做单位换算
func (l *Ledger) CombinedContribution(donor common.Address) *big.Int {
	sum := l.Contribution(donor, NativeAsset())
	if cur, ok := l.contributions[ledgerKey{donor: donor, kind: AssetToken}]; ok {
		sum.Add(sum, cur)
	}
	return sum
}

// DonationCount 捐款次数
func (l *Ledger) DonationCount(donor common.Address) uint64 {
	return l.counts[donor]
}

// TotalRaised 某资产的累计募集额
func (l *Ledger) TotalRaised(kind AssetKind) *big.Int {
	return new(big.Int).Set(l.totals[kind])
}

// CombinedTotal 两种资产募集额的原始相加，不做单位换算
func (l *Ledger) CombinedTotal() *big.Int {
	return new(big.Int).Add(l.totals[AssetNative], l.totals[AssetToken])
}

// Held 某资产的实际持有余额
func (l *Ledger) Held(kind AssetKind) *big.Int {
	return new(big.Int).Set(l.held[kind])
}
