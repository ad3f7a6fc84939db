package campaign

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/blues/fundme/internal/logger"
	"github.com/ethereum/go-ethereum/common"
)

// Config 活动参数
type Config struct {
	Owner      common.Address // 拥有者，可显式转移
	Goal       *big.Int       // 募集目标（原生币与代币原始相加）
	Deadline   time.Time      // 截止时间
	LockPeriod time.Duration  // 截止后到允许提取的锁定期
	Token      common.Address // 唯一支持的代币地址
}

// Campaign 众筹活动聚合根：状态机、账本与排行榜的唯一持有者。
// 每次部署恰好一个实例，所有操作通过该实例进行，没有包级可变状态。
//
// 互斥锁使并发的HTTP调用获得串行化执行；锁在对外 Pull/Push 之前释放，
// 金库等待链上确认不会阻塞查询，重入调用也能正常进入，
// 并在已清零的账本条目上失败。
type Campaign struct {
	mu sync.Mutex

	owner      common.Address
	goal       *big.Int
	deadline   time.Time
	lockPeriod time.Duration
	token      common.Address

	state       State
	ledger      *Ledger
	leaderboard *Leaderboard

	vault Vault
	sink  Sink
	now   func() time.Time
}

// Option 可选参数
type Option func(*Campaign)

// WithSink 设置事件订阅方
func WithSink(sink Sink) Option {
	return func(c *Campaign) { c.sink = sink }
}

// WithClock 注入时钟，测试用
func WithClock(now func() time.Time) Option {
	return func(c *Campaign) { c.now = now }
}

// New 创建活动
func New(cfg Config, vault Vault, opts ...Option) (*Campaign, error) {
	if vault == nil {
		return nil, errors.New("vault is required")
	}
	if cfg.Goal == nil || cfg.Goal.Sign() <= 0 {
		return nil, errors.New("goal must be positive")
	}
	if cfg.Deadline.IsZero() {
		return nil, errors.New("deadline is required")
	}
	if cfg.Owner == (common.Address{}) {
		return nil, errors.New("owner is required")
	}

	c := &Campaign{
		owner:       cfg.Owner,
		goal:        new(big.Int).Set(cfg.Goal),
		deadline:    cfg.Deadline,
		lockPeriod:  cfg.LockPeriod,
		token:       cfg.Token,
		state:       StateFunding,
		ledger:      NewLedger(),
		leaderboard: NewLeaderboard(),
		vault:       vault,
		sink:        NopSink{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DonationRequest 捐款请求。金额字段唯一，按资产变体校验。
// Proof 是原生币入账凭证（交易哈希），链上托管模式必填。
type DonationRequest struct {
	Donor  common.Address
	Asset  Asset
	Amount *big.Int
	Proof  common.Hash
}

// Donate 受理捐款：状态机 → 账本 → 排行榜 → 资金拉取。
// 拉取资金可能等待链上确认，与 Push 一样在锁外执行，
// 期间查询照常服务；拉取失败时完整回滚，失败的调用不留下任何痕迹。
func (c *Campaign) Donate(ctx context.Context, req DonationRequest) error {
	c.mu.Lock()
	if c.state != StateFunding || !c.now().Before(c.deadline) {
		c.mu.Unlock()
		return ErrCampaignNotAccepting
	}
	if req.Asset.kind == AssetToken && req.Asset.token != c.token {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidAsset, req.Asset.token.Hex())
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		c.mu.Unlock()
		return ErrInvalidAmount
	}

	amount := new(big.Int).Set(req.Amount)
	c.ledger.RecordDonation(req.Donor, req.Asset, amount)
	c.leaderboard.Rank(req.Donor, c.ledger.CombinedContribution(req.Donor))
	at := c.now()
	c.mu.Unlock()

	if err := c.vault.Pull(ctx, req.Asset, req.Donor, amount, req.Proof); err != nil {
		c.mu.Lock()
		c.ledger.RollbackDonation(req.Donor, req.Asset, amount)
		c.leaderboard.Rank(req.Donor, c.ledger.CombinedContribution(req.Donor))
		c.mu.Unlock()
		return fmt.Errorf("pull funds: %w", err)
	}

	c.sink.Emit(DonationReceived{Donor: req.Donor, Asset: req.Asset, Amount: amount, At: at})
	logger.Info("Donation received: donor=%s asset=%s amount=%s", req.Donor.Hex(), req.Asset, amount)
	return nil
}

// Finalize 推进状态机，任何人可调用，重复调用无副作用。
// 仅在截止后且仍处于 Funding 时生效：达标进入 Successful，否则 Failed。
// 截止前的调用不生效也不报错，返回当前状态。
func (c *Campaign) Finalize() State {
	c.mu.Lock()
	if c.state != StateFunding || c.now().Before(c.deadline) {
		s := c.state
		c.mu.Unlock()
		return s
	}

	combined := c.ledger.CombinedTotal()
	if combined.Cmp(c.goal) >= 0 {
		c.state = StateSuccessful
	} else {
		c.state = StateFailed
	}
	s := c.state
	at := c.now()
	c.mu.Unlock()

	c.sink.Emit(Finalized{State: s, CombinedTotal: combined, At: at})
	logger.Info("Campaign finalized: state=%s raised=%s goal=%s", s, combined, c.goal)
	return s
}

// Refund 失败后退款。先清零账本条目再对外转账，
// 转账期间的重入调用只能观察到零余额并收到 ErrNothingToRefund。
func (c *Campaign) Refund(ctx context.Context, donor common.Address, asset Asset) (*big.Int, error) {
	c.mu.Lock()
	if c.state != StateFailed {
		c.mu.Unlock()
		return nil, ErrCampaignNotFailed
	}
	if asset.kind == AssetToken && asset.token != c.token {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrInvalidAsset, asset.token.Hex())
	}
	amount, err := c.ledger.ConsumeForRefund(donor, asset)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	at := c.now()
	c.mu.Unlock()

	// 账本已变更，此处对外转账可能执行接收方代码
	if err := c.vault.Push(ctx, asset, donor, amount); err != nil {
		c.mu.Lock()
		c.ledger.RestoreContribution(donor, asset, amount)
		c.mu.Unlock()
		return nil, fmt.Errorf("push refund: %w", err)
	}

	c.sink.Emit(Refunded{Donor: donor, Asset: asset, Amount: amount, At: at})
	logger.Info("Refunded: donor=%s asset=%s amount=%s", donor.Hex(), asset, amount)
	return amount, nil
}

// Withdraw 成功且锁定期满后由拥有者提取某资产的全部持有余额。
// 时间锁每次调用现算，不做缓存；转账期间的重入调用重新通过时间锁，
// 但持有余额已清零，收到 ErrNothingToWithdraw。
func (c *Campaign) Withdraw(ctx context.Context, caller common.Address, asset Asset) (*big.Int, error) {
	c.mu.Lock()
	if caller != c.owner {
		c.mu.Unlock()
		return nil, ErrUnauthorized
	}
	if c.state != StateSuccessful {
		c.mu.Unlock()
		return nil, ErrCampaignNotSuccessful
	}
	if c.now().Before(c.deadline.Add(c.lockPeriod)) {
		c.mu.Unlock()
		return nil, ErrWithdrawalLocked
	}
	if asset.kind == AssetToken && asset.token != c.token {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrInvalidAsset, asset.token.Hex())
	}
	amount, err := c.ledger.ConsumeForWithdraw(asset)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	to := c.owner
	at := c.now()
	c.mu.Unlock()

	// 拥有者可能是合约地址，对外转账同样是重入面
	if err := c.vault.Push(ctx, asset, to, amount); err != nil {
		c.mu.Lock()
		c.ledger.RestoreHeld(asset, amount)
		c.mu.Unlock()
		return nil, fmt.Errorf("push withdrawal: %w", err)
	}

	c.sink.Emit(Withdrawn{To: to, Asset: asset, Amount: amount, At: at})
	logger.Info("Withdrawn: to=%s asset=%s amount=%s", to.Hex(), asset, amount)
	return amount, nil
}

// TransferOwnership 转移拥有者
func (c *Campaign) TransferOwnership(caller, newOwner common.Address) error {
	c.mu.Lock()
	if caller != c.owner {
		c.mu.Unlock()
		return ErrUnauthorized
	}
	if newOwner == (common.Address{}) {
		c.mu.Unlock()
		return errors.New("new owner is the zero address")
	}
	prev := c.owner
	c.owner = newOwner
	at := c.now()
	c.mu.Unlock()

	c.sink.Emit(OwnershipTransferred{Previous: prev, New: newOwner, At: at})
	logger.Info("Ownership transferred: %s -> %s", prev.Hex(), newOwner.Hex())
	return nil
}

// ParseAsset 按本活动的代币地址解析资产标识
func (c *Campaign) ParseAsset(addr common.Address) (Asset, error) {
	return ParseAsset(addr, c.token)
}

// State 当前生命周期状态
func (c *Campaign) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Owner 当前拥有者
func (c *Campaign) Owner() common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owner
}

// Goal 募集目标
func (c *Campaign) Goal() *big.Int {
	return new(big.Int).Set(c.goal)
}

// Deadline 截止时间
func (c *Campaign) Deadline() time.Time {
	return c.deadline
}

// LockPeriod 提取锁定期
func (c *Campaign) LockPeriod() time.Duration {
	return c.lockPeriod
}

// TokenAddress 活动代币地址
func (c *Campaign) TokenAddress() common.Address {
	return c.token
}

// Contribution 查询 (donor, asset) 的累计贡献
func (c *Campaign) Contribution(donor common.Address, asset Asset) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Contribution(donor, asset)
}

// DonationCount 捐款次数
func (c *Campaign) DonationCount(donor common.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.DonationCount(donor)
}

// TotalNativeRaised 原生币累计募集额
func (c *Campaign) TotalNativeRaised() *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.TotalRaised(AssetNative)
}

// TotalTokenRaised 代币累计募集额
func (c *Campaign) TotalTokenRaised() *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.TotalRaised(AssetToken)
}

// CombinedTotal 两种资产募集额的原始相加。
// 原生币与代币基础单位不做汇率换算，保留源行为。
func (c *Campaign) CombinedTotal() *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.CombinedTotal()
}

// HeldBalance 某资产的实际持有余额
func (c *Campaign) HeldBalance(asset Asset) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Held(asset.kind)
}

// TopDonors 排行榜快照，按合并总额降序，总额相同时先捐者在前
func (c *Campaign) TopDonors() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leaderboard.Top()
}
