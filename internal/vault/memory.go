package vault

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/blues/fundme/internal/campaign"
	"github.com/ethereum/go-ethereum/common"
)

// RecipientHook 接收方代码：Push 入账后、返回前执行。
// 返回非空错误时整笔转账失败并回滚，等价于接收合约回退。
type RecipientHook func(asset campaign.Asset, amount *big.Int) error

// Memory 进程内资产托管，开发模式与测试使用。
// 原生币与代币分别按账户记账；代币视为已获批准，
// 余额不足即为转账失败。
type Memory struct {
	mu       sync.Mutex
	treasury common.Address // 活动托管账户
	native   map[common.Address]*big.Int
	token    map[common.Address]*big.Int
	hooks    map[common.Address]RecipientHook
}

// NewMemory 创建内存托管
func NewMemory(treasury common.Address) *Memory {
	return &Memory{
		treasury: treasury,
		native:   make(map[common.Address]*big.Int),
		token:    make(map[common.Address]*big.Int),
		hooks:    make(map[common.Address]RecipientHook),
	}
}

// Mint 给账户铸入原生币，测试与开发用
func (m *Memory) Mint(addr common.Address, amount *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credit(m.native, addr, amount)
}

// MintToken 给账户铸入代币
func (m *Memory) MintToken(addr common.Address, amount *big.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credit(m.token, addr, amount)
}

// SetRecipientHook 注册接收方代码，模拟收款合约的 receive 逻辑
func (m *Memory) SetRecipientHook(addr common.Address, hook RecipientHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks[addr] = hook
}

// NativeBalance 原生币余额
func (m *Memory) NativeBalance(addr common.Address) *big.Int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance(m.native, addr)
}

// TokenBalance 代币余额
func (m *Memory) TokenBalance(addr common.Address) *big.Int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance(m.token, addr)
}

// Pull 将资金从 from 转入托管账户。划转即到账，不需要入账凭证
func (m *Memory) Pull(ctx context.Context, asset campaign.Asset, from common.Address, amount *big.Int, _ common.Hash) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.move(m.book(asset), from, m.treasury, amount)
}

// Push 将资金从托管账户转给 to，随后执行接收方代码。
// 接收方代码在锁外运行，它可以重入活动的公开操作。
func (m *Memory) Push(ctx context.Context, asset campaign.Asset, to common.Address, amount *big.Int) error {
	m.mu.Lock()
	if err := m.move(m.book(asset), m.treasury, to, amount); err != nil {
		m.mu.Unlock()
		return err
	}
	hook := m.hooks[to]
	m.mu.Unlock()

	if hook == nil {
		return nil
	}
	if err := hook(asset, amount); err != nil {
		// 接收方回退，转账整体失败
		m.mu.Lock()
		m.move(m.book(asset), to, m.treasury, amount)
		m.mu.Unlock()
		return fmt.Errorf("recipient rejected transfer: %w", err)
	}
	return nil
}

func (m *Memory) book(asset campaign.Asset) map[common.Address]*big.Int {
	if asset.IsNative() {
		return m.native
	}
	return m.token
}

func (m *Memory) move(book map[common.Address]*big.Int, from, to common.Address, amount *big.Int) error {
	cur := book[from]
	if cur == nil || cur.Cmp(amount) < 0 {
		return fmt.Errorf("insufficient balance: %s", from.Hex())
	}
	cur.Sub(cur, amount)
	m.credit(book, to, amount)
	return nil
}

func (m *Memory) credit(book map[common.Address]*big.Int, addr common.Address, amount *big.Int) {
	cur := book[addr]
	if cur == nil {
		cur = new(big.Int)
		book[addr] = cur
	}
	cur.Add(cur, amount)
}

func (m *Memory) balance(book map[common.Address]*big.Int, addr common.Address) *big.Int {
	if cur := book[addr]; cur != nil {
		return new(big.Int).Set(cur)
	}
	return new(big.Int)
}
