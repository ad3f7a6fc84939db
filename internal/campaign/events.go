package campaign

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Event 账本事件，每次成功的状态变更调用恰好发出一次，
// 在对应的账本变更提交之后、同一调用内发出。
type Event interface {
	// Name 事件名
	Name() string
}

// DonationReceived 捐款入账
type DonationReceived struct {
	Donor  common.Address
	Asset  Asset
	Amount *big.Int
	At     time.Time
}

func (DonationReceived) Name() string { return "DonationReceived" }

// Refunded 退款出账
type Refunded struct {
	Donor  common.Address
	Asset  Asset
	Amount *big.Int
	At     time.Time
}

func (Refunded) Name() string { return "Refunded" }

// Withdrawn 拥有者提取
type Withdrawn struct {
	To     common.Address
	Asset  Asset
	Amount *big.Int
	At     time.Time
}

func (Withdrawn) Name() string { return "Withdrawn" }

// Finalized 状态机进入终态
type Finalized struct {
	State         State
	CombinedTotal *big.Int
	At            time.Time
}

func (Finalized) Name() string { return "Finalized" }

// OwnershipTransferred 拥有者变更
type OwnershipTransferred struct {
	Previous common.Address
	New      common.Address
	At       time.Time
}

func (OwnershipTransferred) Name() string { return "OwnershipTransferred" }

// Sink 事件订阅方
type Sink interface {
	Emit(Event)
}

// NopSink 空订阅方
type NopSink struct{}

func (NopSink) Emit(Event) {}
