package campaign

import "errors"

// 错误分类：状态门控、权限、账本、时间锁、入参。
// 所有错误同步返回并使整个调用失败，不做内部重试。
var (
	// 状态门控
	ErrCampaignNotAccepting  = errors.New("campaign not accepting donations")
	ErrCampaignNotSuccessful = errors.New("campaign not successful")
	ErrCampaignNotFailed     = errors.New("campaign not failed")

	// 权限
	ErrUnauthorized = errors.New("caller is not the owner")

	// 账本
	ErrNothingToRefund   = errors.New("nothing to refund")
	ErrNothingToWithdraw = errors.New("nothing to withdraw")

	// 时间锁
	ErrWithdrawalLocked = errors.New("withdrawal is time-locked")

	// 入参
	ErrInvalidAsset  = errors.New("unsupported asset")
	ErrInvalidAmount = errors.New("amount must be positive")
)
