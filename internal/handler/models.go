package handler

import (
	"time"

	"github.com/blues/fundme/internal/campaign"
	"github.com/blues/fundme/internal/model"
)

// Response 统一响应格式
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// DonateRequest 捐款请求
type DonateRequest struct {
	Donor  string `json:"donor" binding:"required"`
	Asset  string `json:"asset"` // 空或零地址为原生币
	Amount string `json:"amount" binding:"required"`
	TxHash string `json:"tx_hash"` // 原生币入账交易哈希，链上托管模式必填
}

// RefundRequest 退款请求
type RefundRequest struct {
	Donor string `json:"donor" binding:"required"`
	Asset string `json:"asset"`
}

// WithdrawRequest 提取请求
type WithdrawRequest struct {
	Caller string `json:"caller" binding:"required"`
	Asset  string `json:"asset"`
}

// TransferOwnershipRequest 拥有者变更请求
type TransferOwnershipRequest struct {
	Caller   string `json:"caller" binding:"required"`
	NewOwner string `json:"new_owner" binding:"required"`
}

// CampaignResponse 活动信息
type CampaignResponse struct {
	Owner             string    `json:"owner"`
	Goal              string    `json:"goal"`
	Deadline          time.Time `json:"deadline"`
	LockPeriodSeconds int64     `json:"lock_period_seconds"`
	TokenAddress      string    `json:"token_address"`
	State             string    `json:"state"`
	TotalEthRaised    string    `json:"total_eth_raised"`
	TotalTokenRaised  string    `json:"total_token_raised"`
	TotalCombined     string    `json:"total_combined"`
}

// DonorResponse 捐赠者信息
type DonorResponse struct {
	Donor              string `json:"donor"`
	NativeContribution string `json:"native_contribution"`
	TokenContribution  string `json:"token_contribution"`
	DonationCount      uint64 `json:"donation_count"`
}

// LeaderboardEntryResponse 排行榜条目
type LeaderboardEntryResponse struct {
	Rank  int    `json:"rank"`
	Donor string `json:"donor"`
	Total string `json:"total"`
}

// ToLeaderboardResponse 转换排行榜快照
func ToLeaderboardResponse(entries []campaign.Entry) []LeaderboardEntryResponse {
	out := make([]LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntryResponse{
			Rank:  i + 1,
			Donor: e.Donor.Hex(),
			Total: e.Total.String(),
		}
	}
	return out
}

// DonationRecordResponse 捐款记录
type DonationRecordResponse struct {
	ID         uint      `json:"id"`
	Donor      string    `json:"donor"`
	Asset      string    `json:"asset"`
	Amount     string    `json:"amount"`
	ReceivedAt time.Time `json:"received_at"`
}

// ToDonationRecordResponseList 转换捐款记录列表
func ToDonationRecordResponseList(records []model.DonationRecord) []DonationRecordResponse {
	out := make([]DonationRecordResponse, len(records))
	for i, r := range records {
		out[i] = DonationRecordResponse{
			ID:         r.ID,
			Donor:      r.Donor,
			Asset:      r.Asset,
			Amount:     r.Amount,
			ReceivedAt: r.ReceivedAt,
		}
	}
	return out
}

// RefundRecordResponse 退款记录
type RefundRecordResponse struct {
	ID         uint      `json:"id"`
	Donor      string    `json:"donor"`
	Asset      string    `json:"asset"`
	Amount     string    `json:"amount"`
	RefundedAt time.Time `json:"refunded_at"`
}

// ToRefundRecordResponseList 转换退款记录列表
func ToRefundRecordResponseList(records []model.RefundRecord) []RefundRecordResponse {
	out := make([]RefundRecordResponse, len(records))
	for i, r := range records {
		out[i] = RefundRecordResponse{
			ID:         r.ID,
			Donor:      r.Donor,
			Asset:      r.Asset,
			Amount:     r.Amount,
			RefundedAt: r.RefundedAt,
		}
	}
	return out
}

// SettlementRecordResponse 结算记录
type SettlementRecordResponse struct {
	ID        uint      `json:"id"`
	Recipient string    `json:"recipient"`
	Asset     string    `json:"asset"`
	Amount    string    `json:"amount"`
	SettledAt time.Time `json:"settled_at"`
}

// ToSettlementRecordResponseList 转换结算记录列表
func ToSettlementRecordResponseList(records []model.SettlementRecord) []SettlementRecordResponse {
	out := make([]SettlementRecordResponse, len(records))
	for i, r := range records {
		out[i] = SettlementRecordResponse{
			ID:        r.ID,
			Recipient: r.Recipient,
			Asset:     r.Asset,
			Amount:    r.Amount,
			SettledAt: r.SettledAt,
		}
	}
	return out
}
