package handler

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/blues/fundme/internal/campaign"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// CampaignHandler 活动处理器
type CampaignHandler struct {
	camp *campaign.Campaign
}

// NewCampaignHandler 创建活动处理器
func NewCampaignHandler(camp *campaign.Campaign) *CampaignHandler {
	return &CampaignHandler{camp: camp}
}

// GetCampaign 获取活动信息
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	resp := CampaignResponse{
		Owner:             h.camp.Owner().Hex(),
		Goal:              h.camp.Goal().String(),
		Deadline:          h.camp.Deadline(),
		LockPeriodSeconds: int64(h.camp.LockPeriod().Seconds()),
		TokenAddress:      h.camp.TokenAddress().Hex(),
		State:             h.camp.State().String(),
		TotalEthRaised:    h.camp.TotalNativeRaised().String(),
		TotalTokenRaised:  h.camp.TotalTokenRaised().String(),
		TotalCombined:     h.camp.CombinedTotal().String(),
	}
	SuccessResponse(c, http.StatusOK, "获取活动信息成功", resp)
}

// GetLeaderboard 获取排行榜
func (h *CampaignHandler) GetLeaderboard(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "获取排行榜成功", ToLeaderboardResponse(h.camp.TopDonors()))
}

// GetDonor 获取捐赠者信息
func (h *CampaignHandler) GetDonor(c *gin.Context) {
	addr, ok := parseAddress(c, c.Param("address"))
	if !ok {
		return
	}

	resp := DonorResponse{
		Donor:              addr.Hex(),
		NativeContribution: h.camp.Contribution(addr, campaign.NativeAsset()).String(),
		TokenContribution:  h.camp.Contribution(addr, campaign.TokenAsset(h.camp.TokenAddress())).String(),
		DonationCount:      h.camp.DonationCount(addr),
	}
	SuccessResponse(c, http.StatusOK, "获取捐赠者信息成功", resp)
}

// Donate 受理捐款
func (h *CampaignHandler) Donate(c *gin.Context) {
	var req DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	donor, ok := parseAddress(c, req.Donor)
	if !ok {
		return
	}
	asset, ok := h.parseAsset(c, req.Asset)
	if !ok {
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	err := h.camp.Donate(c.Request.Context(), campaign.DonationRequest{
		Donor:  donor,
		Asset:  asset,
		Amount: amount,
		Proof:  common.HexToHash(req.TxHash),
	})
	if err != nil {
		ErrorResponse(c, statusFor(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "捐款成功", nil)
}

// Finalize 推进活动状态
func (h *CampaignHandler) Finalize(c *gin.Context) {
	state := h.camp.Finalize()
	SuccessResponse(c, http.StatusOK, "活动状态已推进", gin.H{"state": state.String()})
}

// Refund 退款
func (h *CampaignHandler) Refund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	donor, ok := parseAddress(c, req.Donor)
	if !ok {
		return
	}
	asset, ok := h.parseAsset(c, req.Asset)
	if !ok {
		return
	}

	amount, err := h.camp.Refund(c.Request.Context(), donor, asset)
	if err != nil {
		ErrorResponse(c, statusFor(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "退款成功", gin.H{"amount": amount.String()})
}

// Withdraw 拥有者提取
func (h *CampaignHandler) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	caller, ok := parseAddress(c, req.Caller)
	if !ok {
		return
	}
	asset, ok := h.parseAsset(c, req.Asset)
	if !ok {
		return
	}

	amount, err := h.camp.Withdraw(c.Request.Context(), caller, asset)
	if err != nil {
		ErrorResponse(c, statusFor(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "提取成功", gin.H{"amount": amount.String()})
}

// TransferOwnership 转移拥有者
func (h *CampaignHandler) TransferOwnership(c *gin.Context) {
	var req TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	caller, ok := parseAddress(c, req.Caller)
	if !ok {
		return
	}
	newOwner, ok := parseAddress(c, req.NewOwner)
	if !ok {
		return
	}

	if err := h.camp.TransferOwnership(caller, newOwner); err != nil {
		ErrorResponse(c, statusFor(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "拥有者已变更", nil)
}

// parseAsset 解析资产标识：空串或零地址为原生币
func (h *CampaignHandler) parseAsset(c *gin.Context, raw string) (campaign.Asset, bool) {
	if raw == "" {
		return campaign.NativeAsset(), true
	}
	if !common.IsHexAddress(raw) {
		ErrorResponse(c, http.StatusBadRequest, "无效的资产地址")
		return campaign.Asset{}, false
	}
	asset, err := h.camp.ParseAsset(common.HexToAddress(raw))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return campaign.Asset{}, false
	}
	return asset, true
}

// parseAddress 解析账户地址
func parseAddress(c *gin.Context, raw string) (common.Address, bool) {
	if !common.IsHexAddress(raw) {
		ErrorResponse(c, http.StatusBadRequest, "无效的账户地址")
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

// parseAmount 解析十进制金额
func parseAmount(c *gin.Context, raw string) (*big.Int, bool) {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "无效的金额")
		return nil, false
	}
	return amount, true
}

// statusFor 错误分类到HTTP状态码的映射
func statusFor(err error) int {
	switch {
	case errors.Is(err, campaign.ErrCampaignNotAccepting),
		errors.Is(err, campaign.ErrCampaignNotSuccessful),
		errors.Is(err, campaign.ErrCampaignNotFailed):
		return http.StatusConflict
	case errors.Is(err, campaign.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, campaign.ErrNothingToRefund),
		errors.Is(err, campaign.ErrNothingToWithdraw):
		return http.StatusNotFound
	case errors.Is(err, campaign.ErrWithdrawalLocked):
		return http.StatusLocked
	case errors.Is(err, campaign.ErrInvalidAsset),
		errors.Is(err, campaign.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
