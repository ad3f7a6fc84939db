package event

import (
	"github.com/blues/fundme/internal/campaign"
	"github.com/blues/fundme/internal/logger"
	"github.com/blues/fundme/internal/logic"
	"github.com/blues/fundme/internal/model"
)

// RefundProcessor 退款事件处理器
type RefundProcessor struct {
	refundLogic *logic.RefundRecordLogic
}

// NewRefundProcessor 创建退款事件处理器
func NewRefundProcessor(refundLogic *logic.RefundRecordLogic) *RefundProcessor {
	return &RefundProcessor{refundLogic: refundLogic}
}

// Process 处理退款事件
func (p *RefundProcessor) Process(ev campaign.Refunded) {
	record := model.RefundRecord{
		Donor:      ev.Donor.Hex(),
		Asset:      ev.Asset.String(),
		Amount:     ev.Amount.String(),
		RefundedAt: ev.At,
	}

	if err := p.refundLogic.CreateRefundRecord(&record); err != nil {
		logger.Error("Failed to create refund record: %v", err)
		return
	}

	logger.Debug("Processed refund: %s %s to %s", record.Amount, record.Asset, record.Donor)
}
