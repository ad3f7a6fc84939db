package event

import (
	"github.com/blues/fundme/internal/campaign"
	"github.com/blues/fundme/internal/logger"
	"github.com/blues/fundme/internal/logic"
	"github.com/blues/fundme/internal/model"
)

// SettlementProcessor 提取结算事件处理器
type SettlementProcessor struct {
	settlementLogic *logic.SettlementRecordLogic
}

// NewSettlementProcessor 创建结算事件处理器
func NewSettlementProcessor(settlementLogic *logic.SettlementRecordLogic) *SettlementProcessor {
	return &SettlementProcessor{settlementLogic: settlementLogic}
}

// Process 处理提取结算事件
func (p *SettlementProcessor) Process(ev campaign.Withdrawn) {
	record := model.SettlementRecord{
		Recipient: ev.To.Hex(),
		Asset:     ev.Asset.String(),
		Amount:    ev.Amount.String(),
		SettledAt: ev.At,
	}

	if err := p.settlementLogic.CreateSettlementRecord(&record); err != nil {
		logger.Error("Failed to create settlement record: %v", err)
		return
	}

	logger.Debug("Processed settlement: %s %s to %s", record.Amount, record.Asset, record.Recipient)
}
