package event

import (
	"github.com/blues/fundme/internal/campaign"
	"github.com/blues/fundme/internal/logger"
	"github.com/blues/fundme/internal/logic"
	"github.com/blues/fundme/internal/model"
)

// DonationProcessor 捐款事件处理器
type DonationProcessor struct {
	donationLogic *logic.DonationRecordLogic
}

// NewDonationProcessor 创建捐款事件处理器
func NewDonationProcessor(donationLogic *logic.DonationRecordLogic) *DonationProcessor {
	return &DonationProcessor{donationLogic: donationLogic}
}

// Process 处理捐款事件
func (p *DonationProcessor) Process(ev campaign.DonationReceived) {
	record := model.DonationRecord{
		Donor:      ev.Donor.Hex(),
		Asset:      ev.Asset.String(),
		Amount:     ev.Amount.String(),
		ReceivedAt: ev.At,
	}

	if err := p.donationLogic.CreateDonationRecord(&record); err != nil {
		logger.Error("Failed to create donation record: %v", err)
		return
	}

	logger.Debug("Processed donation: %s %s from %s", record.Amount, record.Asset, record.Donor)
}
