package logic

import (
	"errors"
	"fmt"

	"github.com/blues/fundme/internal/model"
	"gorm.io/gorm"
)

// SettlementRecordLogic 结算记录业务逻辑
type SettlementRecordLogic struct {
	db *gorm.DB
}

// NewSettlementRecordLogic 创建结算记录业务逻辑
func NewSettlementRecordLogic(db *gorm.DB) *SettlementRecordLogic {
	return &SettlementRecordLogic{db: db}
}

// CreateSettlementRecord 创建结算记录
func (s *SettlementRecordLogic) CreateSettlementRecord(record *model.SettlementRecord) error {
	if record.Recipient == "" {
		return errors.New("接收方地址不能为空")
	}
	if record.Amount == "" {
		return errors.New("结算金额不能为空")
	}

	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("创建结算记录失败: %w", err)
	}

	return nil
}

// GetSettlementRecords 获取结算记录列表
func (s *SettlementRecordLogic) GetSettlementRecords(page, pageSize int) ([]model.SettlementRecord, int64, error) {
	var records []model.SettlementRecord
	var total int64

	if err := s.db.Model(&model.SettlementRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
