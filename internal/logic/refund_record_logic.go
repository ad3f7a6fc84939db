package logic

import (
	"errors"
	"fmt"

	"github.com/blues/fundme/internal/model"
	"gorm.io/gorm"
)

// RefundRecordLogic 退款记录业务逻辑
type RefundRecordLogic struct {
	db *gorm.DB
}

// NewRefundRecordLogic 创建退款记录业务逻辑
func NewRefundRecordLogic(db *gorm.DB) *RefundRecordLogic {
	return &RefundRecordLogic{db: db}
}

// CreateRefundRecord 创建退款记录
func (r *RefundRecordLogic) CreateRefundRecord(record *model.RefundRecord) error {
	if record.Donor == "" {
		return errors.New("捐赠者地址不能为空")
	}
	if record.Amount == "" {
		return errors.New("退款金额不能为空")
	}

	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("创建退款记录失败: %w", err)
	}

	return nil
}

// GetRefundRecords 获取退款记录列表
func (r *RefundRecordLogic) GetRefundRecords(page, pageSize int) ([]model.RefundRecord, int64, error) {
	var records []model.RefundRecord
	var total int64

	if err := r.db.Model(&model.RefundRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
