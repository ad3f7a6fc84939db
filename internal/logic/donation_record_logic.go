package logic

import (
	"errors"
	"fmt"

	"github.com/blues/fundme/internal/model"
	"gorm.io/gorm"
)

// DonationRecordLogic 捐款记录业务逻辑
type DonationRecordLogic struct {
	db *gorm.DB
}

// NewDonationRecordLogic 创建捐款记录业务逻辑
func NewDonationRecordLogic(db *gorm.DB) *DonationRecordLogic {
	return &DonationRecordLogic{db: db}
}

// CreateDonationRecord 创建捐款记录
func (d *DonationRecordLogic) CreateDonationRecord(record *model.DonationRecord) error {
	if err := d.validateRecord(record); err != nil {
		return err
	}

	if err := d.db.Create(record).Error; err != nil {
		return fmt.Errorf("创建捐款记录失败: %w", err)
	}

	return nil
}

// GetDonationRecords 获取捐款记录列表
func (d *DonationRecordLogic) GetDonationRecords(page, pageSize int) ([]model.DonationRecord, int64, error) {
	var records []model.DonationRecord
	var total int64

	// 获取总数
	if err := d.db.Model(&model.DonationRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := d.db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetDonorRecords 获取某捐赠者的捐款记录
func (d *DonationRecordLogic) GetDonorRecords(donor string, page, pageSize int) ([]model.DonationRecord, int64, error) {
	var records []model.DonationRecord
	var total int64

	if err := d.db.Model(&model.DonationRecord{}).Where("donor = ?", donor).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := d.db.Where("donor = ?", donor).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetDonationStats 获取捐款统计信息
func (d *DonationRecordLogic) GetDonationStats() (map[string]interface{}, error) {
	var totalDonations int64
	if err := d.db.Model(&model.DonationRecord{}).Count(&totalDonations).Error; err != nil {
		return nil, err
	}

	// 去重统计捐赠者数量
	var totalDonors int64
	if err := d.db.Model(&model.DonationRecord{}).Distinct("donor").Count(&totalDonors).Error; err != nil {
		return nil, err
	}

	var nativeDonations int64
	d.db.Model(&model.DonationRecord{}).Where("asset = ?", "native").Count(&nativeDonations)

	return map[string]interface{}{
		"totalDonations":  totalDonations,
		"totalDonors":     totalDonors,
		"nativeDonations": nativeDonations,
		"tokenDonations":  totalDonations - nativeDonations,
	}, nil
}

// validateRecord 验证捐款记录
func (d *DonationRecordLogic) validateRecord(record *model.DonationRecord) error {
	if record.Donor == "" {
		return errors.New("捐赠者地址不能为空")
	}
	if record.Asset == "" {
		return errors.New("资产标识不能为空")
	}
	if record.Amount == "" {
		return errors.New("捐款金额不能为空")
	}
	return nil
}
