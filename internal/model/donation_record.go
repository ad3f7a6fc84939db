package model

import (
	"time"

	"gorm.io/gorm"
)

// DonationRecord 捐款审计记录
type DonationRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Donor      string    `json:"donor" gorm:"not null;index"`
	Asset      string    `json:"asset" gorm:"not null;index"` // native 或代币地址
	Amount     string    `json:"amount" gorm:"not null"`      // 基础单位十进制字符串
	ReceivedAt time.Time `json:"received_at" gorm:"not null"`
}

func (DonationRecord) TableName() string {
	return "donation_record"
}
