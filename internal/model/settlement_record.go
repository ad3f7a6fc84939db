package model

import (
	"time"

	"gorm.io/gorm"
)

// SettlementRecord 提取结算记录
type SettlementRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Recipient string    `json:"recipient" gorm:"not null"`
	Asset     string    `json:"asset" gorm:"not null"`
	Amount    string    `json:"amount" gorm:"not null"`
	SettledAt time.Time `json:"settled_at" gorm:"not null"`
}

func (SettlementRecord) TableName() string {
	return "settlement_record"
}
