package model

import (
	"time"

	"gorm.io/gorm"
)

// RefundRecord 退款审计记录
type RefundRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Donor      string    `json:"donor" gorm:"not null;index"`
	Asset      string    `json:"asset" gorm:"not null"`
	Amount     string    `json:"amount" gorm:"not null"`
	RefundedAt time.Time `json:"refunded_at" gorm:"not null"`
}

func (RefundRecord) TableName() string {
	return "refund_record"
}
