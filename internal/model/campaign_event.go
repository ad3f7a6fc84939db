package model

import (
	"time"

	"gorm.io/gorm"
)

// CampaignEvent 活动事件日志，所有账本事件的通用落库形式
type CampaignEvent struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Name      string    `json:"name" gorm:"not null;index"`
	Payload   string    `json:"payload" gorm:"type:text"` // 事件内容（JSON）
	EmittedAt time.Time `json:"emitted_at" gorm:"not null"`
}

func (CampaignEvent) TableName() string {
	return "campaign_event"
}
