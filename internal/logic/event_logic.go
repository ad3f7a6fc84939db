package logic

import (
	"fmt"

	"github.com/blues/fundme/internal/model"
	"gorm.io/gorm"
)

// EventLogic 事件日志业务逻辑
type EventLogic struct {
	db *gorm.DB
}

// NewEventLogic 创建事件日志业务逻辑
func NewEventLogic(db *gorm.DB) *EventLogic {
	return &EventLogic{db: db}
}

// CreateEvent 落库一条事件日志
func (e *EventLogic) CreateEvent(event *model.CampaignEvent) error {
	if err := e.db.Create(event).Error; err != nil {
		return fmt.Errorf("创建事件日志失败: %w", err)
	}
	return nil
}

// GetEvents 获取事件日志列表
func (e *EventLogic) GetEvents(name string, page, pageSize int) ([]model.CampaignEvent, int64, error) {
	var events []model.CampaignEvent
	var total int64

	query := e.db.Model(&model.CampaignEvent{})
	if name != "" {
		query = query.Where("name = ?", name)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}
