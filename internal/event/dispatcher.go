package event

import (
	"encoding/json"

	"github.com/blues/fundme/internal/campaign"
	"github.com/blues/fundme/internal/logger"
	"github.com/blues/fundme/internal/logic"
	"github.com/blues/fundme/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Dispatcher 实现 campaign.Sink：经协程池异步将账本事件交给
// 对应的处理器落库，不阻塞发出事件的调用。
type Dispatcher struct {
	pool *ants.Pool

	eventLogic          *logic.EventLogic
	donationProcessor   *DonationProcessor
	refundProcessor     *RefundProcessor
	settlementProcessor *SettlementProcessor
}

// NewDispatcher 创建事件分发器
func NewDispatcher(db *gorm.DB, poolSize int) (*Dispatcher, error) {
	if poolSize <= 0 {
		poolSize = 4
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		pool:                pool,
		eventLogic:          logic.NewEventLogic(db),
		donationProcessor:   NewDonationProcessor(logic.NewDonationRecordLogic(db)),
		refundProcessor:     NewRefundProcessor(logic.NewRefundRecordLogic(db)),
		settlementProcessor: NewSettlementProcessor(logic.NewSettlementRecordLogic(db)),
	}, nil
}

// Emit 接收账本事件
func (d *Dispatcher) Emit(ev campaign.Event) {
	if err := d.pool.Submit(func() { d.process(ev) }); err != nil {
		logger.Error("Failed to submit event %s to pool: %v", ev.Name(), err)
		// 协程池不可用时退化为同步处理，事件不丢
		d.process(ev)
	}
}

// process 落库通用事件日志，并分发给对应处理器
func (d *Dispatcher) process(ev campaign.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Error("Failed to marshal event %s: %v", ev.Name(), err)
		payload = []byte("{}")
	}

	record := model.CampaignEvent{Name: ev.Name(), Payload: string(payload)}
	switch e := ev.(type) {
	case campaign.DonationReceived:
		record.EmittedAt = e.At
	case campaign.Refunded:
		record.EmittedAt = e.At
	case campaign.Withdrawn:
		record.EmittedAt = e.At
	case campaign.Finalized:
		record.EmittedAt = e.At
	case campaign.OwnershipTransferred:
		record.EmittedAt = e.At
	}

	if err := d.eventLogic.CreateEvent(&record); err != nil {
		logger.Error("Failed to persist event %s: %v", ev.Name(), err)
	}

	switch e := ev.(type) {
	case campaign.DonationReceived:
		d.donationProcessor.Process(e)
	case campaign.Refunded:
		d.refundProcessor.Process(e)
	case campaign.Withdrawn:
		d.settlementProcessor.Process(e)
	}
}

// Close 关闭协程池
func (d *Dispatcher) Close() {
	d.pool.Release()
}
