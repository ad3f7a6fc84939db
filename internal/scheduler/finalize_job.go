package scheduler

import (
	"time"

	"github.com/blues/fundme/internal/campaign"
	"github.com/blues/fundme/internal/config"
	"github.com/blues/fundme/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// FinalizeJob 活动终态推进任务：截止后没有外部调用方触发 finalize 时，
// 由该任务轮询推进，保证活动最终进入终态。finalize 本身幂等，重复执行无害。
type FinalizeJob struct {
	camp     *campaign.Campaign
	interval time.Duration
}

// NewFinalizeJob 创建终态推进任务
func NewFinalizeJob(camp *campaign.Campaign, cfg *config.Config) *FinalizeJob {
	interval := time.Duration(cfg.Task.Interval) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	return &FinalizeJob{camp: camp, interval: interval}
}

// GetName 任务名
func (j *FinalizeJob) GetName() string {
	return "campaign_finalize"
}

// GetSchedule 任务调度定义
func (j *FinalizeJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute 执行任务
func (j *FinalizeJob) Execute() {
	if j.camp.State().Terminal() {
		return
	}
	if time.Now().Before(j.camp.Deadline()) {
		return
	}

	state := j.camp.Finalize()
	if state.Terminal() {
		logger.Info("Finalize job advanced campaign to %s", state)
	}
}
