package main

import (
	"log"
	"math/big"
	"time"

	"github.com/blues/fundme/internal/campaign"
	"github.com/blues/fundme/internal/config"
	"github.com/blues/fundme/internal/database"
	"github.com/blues/fundme/internal/ethereum"
	"github.com/blues/fundme/internal/event"
	"github.com/blues/fundme/internal/logger"
	"github.com/blues/fundme/internal/router"
	"github.com/blues/fundme/internal/scheduler"
	"github.com/blues/fundme/internal/vault"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(logger.ParseLogLevel(cfg.Log.Level), cfg.Log.File)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化事件分发器
	dispatcher, err := event.NewDispatcher(db, cfg.Task.PoolSize)
	if err != nil {
		log.Fatalf("Failed to initialize event dispatcher: %v", err)
	}
	defer dispatcher.Close()

	// 初始化资产托管
	v, err := buildVault(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize vault: %v", err)
	}

	// 初始化活动
	camp, err := buildCampaign(cfg, v, dispatcher)
	if err != nil {
		log.Fatalf("Failed to initialize campaign: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, camp, cfg)

	// 启动定时任务
	manager := scheduler.Start(camp, cfg)
	defer manager.Stop()

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildVault 按配置选择资产托管实现
func buildVault(cfg *config.Config) (campaign.Vault, error) {
	switch cfg.Vault.Mode {
	case "ethereum":
		client, err := ethereum.Init(cfg.Ethereum)
		if err != nil {
			return nil, err
		}
		return ethereum.NewVault(client), nil
	default:
		return vault.NewMemory(common.HexToAddress(cfg.Vault.Treasury)), nil
	}
}

// buildCampaign 从配置构造活动聚合
func buildCampaign(cfg *config.Config, v campaign.Vault, sink campaign.Sink) (*campaign.Campaign, error) {
	goal, ok := new(big.Int).SetString(cfg.Campaign.Goal, 10)
	if !ok {
		log.Fatalf("Invalid campaign goal: %s", cfg.Campaign.Goal)
	}

	return campaign.New(campaign.Config{
		Owner:      common.HexToAddress(cfg.Campaign.Owner),
		Goal:       goal,
		Deadline:   time.Now().Add(time.Duration(cfg.Campaign.Duration) * time.Second),
		LockPeriod: time.Duration(cfg.Campaign.LockPeriod) * time.Second,
		Token:      common.HexToAddress(cfg.Campaign.TokenAddress),
	}, v, campaign.WithSink(sink))
}
