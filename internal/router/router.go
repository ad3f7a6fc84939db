package router

import (
	"github.com/blues/fundme/internal/campaign"
	"github.com/blues/fundme/internal/config"
	"github.com/blues/fundme/internal/handler"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, camp *campaign.Campaign, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "fundme-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 活动相关路由
		campaignHandler := handler.NewCampaignHandler(camp)
		campaigns := v1.Group("/campaign")
		{
			campaigns.GET("", campaignHandler.GetCampaign)
			campaigns.GET("/leaderboard", campaignHandler.GetLeaderboard)
			campaigns.GET("/donors/:address", campaignHandler.GetDonor)
			campaigns.POST("/donate", campaignHandler.Donate)
			campaigns.POST("/finalize", campaignHandler.Finalize)
			campaigns.POST("/refund", campaignHandler.Refund)
			campaigns.POST("/withdraw", campaignHandler.Withdraw)
			campaigns.POST("/ownership", campaignHandler.TransferOwnership)
		}

		// 审计记录路由
		recordHandler := handler.NewRecordHandler(db)
		records := v1.Group("/records")
		{
			records.GET("/donations", recordHandler.GetDonationRecords)
			records.GET("/donations/stats", recordHandler.GetDonationStats)
			records.GET("/refunds", recordHandler.GetRefundRecords)
			records.GET("/settlements", recordHandler.GetSettlementRecords)
			records.GET("/events", recordHandler.GetEvents)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
