package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/fundme/internal/logic"
	"github.com/blues/fundme/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RecordHandler 审计记录处理器
type RecordHandler struct {
	donationLogic   *logic.DonationRecordLogic
	refundLogic     *logic.RefundRecordLogic
	settlementLogic *logic.SettlementRecordLogic
	eventLogic      *logic.EventLogic
}

// NewRecordHandler 创建审计记录处理器
func NewRecordHandler(db *gorm.DB) *RecordHandler {
	return &RecordHandler{
		donationLogic:   logic.NewDonationRecordLogic(db),
		refundLogic:     logic.NewRefundRecordLogic(db),
		settlementLogic: logic.NewSettlementRecordLogic(db),
		eventLogic:      logic.NewEventLogic(db),
	}
}

// GetDonationRecords 获取捐款记录
func (h *RecordHandler) GetDonationRecords(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var (
		records []model.DonationRecord
		total   int64
		err     error
	)
	if donor := c.Query("donor"); donor != "" {
		records, total, err = h.donationLogic.GetDonorRecords(donor, page, pageSize)
	} else {
		records, total, err = h.donationLogic.GetDonationRecords(page, pageSize)
	}
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取捐款记录成功", gin.H{
		"records":    ToDonationRecordResponseList(records),
		"pagination": paginationOf(page, pageSize, total),
	})
}

// GetRefundRecords 获取退款记录
func (h *RecordHandler) GetRefundRecords(c *gin.Context) {
	page, pageSize := parsePagination(c)

	records, total, err := h.refundLogic.GetRefundRecords(page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取退款记录成功", gin.H{
		"records":    ToRefundRecordResponseList(records),
		"pagination": paginationOf(page, pageSize, total),
	})
}

// GetSettlementRecords 获取结算记录
func (h *RecordHandler) GetSettlementRecords(c *gin.Context) {
	page, pageSize := parsePagination(c)

	records, total, err := h.settlementLogic.GetSettlementRecords(page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取结算记录成功", gin.H{
		"records":    ToSettlementRecordResponseList(records),
		"pagination": paginationOf(page, pageSize, total),
	})
}

// GetEvents 获取事件日志
func (h *RecordHandler) GetEvents(c *gin.Context) {
	page, pageSize := parsePagination(c)

	events, total, err := h.eventLogic.GetEvents(c.Query("name"), page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取事件日志成功", gin.H{
		"events":     events,
		"pagination": paginationOf(page, pageSize, total),
	})
}

// GetDonationStats 获取捐款统计信息
func (h *RecordHandler) GetDonationStats(c *gin.Context) {
	stats, err := h.donationLogic.GetDonationStats()
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取捐款统计信息成功", stats)
}

// parsePagination 解析分页参数
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// paginationOf 构造分页信息
func paginationOf(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}
