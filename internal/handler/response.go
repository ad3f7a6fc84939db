package handler

import (
	"github.com/gin-gonic/gin"
)

// respond 统一响应出口
func respond(c *gin.Context, statusCode int, success bool, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	respond(c, statusCode, true, message, data)
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	respond(c, statusCode, false, message, nil)
}
