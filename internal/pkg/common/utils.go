package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// AbortWithError 以統一格式回傳錯誤響應
func AbortWithError(c *gin.Context, err error) {
	ce := AsCustomError(err)
	c.AbortWithStatusJSON(ce.Status, gin.H{
		"status":  "error",
		"code":    ce.Code,
		"message": ce.Message,
	})
}

// RequestID 取出請求 ID，沒有時現場補一個
func RequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}

// JSONSuccess 以 200 回傳成功響應
func JSONSuccess(c *gin.Context, payload gin.H) {
	body := gin.H{"status": "success"}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}
