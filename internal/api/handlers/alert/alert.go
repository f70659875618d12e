package alert

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	corealert "github.com/nyeonggyeong/LivingAloneCare-Backend/internal/core/alert"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// Handler 到期提醒觸發端點
type Handler struct {
	alertService *corealert.Service
}

// NewHandler 創建提醒觸發處理程序
func NewHandler(alertService *corealert.Service) *Handler {
	return &Handler{alertService: alertService}
}

// HandleExpiryCheck 執行一次到期提醒（排程器呼叫，無請求參數）
func (h *Handler) HandleExpiryCheck(c *gin.Context) {
	requestID := common.RequestID(c)

	if err := h.alertService.Run(c.Request.Context()); err != nil {
		common.LogError("유통기한 알림 실행 실패",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		common.AbortWithError(c, err)
		return
	}

	common.JSONSuccess(c, gin.H{})
}
