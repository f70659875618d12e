package vision

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	corevision "github.com/nyeonggyeong/LivingAloneCare-Backend/internal/core/vision"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// AnalyzeRequest 影像分析請求
type AnalyzeRequest struct {
	Image string `json:"image"` // base64 編碼影像
}

// Handler 影像分析處理程序
type Handler struct {
	visionService *corevision.Service
}

// NewHandler 創建影像分析處理程序
func NewHandler(visionService *corevision.Service) *Handler {
	return &Handler{visionService: visionService}
}

// HandleAnalyze 解析影像並回傳食材標籤
func (h *Handler) HandleAnalyze(c *gin.Context) {
	requestID := common.RequestID(c)

	var req AnalyzeRequest
	// 必填檢查交給服務層（空 image 為 InvalidArgument）
	_ = c.ShouldBindJSON(&req)

	result, err := h.visionService.Analyze(c.Request.Context(), req.Image)
	if err != nil {
		common.LogError("이미지 분석 실패",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
