package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/api/middleware"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/core/recommend"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// Handler 食譜相關處理程序
type Handler struct {
	recommendService *recommend.Service
}

// NewHandler 創建食譜處理程序
func NewHandler(recommendService *recommend.Service) *Handler {
	return &Handler{
		recommendService: recommendService,
	}
}

// HandleRecommend 以使用者庫存推薦食譜
func (h *Handler) HandleRecommend(c *gin.Context) {
	requestID := common.RequestID(c)
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		common.AbortWithError(c, common.ErrUnauthenticated)
		return
	}

	common.LogInfo("추천 요청 시작",
		zap.String("request_id", requestID),
		zap.String("user_id", userID),
	)

	result, err := h.recommendService.Recommend(c.Request.Context(), userID)
	if err != nil {
		common.LogError("추천 처리 실패",
			zap.String("request_id", requestID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// VideoSearchRequest 搜尋食譜影片的請求
type VideoSearchRequest struct {
	RecipeName string `json:"recipeName"`
}

// HandleVideoSearch 組出 YouTube 搜尋頁網址
func (h *Handler) HandleVideoSearch(c *gin.Context) {
	requestID := common.RequestID(c)

	var req VideoSearchRequest
	// body 可缺漏，recipeName 的必填檢查交給下面的 URL 組裝
	_ = c.ShouldBindJSON(&req)

	searchURL, err := recommend.BuildYoutubeSearchURL(req.RecipeName)
	if err != nil {
		common.LogWarn("영상 검색 요청 거부",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		common.AbortWithError(c, err)
		return
	}

	common.JSONSuccess(c, gin.H{"youtubeSearchUrl": searchURL})
}
