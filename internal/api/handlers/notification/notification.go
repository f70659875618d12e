package notification

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/api/middleware"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/store"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// Handler 通知歷史處理程序
type Handler struct {
	notifications store.NotificationStore
}

// NewHandler 創建通知歷史處理程序
func NewHandler(notifications store.NotificationStore) *Handler {
	return &Handler{notifications: notifications}
}

// HandleList 取得使用者的通知歷史
func (h *Handler) HandleList(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	items, err := h.notifications.ListNotifications(c.Request.Context(), userID)
	if err != nil {
		common.LogError("알림 히스토리 조회 실패", zap.String("user_id", userID), zap.Error(err))
		common.AbortWithError(c, common.ErrInternal.WithCause(err))
		return
	}
	common.JSONSuccess(c, gin.H{"notifications": items})
}
