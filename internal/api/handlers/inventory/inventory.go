package inventory

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/api/middleware"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/store"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// Handler 庫存管理處理程序（薄轉接層，無業務邏輯）
type Handler struct {
	inventory store.InventoryStore
}

// NewHandler 創建庫存處理程序
func NewHandler(inventory store.InventoryStore) *Handler {
	return &Handler{inventory: inventory}
}

// HandleList 取得使用者的全部庫存
func (h *Handler) HandleList(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	items, err := h.inventory.ListByUser(c.Request.Context(), userID)
	if err != nil {
		common.LogError("재고 조회 실패", zap.String("user_id", userID), zap.Error(err))
		common.AbortWithError(c, common.ErrInternal.WithCause(err))
		return
	}
	common.JSONSuccess(c, gin.H{"items": items})
}

// PutItemRequest 登錄庫存的請求
type PutItemRequest struct {
	ItemID       string     `json:"itemId"`
	IngredientID string     `json:"ingredientId" binding:"required"`
	Name         string     `json:"name"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
}

// HandlePut 登錄或更新一筆庫存
func (h *Handler) HandlePut(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req PutItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortWithError(c, common.ErrInvalidArgument.WithCause(err))
		return
	}
	if req.ItemID == "" {
		req.ItemID = common.GenerateUUID()
	}

	item := common.InventoryItem{
		ItemID:       req.ItemID,
		UserID:       userID,
		IngredientID: req.IngredientID,
		Name:         req.Name,
		Quantity:     common.CoerceQuantity(req.Quantity),
		Unit:         req.Unit,
		ExpiryDate:   req.ExpiryDate,
	}
	if err := h.inventory.PutItem(c.Request.Context(), item); err != nil {
		common.LogError("재고 저장 실패", zap.String("user_id", userID), zap.Error(err))
		common.AbortWithError(c, common.ErrInternal.WithCause(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "item": item})
}

// HandleDelete 刪除一筆庫存
func (h *Handler) HandleDelete(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	itemID := c.Param("itemId")
	if itemID == "" {
		common.AbortWithError(c, common.ErrInvalidArgument)
		return
	}
	if err := h.inventory.DeleteItem(c.Request.Context(), userID, itemID); err != nil {
		common.LogError("재고 삭제 실패", zap.String("user_id", userID), zap.Error(err))
		common.AbortWithError(c, common.ErrInternal.WithCause(err))
		return
	}
	common.JSONSuccess(c, gin.H{})
}
