package recommend

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/config"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/store"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// 使用者可見訊息（沿用行動端既有文案）
const (
	msgNoInventory = "냉장고에 등록된 재료가 없습니다."
	msgFoundFormat = "총 %d개의 추천 레시피를 찾았습니다."
)

// Result 推薦結果
type Result struct {
	Status          string                  `json:"status"`
	Message         string                  `json:"message"`
	Recommendations []common.Recommendation `json:"recommendations"`
}

// Service 食譜推薦服務
type Service struct {
	inventory store.InventoryStore
	recipes   store.RecipeStore
	ranker    *Ranker
	topN      int
}

// NewService 創建食譜推薦服務
func NewService(inventory store.InventoryStore, recipes store.RecipeStore, cfg *config.RecommendConfig) *Service {
	return &Service{
		inventory: inventory,
		recipes:   recipes,
		ranker:    NewRanker(NewMatcher(cfg.RequireQuantity)),
		topN:      cfg.TopN,
	}
}

// Recommend 對單一使用者執行推薦
// 兩筆讀取互不相依，並行發出後合流；任一讀取失敗視為整體失敗，不回傳部分結果
func (s *Service) Recommend(ctx context.Context, userID string) (*Result, error) {
	var (
		wg         sync.WaitGroup
		items      []common.InventoryItem
		allRecipes []common.Recipe
		itemsErr   error
		recipesErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		items, itemsErr = s.inventory.ListByUser(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		allRecipes, recipesErr = s.recipes.ListAll(ctx)
	}()
	wg.Wait()

	if itemsErr != nil {
		return nil, common.ErrInternal.WithCause(fmt.Errorf("inventory read failed: %w", itemsErr))
	}
	if recipesErr != nil {
		return nil, common.ErrInternal.WithCause(fmt.Errorf("recipe read failed: %w", recipesErr))
	}

	// 空庫存走快速路徑，不進 ranker
	if len(items) == 0 {
		common.LogInfo("추천 스킵: 등록된 재고 없음", zap.String("user_id", userID))
		return &Result{
			Status:          "success",
			Message:         msgNoInventory,
			Recommendations: []common.Recommendation{},
		}, nil
	}

	inventory := NormalizeInventory(items)
	ranked := s.ranker.Rank(allRecipes, inventory)

	common.LogInfo("추천 완료",
		zap.String("user_id", userID),
		zap.Int("inventory_count", len(items)),
		zap.Int("recipe_count", len(allRecipes)),
		zap.Int("qualified", len(ranked)),
	)

	// 訊息的總數取截斷前的數量，回傳清單只給前 topN 筆
	return &Result{
		Status:          "success",
		Message:         fmt.Sprintf(msgFoundFormat, len(ranked)),
		Recommendations: Truncate(ranked, s.topN),
	}, nil
}
