package recommend

import (
	"math"
	"sort"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// Ranker 對整份食譜集合進行評分與排序
type Ranker struct {
	matcher *Matcher
}

// NewRanker 創建食譜排名器
func NewRanker(matcher *Matcher) *Ranker {
	return &Ranker{matcher: matcher}
}

// Rank 依庫存對食譜評分，回傳排序後的完整推薦清單（截斷由呼叫端決定）
// 規則：
//   - 沒有任何所需食材的食譜不評分也不輸出
//   - matchingRate = round((matched/required)*100, 小數一位)，0% 的食譜不輸出
//   - 排序為 matchingRate 由高到低的穩定排序，同分維持輸入順序
func (r *Ranker) Rank(recipes []common.Recipe, inventory []InventoryEntry) []common.Recommendation {
	recommendations := make([]common.Recommendation, 0, len(recipes))

	for _, recipe := range recipes {
		requiredCount := len(recipe.RequiredIngredients)
		if requiredCount == 0 {
			continue
		}

		matchedCount := 0
		missing := make([]string, 0, requiredCount)

		// 依食譜內的順序逐一確認，缺漏清單保留原始順序（允許重複名稱）
		for _, required := range recipe.RequiredIngredients {
			if r.matcher.Match(required, inventory) {
				matchedCount++
			} else {
				missing = append(missing, required.DisplayName())
			}
		}

		rate := roundRate(float64(matchedCount) / float64(requiredCount) * 100)
		if rate <= 0 {
			continue
		}

		recommendations = append(recommendations, common.Recommendation{
			RecipeID:           recipe.ID,
			Name:               recipe.Name,
			MatchingRate:       rate,
			CookingTime:        recipe.CookingTime,
			Difficulty:         recipe.Difficulty,
			Tags:               recipe.Tags,
			ImageURL:           recipe.ImageURL,
			MissingIngredients: missing,
		})
	}

	// 同分食譜維持輸入順序，來源順序可能帶有策展優先級
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchingRate > recommendations[j].MatchingRate
	})

	return recommendations
}

// Truncate 取前 topN 筆，topN <= 0 代表不截斷
func Truncate(recommendations []common.Recommendation, topN int) []common.Recommendation {
	if topN > 0 && len(recommendations) > topN {
		return recommendations[:topN]
	}
	return recommendations
}

// roundRate 四捨五入到小數一位
func roundRate(rate float64) float64 {
	return math.Round(rate*10) / 10
}
