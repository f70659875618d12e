package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

func TestNormalizeInventory(t *testing.T) {
	items := []common.InventoryItem{
		{Name: "  돼지고기  ", IngredientID: "pork"},
		{Name: "", IngredientID: "양파"},
		{Name: "   ", IngredientID: ""},
	}

	entries := NormalizeInventory(items)

	assert.Len(t, entries, 2)
	assert.Equal(t, "돼지고기", entries[0].Name)
	assert.Equal(t, "양파", entries[1].Name)
}

func TestMatcher_BidirectionalContainment(t *testing.T) {
	matcher := NewMatcher(false)
	inventory := []InventoryEntry{{Name: "돼지고기"}, {Name: "양파"}}

	// 需求名稱包含庫存名稱
	assert.True(t, matcher.Match(common.RequiredIngredient{Name: "돼지고기 앞다리"}, inventory))
	// 庫存名稱包含需求名稱
	assert.True(t, matcher.Match(common.RequiredIngredient{Name: "양파"}, []InventoryEntry{{Name: "적양파"}}))
	// 完全無關
	assert.False(t, matcher.Match(common.RequiredIngredient{Name: "마늘"}, inventory))
}

func TestMatcher_CaseSensitive(t *testing.T) {
	matcher := NewMatcher(false)
	inventory := []InventoryEntry{{Name: "Tofu"}}

	// 大小寫不做正規化，按原樣比對
	assert.False(t, matcher.Match(common.RequiredIngredient{Name: "tofu"}, inventory))
	assert.True(t, matcher.Match(common.RequiredIngredient{Name: "Tofu"}, inventory))
}

func TestMatcher_EmptyName(t *testing.T) {
	matcher := NewMatcher(false)
	inventory := []InventoryEntry{{Name: "돼지고기"}}

	assert.False(t, matcher.Match(common.RequiredIngredient{Name: "", IngredientID: ""}, inventory))
}

func TestMatcher_NameFallbackToIngredientID(t *testing.T) {
	matcher := NewMatcher(false)
	inventory := []InventoryEntry{{Name: "마늘"}}

	assert.True(t, matcher.Match(common.RequiredIngredient{IngredientID: "마늘"}, inventory))
}

func TestMatcher_RequireQuantity(t *testing.T) {
	matcher := NewMatcher(true)
	inventory := []InventoryEntry{{Name: "돼지고기", Quantity: 1}}

	required := common.RequiredIngredient{Name: "돼지고기", Quantity: 2}
	assert.False(t, matcher.Match(required, inventory))

	required.Quantity = 1
	assert.True(t, matcher.Match(required, inventory))
}
