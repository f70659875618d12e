package recommend

import (
	"strings"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// InventoryEntry 比對用的庫存條目（名稱已正規化）
type InventoryEntry struct {
	Name     string
	Quantity float64
}

// NormalizeInventory 將庫存轉為比對用條目
// 名稱去除前後空白，空名稱退回 ingredientId，兩者皆空的項目直接略過
func NormalizeInventory(items []common.InventoryItem) []InventoryEntry {
	entries := make([]InventoryEntry, 0, len(items))
	for _, item := range items {
		name := item.DisplayName()
		if name == "" {
			continue
		}
		entries = append(entries, InventoryEntry{
			Name:     name,
			Quantity: item.Quantity,
		})
	}
	return entries
}

// Matcher 判斷單一所需食材是否被庫存滿足
type Matcher struct {
	// requireQuantity 為 true 時額外要求庫存數量達到需求量（歷史設計的另一個變體）
	requireQuantity bool
}

// NewMatcher 創建食材比對器
func NewMatcher(requireQuantity bool) *Matcher {
	return &Matcher{requireQuantity: requireQuantity}
}

// Match 以雙向子字串包含判定是否滿足
// 寬鬆比對是刻意的：容忍 "돼지고기 앞다리" 與 "돼지고기" 這類命名差異，
// 代價是過短的名稱可能誤判
func (m *Matcher) Match(required common.RequiredIngredient, inventory []InventoryEntry) bool {
	name := strings.TrimSpace(required.DisplayName())
	if name == "" {
		return false
	}
	for _, entry := range inventory {
		if !strings.Contains(entry.Name, name) && !strings.Contains(name, entry.Name) {
			continue
		}
		if m.requireQuantity && entry.Quantity < required.Quantity {
			continue
		}
		return true
	}
	return false
}
