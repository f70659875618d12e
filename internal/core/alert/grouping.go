package alert

import (
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// 項目名稱缺漏時的通用佔位名稱
const placeholderName = "식재료"

// OwnerAlerts 單一使用者的到期提醒集合（名稱已去重）
type OwnerAlerts map[string]struct{}

// Names 回傳集合內的名稱切片（順序不保證）
func (a OwnerAlerts) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	return names
}

// GroupByOwner 將到期項目摺疊為 userId -> 名稱集合
// 純函數：完整建好 map 後才交給後續的分送階段，分送任務不會看到建構中的狀態
func GroupByOwner(items []common.InventoryItem) map[string]OwnerAlerts {
	grouped := make(map[string]OwnerAlerts)
	for _, item := range items {
		if item.UserID == "" {
			continue
		}
		name := item.DisplayName()
		if name == "" {
			name = placeholderName
		}
		alerts, ok := grouped[item.UserID]
		if !ok {
			alerts = make(OwnerAlerts)
			grouped[item.UserID] = alerts
		}
		// 同名項目只算一次
		alerts[name] = struct{}{}
	}
	return grouped
}
