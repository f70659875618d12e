package alert

import (
	"fmt"
	"sort"
	"strings"
)

// 推播文案（沿用行動端既有文案）
const (
	notificationTitle      = "🚨 냉장고 재료 심폐소생술 필요!"
	notificationBodyFormat = "%s 등 %d개 재료의 유통기한이 3일 남았어요. 얼른 드세요!"

	// Android 通知通道設定，行動端以此顯示高優先級通知
	androidChannelID = "high_importance_channel"
	androidPriority  = "high"
)

// ComposeMessage 組出單一使用者的提醒標題與內文
// 名稱集合無序，先排序讓輸出可重現；count 為去重後的名稱數
func ComposeMessage(alerts OwnerAlerts) (title, body string) {
	names := alerts.Names()
	sort.Strings(names)
	title = notificationTitle
	body = fmt.Sprintf(notificationBodyFormat, strings.Join(names, ", "), len(names))
	return title, body
}
