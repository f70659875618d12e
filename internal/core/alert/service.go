package alert

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/config"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/store"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// Pusher 推播發送介面，失敗原因對本服務而言不透明
type Pusher interface {
	Send(ctx context.Context, msg common.PushMessage) error
}

// Service 有效期限提醒服務
type Service struct {
	inventory     store.InventoryStore
	users         store.UserStore
	notifications store.NotificationStore
	pusher        Pusher
	window        time.Duration
	now           func() time.Time // 測試時替換
}

// NewService 創建有效期限提醒服務
func NewService(inventory store.InventoryStore, users store.UserStore, notifications store.NotificationStore, pusher Pusher, cfg *config.AlertConfig) *Service {
	return &Service{
		inventory:     inventory,
		users:         users,
		notifications: notifications,
		pusher:        pusher,
		window:        cfg.Window,
		now:           time.Now,
	}
}

// Run 執行一次提醒流程
// 只有起始的到期查詢失敗會讓整次執行失敗；單一使用者的發送或紀錄寫入失敗
// 在該使用者的任務邊界記 log 後吞掉，不影響其他使用者
func (s *Service) Run(ctx context.Context) error {
	common.LogInfo("유통기한 알림 시작")

	now := s.now()
	items, err := s.inventory.ListExpiringWithin(ctx, now, now.Add(s.window))
	if err != nil {
		common.LogError("유통기한 재고 조회 실패", zap.Error(err))
		return common.ErrInternal.WithCause(fmt.Errorf("expiring inventory query failed: %w", err))
	}

	if len(items) == 0 {
		common.LogInfo("유통기한 임박 재고 없음")
		return nil
	}

	grouped := GroupByOwner(items)

	// 每個使用者一個獨立任務並行分送，彼此沒有共享可變狀態
	// 全部任務結束後本次執行才算完成
	var wg sync.WaitGroup
	for userID, alerts := range grouped {
		if len(alerts) == 0 {
			continue
		}
		wg.Add(1)
		go func(userID string, alerts OwnerAlerts) {
			defer wg.Done()
			s.notifyOwner(ctx, userID, alerts)
		}(userID, alerts)
	}
	wg.Wait()

	common.LogInfo("유통기한 알림 종료", zap.Int("owner_count", len(grouped)))
	return nil
}

// notifyOwner 單一使用者的查詢、發送與紀錄；錯誤在此邊界吸收
func (s *Service) notifyOwner(ctx context.Context, userID string, alerts OwnerAlerts) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		common.LogError("사용자 조회 실패", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if user == nil || user.FCMToken == "" {
		// 沒有 token 就跳過，不重試也不視為錯誤
		common.LogWarn("알림 스킵: FCM 토큰 없음", zap.String("user_id", userID))
		return
	}

	title, body := ComposeMessage(alerts)
	start := s.now()
	err = s.pusher.Send(ctx, common.PushMessage{
		Title:     title,
		Body:      body,
		Token:     user.FCMToken,
		ChannelID: androidChannelID,
		Priority:  androidPriority,
	})
	common.LogPushResult(userID, s.now().Sub(start), err)
	if err != nil {
		return
	}

	// 發送成功才寫入通知歷史；寫入失敗只記 log，不回滾已送出的推播
	notification := common.Notification{
		ID:        common.GenerateUUID(),
		Title:     title,
		Body:      body,
		Type:      "expiry",
		IsRead:    false,
		CreatedAt: s.now(),
	}
	if err := s.notifications.AppendNotification(ctx, userID, notification); err != nil {
		common.LogError("알림 기록 저장 실패", zap.String("user_id", userID), zap.Error(err))
		return
	}
	common.LogInfo("알림 기록 저장 완료", zap.String("user_id", userID))
}
