package store

import (
	"context"
	"time"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// InventoryStore 庫存讀寫介面
type InventoryStore interface {
	// ListByUser 取得單一使用者的全部庫存
	ListByUser(ctx context.Context, userID string) ([]common.InventoryItem, error)
	// ListExpiringWithin 跨使用者掃描 [from, to] 之間到期的庫存
	ListExpiringWithin(ctx context.Context, from, to time.Time) ([]common.InventoryItem, error)
	PutItem(ctx context.Context, item common.InventoryItem) error
	DeleteItem(ctx context.Context, userID, itemID string) error
}

// RecipeStore 食譜讀寫介面
type RecipeStore interface {
	ListAll(ctx context.Context) ([]common.Recipe, error)
	PutRecipe(ctx context.Context, recipe common.Recipe) error
}

// UserStore 使用者讀寫介面
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*common.User, error)
	PutUser(ctx context.Context, user common.User) error
}

// NotificationStore 通知紀錄介面（附加型寫入，不覆蓋）
type NotificationStore interface {
	AppendNotification(ctx context.Context, userID string, n common.Notification) error
	ListNotifications(ctx context.Context, userID string) ([]common.Notification, error)
}

// Store 彙整全部儲存介面，方便一次注入
type Store interface {
	InventoryStore
	RecipeStore
	UserStore
	NotificationStore
}
