package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/config"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

const (
	keyRecipes     = "recipes"
	keyExpiryIndex = "inventory:expiry"
)

// RedisStore 以 Redis 實作的文件儲存
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 建立 Redis 儲存連線
func NewRedisStore(cfg *config.StoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// 測試連接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient 以現有連線建立儲存（測試用）
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Ping 檢查連線狀態
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func inventoryKey(userID string) string {
	return "inventory:" + userID
}

func userKey(userID string) string {
	return "user:" + userID
}

func notificationsKey(userID string) string {
	return "notifications:" + userID
}

func expiryMember(userID, itemID string) string {
	return userID + "/" + itemID
}

// rawInventoryItem 讀取邊界用的寬鬆結構，數量欄位允許缺漏或型別偏差
type rawInventoryItem struct {
	ItemID       string      `json:"itemId"`
	UserID       string      `json:"userId"`
	IngredientID string      `json:"ingredientId"`
	Name         string      `json:"name"`
	Quantity     interface{} `json:"quantity"`
	Unit         string      `json:"unit"`
	ExpiryDate   *time.Time  `json:"expiryDate,omitempty"`
}

func decodeInventoryItem(data []byte) (common.InventoryItem, error) {
	var raw rawInventoryItem
	if err := common.ParseJSONBytes(data, &raw); err != nil {
		return common.InventoryItem{}, err
	}
	return common.InventoryItem{
		ItemID:       raw.ItemID,
		UserID:       raw.UserID,
		IngredientID: raw.IngredientID,
		Name:         raw.Name,
		Quantity:     common.CoerceQuantity(raw.Quantity),
		Unit:         raw.Unit,
		ExpiryDate:   raw.ExpiryDate,
	}, nil
}

type rawRequiredIngredient struct {
	IngredientID string      `json:"ingredientId"`
	Name         string      `json:"name"`
	Quantity     interface{} `json:"quantity"`
	QuantityText string      `json:"quantityText,omitempty"`
	Unit         string      `json:"unit,omitempty"`
}

type rawRecipe struct {
	ID                  string                  `json:"id"`
	Name                string                  `json:"name"`
	RequiredIngredients []rawRequiredIngredient `json:"requiredIngredients"`
	CookingTime         int                     `json:"cookingTime"`
	Difficulty          string                  `json:"difficulty"`
	Tags                []string                `json:"tags"`
	ImageURL            string                  `json:"imageUrl"`
	Category            string                  `json:"category,omitempty"`
	Servings            int                     `json:"servings,omitempty"`
	Steps               []string                `json:"steps,omitempty"`
	Calories            float64                 `json:"calories,omitempty"`
	Protein             float64                 `json:"protein,omitempty"`
	Fat                 float64                 `json:"fat,omitempty"`
}

func decodeRecipe(id string, data []byte) (common.Recipe, error) {
	var raw rawRecipe
	if err := common.ParseJSONBytes(data, &raw); err != nil {
		return common.Recipe{}, err
	}
	required := make([]common.RequiredIngredient, 0, len(raw.RequiredIngredients))
	for _, ing := range raw.RequiredIngredients {
		required = append(required, common.RequiredIngredient{
			IngredientID: ing.IngredientID,
			Name:         ing.Name,
			Quantity:     common.CoerceQuantity(ing.Quantity),
			QuantityText: ing.QuantityText,
			Unit:         ing.Unit,
		})
	}
	recipe := common.Recipe{
		ID:                  raw.ID,
		Name:                raw.Name,
		RequiredIngredients: required,
		CookingTime:         raw.CookingTime,
		Difficulty:          raw.Difficulty,
		Tags:                raw.Tags,
		ImageURL:            raw.ImageURL,
		Category:            raw.Category,
		Servings:            raw.Servings,
		Steps:               raw.Steps,
		Calories:            raw.Calories,
		Protein:             raw.Protein,
		Fat:                 raw.Fat,
	}
	if recipe.ID == "" {
		recipe.ID = id
	}
	return recipe, nil
}

// ListByUser 取得單一使用者的全部庫存
func (s *RedisStore) ListByUser(ctx context.Context, userID string) ([]common.InventoryItem, error) {
	values, err := s.client.HGetAll(ctx, inventoryKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	items := make([]common.InventoryItem, 0, len(values))
	for itemID, data := range values {
		item, err := decodeInventoryItem([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode inventory item %s: %w", itemID, err)
		}
		if item.ItemID == "" {
			item.ItemID = itemID
		}
		item.UserID = userID
		items = append(items, item)
	}
	return items, nil
}

// ListExpiringWithin 跨使用者掃描 [from, to] 之間到期的庫存
// 到期索引為 sorted set，score 為到期時間的 unix 秒數
func (s *RedisStore) ListExpiringWithin(ctx context.Context, from, to time.Time) ([]common.InventoryItem, error) {
	members, err := s.client.ZRangeByScore(ctx, keyExpiryIndex, &redis.ZRangeBy{
		Min: strconv.FormatInt(from.Unix(), 10),
		Max: strconv.FormatInt(to.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan expiry index: %w", err)
	}

	items := make([]common.InventoryItem, 0, len(members))
	for _, member := range members {
		userID, itemID, ok := splitExpiryMember(member)
		if !ok {
			continue
		}
		data, err := s.client.HGet(ctx, inventoryKey(userID), itemID).Result()
		if err == redis.Nil {
			// 索引殘留，項目已被刪除
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read inventory item %s: %w", member, err)
		}
		item, err := decodeInventoryItem([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode inventory item %s: %w", member, err)
		}
		if item.ItemID == "" {
			item.ItemID = itemID
		}
		item.UserID = userID
		items = append(items, item)
	}
	return items, nil
}

// PutItem 寫入庫存並維護到期索引
func (s *RedisStore) PutItem(ctx context.Context, item common.InventoryItem) error {
	if item.UserID == "" || item.ItemID == "" {
		return fmt.Errorf("inventory item requires userId and itemId")
	}
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory item: %w", err)
	}
	if err := s.client.HSet(ctx, inventoryKey(item.UserID), item.ItemID, data).Err(); err != nil {
		return fmt.Errorf("failed to store inventory item: %w", err)
	}
	member := expiryMember(item.UserID, item.ItemID)
	if item.ExpiryDate != nil {
		err = s.client.ZAdd(ctx, keyExpiryIndex, &redis.Z{
			Score:  float64(item.ExpiryDate.Unix()),
			Member: member,
		}).Err()
	} else {
		err = s.client.ZRem(ctx, keyExpiryIndex, member).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to update expiry index: %w", err)
	}
	return nil
}

// DeleteItem 刪除庫存與對應索引
func (s *RedisStore) DeleteItem(ctx context.Context, userID, itemID string) error {
	if err := s.client.HDel(ctx, inventoryKey(userID), itemID).Err(); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if err := s.client.ZRem(ctx, keyExpiryIndex, expiryMember(userID, itemID)).Err(); err != nil {
		return fmt.Errorf("failed to update expiry index: %w", err)
	}
	return nil
}

// ListAll 取得全部食譜
func (s *RedisStore) ListAll(ctx context.Context) ([]common.Recipe, error) {
	values, err := s.client.HGetAll(ctx, keyRecipes).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	recipes := make([]common.Recipe, 0, len(values))
	for id, data := range values {
		recipe, err := decodeRecipe(id, []byte(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode recipe %s: %w", id, err)
		}
		recipes = append(recipes, recipe)
	}
	// hash 欄位順序不固定，依 ID 排序讓快照順序可重現（排序穩定性依賴輸入順序）
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID < recipes[j].ID })
	return recipes, nil
}

// PutRecipe 寫入食譜
func (s *RedisStore) PutRecipe(ctx context.Context, recipe common.Recipe) error {
	if recipe.ID == "" {
		return fmt.Errorf("recipe requires id")
	}
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	if err := s.client.HSet(ctx, keyRecipes, recipe.ID, data).Err(); err != nil {
		return fmt.Errorf("failed to store recipe: %w", err)
	}
	return nil
}

// GetUser 取得使用者，不存在時回傳 nil
func (s *RedisStore) GetUser(ctx context.Context, userID string) (*common.User, error) {
	data, err := s.client.Get(ctx, userKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	var user common.User
	if err := common.ParseJSONBytes(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if user.UserID == "" {
		user.UserID = userID
	}
	return &user, nil
}

// PutUser 寫入使用者
func (s *RedisStore) PutUser(ctx context.Context, user common.User) error {
	if user.UserID == "" {
		return fmt.Errorf("user requires userId")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := s.client.Set(ctx, userKey(user.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// AppendNotification 將通知附加到使用者的通知歷史
func (s *RedisStore) AppendNotification(ctx context.Context, userID string, n common.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := s.client.RPush(ctx, notificationsKey(userID), data).Err(); err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	return nil
}

// ListNotifications 取得使用者的通知歷史（寫入順序）
func (s *RedisStore) ListNotifications(ctx context.Context, userID string) ([]common.Notification, error) {
	values, err := s.client.LRange(ctx, notificationsKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	notifications := make([]common.Notification, 0, len(values))
	for _, data := range values {
		var n common.Notification
		if err := common.ParseJSONBytes([]byte(data), &n); err != nil {
			return nil, fmt.Errorf("failed to decode notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func splitExpiryMember(member string) (userID, itemID string, ok bool) {
	idx := strings.Index(member, "/")
	if idx <= 0 || idx == len(member)-1 {
		return "", "", false
	}
	return member[:idx], member[idx+1:], true
}
