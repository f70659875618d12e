package common

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// InventoryItem 使用者冷藏庫中的單一食材
// 由庫存管理 API 建立，推薦與到期提醒邏輯只讀取不修改
type InventoryItem struct {
	ItemID       string     `json:"itemId"`
	UserID       string     `json:"userId"` // 擁有者（到期掃描時用來回查使用者）
	IngredientID string     `json:"ingredientId"`
	Name         string     `json:"name"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
}

// DisplayName 回傳顯示用名稱，name 缺漏時退回 ingredientId
func (i InventoryItem) DisplayName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	return strings.TrimSpace(i.IngredientID)
}

// RequiredIngredient 食譜所需的單一食材
type RequiredIngredient struct {
	IngredientID string  `json:"ingredientId"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	QuantityText string  `json:"quantityText,omitempty"`
	Unit         string  `json:"unit,omitempty"`
}

// DisplayName 回傳顯示用名稱，name 缺漏時退回 ingredientId
func (r RequiredIngredient) DisplayName() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return strings.TrimSpace(r.IngredientID)
}

// Recipe 全域共用的食譜資料
type Recipe struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	RequiredIngredients []RequiredIngredient `json:"requiredIngredients"`
	CookingTime         int                  `json:"cookingTime"`
	Difficulty          string               `json:"difficulty"`
	Tags                []string             `json:"tags"`
	ImageURL            string               `json:"imageUrl"`
	Category            string               `json:"category,omitempty"`
	Servings            int                  `json:"servings,omitempty"`
	Steps               []string             `json:"steps,omitempty"`
	Calories            float64              `json:"calories,omitempty"`
	Protein             float64              `json:"protein,omitempty"`
	Fat                 float64              `json:"fat,omitempty"`
}

// User 使用者資料，FCMToken 為空代表無法推播
type User struct {
	UserID   string `json:"userId"`
	Nickname string `json:"nickname,omitempty"`
	FCMToken string `json:"fcmToken,omitempty"`
}

// Recommendation 單筆推薦結果（衍生資料，不落地）
type Recommendation struct {
	RecipeID           string   `json:"recipeId"`
	Name               string   `json:"name"`
	MatchingRate       float64  `json:"matchingRate"`
	CookingTime        int      `json:"cookingTime"`
	Difficulty         string   `json:"difficulty"`
	Tags               []string `json:"tags"`
	ImageURL           string   `json:"imageUrl"`
	MissingIngredients []string `json:"missingIngredients"`
}

// Notification 發送成功後寫入使用者通知紀錄的一筆資料
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// PushMessage 交給推播服務的結構化訊息
type PushMessage struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Token     string `json:"token"`
	ChannelID string `json:"channelId,omitempty"`
	Priority  string `json:"priority,omitempty"`
}

// CoerceQuantity 將來源資料中的數量欄位轉為非負數
// 缺漏、非數字一律視為 0，負數也收斂為 0（讀取邊界的防呆規則）
func CoerceQuantity(raw interface{}) float64 {
	var q float64
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		q = v
	case int:
		q = float64(v)
	case int64:
		q = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		q = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		q = f
	default:
		return 0
	}
	if q < 0 {
		return 0
	}
	return q
}
