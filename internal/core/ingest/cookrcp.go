package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/infrastructure/store"
	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

// 食品醫藥品安全處 COOKRCP01 公開 API
const (
	defaultBaseURL = "http://openapi.foodsafetykorea.go.kr/api"
	serviceID      = "COOKRCP01"
	dataType       = "json"
	pageSize       = 100
)

// CookRcpRow COOKRCP01 的單筆原始資料（欄位全為字串）
type CookRcpRow struct {
	RcpSeq       string `json:"RCP_SEQ"`
	RcpNm        string `json:"RCP_NM"`
	RcpPat2      string `json:"RCP_PAT2"`
	HashTag      string `json:"HASH_TAG"`
	InfoWgt      string `json:"INFO_WGT"`
	InfoEng      string `json:"INFO_ENG"`
	InfoPro      string `json:"INFO_PRO"`
	InfoFat      string `json:"INFO_FAT"`
	RcpPartsDtls string `json:"RCP_PARTS_DTLS"`
	AttFileMain  string `json:"ATT_FILE_NO_MAIN"`
	Manuals      []string
}

type cookRcpResponse struct {
	Service struct {
		TotalCount string                   `json:"total_count"`
		Rows       []map[string]interface{} `json:"row"`
		Result     struct {
			Code string `json:"CODE"`
			Msg  string `json:"MSG"`
		} `json:"RESULT"`
	} `json:"COOKRCP01"`
}

// Importer COOKRCP01 批次匯入器
type Importer struct {
	apiKey  string
	client  *resty.Client
	recipes store.RecipeStore
}

// NewImporter 創建批次匯入器
func NewImporter(apiKey string, recipes store.RecipeStore) *Importer {
	return &Importer{
		apiKey:  apiKey,
		client:  resty.New().SetBaseURL(defaultBaseURL),
		recipes: recipes,
	}
}

// Run 分頁抓取並寫入全部食譜，回傳匯入筆數
func (im *Importer) Run(ctx context.Context, limit int) (int, error) {
	imported := 0
	for start := 1; ; start += pageSize {
		end := start + pageSize - 1
		if limit > 0 && end > limit {
			end = limit
		}
		rows, total, err := im.fetchPage(ctx, start, end)
		if err != nil {
			return imported, err
		}
		for _, row := range rows {
			recipe := MapCookRcpToRecipe(row)
			if recipe.ID == "" || recipe.Name == "" {
				continue
			}
			if err := im.recipes.PutRecipe(ctx, recipe); err != nil {
				return imported, fmt.Errorf("failed to store recipe %s: %w", recipe.ID, err)
			}
			imported++
		}
		common.LogInfo("레시피 업로드 진행",
			zap.Int("imported", imported),
			zap.Int("total", total),
		)
		if end >= total || (limit > 0 && end >= limit) || len(rows) == 0 {
			break
		}
	}
	return imported, nil
}

// fetchPage 抓取一頁資料
func (im *Importer) fetchPage(ctx context.Context, start, end int) ([]CookRcpRow, int, error) {
	var result cookRcpResponse
	resp, err := im.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/%s/%s/%s/%d/%d", im.apiKey, serviceID, dataType, start, end))
	if err != nil {
		return nil, 0, fmt.Errorf("cookrcp request failed: %w", err)
	}
	if resp.IsError() {
		return nil, 0, fmt.Errorf("cookrcp api error: status %d", resp.StatusCode())
	}
	if code := result.Service.Result.Code; code != "" && code != "INFO-000" {
		return nil, 0, fmt.Errorf("cookrcp api error: %s %s", code, result.Service.Result.Msg)
	}

	total, _ := strconv.Atoi(result.Service.TotalCount)
	rows := make([]CookRcpRow, 0, len(result.Service.Rows))
	for _, raw := range result.Service.Rows {
		rows = append(rows, decodeRow(raw))
	}
	return rows, total, nil
}

func decodeRow(raw map[string]interface{}) CookRcpRow {
	str := func(key string) string {
		if v, ok := raw[key].(string); ok {
			return v
		}
		return ""
	}
	row := CookRcpRow{
		RcpSeq:       str("RCP_SEQ"),
		RcpNm:        str("RCP_NM"),
		RcpPat2:      str("RCP_PAT2"),
		HashTag:      str("HASH_TAG"),
		InfoWgt:      str("INFO_WGT"),
		InfoEng:      str("INFO_ENG"),
		InfoPro:      str("INFO_PRO"),
		InfoFat:      str("INFO_FAT"),
		RcpPartsDtls: str("RCP_PARTS_DTLS"),
		AttFileMain:  str("ATT_FILE_NO_MAIN"),
	}
	// 調理順序欄位為 MANUAL01 ~ MANUAL20
	for i := 1; i <= 20; i++ {
		step := strings.TrimSpace(str(fmt.Sprintf("MANUAL%02d", i)))
		if step != "" {
			row.Manuals = append(row.Manuals, step)
		}
	}
	return row
}

// MapCookRcpToRecipe 將 COOKRCP01 資料列轉為內部食譜結構
func MapCookRcpToRecipe(row CookRcpRow) common.Recipe {
	return common.Recipe{
		ID:                  row.RcpSeq,
		Name:                row.RcpNm,
		ImageURL:            row.AttFileMain,
		Category:            row.RcpPat2,
		Tags:                splitTags(row.HashTag),
		CookingTime:         30,   // API 未提供，採固定預設
		Difficulty:          "보통", // API 未提供，採固定預設
		Servings:            parseIntOr(row.InfoWgt, 2),
		Steps:               row.Manuals,
		RequiredIngredients: ParseIngredients(row.RcpPartsDtls),
		Calories:            parseFloatOr(row.InfoEng, 0),
		Protein:             parseFloatOr(row.InfoPro, 0),
		Fat:                 parseFloatOr(row.InfoFat, 0),
	}
}

// ParseIngredients 解析 "쌀 200g, 김치 100g, ..." 形式的食材長字串
// 逗號分段後，第一個空白之前視為名稱，之後視為數量描述
func ParseIngredients(text string) []common.RequiredIngredient {
	parts := strings.Split(text, ",")
	ingredients := make([]common.RequiredIngredient, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		name := trimmed
		quantityText := "적당량"
		if idx := strings.Index(trimmed, " "); idx != -1 {
			name = trimmed[:idx]
			quantityText = strings.TrimSpace(trimmed[idx+1:])
		}
		if name == "" {
			continue
		}
		ingredients = append(ingredients, common.RequiredIngredient{
			IngredientID: name, // ID 直接用食材名稱
			Name:         name,
			QuantityText: quantityText,
			Quantity:     parseLeadingFloatOr(quantityText, 1),
			Unit:         "개",
		})
	}
	return ingredients
}

func splitTags(hashTag string) []string {
	if strings.TrimSpace(hashTag) == "" {
		return []string{}
	}
	raw := strings.Split(hashTag, ",")
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

func parseIntOr(s string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func parseFloatOr(s string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return v
	}
	return fallback
}

// parseLeadingFloatOr 取出字串開頭的數字（例如 "200g" -> 200），沒有數字時回退
func parseLeadingFloatOr(s string, fallback float64) float64 {
	end := 0
	seenDot := false
	for end < len(s) {
		ch := s[end]
		if ch >= '0' && ch <= '9' {
			end++
			continue
		}
		if ch == '.' && !seenDot && end > 0 {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimRight(s[:end], "."), 64)
	if err != nil {
		return fallback
	}
	return v
}
