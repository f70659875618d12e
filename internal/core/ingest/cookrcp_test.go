package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredients(t *testing.T) {
	ingredients := ParseIngredients("쌀 200g, 김치 100g, 참기름")

	require.Len(t, ingredients, 3)

	assert.Equal(t, "쌀", ingredients[0].Name)
	assert.Equal(t, "쌀", ingredients[0].IngredientID)
	assert.Equal(t, "200g", ingredients[0].QuantityText)
	assert.Equal(t, 200.0, ingredients[0].Quantity)
	assert.Equal(t, "개", ingredients[0].Unit)

	assert.Equal(t, "김치", ingredients[1].Name)
	assert.Equal(t, 100.0, ingredients[1].Quantity)

	// 沒有數量描述時採預設文案與數量
	assert.Equal(t, "참기름", ingredients[2].Name)
	assert.Equal(t, "적당량", ingredients[2].QuantityText)
	assert.Equal(t, 1.0, ingredients[2].Quantity)
}

func TestParseIngredients_SkipsEmptySegments(t *testing.T) {
	ingredients := ParseIngredients("쌀 200g, , 김치 100g,")

	require.Len(t, ingredients, 2)
	assert.Equal(t, "쌀", ingredients[0].Name)
	assert.Equal(t, "김치", ingredients[1].Name)
}

func TestParseIngredients_Empty(t *testing.T) {
	assert.Empty(t, ParseIngredients(""))
	assert.Empty(t, ParseIngredients("   "))
}

func TestParseLeadingFloatOr(t *testing.T) {
	assert.Equal(t, 200.0, parseLeadingFloatOr("200g", 1))
	assert.Equal(t, 0.5, parseLeadingFloatOr("0.5컵", 1))
	assert.Equal(t, 2.0, parseLeadingFloatOr("2.개", 1))
	assert.Equal(t, 1.0, parseLeadingFloatOr("적당량", 1))
	assert.Equal(t, 1.0, parseLeadingFloatOr("", 1))
}

func TestMapCookRcpToRecipe(t *testing.T) {
	row := CookRcpRow{
		RcpSeq:       "28",
		RcpNm:        "김치찌개",
		RcpPat2:      "국&찌개",
		HashTag:      "김치, 찌개",
		InfoWgt:      "4",
		InfoEng:      "320.5",
		InfoPro:      "18.2",
		InfoFat:      "12.1",
		RcpPartsDtls: "김치 300g, 돼지고기 200g",
		AttFileMain:  "http://example.com/28.jpg",
		Manuals:      []string{"재료를 손질한다.", "끓인다."},
	}

	recipe := MapCookRcpToRecipe(row)

	assert.Equal(t, "28", recipe.ID)
	assert.Equal(t, "김치찌개", recipe.Name)
	assert.Equal(t, "국&찌개", recipe.Category)
	assert.Equal(t, []string{"김치", "찌개"}, recipe.Tags)
	assert.Equal(t, 30, recipe.CookingTime)
	assert.Equal(t, "보통", recipe.Difficulty)
	assert.Equal(t, 4, recipe.Servings)
	assert.Equal(t, 320.5, recipe.Calories)
	assert.Equal(t, 18.2, recipe.Protein)
	assert.Equal(t, 12.1, recipe.Fat)
	assert.Equal(t, "http://example.com/28.jpg", recipe.ImageURL)
	assert.Len(t, recipe.RequiredIngredients, 2)
	assert.Equal(t, []string{"재료를 손질한다.", "끓인다."}, recipe.Steps)
}

func TestMapCookRcpToRecipe_Defaults(t *testing.T) {
	recipe := MapCookRcpToRecipe(CookRcpRow{RcpSeq: "1", RcpNm: "테스트"})

	assert.Equal(t, 2, recipe.Servings)
	assert.Equal(t, 0.0, recipe.Calories)
	assert.Empty(t, recipe.Tags)
	assert.Empty(t, recipe.RequiredIngredients)
}

func TestDecodeRow(t *testing.T) {
	raw := map[string]interface{}{
		"RCP_SEQ":  "28",
		"RCP_NM":   "김치찌개",
		"MANUAL01": "1. 재료 손질",
		"MANUAL02": "  ",
		"MANUAL03": "2. 끓이기",
		"INFO_WGT": 4, // 型別偏差時退回空字串
	}

	row := decodeRow(raw)

	assert.Equal(t, "28", row.RcpSeq)
	assert.Equal(t, "김치찌개", row.RcpNm)
	assert.Equal(t, "", row.InfoWgt)
	assert.Equal(t, []string{"1. 재료 손질", "2. 끓이기"}, row.Manuals)
}
