package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

func TestGroupByOwner(t *testing.T) {
	items := []common.InventoryItem{
		{UserID: "u1", Name: "우유"},
		{UserID: "u1", Name: "계란"},
		{UserID: "u2", Name: "두부"},
	}

	grouped := GroupByOwner(items)

	require.Len(t, grouped, 2)
	assert.ElementsMatch(t, []string{"우유", "계란"}, grouped["u1"].Names())
	assert.ElementsMatch(t, []string{"두부"}, grouped["u2"].Names())
}

func TestGroupByOwner_DeduplicatesNames(t *testing.T) {
	items := []common.InventoryItem{
		{UserID: "u1", Name: "우유"},
		{UserID: "u1", Name: "우유"},
	}

	grouped := GroupByOwner(items)

	assert.Len(t, grouped["u1"], 1)
}

func TestGroupByOwner_SkipsMissingOwner(t *testing.T) {
	items := []common.InventoryItem{
		{UserID: "", Name: "우유"},
		{UserID: "u1", Name: "계란"},
	}

	grouped := GroupByOwner(items)

	require.Len(t, grouped, 1)
	assert.Contains(t, grouped, "u1")
}

func TestGroupByOwner_PlaceholderForMissingName(t *testing.T) {
	items := []common.InventoryItem{
		{UserID: "u1", Name: "", IngredientID: ""},
	}

	grouped := GroupByOwner(items)

	assert.ElementsMatch(t, []string{"식재료"}, grouped["u1"].Names())
}

func TestGroupByOwner_NameFallbackToIngredientID(t *testing.T) {
	items := []common.InventoryItem{
		{UserID: "u1", Name: "", IngredientID: "양파"},
	}

	grouped := GroupByOwner(items)

	assert.ElementsMatch(t, []string{"양파"}, grouped["u1"].Names())
}

func TestGroupByOwner_Empty(t *testing.T) {
	assert.Empty(t, GroupByOwner(nil))
}
