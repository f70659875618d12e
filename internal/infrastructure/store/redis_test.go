package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyeonggyeong/LivingAloneCare-Backend/internal/pkg/common"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStoreWithClient(client)
}

func timePtr(t time.Time) *time.Time { return &t }

func TestInventoryRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	expiry := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	item := common.InventoryItem{
		ItemID:       "item-1",
		UserID:       "u1",
		IngredientID: "onion",
		Name:         "양파",
		Quantity:     2,
		Unit:         "개",
		ExpiryDate:   timePtr(expiry),
	}
	require.NoError(t, st.PutItem(ctx, item))

	items, err := st.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "item-1", items[0].ItemID)
	assert.Equal(t, "u1", items[0].UserID)
	assert.Equal(t, "양파", items[0].Name)
	assert.Equal(t, 2.0, items[0].Quantity)
	require.NotNil(t, items[0].ExpiryDate)
	assert.True(t, items[0].ExpiryDate.Equal(expiry))
}

func TestPutItem_RequiresIdentity(t *testing.T) {
	st := newTestStore(t)

	assert.Error(t, st.PutItem(context.Background(), common.InventoryItem{UserID: "u1"}))
	assert.Error(t, st.PutItem(context.Background(), common.InventoryItem{ItemID: "item-1"}))
}

func TestListByUser_Isolated(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.PutItem(ctx, common.InventoryItem{ItemID: "a", UserID: "u1", Name: "양파"}))
	require.NoError(t, st.PutItem(ctx, common.InventoryItem{ItemID: "b", UserID: "u2", Name: "두부"}))

	items, err := st.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "양파", items[0].Name)

	items, err = st.ListByUser(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListByUser_CoercesQuantity(t *testing.T) {
	st := newTestStore(t)
	mrClient := st.client
	ctx := context.Background()

	// 歷史資料的 quantity 可能是字串或缺漏
	require.NoError(t, mrClient.HSet(ctx, inventoryKey("u1"), "a", `{"itemId":"a","name":"양파","quantity":"3"}`).Err())
	require.NoError(t, mrClient.HSet(ctx, inventoryKey("u1"), "b", `{"itemId":"b","name":"두부"}`).Err())
	require.NoError(t, mrClient.HSet(ctx, inventoryKey("u1"), "c", `{"itemId":"c","name":"계란","quantity":-2}`).Err())

	items, err := st.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 3)

	byID := make(map[string]common.InventoryItem)
	for _, item := range items {
		byID[item.ItemID] = item
	}
	assert.Equal(t, 3.0, byID["a"].Quantity)
	assert.Equal(t, 0.0, byID["b"].Quantity)
	assert.Equal(t, 0.0, byID["c"].Quantity)
}

func TestListExpiringWithin(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	put := func(itemID, userID string, expiry time.Time) {
		require.NoError(t, st.PutItem(ctx, common.InventoryItem{
			ItemID:     itemID,
			UserID:     userID,
			Name:       itemID,
			ExpiryDate: timePtr(expiry),
		}))
	}
	put("soon-a", "u1", now.Add(24*time.Hour))
	put("soon-b", "u2", now.Add(71*time.Hour))
	put("later", "u1", now.Add(96*time.Hour))
	put("past", "u1", now.Add(-time.Hour))
	require.NoError(t, st.PutItem(ctx, common.InventoryItem{ItemID: "no-expiry", UserID: "u1", Name: "no-expiry"}))

	items, err := st.ListExpiringWithin(ctx, now, now.Add(72*time.Hour))
	require.NoError(t, err)

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ItemID)
	}
	assert.ElementsMatch(t, []string{"soon-a", "soon-b"}, ids)
}

func TestListExpiringWithin_BoundariesInclusive(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(72 * time.Hour)

	require.NoError(t, st.PutItem(ctx, common.InventoryItem{ItemID: "at-from", UserID: "u1", ExpiryDate: timePtr(from)}))
	require.NoError(t, st.PutItem(ctx, common.InventoryItem{ItemID: "at-to", UserID: "u1", ExpiryDate: timePtr(to)}))

	items, err := st.ListExpiringWithin(ctx, from, to)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestListExpiringWithin_SkipsStaleIndexEntries(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.PutItem(ctx, common.InventoryItem{ItemID: "a", UserID: "u1", ExpiryDate: timePtr(now.Add(time.Hour))}))
	// 直接刪掉 hash 欄位，模擬索引殘留
	require.NoError(t, st.client.HDel(ctx, inventoryKey("u1"), "a").Err())

	items, err := st.ListExpiringWithin(ctx, now, now.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteItem_RemovesIndexEntry(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.PutItem(ctx, common.InventoryItem{ItemID: "a", UserID: "u1", ExpiryDate: timePtr(now.Add(time.Hour))}))
	require.NoError(t, st.DeleteItem(ctx, "u1", "a"))

	items, err := st.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)

	expiring, err := st.ListExpiringWithin(ctx, now, now.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, expiring)

	count, err := st.client.ZCard(ctx, keyExpiryIndex).Result()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPutItem_ClearedExpiryRemovesIndexEntry(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.PutItem(ctx, common.InventoryItem{ItemID: "a", UserID: "u1", ExpiryDate: timePtr(now.Add(time.Hour))}))
	require.NoError(t, st.PutItem(ctx, common.InventoryItem{ItemID: "a", UserID: "u1"}))

	expiring, err := st.ListExpiringWithin(ctx, now, now.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, expiring)
}

func TestRecipeRoundTripSortedByID(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	recipes := []common.Recipe{
		{ID: "3", Name: "세번째"},
		{ID: "1", Name: "첫번째", RequiredIngredients: []common.RequiredIngredient{
			{IngredientID: "양파", Name: "양파", Quantity: 1, Unit: "개"},
		}},
		{ID: "2", Name: "두번째"},
	}
	for _, r := range recipes {
		require.NoError(t, st.PutRecipe(ctx, r))
	}

	listed, err := st.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "1", listed[0].ID)
	assert.Equal(t, "2", listed[1].ID)
	assert.Equal(t, "3", listed[2].ID)
	require.Len(t, listed[0].RequiredIngredients, 1)
	assert.Equal(t, "양파", listed[0].RequiredIngredients[0].Name)
}

func TestPutRecipe_RequiresID(t *testing.T) {
	st := newTestStore(t)

	assert.Error(t, st.PutRecipe(context.Background(), common.Recipe{Name: "이름만"}))
}

func TestUserRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.PutUser(ctx, common.User{UserID: "u1", Nickname: "혼밥러", FCMToken: "token-1"}))

	user, err := st.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "혼밥러", user.Nickname)
	assert.Equal(t, "token-1", user.FCMToken)
}

func TestGetUser_MissingReturnsNil(t *testing.T) {
	st := newTestStore(t)

	user, err := st.GetUser(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestNotificationHistoryOrdered(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := common.Notification{ID: "n1", Title: "t1", Body: "b1", Type: "expiry"}
	second := common.Notification{ID: "n2", Title: "t2", Body: "b2", Type: "expiry"}
	require.NoError(t, st.AppendNotification(ctx, "u1", first))
	require.NoError(t, st.AppendNotification(ctx, "u1", second))

	notifications, err := st.ListNotifications(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "n1", notifications[0].ID)
	assert.Equal(t, "n2", notifications[1].ID)

	others, err := st.ListNotifications(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestSplitExpiryMember(t *testing.T) {
	userID, itemID, ok := splitExpiryMember("u1/item-1")
	assert.True(t, ok)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "item-1", itemID)

	_, _, ok = splitExpiryMember("no-slash")
	assert.False(t, ok)
	_, _, ok = splitExpiryMember("/item")
	assert.False(t, ok)
	_, _, ok = splitExpiryMember("u1/")
	assert.False(t, ok)
}
