package queue_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"tickify/internal/model"
	"tickify/internal/queue"
	"tickify/internal/testutil"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRdb *redis.Client

func TestMain(m *testing.M) {
	rdb, cleanup, err := testutil.SetupRedisOnly()
	if err != nil {
		log.Fatalf("setup redis: %v", err)
	}
	defer cleanup()
	testRdb = rdb
	code := m.Run()
	os.Exit(code)
}

func cleanupStream(ctx context.Context, t *testing.T) {
	t.Helper()
	_ = testRdb.Del(ctx, queue.StreamKey).Err()
}

func testOrder(requestID string) *model.Order {
	return &model.Order{
		RequestID: requestID,
		UserID:    10,
		EventID:   1,
		Subtotal:  100.0,
		Discount:  10.0,
		Fee:       2.7,
		Total:     92.7,
		Status:    model.OrderStatusPending,
		Items: []model.OrderItem{
			{TicketID: 20, Quantity: 2, UnitPrice: 50.0},
		},
	}
}

// --- 1. 建構 ---

func TestNewRedisStreamOrderQueue(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	t.Run("success", func(t *testing.T) {
		q, err := queue.NewRedisStreamOrderQueue(testRdb, "test-consumer", nil)
		require.NoError(t, err)
		require.NotNil(t, q)
	})

	t.Run("empty_consumer_id_generates_uuid", func(t *testing.T) {
		cleanupStream(ctx, t)
		q, err := queue.NewRedisStreamOrderQueue(testRdb, "", nil)
		require.NoError(t, err)
		require.NotNil(t, q)
	})
}

// --- 2. 發送（基本成功即可；完整「有收到」由訂閱測試涵蓋）---

func TestRedisStreamOrderQueue_PublishOrder(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamOrderQueue(testRdb, "pub-test", nil)
	require.NoError(t, err)

	err = q.PublishOrder(ctx, testOrder("req-1"))
	require.NoError(t, err)
}

// --- 3. 訂閱與投遞：驗證「發出去的內容」與「收進來的內容」一致 ---

func TestRedisStreamOrderQueue_Subscribe_deliversPublishedMessage(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamOrderQueue(testRdb, "deliver-test", nil)
	require.NoError(t, err)

	order := testOrder("req-deliver")
	err = q.PublishOrder(ctx, order)
	require.NoError(t, err)

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeOrders(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok, "應收到一筆")
		require.NotNil(t, d.Data)
		assert.Equal(t, order.UserID, d.Data.UserID)
		assert.Equal(t, order.EventID, d.Data.EventID)
		assert.Equal(t, order.RequestID, d.Data.RequestID)
		assert.Equal(t, order.Total, d.Data.Total)
		assert.Equal(t, order.Status, d.Data.Status)
		require.Len(t, d.Data.Items, 1)
		assert.Equal(t, order.Items[0].TicketID, d.Data.Items[0].TicketID)
		assert.Equal(t, order.Items[0].Quantity, d.Data.Items[0].Quantity)
	case <-subCtx.Done():
		t.Fatal("timeout 未收到訊息")
	}
}

// --- 4. Ack 結果：Ack 後該訊息不應再被投遞 ---

func TestRedisStreamOrderQueue_Ack_preventsRedelivery(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamOrderQueue(testRdb, "ack-test", nil)
	require.NoError(t, err)

	order := testOrder("req-ack")
	require.NoError(t, q.PublishOrder(ctx, order))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeOrders(subCtx)
	require.NoError(t, err)

	var first *model.Order
	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		first = d.Data
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout 未收到第一筆")
	}

	// 驗證結果：下一讀應為 channel 關閉（cancel 後），不應再收到同一筆
	cancel()
	next, ok := <-delCh
	assert.False(t, ok, "Ack 後不應再投遞；下一讀應為 channel 關閉")
	if ok && next.Data != nil && next.Data.RequestID == first.RequestID {
		t.Fatalf("Ack 後不應再收到同一筆: RequestID=%s", first.RequestID)
	}
}

// --- 5. Nack(false) 結果：丟棄後該訊息不應再被投遞 ---

func TestRedisStreamOrderQueue_NackDiscard_preventsRedelivery(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamOrderQueue(testRdb, "nack-discard-test", nil)
	require.NoError(t, err)

	order := testOrder("req-nack-discard")
	require.NoError(t, q.PublishOrder(ctx, order))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeOrders(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		assert.Equal(t, order.RequestID, d.Data.RequestID)
		d.Nack(false)
	case <-subCtx.Done():
		t.Fatal("timeout 未收到第一筆")
	}

	// 驗證結果：短時間內不應再收到同一筆（已丟棄）
	select {
	case d, ok := <-delCh:
		if ok && d.Data != nil && d.Data.RequestID == order.RequestID {
			t.Fatalf("Nack(false) 後不應再投遞同一筆，表示未正確丟棄: RequestID=%s", d.Data.RequestID)
		}
	case <-time.After(2 * time.Second):
		// 2 秒內無第二次投遞，視為已丟棄
	}
	cancel()
}

// --- 6. Nack(true) 結果：重試時應在約 ClaimMinIdleTime 後再次投遞 ---

func TestRedisStreamOrderQueue_NackRequeue_redeliversAfterIdle(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	cfg := &queue.RedisStreamOrderQueueConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		ReadGroupBlockTime: 500 * time.Millisecond,
	}
	q, err := queue.NewRedisStreamOrderQueue(testRdb, "nack-requeue-test", cfg)
	require.NoError(t, err)

	order := testOrder("req-requeue")
	require.NoError(t, q.PublishOrder(ctx, order))

	subCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	delCh, err := q.SubscribeOrders(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		d.Nack(true)
	case <-subCtx.Done():
		t.Fatal("timeout 未收到第一筆")
	}

	// 驗證結果：閒置超過 ClaimMinIdleTime 後應被重新投遞
	select {
	case d, ok := <-delCh:
		require.True(t, ok, "Nack(true) 後應再次投遞")
		require.NotNil(t, d.Data)
		assert.Equal(t, order.RequestID, d.Data.RequestID)
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout 未收到重新投遞的訊息")
	}
}
