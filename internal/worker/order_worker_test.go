package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tickify/internal/mocks"
	"tickify/internal/model"
	"tickify/internal/queue"
	"tickify/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ackRecorder struct {
	mu      sync.Mutex
	acked   bool
	nacked  bool
	requeue bool
}

func (r *ackRecorder) delivery(order *model.Order) queue.Delivery {
	return queue.Delivery{
		Data: order,
		Ack: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.acked = true
		},
		Nack: func(requeue bool) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.nacked = true
			r.requeue = requeue
		},
	}
}

func (r *ackRecorder) snapshot() (acked, nacked, requeue bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acked, r.nacked, r.requeue
}

func startWorker(t *testing.T, checkout *mocks.CheckoutServiceMock, deliveries chan queue.Delivery) {
	t.Helper()
	orderQueue := mocks.NewOrderQueueMock()
	orderQueue.On("SubscribeOrders", mock.Anything).Return((<-chan queue.Delivery)(deliveries), nil)

	w := worker.NewOrderWorker(checkout, orderQueue)
	require.NoError(t, w.Start(context.Background()))
}

func TestOrderWorker_AcksOnSuccess(t *testing.T) {
	order := &model.Order{RequestID: "req-1", EventID: 1}
	done := make(chan struct{})

	checkout := mocks.NewCheckoutServiceMock()
	checkout.On("DispatchOrder", mock.Anything, order).
		Run(func(mock.Arguments) { close(done) }).
		Return(nil)

	deliveries := make(chan queue.Delivery, 1)
	rec := &ackRecorder{}
	deliveries <- rec.delivery(order)

	startWorker(t, checkout, deliveries)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never dispatched the order")
	}

	assert.Eventually(t, func() bool {
		acked, nacked, _ := rec.snapshot()
		return acked && !nacked
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOrderWorker_NacksWithRequeueOnFailure(t *testing.T) {
	order := &model.Order{RequestID: "req-2", EventID: 1}

	checkout := mocks.NewCheckoutServiceMock()
	checkout.On("DispatchOrder", mock.Anything, order).Return(errors.New("db down"))

	deliveries := make(chan queue.Delivery, 1)
	rec := &ackRecorder{}
	deliveries <- rec.delivery(order)

	startWorker(t, checkout, deliveries)

	assert.Eventually(t, func() bool {
		acked, nacked, requeue := rec.snapshot()
		return nacked && requeue && !acked
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOrderWorker_SubscribeFailure(t *testing.T) {
	checkout := mocks.NewCheckoutServiceMock()
	orderQueue := mocks.NewOrderQueueMock()
	orderQueue.On("SubscribeOrders", mock.Anything).Return(nil, errors.New("stream unavailable"))

	w := worker.NewOrderWorker(checkout, orderQueue)
	err := w.Start(context.Background())

	assert.Error(t, err)
	checkout.AssertNotCalled(t, "DispatchOrder", mock.Anything, mock.Anything)
}

// 串流透過記憶體 queue 跑一遍完整 publish → dispatch 流程
func TestOrderWorker_EndToEndWithMemoryQueue(t *testing.T) {
	order := &model.Order{RequestID: "req-3", EventID: 1}
	done := make(chan struct{})

	checkout := mocks.NewCheckoutServiceMock()
	checkout.On("DispatchOrder", mock.Anything, mock.MatchedBy(func(o *model.Order) bool {
		return o.RequestID == "req-3"
	})).Run(func(mock.Arguments) { close(done) }).Return(nil)

	q := queue.NewOrderQueue(8)
	w := worker.NewOrderWorker(checkout, q)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, q.PublishOrder(context.Background(), order))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("order never reached the worker")
	}
}
