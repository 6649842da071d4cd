package worker

import (
	"context"

	"tickify/internal/queue"
	"tickify/internal/service"
	"tickify/pkg/logger"

	"go.uber.org/zap"
)

type OrderWorker interface {
	// 訂閱訂單隊列
	Start(ctx context.Context) error
}

type OrderWorkerImpl struct {
	checkout service.CheckoutService
	queue    queue.OrderQueue
	log      *zap.Logger
}

func NewOrderWorker(checkout service.CheckoutService, queue queue.OrderQueue) OrderWorker {
	return &OrderWorkerImpl{
		checkout: checkout,
		queue:    queue,
		log:      logger.WithComponent("order_worker"),
	}
}

func (w *OrderWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeOrders(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			// 把隊列裡的訂單落庫：訂單 + 扣庫存 + 優惠碼核銷，單一交易
			if err := w.checkout.DispatchOrder(ctx, msg.Data); err != nil {
				w.log.Warn("failed to dispatch order, requeueing",
					zap.Error(err),
					zap.String("request_id", msg.Data.RequestID))
				// 資料庫暫時連不上就重試，超過重試上限由 queue 丟棄
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
