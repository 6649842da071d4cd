package mocks

import (
	"context"

	"tickify/internal/model"
	"tickify/internal/queue"

	"github.com/stretchr/testify/mock"
)

type OrderQueueMock struct {
	mock.Mock
}

func NewOrderQueueMock() *OrderQueueMock {
	return &OrderQueueMock{}
}

func (m *OrderQueueMock) PublishOrder(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderQueueMock) SubscribeOrders(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
