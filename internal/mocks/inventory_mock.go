package mocks

import (
	"context"

	"tickify/internal/cache"

	"github.com/stretchr/testify/mock"
)

type TicketInventoryMock struct {
	mock.Mock
}

func NewTicketInventoryMock() *TicketInventoryMock {
	return &TicketInventoryMock{}
}

func (m *TicketInventoryMock) WarmUpInventory(ctx context.Context, ticketID int, stock int, price float64, limit int) error {
	args := m.Called(ctx, ticketID, stock, price, limit)
	return args.Error(0)
}

func (m *TicketInventoryMock) GetStock(ctx context.Context, ticketID int) (int, error) {
	args := m.Called(ctx, ticketID)
	return args.Int(0), args.Error(1)
}

func (m *TicketInventoryMock) GetInfo(ctx context.Context, ticketID int) (cache.RedisTicketInfo, error) {
	args := m.Called(ctx, ticketID)
	return args.Get(0).(cache.RedisTicketInfo), args.Error(1)
}

func (m *TicketInventoryMock) DecreStock(ctx context.Context, ticketID int, quantity int, userID int) (bool, float64, error) {
	args := m.Called(ctx, ticketID, quantity, userID)
	return args.Bool(0), args.Get(1).(float64), args.Error(2)
}

func (m *TicketInventoryMock) RollbackStock(ctx context.Context, ticketID int, quantity int, userID int) error {
	args := m.Called(ctx, ticketID, quantity, userID)
	return args.Error(0)
}
