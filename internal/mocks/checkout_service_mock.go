package mocks

import (
	"context"

	"tickify/internal/model"
	"tickify/internal/pricing"

	"github.com/stretchr/testify/mock"
)

type CheckoutServiceMock struct {
	mock.Mock
}

func NewCheckoutServiceMock() *CheckoutServiceMock {
	return &CheckoutServiceMock{}
}

func (m *CheckoutServiceMock) Quote(ctx context.Context, req model.CheckoutRequest) (*pricing.Summary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Summary), args.Error(1)
}

func (m *CheckoutServiceMock) PlaceOrder(ctx context.Context, userID int, req model.CheckoutRequest) (*model.Order, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *CheckoutServiceMock) DispatchOrder(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
