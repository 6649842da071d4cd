package mocks

import (
	"context"

	"tickify/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type PromoRepositoryMock struct {
	mock.Mock
}

func NewPromoRepositoryMock() *PromoRepositoryMock {
	return &PromoRepositoryMock{}
}

func (m *PromoRepositoryMock) Create(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error) {
	args := m.Called(ctx, promo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *PromoRepositoryMock) ListByEventID(ctx context.Context, eventID int) ([]*model.PromoCode, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PromoCode), args.Error(1)
}

func (m *PromoRepositoryMock) FindByID(ctx context.Context, id int) (*model.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *PromoRepositoryMock) FindByCode(ctx context.Context, eventID int, code string) (*model.PromoCode, error) {
	args := m.Called(ctx, eventID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *PromoRepositoryMock) SetActive(ctx context.Context, id int, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *PromoRepositoryMock) IncrementUses(ctx context.Context, tx pgx.Tx, id int) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *PromoRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
