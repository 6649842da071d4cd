package mocks

import (
	"context"

	"tickify/internal/model"

	"github.com/stretchr/testify/mock"
)

type SettingsRepositoryMock struct {
	mock.Mock
}

func NewSettingsRepositoryMock() *SettingsRepositoryMock {
	return &SettingsRepositoryMock{}
}

func (m *SettingsRepositoryMock) Get(ctx context.Context) (*model.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

func (m *SettingsRepositoryMock) Update(ctx context.Context, params model.UpdateSettingsParams) (*model.Settings, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}
