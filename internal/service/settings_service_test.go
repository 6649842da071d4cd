package service_test

import (
	"context"
	"errors"
	"testing"

	"tickify/internal/mocks"
	"tickify/internal/model"
	"tickify/internal/service"
	apperrors "tickify/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()
	floatPtr := func(v float64) *float64 { return &v }

	t.Run("valid params pass through", func(t *testing.T) {
		repo := mocks.NewSettingsRepositoryMock()
		svc := service.NewSettingsService(repo)
		params := model.UpdateSettingsParams{PlatformFeePercentage: floatPtr(5)}
		repo.On("Update", mock.Anything, params).Return(&model.Settings{PlatformFeePercentage: 5}, nil)

		settings, err := svc.Update(ctx, params)

		require.NoError(t, err)
		assert.Equal(t, 5.0, settings.PlatformFeePercentage)
	})

	t.Run("fee out of range", func(t *testing.T) {
		repo := mocks.NewSettingsRepositoryMock()
		svc := service.NewSettingsService(repo)

		for _, fee := range []float64{-1, 100.5} {
			_, err := svc.Update(ctx, model.UpdateSettingsParams{PlatformFeePercentage: floatPtr(fee)})
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "fee=%v", fee)
		}
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("negative min withdrawal", func(t *testing.T) {
		svc := service.NewSettingsService(mocks.NewSettingsRepositoryMock())
		_, err := svc.Update(ctx, model.UpdateSettingsParams{MinWithdrawalAmount: floatPtr(-1)})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("non-positive max withdrawal", func(t *testing.T) {
		svc := service.NewSettingsService(mocks.NewSettingsRepositoryMock())
		_, err := svc.Update(ctx, model.UpdateSettingsParams{MaxWithdrawalAmount: floatPtr(0)})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestSettingsService_PlatformFeePercentage(t *testing.T) {
	ctx := context.Background()

	t.Run("reads from settings", func(t *testing.T) {
		repo := mocks.NewSettingsRepositoryMock()
		repo.On("Get", mock.Anything).Return(&model.Settings{PlatformFeePercentage: 7.5}, nil)

		fee := service.NewSettingsService(repo).PlatformFeePercentage(ctx)
		assert.Equal(t, 7.5, fee)
	})

	// 設定讀取失敗不可中斷結帳，回退預設值
	t.Run("falls back to default on error", func(t *testing.T) {
		repo := mocks.NewSettingsRepositoryMock()
		repo.On("Get", mock.Anything).Return(nil, errors.New("db down"))

		fee := service.NewSettingsService(repo).PlatformFeePercentage(ctx)
		assert.Equal(t, model.DefaultPlatformFeePercentage, fee)
	})
}
