package service

import (
	"context"

	"tickify/internal/model"
	"tickify/internal/repository"
	apperrors "tickify/pkg/app_errors"
	"tickify/pkg/logger"

	"go.uber.org/zap"
)

type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, params model.UpdateSettingsParams) (*model.Settings, error)
	// PlatformFeePercentage 取得平台手續費百分比。
	// 取不到設定時回退預設值，結帳流程不因設定讀取失敗而中斷。
	PlatformFeePercentage(ctx context.Context) float64
}

type SettingsServiceImpl struct {
	repo repository.SettingsRepository
	log  *zap.Logger
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &SettingsServiceImpl{
		repo: repo,
		log:  logger.WithComponent("settings_service"),
	}
}

func (s *SettingsServiceImpl) Get(ctx context.Context) (*model.Settings, error) {
	return s.repo.Get(ctx)
}

func (s *SettingsServiceImpl) Update(ctx context.Context, params model.UpdateSettingsParams) (*model.Settings, error) {
	if params.PlatformFeePercentage != nil {
		if *params.PlatformFeePercentage < 0 || *params.PlatformFeePercentage > 100 {
			return nil, apperrors.ErrInvalidInput
		}
	}
	if params.MinWithdrawalAmount != nil && *params.MinWithdrawalAmount < 0 {
		return nil, apperrors.ErrInvalidInput
	}
	if params.MaxWithdrawalAmount != nil && *params.MaxWithdrawalAmount <= 0 {
		return nil, apperrors.ErrInvalidInput
	}
	return s.repo.Update(ctx, params)
}

func (s *SettingsServiceImpl) PlatformFeePercentage(ctx context.Context) float64 {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		s.log.Warn("failed to load settings, falling back to default platform fee",
			zap.Error(err),
			zap.Float64("default", model.DefaultPlatformFeePercentage))
		return model.DefaultPlatformFeePercentage
	}
	return settings.PlatformFeePercentage
}
