package service

import (
	"context"

	"tickify/internal/model"
	"tickify/internal/repository"
)

type AnalyticsService interface {
	AdminSummary(ctx context.Context) (*model.AdminSummary, error)
	EventSales(ctx context.Context, eventID int) (*model.EventSalesSummary, error)
}

type AnalyticsServiceImpl struct {
	repo repository.AnalyticsRepository
}

func NewAnalyticsService(repo repository.AnalyticsRepository) AnalyticsService {
	return &AnalyticsServiceImpl{repo: repo}
}

func (s *AnalyticsServiceImpl) AdminSummary(ctx context.Context) (*model.AdminSummary, error) {
	return s.repo.AdminSummary(ctx)
}

func (s *AnalyticsServiceImpl) EventSales(ctx context.Context, eventID int) (*model.EventSalesSummary, error) {
	return s.repo.EventSalesSummary(ctx, eventID)
}
