package service

import (
	"context"
	"strings"
	"time"

	"tickify/internal/model"
	"tickify/internal/repository"
	apperrors "tickify/pkg/app_errors"
)

type PromoService interface {
	Create(ctx context.Context, req model.CreatePromoRequest) (*model.PromoCode, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.PromoCode, error)
	SetActive(ctx context.Context, id int, active bool) error
	Delete(ctx context.Context, id int) error
	// Validate 驗證優惠碼並回傳結帳用的折扣值物件。
	// 驗證失敗一律回傳 ErrPromo* sentinel，不洩漏內部狀態。
	Validate(ctx context.Context, req model.ValidatePromoRequest) (*model.AppliedPromo, error)
}

type PromoServiceImpl struct {
	repo repository.PromoRepository
}

func NewPromoService(repo repository.PromoRepository) PromoService {
	return &PromoServiceImpl{repo: repo}
}

func (s *PromoServiceImpl) Create(ctx context.Context, req model.CreatePromoRequest) (*model.PromoCode, error) {
	if !req.DiscountType.IsValid() {
		return nil, apperrors.ErrInvalidInput
	}

	promo := &model.PromoCode{
		EventID:      req.EventID,
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType: req.DiscountType,
		Value:        req.Value,
		TicketIDs:    req.TicketIDs,
		MaxUses:      req.MaxUses,
		Active:       true,
		StartsAt:     req.StartsAt,
		ExpiresAt:    req.ExpiresAt,
	}
	return s.repo.Create(ctx, promo)
}

func (s *PromoServiceImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.PromoCode, error) {
	return s.repo.ListByEventID(ctx, eventID)
}

func (s *PromoServiceImpl) SetActive(ctx context.Context, id int, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func (s *PromoServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *PromoServiceImpl) Validate(ctx context.Context, req model.ValidatePromoRequest) (*model.AppliedPromo, error) {
	promo, err := s.repo.FindByCode(ctx, req.EventID, req.Code)
	if err != nil {
		return nil, err
	}

	if !promo.Active {
		return nil, apperrors.ErrPromoInactive
	}

	now := time.Now()
	if promo.StartsAt != nil && now.Before(*promo.StartsAt) {
		return nil, apperrors.ErrPromoInactive
	}
	if promo.ExpiresAt != nil && now.After(*promo.ExpiresAt) {
		return nil, apperrors.ErrPromoExpired
	}

	if promo.MaxUses > 0 && promo.Uses >= promo.MaxUses {
		return nil, apperrors.ErrPromoExpired
	}

	// TicketIDs 為空表示全活動適用；非空時購物車至少要有一個適用票種
	if len(promo.TicketIDs) > 0 {
		applicable := false
		for _, want := range req.TicketIDs {
			for _, got := range promo.TicketIDs {
				if want == got {
					applicable = true
					break
				}
			}
		}
		if !applicable {
			return nil, apperrors.ErrPromoNotApplicable
		}
	}

	return promo.ToApplied(), nil
}
