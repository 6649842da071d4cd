package service_test

import (
	"context"
	"testing"
	"time"

	"tickify/internal/mocks"
	"tickify/internal/model"
	"tickify/internal/service"
	apperrors "tickify/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validPromo() *model.PromoCode {
	return &model.PromoCode{
		ID:           1,
		EventID:      1,
		Code:         "SALE",
		DiscountType: model.DiscountTypePercentage,
		Value:        15,
		Active:       true,
	}
}

func TestPromoService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes code to uppercase", func(t *testing.T) {
		repo := mocks.NewPromoRepositoryMock()
		svc := service.NewPromoService(repo)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.PromoCode) bool {
			return p.Code == "EARLYBIRD" && p.Active
		})).Return(validPromo(), nil)

		_, err := svc.Create(ctx, model.CreatePromoRequest{
			EventID:      1,
			Code:         "  earlybird ",
			DiscountType: model.DiscountTypeFixed,
			Value:        20,
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown discount type", func(t *testing.T) {
		repo := mocks.NewPromoRepositoryMock()
		svc := service.NewPromoService(repo)

		_, err := svc.Create(ctx, model.CreatePromoRequest{
			EventID:      1,
			Code:         "SALE",
			DiscountType: model.DiscountType("bogus"),
			Value:        20,
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPromoService_Validate(t *testing.T) {
	ctx := context.Background()
	req := model.ValidatePromoRequest{EventID: 1, Code: "SALE", TicketIDs: []int{10}}

	setup := func(promo *model.PromoCode) service.PromoService {
		repo := mocks.NewPromoRepositoryMock()
		repo.On("FindByCode", mock.Anything, 1, "SALE").Return(promo, nil)
		return service.NewPromoService(repo)
	}

	t.Run("valid promo", func(t *testing.T) {
		svc := setup(validPromo())

		applied, err := svc.Validate(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "SALE", applied.Code)
		assert.Equal(t, model.DiscountTypePercentage, applied.DiscountType)
		assert.Equal(t, 15.0, applied.Value)
	})

	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewPromoRepositoryMock()
		repo.On("FindByCode", mock.Anything, 1, "SALE").Return(nil, apperrors.ErrPromoNotFound)
		svc := service.NewPromoService(repo)

		_, err := svc.Validate(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrPromoNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		promo := validPromo()
		promo.Active = false

		_, err := setup(promo).Validate(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrPromoInactive)
	})

	t.Run("not started yet", func(t *testing.T) {
		promo := validPromo()
		starts := time.Now().Add(time.Hour)
		promo.StartsAt = &starts

		_, err := setup(promo).Validate(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrPromoInactive)
	})

	t.Run("expired", func(t *testing.T) {
		promo := validPromo()
		expired := time.Now().Add(-time.Hour)
		promo.ExpiresAt = &expired

		_, err := setup(promo).Validate(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrPromoExpired)
	})

	t.Run("usage limit reached", func(t *testing.T) {
		promo := validPromo()
		promo.MaxUses = 5
		promo.Uses = 5

		_, err := setup(promo).Validate(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrPromoExpired)
	})

	t.Run("restricted to other ticket types", func(t *testing.T) {
		promo := validPromo()
		promo.TicketIDs = []int{77, 88}

		_, err := setup(promo).Validate(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrPromoNotApplicable)
	})

	t.Run("restricted but cart has an applicable ticket", func(t *testing.T) {
		promo := validPromo()
		promo.TicketIDs = []int{10, 88}

		applied, err := setup(promo).Validate(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []int{10, 88}, applied.TicketIDs)
	})
}
