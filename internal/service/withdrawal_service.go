package service

import (
	"context"

	"tickify/internal/model"
	"tickify/internal/repository"
	apperrors "tickify/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WithdrawalService interface {
	// Request 建立提領申請，金額須落在平台設定的上下限內
	Request(ctx context.Context, userID int, amount float64) (*model.Withdrawal, error)
	ListMine(ctx context.Context, userID int) ([]*model.Withdrawal, error)
	ListAll(ctx context.Context) ([]*model.Withdrawal, error)
	Approve(ctx context.Context, id int, note *string) (*model.Withdrawal, error)
	Reject(ctx context.Context, id int, note *string) (*model.Withdrawal, error)
}

type WithdrawalServiceImpl struct {
	pool            *pgxpool.Pool
	repo            repository.WithdrawalRepository
	settingsService SettingsService
}

func NewWithdrawalService(pool *pgxpool.Pool, repo repository.WithdrawalRepository, settingsService SettingsService) WithdrawalService {
	return &WithdrawalServiceImpl{
		pool:            pool,
		repo:            repo,
		settingsService: settingsService,
	}
}

func (s *WithdrawalServiceImpl) Request(ctx context.Context, userID int, amount float64) (*model.Withdrawal, error) {
	settings, err := s.settingsService.Get(ctx)
	if err != nil {
		settings = model.DefaultSettings()
	}

	if amount < settings.MinWithdrawalAmount || amount > settings.MaxWithdrawalAmount {
		return nil, apperrors.ErrInvalidWithdrawalAmount
	}

	withdrawal := &model.Withdrawal{
		UserID: userID,
		Amount: amount,
		Status: model.WithdrawalStatusPending,
	}
	return s.repo.Create(ctx, withdrawal)
}

func (s *WithdrawalServiceImpl) ListMine(ctx context.Context, userID int) ([]*model.Withdrawal, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *WithdrawalServiceImpl) ListAll(ctx context.Context) ([]*model.Withdrawal, error) {
	return s.repo.List(ctx)
}

func (s *WithdrawalServiceImpl) Approve(ctx context.Context, id int, note *string) (*model.Withdrawal, error) {
	return s.updateStatus(ctx, id, model.WithdrawalStatusApproved, note)
}

func (s *WithdrawalServiceImpl) Reject(ctx context.Context, id int, note *string) (*model.Withdrawal, error) {
	return s.updateStatus(ctx, id, model.WithdrawalStatusRejected, note)
}

func (s *WithdrawalServiceImpl) updateStatus(ctx context.Context, id int, status model.WithdrawalStatus, note *string) (*model.Withdrawal, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	withdrawal, err := s.repo.UpdateStatusWithLock(ctx, tx, id, status, note)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return withdrawal, nil
}
