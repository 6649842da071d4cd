package service

import (
	"context"

	"tickify/internal/model"
	"tickify/internal/repository"
)

type UserService interface {
	List(ctx context.Context) ([]*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	UpdateProfile(ctx context.Context, id int, params model.UpdateUserParams) (*model.User, error)
	// Ban 停用帳號（soft delete），使用者無法再登入
	Ban(ctx context.Context, id int) error
}

type UserServiceImpl struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &UserServiceImpl{repo: repo}
}

func (s *UserServiceImpl) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id int, params model.UpdateUserParams) (*model.User, error) {
	return s.repo.Update(ctx, id, params)
}

func (s *UserServiceImpl) Ban(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
