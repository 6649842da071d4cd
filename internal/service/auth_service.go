package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tickify/internal/model"
	"tickify/internal/repository"
	apperrors "tickify/pkg/app_errors"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Claims 驗證過的 token 內容，middleware 放進 request context
type Claims struct {
	UserID  int
	IsAdmin bool
}

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	// VerifyToken 驗證 bearer token，無效時回傳 ErrInvalidToken
	VerifyToken(token string) (*Claims, error)
	GetUser(ctx context.Context, id int) (*model.User, error)
}

type AuthServiceImpl struct {
	repo     repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	return &AuthServiceImpl{
		repo:     repo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		UserID:       uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Token:   token,
		User:    created.ToResponse(),
		Message: "registration successful",
	}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Token:   token,
		User:    user.ToResponse(),
		Message: "login successful",
	}, nil
}

func (s *AuthServiceImpl) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return &Claims{UserID: int(id), IsAdmin: isAdmin}, nil
}

func (s *AuthServiceImpl) GetUser(ctx context.Context, id int) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

// issueToken 簽發 HS256 JWT。payload 帶 id / _id 兩個 key，
// 舊版 client 只認 _id，保留雙寫相容。
func (s *AuthServiceImpl) issueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       user.ID,
		"_id":      user.UserID.String(),
		"sub":      user.UserID.String(),
		"is_admin": user.IsAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
