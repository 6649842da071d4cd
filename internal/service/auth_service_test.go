package service_test

import (
	"context"
	"testing"
	"time"

	"tickify/internal/mocks"
	"tickify/internal/model"
	"tickify/internal/service"
	"tickify/internal/session"
	apperrors "tickify/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newAuthService(repo *mocks.UserRepositoryMock) service.AuthService {
	return service.NewAuthService(repo, testSecret, time.Hour)
}

func registerReq() model.RegisterRequest {
	return model.RegisterRequest{
		FirstName: "Amy",
		LastName:  "Chen",
		Email:     "amy@example.com",
		Username:  "amychen",
		Password:  "password123",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues verifiable token", func(t *testing.T) {
		repo := mocks.NewUserRepositoryMock()
		svc := newAuthService(repo)
		repo.On("FindByEmail", mock.Anything, "amy@example.com").Return(nil, apperrors.ErrUserNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			// 密碼必須存雜湊，不可存明文
			return u.PasswordHash != "password123" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
		})).Return(&model.User{ID: 7, UserID: uuid.New(), Email: "amy@example.com"}, nil)

		resp, err := svc.Register(ctx, registerReq())

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "amy@example.com", resp.User.Email)

		claims, err := svc.VerifyToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("email already taken", func(t *testing.T) {
		repo := mocks.NewUserRepositoryMock()
		svc := newAuthService(repo)
		repo.On("FindByEmail", mock.Anything, "amy@example.com").Return(&model.User{ID: 1}, nil)

		_, err := svc.Register(ctx, registerReq())

		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &model.User{
		ID:           7,
		UserID:       uuid.New(),
		Email:        "amy@example.com",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewUserRepositoryMock()
		svc := newAuthService(repo)
		repo.On("FindByEmail", mock.Anything, "amy@example.com").Return(storedUser, nil)

		resp, err := svc.Login(ctx, model.LoginRequest{Email: "amy@example.com", Password: "password123"})

		require.NoError(t, err)
		claims, err := svc.VerifyToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := mocks.NewUserRepositoryMock()
		svc := newAuthService(repo)
		repo.On("FindByEmail", mock.Anything, "amy@example.com").Return(storedUser, nil)

		_, err := svc.Login(ctx, model.LoginRequest{Email: "amy@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	// 帳號不存在與密碼錯誤回同一個錯，不洩漏 email 是否註冊過
	t.Run("unknown email", func(t *testing.T) {
		repo := mocks.NewUserRepositoryMock()
		svc := newAuthService(repo)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.Login(ctx, model.LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	repo := mocks.NewUserRepositoryMock()
	svc := newAuthService(repo)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.VerifyToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
		otherRepo := mocks.NewUserRepositoryMock()
		otherRepo.On("FindByEmail", mock.Anything, "amy@example.com").
			Return(&model.User{ID: 1, UserID: uuid.New(), Email: "amy@example.com", PasswordHash: string(hash)}, nil)
		other := service.NewAuthService(otherRepo, "other-secret", time.Hour)

		resp, err := other.Login(context.Background(), model.LoginRequest{Email: "amy@example.com", Password: "pw"})
		require.NoError(t, err)

		_, err = svc.VerifyToken(resp.Token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
		expiredRepo := mocks.NewUserRepositoryMock()
		expiredRepo.On("FindByEmail", mock.Anything, "amy@example.com").
			Return(&model.User{ID: 1, UserID: uuid.New(), Email: "amy@example.com", PasswordHash: string(hash)}, nil)
		expired := service.NewAuthService(expiredRepo, testSecret, -time.Minute)

		resp, err := expired.Login(context.Background(), model.LoginRequest{Email: "amy@example.com", Password: "pw"})
		require.NoError(t, err)

		_, err = svc.VerifyToken(resp.Token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

// 簽出的 token payload 要能被 client 端 session 還原出使用者識別
func TestAuthService_TokenRecoverableByClient(t *testing.T) {
	repo := mocks.NewUserRepositoryMock()
	svc := newAuthService(repo)
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	user := &model.User{ID: 7, UserID: uuid.New(), Email: "amy@example.com", PasswordHash: string(hash)}
	repo.On("FindByEmail", mock.Anything, "amy@example.com").Return(user, nil)

	resp, err := svc.Login(context.Background(), model.LoginRequest{Email: "amy@example.com", Password: "pw"})
	require.NoError(t, err)

	id, ok := session.RecoverUserID(resp.Token)
	require.True(t, ok)
	// "id" claim 是數字，RecoverUserID 以十進位字串回傳
	assert.Equal(t, "7", id)
}
