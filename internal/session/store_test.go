package session_test

import (
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"testing"

	"tickify/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenWithPayload 產生 JWT 形狀的假 token（header.payload.signature）
func tokenWithPayload(payload string) string {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return "header." + encoded + ".signature"
}

func TestStore_SetSession(t *testing.T) {
	ctx := context.Background()

	t.Run("complete user", func(t *testing.T) {
		store := session.NewStore(nil)
		store.SetSession(ctx, session.User{ID: "u1", Email: "a@b.c"}, "tok")

		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, "tok", store.Token())
		require.NotNil(t, store.User())
		assert.Equal(t, "u1", store.User().ID)
		assert.Equal(t, "a@b.c", store.User().Email)
	})

	t.Run("missing id recovered from token payload", func(t *testing.T) {
		store := session.NewStore(nil)
		token := tokenWithPayload(`{"id":"u1"}`)

		store.SetSession(ctx, session.User{Email: "a@b.c"}, token)

		require.NotNil(t, store.User())
		assert.Equal(t, "u1", store.User().ID)
		assert.True(t, store.IsAuthenticated())
	})

	t.Run("missing id and opaque token still succeeds", func(t *testing.T) {
		store := session.NewStore(nil)

		store.SetSession(ctx, session.User{Email: "a@b.c"}, "not-a-jwt")

		require.NotNil(t, store.User())
		assert.Empty(t, store.User().ID)
		assert.True(t, store.IsAuthenticated())
	})

	t.Run("empty token means unauthenticated", func(t *testing.T) {
		store := session.NewStore(nil)
		store.SetSession(ctx, session.User{ID: "u1"}, "")

		assert.False(t, store.IsAuthenticated())
		assert.NotNil(t, store.User())
	})
}

func TestStore_UpdateUserFields(t *testing.T) {
	ctx := context.Background()

	t.Run("shallow merge keeps untouched fields", func(t *testing.T) {
		store := session.NewStore(nil)
		store.SetSession(ctx, session.User{ID: "u1", FirstName: "Amy", Email: "a@b.c"}, "tok")

		name := "May"
		store.UpdateUserFields(ctx, session.UserFields{FirstName: &name})

		u := store.User()
		require.NotNil(t, u)
		assert.Equal(t, "May", u.FirstName)
		assert.Equal(t, "a@b.c", u.Email)
		assert.Equal(t, "u1", u.ID)
		assert.Equal(t, "tok", store.Token())
	})

	t.Run("no session is a no-op", func(t *testing.T) {
		store := session.NewStore(nil)
		name := "May"
		store.UpdateUserFields(ctx, session.UserFields{FirstName: &name})
		assert.Nil(t, store.User())
		assert.False(t, store.IsAuthenticated())
	})
}

func TestStore_Logout(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(nil)
	store.SetSession(ctx, session.User{ID: "u1"}, "tok")

	store.Logout(ctx)

	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
	assert.Empty(t, store.Token())

	// 已登出狀態再登出也不報錯
	store.Logout(ctx)
	assert.False(t, store.IsAuthenticated())
}

func TestStore_RestoreFromFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	first := session.NewStore(session.NewFilePersister(path))
	first.SetSession(ctx, session.User{ID: "u1", Email: "a@b.c"}, "tok")

	// 模擬重新啟動：新的 store、同一個檔案
	second := session.NewStore(session.NewFilePersister(path))
	require.NoError(t, second.Restore(ctx))

	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, "tok", second.Token())
	require.NotNil(t, second.User())
	assert.Equal(t, "u1", second.User().ID)

	// 登出後檔案也要清掉
	second.Logout(ctx)
	third := session.NewStore(session.NewFilePersister(path))
	require.NoError(t, third.Restore(ctx))
	assert.False(t, third.IsAuthenticated())
}

func TestStore_RestoreWithoutPersistedSession(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "missing.json")

	store := session.NewStore(session.NewFilePersister(path))
	require.NoError(t, store.Restore(ctx))
	assert.False(t, store.IsAuthenticated())
}

type failingPersister struct{}

func (failingPersister) Save(context.Context, session.Session) error {
	return errors.New("disk full")
}
func (failingPersister) Load(context.Context) (*session.Session, error) { return nil, nil }
func (failingPersister) Clear(context.Context) error                    { return errors.New("disk full") }

// 落地失敗不影響記憶體內的狀態
func TestStore_PersistFailureKeepsInMemoryState(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(failingPersister{})

	store.SetSession(ctx, session.User{ID: "u1"}, "tok")
	assert.True(t, store.IsAuthenticated())

	store.Logout(ctx)
	assert.False(t, store.IsAuthenticated())
}
