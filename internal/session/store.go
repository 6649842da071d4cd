package session

import (
	"context"
	"sync"

	"tickify/pkg/logger"

	"go.uber.org/zap"
)

// Persister 負責 session 的落地。Load 找不到資料時回傳 (nil, nil)。
type Persister interface {
	Save(ctx context.Context, sess Session) error
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}

// Store 單一登入狀態的唯一來源。可注入（非 package 單例），
// guard、API client 都以參照取得，方便測試替身。
// 狀態只能透過 SetSession / UpdateUserFields / Logout 改變。
type Store struct {
	mu        sync.RWMutex
	sess      Session
	persister Persister
	log       *zap.Logger
}

// NewStore 建立 Store。persister 可為 nil（純記憶體，不落地）。
func NewStore(persister Persister) *Store {
	return &Store{
		persister: persister,
		log:       logger.WithComponent("session"),
	}
}

// Restore 啟動時從 persister 還原上次的 session。
// 必須在任何讀取之前呼叫；沒有落地資料時維持空 session。
func (s *Store) Restore(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	sess, err := s.persister.Load(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = *sess
	return nil
}

// SetSession 設定目前登入者。寬容處理輸入：user 欄位缺漏補零值，
// user.ID 為空時嘗試從 token payload 還原識別（RecoverUserID），
// 還原失敗也不報錯，照樣成功（來源行為，見 DESIGN.md）。
func (s *Store) SetSession(ctx context.Context, user User, token string) {
	if user.ID == "" {
		if id, ok := RecoverUserID(token); ok {
			s.log.Warn("user id missing, recovered from token payload", zap.String("id", id))
			user.ID = id
		} else {
			s.log.Warn("user id missing and token payload not decodable, proceeding without id")
		}
	}

	s.mu.Lock()
	s.sess = Session{User: &user, Token: token}
	snapshot := s.sess
	s.mu.Unlock()

	s.persist(ctx, snapshot)
}

// UpdateUserFields 對現有 user 做 shallow merge。沒有 session 時為 no-op。
func (s *Store) UpdateUserFields(ctx context.Context, fields UserFields) {
	s.mu.Lock()
	if s.sess.User == nil {
		s.mu.Unlock()
		return
	}

	if fields.FirstName != nil {
		s.sess.User.FirstName = *fields.FirstName
	}
	if fields.LastName != nil {
		s.sess.User.LastName = *fields.LastName
	}
	if fields.Email != nil {
		s.sess.User.Email = *fields.Email
	}
	if fields.Username != nil {
		s.sess.User.Username = *fields.Username
	}
	snapshot := s.sess
	s.mu.Unlock()

	s.persist(ctx, snapshot)
}

// Logout 無條件清空 user、token，並移除落地副本
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.sess = Session{}
	s.mu.Unlock()

	if s.persister == nil {
		return
	}
	if err := s.persister.Clear(ctx); err != nil {
		s.log.Warn("failed to clear persisted session", zap.Error(err))
	}
}

// User 回傳目前登入者的副本，未登入時為 nil
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess.User == nil {
		return nil
	}
	u := *s.sess.User
	return &u
}

// Token 回傳目前的 bearer token，未登入時為空字串
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.Token
}

// IsAuthenticated 由 token 推導
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.IsAuthenticated()
}

// Snapshot 回傳目前 session 的值副本
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.sess
	if s.sess.User != nil {
		u := *s.sess.User
		sess.User = &u
	}
	return sess
}

// 落地失敗只記 warning，不影響記憶體內的狀態
func (s *Store) persist(ctx context.Context, sess Session) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, sess); err != nil {
		s.log.Warn("failed to persist session", zap.Error(err))
	}
}
