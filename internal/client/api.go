package client

import (
	"context"
	"net/http"

	"tickify/internal/model"
	"tickify/internal/pricing"
	"tickify/internal/session"
	"tickify/pkg/logger"

	"go.uber.org/zap"
)

// Client 型別化的 API 入口，對應伺服器 /api/v1 路由
type Client struct {
	exec  *Executor
	store *session.Store
	log   *zap.Logger
}

func New(exec *Executor, store *session.Store) *Client {
	return &Client{
		exec:  exec,
		store: store,
		log:   logger.WithComponent("api_client"),
	}
}

// Login 登入成功後寫入 session（user + token）
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	err := c.exec.Do(ctx, http.MethodPost, "/api/v1/auth/login", model.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.store.SetSession(ctx, sessionUser(resp.User), resp.Token)
	return &resp, nil
}

// Register 註冊並直接登入
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.exec.Do(ctx, http.MethodPost, "/api/v1/auth/register", req, &resp); err != nil {
		return nil, err
	}

	c.store.SetSession(ctx, sessionUser(resp.User), resp.Token)
	return &resp, nil
}

// Logout 純本地操作，伺服器端 token 到期自然失效
func (c *Client) Logout(ctx context.Context) {
	c.store.Logout(ctx)
}

// Me 向伺服器要目前登入者資料並同步回 session
func (c *Client) Me(ctx context.Context) (*model.UserResponse, error) {
	var user model.UserResponse
	if err := c.exec.Do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &user); err != nil {
		return nil, err
	}

	c.store.UpdateUserFields(ctx, session.UserFields{
		FirstName: &user.FirstName,
		LastName:  &user.LastName,
		Email:     &user.Email,
		Username:  &user.Username,
	})
	return &user, nil
}

func (c *Client) ListEvents(ctx context.Context) ([]*model.Event, error) {
	var events []*model.Event
	if err := c.exec.Do(ctx, http.MethodGet, "/api/v1/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	var event model.Event
	if err := c.exec.Do(ctx, http.MethodGet, "/api/v1/events/"+eventID, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) EventTickets(ctx context.Context, eventID string) ([]*model.Ticket, error) {
	var tickets []*model.Ticket
	if err := c.exec.Do(ctx, http.MethodGet, "/api/v1/events/"+eventID+"/tickets", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// PlatformFee 取得平台手續費百分比。
// 任何失敗都回退預設值，結帳頁不因設定載入失敗而卡住。
func (c *Client) PlatformFee(ctx context.Context) float64 {
	var resp model.PlatformFeeResponse
	if err := c.exec.Do(ctx, http.MethodGet, "/api/v1/settings/platform-fee", nil, &resp); err != nil {
		c.log.Warn("failed to fetch platform fee, using default",
			zap.Error(err),
			zap.Float64("default", model.DefaultPlatformFeePercentage))
		return model.DefaultPlatformFeePercentage
	}
	return resp.FeePercentage
}

// ValidatePromo 伺服器端驗證優惠碼，回傳結帳可用的折扣值物件
func (c *Client) ValidatePromo(ctx context.Context, req model.ValidatePromoRequest) (*model.AppliedPromo, error) {
	var applied model.AppliedPromo
	if err := c.exec.Do(ctx, http.MethodPost, "/api/v1/promos/validate", req, &applied); err != nil {
		return nil, err
	}
	return &applied, nil
}

// Quote 伺服器端試算結帳金額
func (c *Client) Quote(ctx context.Context, req model.CheckoutRequest) (*pricing.Summary, error) {
	var summary pricing.Summary
	if err := c.exec.Do(ctx, http.MethodPost, "/api/v1/checkout/quote", req, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Checkout 下單
func (c *Client) Checkout(ctx context.Context, req model.CheckoutRequest) (*model.Order, error) {
	var order model.Order
	if err := c.exec.Do(ctx, http.MethodPost, "/api/v1/checkout", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders 目前登入者的訂單
func (c *Client) MyOrders(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	if err := c.exec.Do(ctx, http.MethodGet, "/api/v1/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func sessionUser(u *model.UserResponse) session.User {
	if u == nil {
		return session.User{}
	}
	return session.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
		IsAdmin:   u.IsAdmin,
	}
}
