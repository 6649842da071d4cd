package handler

import (
	"tickify/internal/middleware"
	"tickify/internal/service"

	"github.com/gin-gonic/gin"
)

// Handlers 路由需要的所有 handler
type Handlers struct {
	Auth       *AuthHandler
	Event      *EventHandler
	Ticket     *TicketHandler
	Checkout   *CheckoutHandler
	Order      *OrderHandler
	Promo      *PromoHandler
	Withdrawal *WithdrawalHandler
	Admin      *AdminHandler
}

// NewRouter 組出完整路由。三層：公開、需登入、/admin（路由守衛）。
func NewRouter(h Handlers, authService service.AuthService, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(allowedOrigins))

	api := r.Group("/api/v1")

	// 公開路由
	api.POST("auth/register", h.Auth.Register)
	api.POST("auth/login", h.Auth.Login)
	api.GET("events", h.Event.List)
	api.GET("events/:uuid", h.Event.GetByEventID)
	api.GET("events/:uuid/tickets", h.Event.ListTickets)
	api.GET("settings/platform-fee", h.Checkout.PlatformFee)

	// 需登入
	authed := api.Group("", middleware.RequireAuth(authService))
	{
		authed.GET("auth/me", h.Auth.Me)
		authed.PUT("auth/me", h.Auth.UpdateMe)

		authed.POST("checkout/quote", h.Checkout.Quote)
		authed.POST("checkout", h.Checkout.Checkout)
		authed.POST("promos/validate", h.Checkout.ValidatePromo)

		authed.GET("orders", h.Order.ListMine)
		authed.GET("orders/:id", h.Order.GetOrder)
		authed.PUT("orders/:id/cancel", h.Order.CancelOrder)

		// 主辦方
		authed.GET("organizer/events", h.Event.ListMine)
		authed.POST("events", h.Event.Create)
		authed.PUT("events/:uuid", h.Event.UpdateByEventID)
		authed.DELETE("events/:uuid", h.Event.DeleteByEventID)
		authed.POST("events/:uuid/open", h.Event.OpenForSale)

		authed.GET("tickets", h.Ticket.List)
		authed.GET("tickets/:uuid", h.Ticket.GetByTicketID)
		authed.POST("tickets", h.Ticket.Create)
		authed.PUT("tickets/:uuid", h.Ticket.UpdateByTicketID)
		authed.DELETE("tickets/:uuid", h.Ticket.DeleteByTicketID)

		authed.POST("withdrawals", h.Withdrawal.Request)
		authed.GET("withdrawals", h.Withdrawal.ListMine)
	}

	// 管理後台：路由守衛依 /admin 前綴判定，非 admin 會拿到 redirect
	admin := api.Group("admin", middleware.RequireAuth(authService), middleware.Guard())
	{
		admin.GET("summary", h.Admin.Summary)
		admin.GET("settings", h.Admin.GetSettings)
		admin.PUT("settings", h.Admin.UpdateSettings)

		admin.GET("users", h.Admin.ListUsers)
		admin.DELETE("users/:id", h.Admin.BanUser)

		admin.GET("orders", h.Order.List)
		admin.PUT("orders/:id/confirm", h.Order.ConfirmOrder)
		admin.DELETE("orders/:id", h.Order.DeleteOrder)

		admin.GET("events/:id/sales", h.Admin.EventSales)
		admin.GET("events/:id/promos", h.Promo.ListByEvent)
		admin.POST("promos", h.Promo.Create)
		admin.PUT("promos/:id/active", h.Promo.SetActive)
		admin.DELETE("promos/:id", h.Promo.Delete)

		admin.GET("withdrawals", h.Withdrawal.ListAll)
		admin.PUT("withdrawals/:id/approve", h.Withdrawal.Approve)
		admin.PUT("withdrawals/:id/reject", h.Withdrawal.Reject)

		admin.POST("broadcasts", h.Admin.CreateBroadcast)
		admin.GET("events/:id/broadcasts", h.Admin.ListBroadcasts)
		admin.PUT("broadcasts/:id/send", h.Admin.SendBroadcast)
	}

	return r
}
