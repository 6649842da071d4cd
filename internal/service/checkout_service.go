package service

import (
	"context"

	"tickify/internal/cache"
	"tickify/internal/model"
	"tickify/internal/pricing"
	"tickify/internal/queue"
	"tickify/internal/repository"
	apperrors "tickify/pkg/app_errors"
	"tickify/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CheckoutService interface {
	// Quote 計算結帳金額，不動庫存、不產生訂單
	Quote(ctx context.Context, req model.CheckoutRequest) (*pricing.Summary, error)
	// PlaceOrder 下單：Redis 原子扣庫存 → 發送訂單到隊列，立即返回 pending 訂單
	PlaceOrder(ctx context.Context, userID int, req model.CheckoutRequest) (*model.Order, error)
	// DispatchOrder 由 worker 呼叫：訂單落庫 + DB 扣庫存 + 優惠碼核銷，單一交易
	DispatchOrder(ctx context.Context, order *model.Order) error
}

type CheckoutServiceImpl struct {
	pool             *pgxpool.Pool
	orderRepository  repository.OrderRepository
	ticketRepository repository.TicketRepository
	promoRepository  repository.PromoRepository
	promoService     PromoService
	settingsService  SettingsService
	inventoryManager cache.RedisTicketInventoryManager
	orderQueue       queue.OrderQueue
	log              *zap.Logger
}

func NewCheckoutService(
	pool *pgxpool.Pool,
	orderRepository repository.OrderRepository,
	ticketRepository repository.TicketRepository,
	promoRepository repository.PromoRepository,
	promoService PromoService,
	settingsService SettingsService,
	inventoryManager cache.RedisTicketInventoryManager,
	orderQueue queue.OrderQueue,
) CheckoutService {
	return &CheckoutServiceImpl{
		pool:             pool,
		orderRepository:  orderRepository,
		ticketRepository: ticketRepository,
		promoRepository:  promoRepository,
		promoService:     promoService,
		settingsService:  settingsService,
		inventoryManager: inventoryManager,
		orderQueue:       orderQueue,
		log:              logger.WithComponent("checkout_service"),
	}
}

// quoteContext 一次結帳計算會用到的中間產物
type quoteContext struct {
	catalog pricing.Catalog
	items   []pricing.LineItem
	promo   *model.AppliedPromo
	summary pricing.Summary
}

func (s *CheckoutServiceImpl) buildQuote(ctx context.Context, req model.CheckoutRequest) (*quoteContext, error) {
	if len(req.Items) == 0 {
		return &quoteContext{catalog: pricing.Catalog{}}, nil
	}

	tickets, err := s.ticketRepository.ListByEventID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	catalog := make(pricing.Catalog, len(tickets))
	for _, t := range tickets {
		catalog[t.ID] = pricing.CatalogTicket{
			Price:              t.Price,
			TransferFeeEnabled: t.TransferFee,
		}
	}

	items := make([]pricing.LineItem, 0, len(req.Items))
	ticketIDs := make([]int, 0, len(req.Items))
	for _, item := range req.Items {
		if _, ok := catalog[item.TicketID]; !ok {
			return nil, apperrors.ErrTicketNotFound
		}
		items = append(items, pricing.LineItem{TicketID: item.TicketID, Quantity: item.Quantity})
		ticketIDs = append(ticketIDs, item.TicketID)
	}

	var promo *model.AppliedPromo
	if req.PromoCode != nil && *req.PromoCode != "" {
		promo, err = s.promoService.Validate(ctx, model.ValidatePromoRequest{
			EventID:   req.EventID,
			Code:      *req.PromoCode,
			TicketIDs: ticketIDs,
		})
		if err != nil {
			return nil, err
		}
	}

	fee := s.settingsService.PlatformFeePercentage(ctx)

	return &quoteContext{
		catalog: catalog,
		items:   items,
		promo:   promo,
		summary: pricing.Quote(items, catalog, promo, fee),
	}, nil
}

func (s *CheckoutServiceImpl) Quote(ctx context.Context, req model.CheckoutRequest) (*pricing.Summary, error) {
	qc, err := s.buildQuote(ctx, req)
	if err != nil {
		return nil, err
	}
	return &qc.summary, nil
}

func (s *CheckoutServiceImpl) PlaceOrder(ctx context.Context, userID int, req model.CheckoutRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	qc, err := s.buildQuote(ctx, req)
	if err != nil {
		return nil, err
	}

	// 1. 使用 Redis 庫存管理器逐項扣庫存，任一項失敗就回滾已扣的
	reserved := make([]model.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		ok, _, err := s.inventoryManager.DecreStock(ctx, item.TicketID, item.Quantity, userID)
		if err != nil {
			s.rollbackReserved(reserved, userID)
			return nil, err
		}
		if !ok {
			s.rollbackReserved(reserved, userID)
			return nil, apperrors.ErrInsufficientStock
		}
		reserved = append(reserved, item)
	}

	orderItems := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		orderItems = append(orderItems, model.OrderItem{
			TicketID:  item.TicketID,
			Quantity:  item.Quantity,
			UnitPrice: qc.catalog[item.TicketID].Price,
		})
	}

	// 立即返回訂單資訊，落庫交給 worker
	order := &model.Order{
		RequestID: uuid.New().String(),
		UserID:    userID,
		EventID:   req.EventID,
		Subtotal:  qc.summary.Subtotal,
		Discount:  qc.summary.Discount,
		Fee:       qc.summary.Fee,
		Total:     qc.summary.Total,
		PromoCode: req.PromoCode,
		Status:    model.OrderStatusPending,
		Items:     orderItems,
	}

	// 嘗試發送 MQ：ctx 跟隨請求的生命週期，用戶不等了就取消
	if err := s.orderQueue.PublishOrder(ctx, order); err != nil {
		s.log.Error("failed to publish order", zap.Error(err), zap.String("request_id", order.RequestID))
		// MQ 紀錄失敗，回滾庫存(絕對不能讓使用者搶到票, 所以不使用go routine)
		s.rollbackReserved(reserved, userID)
		return nil, apperrors.ErrInternalServerError
	}

	return order, nil
}

// rollbackReserved 回滾已扣的 Redis 庫存。
// 使用 context.Background() 傳遞, 確保 RollbackStock 一定會執行。
func (s *CheckoutServiceImpl) rollbackReserved(reserved []model.CheckoutItem, userID int) {
	for _, item := range reserved {
		if err := s.inventoryManager.RollbackStock(context.Background(), item.TicketID, item.Quantity, userID); err != nil {
			s.log.Error("failed to rollback stock",
				zap.Error(err),
				zap.Int("ticket_id", item.TicketID),
				zap.Int("quantity", item.Quantity))
		}
	}
}

func (s *CheckoutServiceImpl) DispatchOrder(ctx context.Context, order *model.Order) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// 寫入訂單到資料庫
	createdOrder, err := s.orderRepository.Create(ctx, tx, order)
	if err != nil {
		return err
	}

	// 更新票券庫存
	for _, item := range createdOrder.Items {
		if err := s.ticketRepository.DecrementStock(ctx, tx, item.TicketID, item.Quantity); err != nil {
			return err
		}
	}

	// 優惠碼核銷
	if order.PromoCode != nil && *order.PromoCode != "" {
		promo, err := s.promoRepository.FindByCode(ctx, order.EventID, *order.PromoCode)
		if err != nil {
			return err
		}
		if err := s.promoRepository.IncrementUses(ctx, tx, promo.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
