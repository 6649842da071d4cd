package service

import (
	"context"

	"tickify/internal/model"
	"tickify/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderService interface {
	OrderList(ctx context.Context) ([]*model.Order, error)
	ListByUserID(ctx context.Context, userID int) ([]*model.Order, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.Order, error)
	GetOrderByID(ctx context.Context, id int) (*model.Order, error)
	ConfirmOrder(ctx context.Context, id int) error
	CancelOrder(ctx context.Context, id int) error
	DeleteOrder(ctx context.Context, id int) error
}

type OrderServiceImpl struct {
	pool             *pgxpool.Pool
	repository       repository.OrderRepository
	ticketRepository repository.TicketRepository
}

func NewOrderService(
	pool *pgxpool.Pool,
	orderRepository repository.OrderRepository,
	ticketRepository repository.TicketRepository,
) OrderService {
	return &OrderServiceImpl{
		pool:             pool,
		repository:       orderRepository,
		ticketRepository: ticketRepository,
	}
}

func (s *OrderServiceImpl) OrderList(ctx context.Context) ([]*model.Order, error) {
	return s.repository.List(ctx)
}

func (s *OrderServiceImpl) ListByUserID(ctx context.Context, userID int) ([]*model.Order, error) {
	return s.repository.FindByUserID(ctx, userID)
}

func (s *OrderServiceImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Order, error) {
	return s.repository.FindByEventID(ctx, eventID)
}

func (s *OrderServiceImpl) GetOrderByID(ctx context.Context, id int) (*model.Order, error) {
	return s.repository.FindByID(ctx, id)
}

func (s *OrderServiceImpl) ConfirmOrder(ctx context.Context, id int) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = s.repository.UpdateStatusWithLock(ctx, tx, id, model.OrderStatusConfirmed)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *OrderServiceImpl) CancelOrder(ctx context.Context, id int) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// 1. update order status
	order, err := s.repository.UpdateStatusWithLock(ctx, tx, id, model.OrderStatusCancelled)
	if err != nil {
		return err
	}

	// 2. increment ticket remaining stock for every line item
	for _, item := range order.Items {
		if err := s.ticketRepository.IncrementStock(ctx, tx, item.TicketID, item.Quantity); err != nil {
			return err
		}
	}

	// 3. commit transaction
	return tx.Commit(ctx)
}

func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, id int) error {
	return s.repository.Delete(ctx, id)
}
