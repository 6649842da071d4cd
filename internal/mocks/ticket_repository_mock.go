package mocks

import (
	"context"

	"tickify/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type TicketRepositoryMock struct {
	mock.Mock
}

func NewTicketRepositoryMock() *TicketRepositoryMock {
	return &TicketRepositoryMock{}
}

func (m *TicketRepositoryMock) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	args := m.Called(ctx, ticket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) List(ctx context.Context) ([]*model.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) ListByEventID(ctx context.Context, eventID int) ([]*model.Ticket, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) FindByID(ctx context.Context, id int) (*model.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) Update(ctx context.Context, id int, params model.UpdateTicketParams) (*model.Ticket, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TicketRepositoryMock) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Ticket, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) IncrementStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	args := m.Called(ctx, tx, id, quantity)
	return args.Error(0)
}

func (m *TicketRepositoryMock) DecrementStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	args := m.Called(ctx, tx, id, quantity)
	return args.Error(0)
}

func (m *TicketRepositoryMock) AddStock(ctx context.Context, tx pgx.Tx, id int, quantity int) error {
	args := m.Called(ctx, tx, id, quantity)
	return args.Error(0)
}
