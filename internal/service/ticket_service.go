package service

import (
	"context"

	"tickify/internal/model"
	"tickify/internal/repository"

	"github.com/google/uuid"
)

type TicketService interface {
	List(ctx context.Context) ([]*model.Ticket, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.Ticket, error)
	GetByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error)
	Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error)
	UpdateByTicketID(ctx context.Context, ticketID uuid.UUID, params model.UpdateTicketParams) (*model.Ticket, error)
	DeleteByTicketID(ctx context.Context, ticketID uuid.UUID) error
}

type TicketServiceImpl struct {
	repo repository.TicketRepository
}

func NewTicketService(repo repository.TicketRepository) TicketService {
	return &TicketServiceImpl{repo: repo}
}

func (s *TicketServiceImpl) List(ctx context.Context) ([]*model.Ticket, error) {
	return s.repo.List(ctx)
}

func (s *TicketServiceImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Ticket, error) {
	return s.repo.ListByEventID(ctx, eventID)
}

func (s *TicketServiceImpl) GetByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error) {
	return s.repo.FindByTicketID(ctx, ticketID)
}

func (s *TicketServiceImpl) Create(ctx context.Context, ticket *model.Ticket) (*model.Ticket, error) {
	ticket.TicketID = uuid.New()
	ticket.RemainingStock = ticket.TotalStock
	return s.repo.Create(ctx, ticket)
}

func (s *TicketServiceImpl) UpdateByTicketID(ctx context.Context, ticketID uuid.UUID, params model.UpdateTicketParams) (*model.Ticket, error) {
	ticket, err := s.repo.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, ticket.ID, params)
}

func (s *TicketServiceImpl) DeleteByTicketID(ctx context.Context, ticketID uuid.UUID) error {
	ticket, err := s.repo.FindByTicketID(ctx, ticketID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, ticket.ID)
}
