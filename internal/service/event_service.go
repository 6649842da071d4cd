package service

import (
	"context"

	"tickify/internal/cache"
	"tickify/internal/model"
	"tickify/internal/repository"

	"github.com/google/uuid"
)

type EventService interface {
	// List 列出活動。publishedOnly 為 true 時只回已上架的（公開列表用）
	List(ctx context.Context, publishedOnly bool) ([]*model.Event, error)
	ListByOrganizer(ctx context.Context, organizerID int) ([]*model.Event, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, organizerID int, req model.CreateEventRequest) (*model.Event, error)
	UpdateByEventID(ctx context.Context, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	DeleteByEventID(ctx context.Context, eventID uuid.UUID) error
	// OpenForSale 活動開賣：上架並預熱該活動底下所有票種的 Redis 庫存
	OpenForSale(ctx context.Context, eventID uuid.UUID) error
}

type EventServiceImpl struct {
	repo             repository.EventRepository
	ticketRepo       repository.TicketRepository
	inventoryManager cache.RedisTicketInventoryManager
}

func NewEventService(repo repository.EventRepository, ticketRepo repository.TicketRepository, inventoryManager cache.RedisTicketInventoryManager) EventService {
	return &EventServiceImpl{repo: repo, ticketRepo: ticketRepo, inventoryManager: inventoryManager}
}

func (s *EventServiceImpl) List(ctx context.Context, publishedOnly bool) ([]*model.Event, error) {
	return s.repo.List(ctx, publishedOnly)
}

func (s *EventServiceImpl) ListByOrganizer(ctx context.Context, organizerID int) ([]*model.Event, error) {
	return s.repo.ListByOrganizerID(ctx, organizerID)
}

func (s *EventServiceImpl) GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	return s.repo.FindByEventID(ctx, eventID)
}

func (s *EventServiceImpl) Create(ctx context.Context, organizerID int, req model.CreateEventRequest) (*model.Event, error) {
	event := &model.Event{
		EventID:     uuid.New(),
		OrganizerID: organizerID,
		Name:        req.Name,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) DeleteByEventID(ctx context.Context, eventID uuid.UUID) error {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, event.ID)
}

func (s *EventServiceImpl) UpdateByEventID(ctx context.Context, eventID uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, event.ID, params)
}

func (s *EventServiceImpl) OpenForSale(ctx context.Context, eventID uuid.UUID) error {
	event, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return err
	}

	if !event.Published {
		published := true
		if _, err := s.repo.Update(ctx, event.ID, model.UpdateEventParams{Published: &published}); err != nil {
			return err
		}
	}

	tickets, err := s.ticketRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return err
	}
	for _, t := range tickets {
		if err := s.inventoryManager.WarmUpInventory(ctx, t.ID, t.TotalStock, t.Price, t.MaxPerUser); err != nil {
			return err
		}
	}
	return nil
}
