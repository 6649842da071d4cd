package service

import (
	"context"

	"tickify/internal/model"
	"tickify/internal/repository"
	"tickify/pkg/logger"

	"go.uber.org/zap"
)

type BroadcastService interface {
	// Create 建立草稿，不會立即寄送
	Create(ctx context.Context, senderID int, req model.CreateBroadcastRequest) (*model.Broadcast, error)
	ListByEventID(ctx context.Context, eventID int) ([]*model.Broadcast, error)
	// Send 將草稿標記為已寄送。實際投遞交給外部信件服務，這裡只管狀態。
	Send(ctx context.Context, id int) (*model.Broadcast, error)
}

type BroadcastServiceImpl struct {
	repo repository.BroadcastRepository
	log  *zap.Logger
}

func NewBroadcastService(repo repository.BroadcastRepository) BroadcastService {
	return &BroadcastServiceImpl{
		repo: repo,
		log:  logger.WithComponent("broadcast_service"),
	}
}

func (s *BroadcastServiceImpl) Create(ctx context.Context, senderID int, req model.CreateBroadcastRequest) (*model.Broadcast, error) {
	broadcast := &model.Broadcast{
		EventID:  req.EventID,
		SenderID: senderID,
		Subject:  req.Subject,
		Body:     req.Body,
		Status:   model.BroadcastStatusDraft,
	}
	return s.repo.Create(ctx, broadcast)
}

func (s *BroadcastServiceImpl) ListByEventID(ctx context.Context, eventID int) ([]*model.Broadcast, error) {
	return s.repo.ListByEventID(ctx, eventID)
}

func (s *BroadcastServiceImpl) Send(ctx context.Context, id int) (*model.Broadcast, error) {
	broadcast, err := s.repo.MarkSent(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("broadcast sent",
		zap.Int("broadcast_id", broadcast.ID),
		zap.Int("event_id", broadcast.EventID))

	return broadcast, nil
}
