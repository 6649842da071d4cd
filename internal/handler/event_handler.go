package handler

import (
	"errors"
	"net/http"

	"tickify/internal/middleware"
	"tickify/internal/model"
	"tickify/internal/service"
	apperrors "tickify/pkg/app_errors"
	"tickify/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventHandler struct {
	service       service.EventService
	ticketService service.TicketService
}

func NewEventHandler(service service.EventService, ticketService service.TicketService) *EventHandler {
	return &EventHandler{service: service, ticketService: ticketService}
}

// List 公開活動列表，只回已上架的
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c, true)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, events)
}

// ListMine 主辦方自己的活動，含未上架的
func (h *EventHandler) ListMine(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	events, err := h.service.ListByOrganizer(c, claims.UserID)
	if err != nil {
		h.handleError(c, err, "ListMine")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetByEventID(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	event, err := h.service.GetByEventID(c, eventID)
	if err != nil {
		h.handleError(c, err, "GetByEventID")
		return
	}
	c.JSON(http.StatusOK, event)
}

// ListTickets 活動明細頁的票種列表（含單價與手續費轉嫁旗標）
func (h *EventHandler) ListTickets(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	event, err := h.service.GetByEventID(c, eventID)
	if err != nil {
		h.handleError(c, err, "ListTickets")
		return
	}
	tickets, err := h.ticketService.ListByEventID(c, event.ID)
	if err != nil {
		h.handleError(c, err, "ListTickets")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (h *EventHandler) Create(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c, claims.UserID, req)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateEventRequest 更新活動請求
type UpdateEventRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Venue       *string `json:"venue"`
}

func (h *EventHandler) UpdateByEventID(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	var req UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if req.Name == nil && req.Description == nil && req.Venue == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field is required"})
		return
	}
	params := model.UpdateEventParams{
		Name:        req.Name,
		Description: req.Description,
		Venue:       req.Venue,
	}
	updated, err := h.service.UpdateByEventID(c, eventID, params)
	if err != nil {
		h.handleError(c, err, "UpdateByEventID")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) DeleteByEventID(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	if err := h.service.DeleteByEventID(c, eventID); err != nil {
		h.handleError(c, err, "DeleteByEventID")
		return
	}
	c.Status(http.StatusNoContent)
}

// OpenForSale 開賣：上架活動並把票種庫存預熱進 Redis
func (h *EventHandler) OpenForSale(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event uuid"})
		return
	}
	if err := h.service.OpenForSale(c, eventID); err != nil {
		h.handleError(c, err, "OpenForSale")
		return
	}
	c.Status(http.StatusOK)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
