package api

import (
	"net/http"
	"time"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/internal/service"
	"github.com/dossinstitute/eventquest/pkg/auth"
	"github.com/dossinstitute/eventquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type eventRoutes struct {
	s *service.EventService
}

func NewEventRoutes(handler *gin.RouterGroup, s *service.EventService, a *auth.TokenAuth) {
	r := &eventRoutes{s: s}
	h := handler.Group("/events")
	h.Use(a.Middleware())
	{
		h.POST("/", r.CreateEvent)
		h.GET("/", r.ListEvents)
		h.GET("/count", r.GetEventCount)
		h.GET("/index/:index", r.GetEventByIndex)
		h.GET("/:event_id", r.GetEvent)
		h.PUT("/:event_id", r.UpdateEvent)
		h.DELETE("/:event_id", r.DeleteEvent)
	}
}

type EventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Status      int       `json:"status"`
}

func eventResponse(ev *model.Event) gin.H {
	return gin.H{
		"event_id":    ev.EventID,
		"name":        ev.Name,
		"description": ev.Description,
		"start_date":  ev.StartDate,
		"end_date":    ev.EndDate,
		"status":      int(ev.Status),
	}
}

func (r *eventRoutes) CreateEvent(c *gin.Context) {
	log := logger.Logger()

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	id, err := r.s.CreateEvent(c.Request.Context(), p, &model.Event{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      model.EventStatus(req.Status),
	})
	if err != nil {
		log.Error("failed to create event", zap.Error(err))
		respondError(c, err, "Event does not exist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event_id": id})
}

func (r *eventRoutes) GetEvent(c *gin.Context) {
	id, ok := parseID(c, "event_id")
	if !ok {
		return
	}

	ev, err := r.s.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Event does not exist")
		return
	}
	c.JSON(http.StatusOK, eventResponse(ev))
}

func (r *eventRoutes) UpdateEvent(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "event_id")
	if !ok {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.s.UpdateEvent(c.Request.Context(), p, &model.Event{
		EventID:     id,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      model.EventStatus(req.Status),
	})
	if err != nil {
		log.Error("failed to update event", zap.Error(err))
		respondError(c, err, "Event does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *eventRoutes) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c, "event_id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.s.DeleteEvent(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "Event does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *eventRoutes) ListEvents(c *gin.Context) {
	events, err := r.s.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, err, "Event does not exist")
		return
	}

	out := make([]gin.H, len(events))
	for i, ev := range events {
		out[i] = eventResponse(ev)
	}
	c.JSON(http.StatusOK, out)
}

func (r *eventRoutes) GetEventCount(c *gin.Context) {
	count, err := r.s.GetEventCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "Event does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (r *eventRoutes) GetEventByIndex(c *gin.Context) {
	index, ok := parseID(c, "index")
	if !ok {
		return
	}

	ev, err := r.s.GetEventByIndex(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "Event does not exist")
		return
	}
	c.JSON(http.StatusOK, eventResponse(ev))
}
