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

type questEventRoutes struct {
	qs  *service.QuestEventService
	uqs *service.UserQuestEventService
}

func NewQuestEventRoutes(handler *gin.RouterGroup, qs *service.QuestEventService, uqs *service.UserQuestEventService, a *auth.TokenAuth) {
	r := &questEventRoutes{qs: qs, uqs: uqs}

	h := handler.Group("/quest-events")
	h.Use(a.Middleware())
	{
		h.POST("/", r.CreateQuestEvent)
		h.GET("/", r.ListQuestEvents)
		h.GET("/count", r.GetQuestEventCount)
		h.GET("/index/:index", r.GetQuestEventByIndex)
		h.GET("/:quest_event_id", r.GetQuestEvent)
		h.PUT("/:quest_event_id", r.UpdateQuestEvent)
		h.DELETE("/:quest_event_id", r.DeleteQuestEvent)
	}

	u := handler.Group("/user-quest-events")
	u.Use(a.Middleware())
	{
		u.POST("/", r.CreateUserQuestEvent)
		u.GET("/", r.ListUserQuestEvents)
		u.GET("/count", r.GetUserQuestEventCount)
		u.GET("/index/:index", r.GetUserQuestEventByIndex)
		u.GET("/:id", r.GetUserQuestEvent)
		u.PUT("/:id", r.UpdateUserQuestEvent)
		u.DELETE("/:id", r.DeleteUserQuestEvent)
	}
}

type QuestEventRequest struct {
	EventID             int64     `json:"event_id" binding:"required"`
	QuestID             int64     `json:"quest_id" binding:"required"`
	MinimumInteractions int       `json:"minimum_interactions"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	RewardAmount        int64     `json:"reward_amount"`
	URLHashTags         string    `json:"url_hash_tags"`
}

func questEventResponse(q *model.QuestEvent) gin.H {
	return gin.H{
		"quest_event_id":       q.QuestEventID,
		"event_id":             q.EventID,
		"quest_id":             q.QuestID,
		"minimum_interactions": q.MinimumInteractions,
		"start_date":           q.StartDate,
		"end_date":             q.EndDate,
		"reward_amount":        q.RewardAmount,
		"url_hash_tags":        q.URLHashTags,
	}
}

func (r *questEventRoutes) CreateQuestEvent(c *gin.Context) {
	log := logger.Logger()

	var req QuestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	id, err := r.qs.CreateQuestEvent(c.Request.Context(), p, &model.QuestEvent{
		EventID:             req.EventID,
		QuestID:             req.QuestID,
		MinimumInteractions: req.MinimumInteractions,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		RewardAmount:        req.RewardAmount,
		URLHashTags:         req.URLHashTags,
	})
	if err != nil {
		log.Error("failed to create quest event", zap.Error(err))
		respondError(c, err, "QuestEvent does not exist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"quest_event_id": id})
}

func (r *questEventRoutes) GetQuestEvent(c *gin.Context) {
	id, ok := parseID(c, "quest_event_id")
	if !ok {
		return
	}

	q, err := r.qs.GetQuestEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "QuestEvent does not exist")
		return
	}
	c.JSON(http.StatusOK, questEventResponse(q))
}

func (r *questEventRoutes) UpdateQuestEvent(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "quest_event_id")
	if !ok {
		return
	}

	var req QuestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.qs.UpdateQuestEvent(c.Request.Context(), p, &model.QuestEvent{
		QuestEventID:        id,
		EventID:             req.EventID,
		QuestID:             req.QuestID,
		MinimumInteractions: req.MinimumInteractions,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		RewardAmount:        req.RewardAmount,
		URLHashTags:         req.URLHashTags,
	})
	if err != nil {
		log.Error("failed to update quest event", zap.Error(err))
		respondError(c, err, "QuestEvent does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *questEventRoutes) DeleteQuestEvent(c *gin.Context) {
	id, ok := parseID(c, "quest_event_id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.qs.DeleteQuestEvent(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "QuestEvent does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *questEventRoutes) ListQuestEvents(c *gin.Context) {
	events, err := r.qs.ListQuestEvents(c.Request.Context())
	if err != nil {
		respondError(c, err, "QuestEvent does not exist")
		return
	}

	out := make([]gin.H, len(events))
	for i, q := range events {
		out[i] = questEventResponse(q)
	}
	c.JSON(http.StatusOK, out)
}

func (r *questEventRoutes) GetQuestEventCount(c *gin.Context) {
	count, err := r.qs.GetQuestEventCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "QuestEvent does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (r *questEventRoutes) GetQuestEventByIndex(c *gin.Context) {
	index, ok := parseID(c, "index")
	if !ok {
		return
	}

	q, err := r.qs.GetQuestEventByIndex(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "QuestEvent does not exist")
		return
	}
	c.JSON(http.StatusOK, questEventResponse(q))
}

type UserQuestEventRequest struct {
	QuestEventID int64  `json:"quest_event_id" binding:"required"`
	UserID       int64  `json:"user_id" binding:"required"`
	Interactions int    `json:"interactions"`
	Validated    bool   `json:"validated"`
	URL          string `json:"url"`
	Completed    bool   `json:"completed"`
}

func userQuestEventResponse(u *model.UserQuestEvent) gin.H {
	return gin.H{
		"user_quest_event_id": u.UserQuestEventID,
		"quest_event_id":      u.QuestEventID,
		"user_id":             u.UserID,
		"interactions":        u.Interactions,
		"validated":           u.Validated,
		"url":                 u.URL,
		"completed":           u.Completed,
	}
}

func (r *questEventRoutes) CreateUserQuestEvent(c *gin.Context) {
	log := logger.Logger()

	var req UserQuestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	id, err := r.uqs.CreateUserQuestEvent(c.Request.Context(), p, &model.UserQuestEvent{
		QuestEventID: req.QuestEventID,
		UserID:       req.UserID,
		Interactions: req.Interactions,
		Validated:    req.Validated,
		URL:          req.URL,
		Completed:    req.Completed,
	})
	if err != nil {
		log.Error("failed to create user quest event", zap.Error(err))
		respondError(c, err, "UserQuestEvent does not exist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_quest_event_id": id})
}

func (r *questEventRoutes) GetUserQuestEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	u, err := r.uqs.GetUserQuestEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "UserQuestEvent does not exist")
		return
	}
	c.JSON(http.StatusOK, userQuestEventResponse(u))
}

func (r *questEventRoutes) UpdateUserQuestEvent(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UserQuestEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.uqs.UpdateUserQuestEvent(c.Request.Context(), p, &model.UserQuestEvent{
		UserQuestEventID: id,
		QuestEventID:     req.QuestEventID,
		UserID:           req.UserID,
		Interactions:     req.Interactions,
		Validated:        req.Validated,
		URL:              req.URL,
		Completed:        req.Completed,
	})
	if err != nil {
		log.Error("failed to update user quest event", zap.Error(err))
		respondError(c, err, "UserQuestEvent does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *questEventRoutes) DeleteUserQuestEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.uqs.DeleteUserQuestEvent(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "UserQuestEvent does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *questEventRoutes) ListUserQuestEvents(c *gin.Context) {
	events, err := r.uqs.ListUserQuestEvents(c.Request.Context())
	if err != nil {
		respondError(c, err, "UserQuestEvent does not exist")
		return
	}

	out := make([]gin.H, len(events))
	for i, u := range events {
		out[i] = userQuestEventResponse(u)
	}
	c.JSON(http.StatusOK, out)
}

func (r *questEventRoutes) GetUserQuestEventCount(c *gin.Context) {
	count, err := r.uqs.GetUserQuestEventCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "UserQuestEvent does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (r *questEventRoutes) GetUserQuestEventByIndex(c *gin.Context) {
	index, ok := parseID(c, "index")
	if !ok {
		return
	}

	u, err := r.uqs.GetUserQuestEventByIndex(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "UserQuestEvent does not exist")
		return
	}
	c.JSON(http.StatusOK, userQuestEventResponse(u))
}
