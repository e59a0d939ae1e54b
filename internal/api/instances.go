package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dossinstitute/eventquest/internal/quest"
	"github.com/dossinstitute/eventquest/internal/service"
	"github.com/dossinstitute/eventquest/pkg/auth"
	"github.com/dossinstitute/eventquest/pkg/logger"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type instanceRoutes struct {
	s *service.InstanceService
}

func NewInstanceRoutes(handler *gin.RouterGroup, s *service.InstanceService, a *auth.TokenAuth) {
	r := &instanceRoutes{s: s}
	h := handler.Group("/instances")
	h.Use(a.Middleware())
	{
		h.POST("/", r.InitializeQuest)
		h.GET("/:quest_id", r.GetInstance)
		h.POST("/:quest_id/interactions", r.Interact)
		h.GET("/:quest_id/interactions", r.ListInteractions)
		h.POST("/:quest_id/complete", r.MarkAsCompleted)
	}
}

type InitializeQuestRequest struct {
	QuestID   int64     `json:"quest_id" binding:"required"`
	Kind      string    `json:"kind" binding:"required"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at" binding:"required"`

	Locations []string `json:"locations"`

	MinSubmissions   int      `json:"min_submissions"`
	RequiredHashtags []string `json:"required_hashtags"`
	RequireHashtags  bool     `json:"require_hashtags"`

	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
}

func (r *instanceRoutes) InitializeQuest(c *gin.Context) {
	log := logger.Logger()

	var req InitializeQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.s.InitializeQuest(c.Request.Context(), p, service.InitializeParams{
		QuestID:          req.QuestID,
		Kind:             quest.Kind(req.Kind),
		Name:             req.Name,
		ExpiresAt:        req.ExpiresAt,
		Locations:        req.Locations,
		MinSubmissions:   req.MinSubmissions,
		RequiredHashtags: req.RequiredHashtags,
		RequireHashtags:  req.RequireHashtags,
		Questions:        req.Questions,
		Answers:          req.Answers,
	})
	if err != nil {
		log.Error("failed to initialize quest", zap.Error(err))
		respondError(c, err, "Quest ID does not exist.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"quest_id": req.QuestID})
}

type InteractRequest struct {
	Action  string          `json:"action" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

func (r *instanceRoutes) Interact(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	var req InteractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	out, err := r.s.Interact(c.Request.Context(), p.Wallet, id, req.Action, req.Payload)
	if err != nil {
		if errors.Is(err, quest.ErrDuplicateInteraction) {
			c.JSON(http.StatusConflict, gin.H{"error": duplicateMessage(req.Action)})
			return
		}
		log.Info("interaction rejected",
			zap.Int64("quest_id", id),
			zap.String("action", req.Action),
			zap.Error(err))
		respondError(c, err, "Quest ID does not exist.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quest_id":        out.QuestID,
		"actor":           out.Actor,
		"action":          out.Action,
		"completed_quest": out.CompletedQuest,
	})
}

func (r *instanceRoutes) GetInstance(c *gin.Context) {
	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	inst, err := r.s.GetInstance(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Quest ID does not exist.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quest_id":   inst.State.QuestID,
		"kind":       string(inst.State.Kind),
		"name":       inst.State.Name,
		"active":     inst.State.Active,
		"completed":  inst.State.Completed,
		"expires_at": inst.State.ExpiresAt,
		"initiator":  inst.State.Initiator,
	})
}

func (r *instanceRoutes) ListInteractions(c *gin.Context) {
	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	outcomes, err := r.s.ListInteractions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Quest ID does not exist.")
		return
	}
	c.JSON(http.StatusOK, outcomes)
}

func (r *instanceRoutes) MarkAsCompleted(c *gin.Context) {
	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.s.MarkAsCompleted(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "Quest ID does not exist.")
		return
	}
	c.Status(http.StatusNoContent)
}
