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

type questRoutes struct {
	s *service.QuestService
}

func NewQuestRoutes(handler *gin.RouterGroup, s *service.QuestService, a *auth.TokenAuth) {
	r := &questRoutes{s: s}
	h := handler.Group("/quests")
	h.Use(a.Middleware())
	{
		h.POST("/", r.CreateQuest)
		h.GET("/", r.ListQuests)
		h.GET("/count", r.GetQuestCount)
		h.GET("/index/:index", r.GetQuestByIndex)
		h.GET("/:quest_id", r.GetQuest)
		h.PUT("/:quest_id", r.UpdateQuest)
		h.DELETE("/:quest_id", r.DeleteQuest)
	}
}

type QuestRequest struct {
	Name                string    `json:"name" binding:"required"`
	DefaultInteractions int       `json:"default_interactions"`
	DefaultStartDate    time.Time `json:"default_start_date"`
	DefaultEndDate      time.Time `json:"default_end_date"`
	DefaultRewardAmount int64     `json:"default_reward_amount"`
}

func questResponse(q *model.Quest) gin.H {
	return gin.H{
		"quest_id":              q.QuestID,
		"name":                  q.Name,
		"default_interactions":  q.DefaultInteractions,
		"default_start_date":    q.DefaultStartDate,
		"default_end_date":      q.DefaultEndDate,
		"default_reward_amount": q.DefaultRewardAmount,
	}
}

func (r *questRoutes) CreateQuest(c *gin.Context) {
	log := logger.Logger()

	var req QuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	id, err := r.s.CreateQuest(c.Request.Context(), p, &model.Quest{
		Name:                req.Name,
		DefaultInteractions: req.DefaultInteractions,
		DefaultStartDate:    req.DefaultStartDate,
		DefaultEndDate:      req.DefaultEndDate,
		DefaultRewardAmount: req.DefaultRewardAmount,
	})
	if err != nil {
		log.Error("failed to create quest", zap.Error(err))
		respondError(c, err, "Quest does not exist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"quest_id": id})
}

func (r *questRoutes) GetQuest(c *gin.Context) {
	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	q, err := r.s.GetQuest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Quest does not exist")
		return
	}
	c.JSON(http.StatusOK, questResponse(q))
}

func (r *questRoutes) UpdateQuest(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	var req QuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.s.UpdateQuest(c.Request.Context(), p, &model.Quest{
		QuestID:             id,
		Name:                req.Name,
		DefaultInteractions: req.DefaultInteractions,
		DefaultStartDate:    req.DefaultStartDate,
		DefaultEndDate:      req.DefaultEndDate,
		DefaultRewardAmount: req.DefaultRewardAmount,
	})
	if err != nil {
		log.Error("failed to update quest", zap.Error(err))
		respondError(c, err, "Quest does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *questRoutes) DeleteQuest(c *gin.Context) {
	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.s.DeleteQuest(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "Quest does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *questRoutes) ListQuests(c *gin.Context) {
	quests, err := r.s.ListQuests(c.Request.Context())
	if err != nil {
		respondError(c, err, "Quest does not exist")
		return
	}

	out := make([]gin.H, len(quests))
	for i, q := range quests {
		out[i] = questResponse(q)
	}
	c.JSON(http.StatusOK, out)
}

func (r *questRoutes) GetQuestCount(c *gin.Context) {
	count, err := r.s.GetQuestCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "Quest does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (r *questRoutes) GetQuestByIndex(c *gin.Context) {
	index, ok := parseID(c, "index")
	if !ok {
		return
	}

	q, err := r.s.GetQuestByIndex(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "Quest does not exist")
		return
	}
	c.JSON(http.StatusOK, questResponse(q))
}
