package api

import (
	"net/http"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/internal/service"
	"github.com/dossinstitute/eventquest/pkg/auth"
	"github.com/dossinstitute/eventquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type registryRoutes struct {
	s *service.RegistryService
}

func NewRegistryRoutes(handler *gin.RouterGroup, s *service.RegistryService, a *auth.TokenAuth) {
	r := &registryRoutes{s: s}
	h := handler.Group("/registry")
	h.Use(a.Middleware())
	{
		h.POST("/", r.RegisterQuest)
		h.GET("/", r.ListRegisteredQuests)
		h.GET("/ids", r.ListRegisteredQuestIDs)
		h.GET("/count", r.GetRegisteredQuestCount)
		h.GET("/:quest_id", r.GetRegisteredQuest)
		h.PUT("/:quest_id", r.UpdateRegisteredQuest)
		h.DELETE("/:quest_id", r.DeleteRegisteredQuest)
	}
}

type RegisterQuestRequest struct {
	QuestID     int64  `json:"quest_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	ContractRef string `json:"contract_ref"`
	QuestType   string `json:"quest_type" binding:"required"`
}

func registeredQuestResponse(q *model.RegisteredQuest) gin.H {
	return gin.H{
		"quest_id":      q.QuestID,
		"name":          q.Name,
		"contract_ref":  q.ContractRef,
		"quest_type":    q.QuestType,
		"registered_at": q.RegisteredAt,
	}
}

func (r *registryRoutes) RegisterQuest(c *gin.Context) {
	log := logger.Logger()

	var req RegisterQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.s.RegisterQuest(c.Request.Context(), p, &model.RegisteredQuest{
		QuestID:     req.QuestID,
		Name:        req.Name,
		ContractRef: req.ContractRef,
		QuestType:   req.QuestType,
	})
	if err != nil {
		log.Error("failed to register quest", zap.Error(err))
		respondError(c, err, "Quest ID does not exist.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"quest_id": req.QuestID})
}

func (r *registryRoutes) GetRegisteredQuest(c *gin.Context) {
	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	q, err := r.s.GetRegisteredQuest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Quest ID does not exist.")
		return
	}
	c.JSON(http.StatusOK, registeredQuestResponse(q))
}

func (r *registryRoutes) UpdateRegisteredQuest(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	var req RegisterQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.s.UpdateRegisteredQuest(c.Request.Context(), p, &model.RegisteredQuest{
		QuestID:     id,
		Name:        req.Name,
		ContractRef: req.ContractRef,
		QuestType:   req.QuestType,
	})
	if err != nil {
		log.Error("failed to update registered quest", zap.Error(err))
		respondError(c, err, "Quest ID does not exist.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *registryRoutes) DeleteRegisteredQuest(c *gin.Context) {
	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.s.DeleteRegisteredQuest(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "Quest ID does not exist.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *registryRoutes) ListRegisteredQuests(c *gin.Context) {
	quests, err := r.s.ListRegisteredQuests(c.Request.Context())
	if err != nil {
		respondError(c, err, "Quest ID does not exist.")
		return
	}

	out := make([]gin.H, len(quests))
	for i, q := range quests {
		out[i] = registeredQuestResponse(q)
	}
	c.JSON(http.StatusOK, out)
}

func (r *registryRoutes) ListRegisteredQuestIDs(c *gin.Context) {
	ids, err := r.s.ListRegisteredQuestIDs(c.Request.Context())
	if err != nil {
		respondError(c, err, "Quest ID does not exist.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quest_ids": ids})
}

func (r *registryRoutes) GetRegisteredQuestCount(c *gin.Context) {
	count, err := r.s.GetRegisteredQuestCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "Quest ID does not exist.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
