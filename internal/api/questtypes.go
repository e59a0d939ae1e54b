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

type questTypeRoutes struct {
	qts *service.QuestTypeService
}

func NewQuestTypeRoutes(handler *gin.RouterGroup, qts *service.QuestTypeService, a *auth.TokenAuth) {
	r := &questTypeRoutes{qts: qts}

	h := handler.Group("/quest-types")
	h.Use(a.Middleware())
	{
		h.POST("/", r.CreateQuestType)
		h.GET("/", r.ListQuestTypes)
		h.GET("/count", r.GetQuestTypeCount)
		h.GET("/index/:index", r.GetQuestTypeByIndex)
		h.GET("/:quest_type_id", r.GetQuestType)
		h.PUT("/:quest_type_id", r.UpdateQuestType)
		h.DELETE("/:quest_type_id", r.DeleteQuestType)
	}

	reqs := handler.Group("/sponsor-requirements")
	reqs.Use(a.Middleware())
	{
		reqs.POST("/", r.CreateSponsorQuestRequirement)
		reqs.GET("/", r.ListSponsorQuestRequirements)
		reqs.GET("/count", r.GetSponsorQuestRequirementCount)
		reqs.GET("/index/:index", r.GetSponsorQuestRequirementByIndex)
		reqs.GET("/:requirement_id", r.GetSponsorQuestRequirement)
		reqs.PUT("/:requirement_id", r.UpdateSponsorQuestRequirement)
		reqs.DELETE("/:requirement_id", r.DeleteSponsorQuestRequirement)
	}
}

type QuestTypeRequest struct {
	Name                            string `json:"name" binding:"required"`
	Description                     string `json:"description"`
	ScreenName                      string `json:"screen_name"`
	QuestContractName               string `json:"quest_contract_name"`
	QuestContractAddress            string `json:"quest_contract_address"`
	SponsorRequirementsContractName string `json:"sponsor_requirements_contract_name"`
	SponsorRequirementsAddress      string `json:"sponsor_requirements_address"`
}

func questTypeResponse(q *model.QuestType) gin.H {
	return gin.H{
		"quest_type_id":                      q.QuestTypeID,
		"name":                               q.Name,
		"description":                        q.Description,
		"screen_name":                        q.ScreenName,
		"quest_contract_name":                q.QuestContractName,
		"quest_contract_address":             q.QuestContractAddress,
		"sponsor_requirements_contract_name": q.SponsorRequirementsContractName,
		"sponsor_requirements_address":       q.SponsorRequirementsAddress,
	}
}

func (r *questTypeRoutes) CreateQuestType(c *gin.Context) {
	log := logger.Logger()

	var req QuestTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	id, err := r.qts.CreateQuestType(c.Request.Context(), p, &model.QuestType{
		Name:                            req.Name,
		Description:                     req.Description,
		ScreenName:                      req.ScreenName,
		QuestContractName:               req.QuestContractName,
		QuestContractAddress:            req.QuestContractAddress,
		SponsorRequirementsContractName: req.SponsorRequirementsContractName,
		SponsorRequirementsAddress:      req.SponsorRequirementsAddress,
	})
	if err != nil {
		log.Error("failed to create quest type", zap.Error(err))
		respondError(c, err, "QuestType does not exist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"quest_type_id": id})
}

func (r *questTypeRoutes) GetQuestType(c *gin.Context) {
	id, ok := parseID(c, "quest_type_id")
	if !ok {
		return
	}

	q, err := r.qts.GetQuestType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "QuestType does not exist")
		return
	}
	c.JSON(http.StatusOK, questTypeResponse(q))
}

func (r *questTypeRoutes) UpdateQuestType(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "quest_type_id")
	if !ok {
		return
	}

	var req QuestTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.qts.UpdateQuestType(c.Request.Context(), p, &model.QuestType{
		QuestTypeID:                     id,
		Name:                            req.Name,
		Description:                     req.Description,
		ScreenName:                      req.ScreenName,
		QuestContractName:               req.QuestContractName,
		QuestContractAddress:            req.QuestContractAddress,
		SponsorRequirementsContractName: req.SponsorRequirementsContractName,
		SponsorRequirementsAddress:      req.SponsorRequirementsAddress,
	})
	if err != nil {
		log.Error("failed to update quest type", zap.Error(err))
		respondError(c, err, "QuestType does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *questTypeRoutes) DeleteQuestType(c *gin.Context) {
	id, ok := parseID(c, "quest_type_id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.qts.DeleteQuestType(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "QuestType does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *questTypeRoutes) ListQuestTypes(c *gin.Context) {
	types, err := r.qts.ListQuestTypes(c.Request.Context())
	if err != nil {
		respondError(c, err, "QuestType does not exist")
		return
	}

	out := make([]gin.H, len(types))
	for i, q := range types {
		out[i] = questTypeResponse(q)
	}
	c.JSON(http.StatusOK, out)
}

func (r *questTypeRoutes) GetQuestTypeCount(c *gin.Context) {
	count, err := r.qts.GetQuestTypeCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "QuestType does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (r *questTypeRoutes) GetQuestTypeByIndex(c *gin.Context) {
	index, ok := parseID(c, "index")
	if !ok {
		return
	}

	q, err := r.qts.GetQuestTypeByIndex(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "QuestType does not exist")
		return
	}
	c.JSON(http.StatusOK, questTypeResponse(q))
}

type SponsorQuestRequirementRequest struct {
	QuestEventID            int64    `json:"quest_event_id" binding:"required"`
	QuestTypeID             int64    `json:"quest_type_id" binding:"required"`
	SponsorHashtags         []string `json:"sponsor_hashtags"`
	SponsorHashtagsRequired bool     `json:"sponsor_hashtags_required"`
}

func sponsorRequirementResponse(req *model.SponsorQuestRequirement) gin.H {
	return gin.H{
		"sponsor_quest_requirement_id": req.SponsorQuestRequirementID,
		"quest_event_id":               req.QuestEventID,
		"quest_type_id":                req.QuestTypeID,
		"sponsor_hashtags":             req.SponsorHashtags,
		"sponsor_hashtags_required":    req.SponsorHashtagsRequired,
	}
}

func (r *questTypeRoutes) CreateSponsorQuestRequirement(c *gin.Context) {
	log := logger.Logger()

	var req SponsorQuestRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	id, err := r.qts.CreateSponsorQuestRequirement(c.Request.Context(), p, &model.SponsorQuestRequirement{
		QuestEventID:            req.QuestEventID,
		QuestTypeID:             req.QuestTypeID,
		SponsorHashtags:         req.SponsorHashtags,
		SponsorHashtagsRequired: req.SponsorHashtagsRequired,
	})
	if err != nil {
		log.Error("failed to create sponsor requirement", zap.Error(err))
		respondError(c, err, "SponsorQuestRequirement does not exist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sponsor_quest_requirement_id": id})
}

func (r *questTypeRoutes) GetSponsorQuestRequirement(c *gin.Context) {
	id, ok := parseID(c, "requirement_id")
	if !ok {
		return
	}

	req, err := r.qts.GetSponsorQuestRequirement(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "SponsorQuestRequirement does not exist")
		return
	}
	c.JSON(http.StatusOK, sponsorRequirementResponse(req))
}

func (r *questTypeRoutes) UpdateSponsorQuestRequirement(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "requirement_id")
	if !ok {
		return
	}

	var req SponsorQuestRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.qts.UpdateSponsorQuestRequirement(c.Request.Context(), p, &model.SponsorQuestRequirement{
		SponsorQuestRequirementID: id,
		QuestEventID:              req.QuestEventID,
		QuestTypeID:               req.QuestTypeID,
		SponsorHashtags:           req.SponsorHashtags,
		SponsorHashtagsRequired:   req.SponsorHashtagsRequired,
	})
	if err != nil {
		log.Error("failed to update sponsor requirement", zap.Error(err))
		respondError(c, err, "SponsorQuestRequirement does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *questTypeRoutes) DeleteSponsorQuestRequirement(c *gin.Context) {
	id, ok := parseID(c, "requirement_id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.qts.DeleteSponsorQuestRequirement(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "SponsorQuestRequirement does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *questTypeRoutes) ListSponsorQuestRequirements(c *gin.Context) {
	reqs, err := r.qts.ListSponsorQuestRequirements(c.Request.Context())
	if err != nil {
		respondError(c, err, "SponsorQuestRequirement does not exist")
		return
	}

	out := make([]gin.H, len(reqs))
	for i, req := range reqs {
		out[i] = sponsorRequirementResponse(req)
	}
	c.JSON(http.StatusOK, out)
}

func (r *questTypeRoutes) GetSponsorQuestRequirementCount(c *gin.Context) {
	count, err := r.qts.GetSponsorQuestRequirementCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "SponsorQuestRequirement does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (r *questTypeRoutes) GetSponsorQuestRequirementByIndex(c *gin.Context) {
	index, ok := parseID(c, "index")
	if !ok {
		return
	}

	req, err := r.qts.GetSponsorQuestRequirementByIndex(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "SponsorQuestRequirement does not exist")
		return
	}
	c.JSON(http.StatusOK, sponsorRequirementResponse(req))
}
