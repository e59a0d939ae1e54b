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

type sponsorRoutes struct {
	s *service.SponsorService
}

func NewSponsorRoutes(handler *gin.RouterGroup, s *service.SponsorService, a *auth.TokenAuth) {
	r := &sponsorRoutes{s: s}
	h := handler.Group("/sponsors")
	h.Use(a.Middleware())
	{
		h.POST("/", r.CreateSponsor)
		h.GET("/", r.ListSponsors)
		h.GET("/count", r.GetSponsorCount)
		h.GET("/index/:index", r.GetSponsorByIndex)
		h.GET("/:sponsor_id", r.GetSponsor)
		h.PUT("/:sponsor_id", r.UpdateSponsor)
		h.DELETE("/:sponsor_id", r.DeleteSponsor)
		h.GET("/:sponsor_id/quest-events", r.GetSponsorQuestEvents)
	}
}

type SponsorRequest struct {
	CompanyName  string `json:"company_name" binding:"required"`
	Wallet       string `json:"wallet" binding:"required"`
	RewardPoolID int64  `json:"reward_pool_id"`
}

func sponsorResponse(s *model.Sponsor) gin.H {
	return gin.H{
		"sponsor_id":     s.SponsorID,
		"company_name":   s.CompanyName,
		"wallet":         s.Wallet,
		"reward_pool_id": s.RewardPoolID,
	}
}

func (r *sponsorRoutes) CreateSponsor(c *gin.Context) {
	log := logger.Logger()

	var req SponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	id, err := r.s.CreateSponsor(c.Request.Context(), p, &model.Sponsor{
		CompanyName:  req.CompanyName,
		Wallet:       req.Wallet,
		RewardPoolID: req.RewardPoolID,
	})
	if err != nil {
		log.Error("failed to create sponsor", zap.Error(err))
		respondError(c, err, "Sponsor does not exist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sponsor_id": id})
}

func (r *sponsorRoutes) GetSponsor(c *gin.Context) {
	id, ok := parseID(c, "sponsor_id")
	if !ok {
		return
	}

	s, err := r.s.GetSponsor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Sponsor does not exist")
		return
	}
	c.JSON(http.StatusOK, sponsorResponse(s))
}

func (r *sponsorRoutes) UpdateSponsor(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "sponsor_id")
	if !ok {
		return
	}

	var req SponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.s.UpdateSponsor(c.Request.Context(), p, &model.Sponsor{
		SponsorID:    id,
		CompanyName:  req.CompanyName,
		Wallet:       req.Wallet,
		RewardPoolID: req.RewardPoolID,
	})
	if err != nil {
		log.Error("failed to update sponsor", zap.Error(err))
		respondError(c, err, "Sponsor does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *sponsorRoutes) DeleteSponsor(c *gin.Context) {
	id, ok := parseID(c, "sponsor_id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.s.DeleteSponsor(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "Sponsor does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *sponsorRoutes) ListSponsors(c *gin.Context) {
	sponsors, err := r.s.ListSponsors(c.Request.Context())
	if err != nil {
		respondError(c, err, "Sponsor does not exist")
		return
	}

	out := make([]gin.H, len(sponsors))
	for i, s := range sponsors {
		out[i] = sponsorResponse(s)
	}
	c.JSON(http.StatusOK, out)
}

func (r *sponsorRoutes) GetSponsorCount(c *gin.Context) {
	count, err := r.s.GetSponsorCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "Sponsor does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (r *sponsorRoutes) GetSponsorByIndex(c *gin.Context) {
	index, ok := parseID(c, "index")
	if !ok {
		return
	}

	s, err := r.s.GetSponsorByIndex(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "Sponsor does not exist")
		return
	}
	c.JSON(http.StatusOK, sponsorResponse(s))
}

func (r *sponsorRoutes) GetSponsorQuestEvents(c *gin.Context) {
	id, ok := parseID(c, "sponsor_id")
	if !ok {
		return
	}

	events, err := r.s.GetSponsorQuestEvents(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Sponsor does not exist")
		return
	}

	out := make([]gin.H, len(events))
	for i, e := range events {
		out[i] = questEventResponse(e)
	}
	c.JSON(http.StatusOK, out)
}
