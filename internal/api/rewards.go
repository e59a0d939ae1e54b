package api

import (
	"math/big"
	"net/http"

	"github.com/dossinstitute/eventquest/internal/model"
	"github.com/dossinstitute/eventquest/internal/service"
	"github.com/dossinstitute/eventquest/pkg/auth"
	"github.com/dossinstitute/eventquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type rewardRoutes struct {
	es *service.RewardEntityService
	rs *service.RewardService
}

func NewRewardRoutes(handler *gin.RouterGroup, es *service.RewardEntityService, rs *service.RewardService, a *auth.TokenAuth) {
	r := &rewardRoutes{es: es, rs: rs}

	h := handler.Group("/rewards")
	h.Use(a.Middleware())
	{
		h.POST("/", r.CreateReward)
		h.GET("/", r.ListRewards)
		h.GET("/count", r.GetRewardCount)
		h.GET("/index/:index", r.GetRewardByIndex)
		h.GET("/:reward_id", r.GetReward)
		h.PUT("/:reward_id", r.UpdateReward)
		h.DELETE("/:reward_id", r.DeleteReward)
	}

	pools := handler.Group("/reward-pools")
	pools.Use(a.Middleware())
	{
		pools.POST("/", r.CreateRewardPool)
		pools.GET("/", r.ListRewardPools)
		pools.GET("/count", r.GetRewardPoolCount)
		pools.GET("/index/:index", r.GetRewardPoolByIndex)
		pools.GET("/:pool_id", r.GetRewardPool)
		pools.PUT("/:pool_id", r.UpdateRewardPool)
		pools.DELETE("/:pool_id", r.DeleteRewardPool)
	}

	dist := handler.Group("/distributions")
	dist.Use(a.Middleware())
	{
		dist.PUT("/:quest_id/config", r.SetReward)
		dist.GET("/:quest_id/config", r.GetRewardConfig)
		dist.POST("/:quest_id", r.DistributeReward)
		dist.GET("/:quest_id/status/:recipient", r.GetDistributionStatus)
		dist.GET("/:quest_id/record/:recipient", r.GetDistribution)
	}
}

type RewardRequest struct {
	AttendeeID        int64  `json:"attendee_id" binding:"required"`
	RewardPoolID      int64  `json:"reward_pool_id" binding:"required"`
	Amount            int64  `json:"amount"`
	RewardType        string `json:"reward_type"`
	PoolWalletAddress string `json:"pool_wallet_address"`
}

func rewardResponse(rw *model.Reward) gin.H {
	return gin.H{
		"reward_id":           rw.RewardID,
		"attendee_id":         rw.AttendeeID,
		"reward_pool_id":      rw.RewardPoolID,
		"amount":              rw.Amount,
		"reward_type":         rw.RewardType,
		"pool_wallet_address": rw.PoolWalletAddress,
	}
}

func (r *rewardRoutes) CreateReward(c *gin.Context) {
	log := logger.Logger()

	var req RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	id, err := r.es.CreateReward(c.Request.Context(), p, &model.Reward{
		AttendeeID:        req.AttendeeID,
		RewardPoolID:      req.RewardPoolID,
		Amount:            req.Amount,
		RewardType:        req.RewardType,
		PoolWalletAddress: req.PoolWalletAddress,
	})
	if err != nil {
		log.Error("failed to create reward", zap.Error(err))
		respondError(c, err, "Reward does not exist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reward_id": id})
}

func (r *rewardRoutes) GetReward(c *gin.Context) {
	id, ok := parseID(c, "reward_id")
	if !ok {
		return
	}

	rw, err := r.es.GetReward(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Reward does not exist")
		return
	}
	c.JSON(http.StatusOK, rewardResponse(rw))
}

func (r *rewardRoutes) UpdateReward(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "reward_id")
	if !ok {
		return
	}

	var req RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.es.UpdateReward(c.Request.Context(), p, &model.Reward{
		RewardID:          id,
		AttendeeID:        req.AttendeeID,
		RewardPoolID:      req.RewardPoolID,
		Amount:            req.Amount,
		RewardType:        req.RewardType,
		PoolWalletAddress: req.PoolWalletAddress,
	})
	if err != nil {
		log.Error("failed to update reward", zap.Error(err))
		respondError(c, err, "Reward does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *rewardRoutes) DeleteReward(c *gin.Context) {
	id, ok := parseID(c, "reward_id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.es.DeleteReward(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "Reward does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *rewardRoutes) ListRewards(c *gin.Context) {
	rewards, err := r.es.ListRewards(c.Request.Context())
	if err != nil {
		respondError(c, err, "Reward does not exist")
		return
	}

	out := make([]gin.H, len(rewards))
	for i, rw := range rewards {
		out[i] = rewardResponse(rw)
	}
	c.JSON(http.StatusOK, out)
}

func (r *rewardRoutes) GetRewardCount(c *gin.Context) {
	count, err := r.es.GetRewardCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "Reward does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (r *rewardRoutes) GetRewardByIndex(c *gin.Context) {
	index, ok := parseID(c, "index")
	if !ok {
		return
	}

	rw, err := r.es.GetRewardByIndex(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "Reward does not exist")
		return
	}
	c.JSON(http.StatusOK, rewardResponse(rw))
}

type RewardPoolRequest struct {
	TransferAmount int64 `json:"transfer_amount" binding:"required"`
	QuestEventID   int64 `json:"quest_event_id" binding:"required"`
	SponsorID      int64 `json:"sponsor_id" binding:"required"`
}

func rewardPoolResponse(p *model.RewardPool) gin.H {
	return gin.H{
		"reward_pool_id":  p.RewardPoolID,
		"transfer_amount": p.TransferAmount,
		"quest_event_id":  p.QuestEventID,
		"sponsor_id":      p.SponsorID,
	}
}

func (r *rewardRoutes) CreateRewardPool(c *gin.Context) {
	log := logger.Logger()

	var req RewardPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	id, err := r.es.CreateRewardPool(c.Request.Context(), p, &model.RewardPool{
		TransferAmount: req.TransferAmount,
		QuestEventID:   req.QuestEventID,
		SponsorID:      req.SponsorID,
	})
	if err != nil {
		log.Error("failed to create reward pool", zap.Error(err))
		respondError(c, err, "QuestEvent does not exist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reward_pool_id": id})
}

func (r *rewardRoutes) GetRewardPool(c *gin.Context) {
	id, ok := parseID(c, "pool_id")
	if !ok {
		return
	}

	pool, err := r.es.GetRewardPool(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "RewardPool does not exist")
		return
	}
	c.JSON(http.StatusOK, rewardPoolResponse(pool))
}

func (r *rewardRoutes) UpdateRewardPool(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "pool_id")
	if !ok {
		return
	}

	var req RewardPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.es.UpdateRewardPool(c.Request.Context(), p, &model.RewardPool{
		RewardPoolID:   id,
		TransferAmount: req.TransferAmount,
		QuestEventID:   req.QuestEventID,
		SponsorID:      req.SponsorID,
	})
	if err != nil {
		log.Error("failed to update reward pool", zap.Error(err))
		respondError(c, err, "RewardPool does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *rewardRoutes) DeleteRewardPool(c *gin.Context) {
	id, ok := parseID(c, "pool_id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.es.DeleteRewardPool(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "RewardPool does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *rewardRoutes) ListRewardPools(c *gin.Context) {
	pools, err := r.es.ListRewardPools(c.Request.Context())
	if err != nil {
		respondError(c, err, "RewardPool does not exist")
		return
	}

	out := make([]gin.H, len(pools))
	for i, pool := range pools {
		out[i] = rewardPoolResponse(pool)
	}
	c.JSON(http.StatusOK, out)
}

func (r *rewardRoutes) GetRewardPoolCount(c *gin.Context) {
	count, err := r.es.GetRewardPoolCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "RewardPool does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (r *rewardRoutes) GetRewardPoolByIndex(c *gin.Context) {
	index, ok := parseID(c, "index")
	if !ok {
		return
	}

	pool, err := r.es.GetRewardPoolByIndex(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "RewardPool does not exist")
		return
	}
	c.JSON(http.StatusOK, rewardPoolResponse(pool))
}

type SetRewardRequest struct {
	RewardType   string `json:"reward_type" binding:"required"`
	TokenAddress string `json:"token_address" binding:"required"`
	Tier         int    `json:"tier"`
	Amount       string `json:"amount" binding:"required"`
}

func (r *rewardRoutes) SetReward(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	var req SetRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	amount, ok2 := new(big.Int).SetString(req.Amount, 10)
	if !ok2 || amount.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.rs.SetReward(c.Request.Context(), p, &model.RewardConfig{
		QuestID:      id,
		RewardType:   req.RewardType,
		TokenAddress: req.TokenAddress,
		Tier:         req.Tier,
		Amount:       amount,
	})
	if err != nil {
		log.Error("failed to set reward", zap.Error(err))
		respondError(c, err, "Quest ID does not exist.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *rewardRoutes) GetRewardConfig(c *gin.Context) {
	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	config, err := r.rs.GetReward(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Quest ID does not exist.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quest_id":      config.QuestID,
		"reward_type":   config.RewardType,
		"token_address": config.TokenAddress,
		"tier":          config.Tier,
		"amount":        config.Amount.String(),
	})
}

type DistributeRewardRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

func (r *rewardRoutes) DistributeReward(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	var req DistributeRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	txRef, err := r.rs.DistributeReward(c.Request.Context(), p, id, req.Recipient)
	if err != nil {
		log.Error("failed to distribute reward",
			zap.Int64("quest_id", id),
			zap.String("recipient", req.Recipient),
			zap.Error(err))
		respondError(c, err, "Quest ID does not exist.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quest_id":  id,
		"recipient": req.Recipient,
		"tx_ref":    txRef,
	})
}

func (r *rewardRoutes) GetDistributionStatus(c *gin.Context) {
	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	distributed, err := r.rs.IsRewardDistributed(c.Request.Context(), id, c.Param("recipient"))
	if err != nil {
		respondError(c, err, "Quest ID does not exist.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"distributed": distributed})
}

func (r *rewardRoutes) GetDistribution(c *gin.Context) {
	id, ok := parseID(c, "quest_id")
	if !ok {
		return
	}

	d, err := r.rs.GetDistribution(c.Request.Context(), id, c.Param("recipient"))
	if err != nil {
		respondError(c, err, "Quest ID does not exist.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quest_id":       d.QuestID,
		"recipient":      d.Recipient,
		"tx_ref":         d.TxRef,
		"distributed_at": d.DistributedAt,
	})
}
