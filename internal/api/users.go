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

type userRoutes struct {
	us  *service.UserService
	uqs *service.UserQuestEventService
}

func NewUserRoutes(handler *gin.RouterGroup, us *service.UserService, uqs *service.UserQuestEventService, a *auth.TokenAuth) {
	r := &userRoutes{us: us, uqs: uqs}
	h := handler.Group("/users")
	h.Use(a.Middleware())
	{
		h.POST("/", r.RegisterUser)
		h.GET("/", r.ListUsers)
		h.GET("/count", r.GetUserCount)
		h.GET("/index/:index", r.GetUserByIndex)
		h.GET("/wallet/:wallet", r.GetUserByWallet)
		h.GET("/:user_id", r.GetUser)
		h.PUT("/:user_id", r.UpdateUser)
		h.DELETE("/:user_id", r.DeleteUser)
		h.POST("/:user_id/quests", r.RegisterForQuest)
		h.GET("/:user_id/quests", r.GetRegisteredQuests)
		h.GET("/:user_id/quest-events", r.GetQuestsForUser)
	}
}

type RegisterUserRequest struct {
	Wallet string `json:"wallet" binding:"required"`
	Role   string `json:"role"`
}

func userResponse(u *model.User) gin.H {
	return gin.H{
		"user_id":           u.UserID,
		"wallet":            u.Wallet,
		"role":              u.Role,
		"registered_quests": u.RegisteredQuests,
	}
}

func (r *userRoutes) RegisterUser(c *gin.Context) {
	log := logger.Logger()

	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	id, err := r.us.RegisterUser(c.Request.Context(), p, &model.User{
		Wallet: req.Wallet,
		Role:   role,
	})
	if err != nil {
		log.Error("failed to register user", zap.Error(err))
		respondError(c, err, "User does not exist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": id, "wallet": req.Wallet})
}

func (r *userRoutes) GetUser(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	u, err := r.us.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "User does not exist")
		return
	}
	c.JSON(http.StatusOK, userResponse(u))
}

func (r *userRoutes) GetUserByWallet(c *gin.Context) {
	u, err := r.us.GetUserByWallet(c.Request.Context(), c.Param("wallet"))
	if err != nil {
		respondError(c, err, "User does not exist")
		return
	}
	c.JSON(http.StatusOK, userResponse(u))
}

type UpdateUserRequest struct {
	Wallet string `json:"wallet" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

func (r *userRoutes) UpdateUser(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	err := r.us.UpdateUser(c.Request.Context(), p, &model.User{
		UserID: id,
		Wallet: req.Wallet,
		Role:   req.Role,
	})
	if err != nil {
		log.Error("failed to update user", zap.Error(err))
		respondError(c, err, "User does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *userRoutes) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}
	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.us.DeleteUser(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "User does not exist")
		return
	}
	c.Status(http.StatusNoContent)
}

func (r *userRoutes) ListUsers(c *gin.Context) {
	users, err := r.us.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, "User does not exist")
		return
	}

	out := make([]gin.H, len(users))
	for i, u := range users {
		out[i] = userResponse(u)
	}
	c.JSON(http.StatusOK, out)
}

func (r *userRoutes) GetUserCount(c *gin.Context) {
	count, err := r.us.GetUserCount(c.Request.Context())
	if err != nil {
		respondError(c, err, "User does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (r *userRoutes) GetUserByIndex(c *gin.Context) {
	index, ok := parseID(c, "index")
	if !ok {
		return
	}

	u, err := r.us.GetUserByIndex(c.Request.Context(), index)
	if err != nil {
		respondError(c, err, "User does not exist")
		return
	}
	c.JSON(http.StatusOK, userResponse(u))
}

type RegisterForQuestRequest struct {
	QuestID int64 `json:"quest_id" binding:"required"`
}

func (r *userRoutes) RegisterForQuest(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	var req RegisterForQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	p, ok := callerPrincipal(c)
	if !ok {
		return
	}

	if err := r.us.RegisterForQuest(c.Request.Context(), p, id, req.QuestID); err != nil {
		log.Error("failed to register for quest", zap.Error(err))
		respondError(c, err, "User does not exist")
		return
	}
	c.Status(http.StatusCreated)
}

func (r *userRoutes) GetRegisteredQuests(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	quests, err := r.us.GetRegisteredQuests(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "User does not exist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quest_ids": quests})
}

func (r *userRoutes) GetQuestsForUser(c *gin.Context) {
	id, ok := parseID(c, "user_id")
	if !ok {
		return
	}

	events, err := r.uqs.GetQuestsForUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "User does not exist")
		return
	}

	out := make([]gin.H, len(events))
	for i, e := range events {
		out[i] = userQuestEventResponse(e)
	}
	c.JSON(http.StatusOK, out)
}
