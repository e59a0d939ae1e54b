package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dossinstitute/eventquest/internal/quest"
	"github.com/dossinstitute/eventquest/internal/repository"
	"github.com/dossinstitute/eventquest/internal/service"
	"github.com/dossinstitute/eventquest/pkg/auth"
	"github.com/dossinstitute/eventquest/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError translates service and domain errors into HTTP responses.
// notFoundMsg names the entity for repository-level not-found errors so each
// route group reports its own resource.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admin can perform this action"})
	case errors.Is(err, service.ErrIndexOutOfBounds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index out of bounds"})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User already registered"})
	case errors.Is(err, service.ErrUserNotRegistered):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not registered"})
	case errors.Is(err, service.ErrQuestExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Quest ID already exists."})
	case errors.Is(err, service.ErrQuestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Quest ID does not exist."})
	case errors.Is(err, service.ErrInvalidInteractions):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Required interactions must be at least three"})
	case errors.Is(err, service.ErrRewardTypeRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reward type must be specified"})
	case errors.Is(err, service.ErrRewardNotConfigured):
		c.JSON(http.StatusNotFound, gin.H{"error": "No reward configured for this quest"})
	case errors.Is(err, service.ErrRewardDistributed):
		c.JSON(http.StatusConflict, gin.H{"error": "Reward already distributed"})
	case errors.Is(err, quest.ErrNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": "Quest is not active"})
	case errors.Is(err, quest.ErrExpired):
		c.JSON(http.StatusConflict, gin.H{"error": "Quest has expired"})
	case errors.Is(err, quest.ErrMissingHashtags):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Required hashtags are missing."})
	case errors.Is(err, quest.ErrInvalidTarget), errors.Is(err, quest.ErrUnknownAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interaction"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// duplicateMessage picks the variant-specific wording for a repeated
// interaction.
func duplicateMessage(action string) string {
	switch action {
	case quest.ActionVisit:
		return "Location already interacted with."
	case quest.ActionAnswer:
		return "Question already answered."
	default:
		return "interaction already recorded"
	}
}

// callerPrincipal returns the authenticated principal or writes a 500 when
// the middleware did not run.
func callerPrincipal(c *gin.Context) (auth.Principal, bool) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		logger.Logger().Error("principal not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return auth.Principal{}, false
	}
	return *p, true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return id, true
}
