package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dossinstitute/eventquest/internal/api"
	"github.com/dossinstitute/eventquest/internal/metrics"
	"github.com/dossinstitute/eventquest/internal/repository"
	"github.com/dossinstitute/eventquest/internal/service"
	"github.com/dossinstitute/eventquest/internal/token"
	"github.com/dossinstitute/eventquest/pkg/auth"
	"github.com/dossinstitute/eventquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	if err := repo.Migrate(); err != nil {
		zapLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	evmClient, err := token.Dial(cfg.EVM.Endpoint)
	if err != nil {
		zapLogger.Fatal("Failed to connect to EVM endpoint", zap.Error(err))
	}
	signer, err := token.NewSigner(cfg.EVM.PrivateKey)
	if err != nil {
		zapLogger.Fatal("Failed to load distribution signer", zap.Error(err))
	}
	transferor := token.NewClient(evmClient, signer, cfg.EVM.GasLimit)

	hub := api.NewCompletionHub()
	defer hub.Close()

	svc := service.NewService(
		service.NewEventService(repo),
		service.NewQuestService(repo),
		service.NewUserService(repo, repo),
		service.NewSponsorService(repo, repo),
		service.NewQuestEventService(repo),
		service.NewUserQuestEventService(repo),
		service.NewRewardEntityService(repo, repo),
		service.NewQuestTypeService(repo),
		service.NewRegistryService(repo),
		service.NewInstanceService(repo, hub),
		service.NewRewardService(repo, transferor),
	)

	tokenAuth := auth.NewTokenAuth(cfg.Auth.Secret)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	a := router.Group("/api/v1")
	api.NewEventRoutes(a, svc.EventService, tokenAuth)
	api.NewQuestRoutes(a, svc.QuestService, tokenAuth)
	api.NewUserRoutes(a, svc.UserService, svc.UserQuestEventService, tokenAuth)
	api.NewSponsorRoutes(a, svc.SponsorService, tokenAuth)
	api.NewQuestEventRoutes(a, svc.QuestEventService, svc.UserQuestEventService, tokenAuth)
	api.NewRewardRoutes(a, svc.RewardEntityService, svc.RewardService, tokenAuth)
	api.NewQuestTypeRoutes(a, svc.QuestTypeService, tokenAuth)
	api.NewRegistryRoutes(a, svc.RegistryService, tokenAuth)
	api.NewInstanceRoutes(a, svc.InstanceService, tokenAuth)
	api.NewCompletionRoutes(a, hub)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
