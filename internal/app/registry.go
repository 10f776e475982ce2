package app

import (
	"database/sql"

	"github.com/roma-frontend/hr-tracker-sub000/internal/config"
	"github.com/roma-frontend/hr-tracker-sub000/internal/leave"
	"github.com/roma-frontend/hr-tracker-sub000/internal/messaging/kafka"
	"github.com/roma-frontend/hr-tracker-sub000/internal/middleware"
	"github.com/roma-frontend/hr-tracker-sub000/internal/notification"
	"github.com/roma-frontend/hr-tracker-sub000/internal/rbac"
	"github.com/roma-frontend/hr-tracker-sub000/internal/rbac/infra"
	"github.com/roma-frontend/hr-tracker-sub000/internal/rbac/rbac_http"
	"github.com/roma-frontend/hr-tracker-sub000/internal/sla"
	"github.com/roma-frontend/hr-tracker-sub000/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	slaRepo := sla.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	userService := user.NewService(userRepo, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	slaService := sla.NewService(slaRepo, logger)
	leaveOpts := leave.Options{
		SLATargetHours: cfg.Leave.SLATargetResponseHours,
		StatsCacheTTL:  cfg.Leave.StatsCacheTTL,
	}
	var leaveService leave.Service
	if cfg.Kafka.Broker != "" {
		leaveService = leave.NewServiceWithOutbox(db, leaveRepo, userRepo, notificationRepo, slaRepo, outboxRepo, rdb, leaveOpts, logger)
	} else {
		leaveService = leave.NewService(db, leaveRepo, userRepo, notificationRepo, slaRepo, rdb, leaveOpts, logger)
	}

	// --- Handlers ---
	userHandler := user.NewHandler(userService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	notificationHandler := notification.NewHandler(notificationService)
	slaHandler := sla.NewHandler(slaService)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.AuthMiddleware(cfg.Auth.JWTSecret),
		middleware.RateLimitByIP(20, 40),
	)
	{
		user.RegisterRoutes(api, userHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		sla.RegisterRoutes(api, slaHandler, rbacService)
		rbac_http.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
