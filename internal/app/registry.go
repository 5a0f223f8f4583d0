package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/djval79/careflow-sub001/internal/audit"
	"github.com/djval79/careflow-sub001/internal/config"
	"github.com/djval79/careflow-sub001/internal/deadletter"
	"github.com/djval79/careflow-sub001/internal/employee"
	"github.com/djval79/careflow-sub001/internal/leave"
	"github.com/djval79/careflow-sub001/internal/leaverule"
	"github.com/djval79/careflow-sub001/internal/messaging/kafka"
	"github.com/djval79/careflow-sub001/internal/middleware"
	"github.com/djval79/careflow-sub001/internal/rbac"
	"github.com/djval79/careflow-sub001/internal/rolemap"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg config.Config,
) error {
	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	deadletterRepo := deadletter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	rolemapRepo := rolemap.NewRepository(gormDB)
	ruleRepo := leaverule.NewRepository(gormDB)

	// --- RBAC ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	roleCache := rolemap.NewCache(rolemapRepo)
	syncService := employee.NewSyncService(db, employeeRepo, roleCache, outboxRepo)
	recorder := deadletter.NewRecorder(deadletterRepo)
	sweeper := deadletter.NewSweeper(deadletterRepo, syncService, auditRepo)
	leaveService := leave.NewService(db, leaveRepo, ruleRepo, auditRepo)
	ruleService := leaverule.NewService(db, ruleRepo)

	// --- Handlers ---
	deadletterHandler := deadletter.NewHandler(sweeper, deadletterRepo)
	employeeHandler := employee.NewHandlerWithRedis(syncService, recorder, rdb)
	leaveHandler := leave.NewHandler(leaveService)
	ruleHandler := leaverule.NewHandler(ruleService)

	// --- Routes ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		deadletter.RegisterRoutes(api, deadletterHandler, enforcer, cfg.JWTSecret)
		employee.RegisterRoutes(api, employeeHandler, enforcer, rdb, cfg.JWTSecret, cfg.SyncWebhookSecret)
		leave.RegisterRoutes(api, leaveHandler, cfg.JWTSecret)
		leaverule.RegisterRoutes(api, ruleHandler, enforcer, cfg.JWTSecret)
	}

	return nil
}
