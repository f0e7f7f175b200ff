package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agroplan/backoffice/internal/api/handler"
	"github.com/agroplan/backoffice/internal/api/middleware"
	"github.com/agroplan/backoffice/internal/core/domain"
	"github.com/agroplan/backoffice/internal/core/service"
	mongodb "github.com/agroplan/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/agroplan/backoffice/internal/infrastructure/db/redis"
	"github.com/agroplan/backoffice/internal/pkg/config"
	"github.com/agroplan/backoffice/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("backoffice"))

	log := logger.Get()

	// --- Dependencies ---
	projectRepo := mongodb.NewProjectRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	ledgerRepo := mongodb.NewLedgerRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	stateCache := redisdb.NewStateCache(rdb)

	gateway := service.NewGateway(service.Policy{
		DeleteBypassesClose: cfg.DeleteBypassesClose,
	}, log)

	projectService := service.NewProjectService(projectRepo, gateway, auditRepo, stateCache, log)
	userService := service.NewUserService(userRepo, gateway, auditRepo, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	auditService := service.NewAuditService(auditRepo, gateway)

	laborService := service.NewLedgerService(domain.KindHumanResource, ledgerRepo, projectRepo, gateway, auditRepo, stateCache, log)
	materialService := service.NewLedgerService(domain.KindMaterial, ledgerRepo, projectRepo, gateway, auditRepo, stateCache, log)
	actionPlanService := service.NewLedgerService(domain.KindActionPlan, ledgerRepo, projectRepo, gateway, auditRepo, stateCache, log)

	projectHandler := handler.NewProjectHandler(projectService)
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	auditHandler := handler.NewAuditHandler(auditService)
	laborHandler := handler.NewLedgerHandler(laborService)
	materialHandler := handler.NewLedgerHandler(materialService)
	actionPlanHandler := handler.NewLedgerHandler(actionPlanService)

	auth := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Projects ---
	v1 := e.Group("/v1", auth)

	v1.POST("/projects", projectHandler.Create, middleware.RBAC(domain.RoleAdmin))
	v1.GET("/projects", projectHandler.List)
	v1.GET("/projects/:id", projectHandler.Get)
	v1.PUT("/projects/:id", projectHandler.Update, middleware.RBAC(domain.RoleAdmin, domain.RoleGerente))
	v1.PATCH("/projects/:id/state", projectHandler.SetState, middleware.RBAC(domain.RoleAdmin, domain.RoleGerente))
	v1.DELETE("/projects/:id", projectHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Resource ledgers ---
	// One route set per ledger kind; the handlers share identical semantics
	// and differ only in the service instance behind them.
	registerLedger := func(segment string, h *handler.LedgerHandler) {
		canWrite := middleware.RBAC(domain.RoleAdmin, domain.RoleGerente)

		v1.GET("/projects/:id/"+segment, h.List)
		v1.POST("/projects/:id/"+segment, h.Create, canWrite)
		v1.PUT("/"+segment+"/:lineID", h.Update, canWrite)
		v1.DELETE("/"+segment+"/:lineID", h.Delete, canWrite)
	}
	registerLedger("labor", laborHandler)
	registerLedger("materials", materialHandler)
	registerLedger("action-plans", actionPlanHandler)

	// --- Users ---
	// Project assignment is the one user operation gerentes may perform.
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	v1.POST("/users", userHandler.Create, adminOnly)
	v1.GET("/users", userHandler.List, adminOnly)
	v1.PATCH("/users/:id/role", userHandler.ChangeRole, adminOnly)
	v1.PATCH("/users/:id/project", userHandler.AssignProject, middleware.RBAC(domain.RoleAdmin, domain.RoleGerente))
	v1.DELETE("/users/:id", userHandler.Delete, adminOnly)

	// --- Audit trail (admin only) ---
	v1.GET("/audit", auditHandler.List, adminOnly)

	return e
}
