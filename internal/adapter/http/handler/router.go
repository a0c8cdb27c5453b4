package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/samuelarogbonlo/tata-pay/internal/adapter/http/middleware"
	redisStore "github.com/samuelarogbonlo/tata-pay/internal/adapter/storage/redis"
	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	TokenSvc       ports.TokenService
	LedgerSvc      ports.LedgerService
	SettlementSvc  ports.SettlementService
	OracleSvc      ports.OracleService
	GovernanceSvc  ports.GovernanceService
	FraudSvc       ports.FraudService
	EventRepo      ports.EventRepository
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- Authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.AuthSvc, deps.Logger)

	ledgerHandler := NewLedgerHandler(deps.LedgerSvc)
	collateral := v1.Group("/collateral", jwtAuth)
	{
		collateral.POST("/deposit", rl("deposits"), ledgerHandler.Deposit)
		collateral.POST("/withdrawals", rl("deposits"), ledgerHandler.RequestWithdrawal)
		collateral.POST("/withdrawals/execute", rl("deposits"), ledgerHandler.ExecuteWithdrawal)
		collateral.DELETE("/withdrawals", rl("deposits"), ledgerHandler.CancelWithdrawal)
		collateral.GET("/accounts/:principal", rl("read"), ledgerHandler.GetAccount)
		collateral.GET("/accounts/:principal/withdrawal", rl("read"), ledgerHandler.GetWithdrawal)

		admin := collateral.Group("")
		admin.POST("/emergency-withdraw", middleware.RequireRole(domain.RoleAdmin), ledgerHandler.EmergencyWithdraw)
		admin.POST("/slash", middleware.RequireRole(domain.RoleSlasher), ledgerHandler.Slash)
	}

	batchHandler := NewBatchHandler(deps.SettlementSvc, deps.FraudSvc, deps.EventRepo)
	oracleHandler := NewOracleHandler(deps.OracleSvc)
	batches := v1.Group("/batches", jwtAuth)
	{
		batches.POST("", rl("batches"), batchHandler.Create)
		batches.GET("", rl("read"), batchHandler.List)
		batches.GET("/:id", rl("read"), batchHandler.Get)
		batches.GET("/:id/events", rl("read"), batchHandler.Events)
		batches.POST("/:id/approve", rl("batches"), batchHandler.Approve)
		batches.POST("/:id/claim", rl("claims"), batchHandler.Claim)
		batches.POST("/:id/cancel", rl("batches"), batchHandler.Cancel)
		batches.POST("/:id/fail", rl("batches"), batchHandler.Fail)
		batches.POST("/:id/timeout", rl("batches"), batchHandler.Timeout)
		batches.POST("/:id/votes", rl("votes"), oracleHandler.Vote)
		batches.GET("/:id/votes", rl("read"), oracleHandler.GetVotes)
	}

	oracles := v1.Group("/oracles", jwtAuth)
	{
		oracles.POST("/register", rl("batches"), oracleHandler.Register)
		oracles.POST("/deregister", rl("batches"), oracleHandler.Deregister)
		oracles.GET("/:id", rl("read"), oracleHandler.Get)
		oracles.PUT("/threshold", middleware.RequireRole(domain.RoleAdmin), oracleHandler.SetThreshold)
		oracles.POST("/:id/slash", middleware.RequireRole(domain.RoleSlasher), oracleHandler.Slash)
		oracles.POST("/:id/activate", middleware.RequireRole(domain.RoleAdmin), oracleHandler.Activate)
		oracles.POST("/:id/deactivate", middleware.RequireRole(domain.RoleAdmin), oracleHandler.Deactivate)
	}

	governanceHandler := NewGovernanceHandler(deps.GovernanceSvc)
	governance := v1.Group("/governance/proposals", jwtAuth, middleware.RequireRole(domain.RoleAdmin))
	{
		governance.POST("", rl("governance"), governanceHandler.Propose)
		governance.GET("/:id", rl("read"), governanceHandler.Get)
		governance.POST("/:id/approve", rl("governance"), governanceHandler.Approve)
		governance.POST("/:id/execute", rl("governance"), governanceHandler.Execute)
		governance.POST("/:id/cancel", rl("governance"), governanceHandler.Cancel)
	}

	fraudHandler := NewFraudHandler(deps.FraudSvc)
	fraud := v1.Group("/fraud", jwtAuth)
	{
		fraud.PUT("/limits", middleware.RequireRole(domain.RoleFraudCaller), fraudHandler.SetLimit)
		fraud.GET("/limits/:principal", rl("read"), fraudHandler.GetLimit)
	}

	return r
}
