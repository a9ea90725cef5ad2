package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ticket-board-api/internal/cache"
	"ticket-board-api/internal/client"
	"ticket-board-api/internal/config"
	"ticket-board-api/internal/handler"
	"ticket-board-api/internal/metrics"
	"ticket-board-api/internal/middleware"
	"ticket-board-api/internal/repository"
	"ticket-board-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB         *gorm.DB
	Logger     *zap.Logger
	JWT        config.JWTConfig
	BasePath   string
	Metrics    *metrics.Metrics
	S3Client   client.S3ClientInterface
	BoardCache *cache.BoardCache
	Blacklist  *cache.TokenBlacklist
	Hub        *handler.Hub
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS())
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "ticket-board-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "ticket-board-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "ticket-board-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "ticket-board-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "ticket-board-api"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	categoryRepo := repository.NewCategoryRepository(cfg.DB)
	ticketRepo := repository.NewTicketRepository(cfg.DB)
	draftRepo := repository.NewDraftRepository(cfg.DB)
	historyRepo := repository.NewHistoryRepository(cfg.DB)

	// Initialize services
	historyService := service.NewHistoryService(historyRepo, cfg.Logger)
	authService := service.NewAuthService(userRepo, categoryRepo, cfg.Blacklist, cfg.JWT, cfg.Logger)
	boardService := service.NewBoardService(categoryRepo, ticketRepo, userRepo, cfg.BoardCache, cfg.Logger)
	categoryService := service.NewCategoryService(categoryRepo, historyService, cfg.BoardCache, cfg.Metrics, cfg.Logger)
	ticketService := service.NewTicketService(ticketRepo, categoryRepo, draftRepo, userRepo, historyService, cfg.BoardCache, cfg.Metrics, cfg.Logger)
	draftService := service.NewDraftService(draftRepo, ticketRepo, userRepo, cfg.Metrics, cfg.Logger)
	userService := service.NewUserService(userRepo, cfg.S3Client, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	boardHandler := handler.NewBoardHandler(boardService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	draftHandler := handler.NewDraftHandler(draftService)
	historyHandler := handler.NewHistoryHandler(historyService)
	userHandler := handler.NewUserHandler(userService)

	// API routes group
	api := r.Group(cfg.BasePath)

	// Token validation goes through the auth service so signed-out
	// tokens are rejected
	authMiddleware := middleware.Auth(authService)

	// ============================================================
	// Auth routes
	// ============================================================
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/signin", authHandler.SignIn)
		auth.POST("/signout", authMiddleware, authHandler.SignOut)
		auth.GET("/session", authMiddleware, authHandler.Session)
	}

	// ============================================================
	// Board routes
	// ============================================================
	board := api.Group("/board")
	board.Use(authMiddleware)
	{
		board.GET("", boardHandler.GetBoard)
		board.POST("/refresh", boardHandler.RefreshBoard)
	}

	// ============================================================
	// Category routes
	// ============================================================
	categories := api.Group("/categories")
	categories.Use(authMiddleware)
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.POST("", categoryHandler.CreateCategory)
		categories.PUT("/reorder", categoryHandler.ReorderCategories)
		categories.PUT("/:categoryId", categoryHandler.UpdateCategory)
		categories.DELETE("/:categoryId", categoryHandler.DeleteCategory)
	}

	// ============================================================
	// Ticket routes
	// ============================================================
	tickets := api.Group("/tickets")
	tickets.Use(authMiddleware)
	{
		tickets.POST("", ticketHandler.CreateTicket)
		tickets.GET("/:ticketId", ticketHandler.GetTicket)
		tickets.PUT("/:ticketId", ticketHandler.UpdateTicket)
		tickets.DELETE("/:ticketId", ticketHandler.DeleteTicket)
		tickets.PUT("/:ticketId/move", ticketHandler.MoveTicket)

		// Editor and draft recovery
		tickets.GET("/:ticketId/editor", draftHandler.OpenEditor)
		tickets.GET("/:ticketId/draft", draftHandler.GetDraft)
		tickets.PUT("/:ticketId/draft", draftHandler.SaveDraft)
		tickets.DELETE("/:ticketId/draft", draftHandler.DeleteDraft)

		// Per-card audit log
		tickets.GET("/:ticketId/history", historyHandler.GetCardHistory)
	}

	// ============================================================
	// Draft routes
	// ============================================================
	drafts := api.Group("/drafts")
	drafts.Use(authMiddleware)
	{
		drafts.GET("", draftHandler.ListDraftedTickets)
	}

	// ============================================================
	// History routes
	// ============================================================
	history := api.Group("/history")
	history.Use(authMiddleware)
	{
		history.GET("", historyHandler.GetBoardHistory)
	}

	// ============================================================
	// User routes
	// ============================================================
	users := api.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("/me", userHandler.GetMe)
		users.PUT("/me", userHandler.UpdateMe)
		users.PUT("/me/notifications", userHandler.UpdateNotificationSettings)
		users.POST("/me/avatar/presigned-url", userHandler.GetAvatarUploadURL)
	}

	// ============================================================
	// WebSocket route (token passed as query parameter)
	// ============================================================
	if cfg.Hub != nil {
		wsHandler := handler.NewWSHandler(cfg.Logger, authService, boardService, ticketService, categoryService, draftService, cfg.Hub)
		api.GET("/ws/board", wsHandler.HandleBoardWebSocket)
	}

	return r
}
