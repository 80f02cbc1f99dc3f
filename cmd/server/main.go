package main

import (
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shiftline/board-api/internal/config"
	"github.com/shiftline/board-api/internal/constants"
	"github.com/shiftline/board-api/internal/database"
	"github.com/shiftline/board-api/internal/handlers"
	"github.com/shiftline/board-api/internal/middleware"
	"github.com/shiftline/board-api/internal/repository"
	"github.com/shiftline/board-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set up logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.GinMode != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create redis store")
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	listRepo := repository.NewListRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	cardRepo := repository.NewCardRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	boardService := services.NewBoardService(boardRepo, listRepo, labelRepo, userRepo, activityRepo)
	cardService := services.NewCardService(cardRepo, listRepo, labelRepo, userRepo, commentRepo, checklistRepo, attachmentRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	boardHandler := handlers.NewBoardHandler(boardService)
	listHandler := handlers.NewListHandler(boardService, cardService)
	cardHandler := handlers.NewCardHandler(cardService)
	cardContentHandler := handlers.NewCardContentHandler(cardService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Board API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User directory (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", authHandler.ListUsers)
		}

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth())
		{
			boards.GET("", boardHandler.ListBoards)
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:id", boardHandler.GetBoard)
			boards.PATCH("/:id", boardHandler.UpdateBoard)
			boards.POST("/:id/archive", boardHandler.ArchiveBoard)
			boards.DELETE("/:id", boardHandler.DeleteBoard)

			boards.GET("/:id/members", boardHandler.ListMembers)
			boards.POST("/:id/members", boardHandler.AddMember)
			boards.DELETE("/:id/members/:userId", boardHandler.RemoveMember)

			boards.GET("/:id/activity", boardHandler.ActivityFeed)

			boards.POST("/:id/lists", boardHandler.CreateList)

			boards.GET("/:id/labels", boardHandler.ListLabels)
			boards.POST("/:id/labels", boardHandler.CreateLabel)
		}

		// Label routes (protected)
		labels := api.Group("/labels")
		labels.Use(middleware.RequireAuth())
		{
			labels.PATCH("/:labelId", boardHandler.UpdateLabel)
			labels.DELETE("/:labelId", boardHandler.DeleteLabel)
		}

		// List routes (protected)
		lists := api.Group("/lists")
		lists.Use(middleware.RequireAuth())
		{
			lists.PATCH("/:id", listHandler.RenameList)
			lists.POST("/:id/archive", listHandler.ArchiveList)
			lists.POST("/:id/move", listHandler.MoveList)
			lists.POST("/:id/cards", listHandler.CreateCard)
		}

		// Card routes (protected)
		cards := api.Group("/cards")
		cards.Use(middleware.RequireAuth())
		{
			cards.GET("/:id", cardHandler.GetCard)
			cards.PATCH("/:id", cardHandler.UpdateCard)
			cards.POST("/:id/move", cardHandler.MoveCard)
			cards.POST("/:id/archive", cardHandler.ArchiveCard)
			cards.DELETE("/:id", cardHandler.DeleteCard)
			cards.PUT("/:id/labels", cardHandler.SetLabels)
			cards.PUT("/:id/members", cardHandler.SetMembers)

			cards.POST("/:id/comments", cardContentHandler.AddComment)
			cards.POST("/:id/checklists", cardContentHandler.AddChecklist)
			cards.GET("/:id/attachments", cardContentHandler.ListAttachments)
			cards.POST("/:id/attachments", cardContentHandler.AddAttachment)
		}

		// Comment routes (protected)
		comments := api.Group("/comments")
		comments.Use(middleware.RequireAuth())
		{
			comments.DELETE("/:commentId", cardContentHandler.DeleteComment)
		}

		// Checklist routes (protected)
		checklists := api.Group("/checklists")
		checklists.Use(middleware.RequireAuth())
		{
			checklists.DELETE("/:checklistId", cardContentHandler.DeleteChecklist)
			checklists.POST("/:checklistId/items", cardContentHandler.AddChecklistItem)
		}

		// Checklist item routes (protected)
		items := api.Group("/checklist-items")
		items.Use(middleware.RequireAuth())
		{
			items.POST("/:itemId/toggle", cardContentHandler.ToggleChecklistItem)
		}

		// Attachment routes (protected)
		attachments := api.Group("/attachments")
		attachments.Use(middleware.RequireAuth())
		{
			attachments.DELETE("/:attachmentId", cardContentHandler.DeleteAttachment)
		}
	}

	// Start server
	log.Info().Str("addr", cfg.ListenAddr).Msg("server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
