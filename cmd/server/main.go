package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/taskboard/kanban-api/internal/config"
	"github.com/taskboard/kanban-api/internal/constants"
	"github.com/taskboard/kanban-api/internal/database"
	"github.com/taskboard/kanban-api/internal/handlers"
	"github.com/taskboard/kanban-api/internal/middleware"
	"github.com/taskboard/kanban-api/internal/repository"
	"github.com/taskboard/kanban-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
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
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	workspaceService := services.NewWorkspaceService(workspaceRepo, userRepo)
	boardService := services.NewBoardService(boardRepo, columnRepo, taskRepo)
	columnService := services.NewColumnService(columnRepo, boardRepo)
	taskService := services.NewTaskService(taskRepo, columnRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	boardHandler := handlers.NewBoardHandler(boardService)
	columnHandler := handlers.NewColumnHandler(columnService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Kanban API is running",
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

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("/:id", authHandler.GetUser)
		}

		// Workspace routes (protected)
		workspaces := api.Group("/workspaces")
		workspaces.Use(middleware.RequireAuth())
		{
			workspaces.GET("", workspaceHandler.ListWorkspaces)
			workspaces.POST("", workspaceHandler.CreateWorkspace)
			workspaces.GET("/:workspaceId", workspaceHandler.GetWorkspace)
			workspaces.GET("/:workspaceId/teams", workspaceHandler.ListTeams)
			workspaces.POST("/:workspaceId/teams", workspaceHandler.CreateTeam)
			workspaces.POST("/:workspaceId/teams/:teamId/members", workspaceHandler.AddUserToTeam)
			workspaces.POST("/:workspaceId/teams/:teamId/regenerate-code", workspaceHandler.RegenerateInviteCode)
			workspaces.GET("/:workspaceId/boards", boardHandler.ListBoards)
		}

		// Board routes (protected; access checked against the board's
		// workspace)
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth())
		{
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:boardId", middleware.RequireBoardAccess("boardId"), boardHandler.GetBoard)
			boards.PUT("/:boardId", middleware.RequireBoardAccess("boardId"), boardHandler.UpdateBoard)
			boards.DELETE("/:boardId", middleware.RequireBoardAccess("boardId"), boardHandler.DeleteBoard)
			boards.GET("/:boardId/columns", middleware.RequireBoardAccess("boardId"), columnHandler.ListColumns)
		}

		// Column routes (protected)
		columns := api.Group("/columns")
		columns.Use(middleware.RequireAuth())
		{
			columns.POST("", columnHandler.CreateColumn)
			columns.PUT("/:columnId", columnHandler.UpdateColumn)
			columns.DELETE("/:columnId", columnHandler.DeleteColumn)
			columns.GET("/:columnId/tasks", taskHandler.ListTasks)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:taskId", middleware.RequireTaskAccess("taskId"), taskHandler.GetTask)
			tasks.PATCH("/:taskId", middleware.RequireTaskAccess("taskId"), taskHandler.UpdateTask)
			tasks.DELETE("/:taskId", middleware.RequireTaskAccess("taskId"), taskHandler.DeleteTask)
			tasks.POST("/:taskId/move", middleware.RequireTaskAccess("taskId"), taskHandler.MoveTask)
			tasks.GET("/:taskId/comments", middleware.RequireTaskAccess("taskId"), commentHandler.ListComments)
		}

		// Comment routes (protected)
		comments := api.Group("/comments")
		comments.Use(middleware.RequireAuth())
		{
			comments.POST("", commentHandler.CreateComment)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
