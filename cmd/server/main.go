package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/lab-annotate/cataloger-api/internal/bioportal"
	"github.com/lab-annotate/cataloger-api/internal/config"
	"github.com/lab-annotate/cataloger-api/internal/constants"
	"github.com/lab-annotate/cataloger-api/internal/database"
	"github.com/lab-annotate/cataloger-api/internal/handlers"
	"github.com/lab-annotate/cataloger-api/internal/logging"
	"github.com/lab-annotate/cataloger-api/internal/middleware"
	"github.com/lab-annotate/cataloger-api/internal/repository"
	"github.com/lab-annotate/cataloger-api/internal/services"
	"github.com/lab-annotate/cataloger-api/internal/workflow"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logging.New(cfg.GinMode)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create redis store")
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

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	annotationRepo := repository.NewAnnotationRepository(db)
	ontologyRepo := repository.NewOntologyRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	geneModRepo := repository.NewGeneModRepository(db)
	tagRepo := repository.NewTagRepository(db)
	cardRepo := repository.NewCardRepository(db)

	// Credential backend
	var authenticator services.Authenticator
	switch cfg.AuthMethod {
	case config.AuthLDAP:
		authenticator = services.NewLDAPAuthenticator(cfg)
	case config.AuthGateway:
		authenticator = services.NewGatewayAuthenticator(cfg.AuthGatewayURL)
	default:
		authenticator = services.NewLocalAuthenticator(userRepo)
	}
	logger.Info().Str("auth_method", string(cfg.AuthMethod)).Msg("credential backend selected")

	// Services
	authService := services.NewAuthService(userRepo, groupRepo, authenticator)
	groupService := services.NewGroupService(groupRepo)
	projectService := services.NewProjectService(projectRepo)
	annotationService := services.NewAnnotationService(annotationRepo, ontologyRepo)
	geneModService := services.NewGeneModService(geneModRepo, annotationRepo)
	cardService := services.NewCardService(cardRepo, tagRepo, logger)

	bioportalClient := bioportal.NewClient(cfg.BioportalAPIKey, cfg.BioportalURL)
	formBuilder := workflow.NewFormBuilder(annotationService, projectService, geneModService, cardService)
	suggestionCache := workflow.NewSuggestionCache()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	groupHandler := handlers.NewGroupHandler(groupService)
	projectHandler := handlers.NewProjectHandler(projectService, authService)
	annotationHandler := handlers.NewAnnotationHandler(annotationService, authService, bioportalClient, suggestionCache, logger)
	cardHandler := handlers.NewCardHandler(cardService, authService)
	cardFormHandler := handlers.NewCardFormHandler(
		formBuilder,
		cardService,
		projectService,
		annotationService,
		geneModService,
		authService,
		bioportalClient,
		suggestionCache,
		logger,
	)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Cataloger API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Group routes; listing is public so the registration form can
		// offer the group picker before login.
		groups := api.Group("/groups")
		{
			groups.GET("", groupHandler.ListGroups)
			groups.POST("", groupHandler.CreateGroup)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
		}

		// Annotation routes (protected)
		annotations := api.Group("/annotations")
		annotations.Use(middleware.RequireAuth())
		{
			annotations.POST("/search", annotationHandler.Search)
			annotations.GET("/:kind", annotationHandler.ListByKind)
		}

		// Card routes (protected)
		cards := api.Group("/cards")
		cards.Use(middleware.RequireAuth())
		{
			cards.GET("", cardHandler.ListCards)
			cards.GET("/form", cardFormHandler.NewForm)
			cards.POST("/form", cardFormHandler.SubmitNew)
			cards.GET("/:id", middleware.RequireCardAccess(), cardHandler.GetCard)
			cards.DELETE("/:id", middleware.RequireCardAccess(), middleware.RequireCardOwner(), cardHandler.DeleteCard)
			cards.POST("/:id/clone", middleware.RequireCardAccess(), cardHandler.CloneCard)
			cards.GET("/:id/form", middleware.RequireCardAccess(), cardFormHandler.EditForm)
			cards.POST("/:id/form", middleware.RequireCardAccess(), middleware.RequireCardOwner(), cardFormHandler.SubmitEdit)
			cards.GET("/:id/comment", middleware.RequireCardAccess(), cardHandler.GetComment)
			cards.GET("/:id/download", middleware.RequireCardAccess(), cardHandler.Download)
			cards.GET("/:id/export/csv", middleware.RequireCardAccess(), cardHandler.ExportCSV)
			cards.GET("/:id/export/markdown", middleware.RequireCardAccess(), cardHandler.ExportMarkdown)
			cards.GET("/:id/print", middleware.RequireCardAccess(), cardHandler.Print)
		}
	}

	// Start server
	logger.Info().Msg("server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
