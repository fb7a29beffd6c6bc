package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"escape-portal/internal/config"
	"escape-portal/internal/db"
	"escape-portal/internal/events"
	"escape-portal/internal/handlers"
	"escape-portal/internal/middleware"
	"escape-portal/internal/models"
	"escape-portal/internal/repository"
	"escape-portal/internal/service"
	"escape-portal/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.New()
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	db.InitMongo(cfg.MongoURI, cfg.MongoDatabase)
	defer db.DisconnectMongo()
	db.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// RabbitMQ event publisher; disabled when not configured
	publisher, err := events.NewEventPublisher(cfg.RabbitURI, cfg.RabbitExchange)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Consul registration is optional for local development
	if cfg.ConsulAddress != "" {
		registry, err := discovery.NewServiceRegistry(cfg)
		if err != nil {
			log.Fatalf("Service discovery init failed: %v", err)
		}
		if err := registry.Register(); err != nil {
			log.Fatalf("Service registration failed: %v", err)
		}
		defer registry.Deregister()
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FEAddress},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Database

	// Repositories
	userRepo := repository.NewUserRepository(database)
	orgRepo := repository.NewOrganisationRepository(database)
	roundRepo := repository.NewRoundRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	teamRepo := repository.NewTeamRepository(database)
	memberRepo := repository.NewTeamMemberRepository(database)
	gameRepo := repository.NewGameRepository(database)
	quizRepo := repository.NewQuizRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)
	lockRepo := repository.NewRedisRepo(db.RedisClient)

	// Services
	authService := service.NewAuthService(userRepo, lockRepo, cfg.JWTSecret, cfg.JWTExpiryHours)
	orgService := service.NewOrganisationService(userRepo, orgRepo, publisher)
	roundService := service.NewRoundService(roundRepo, gameRepo, quizRepo)
	sessionService := service.NewSessionService(sessionRepo, publisher)
	rosterService := service.NewRosterService(sessionRepo, teamRepo, memberRepo, publisher)
	scoreboardService := service.NewScoreboardService(sessionRepo)
	gameService := service.NewGameService(gameRepo)
	quizService := service.NewQuizService(quizRepo)
	attemptService := service.NewAttemptService(attemptRepo, sessionRepo, roundRepo, quizRepo, publisher)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganisationHandler(orgService)
	roundHandler := handlers.NewRoundHandler(roundService)
	sessionHandler := handlers.NewSessionHandler(sessionService, rosterService)
	scoreboardHandler := handlers.NewScoreboardHandler(scoreboardService)
	gameHandler := handlers.NewGameHandler(gameService)
	quizHandler := handlers.NewQuizHandler(quizService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Public routes: score displays and the player quiz flow need no account
	public := r.Group("/public/portal")
	{
		public.GET("/scoreboard/:roundId", scoreboardHandler.Leaderboard)
		public.GET("/session/:sessionId/quiz", attemptHandler.SessionQuiz)
		public.POST("/session/:sessionId/quiz", attemptHandler.SubmitAttempt)
	}

	protected := r.Group("/protected/portal")
	protected.Use(middleware.Authenticate(cfg.JWTSecret))

	admin := protected.Group("/organisation")
	admin.Use(middleware.RequireRole(models.RoleSuperAdmin))
	{
		admin.POST("/", orgHandler.CreateOrganisation)
		admin.GET("/", orgHandler.ListOrganisations)
		admin.PUT("/:id/admin", orgHandler.ReassignAdmin)
	}
	protected.GET("/organisation/:id", orgHandler.GetOrganisation)

	staff := protected.Group("")
	staff.Use(middleware.RequireRole(models.RoleSuperAdmin, models.RoleCompanyAdmin, models.RoleOrganiser, models.RoleFacilitator))
	{
		staff.POST("/round", roundHandler.CreateRound)
		staff.PUT("/round/:id", roundHandler.UpdateRound)
		staff.GET("/organisation/:id/rounds", roundHandler.OrganisationRounds)
		staff.GET("/organisation/:id/sessions", sessionHandler.SessionsByOrganisation)
		staff.GET("/round/:id/sessions", sessionHandler.SessionsByRound)

		staff.POST("/session", sessionHandler.SaveSession)
		staff.PUT("/session/:id", sessionHandler.SaveSession)
		staff.GET("/session/:id", sessionHandler.GetSession)
		staff.POST("/session/:id/results", sessionHandler.RecordResults)
		staff.GET("/session/:id/members", sessionHandler.TeamMembers)

		staff.GET("/game", gameHandler.ListGames)
		staff.GET("/game/:id", gameHandler.GetGame)
		staff.GET("/quiz", quizHandler.ListQuizzes)
		staff.GET("/quiz/:id", quizHandler.GetQuiz)
	}

	catalog := protected.Group("")
	catalog.Use(middleware.RequireRole(models.RoleSuperAdmin))
	{
		catalog.POST("/game", gameHandler.CreateGame)
		catalog.PUT("/game/:id", gameHandler.UpdateGame)
		catalog.DELETE("/game/:id", gameHandler.DeleteGame)
		catalog.POST("/quiz", quizHandler.CreateQuiz)
		catalog.PUT("/quiz/:id", quizHandler.UpdateQuiz)
		catalog.DELETE("/quiz/:id", quizHandler.DeleteQuiz)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Portal service listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down portal service")
}
