package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"prepquiz-service/internal/bank"
	"prepquiz-service/internal/cache"
	"prepquiz-service/internal/db"
	"prepquiz-service/internal/discovery"
	"prepquiz-service/internal/event"
	"prepquiz-service/internal/external"
	"prepquiz-service/internal/handlers"
	"prepquiz-service/internal/live"
	"prepquiz-service/internal/readiness"
	"prepquiz-service/internal/repository"
	"prepquiz-service/internal/selection"
	"prepquiz-service/internal/service"
	"prepquiz-service/internal/stats"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}

	mongoClient, err := db.InitMongo(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Disconnect(mongoClient)
	database := mongoClient.Database("prepquiz_service")

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.Publisher
	if rabbitURL != "" && eventExchange != "" {
		publisher, err = event.NewPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	// Redis prediction cache
	var predictionCache *cache.PredictionCache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		predictionCache = cache.NewPredictionCache(redisAddr, os.Getenv("REDIS_PWD"), redisDB)
	} else {
		log.Println("Redis not configured, predictions served from MongoDB only")
	}

	// Repositories
	questionRepo := repository.NewQuestionRepository(database)
	topicRepo := repository.NewTopicRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)
	topicStatsRepo := repository.NewTopicStatsRepository(database)
	mistakeRepo := repository.NewMistakeLogRepository(database)
	predictionRepo := repository.NewPredictionRepository(database)
	sessionRepo := repository.NewSessionRepository(database)

	// Question selection chain: bank, store, external trivia API
	var externalProvider selection.ExternalProvider
	if triviaURL := os.Getenv("TRIVIA_API_URL"); triviaURL != "" {
		externalProvider = external.NewTriviaClient(triviaURL)
	}
	chain := selection.NewChain(
		bank.Default(),
		&repository.ChainStore{Questions: questionRepo, Topics: topicRepo},
		externalProvider,
	)

	// Background stats aggregation
	aggregator := stats.NewAggregator(&repository.StatsStore{
		Questions: questionRepo,
		Topics:    topicStatsRepo,
		Mistakes:  mistakeRepo,
	}, 256)
	defer aggregator.Close()

	// Services
	quizService := service.NewQuizService(
		sessionRepo,
		questionRepo,
		attemptRepo,
		mistakeRepo,
		chain,
		aggregator,
		wrapPublisher(publisher),
	)
	readinessService := service.NewReadinessService(
		predictionRepo,
		readiness.NewComputer(&repository.ReadinessStore{Stats: topicStatsRepo, Attempts: attemptRepo}),
		predictionCache,
	)
	questionService := service.NewQuestionService(questionRepo, topicRepo)

	hub := live.NewHub(wrapLivePublisher(publisher))

	// Handlers
	quizHandler := handlers.NewQuizHandler(quizService)
	readinessHandler := handlers.NewReadinessHandler(readinessService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	liveHandler := handlers.NewLiveHandler(hub, quizService)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	public := r.Group("/public/quiz")
	{
		public.GET("/topics", questionHandler.ListTopics)
		public.GET("/questions", questionHandler.ListQuestions)
		public.GET("/live/:id/scoreboard", liveHandler.Scoreboard)
	}

	// Protected routes require the gateway-supplied user header
	protected := r.Group("/protected/quiz")
	protected.Use(requireUser())
	{
		protected.POST("/start", quizHandler.StartQuiz)
		protected.GET("/sessions/:id", quizHandler.GetSession)
		protected.POST("/sessions/:id/answers", quizHandler.SubmitAnswer)
		protected.POST("/sessions/:id/end", quizHandler.EndSession)

		protected.GET("/readiness", readinessHandler.GetPrediction)
		protected.POST("/readiness/refresh", readinessHandler.Refresh)

		protected.POST("/live", liveHandler.CreateRoom)
		protected.POST("/live/join", liveHandler.JoinRoom)
		protected.POST("/live/:id/leave", liveHandler.LeaveRoom)
		protected.POST("/live/:id/start", liveHandler.StartRoom)
		protected.POST("/live/:id/next", liveHandler.NextQuestion)
		protected.POST("/live/:id/answer", liveHandler.Answer)

		protected.POST("/generate", quizHandler.Generate)
		protected.POST("/questions", questionHandler.CreateQuestion)
		protected.GET("/questions/:id", questionHandler.GetQuestion)
		protected.PUT("/questions/:id", questionHandler.UpdateQuestion)
		protected.DELETE("/questions/:id", questionHandler.DeleteQuestion)
		protected.POST("/topics", questionHandler.CreateTopic)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Consul registration
	if consulAddr := os.Getenv("CONSUL_ADDR"); consulAddr != "" {
		registry, err := discovery.NewServiceRegistry(consulAddr)
		if err != nil {
			log.Fatalf("Failed to create Consul client: %v", err)
		}
		serviceAddr := os.Getenv("SERVICE_ADDRESS")
		if serviceAddr == "" {
			serviceAddr = "localhost"
		}
		if err := registry.Register("prepquiz-service", serviceAddr, port); err != nil {
			log.Printf("Consul registration failed: %v", err)
		} else {
			defer registry.Deregister()
		}
	}

	r.Run(":" + port)
}

// requireUser rejects requests without the gateway-supplied X-User-ID header.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-User-ID") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// wrapPublisher converts the concrete publisher to the service interface,
// keeping the nil check meaningful across the interface boundary.
func wrapPublisher(p *event.Publisher) service.Publisher {
	if p == nil {
		return nil
	}
	return p
}

func wrapLivePublisher(p *event.Publisher) live.Publisher {
	if p == nil {
		return nil
	}
	return p
}
