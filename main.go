package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Soukthavilay/qr-order/controllers"
	"github.com/Soukthavilay/qr-order/database"
	"github.com/Soukthavilay/qr-order/events"
	"github.com/Soukthavilay/qr-order/logger"
	"github.com/Soukthavilay/qr-order/middleware"
	aws_pkg "github.com/Soukthavilay/qr-order/pkg/aws"
	"github.com/Soukthavilay/qr-order/repository"
	"github.com/Soukthavilay/qr-order/routes"
	"github.com/Soukthavilay/qr-order/seed"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/Soukthavilay/qr-order/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on environment variables")
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// AWS clients
	awsCfg, awsErr := aws_pkg.LoadAWSConfig(ctx, cfg.AWSEndpoint)

	var logSink io.Writer
	if cfg.CloudWatchEnabled && awsErr == nil {
		if w, err := aws_pkg.NewLogsWriter(ctx, awsCfg, cfg.LogGroup, cfg.ServiceName); err != nil {
			log.Printf("Warning: CloudWatch logs disabled: %v", err)
		} else {
			logSink = w
		}
	}

	zapLogger, err := logger.New(cfg.AppEnv, logSink)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	if awsErr != nil {
		zapLogger.Warn("AWS config unavailable, AWS integrations disabled", zap.Error(awsErr))
	}

	var metricsClient *aws_pkg.MetricsClient
	var metrics aws_pkg.MetricsRecorder
	if awsErr == nil && cfg.CloudWatchEnabled {
		metricsClient = aws_pkg.NewMetricsClient(awsCfg, cfg.MetricsNamespace, true)
		metrics = metricsClient
	}

	// Session store
	var store storage.Store
	var memStore *storage.MemoryStore
	if cfg.RedisAddr != "" {
		redisClient, err := storage.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close() //nolint:errcheck
		store = storage.NewRedisStore(redisClient, cfg.SessionTTL)
	} else {
		zapLogger.Warn("REDIS_ADDR not set, sessions are kept in memory")
		memStore = storage.NewExpiringMemoryStore(cfg.SessionTTL)
		store = memStore
	}

	// Persistence. Each backend is optional; without it the service keeps
	// its state in memory.
	var (
		db              *gorm.DB
		orderRepo       repository.OrderRepository
		reservationRepo repository.ReservationRepository
		reviewRepo      repository.ReviewRepository
		inventoryRepo   repository.InventoryRepository
		menuRepo        repository.MenuRepository
		images          services.ImageSigner
		uploads         services.ImageUploader
	)
	if cfg.Postgres.Host != "" {
		db, err = database.ConnectPostgres(cfg.Postgres, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer database.ClosePostgres(db) //nolint:errcheck
		orderRepo = repository.NewGormOrderRepository(db)
		reservationRepo = repository.NewGormReservationRepository(db)
		reviewRepo = repository.NewGormReviewRepository(db)
	}

	mongoConnected := false
	if cfg.MongoURI != "" {
		mongoClient, mongoDB, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer database.CloseMongo(mongoClient) //nolint:errcheck
		menuRepo = repository.NewMongoMenuRepository(mongoDB, cfg.MongoMenuCollection)
		mongoConnected = true
	} else {
		menuRepo = repository.NewMemoryMenuRepository(seed.MenuItems())
	}

	if awsErr == nil && cfg.DynamoInventoryTable != "" {
		inventoryRepo = repository.NewDynamoInventoryRepository(
			aws_pkg.NewDynamoDBClient(awsCfg), cfg.DynamoInventoryTable, cfg.DynamoAdjustmentsTable)
	}
	if awsErr == nil && cfg.S3Bucket != "" {
		images = aws_pkg.NewImagePresigner(awsCfg, cfg.S3Bucket, cfg.ImageURLExpiry)
		uploads = aws_pkg.NewImageUploader(awsCfg, cfg.S3Bucket)
	}

	// Event bus
	var publisher aws_pkg.SNSPublisher
	switch cfg.EventBus {
	case "sns":
		if awsErr == nil {
			publisher = aws_pkg.NewSNSClient(awsCfg)
		}
	case "kafka":
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kp.Close() //nolint:errcheck
		publisher = kp
	}
	eventOpts := services.EventOptions{Publisher: publisher, Topic: cfg.EventTopic, Metrics: metrics}

	// Services
	authService, err := services.NewAuthService(store, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init auth service", zap.Error(err))
	}
	preferenceService := services.NewPreferenceService(store, zapLogger)
	menuService := services.NewMenuService(menuRepo, images, uploads, zapLogger)
	cartService := services.NewCartService(store, menuRepo, zapLogger)
	orderService := services.NewOrderService(orderRepo, cartService, eventOpts, zapLogger)
	reservationService := services.NewReservationService(reservationRepo, eventOpts, zapLogger)
	reviewService := services.NewReviewService(reviewRepo, orderService, eventOpts, zapLogger)
	inventoryService := services.NewInventoryService(inventoryRepo, seed.InventoryItems(), eventOpts, zapLogger)
	billingService := services.NewBillingService(orderService, zapLogger)
	analyticsService := services.NewAnalyticsService(orderService, reviewService, inventoryService, reservationService, zapLogger)

	loaders := map[string]func(context.Context) error{
		"orders":       orderService.Load,
		"reservations": reservationService.Load,
		"reviews":      reviewService.Load,
		"inventory":    inventoryService.Load,
	}
	for name, load := range loaders {
		if err := load(ctx); err != nil {
			zapLogger.Warn("Failed to load persisted state", zap.String("store", name), zap.Error(err))
		}
	}

	// Kitchen event feed
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	var source events.Source
	handler := events.NewHandler(orderService, zapLogger)
	switch cfg.EventSource {
	case "kafka":
		source = events.NewKafkaSource(cfg.KafkaBrokers, cfg.KitchenTopic, cfg.KafkaGroupID, handler, zapLogger)
	case "sqs":
		if awsErr == nil {
			source = events.NewSQSSource(aws_pkg.NewSQSConsumer(awsCfg, cfg.SQSQueueURL, zapLogger), handler)
		}
	}
	if source != nil {
		go func() {
			if err := source.Run(consumerCtx); err != nil {
				zapLogger.Error("Kitchen event feed stopped", zap.Error(err))
			}
		}()
	}

	integrationService := services.NewIntegrationService([]services.IntegrationCheck{
		{Name: "PostgreSQL", Description: "Orders, reservations and reviews", Connected: db != nil},
		{Name: "Redis", Description: "Carts, preferences and staff sessions", Connected: cfg.RedisAddr != ""},
		{Name: "MongoDB", Description: "Menu catalog", Connected: mongoConnected},
		{Name: "DynamoDB", Description: "Inventory and stock adjustments", Connected: inventoryRepo != nil},
		{Name: "S3", Description: "Menu images", Connected: images != nil},
		{Name: "Event bus", Description: "Order, reservation and stock events", Connected: publisher != nil},
		{Name: "Kitchen feed", Description: "Kitchen display status updates", Connected: source != nil},
		{Name: "CloudWatch", Description: "Metrics and logs", Connected: metricsClient.IsEnabled()},
	})

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(logger.RequestLogger(zapLogger))
	r.Use(middleware.Metrics(metricsClient, cfg.ServiceName))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Session())
	r.Use(middleware.Authenticate(authService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": cfg.ServiceName})
	})

	if err := controllers.RegisterValidators(); err != nil {
		zapLogger.Fatal("Failed to register validators", zap.Error(err))
	}

	loginLimiter := middleware.NewRateLimiter(rate.Limit(cfg.LoginRate), cfg.LoginBurst, 10*time.Minute)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-consumerCtx.Done():
				return
			case now := <-ticker.C:
				loginLimiter.Cleanup(now)
				if memStore != nil {
					if n := memStore.Cleanup(now); n > 0 {
						zapLogger.Debug("Expired session entries removed", zap.Int("count", n))
					}
				}
			}
		}
	}()

	routes.RegisterAllRoutes(r, routes.Controllers{
		App:         controllers.NewAppController(preferenceService),
		Auth:        controllers.NewAuthController(authService),
		Preferences: controllers.NewPreferenceController(preferenceService),
		Menu:        controllers.NewMenuController(menuService, preferenceService),
		Cart:        controllers.NewCartController(cartService),
		Orders:      controllers.NewOrderController(orderService),
		Billing:     controllers.NewBillingController(billingService),
		Reservation: controllers.NewReservationController(reservationService),
		Review:      controllers.NewReviewController(reviewService),
		Inventory:   controllers.NewInventoryController(inventoryService),
		Admin:       controllers.NewAdminController(analyticsService, integrationService),
	}, loginLimiter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	zapLogger.Info("Restaurant service started", zap.String("port", cfg.Port))
	<-quit
	zapLogger.Info("Shutting down restaurant service...")
	stopConsumer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exited cleanly")
}
