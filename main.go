package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperrors "furniture-service/common/errors"
	"furniture-service/common/logger"
	"furniture-service/common/middleware"
	"furniture-service/controllers"
	"furniture-service/database"
	awspkg "furniture-service/pkg/aws"
	"furniture-service/providers"
	"furniture-service/repository"
	"furniture-service/routes"
	"furniture-service/services"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const serviceName = "furniture-service"

func main() {
	// .env is optional, system env wins
	_ = godotenv.Load()

	ctx := context.Background()

	awsCfg, awsErr := awspkg.LoadAWSConfig(ctx)

	var sink io.Writer
	var sinkErr error
	if os.Getenv("CLOUDWATCH_ENABLED") == "true" && awsErr == nil {
		cwLogs, err := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, os.Getenv("CLOUDWATCH_LOG_GROUP"), serviceName)
		if err != nil {
			sinkErr = err
		} else {
			sink = cwLogs
		}
	}

	log, err := logger.Initialize(os.Getenv("APP_ENV"), sink)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if awsErr != nil {
		log.Warn("Failed to load AWS config, AWS integrations disabled", zap.Error(awsErr))
	}
	if sinkErr != nil {
		log.Warn("CloudWatch Logs unavailable, logging to stdout only", zap.Error(sinkErr))
	}

	cfg, err := LoadConfig(ctx)
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- Storage ---

	store, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	categoryRepo := repository.NewCategoryRepository(store.Database())
	tagRepo := repository.NewTagRepository(store.Database())
	productRepo := repository.NewProductRepository(store.Database())
	for name, repo := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{"categories": categoryRepo, "tags": tagRepo, "products": productRepo} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn("Failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		redisOpts = &redis.Options{Addr: "localhost:6379"}
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, product lists will not be cached", zap.Error(err))
	}

	// --- AWS integrations ---

	if awsErr != nil {
		awsCfg = sdkaws.Config{Region: cfg.AWSRegion}
	}
	metrics := awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, cfg.CloudWatchEnabled && awsErr == nil)

	productOpts := []services.ProductServiceOption{services.WithLogger(log)}
	if cfg.ProductTopicARN != "" && awsErr == nil {
		productOpts = append(productOpts, services.WithEventPublisher(awspkg.NewSNSClient(awsCfg), cfg.ProductTopicARN))
	}
	if cfg.S3Bucket != "" && awsErr == nil {
		productOpts = append(productOpts, services.WithImageStorage(
			awspkg.NewS3Presigner(awsCfg, cfg.S3Endpoint),
			services.ImageStorageConfig{
				Bucket:        cfg.S3Bucket,
				Prefix:        cfg.S3Prefix,
				PublicBaseURL: cfg.CloudFrontDomain,
				Region:        cfg.AWSRegion,
			},
		))
	}

	// --- Services ---

	gemini := providers.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel)
	generator := providers.NewCircuitBreakerGenerator(gemini, providers.BreakerSettings{}, log)

	categoryService := services.NewCategoryService(categoryRepo)
	tagService := services.NewTagService(tagRepo)
	productService := services.NewProductService(productRepo, categoryRepo, tagRepo, productOpts...)
	recommendationService := services.NewRecommendationService(
		services.NewFeatureExtractor(generator),
		productService,
		metrics,
	)

	cache := controllers.NewCacheManager(redisClient, cfg.CacheTTL, metrics)

	// --- HTTP server ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(apperrors.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.MetricsMiddleware(metrics, serviceName))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(apperrors.ErrorMiddleware(log))

	var recommendLimit gin.HandlerFunc
	if cfg.RecommendPerMinute > 0 {
		limiter := middleware.NewRateLimiter(
			rate.Every(time.Minute/time.Duration(cfg.RecommendPerMinute)),
			cfg.RecommendPerMinute,
			10*time.Minute,
		)
		recommendLimit = middleware.RateLimit(limiter)
	}

	routes.RegisterRoutes(r, routes.Controllers{
		Category:       controllers.NewCategoryController(categoryService, cache),
		Tag:            controllers.NewTagController(tagService, cache),
		Product:        controllers.NewProductController(productService, cache),
		Recommendation: controllers.NewRecommendationController(recommendationService),
	}, recommendLimit)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Furniture Service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down Furniture Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		log.Error("Failed to close MongoDB", zap.Error(err))
	}

	log.Info("Furniture Service stopped gracefully")
}
