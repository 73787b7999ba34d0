package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	awspkg "furniture-service/pkg/aws"

	"go.uber.org/zap"
)

// Config holds all environment variables for the furniture service.
type Config struct {
	Port string
	Env  string

	MongoURI string
	MongoDB  string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	RedisURL string
	CacheTTL time.Duration

	ProductTopicARN string

	AWSRegion        string
	S3Bucket         string
	S3Prefix         string
	S3Endpoint       string
	CloudFrontDomain string

	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string

	AllowedOrigins     []string
	RecommendPerMinute int
	UseSecretsManager  bool
}

// LoadConfig reads the environment. With AWS_USE_SECRETS=true the API key
// and Mongo URI are read from Secrets Manager, falling back to env vars.
func LoadConfig(ctx context.Context) (*Config, error) {
	var secrets awspkg.SecretGetter
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		awsCfg, err := awspkg.LoadAWSConfig(ctx)
		if err != nil {
			zap.L().Warn("Secrets Manager unavailable, using environment", zap.Error(err))
		} else {
			secrets = awspkg.NewSecretsClient(awsCfg)
		}
	}
	return loadConfig(ctx, secrets)
}

func loadConfig(ctx context.Context, secrets awspkg.SecretGetter) (*Config, error) {
	cfg := &Config{
		Port:                getenv("PORT", "5000"),
		Env:                 getenv("APP_ENV", "development"),
		MongoURI:            os.Getenv("MONGODB_URI"),
		MongoDB:             getenv("MONGODB_DB", "furniture"),
		GeminiAPIKey:        os.Getenv("GOOGLE_AI_API_KEY"),
		GeminiModel:         getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:       getenv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		RedisURL:            getenv("REDIS_URL", "redis://localhost:6379"),
		ProductTopicARN:     os.Getenv("PRODUCT_SNS_TOPIC_ARN"),
		AWSRegion:           getenv("AWS_REGION", "us-east-1"),
		S3Bucket:            os.Getenv("AWS_S3_BUCKET"),
		S3Prefix:            getenv("AWS_S3_PREFIX", "products/"),
		S3Endpoint:          os.Getenv("AWS_S3_ENDPOINT"),
		CloudFrontDomain:    os.Getenv("AWS_CLOUDFRONT_DOMAIN"),
		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace: getenv("CLOUDWATCH_NAMESPACE", "Furniture"),
		CloudWatchLogGroup:  getenv("CLOUDWATCH_LOG_GROUP", "/furniture/services"),
		UseSecretsManager:   secrets != nil,
	}

	ttl, err := time.ParseDuration(getenv("CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	perMinute, err := strconv.Atoi(getenv("RECOMMEND_RATE_PER_MINUTE", "30"))
	if err != nil || perMinute < 0 {
		return nil, fmt.Errorf("invalid RECOMMEND_RATE_PER_MINUTE %q", os.Getenv("RECOMMEND_RATE_PER_MINUTE"))
	}
	cfg.RecommendPerMinute = perMinute

	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	if secrets != nil {
		if v, err := secrets.GetSecret(ctx, "furniture/GOOGLE_AI_API_KEY"); err == nil && v != "" {
			cfg.GeminiAPIKey = v
		}
		if v, err := secrets.GetSecret(ctx, "furniture/MONGODB_URI"); err == nil && v != "" {
			cfg.MongoURI = v
		}
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_AI_API_KEY is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
