package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := f[name]; ok {
		return v, nil
	}
	return "", errors.New("secret not found")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("GOOGLE_AI_API_KEY", "key")

	cfg, err := loadConfig(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "furniture", cfg.MongoDB)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "products/", cfg.S3Prefix)
	assert.Equal(t, 30, cfg.RecommendPerMinute)
	assert.False(t, cfg.CloudWatchEnabled)
	assert.Nil(t, cfg.AllowedOrigins)
}

func TestLoadConfig_RequiresMongoAndKey(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("GOOGLE_AI_API_KEY", "key")
	_, err := loadConfig(context.Background(), nil)
	assert.ErrorContains(t, err, "MONGODB_URI")

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("GOOGLE_AI_API_KEY", "")
	_, err = loadConfig(context.Background(), nil)
	assert.ErrorContains(t, err, "GOOGLE_AI_API_KEY")
}

func TestLoadConfig_SecretsOverrideEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("GOOGLE_AI_API_KEY", "from-env")

	cfg, err := loadConfig(context.Background(), fakeSecrets{
		"furniture/MONGODB_URI": "mongodb://secret:27017",
	})
	require.NoError(t, err)

	assert.Equal(t, "mongodb://secret:27017", cfg.MongoURI)
	assert.Equal(t, "from-env", cfg.GeminiAPIKey)
	assert.True(t, cfg.UseSecretsManager)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("GOOGLE_AI_API_KEY", "key")

	t.Setenv("CACHE_TTL", "soon")
	_, err := loadConfig(context.Background(), nil)
	assert.ErrorContains(t, err, "CACHE_TTL")

	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("RECOMMEND_RATE_PER_MINUTE", "-3")
	_, err = loadConfig(context.Background(), nil)
	assert.ErrorContains(t, err, "RECOMMEND_RATE_PER_MINUTE")
}

func TestLoadConfig_AllowedOrigins(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("GOOGLE_AI_API_KEY", "key")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,https://shop.example")

	cfg, err := loadConfig(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://shop.example"}, cfg.AllowedOrigins)
}
