package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// DefaultSecretTTL is how long a fetched secret is reused.
const DefaultSecretTTL = 15 * time.Minute

// SecretGetter reads a named secret.
type SecretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// SecretsClient reads Secrets Manager values and caches them for a while.
//
// A name of the form "secret-id#field" reads one field of a JSON secret,
// e.g. "furniture/app#GOOGLE_AI_API_KEY".
type SecretsClient struct {
	client *secretsmanager.Client
	ttl    time.Duration

	mu    sync.Mutex
	cache map[string]cachedSecret
}

type cachedSecret struct {
	value   string
	fetched time.Time
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return &SecretsClient{
		client: secretsmanager.NewFromConfig(cfg),
		ttl:    DefaultSecretTTL,
		cache:  make(map[string]cachedSecret),
	}
}

func (s *SecretsClient) GetSecret(ctx context.Context, name string) (string, error) {
	id, field, _ := strings.Cut(name, "#")

	raw, err := s.raw(ctx, id)
	if err != nil {
		return "", err
	}
	if field == "" {
		return raw, nil
	}
	return secretField(raw, id, field)
}

func (s *SecretsClient) raw(ctx context.Context, id string) (string, error) {
	s.mu.Lock()
	entry, ok := s.cache[id]
	s.mu.Unlock()
	if ok && time.Since(entry.fetched) < s.ttl {
		return entry.value, nil
	}

	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: sdkaws.String(id)})
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", id, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", id)
	}

	s.mu.Lock()
	s.cache[id] = cachedSecret{value: *out.SecretString, fetched: time.Now()}
	s.mu.Unlock()
	return *out.SecretString, nil
}

func secretField(raw, id, field string) (string, error) {
	var fields map[string]string
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return "", fmt.Errorf("secret %s is not a JSON object: %w", id, err)
	}
	v, ok := fields[field]
	if !ok {
		return "", fmt.Errorf("secret %s has no field %q", id, field)
	}
	return v, nil
}
