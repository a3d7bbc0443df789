package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vinni986/AI-interview-platform/pkg/config"
)

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Println("✅ Redis connected successfully")
	return client, nil
}

// TokenStore keeps refresh-token hashes in Redis so revocation takes
// effect immediately without a database round trip.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore on top of an existing Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func tokenKey(hash string) string {
	return "refresh:" + hash
}

// Save stores a refresh-token hash mapped to its user ID.
func (s *TokenStore) Save(ctx context.Context, hash, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(hash), userID, ttl).Err()
}

// Lookup resolves a refresh-token hash to the owning user ID.
func (s *TokenStore) Lookup(ctx context.Context, hash string) (string, bool, error) {
	userID, err := s.client.Get(ctx, tokenKey(hash)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return userID, true, nil
}

// Revoke removes a single refresh-token hash.
func (s *TokenStore) Revoke(ctx context.Context, hash string) error {
	return s.client.Del(ctx, tokenKey(hash)).Err()
}
