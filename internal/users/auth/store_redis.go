// Copyright (c) 2026 Kritika. All rights reserved.
// Author: anton.kharin.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/antonkh/kritika/internal/platform/apperr"
	"github.com/antonkh/kritika/internal/platform/constants"
)

// # Confirmation-Code Repository

// RedisCodeRepository implements CodeRepository using a Redis hash per user.
//
// # Layout
//
//	auth:confirm_code:<userID> → { codehash, attempts }  EX <ttl>
//
// Redis key expiry IS the code validity window; no sweeper is needed.
type RedisCodeRepository struct {
	client *redis.Client
}

// NewCodeRepository creates a new Redis-backed CodeRepository.
func NewCodeRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client}
}

// Save stores the code hash and resets the attempt counter, replacing any
// previous outstanding code for the user.
func (repository *RedisCodeRepository) Save(ctx context.Context, userID, codeHash string, ttl time.Duration) error {
	key := constants.RedisPrefixConfirmCode + userID

	// Pipeline the replace + expire so a crash between them can't leave an
	// immortal code behind.
	pipe := repository.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, "codehash", codeHash, "attempts", 0)
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis_code_save_failed: %w", err)
	}

	return nil
}

// Find returns the outstanding code record for the user.
func (repository *RedisCodeRepository) Find(ctx context.Context, userID string) (*ConfirmationCode, error) {
	key := constants.RedisPrefixConfirmCode + userID

	values, err := repository.client.HGetAll(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Confirmation code")
		}
		return nil, fmt.Errorf("redis_code_find_failed: %w", err)
	}

	// HGetAll returns an empty map (not redis.Nil) for a missing key.
	codeHash, ok := values["codehash"]
	if !ok {
		return nil, apperr.NotFound("Confirmation code")
	}

	attempts, _ := strconv.Atoi(values["attempts"])

	return &ConfirmationCode{CodeHash: codeHash, Attempts: attempts}, nil
}

// IncrementAttempts records a failed verification attempt.
func (repository *RedisCodeRepository) IncrementAttempts(ctx context.Context, userID string) (int, error) {
	key := constants.RedisPrefixConfirmCode + userID

	attempts, err := repository.client.HIncrBy(ctx, key, "attempts", 1).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_code_increment_failed: %w", err)
	}

	return int(attempts), nil
}

// Delete consumes the code.
func (repository *RedisCodeRepository) Delete(ctx context.Context, userID string) error {
	key := constants.RedisPrefixConfirmCode + userID

	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_code_delete_failed: %w", err)
	}

	return nil
}
