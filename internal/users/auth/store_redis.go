// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/narkhlab/narkh/internal/platform/constants"
)

// RedisResetGuard implements [ResetGuard] using Redis.
type RedisResetGuard struct {
	client *redis.Client
}

// NewResetGuard creates a new Redis-backed ResetGuard.
func NewResetGuard(client *redis.Client) *RedisResetGuard {
	return &RedisResetGuard{client: client}
}

/*
Consume marks a reset token digest as used.

Description: Uses SETNX so the first caller wins and every later caller sees
the token as already consumed. The entry keeps the token's own TTL; once the
signature has expired the guard entry is useless anyway.

Parameters:
  - context: context.Context
  - tokenDigest: string (sha256 hex of the raw token)
  - ttl: time.Duration

Returns:
  - bool: true when the token had already been consumed
  - error: Connectivity errors
*/
func (guard *RedisResetGuard) Consume(context context.Context, tokenDigest string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("%s%s", constants.RedisPrefixResetUsed, tokenDigest)

	stored, err := guard.client.SetNX(context, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_reset_guard_consume_failed: %w", err)
	}

	// SetNX returns false when the key already existed.
	return !stored, nil
}
