// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package price

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/narkhlab/narkh/internal/platform/constants"
)

// allMarketsKey caches the unfiltered latest view.
const allMarketsKey = "all"

// RedisCache implements [Cache] for the latest-price view.
//
// The cache is strictly best-effort: every failure degrades to a database
// read, never to an error surfaced to the client.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (cache *RedisCache) GetLatest(context context.Context, key string) ([]*Price, bool) {
	payload, err := cache.client.Get(context, constants.RedisPrefixLatestPrices+key).Bytes()
	if err != nil {
		return nil, false
	}

	var prices []*Price
	if err := json.Unmarshal(payload, &prices); err != nil {
		return nil, false
	}

	return prices, true
}

func (cache *RedisCache) SetLatest(context context.Context, key string, prices []*Price, ttl time.Duration) {
	payload, err := json.Marshal(prices)
	if err != nil {
		return
	}

	_ = cache.client.Set(context, constants.RedisPrefixLatestPrices+key, payload, ttl).Err()
}

func (cache *RedisCache) InvalidateMarket(context context.Context, marketID string) {
	_ = cache.client.Del(context,
		fmt.Sprintf("%s%s", constants.RedisPrefixLatestPrices, marketID),
		constants.RedisPrefixLatestPrices+allMarketsKey,
	).Err()
}
