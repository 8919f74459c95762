package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges cached responses after admin mutations so the
// public event list never serves a deleted or missing event for a full TTL.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

func (ci *CacheInvalidator) PurgeEventsList(ctx context.Context) {
	iter := ci.rdb.Scan(ctx, 0, "cache:events:list:*", 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}
