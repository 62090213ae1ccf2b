package guide

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guideshare/guideshare/pkg/authz"
)

// shareCacheTTL bounds staleness of the cached share sets; a revoked
// share takes at most this long to disappear from visibility checks.
const shareCacheTTL = 5 * time.Minute

// ShareCache caches per-user shared-guide sets in Redis in front of
// another ShareSource. Cache failures fall through to the underlying
// source, so a Redis outage degrades to extra database reads rather
// than denied or wrongly granted access.
type ShareCache struct {
	next   authz.ShareSource
	client *redis.Client
	log    *slog.Logger
}

// NewShareCache wraps the given source with a Redis cache.
func NewShareCache(next authz.ShareSource, client *redis.Client, log *slog.Logger) *ShareCache {
	if log == nil {
		log = slog.Default()
	}
	return &ShareCache{next: next, client: client, log: log}
}

// SharedGuideIDs returns the cached share set for the user, loading and
// caching it on a miss.
func (c *ShareCache) SharedGuideIDs(ctx context.Context, userID int64) ([]int64, error) {
	key := shareKey(userID)

	members, err := c.client.SMembers(ctx, key).Result()
	if err == nil && len(members) > 0 {
		ids, parseErr := parseIDs(members)
		if parseErr == nil {
			return ids, nil
		}
		c.log.Warn("dropping unparsable share cache entry", "key", key, "error", parseErr)
		_ = c.client.Del(ctx, key).Err()
	} else if err != nil {
		c.log.Warn("share cache read failed", "key", key, "error", err)
	}

	ids, err := c.next.SharedGuideIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Empty sets are not cached; Redis drops empty sets anyway and the
	// database read for them is cheap.
	if len(ids) > 0 {
		members := make([]any, len(ids))
		for i, id := range ids {
			members[i] = strconv.FormatInt(id, 10)
		}
		pipe := c.client.TxPipeline()
		pipe.Del(ctx, key)
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, shareCacheTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			c.log.Warn("share cache write failed", "key", key, "error", err)
		}
	}

	return ids, nil
}

// Invalidate drops the cached share set for a user, called when a share
// is created or revoked.
func (c *ShareCache) Invalidate(ctx context.Context, userID int64) {
	if err := c.client.Del(ctx, shareKey(userID)).Err(); err != nil {
		c.log.Warn("share cache invalidation failed", "user_id", userID, "error", err)
	}
}

func shareKey(userID int64) string {
	return fmt.Sprintf("guide:shares:%d", userID)
}

func parseIDs(members []string) ([]int64, error) {
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
