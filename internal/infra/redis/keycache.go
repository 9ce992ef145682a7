package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/keremavan/feed-engine/internal/importer"
)

const keyCacheTTL = 24 * time.Hour

var _ importer.KeyCache = (*KeyCache)(nil)

// KeyCache keeps the keys of committed imports in a per-target Redis set.
// It is strictly advisory: any Redis failure is treated as a miss and the
// transactional duplicate check stays authoritative.
type KeyCache struct {
	client *goredis.Client
	logger *zap.Logger
}

func NewKeyCache(client *goredis.Client, logger *zap.Logger) (*KeyCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KeyCache{client: client, logger: logger}, nil
}

func (c *KeyCache) Seen(ctx context.Context, target, key string) bool {
	if ctx == nil {
		ctx = context.Background()
	}

	found, err := c.client.SIsMember(ctx, cacheKey(target), key).Result()
	if err != nil {
		c.logger.Warn("key cache lookup failed",
			zap.String("target", target),
			zap.Error(err),
		)
		return false
	}
	return found
}

func (c *KeyCache) Remember(ctx context.Context, target string, keys []string) {
	if len(keys) == 0 {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	members := make([]any, 0, len(keys))
	for _, k := range keys {
		members = append(members, k)
	}

	setKey := cacheKey(target)
	pipe := c.client.Pipeline()
	pipe.SAdd(ctx, setKey, members...)
	pipe.Expire(ctx, setKey, keyCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("key cache update failed",
			zap.String("target", target),
			zap.Int("keys", len(keys)),
			zap.Error(err),
		)
	}
}

// Forget drops keys from the advisory set. Destructive writes must call it
// so a later re-import of the same key is not falsely rejected.
func (c *KeyCache) Forget(ctx context.Context, target string, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	members := make([]any, 0, len(keys))
	for _, k := range keys {
		members = append(members, k)
	}

	if err := c.client.SRem(ctx, cacheKey(target), members...).Err(); err != nil {
		c.logger.Warn("key cache invalidation failed",
			zap.String("target", target),
			zap.Int("keys", len(keys)),
			zap.Error(err),
		)
	}
}

func cacheKey(target string) string {
	return fmt.Sprintf("import:keys:%s", target)
}
