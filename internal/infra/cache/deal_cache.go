package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"local-deals/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const dealListVersionKey = "deals:list:version"

// DealListCache stores deal listings under a version counter. Invalidate bumps
// the counter, so older entries are never read again and age out by TTL.
type DealListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDealListCache(client *redis.Client, ttl time.Duration) *DealListCache {
	return &DealListCache{client: client, ttl: ttl}
}

func (c *DealListCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	k, err := c.versionedKey(ctx, key)
	if err != nil {
		return false, err
	}
	data, err := c.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errs.Wrap(err, "read deal list cache")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, errs.Wrap(err, "decode deal list cache entry")
	}
	return true, nil
}

func (c *DealListCache) Set(ctx context.Context, key string, value any) error {
	k, err := c.versionedKey(ctx, key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return errs.Wrap(err, "encode deal list cache entry")
	}
	return errs.Wrap(c.client.Set(ctx, k, data, c.ttl).Err(), "write deal list cache")
}

func (c *DealListCache) Invalidate(ctx context.Context) error {
	return errs.Wrap(c.client.Incr(ctx, dealListVersionKey).Err(), "bump deal list cache version")
}

func (c *DealListCache) versionedKey(ctx context.Context, key string) (string, error) {
	version, err := c.client.Get(ctx, dealListVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", errs.Wrap(err, "read deal list cache version")
	}
	return entryKey(version, key), nil
}

func entryKey(version int64, key string) string {
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("deals:list:v%d:%s", version, hex.EncodeToString(sum[:16]))
}

// NopDealCache is used when Redis is not configured.
type NopDealCache struct{}

func (NopDealCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopDealCache) Set(context.Context, string, any) error         { return nil }
func (NopDealCache) Invalidate(context.Context) error               { return nil }
