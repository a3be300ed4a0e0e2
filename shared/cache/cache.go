package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leonine/infras/otel"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	scanBatch             = 100
	Nil                   = redis.Nil
)

// RedisCache stores JSON values under string keys. Strings are stored raw.
type RedisCache interface {
	Save(ctx context.Context, key string, value any, duration int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	// Clear removes every key matching the glob pattern.
	Clear(ctx context.Context, pattern string) error
}

type redisCache struct {
	client redis.UniversalClient
	otel   otel.Otel
}

func NewRedisCache(client redis.UniversalClient, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (cache *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Clear")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, pattern)

	var (
		cursor  uint64
		keys    []string
		removed int64
	)

	for {
		keys, cursor, err = cache.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			log.Error().Err(err).Str("pattern", pattern).Msg("failed to scan cache keys")

			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			n, err := cache.client.Unlink(ctx, keys...).Result()
			if err != nil {
				log.Error().Err(err).Str("pattern", pattern).Msg("failed to unlink cache keys")

				return fmt.Errorf("failed to delete cache value: %w", err)
			}

			removed += n
		}

		if cursor == 0 {
			break
		}
	}

	log.Debug().Str("pattern", pattern).Int64("removed", removed).Msg("cache cleared")

	return nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	if err = cache.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete cache key")

		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Get decodes the value under key into value. A missing key wraps Nil.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Get")
	defer scope.End()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	raw, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		// a miss is the normal path for cold keys
		if !errors.Is(err, redis.Nil) {
			scope.TraceError(err)
		}

		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if err = decode(raw, value); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to decode cache value")

		return err
	}

	return nil
}

func (cache *redisCache) Save(ctx context.Context, key string, value any, duration int) (err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelCacheKeyAttribute, key)

	raw, err := encode(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode cache value")

		return err
	}

	if err = cache.client.Set(ctx, key, raw, time.Duration(duration)*time.Second).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to set cache value")

		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Int("ttl_seconds", duration).Msg("cache value saved")

	return nil
}

func encode(value any) ([]byte, error) {
	if s, ok := value.(string); ok {
		return []byte(s), nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return raw, nil
}

func decode(raw []byte, value any) error {
	if s, ok := value.(*string); ok {
		*s = string(raw)

		return nil
	}

	if err := json.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}
