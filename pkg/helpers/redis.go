package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func RedisSetJSON(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

func RedisDel(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}

// RedisCache is a JSON cache over a redis client. A nil client makes every
// read a miss and every write a no-op.
type RedisCache struct {
	RDB *redis.Client
}

func (c RedisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c.RDB == nil {
		return false, nil
	}
	res, err := c.RDB.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(res, dest)
}

func (c RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.RDB == nil {
		return nil
	}
	return RedisSetJSON(ctx, c.RDB, key, value, ttl)
}

func (c RedisCache) Del(ctx context.Context, key string) error {
	if c.RDB == nil {
		return nil
	}
	return RedisDel(ctx, c.RDB, key)
}
