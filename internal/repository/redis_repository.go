package repository

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisRepo struct {
	Client *redis.Client
}

func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{Client: client}
}

func (r *RedisRepo) SaveInt(ctx context.Context, key string, value int64, ttlMinutes int) error {
	err := r.Client.Set(ctx, key, value, time.Duration(ttlMinutes)*time.Minute).Err()
	if err != nil {
		log.Printf("Error saving %s to redis: %s", key, err)
	}
	return err
}

// GetInt returns 0 when the key is missing or redis is unavailable.
func (r *RedisRepo) GetInt(ctx context.Context, key string) int64 {
	val, err := r.Client.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return val
}
