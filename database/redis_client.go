package database

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"product-auth-system/conf"
)

// RedisClient global Redis client, nil when Redis is disabled or unreachable
var RedisClient *redis.Client

// InitRedis initialize Redis client
func InitRedis() error {
	if !conf.Cfg.Redis.Enabled {
		log.Println("Redis is disabled")
		return nil
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Cfg.Redis.Host, conf.Cfg.Redis.Port),
		Password: conf.Cfg.Redis.Password,
		DB:       conf.Cfg.Redis.DB,
	})

	// Test connection
	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		RedisClient = nil
		return err
	}

	log.Printf("Redis connected successfully: %s:%d (DB: %d)",
		conf.Cfg.Redis.Host, conf.Cfg.Redis.Port, conf.Cfg.Redis.DB)
	return nil
}

// CloseRedis close Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisEnabled check if Redis is enabled and connected
func IsRedisEnabled() bool {
	return RedisClient != nil && conf.Cfg.Redis.Enabled
}
