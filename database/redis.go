package database

import (
	"context"
	"log"
	"time"

	"ctfrange/config"

	"github.com/redis/go-redis/v9"
)

var REDIS *redis.Client

// InitRedis connects the shared redis client used for the ephemeral mentor
// messaging channel and scoreboard cache invalidation
func InitRedis() {
	REDIS = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := REDIS.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Println("Redis connection successfully established")
}
