package database

import (
	"context"

	"cab_booking/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis backs the JWT blacklist. Revoked tokens must be visible to every
// instance, an in-process set does not survive horizontal scaling.
var Redis *redis.Client

func ConnectRedis() {
	addr := config.ConfigDefault("REDIS_ADDR", "localhost:6379")
	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		logrus.Warnf("redis not reachable at %s, token revocation disabled: %v", addr, err)
		Redis = nil
		return
	}
	logrus.Infof("connected to redis at %s", addr)
}
