package configs

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis membuka client Redis kalau REDIS_ADDR diisi.
// Return nil = cache dimatikan, aplikasi tetap jalan tanpa Redis.
func ConnectRedis(cfg Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("[WARN] REDIS_ADDR tidak diset, cache mentor dimatikan.")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[ERROR] Gagal konek Redis (%s): %v", cfg.RedisAddr, err)
		_ = rdb.Close()
		return nil
	}

	log.Println("✅ Redis connected.")
	return rdb
}
