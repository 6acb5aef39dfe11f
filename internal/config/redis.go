package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Ativo    bool
}

// NewRedisClient abre a conexão com o Redis usado como cache de relatórios.
// Retorna nil quando o cache está desativado na configuração.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	if !cfg.Ativo {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("Redis indisponível, seguindo sem cache: %v", err)
		return nil
	}

	return rdb
}
