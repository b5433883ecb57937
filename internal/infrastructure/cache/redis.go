// Package cache adaptador Redis para el caché de reportes. Con Enabled en
// false opera en modo nulo: siempre miss, nunca error.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/pkg/config"
)

var _ usecase.Cache = (*RedisCache)(nil)

// RedisCache implementa usecase.Cache sobre Redis con valores JSON.
type RedisCache struct {
	client  *redis.Client
	enabled bool
}

// NewRedisCache conecta al Redis configurado y verifica con Ping.
// Con la config deshabilitada devuelve un caché nulo sin conexión.
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if !cfg.Enabled {
		return &RedisCache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "conectar a redis")
	}

	return &RedisCache{client: client, enabled: true}, nil
}

// Get deserializa el valor de la clave en dest. Devuelve false sin error en miss.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.enabled {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errors.Wrap(err, "redis get")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, errors.Wrap(err, "deserializar valor cacheado")
	}
	return true, nil
}

// Set serializa el valor como JSON y lo guarda con el TTL dado.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "serializar valor a cachear")
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

// Delete elimina la clave.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if !c.enabled {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

// Close cierra la conexión subyacente.
func (c *RedisCache) Close() error {
	if !c.enabled {
		return nil
	}
	return c.client.Close()
}
