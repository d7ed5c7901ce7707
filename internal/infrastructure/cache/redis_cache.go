package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tu-usuario/simpleshop-api/internal/domain/entity"
)

// RedisCatalogCache implementación de CatalogCache sobre Redis.
type RedisCatalogCache struct {
	client *redis.Client
}

// NewRedisCatalogCache construye el cache con la conexión a Redis.
func NewRedisCatalogCache(addr, password string, db int) *RedisCatalogCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCatalogCache{client: client}
}

// Ping verifica la conexión a Redis.
func (c *RedisCatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra la conexión.
func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

func productsKey(tenantID string) string {
	return "storefront:products:" + tenantID
}

func (c *RedisCatalogCache) GetProducts(ctx context.Context, tenantID string) ([]*entity.Product, bool, error) {
	val, err := c.client.Get(ctx, productsKey(tenantID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var products []*entity.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, false, err
	}
	return products, true, nil
}

func (c *RedisCatalogCache) SetProducts(ctx context.Context, tenantID string, products []*entity.Product, ttl time.Duration) error {
	if len(products) == 0 {
		return nil
	}
	payload, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productsKey(tenantID), payload, ttl).Err()
}

func (c *RedisCatalogCache) InvalidateProducts(ctx context.Context, tenantID string) error {
	return c.client.Del(ctx, productsKey(tenantID)).Err()
}
