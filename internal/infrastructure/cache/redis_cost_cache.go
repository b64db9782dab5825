// Package cache adaptadores de caché del costeo.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Cocina-api/internal/application/dto"
	"github.com/jhoicas/Cocina-api/internal/application/ports"
)

var _ ports.CostCache = (*RedisCostCache)(nil)

const (
	keyPrefix     = "costing:"
	globalGenKey  = keyPrefix + "gen:global"
	companyGenKey = keyPrefix + "gen:company:"
)

// RedisCostCache costeo de recetas en Redis con claves versionadas.
// Cada empresa tiene un contador de generación y hay uno global (unidades); invalidar es un
// INCR y las entradas viejas expiran solas por TTL.
type RedisCostCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCostCache construye la caché.
func NewRedisCostCache(client *redis.Client, ttl time.Duration) *RedisCostCache {
	return &RedisCostCache{Client: client, TTL: ttl}
}

func (c *RedisCostCache) version(ctx context.Context, companyID string) (string, error) {
	vals, err := c.Client.MGet(ctx, globalGenKey, companyGenKey+companyID).Result()
	if err != nil {
		return "", err
	}
	gen := func(v interface{}) string {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
		return "0"
	}
	return gen(vals[0]) + "." + gen(vals[1]), nil
}

func recipeKey(companyID, version, recipeID string) string {
	return keyPrefix + "recipe:" + companyID + ":" + version + ":" + recipeID
}

// GetRecipeCost busca el costeo cacheado. Un miss devuelve cost nil y la versión a usar en Set.
func (c *RedisCostCache) GetRecipeCost(ctx context.Context, companyID, recipeID string) (*dto.RecipeCostResponse, string, error) {
	version, err := c.version(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("cost cache version: %w", err)
	}
	raw, err := c.Client.Get(ctx, recipeKey(companyID, version, recipeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, nil
	}
	if err != nil {
		return nil, version, fmt.Errorf("cost cache get: %w", err)
	}
	var cost dto.RecipeCostResponse
	if err := json.Unmarshal(raw, &cost); err != nil {
		// Entrada corrupta: se trata como miss y se sobrescribe.
		return nil, version, nil
	}
	return &cost, version, nil
}

// SetRecipeCost guarda el costeo bajo la versión obtenida en GetRecipeCost.
func (c *RedisCostCache) SetRecipeCost(ctx context.Context, companyID, version string, cost *dto.RecipeCostResponse) error {
	if cost == nil || version == "" {
		return nil
	}
	raw, err := json.Marshal(cost)
	if err != nil {
		return fmt.Errorf("cost cache encode: %w", err)
	}
	if err := c.Client.Set(ctx, recipeKey(companyID, version, cost.RecipeID), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("cost cache set: %w", err)
	}
	return nil
}

// Invalidate incrementa la generación de la empresa, o la global si companyID es vacío.
func (c *RedisCostCache) Invalidate(ctx context.Context, companyID string) error {
	key := globalGenKey
	if companyID != "" {
		key = companyGenKey + companyID
	}
	if err := c.Client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("cost cache invalidate: %w", err)
	}
	return nil
}
