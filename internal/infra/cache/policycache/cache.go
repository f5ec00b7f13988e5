// Package policycache кеширует активные уровни политики отмены в Redis
// Любая ошибка Redis считается промахом: политика читается из БД
package policycache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-HeliTourService/internal/domain"
)

// DefaultKey ключ кеша активной политики
const DefaultKey = "heli:cancellation_policy:active"

// Client часть redis.Cmdable, которую использует кеш
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

type tierDTO struct {
	ID            uuid.UUID `json:"id"`
	DaysBefore    int       `json:"daysBefore"`
	FeePercentage int       `json:"feePercentage"`
	DisplayOrder  int       `json:"displayOrder"`
	IsActive      bool      `json:"isActive"`
}

// Cache кеш политики отмены
type Cache struct {
	client Client
	key    string
	ttl    time.Duration
	log    Logger
}

// New создает кеш политики отмены
func New(client Client, ttl time.Duration, log Logger) *Cache {
	return &Cache{
		client: client,
		key:    DefaultKey,
		ttl:    ttl,
		log:    log,
	}
}

// NewRedisClient создает клиента Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// Get возвращает закешированные уровни; false при промахе или ошибке Redis
func (c *Cache) Get(ctx context.Context) ([]domain.CancellationPolicyTier, bool) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("policycache.Get: redis error: %v", err)
		return nil, false
	}

	var dtos []tierDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		c.log.Warn("policycache.Get: corrupted cache entry: %v", err)
		return nil, false
	}

	tiers := make([]domain.CancellationPolicyTier, 0, len(dtos))
	for _, d := range dtos {
		tiers = append(tiers, domain.CancellationPolicyTier{
			ID:            d.ID,
			DaysBefore:    d.DaysBefore,
			FeePercentage: d.FeePercentage,
			DisplayOrder:  d.DisplayOrder,
			IsActive:      d.IsActive,
		})
	}

	return tiers, true
}

// Set сохраняет уровни политики на ttl
func (c *Cache) Set(ctx context.Context, tiers []domain.CancellationPolicyTier) {
	dtos := make([]tierDTO, 0, len(tiers))
	for _, t := range tiers {
		dtos = append(dtos, tierDTO{
			ID:            t.ID,
			DaysBefore:    t.DaysBefore,
			FeePercentage: t.FeePercentage,
			DisplayOrder:  t.DisplayOrder,
			IsActive:      t.IsActive,
		})
	}

	raw, err := json.Marshal(dtos)
	if err != nil {
		c.log.Warn("policycache.Set: marshal: %v", err)
		return
	}

	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("policycache.Set: redis error: %v", err)
	}
}
