package state

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"brewmetrics/internal/models"
)

const defaultCooldownTTL = 15 * time.Minute

// CooldownGate suppresses repeat notifications for an alert class within a
// time window. A nil client disables suppression and lets everything through.
type CooldownGate struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewCooldownGate creates a cooldown gate backed by the given Redis client
func NewCooldownGate(client *redis.Client, ttl time.Duration) *CooldownGate {
	if ttl <= 0 {
		ttl = defaultCooldownTTL
	}
	return &CooldownGate{redis: client, ttl: ttl}
}

// Allow reports whether an alert for this category and severity may be
// delivered. The first alert in a window claims the key and later ones are
// suppressed until the TTL expires. Redis errors fail open.
func (g *CooldownGate) Allow(ctx context.Context, alert *models.Alert) (bool, error) {
	if g.redis == nil {
		return true, nil
	}

	claimed, err := g.redis.SetNX(ctx, cooldownKey(alert), alert.ID, g.ttl).Result()
	if err != nil {
		return true, fmt.Errorf("failed to check cooldown state: %w", err)
	}

	return claimed, nil
}

// Reset clears the cooldown window for an alert class
func (g *CooldownGate) Reset(ctx context.Context, alert *models.Alert) error {
	if g.redis == nil {
		return nil
	}
	return g.redis.Del(ctx, cooldownKey(alert)).Err()
}

func cooldownKey(alert *models.Alert) string {
	return fmt.Sprintf("alert_cooldown:%s:%s", alert.Category, alert.Severity)
}
