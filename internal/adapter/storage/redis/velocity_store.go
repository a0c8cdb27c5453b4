package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
)

// VelocityStore implements ports.VelocityStore using fixed-window counter
// pairs in Redis: one key for the transaction count, one for the amount sum.
type VelocityStore struct {
	client *goredis.Client
	prefix string
}

// NewVelocityStore creates a new Redis-backed velocity store.
func NewVelocityStore(client *goredis.Client) *VelocityStore {
	return &VelocityStore{
		client: client,
		prefix: "velocity:",
	}
}

// Bump increments the principal's window counters and returns the
// post-increment state. Windows are discrete: time / windowDur.
func (s *VelocityStore) Bump(ctx context.Context, principal string, window string, windowDur time.Duration, amount int64) (*ports.VelocityResult, error) {
	windowID := time.Now().Unix() / int64(windowDur.Seconds())
	countKey := fmt.Sprintf("%s%s:%s:%d:count", s.prefix, principal, window, windowID)
	amountKey := fmt.Sprintf("%s%s:%s:%d:amount", s.prefix, principal, window, windowID)

	pipe := s.client.TxPipeline()
	countCmd := pipe.Incr(ctx, countKey)
	amountCmd := pipe.IncrBy(ctx, amountKey, amount)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis velocity bump: %w", err)
	}

	count := countCmd.Val()
	// Set expiry only on first increment (new window)
	if count == 1 {
		s.client.Expire(ctx, countKey, windowDur+time.Second)
		s.client.Expire(ctx, amountKey, windowDur+time.Second)
	}

	return &ports.VelocityResult{
		Count:  count,
		Amount: amountCmd.Val(),
	}, nil
}
