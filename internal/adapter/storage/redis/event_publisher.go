package redis

import (
	"context"
	"encoding/json"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// eventChannel is the pub/sub channel external indexers subscribe to.
const eventChannel = "tata-pay:events"

// EventPublisher implements ports.EventPublisher on Redis pub/sub.
// Best-effort: a failed publish is logged and dropped; the committed
// event row in PostgreSQL remains the source of truth.
type EventPublisher struct {
	client *goredis.Client
	log    zerolog.Logger
}

// NewEventPublisher creates a new Redis-backed event publisher.
func NewEventPublisher(client *goredis.Client, log zerolog.Logger) *EventPublisher {
	return &EventPublisher{client: client, log: log}
}

// Publish fans committed events out on the pub/sub channel.
func (p *EventPublisher) Publish(ctx context.Context, events ...*domain.Event) {
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			p.log.Warn().Err(err).Str("event_id", event.ID.String()).Msg("marshal event for publish")
			continue
		}
		if err := p.client.Publish(ctx, eventChannel, payload).Err(); err != nil {
			p.log.Warn().Err(err).
				Str("event_id", event.ID.String()).
				Str("type", string(event.Type)).
				Msg("publish event")
		}
	}
}
