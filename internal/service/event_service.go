package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
	"github.com/samuelarogbonlo/tata-pay/internal/core/ports"
)

// EventRecorderImpl implements ports.EventRecorder. Append persists events
// inside the caller's transaction so the notification log commits
// atomically with the state change; Flush fans them out post-commit.
type EventRecorderImpl struct {
	repo ports.EventRepository
	pub  ports.EventPublisher // nil = fan-out disabled
	log  zerolog.Logger
}

// NewEventRecorder creates a new EventRecorderImpl.
func NewEventRecorder(repo ports.EventRepository, pub ports.EventPublisher, log zerolog.Logger) *EventRecorderImpl {
	return &EventRecorderImpl{repo: repo, pub: pub, log: log}
}

// Append writes events to the append-only log within tx.
func (r *EventRecorderImpl) Append(ctx context.Context, tx pgx.Tx, events ...*domain.Event) error {
	for _, ev := range events {
		if err := r.repo.Create(ctx, tx, ev); err != nil {
			return err
		}
	}
	return nil
}

// Flush publishes committed events. Best-effort: indexers that miss a
// publish reconcile from the events table.
func (r *EventRecorderImpl) Flush(ctx context.Context, events ...*domain.Event) {
	for _, ev := range events {
		r.log.Info().
			Str("event_type", string(ev.Type)).
			Str("entity_type", ev.EntityType).
			Str("entity_id", ev.EntityID).
			Msg("event")
	}
	if r.pub != nil {
		r.pub.Publish(ctx, events...)
	}
}
