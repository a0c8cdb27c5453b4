package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samuelarogbonlo/tata-pay/internal/core/domain"
)

// EventRepo implements ports.EventRepository. Events are append-only.
type EventRepo struct {
	pool Pool
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(pool Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// Create appends an event within a transaction.
func (r *EventRepo) Create(ctx context.Context, tx pgx.Tx, event *domain.Event) error {
	query := `INSERT INTO events (id, type, entity_type, entity_id, actor, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		event.ID, event.Type, event.EntityType, event.EntityID,
		event.Actor, event.Payload, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List fetches the most recent events for an entity.
func (r *EventRepo) List(ctx context.Context, entityType, entityID string, limit int) ([]domain.Event, error) {
	query := `SELECT id, type, entity_type, entity_id, actor, payload, created_at
		FROM events WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC LIMIT $3`

	rows, err := r.pool.Query(ctx, query, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		err := rows.Scan(&e.ID, &e.Type, &e.EntityType, &e.EntityID, &e.Actor, &e.Payload, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
