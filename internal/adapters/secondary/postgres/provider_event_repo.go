package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

type providerEventRepo struct {
	pool *pgxpool.Pool
}

// NewProviderEventRepository creates a new provider event repository
func NewProviderEventRepository(pool *pgxpool.Pool) ports.ProviderEventRepository {
	return &providerEventRepo{pool: pool}
}

func (r *providerEventRepo) Insert(ctx context.Context, event *domain.ProviderEvent) error {
	query := `
		INSERT INTO llm_provider_events (id, provider_id, user_id, event_type, event_status, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.ProviderID,
		event.UserID,
		event.EventType,
		event.EventStatus,
		event.Detail,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert llm_provider_event: %w", err)
	}
	return nil
}

func (r *providerEventRepo) ListByProvider(ctx context.Context, userID string, providerID uuid.UUID) ([]*domain.ProviderEvent, error) {
	query := `
		SELECT id, provider_id, user_id, event_type, event_status, detail, created_at
		FROM llm_provider_events
		WHERE provider_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, providerID, userID)
	if err != nil {
		return nil, fmt.Errorf("query llm_provider_events: %w", err)
	}
	defer rows.Close()

	var events []*domain.ProviderEvent
	for rows.Next() {
		var e domain.ProviderEvent
		if err := rows.Scan(&e.ID, &e.ProviderID, &e.UserID, &e.EventType, &e.EventStatus, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan llm_provider_event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
