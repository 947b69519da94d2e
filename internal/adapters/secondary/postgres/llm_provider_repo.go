package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

const uniqueViolation = "23505"

type llmProviderRepo struct {
	pool *pgxpool.Pool
}

// NewLLMProviderRepository creates a new llm provider repository
func NewLLMProviderRepository(pool *pgxpool.Pool) ports.LLMProviderRepository {
	return &llmProviderRepo{pool: pool}
}

const providerColumns = `
	id, user_id, provider_type, model_name, base_url, api_key_encrypted,
	status, is_active, latency_ms, error_message, created_at, updated_at
`

func (r *llmProviderRepo) Create(ctx context.Context, provider *domain.LLMProvider) error {
	query := `
		INSERT INTO llm_providers (id, user_id, provider_type, model_name, base_url, api_key_encrypted,
			status, is_active, latency_ms, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		provider.ID,
		provider.UserID,
		provider.ProviderType,
		provider.ModelName,
		provider.BaseURL,
		provider.APIKeyEncrypted,
		provider.Status,
		provider.IsActive,
		provider.LatencyMs,
		provider.ErrorMessage,
		provider.CreatedAt,
		provider.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateProvider
		}
		return fmt.Errorf("insert llm_provider: %w", err)
	}
	return nil
}

func (r *llmProviderRepo) GetByID(ctx context.Context, userID string, id uuid.UUID) (*domain.LLMProvider, error) {
	query := `SELECT ` + providerColumns + ` FROM llm_providers WHERE id = $1 AND user_id = $2`
	provider, err := r.scanProvider(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("get llm_provider by id: %w", err)
	}
	return provider, nil
}

func (r *llmProviderRepo) ListByUser(ctx context.Context, userID string) ([]*domain.LLMProvider, error) {
	query := `SELECT ` + providerColumns + `
		FROM llm_providers
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query llm_providers: %w", err)
	}
	defer rows.Close()

	var providers []*domain.LLMProvider
	for rows.Next() {
		provider, err := r.scanProviderFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scan llm_provider: %w", err)
		}
		providers = append(providers, provider)
	}
	return providers, rows.Err()
}

func (r *llmProviderRepo) Update(ctx context.Context, provider *domain.LLMProvider) error {
	query := `
		UPDATE llm_providers
		SET model_name = $1, base_url = $2, api_key_encrypted = $3, status = $4,
			latency_ms = $5, error_message = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
	`
	result, err := r.pool.Exec(ctx, query,
		provider.ModelName,
		provider.BaseURL,
		provider.APIKeyEncrypted,
		provider.Status,
		provider.LatencyMs,
		provider.ErrorMessage,
		provider.ID,
		provider.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateProvider
		}
		return fmt.Errorf("update llm_provider: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

func (r *llmProviderRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	query := `DELETE FROM llm_providers WHERE id = $1 AND user_id = $2`
	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete llm_provider: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

func (r *llmProviderRepo) SetActive(ctx context.Context, userID string, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set active: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `UPDATE llm_providers SET is_active = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_active`, userID)
	if err != nil {
		return fmt.Errorf("clear active providers: %w", err)
	}

	result, err := tx.Exec(ctx, `UPDATE llm_providers SET is_active = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("set active provider: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrProviderNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set active: %w", err)
	}
	return nil
}

func (r *llmProviderRepo) GetPreferredForUser(ctx context.Context, userID string) (*domain.LLMProvider, error) {
	// Active connected provider wins; any connected provider is the fallback.
	query := `SELECT ` + providerColumns + `
		FROM llm_providers
		WHERE user_id = $1 AND status = $2
		ORDER BY is_active DESC, updated_at DESC
		LIMIT 1`
	provider, err := r.scanProvider(r.pool.QueryRow(ctx, query, userID, domain.ProviderStatusConnected))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoActiveProvider
		}
		return nil, fmt.Errorf("get preferred llm_provider: %w", err)
	}
	return provider, nil
}

// ============================================================================
// Scan Helpers
// ============================================================================

func (r *llmProviderRepo) scanProvider(row pgx.Row) (*domain.LLMProvider, error) {
	var p domain.LLMProvider
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.ProviderType,
		&p.ModelName,
		&p.BaseURL,
		&p.APIKeyEncrypted,
		&p.Status,
		&p.IsActive,
		&p.LatencyMs,
		&p.ErrorMessage,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *llmProviderRepo) scanProviderFromRows(rows pgx.Rows) (*domain.LLMProvider, error) {
	return r.scanProvider(rows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
