package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prashant0321/wallet-service/internal/application/ports"
	"github.com/prashant0321/wallet-service/internal/domain/entities"
	"github.com/google/uuid"
)

var _ ports.AccountRepository = (*AccountRepository)(nil)

// AccountRepository stores accounts, including the system
// counterparties the container bootstraps at startup.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates an AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Save(ctx context.Context, account *entities.Account) error {
	q := getQuerier(ctx, r.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO accounts (id, username, is_system, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET is_active = EXCLUDED.is_active
	`, account.ID(), account.Username(), account.IsSystem(), account.IsActive(), account.CreatedAt())
	if err != nil {
		if isUniqueViolation(err, "accounts_username") {
			return fmt.Errorf("username %q already taken: %w", account.Username(), err)
		}
		return fmt.Errorf("saving account: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	q := getQuerier(ctx, r.pool)
	row := q.QueryRow(ctx, `
		SELECT id, username, is_system, is_active, created_at FROM accounts WHERE id = $1
	`, id)
	return scanAccount(row)
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*entities.Account, error) {
	q := getQuerier(ctx, r.pool)
	row := q.QueryRow(ctx, `
		SELECT id, username, is_system, is_active, created_at FROM accounts WHERE username = $1
	`, username)
	return scanAccount(row)
}

func (r *AccountRepository) List(ctx context.Context, offset, limit int) ([]*entities.Account, error) {
	q := getQuerier(ctx, r.pool)
	if limit <= 0 {
		limit = 50
	}
	rows, err := q.Query(ctx, `
		SELECT id, username, is_system, is_active, created_at
		FROM accounts
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var out []*entities.Account
	for rows.Next() {
		var id uuid.UUID
		var username string
		var isSystem, isActive bool
		var createdAt time.Time
		if err := rows.Scan(&id, &username, &isSystem, &isActive, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		out = append(out, entities.ReconstructAccount(id, username, isSystem, isActive, createdAt))
	}
	return out, rows.Err()
}

// scanAccount scans a single-row QueryRow result, returning (nil, nil)
// when no account matched — callers distinguish "not found" from a
// real error without a sentinel.
func scanAccount(row pgx.Row) (*entities.Account, error) {
	var id uuid.UUID
	var username string
	var isSystem, isActive bool
	var createdAt time.Time

	if err := row.Scan(&id, &username, &isSystem, &isActive, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning account: %w", err)
	}
	return entities.ReconstructAccount(id, username, isSystem, isActive, createdAt), nil
}
