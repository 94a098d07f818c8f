package postgres

import (
	"errors"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prashant0321/wallet-service/internal/application/ports"
	"github.com/prashant0321/wallet-service/internal/domain/entities"
	"github.com/google/uuid"
)

var _ ports.AssetTypeRepository = (*AssetTypeRepository)(nil)

// AssetTypeRepository stores the units of account wallets and ledger
// rows are denominated in. Asset types are administratively managed;
// this repository is read-only from the engine's perspective.
type AssetTypeRepository struct {
	pool *pgxpool.Pool
}

// NewAssetTypeRepository creates an AssetTypeRepository.
func NewAssetTypeRepository(pool *pgxpool.Pool) *AssetTypeRepository {
	return &AssetTypeRepository{pool: pool}
}

func (r *AssetTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.AssetType, error) {
	q := getQuerier(ctx, r.pool)
	row := q.QueryRow(ctx, `
		SELECT id, symbol, name, is_active, created_at FROM asset_types WHERE id = $1
	`, id)
	return scanAssetType(row)
}

func (r *AssetTypeRepository) List(ctx context.Context, offset, limit int) ([]*entities.AssetType, error) {
	q := getQuerier(ctx, r.pool)
	if limit <= 0 {
		limit = 50
	}
	rows, err := q.Query(ctx, `
		SELECT id, symbol, name, is_active, created_at
		FROM asset_types
		WHERE is_active = true
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing asset types: %w", err)
	}
	defer rows.Close()

	var out []*entities.AssetType
	for rows.Next() {
		var id uuid.UUID
		var symbol, name string
		var isActive bool
		var createdAt time.Time
		if err := rows.Scan(&id, &symbol, &name, &isActive, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning asset type: %w", err)
		}
		out = append(out, entities.ReconstructAssetType(id, symbol, name, isActive, createdAt))
	}
	return out, rows.Err()
}

func scanAssetType(row pgx.Row) (*entities.AssetType, error) {
	var id uuid.UUID
	var symbol, name string
	var isActive bool
	var createdAt time.Time

	if err := row.Scan(&id, &symbol, &name, &isActive, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning asset type: %w", err)
	}
	return entities.ReconstructAssetType(id, symbol, name, isActive, createdAt), nil
}
