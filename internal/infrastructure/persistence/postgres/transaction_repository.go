package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prashant0321/wallet-service/internal/application/ports"
	"github.com/prashant0321/wallet-service/internal/domain/entities"
	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
	"github.com/google/uuid"
)

var _ ports.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository stores the immutable double-entry ledger.
// Rows are insert-only — there is no Update, matching §3's "Immutable
// once written" invariant.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func (r *TransactionRepository) Save(ctx context.Context, tx *entities.Transaction) error {
	q := getQuerier(ctx, r.pool)

	metadata, err := json.Marshal(tx.Metadata())
	if err != nil {
		return fmt.Errorf("marshaling transaction metadata: %w", err)
	}

	var idemKey interface{}
	if tx.IdempotencyKey() != "" {
		idemKey = tx.IdempotencyKey()
	}

	_, err = q.Exec(ctx, `
		INSERT INTO transactions (
			id, reference_id, wallet_id, transaction_type,
			amount, balance_after, description, idempotency_key, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		tx.ID(), tx.ReferenceID(), tx.WalletID(), string(tx.TransactionType()),
		tx.Amount().String(), tx.BalanceAfter().String(), tx.Description(), idemKey, metadata, tx.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("saving ledger entry: %w", err)
	}
	return nil
}

func (r *TransactionRepository) FindByWalletID(ctx context.Context, walletID uuid.UUID, offset, limit int) ([]*entities.Transaction, error) {
	q := getQuerier(ctx, r.pool)
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	rows, err := q.Query(ctx, `
		SELECT id, reference_id, wallet_id, transaction_type,
		       amount::text, balance_after::text, description, COALESCE(idempotency_key, ''), metadata, created_at
		FROM transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, walletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var out []*entities.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (r *TransactionRepository) CountByWalletID(ctx context.Context, walletID uuid.UUID) (int, error) {
	q := getQuerier(ctx, r.pool)
	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE wallet_id = $1`, walletID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting ledger entries: %w", err)
	}
	return count, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows so one scan
// function serves FindByWalletID's loop without duplication.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*entities.Transaction, error) {
	var id, referenceID, walletID uuid.UUID
	var transactionType, amountStr, balanceAfterStr, description, idempotencyKey string
	var metadataRaw []byte
	var createdAt time.Time

	if err := row.Scan(&id, &referenceID, &walletID, &transactionType,
		&amountStr, &balanceAfterStr, &description, &idempotencyKey, &metadataRaw, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning ledger entry: %w", err)
	}

	amount, err := valueobjects.ParseSigned(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger amount in database: %w", err)
	}
	balanceAfter, err := valueobjects.ParseSigned(balanceAfterStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger balance_after in database: %w", err)
	}

	var metadata map[string]string
	if len(metadataRaw) > 0 {
		if err := json.Unmarshal(metadataRaw, &metadata); err != nil {
			return nil, fmt.Errorf("invalid ledger metadata in database: %w", err)
		}
	}

	return entities.ReconstructTransaction(
		id, referenceID, walletID, entities.TransactionType(transactionType),
		amount, balanceAfter, description, idempotencyKey, metadata, createdAt,
	), nil
}
