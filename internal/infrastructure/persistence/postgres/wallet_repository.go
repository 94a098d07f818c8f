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
	domainerrors "github.com/prashant0321/wallet-service/internal/domain/errors"
	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
	"github.com/google/uuid"
)

var _ ports.WalletRepository = (*WalletRepository)(nil)

// WalletRepository stores wallets and exposes the pessimistic row
// lock every mutating engine flow takes before it reads a balance it
// is about to change (§4.1: SELECT ... FOR UPDATE, not optimistic
// version CAS — the row lock itself is the concurrency control; the
// version column is an audit counter, not used for compare-and-set).
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// LockForUpdate loads a wallet under SELECT ... FOR UPDATE, blocking
// until any other transaction holding the lock commits or rolls back.
// Must be called inside a UnitOfWork — calling it outside one takes
// and immediately releases the lock, which is never what a mutating
// flow wants.
func (r *WalletRepository) LockForUpdate(ctx context.Context, accountID, assetTypeID uuid.UUID) (*entities.Wallet, error) {
	q := getQuerier(ctx, r.pool)
	row := q.QueryRow(ctx, `
		SELECT id, account_id, asset_type_id, balance::text, version, created_at, updated_at
		FROM wallets
		WHERE account_id = $1 AND asset_type_id = $2
		FOR UPDATE
	`, accountID, assetTypeID)

	wallet, err := scanWallet(row)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, &domainerrors.WalletNotFoundError{AccountID: accountID.String(), AssetTypeID: assetTypeID.String()}
	}
	return wallet, nil
}

// EnsureExists creates a zero-balance wallet for (accountID,
// assetTypeID) if one does not already exist, then returns it locked.
// The insert races harmlessly with any concurrent first-use: whichever
// transaction's INSERT commits first wins the row, and the loser's
// ON CONFLICT DO NOTHING falls straight through to the locking SELECT.
func (r *WalletRepository) EnsureExists(ctx context.Context, accountID, assetTypeID uuid.UUID) (*entities.Wallet, error) {
	q := getQuerier(ctx, r.pool)

	if _, err := q.Exec(ctx, `
		INSERT INTO wallets (id, account_id, asset_type_id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (account_id, asset_type_id) DO NOTHING
	`, uuid.New(), accountID, assetTypeID, valueobjects.Zero().String(), time.Now()); err != nil {
		return nil, fmt.Errorf("provisioning wallet: %w", err)
	}

	return r.LockForUpdate(ctx, accountID, assetTypeID)
}

// FindByAccountAndAsset loads a wallet without taking a lock, for
// read-only balance queries. Returns (nil, nil) when no wallet exists.
func (r *WalletRepository) FindByAccountAndAsset(ctx context.Context, accountID, assetTypeID uuid.UUID) (*entities.Wallet, error) {
	q := getQuerier(ctx, r.pool)
	row := q.QueryRow(ctx, `
		SELECT id, account_id, asset_type_id, balance::text, version, created_at, updated_at
		FROM wallets
		WHERE account_id = $1 AND asset_type_id = $2
	`, accountID, assetTypeID)
	return scanWallet(row)
}

// Save persists a wallet's current balance and version. Must be
// called on a wallet already locked in this transaction; the store's
// check constraint (balance >= 0) is the ultimate backstop if the
// engine's own pre-write check is ever wrong.
func (r *WalletRepository) Save(ctx context.Context, wallet *entities.Wallet) error {
	q := getQuerier(ctx, r.pool)
	_, err := q.Exec(ctx, `
		UPDATE wallets SET balance = $2, version = $3, updated_at = $4 WHERE id = $1
	`, wallet.ID(), wallet.Balance().String(), wallet.Version(), wallet.UpdatedAt())
	if err != nil {
		if isCheckViolation(err) {
			return &domainerrors.NegativeBalanceError{WalletID: wallet.ID().String(), ResultingBalance: wallet.Balance().String()}
		}
		return fmt.Errorf("saving wallet: %w", err)
	}
	return nil
}

func scanWallet(row pgx.Row) (*entities.Wallet, error) {
	var id, accountID, assetTypeID uuid.UUID
	var balanceStr string
	var version int64
	var createdAt, updatedAt time.Time

	if err := row.Scan(&id, &accountID, &assetTypeID, &balanceStr, &version, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning wallet: %w", err)
	}

	balance, err := valueobjects.NewAmount(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid balance in database: %w", err)
	}

	return entities.ReconstructWallet(id, accountID, assetTypeID, balance, version, createdAt, updatedAt), nil
}
