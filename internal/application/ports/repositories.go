// Package ports defines the interfaces the engine depends on; the
// infrastructure layer supplies the Postgres/Redis/NATS
// implementations. The engine never imports pgx or redis directly.
package ports

import (
	"context"

	"github.com/prashant0321/wallet-service/internal/domain/entities"
	"github.com/google/uuid"
)

// AccountRepository stores account records, including the fixed
// system counterparties bootstrapped at startup.
type AccountRepository interface {
	Save(ctx context.Context, account *entities.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	FindByUsername(ctx context.Context, username string) (*entities.Account, error)
	// List returns active accounts, system counterparties included —
	// the engine decides whether to filter those back out.
	List(ctx context.Context, offset, limit int) ([]*entities.Account, error)
}

// AssetTypeRepository stores the units of account wallets and
// transactions are denominated in.
type AssetTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.AssetType, error)
	List(ctx context.Context, offset, limit int) ([]*entities.AssetType, error)
}

// WalletRepository stores wallets and, critically, exposes the
// pessimistic lock every mutating flow needs before it reads a
// balance it is about to change.
type WalletRepository interface {
	// LockForUpdate loads a wallet's row under SELECT ... FOR UPDATE,
	// blocking until any other transaction holding the lock commits
	// or rolls back. Must be called inside a UnitOfWork.
	LockForUpdate(ctx context.Context, accountID, assetTypeID uuid.UUID) (*entities.Wallet, error)

	// EnsureExists creates a zero-balance wallet for (accountID,
	// assetTypeID) if one does not already exist, then returns it
	// locked. The engine calls this only for system counterparty
	// wallets; startup bootstrap creates the system accounts but not
	// their wallets, so this is where a missing system wallet is
	// created, at a zero balance. User wallets are never
	// auto-provisioned here — a missing one is WalletNotFound (§4.4,
	// §9(c)).
	EnsureExists(ctx context.Context, accountID, assetTypeID uuid.UUID) (*entities.Wallet, error)

	// FindByAccountAndAsset loads a wallet without taking a lock, for
	// read-only balance queries.
	FindByAccountAndAsset(ctx context.Context, accountID, assetTypeID uuid.UUID) (*entities.Wallet, error)

	// Save persists a wallet's current balance. Must be called on a
	// wallet already locked in this transaction.
	Save(ctx context.Context, wallet *entities.Wallet) error
}

// TransactionRepository stores the immutable ledger. Rows are
// insert-only; there is no Update.
type TransactionRepository interface {
	Save(ctx context.Context, tx *entities.Transaction) error
	FindByWalletID(ctx context.Context, walletID uuid.UUID, offset, limit int) ([]*entities.Transaction, error)
	CountByWalletID(ctx context.Context, walletID uuid.UUID) (int, error)
}

// IdempotencyRepository stores the idempotency-key cache described
// in §4.3: one row per key, scoped to the endpoint that first used
// it, holding the exact response body a replay should return.
type IdempotencyRepository interface {
	// Find looks up a key regardless of expiry; callers check
	// Expired themselves so an expired row can be distinguished from
	// a never-seen one without a second query.
	Find(ctx context.Context, key string) (*entities.IdempotencyRecord, error)

	// Insert writes a new record. It returns a domain
	// DuplicateRaceError if another request already inserted this
	// key — the caller should re-run Find and take the Hit path.
	Insert(ctx context.Context, record *entities.IdempotencyRecord) error
}
