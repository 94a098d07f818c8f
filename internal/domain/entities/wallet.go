package entities

import (
	"time"

	domainerrors "github.com/prashant0321/wallet-service/internal/domain/errors"
	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
	"github.com/google/uuid"
)

// Wallet holds one account's balance in one asset type. There is at
// most one wallet per (account, asset type) pair. The engine never
// creates a user wallet; only a missing system counterparty wallet is
// created on first use.
//
// A Wallet is only ever mutated while its row is held under
// SELECT ... FOR UPDATE inside the engine's unit of work: the row lock
// is the concurrency control, and version is an audit counter that is
// never used for compare-and-set.
type Wallet struct {
	id          uuid.UUID
	accountID   uuid.UUID
	assetTypeID uuid.UUID
	balance     valueobjects.Amount
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewWallet creates a new wallet with a zero balance.
func NewWallet(accountID, assetTypeID uuid.UUID) *Wallet {
	now := time.Now()
	return &Wallet{
		id:          uuid.New(),
		accountID:   accountID,
		assetTypeID: assetTypeID,
		balance:     valueobjects.Zero(),
		version:     0,
		createdAt:   now,
		updatedAt:   now,
	}
}

// ReconstructWallet rehydrates a Wallet from stored data.
func ReconstructWallet(id, accountID, assetTypeID uuid.UUID, balance valueobjects.Amount, version int64, createdAt, updatedAt time.Time) *Wallet {
	return &Wallet{
		id:          id,
		accountID:   accountID,
		assetTypeID: assetTypeID,
		balance:     balance,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (w *Wallet) ID() uuid.UUID                { return w.id }
func (w *Wallet) AccountID() uuid.UUID         { return w.accountID }
func (w *Wallet) AssetTypeID() uuid.UUID       { return w.assetTypeID }
func (w *Wallet) Balance() valueobjects.Amount { return w.balance }
func (w *Wallet) Version() int64               { return w.version }
func (w *Wallet) CreatedAt() time.Time         { return w.createdAt }
func (w *Wallet) UpdatedAt() time.Time         { return w.updatedAt }

// Credit adds amount to the balance. The caller must already hold the
// wallet's row lock. version is a monotonic audit counter here, not a
// concurrency mechanism — the row lock already serializes writers —
// but it still advances on every mutation per §3.
func (w *Wallet) Credit(amount valueobjects.Amount) {
	w.balance = w.balance.Add(amount)
	w.version++
	w.updatedAt = time.Now()
}

// Debit subtracts amount from the balance. It refuses to let the
// balance go negative — a second check behind the engine's own
// balance check, made before a write is issued.
func (w *Wallet) Debit(amount valueobjects.Amount) error {
	if w.balance.LessThan(amount) {
		return &domainerrors.InsufficientFundsError{
			Balance:   w.balance.String(),
			Requested: amount.String(),
		}
	}
	w.balance = w.balance.Sub(amount)
	w.version++
	w.updatedAt = time.Now()
	return nil
}
