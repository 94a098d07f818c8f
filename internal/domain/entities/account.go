package entities

import (
	"time"

	"github.com/google/uuid"
)

// Account is a holder of wallets — a regular user or one of the
// fixed system counterparties (treasury, bonus pool, revenue) the
// engine debits or credits against. System accounts are bootstrapped
// once at container startup and never exposed for creation over HTTP.
type Account struct {
	id        uuid.UUID
	username  string
	isSystem  bool
	isActive  bool
	createdAt time.Time
}

// NewAccount creates a new active, non-system account.
func NewAccount(username string) *Account {
	return &Account{
		id:        uuid.New(),
		username:  username,
		isSystem:  false,
		isActive:  true,
		createdAt: time.Now(),
	}
}

// NewSystemAccount creates the fixed counterparty account a given
// engine flow debits or credits (treasury, bonus pool, revenue).
func NewSystemAccount(username string) *Account {
	return &Account{
		id:        uuid.New(),
		username:  username,
		isSystem:  true,
		isActive:  true,
		createdAt: time.Now(),
	}
}

// ReconstructAccount rehydrates an Account from stored data.
func ReconstructAccount(id uuid.UUID, username string, isSystem, isActive bool, createdAt time.Time) *Account {
	return &Account{
		id:        id,
		username:  username,
		isSystem:  isSystem,
		isActive:  isActive,
		createdAt: createdAt,
	}
}

func (a *Account) ID() uuid.UUID        { return a.id }
func (a *Account) Username() string     { return a.username }
func (a *Account) IsSystem() bool       { return a.isSystem }
func (a *Account) IsActive() bool       { return a.isActive }
func (a *Account) CreatedAt() time.Time { return a.createdAt }
