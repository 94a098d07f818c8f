// Package entities contains the records the engine loads, locks, and
// writes back. They are plain data plus the minimal validation their
// constructors enforce — the state machines and aggregate behavior a
// richer domain would carry live in the engine instead, since every
// mutation here happens inside a single locked unit of work.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// AssetType is a unit of account the ledger can track balances in
// (points, credits, a specific currency code). Only active asset
// types may be used in new wallets or transactions.
type AssetType struct {
	id        uuid.UUID
	symbol    string
	name      string
	isActive  bool
	createdAt time.Time
}

// NewAssetType creates a new active asset type.
func NewAssetType(symbol, name string) *AssetType {
	return &AssetType{
		id:        uuid.New(),
		symbol:    symbol,
		name:      name,
		isActive:  true,
		createdAt: time.Now(),
	}
}

// ReconstructAssetType rehydrates an AssetType from stored data.
func ReconstructAssetType(id uuid.UUID, symbol, name string, isActive bool, createdAt time.Time) *AssetType {
	return &AssetType{
		id:        id,
		symbol:    symbol,
		name:      name,
		isActive:  isActive,
		createdAt: createdAt,
	}
}

func (a *AssetType) ID() uuid.UUID        { return a.id }
func (a *AssetType) Symbol() string       { return a.symbol }
func (a *AssetType) Name() string         { return a.name }
func (a *AssetType) IsActive() bool       { return a.isActive }
func (a *AssetType) CreatedAt() time.Time { return a.createdAt }
