package engine

import (
	"context"

	"github.com/prashant0321/wallet-service/internal/domain/entities"
	domainerrors "github.com/prashant0321/wallet-service/internal/domain/errors"
	"github.com/google/uuid"
)

// BalanceView is what GetBalance returns: the wallet alongside the
// account and asset type it belongs to, so the handler can render a
// response without a second round trip.
type BalanceView struct {
	Wallet    *entities.Wallet
	Account   *entities.Account
	AssetType *entities.AssetType
}

// VerifyAccount reports whether accountID names an active account.
// Used by the HTTP layer's auth boundary to check a bearer token's
// subject before letting a request reach the engine.
func (e *Engine) VerifyAccount(ctx context.Context, accountID uuid.UUID) error {
	_, err := e.activeAccount(ctx, accountID)
	return err
}

// GetBalance loads a wallet's current balance. It does not take a
// lock — a caller reading a balance mid-transfer may observe either
// the pre- or post-transfer value, never a torn one, since writes are
// only ever visible after their owning transaction commits.
func (e *Engine) GetBalance(ctx context.Context, accountID, assetTypeID uuid.UUID) (*BalanceView, error) {
	account, err := e.activeAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	assetType, err := e.activeAssetType(ctx, assetTypeID)
	if err != nil {
		return nil, err
	}
	wallet, err := e.wallets.FindByAccountAndAsset(ctx, accountID, assetTypeID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, &domainerrors.WalletNotFoundError{AccountID: accountID.String(), AssetTypeID: assetTypeID.String()}
	}
	return &BalanceView{Wallet: wallet, Account: account, AssetType: assetType}, nil
}

// TransactionHistory is a page of ledger rows plus the total count
// needed for pagination metadata.
type TransactionHistory struct {
	AccountID    uuid.UUID
	AssetType    *entities.AssetType
	Transactions []*entities.Transaction
	Total        int
}

// GetTransactionHistory returns a page of a wallet's ledger entries,
// most recent first.
func (e *Engine) GetTransactionHistory(ctx context.Context, accountID, assetTypeID uuid.UUID, offset, limit int) (*TransactionHistory, error) {
	if _, err := e.activeAccount(ctx, accountID); err != nil {
		return nil, err
	}
	assetType, err := e.activeAssetType(ctx, assetTypeID)
	if err != nil {
		return nil, err
	}

	wallet, err := e.wallets.FindByAccountAndAsset(ctx, accountID, assetTypeID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, &domainerrors.WalletNotFoundError{AccountID: accountID.String(), AssetTypeID: assetTypeID.String()}
	}

	total, err := e.transactions.CountByWalletID(ctx, wallet.ID())
	if err != nil {
		return nil, err
	}
	txs, err := e.transactions.FindByWalletID(ctx, wallet.ID(), offset, limit)
	if err != nil {
		return nil, err
	}

	return &TransactionHistory{AccountID: accountID, AssetType: assetType, Transactions: txs, Total: total}, nil
}

// ListAssetTypes returns the active asset types wallets may be
// denominated in.
func (e *Engine) ListAssetTypes(ctx context.Context, offset, limit int) ([]*entities.AssetType, error) {
	return e.assetTypes.List(ctx, offset, limit)
}

// ListAccounts returns accounts, optionally including the fixed
// system counterparties (spec §6's `?include_system` query flag).
func (e *Engine) ListAccounts(ctx context.Context, offset, limit int, includeSystem bool) ([]*entities.Account, error) {
	all, err := e.accounts.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	if includeSystem {
		return all, nil
	}
	visible := make([]*entities.Account, 0, len(all))
	for _, a := range all {
		if !a.IsSystem() {
			visible = append(visible, a)
		}
	}
	return visible, nil
}
