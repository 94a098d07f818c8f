// Package facade is the single entry point the HTTP layer calls
// into. It owns the one job that doesn't belong in the engine
// (parsing wire-format request DTOs into engine.Input) and the one
// job that doesn't belong in the handlers (deciding which entities
// get folded into the engine's free-form Metadata). Everything else
// is a direct pass-through to the engine.
package facade

import (
	"context"

	"github.com/prashant0321/wallet-service/internal/application/dtos"
	"github.com/prashant0321/wallet-service/internal/application/engine"
	domainerrors "github.com/prashant0321/wallet-service/internal/domain/errors"
	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
	"github.com/google/uuid"
)

// Facade is the thin dispatcher every HTTP handler calls through.
type Facade struct {
	engine *engine.Engine
}

// New constructs a Facade around an Engine.
func New(e *engine.Engine) *Facade {
	return &Facade{engine: e}
}

func parseInput(accountID, assetTypeID, amount, description, idempotencyKey string, metadata map[string]string) (engine.Input, error) {
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return engine.Input{}, &domainerrors.ValidationError{Field: "account_id", Message: err.Error()}
	}
	assetID, err := uuid.Parse(assetTypeID)
	if err != nil {
		return engine.Input{}, &domainerrors.ValidationError{Field: "asset_type_id", Message: err.Error()}
	}
	amt, err := valueobjects.NewAmount(amount)
	if err != nil {
		return engine.Input{}, &domainerrors.ValidationError{Field: "amount", Message: err.Error()}
	}
	if !amt.IsPositive() {
		return engine.Input{}, &domainerrors.ValidationError{Field: "amount", Message: "must be greater than zero"}
	}

	return engine.Input{
		AccountID:      accID,
		AssetTypeID:    assetID,
		Amount:         amt,
		Description:    description,
		IdempotencyKey: idempotencyKey,
		Metadata:       metadata,
	}, nil
}

// TopUp validates req and runs the top-up flow. The returned bool is
// true when the response was served from an idempotency-key replay —
// the handler maps that to HTTP 200 instead of 201.
func (f *Facade) TopUp(ctx context.Context, req dtos.TopUpRequest) (dtos.TransactionResultResponse, bool, error) {
	var meta map[string]string
	if req.PaymentReference != "" {
		meta = map[string]string{"payment_reference": req.PaymentReference}
	}
	in, err := parseInput(req.AccountID, req.AssetTypeID, req.Amount, req.Description, req.IdempotencyKey, meta)
	if err != nil {
		return dtos.TransactionResultResponse{}, false, err
	}
	result, err := f.engine.TopUp(ctx, in)
	if err != nil {
		return dtos.TransactionResultResponse{}, false, err
	}
	return dtos.ToTransactionResultResponse(result), result.FromCache, nil
}

// IssueBonus validates req and runs the bonus flow.
func (f *Facade) IssueBonus(ctx context.Context, req dtos.IssueBonusRequest) (dtos.TransactionResultResponse, bool, error) {
	meta := map[string]string{}
	if req.Reason != "" {
		meta["reason"] = req.Reason
	}
	in, err := parseInput(req.AccountID, req.AssetTypeID, req.Amount, req.Description, req.IdempotencyKey, meta)
	if err != nil {
		return dtos.TransactionResultResponse{}, false, err
	}
	result, err := f.engine.IssueBonus(ctx, in)
	if err != nil {
		return dtos.TransactionResultResponse{}, false, err
	}
	return dtos.ToTransactionResultResponse(result), result.FromCache, nil
}

// Spend validates req and runs the spend flow.
func (f *Facade) Spend(ctx context.Context, req dtos.SpendRequest) (dtos.TransactionResultResponse, bool, error) {
	meta := map[string]string{}
	if req.ItemReference != "" {
		meta["item_reference"] = req.ItemReference
	}
	in, err := parseInput(req.AccountID, req.AssetTypeID, req.Amount, req.Description, req.IdempotencyKey, meta)
	if err != nil {
		return dtos.TransactionResultResponse{}, false, err
	}
	result, err := f.engine.Spend(ctx, in)
	if err != nil {
		return dtos.TransactionResultResponse{}, false, err
	}
	return dtos.ToTransactionResultResponse(result), result.FromCache, nil
}

// VerifyAccount reports whether accountID is a well-formed id naming
// an active account. It is the only call the auth middleware makes
// into the facade — this service never issues tokens, only checks
// that a presented token's subject still resolves to someone real.
func (f *Facade) VerifyAccount(ctx context.Context, accountID string) error {
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return &domainerrors.ValidationError{Field: "sub", Message: err.Error()}
	}
	return f.engine.VerifyAccount(ctx, accID)
}

// GetBalance looks up a wallet's current balance.
func (f *Facade) GetBalance(ctx context.Context, accountID, assetTypeID string) (dtos.BalanceResponse, error) {
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return dtos.BalanceResponse{}, &domainerrors.ValidationError{Field: "account_id", Message: err.Error()}
	}
	assetID, err := uuid.Parse(assetTypeID)
	if err != nil {
		return dtos.BalanceResponse{}, &domainerrors.ValidationError{Field: "asset_type_id", Message: err.Error()}
	}

	view, err := f.engine.GetBalance(ctx, accID, assetID)
	if err != nil {
		return dtos.BalanceResponse{}, err
	}
	return dtos.ToBalanceResponse(view), nil
}

// GetTransactionHistory returns one page of a wallet's ledger.
func (f *Facade) GetTransactionHistory(ctx context.Context, accountID, assetTypeID string, limit, offset int) (dtos.TransactionHistoryResponse, error) {
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return dtos.TransactionHistoryResponse{}, &domainerrors.ValidationError{Field: "account_id", Message: err.Error()}
	}
	assetID, err := uuid.Parse(assetTypeID)
	if err != nil {
		return dtos.TransactionHistoryResponse{}, &domainerrors.ValidationError{Field: "asset_type_id", Message: err.Error()}
	}

	history, err := f.engine.GetTransactionHistory(ctx, accID, assetID, offset, limit)
	if err != nil {
		return dtos.TransactionHistoryResponse{}, err
	}
	return dtos.ToTransactionHistoryResponse(history, limit, offset), nil
}

// ListAssetTypes returns the active asset types.
func (f *Facade) ListAssetTypes(ctx context.Context, offset, limit int) ([]dtos.AssetTypeDTO, error) {
	assets, err := f.engine.ListAssetTypes(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return dtos.ToAssetTypeDTOList(assets), nil
}

// ListAccounts returns accounts, optionally including the system
// counterparties when includeSystem is set.
func (f *Facade) ListAccounts(ctx context.Context, offset, limit int, includeSystem bool) ([]dtos.AccountDTO, error) {
	accounts, err := f.engine.ListAccounts(ctx, offset, limit, includeSystem)
	if err != nil {
		return nil, err
	}
	return dtos.ToAccountDTOList(accounts), nil
}
