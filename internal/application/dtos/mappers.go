package dtos

import (
	"github.com/prashant0321/wallet-service/internal/application/engine"
	"github.com/prashant0321/wallet-service/internal/domain/entities"
)

// ToTransactionResultResponse renders an engine.Result as the body
// every mutating endpoint returns, and is also what gets cached
// verbatim for idempotent replay. Status is a stable constant — not a
// fresh-vs-replayed flag — so a replayed body is byte-identical to
// the original (§8's round-trip law); statusFor (wallet_handler.go)
// already carries the 200-vs-201 replay signal via the HTTP status.
func ToTransactionResultResponse(r *engine.Result) TransactionResultResponse {
	return TransactionResultResponse{
		Status:          "success",
		ReferenceID:     r.ReferenceID.String(),
		TransactionType: string(r.TransactionType),
		Amount:          r.Amount.String(),
		BalanceAfter:    r.BalanceAfter.String(),
		Message:         r.Message,
	}
}

// ToBalanceResponse renders a balance view.
func ToBalanceResponse(view *engine.BalanceView) BalanceResponse {
	return BalanceResponse{
		AccountID: view.Account.ID().String(),
		Username:  view.Account.Username(),
		AssetType: view.AssetType.Name(),
		Symbol:    view.AssetType.Symbol(),
		Balance:   view.Wallet.Balance().String(),
		UpdatedAt: view.Wallet.UpdatedAt(),
	}
}

// ToTransactionDTO renders one ledger row.
func ToTransactionDTO(tx *entities.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:              tx.ID().String(),
		ReferenceID:     tx.ReferenceID().String(),
		TransactionType: string(tx.TransactionType()),
		Amount:          tx.Amount().String(),
		BalanceAfter:    tx.BalanceAfter().String(),
		Description:     tx.Description(),
		Metadata:        tx.Metadata(),
		CreatedAt:       tx.CreatedAt(),
	}
}

// ToTransactionHistoryResponse renders a page of ledger rows.
func ToTransactionHistoryResponse(history *engine.TransactionHistory, limit, offset int) TransactionHistoryResponse {
	out := make([]TransactionDTO, len(history.Transactions))
	for i, tx := range history.Transactions {
		out[i] = ToTransactionDTO(tx)
	}
	return TransactionHistoryResponse{
		AccountID:    history.AccountID.String(),
		AssetType:    history.AssetType.Name(),
		Transactions: out,
		Total:        history.Total,
		Limit:        limit,
		Offset:       offset,
	}
}

// ToAssetTypeDTO renders one asset type.
func ToAssetTypeDTO(a *entities.AssetType) AssetTypeDTO {
	return AssetTypeDTO{ID: a.ID().String(), Symbol: a.Symbol(), Name: a.Name()}
}

// ToAssetTypeDTOList renders a list of asset types.
func ToAssetTypeDTOList(assets []*entities.AssetType) []AssetTypeDTO {
	out := make([]AssetTypeDTO, len(assets))
	for i, a := range assets {
		out[i] = ToAssetTypeDTO(a)
	}
	return out
}

// ToAccountDTO renders one account.
func ToAccountDTO(a *entities.Account) AccountDTO {
	return AccountDTO{ID: a.ID().String(), Username: a.Username(), CreatedAt: a.CreatedAt()}
}

// ToAccountDTOList renders a list of accounts.
func ToAccountDTOList(accounts []*entities.Account) []AccountDTO {
	out := make([]AccountDTO, len(accounts))
	for i, a := range accounts {
		out[i] = ToAccountDTO(a)
	}
	return out
}
