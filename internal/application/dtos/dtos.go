// Package dtos defines the wire shapes the HTTP handlers bind
// requests into and render responses from. Nothing outside the
// adapters layer should ever construct one of these directly — the
// engine speaks entities and Result values, never DTOs.
package dtos

import "time"

// TopUpRequest binds POST /wallet/topup.
type TopUpRequest struct {
	AccountID        string `json:"account_id" binding:"required,uuid"`
	AssetTypeID      string `json:"asset_type_id" binding:"required,uuid"`
	Amount           string `json:"amount" binding:"required,money_amount"`
	PaymentReference string `json:"payment_reference,omitempty"`
	Description      string `json:"description,omitempty"`
	IdempotencyKey   string `json:"idempotency_key,omitempty"`
}

// IssueBonusRequest binds POST /wallet/bonus.
type IssueBonusRequest struct {
	AccountID      string `json:"account_id" binding:"required,uuid"`
	AssetTypeID    string `json:"asset_type_id" binding:"required,uuid"`
	Amount         string `json:"amount" binding:"required,money_amount"`
	Reason         string `json:"reason,omitempty"`
	Description    string `json:"description,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// SpendRequest binds POST /wallet/spend.
type SpendRequest struct {
	AccountID      string `json:"account_id" binding:"required,uuid"`
	AssetTypeID    string `json:"asset_type_id" binding:"required,uuid"`
	Amount         string `json:"amount" binding:"required,money_amount"`
	ItemReference  string `json:"item_reference,omitempty"`
	Description    string `json:"description,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// TransactionResultResponse is returned by all three mutating
// endpoints. Status is always "success" — a replayed response must be
// byte-identical to the original (§8), so the fresh-vs-replay signal
// is carried by the HTTP status code (200 vs 201), never by this body.
type TransactionResultResponse struct {
	Status          string `json:"status"`
	ReferenceID     string `json:"reference_id"`
	TransactionType string `json:"transaction_type"`
	Amount          string `json:"amount"`
	BalanceAfter    string `json:"balance_after"`
	Message         string `json:"message"`
}

// BalanceResponse is returned by GET /wallet/balance/{account_id}/{asset_type_id}.
type BalanceResponse struct {
	AccountID   string    `json:"account_id"`
	Username    string    `json:"username"`
	AssetType   string    `json:"asset_type"`
	Symbol      string    `json:"symbol"`
	Balance     string    `json:"balance"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionDTO is one ledger row as rendered to a client.
type TransactionDTO struct {
	ID              string            `json:"id"`
	ReferenceID     string            `json:"reference_id"`
	TransactionType string            `json:"transaction_type"`
	Amount          string            `json:"amount"`
	BalanceAfter    string            `json:"balance_after"`
	Description     string            `json:"description,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// TransactionHistoryResponse is returned by GET /wallet/transactions/{account_id}/{asset_type_id}.
type TransactionHistoryResponse struct {
	AccountID    string           `json:"account_id"`
	AssetType    string           `json:"asset_type"`
	Transactions []TransactionDTO `json:"transactions"`
	Total        int              `json:"total"`
	Limit        int              `json:"limit"`
	Offset       int              `json:"offset"`
}

// AssetTypeDTO describes one unit of account.
type AssetTypeDTO struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// AccountDTO describes one account.
type AccountDTO struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
