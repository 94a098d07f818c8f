// Package errors defines the closed set of error kinds the engine can
// raise. Each kind carries the payload the facade needs to build an
// external error response (§7); none of this is a generic exception
// hierarchy.
package errors

import "fmt"

// InsufficientFundsError is raised when a wallet's balance is below
// the amount a debit requires.
type InsufficientFundsError struct {
	Balance     string
	Requested   string
	AssetSymbol string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: wallet has %s %s, but %s %s were requested",
		e.Balance, e.AssetSymbol, e.Requested, e.AssetSymbol)
}

// WalletNotFoundError is raised when no wallet exists for an
// (account, asset) pair at lock time.
type WalletNotFoundError struct {
	AccountID   string
	AssetTypeID string
}

func (e *WalletNotFoundError) Error() string {
	return fmt.Sprintf("no wallet found for account=%s, asset_type=%s", e.AccountID, e.AssetTypeID)
}

// AccountNotFoundError is raised when an account id does not resolve
// to an active account (including system accounts expected at
// startup).
type AccountNotFoundError struct {
	AccountID string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account not found: %s", e.AccountID)
}

// AssetTypeNotFoundError is raised when an asset type id does not
// resolve to an active asset type.
type AssetTypeNotFoundError struct {
	AssetTypeID string
}

func (e *AssetTypeNotFoundError) Error() string {
	return fmt.Sprintf("asset type not found or inactive: %s", e.AssetTypeID)
}

// IdempotencyConflictError is raised when a client reuses an
// idempotency key against a different endpoint than the one that
// first used it.
type IdempotencyConflictError struct {
	Key string
}

func (e *IdempotencyConflictError) Error() string {
	return fmt.Sprintf("idempotency key %q was already used with a different endpoint", e.Key)
}

// DuplicateRaceError is raised when two concurrent requests race to
// insert the same idempotency key; the loser should retry and take
// the Hit branch.
type DuplicateRaceError struct {
	Key string
}

func (e *DuplicateRaceError) Error() string {
	return fmt.Sprintf("concurrent duplicate insert for idempotency key %q", e.Key)
}

// ValidationError is raised by the facade boundary, before the engine
// ever runs, when a request's shape is invalid (malformed id,
// non-positive amount). It always maps to
// HTTP 422, never to one of the engine's own error kinds.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NegativeBalanceError is raised when the store's check constraint
// trips — an invariant bug, since the engine already validates
// balances before writing.
type NegativeBalanceError struct {
	WalletID         string
	ResultingBalance string
}

func (e *NegativeBalanceError) Error() string {
	return fmt.Sprintf("wallet %s would have a negative balance of %s", e.WalletID, e.ResultingBalance)
}

// IsInsufficientFunds reports whether err is an InsufficientFundsError.
func IsInsufficientFunds(err error) bool {
	_, ok := err.(*InsufficientFundsError)
	return ok
}

// IsWalletNotFound reports whether err is a WalletNotFoundError.
func IsWalletNotFound(err error) bool {
	_, ok := err.(*WalletNotFoundError)
	return ok
}

// IsAccountNotFound reports whether err is an AccountNotFoundError.
func IsAccountNotFound(err error) bool {
	_, ok := err.(*AccountNotFoundError)
	return ok
}

// IsAssetTypeNotFound reports whether err is an AssetTypeNotFoundError.
func IsAssetTypeNotFound(err error) bool {
	_, ok := err.(*AssetTypeNotFoundError)
	return ok
}

// IsIdempotencyConflict reports whether err is an IdempotencyConflictError.
func IsIdempotencyConflict(err error) bool {
	_, ok := err.(*IdempotencyConflictError)
	return ok
}

// IsDuplicateRace reports whether err is a DuplicateRaceError.
func IsDuplicateRace(err error) bool {
	_, ok := err.(*DuplicateRaceError)
	return ok
}

// IsNegativeBalance reports whether err is a NegativeBalanceError.
func IsNegativeBalance(err error) bool {
	_, ok := err.(*NegativeBalanceError)
	return ok
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
