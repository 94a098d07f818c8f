package entities

import (
	"testing"
	"time"

	domainerrors "github.com/prashant0321/wallet-service/internal/domain/errors"
	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
	"github.com/google/uuid"
)

func TestNewWallet_ZeroBalance(t *testing.T) {
	w := NewWallet(uuid.New(), uuid.New())

	if !w.Balance().IsZero() {
		t.Errorf("expected zero balance, got %s", w.Balance().String())
	}
}

func TestWallet_Credit(t *testing.T) {
	w := NewWallet(uuid.New(), uuid.New())
	w.Credit(valueobjects.MustAmount("50"))

	if got := w.Balance().String(); got != "50.0000" {
		t.Errorf("balance = %s, want 50.0000", got)
	}
	if w.Version() != 1 {
		t.Errorf("version = %d, want 1 after one mutation", w.Version())
	}
}

func TestWallet_Debit_Success(t *testing.T) {
	w := NewWallet(uuid.New(), uuid.New())
	w.Credit(valueobjects.MustAmount("100"))

	if err := w.Debit(valueobjects.MustAmount("40")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.Balance().String(); got != "60.0000" {
		t.Errorf("balance = %s, want 60.0000", got)
	}
}

func TestWallet_Debit_InsufficientFunds(t *testing.T) {
	w := NewWallet(uuid.New(), uuid.New())
	w.Credit(valueobjects.MustAmount("10"))

	err := w.Debit(valueobjects.MustAmount("20"))
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !domainerrors.IsInsufficientFunds(err) {
		t.Errorf("expected InsufficientFundsError, got %T", err)
	}
	if got := w.Balance().String(); got != "10.0000" {
		t.Errorf("balance should be unchanged after a failed debit, got %s", got)
	}
}

func TestReconstructWallet(t *testing.T) {
	id, accountID, assetTypeID := uuid.New(), uuid.New(), uuid.New()
	balance := valueobjects.MustAmount("123.45")

	now := time.Now()
	w := ReconstructWallet(id, accountID, assetTypeID, balance, 7, now, now)

	if w.ID() != id || w.AccountID() != accountID || w.AssetTypeID() != assetTypeID {
		t.Fatal("reconstructed wallet lost identity fields")
	}
	if !w.Balance().Equals(balance) {
		t.Errorf("balance = %s, want %s", w.Balance().String(), balance.String())
	}
	if w.Version() != 7 {
		t.Errorf("version = %d, want 7", w.Version())
	}
}
