package entities

import (
	"testing"
	"time"

	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
	"github.com/google/uuid"
)

func TestNewTransaction_SignedAmount(t *testing.T) {
	walletID := uuid.New()
	refID := uuid.New()

	debit := NewTransaction(refID, walletID, TransactionTypeSpend,
		valueobjects.MustAmount("50").Negate(), valueobjects.MustAmount("50"),
		"spend", "idem-1", nil)

	if !debit.Amount().IsNegative() {
		t.Errorf("expected debit leg amount to be negative, got %s", debit.Amount().String())
	}
	if debit.ReferenceID() != refID {
		t.Error("reference id not preserved")
	}
}

func TestTransactionPair_SumsToZero(t *testing.T) {
	refID := uuid.New()
	amount := valueobjects.MustAmount("25.5")

	debit := NewTransaction(refID, uuid.New(), TransactionTypeTopUp, amount.Negate(), valueobjects.Zero(), "", "", nil)
	credit := NewTransaction(refID, uuid.New(), TransactionTypeTopUp, amount, amount, "", "", nil)

	sum := debit.Amount().Add(credit.Amount())
	if !sum.IsZero() {
		t.Errorf("expected matched legs to sum to zero, got %s", sum.String())
	}
}

func TestReconstructTransaction(t *testing.T) {
	id, refID, walletID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	meta := map[string]string{"note": "test"}

	tx := ReconstructTransaction(id, refID, walletID, TransactionTypeBonus,
		valueobjects.MustAmount("10"), valueobjects.MustAmount("10"),
		"bonus credit", "idem-2", meta, now)

	if tx.ID() != id || tx.WalletID() != walletID || tx.ReferenceID() != refID {
		t.Fatal("reconstructed transaction lost identity fields")
	}
	if tx.Metadata()["note"] != "test" {
		t.Error("metadata not preserved")
	}
}
