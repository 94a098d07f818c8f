package facade

import (
	"context"
	"testing"

	"github.com/prashant0321/wallet-service/internal/application/dtos"
)

func TestTopUp_RejectsInvalidAccountID(t *testing.T) {
	f := New(nil)

	_, _, err := f.TopUp(context.Background(), dtos.TopUpRequest{
		AccountID:   "not-a-uuid",
		AssetTypeID: "00000000-0000-0000-0000-000000000000",
		Amount:      "10",
	})
	if err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestTopUp_RejectsZeroAmount(t *testing.T) {
	f := New(nil)

	_, _, err := f.TopUp(context.Background(), dtos.TopUpRequest{
		AccountID:   "00000000-0000-0000-0000-000000000000",
		AssetTypeID: "00000000-0000-0000-0000-000000000000",
		Amount:      "0",
	})
	if err == nil {
		t.Fatal("expected a validation error for a zero amount")
	}
}

func TestTopUp_RejectsNegativeAmount(t *testing.T) {
	f := New(nil)

	_, _, err := f.TopUp(context.Background(), dtos.TopUpRequest{
		AccountID:   "00000000-0000-0000-0000-000000000000",
		AssetTypeID: "00000000-0000-0000-0000-000000000000",
		Amount:      "-5",
	})
	if err == nil {
		t.Fatal("expected a validation error for a negative amount")
	}
}

func TestGetBalance_RejectsInvalidAssetTypeID(t *testing.T) {
	f := New(nil)

	_, err := f.GetBalance(context.Background(), "00000000-0000-0000-0000-000000000000", "nope")
	if err == nil {
		t.Fatal("expected a validation error")
	}
}
