package events

import (
	"testing"

	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
	"github.com/google/uuid"
)

func TestNewWalletCredited(t *testing.T) {
	walletID := uuid.New()
	txID := uuid.New()
	amount := valueobjects.MustAmount("10")
	balanceAfter := valueobjects.MustAmount("110")

	e := NewWalletCredited(walletID, amount, txID, balanceAfter)

	if e.EventType() != EventTypeWalletCredited {
		t.Errorf("event type = %s, want %s", e.EventType(), EventTypeWalletCredited)
	}
	if e.AggregateID() != walletID {
		t.Error("aggregate id should be the wallet id")
	}
}

func TestNewWalletDebited(t *testing.T) {
	walletID := uuid.New()
	e := NewWalletDebited(walletID, valueobjects.MustAmount("5"), uuid.New(), valueobjects.MustAmount("95"))

	if e.EventType() != EventTypeWalletDebited {
		t.Errorf("event type = %s, want %s", e.EventType(), EventTypeWalletDebited)
	}
}

func TestCollector_CollectsInOrder(t *testing.T) {
	c := NewCollector()
	walletID := uuid.New()

	c.Add(NewWalletDebited(walletID, valueobjects.MustAmount("5"), uuid.New(), valueobjects.MustAmount("5")))
	c.Add(NewWalletCredited(uuid.New(), valueobjects.MustAmount("5"), uuid.New(), valueobjects.MustAmount("15")))

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}
	if all[0].EventType() != EventTypeWalletDebited {
		t.Error("expected first event to be the debit, collection order not preserved")
	}
}
