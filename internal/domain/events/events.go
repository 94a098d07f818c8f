// Package events defines the audit facts the engine collects while a
// flow runs and hands to the NATS publisher once the unit of work
// commits. They are internal plumbing, not a documented event-stream
// product surface — nothing outside the container subscribes to them.
package events

import (
	"time"

	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
	"github.com/google/uuid"
)

// DomainEvent is the common shape every audit event satisfies.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
}

// BaseEvent carries the fields every event shares.
type BaseEvent struct {
	eventID     uuid.UUID
	eventType   string
	occurredAt  time.Time
	aggregateID uuid.UUID
}

func newBaseEvent(eventType string, aggregateID uuid.UUID) BaseEvent {
	return BaseEvent{
		eventID:     uuid.New(),
		eventType:   eventType,
		occurredAt:  time.Now(),
		aggregateID: aggregateID,
	}
}

func (e BaseEvent) EventID() uuid.UUID      { return e.eventID }
func (e BaseEvent) EventType() string       { return e.eventType }
func (e BaseEvent) OccurredAt() time.Time   { return e.occurredAt }
func (e BaseEvent) AggregateID() uuid.UUID  { return e.aggregateID }

const (
	EventTypeWalletCredited       = "wallet.credited"
	EventTypeWalletDebited        = "wallet.debited"
	EventTypeTransactionCompleted = "transaction.completed"
)

// WalletCredited is raised once per credit leg an engine flow applies.
type WalletCredited struct {
	BaseEvent
	WalletID      uuid.UUID
	Amount        valueobjects.Amount
	TransactionID uuid.UUID
	BalanceAfter  valueobjects.Amount
}

func NewWalletCredited(walletID uuid.UUID, amount valueobjects.Amount, transactionID uuid.UUID, balanceAfter valueobjects.Amount) *WalletCredited {
	return &WalletCredited{
		BaseEvent:     newBaseEvent(EventTypeWalletCredited, walletID),
		WalletID:      walletID,
		Amount:        amount,
		TransactionID: transactionID,
		BalanceAfter:  balanceAfter,
	}
}

// WalletDebited is raised once per debit leg an engine flow applies.
type WalletDebited struct {
	BaseEvent
	WalletID      uuid.UUID
	Amount        valueobjects.Amount
	TransactionID uuid.UUID
	BalanceAfter  valueobjects.Amount
}

func NewWalletDebited(walletID uuid.UUID, amount valueobjects.Amount, transactionID uuid.UUID, balanceAfter valueobjects.Amount) *WalletDebited {
	return &WalletDebited{
		BaseEvent:     newBaseEvent(EventTypeWalletDebited, walletID),
		WalletID:      walletID,
		Amount:        amount,
		TransactionID: transactionID,
		BalanceAfter:  balanceAfter,
	}
}

// TransactionCompleted is collected while an engine flow's unit of
// work runs and published only after it has committed, carrying the
// reference id that ties its two ledger legs together.
type TransactionCompleted struct {
	BaseEvent
	ReferenceID     uuid.UUID
	TransactionType string
	Amount          valueobjects.Amount
	CompletedAt     time.Time
}

func NewTransactionCompleted(referenceID uuid.UUID, transactionType string, amount valueobjects.Amount) *TransactionCompleted {
	return &TransactionCompleted{
		BaseEvent:       newBaseEvent(EventTypeTransactionCompleted, referenceID),
		ReferenceID:     referenceID,
		TransactionType: transactionType,
		Amount:          amount,
		CompletedAt:     time.Now(),
	}
}

// Collector gathers events raised while a unit of work runs so the
// engine can publish them only after a commit succeeds.
type Collector struct {
	events []DomainEvent
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{events: make([]DomainEvent, 0, 2)}
}

// Add appends an event to the collector.
func (c *Collector) Add(event DomainEvent) {
	c.events = append(c.events, event)
}

// All returns every collected event.
func (c *Collector) All() []DomainEvent {
	return c.events
}
