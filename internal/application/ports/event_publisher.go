package ports

import (
	"context"

	"github.com/prashant0321/wallet-service/internal/domain/events"
)

// EventPublisher fans the audit events a completed flow collected out
// to NATS. Publishing is best-effort and happens after a unit of
// work's commit, never inside it — a publish failure must never roll
// back a ledger write that has already been durably committed.
type EventPublisher interface {
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
