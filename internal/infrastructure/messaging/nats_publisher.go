// Package messaging fans the engine's audit events out to NATS. This
// is ambient observability, not a documented product event stream
// (DOMAIN STACK: "wired, ambient-only") — nothing in this repo
// consumes the subject back, and no external contract is published
// for it.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/prashant0321/wallet-service/internal/application/ports"
	"github.com/prashant0321/wallet-service/internal/domain/events"
)

var _ ports.EventPublisher = (*NATSPublisher)(nil)

// wireEvent is the JSON envelope a wallet.ledger.* message carries.
type wireEvent struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  string          `json:"occurred_at"`
	Payload     events.DomainEvent `json:"payload"`
}

// NATSPublisher publishes audit events best-effort after a unit of
// work commits. A nil conn (NATS_URL unset) makes PublishBatch a
// no-op — publishing is never on the critical path of a mutating
// flow's success.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	log     *slog.Logger
}

// NewNATSPublisher creates a publisher. conn may be nil to disable
// publishing entirely.
func NewNATSPublisher(conn *nats.Conn, subject string, log *slog.Logger) *NATSPublisher {
	if subject == "" {
		subject = "wallet.ledger"
	}
	return &NATSPublisher{conn: conn, subject: subject, log: log}
}

// PublishBatch fires every event on its own subject
// (wallet.ledger.<event_type>). A publish failure is logged and
// swallowed — it must never roll back a ledger write that has
// already been durably committed by the caller.
func (p *NATSPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	if p.conn == nil {
		return nil
	}
	for _, evt := range batch {
		body, err := json.Marshal(wireEvent{
			EventID:     evt.EventID().String(),
			EventType:   evt.EventType(),
			AggregateID: evt.AggregateID().String(),
			OccurredAt:  evt.OccurredAt().Format("2006-01-02T15:04:05.000Z07:00"),
			Payload:     evt,
		})
		if err != nil {
			p.log.WarnContext(ctx, "failed to marshal audit event", "event_type", evt.EventType(), "error", err)
			continue
		}
		subject := fmt.Sprintf("%s.%s", p.subject, evt.EventType())
		if err := p.conn.Publish(subject, body); err != nil {
			p.log.WarnContext(ctx, "failed to publish audit event", "subject", subject, "error", err)
		}
	}
	return nil
}
