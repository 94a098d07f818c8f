package entities

import (
	"time"

	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
	"github.com/google/uuid"
)

// TransactionType is the kind of ledger entry a row records. Only
// TopUp, Bonus, and Spend are reachable from the HTTP surface; Refund
// and Adjustment exist so the schema and reader queries already
// accommodate entries a future admin flow or manual correction would
// write directly, without a migration.
type TransactionType string

const (
	TransactionTypeTopUp      TransactionType = "TOPUP"
	TransactionTypeBonus      TransactionType = "BONUS"
	TransactionTypeSpend      TransactionType = "SPEND"
	TransactionTypeRefund     TransactionType = "REFUND"
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
)

// Transaction is one signed entry in the double-entry ledger. Every
// engine flow writes exactly two rows sharing a ReferenceID — a debit
// on one wallet and a matching credit on the other — whose amounts
// sum to zero. Rows are never updated or deleted once flushed.
type Transaction struct {
	id              uuid.UUID
	referenceID     uuid.UUID
	walletID        uuid.UUID
	transactionType TransactionType
	amount          valueobjects.Amount // signed: negative for the debit leg
	balanceAfter    valueobjects.Amount
	description     string
	idempotencyKey  string
	metadata        map[string]string
	createdAt       time.Time
}

// NewTransaction creates one ledger leg. amount is signed — callers
// pass a negated Amount for the debit leg of a pair.
func NewTransaction(
	referenceID, walletID uuid.UUID,
	transactionType TransactionType,
	amount, balanceAfter valueobjects.Amount,
	description, idempotencyKey string,
	metadata map[string]string,
) *Transaction {
	return &Transaction{
		id:              uuid.New(),
		referenceID:     referenceID,
		walletID:        walletID,
		transactionType: transactionType,
		amount:          amount,
		balanceAfter:    balanceAfter,
		description:     description,
		idempotencyKey:  idempotencyKey,
		metadata:        metadata,
		createdAt:       time.Now(),
	}
}

// ReconstructTransaction rehydrates a Transaction from stored data.
func ReconstructTransaction(
	id, referenceID, walletID uuid.UUID,
	transactionType TransactionType,
	amount, balanceAfter valueobjects.Amount,
	description, idempotencyKey string,
	metadata map[string]string,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:              id,
		referenceID:     referenceID,
		walletID:        walletID,
		transactionType: transactionType,
		amount:          amount,
		balanceAfter:    balanceAfter,
		description:     description,
		idempotencyKey:  idempotencyKey,
		metadata:        metadata,
		createdAt:       createdAt,
	}
}

func (t *Transaction) ID() uuid.UUID                    { return t.id }
func (t *Transaction) ReferenceID() uuid.UUID            { return t.referenceID }
func (t *Transaction) WalletID() uuid.UUID               { return t.walletID }
func (t *Transaction) TransactionType() TransactionType  { return t.transactionType }
func (t *Transaction) Amount() valueobjects.Amount       { return t.amount }
func (t *Transaction) BalanceAfter() valueobjects.Amount { return t.balanceAfter }
func (t *Transaction) Description() string               { return t.description }
func (t *Transaction) IdempotencyKey() string             { return t.idempotencyKey }
func (t *Transaction) Metadata() map[string]string        { return t.metadata }
func (t *Transaction) CreatedAt() time.Time               { return t.createdAt }
