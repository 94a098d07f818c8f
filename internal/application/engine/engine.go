// Package engine runs the three mutating wallet flows (top-up, bonus,
// spend) and the read-only balance/history queries. Every mutating
// flow is one instantiation of the same operationDescriptor template
// (§9): the three HTTP handlers differ only in which system account
// they move funds against and which way the money flows, not in how
// locking, idempotency, or ledger writing works.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/prashant0321/wallet-service/internal/application/ports"
	"github.com/prashant0321/wallet-service/internal/domain/entities"
	domainerrors "github.com/prashant0321/wallet-service/internal/domain/errors"
	"github.com/prashant0321/wallet-service/internal/domain/events"
	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
	"github.com/google/uuid"
)

const (
	SystemTreasury  = "system_treasury"
	SystemBonusPool = "system_bonus_pool"
	SystemRevenue   = "system_revenue"
)

// direction says which leg of a transfer debits and which credits.
type direction int

const (
	// systemDebitsUser moves funds from the system account to the
	// user's wallet (top-up, bonus).
	systemDebitsUser direction = iota
	// userDebitsSystem moves funds from the user's wallet to the
	// system account (spend).
	userDebitsSystem
)

// operationDescriptor is the one template every mutating flow
// instantiates. Per-flow variation lives entirely in these fields;
// Engine.run contains the shared control flow exactly once.
type operationDescriptor struct {
	endpoint            string
	transactionType     entities.TransactionType
	systemAccountName   string
	dir                 direction
	systemLegDescription func(amount valueobjects.Amount, assetSymbol string, meta map[string]string) string
	userLegDescription   func(amount valueobjects.Amount, assetSymbol string, meta map[string]string) string
	successMessage       func(amount valueobjects.Amount, assetSymbol string) string
}

// Engine holds every dependency a flow or a read query needs. It is
// constructed once by the container and is safe for concurrent use —
// all per-request state lives on the stack of a single run call.
type Engine struct {
	accounts      ports.AccountRepository
	assetTypes    ports.AssetTypeRepository
	wallets       ports.WalletRepository
	transactions  ports.TransactionRepository
	idempotency   ports.IdempotencyRepository
	publisher     ports.EventPublisher
	uow           ports.UnitOfWork
	idempotencyTTL time.Duration
}

// New constructs an Engine from its infrastructure ports.
func New(
	accounts ports.AccountRepository,
	assetTypes ports.AssetTypeRepository,
	wallets ports.WalletRepository,
	transactions ports.TransactionRepository,
	idempotency ports.IdempotencyRepository,
	publisher ports.EventPublisher,
	uow ports.UnitOfWork,
	idempotencyTTL time.Duration,
) *Engine {
	return &Engine{
		accounts:       accounts,
		assetTypes:     assetTypes,
		wallets:        wallets,
		transactions:   transactions,
		idempotency:    idempotency,
		publisher:      publisher,
		uow:            uow,
		idempotencyTTL: idempotencyTTL,
	}
}

// Result is what every mutating flow returns to the facade.
type Result struct {
	ReferenceID     uuid.UUID
	TransactionType entities.TransactionType
	Amount          valueobjects.Amount
	BalanceAfter    valueobjects.Amount
	Message         string

	// FromCache is true when this Result was served from an
	// idempotency-key replay rather than produced by a fresh run —
	// the facade/handler uses it to pick 200 over 201, never
	// marshaled into the cached body itself (see storeIdempotency).
	FromCache bool `json:"-"`
}

// Input is the caller-supplied payload every mutating flow shares.
// Flow-specific free-text (PaymentReference, Reason, ItemReference)
// is folded into Metadata by the facade before it reaches here.
type Input struct {
	AccountID      uuid.UUID
	AssetTypeID    uuid.UUID
	Amount         valueobjects.Amount
	Description    string
	IdempotencyKey string
	Metadata       map[string]string
}

// maxIdempotencyRaceAttempts bounds the retry described in §4.3: at
// most one extra attempt is needed, since the request that won the
// race has already committed its idempotency record by the time this
// one's transaction rolls back.
const maxIdempotencyRaceAttempts = 2

// applyOutcome is the value threaded out of the unit of work: the
// result to return to the caller plus the audit events that a
// successful fresh run collected. A cache hit carries no events —
// nothing new happened, so a replay must never re-publish.
type applyOutcome struct {
	result *Result
	events []events.DomainEvent
}

// run executes one instantiation of operationDescriptor end to end.
// Idempotency check, account/asset validation, locking in the
// descriptor's fixed order, the balance check, the two ledger legs,
// and the idempotency store all happen inside one unit of work and
// commit or roll back together. A losing DuplicateRace on the
// idempotency insert rolls the whole attempt back (the wallet
// mutation included) and retries, so the retry's lookup takes the Hit
// path instead of applying the movement twice under the same key.
//
// Audit events are published only after the unit of work has
// successfully committed — publishing inside the transaction would
// let a later rollback (e.g. the DuplicateRace above) emit events for
// a mutation that never took effect.
func (e *Engine) run(ctx context.Context, desc operationDescriptor, in Input) (*Result, error) {
	var lastErr error
	for attempt := 0; attempt < maxIdempotencyRaceAttempts; attempt++ {
		raw, err := e.uow.ExecuteWithResult(ctx, func(txCtx context.Context) (interface{}, error) {
			if in.IdempotencyKey != "" {
				cached, hit, err := e.lookupIdempotency(txCtx, in.IdempotencyKey, desc.endpoint)
				if err != nil {
					return nil, err
				}
				if hit {
					cached.FromCache = true
					return &applyOutcome{result: cached}, nil
				}
			}

			result, evts, err := e.apply(txCtx, desc, in)
			if err != nil {
				return nil, err
			}

			if in.IdempotencyKey != "" {
				if err := e.storeIdempotency(txCtx, in.IdempotencyKey, desc.endpoint, result); err != nil {
					return nil, err
				}
			}
			return &applyOutcome{result: result, events: evts}, nil
		})
		if err == nil {
			outcome := raw.(*applyOutcome)
			if len(outcome.events) > 0 {
				// PublishBatch is documented to swallow its own
				// transport errors; a non-nil return here would be
				// a publisher bug, not a reason to fail a request
				// whose ledger write already committed.
				_ = e.publisher.PublishBatch(ctx, outcome.events)
			}
			return outcome.result, nil
		}
		if domainerrors.IsDuplicateRace(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

// apply is the part of run that must happen inside the transaction:
// resolving accounts, locking wallets, checking the balance, and
// writing the two ledger legs. It assumes idempotency has already
// been checked by the caller. The audit events it collects are
// returned, not published — they are only fired once the enclosing
// unit of work has actually committed (see run).
func (e *Engine) apply(ctx context.Context, desc operationDescriptor, in Input) (*Result, []events.DomainEvent, error) {
	if _, err := e.activeAccount(ctx, in.AccountID); err != nil {
		return nil, nil, err
	}
	assetType, err := e.activeAssetType(ctx, in.AssetTypeID)
	if err != nil {
		return nil, nil, err
	}
	systemAccount, err := e.systemAccount(ctx, desc.systemAccountName)
	if err != nil {
		return nil, nil, err
	}

	var systemWallet, userWallet *entities.Wallet
	switch desc.dir {
	case systemDebitsUser:
		// Lock order: system account first, user second (§4.4 table).
		// The user wallet is never auto-provisioned here — §4.4/§9(c)
		// make wallet creation registration's job; a missing user
		// wallet surfaces as WalletNotFound. Container bootstrap creates
		// the system accounts but not their wallets, so EnsureExists
		// creates a missing system wallet here with a zero balance.
		systemWallet, err = e.wallets.EnsureExists(ctx, systemAccount.ID(), in.AssetTypeID)
		if err != nil {
			return nil, nil, err
		}
		userWallet, err = e.wallets.LockForUpdate(ctx, in.AccountID, in.AssetTypeID)
		if err != nil {
			return nil, nil, err
		}
	case userDebitsSystem:
		// Lock order: user account first, system (revenue) second.
		userWallet, err = e.wallets.LockForUpdate(ctx, in.AccountID, in.AssetTypeID)
		if err != nil {
			return nil, nil, err
		}
		if userWallet.Balance().LessThan(in.Amount) {
			return nil, nil, &domainerrors.InsufficientFundsError{
				Balance:     userWallet.Balance().String(),
				Requested:   in.Amount.String(),
				AssetSymbol: assetType.Symbol(),
			}
		}
		systemWallet, err = e.wallets.EnsureExists(ctx, systemAccount.ID(), in.AssetTypeID)
		if err != nil {
			return nil, nil, err
		}
	}

	if desc.dir == systemDebitsUser && systemWallet.Balance().LessThan(in.Amount) {
		return nil, nil, &domainerrors.InsufficientFundsError{
			Balance:     systemWallet.Balance().String(),
			Requested:   in.Amount.String(),
			AssetSymbol: assetType.Symbol(),
		}
	}

	referenceID := uuid.New()
	debitWallet, creditWallet := systemWallet, userWallet
	if desc.dir == userDebitsSystem {
		debitWallet, creditWallet = userWallet, systemWallet
	}

	if err := debitWallet.Debit(in.Amount); err != nil {
		return nil, nil, err
	}
	creditWallet.Credit(in.Amount)

	debitDescription := desc.systemLegDescription
	creditDescription := desc.userLegDescription
	if desc.dir == userDebitsSystem {
		debitDescription, creditDescription = desc.userLegDescription, desc.systemLegDescription
	}

	debitTx := entities.NewTransaction(referenceID, debitWallet.ID(), desc.transactionType,
		in.Amount.Negate(), debitWallet.Balance(),
		debitDescription(in.Amount, assetType.Symbol(), in.Metadata), in.IdempotencyKey, in.Metadata)
	creditTx := entities.NewTransaction(referenceID, creditWallet.ID(), desc.transactionType,
		in.Amount, creditWallet.Balance(),
		creditDescription(in.Amount, assetType.Symbol(), in.Metadata), in.IdempotencyKey, in.Metadata)

	if err := e.wallets.Save(ctx, debitWallet); err != nil {
		return nil, nil, fmt.Errorf("saving debited wallet: %w", err)
	}
	if err := e.wallets.Save(ctx, creditWallet); err != nil {
		return nil, nil, fmt.Errorf("saving credited wallet: %w", err)
	}
	if err := e.transactions.Save(ctx, debitTx); err != nil {
		return nil, nil, fmt.Errorf("saving debit leg: %w", err)
	}
	if err := e.transactions.Save(ctx, creditTx); err != nil {
		return nil, nil, fmt.Errorf("saving credit leg: %w", err)
	}

	collector := events.NewCollector()
	collector.Add(events.NewWalletDebited(debitWallet.ID(), in.Amount, debitTx.ID(), debitWallet.Balance()))
	collector.Add(events.NewWalletCredited(creditWallet.ID(), in.Amount, creditTx.ID(), creditWallet.Balance()))
	collector.Add(events.NewTransactionCompleted(referenceID, string(desc.transactionType), in.Amount))

	userLegBalance := userWallet.Balance()

	return &Result{
		ReferenceID:     referenceID,
		TransactionType: desc.transactionType,
		Amount:          in.Amount,
		BalanceAfter:    userLegBalance,
		Message:         desc.successMessage(in.Amount, assetType.Symbol()),
	}, collector.All(), nil
}

func (e *Engine) activeAccount(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	account, err := e.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsActive() {
		return nil, &domainerrors.AccountNotFoundError{AccountID: id.String()}
	}
	return account, nil
}

func (e *Engine) activeAssetType(ctx context.Context, id uuid.UUID) (*entities.AssetType, error) {
	asset, err := e.assetTypes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil || !asset.IsActive() {
		return nil, &domainerrors.AssetTypeNotFoundError{AssetTypeID: id.String()}
	}
	return asset, nil
}

func (e *Engine) systemAccount(ctx context.Context, username string) (*entities.Account, error) {
	account, err := e.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsSystem() || !account.IsActive() {
		return nil, &domainerrors.AccountNotFoundError{AccountID: "system:" + username}
	}
	return account, nil
}
