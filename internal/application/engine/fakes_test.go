package engine

import (
	"context"
	"sync"

	"github.com/prashant0321/wallet-service/internal/application/ports"
	"github.com/prashant0321/wallet-service/internal/domain/entities"
	domainerrors "github.com/prashant0321/wallet-service/internal/domain/errors"
	"github.com/prashant0321/wallet-service/internal/domain/events"
	"github.com/google/uuid"
)

// The fakes below are in-process stand-ins for the Postgres-backed
// ports. They are deliberately simple — a mutex-guarded map each —
// since the engine's correctness doesn't depend on SQL, only on the
// contracts in ports.

type fakeAccounts struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*entities.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byID: make(map[uuid.UUID]*entities.Account)}
}

func (f *fakeAccounts) Save(_ context.Context, a *entities.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID()] = a
	return nil
}

func (f *fakeAccounts) FindByID(_ context.Context, id uuid.UUID) (*entities.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id], nil
}

func (f *fakeAccounts) FindByUsername(_ context.Context, username string) (*entities.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.Username() == username {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccounts) List(_ context.Context, offset, limit int) ([]*entities.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entities.Account, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, nil
}

type fakeAssetTypes struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*entities.AssetType
}

func newFakeAssetTypes() *fakeAssetTypes {
	return &fakeAssetTypes{byID: make(map[uuid.UUID]*entities.AssetType)}
}

func (f *fakeAssetTypes) add(a *entities.AssetType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID()] = a
}

func (f *fakeAssetTypes) FindByID(_ context.Context, id uuid.UUID) (*entities.AssetType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id], nil
}

func (f *fakeAssetTypes) List(_ context.Context, offset, limit int) ([]*entities.AssetType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entities.AssetType, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, nil
}

type walletKey struct {
	account uuid.UUID
	asset   uuid.UUID
}

type fakeWallets struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*entities.Wallet
	keys map[walletKey]uuid.UUID
}

func newFakeWallets() *fakeWallets {
	return &fakeWallets{byID: make(map[uuid.UUID]*entities.Wallet), keys: make(map[walletKey]uuid.UUID)}
}

func (f *fakeWallets) seed(w *entities.Wallet) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[w.ID()] = w
	f.keys[walletKey{w.AccountID(), w.AssetTypeID()}] = w.ID()
}

func (f *fakeWallets) LockForUpdate(_ context.Context, accountID, assetTypeID uuid.UUID) (*entities.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.keys[walletKey{accountID, assetTypeID}]
	if !ok {
		return nil, &domainerrors.WalletNotFoundError{AccountID: accountID.String(), AssetTypeID: assetTypeID.String()}
	}
	return f.byID[id], nil
}

func (f *fakeWallets) EnsureExists(_ context.Context, accountID, assetTypeID uuid.UUID) (*entities.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.keys[walletKey{accountID, assetTypeID}]; ok {
		return f.byID[id], nil
	}
	w := entities.NewWallet(accountID, assetTypeID)
	f.byID[w.ID()] = w
	f.keys[walletKey{accountID, assetTypeID}] = w.ID()
	return w, nil
}

func (f *fakeWallets) FindByAccountAndAsset(_ context.Context, accountID, assetTypeID uuid.UUID) (*entities.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.keys[walletKey{accountID, assetTypeID}]
	if !ok {
		return nil, nil
	}
	return f.byID[id], nil
}

func (f *fakeWallets) Save(_ context.Context, w *entities.Wallet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[w.ID()] = w
	f.keys[walletKey{w.AccountID(), w.AssetTypeID()}] = w.ID()
	return nil
}

type fakeTransactions struct {
	mu   sync.Mutex
	rows []*entities.Transaction
}

func newFakeTransactions() *fakeTransactions {
	return &fakeTransactions{}
}

func (f *fakeTransactions) Save(_ context.Context, tx *entities.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, tx)
	return nil
}

func (f *fakeTransactions) FindByWalletID(_ context.Context, walletID uuid.UUID, offset, limit int) ([]*entities.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Transaction
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].WalletID() == walletID {
			out = append(out, f.rows[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) || limit == 0 {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f *fakeTransactions) CountByWalletID(_ context.Context, walletID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, row := range f.rows {
		if row.WalletID() == walletID {
			count++
		}
	}
	return count, nil
}

type fakeIdempotency struct {
	mu   sync.Mutex
	byKey map[string]*entities.IdempotencyRecord
}

func newFakeIdempotency() *fakeIdempotency {
	return &fakeIdempotency{byKey: make(map[string]*entities.IdempotencyRecord)}
}

func (f *fakeIdempotency) Find(_ context.Context, key string) (*entities.IdempotencyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byKey[key], nil
}

func (f *fakeIdempotency) Insert(_ context.Context, record *entities.IdempotencyRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byKey[record.Key]; exists {
		return &domainerrors.DuplicateRaceError{Key: record.Key}
	}
	f.byKey[record.Key] = record
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{}
}

func (f *fakePublisher) PublishBatch(_ context.Context, evts []events.DomainEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evts...)
	return nil
}

// fakeUnitOfWork runs fn directly against the caller's context — the
// fakes above have no real transaction boundary to honor, so this
// simply provides the same call shape the engine depends on.
type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Execute(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (fakeUnitOfWork) ExecuteWithResult(ctx context.Context, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	return fn(ctx)
}

var _ ports.AccountRepository = (*fakeAccounts)(nil)
var _ ports.AssetTypeRepository = (*fakeAssetTypes)(nil)
var _ ports.WalletRepository = (*fakeWallets)(nil)
var _ ports.TransactionRepository = (*fakeTransactions)(nil)
var _ ports.IdempotencyRepository = (*fakeIdempotency)(nil)
var _ ports.EventPublisher = (*fakePublisher)(nil)
var _ ports.UnitOfWork = fakeUnitOfWork{}
