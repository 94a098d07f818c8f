package engine

import (
	"context"
	"testing"
	"time"

	"github.com/prashant0321/wallet-service/internal/domain/entities"
	domainerrors "github.com/prashant0321/wallet-service/internal/domain/errors"
	"github.com/prashant0321/wallet-service/internal/domain/valueobjects"
	"github.com/google/uuid"
)

type testFixture struct {
	engine    *Engine
	wallets   *fakeWallets
	publisher *fakePublisher
	user      *entities.Account
	asset     *entities.AssetType
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	accounts := newFakeAccounts()
	assetTypes := newFakeAssetTypes()
	wallets := newFakeWallets()
	transactions := newFakeTransactions()
	idempotency := newFakeIdempotency()
	publisher := newFakePublisher()

	user := entities.NewAccount("alice")
	treasury := entities.NewSystemAccount(SystemTreasury)
	bonusPool := entities.NewSystemAccount(SystemBonusPool)
	revenue := entities.NewSystemAccount(SystemRevenue)
	for _, a := range []*entities.Account{user, treasury, bonusPool, revenue} {
		_ = accounts.Save(context.Background(), a)
	}

	asset := entities.NewAssetType("PTS", "Points")
	assetTypes.add(asset)

	wallets.seed(entities.NewWallet(treasury.ID(), asset.ID()))
	wallets.seed(entities.NewWallet(bonusPool.ID(), asset.ID()))
	revenueWallet := entities.NewWallet(revenue.ID(), asset.ID())
	revenueWallet.Credit(valueobjects.MustAmount("0"))
	wallets.seed(revenueWallet)

	treasuryWallet, _ := wallets.LockForUpdate(context.Background(), treasury.ID(), asset.ID())
	treasuryWallet.Credit(valueobjects.MustAmount("100000"))
	bonusWallet, _ := wallets.LockForUpdate(context.Background(), bonusPool.ID(), asset.ID())
	bonusWallet.Credit(valueobjects.MustAmount("100000"))

	e := New(accounts, assetTypes, wallets, transactions, idempotency, publisher, fakeUnitOfWork{}, 24*time.Hour)

	return &testFixture{engine: e, wallets: wallets, publisher: publisher, user: user, asset: asset}
}

// seedUserWallet provisions the user's wallet at a zero balance, the
// way registration is expected to for every asset type it supports
// (§9(c)) — the engine itself never auto-creates a user wallet.
func (f *testFixture) seedUserWallet() {
	f.wallets.seed(entities.NewWallet(f.user.ID(), f.asset.ID()))
}

func TestTopUp_CreditsUserDebitsTreasury(t *testing.T) {
	f := newFixture(t)
	f.seedUserWallet()

	result, err := f.engine.TopUp(context.Background(), Input{
		AccountID:   f.user.ID(),
		AssetTypeID: f.asset.ID(),
		Amount:      valueobjects.MustAmount("100"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BalanceAfter.String() != "100.0000" {
		t.Errorf("balance after = %s, want 100.0000", result.BalanceAfter.String())
	}

	userWallet, _ := f.wallets.FindByAccountAndAsset(context.Background(), f.user.ID(), f.asset.ID())
	if !userWallet.Balance().Equals(valueobjects.MustAmount("100")) {
		t.Errorf("user wallet balance = %s, want 100", userWallet.Balance().String())
	}
}

func TestIssueBonus_CreditsUser(t *testing.T) {
	f := newFixture(t)
	f.seedUserWallet()

	result, err := f.engine.IssueBonus(context.Background(), Input{
		AccountID:   f.user.ID(),
		AssetTypeID: f.asset.ID(),
		Amount:      valueobjects.MustAmount("25"),
		Metadata:    map[string]string{"reason": "signup"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TransactionType != entities.TransactionTypeBonus {
		t.Errorf("transaction type = %s, want BONUS", result.TransactionType)
	}
}

func TestSpend_DebitsUserCreditsRevenue(t *testing.T) {
	f := newFixture(t)
	f.seedUserWallet()

	_, err := f.engine.TopUp(context.Background(), Input{
		AccountID: f.user.ID(), AssetTypeID: f.asset.ID(), Amount: valueobjects.MustAmount("100"),
	})
	if err != nil {
		t.Fatalf("top up failed: %v", err)
	}

	result, err := f.engine.Spend(context.Background(), Input{
		AccountID: f.user.ID(), AssetTypeID: f.asset.ID(), Amount: valueobjects.MustAmount("30"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BalanceAfter.String() != "70.0000" {
		t.Errorf("balance after = %s, want 70.0000", result.BalanceAfter.String())
	}
}

func TestSpend_InsufficientFunds(t *testing.T) {
	f := newFixture(t)
	f.seedUserWallet()

	_, err := f.engine.Spend(context.Background(), Input{
		AccountID: f.user.ID(), AssetTypeID: f.asset.ID(), Amount: valueobjects.MustAmount("10"),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !domainerrors.IsInsufficientFunds(err) {
		t.Errorf("expected InsufficientFundsError, got %T", err)
	}
}

func TestTopUp_AccountNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.TopUp(context.Background(), Input{
		AccountID: uuid.New(), AssetTypeID: f.asset.ID(), Amount: valueobjects.MustAmount("10"),
	})
	if !domainerrors.IsAccountNotFound(err) {
		t.Errorf("expected AccountNotFoundError, got %T: %v", err, err)
	}
}

func TestTopUp_AssetTypeNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.TopUp(context.Background(), Input{
		AccountID: f.user.ID(), AssetTypeID: uuid.New(), Amount: valueobjects.MustAmount("10"),
	})
	if !domainerrors.IsAssetTypeNotFound(err) {
		t.Errorf("expected AssetTypeNotFoundError, got %T: %v", err, err)
	}
}

func TestTopUp_IdempotentReplayReturnsCachedResult(t *testing.T) {
	f := newFixture(t)
	f.seedUserWallet()
	in := Input{
		AccountID: f.user.ID(), AssetTypeID: f.asset.ID(),
		Amount: valueobjects.MustAmount("50"), IdempotencyKey: "client-key-1",
	}

	first, err := f.engine.TopUp(context.Background(), in)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := f.engine.TopUp(context.Background(), in)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if first.ReferenceID != second.ReferenceID {
		t.Error("replay should return the same reference id as the original request")
	}

	userWallet, _ := f.wallets.FindByAccountAndAsset(context.Background(), f.user.ID(), f.asset.ID())
	if !userWallet.Balance().Equals(valueobjects.MustAmount("50")) {
		t.Errorf("replay must not apply the credit twice, balance = %s", userWallet.Balance().String())
	}
}

func TestTopUp_IdempotencyKeyReusedAcrossEndpoints(t *testing.T) {
	f := newFixture(t)
	f.seedUserWallet()
	key := "shared-key"

	_, err := f.engine.TopUp(context.Background(), Input{
		AccountID: f.user.ID(), AssetTypeID: f.asset.ID(), Amount: valueobjects.MustAmount("10"), IdempotencyKey: key,
	})
	if err != nil {
		t.Fatalf("top up failed: %v", err)
	}

	_, err = f.engine.IssueBonus(context.Background(), Input{
		AccountID: f.user.ID(), AssetTypeID: f.asset.ID(), Amount: valueobjects.MustAmount("10"), IdempotencyKey: key,
	})
	if !domainerrors.IsIdempotencyConflict(err) {
		t.Errorf("expected IdempotencyConflictError, got %T: %v", err, err)
	}
}

func TestTopUp_PublishesAuditEvents(t *testing.T) {
	f := newFixture(t)
	f.seedUserWallet()

	_, err := f.engine.TopUp(context.Background(), Input{
		AccountID: f.user.ID(), AssetTypeID: f.asset.ID(), Amount: valueobjects.MustAmount("40"),
	})
	if err != nil {
		t.Fatalf("top up failed: %v", err)
	}

	events := f.publisher.events
	if len(events) == 0 {
		t.Fatal("expected audit events to be published")
	}
}

func TestGetBalance_WalletNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.GetBalance(context.Background(), f.user.ID(), f.asset.ID())
	if !domainerrors.IsWalletNotFound(err) {
		t.Errorf("expected WalletNotFoundError before any wallet is provisioned, got %T: %v", err, err)
	}
}

func TestGetBalance_AfterTopUp(t *testing.T) {
	f := newFixture(t)
	f.seedUserWallet()

	_, err := f.engine.TopUp(context.Background(), Input{
		AccountID: f.user.ID(), AssetTypeID: f.asset.ID(), Amount: valueobjects.MustAmount("15"),
	})
	if err != nil {
		t.Fatalf("top up failed: %v", err)
	}

	view, err := f.engine.GetBalance(context.Background(), f.user.ID(), f.asset.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.Wallet.Balance().Equals(valueobjects.MustAmount("15")) {
		t.Errorf("balance = %s, want 15", view.Wallet.Balance().String())
	}
}

func TestGetTransactionHistory_ReturnsUserWalletLegOnly(t *testing.T) {
	f := newFixture(t)
	f.seedUserWallet()

	_, err := f.engine.TopUp(context.Background(), Input{
		AccountID: f.user.ID(), AssetTypeID: f.asset.ID(), Amount: valueobjects.MustAmount("20"),
	})
	if err != nil {
		t.Fatalf("top up failed: %v", err)
	}

	history, err := f.engine.GetTransactionHistory(context.Background(), f.user.ID(), f.asset.ID(), 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if history.Total != 1 {
		t.Errorf("expected 1 ledger row on the user's wallet, got %d", history.Total)
	}
}
