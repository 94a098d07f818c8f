package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prashant0321/wallet-service/internal/application/ports"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs the engine's mutating flows inside a Postgres
// transaction. It defaults to READ COMMITTED — the wallet row locks
// SELECT ... FOR UPDATE takes are what make the three flows safe
// under concurrency, not the isolation level.
type UnitOfWork struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewUnitOfWork creates a UnitOfWork backed by pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// Execute runs fn inside a transaction, committing on nil and rolling
// back on error or panic. Nested calls (ctx already carrying a
// transaction) run fn directly against the existing transaction.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(context.Context) error) error {
	if hasTx(ctx) {
		return fn(ctx)
	}

	tx, err := u.pool.BeginTx(ctx, u.opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	txCtx := injectTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ExecuteWithResult is Execute plus a return value.
func (u *UnitOfWork) ExecuteWithResult(ctx context.Context, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	var result interface{}
	err := u.Execute(ctx, func(txCtx context.Context) error {
		var fnErr error
		result, fnErr = fn(txCtx)
		return fnErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
