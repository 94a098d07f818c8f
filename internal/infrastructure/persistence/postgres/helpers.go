package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type txKey struct{}

func injectTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func extractTx(ctx context.Context) pgx.Tx {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	if !ok {
		return nil
	}
	return tx
}

func hasTx(ctx context.Context) bool {
	return extractTx(ctx) != nil
}

// querier is the subset of pgx.Tx / pgxpool.Pool every repository
// needs. Each repository pulls the in-flight transaction out of ctx
// when one exists and falls back to the pool otherwise, so read-only
// queries outside a UnitOfWork.Execute still work.
type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func getQuerier(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return pool
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func isPgError(err error, code string) bool {
	if err == nil {
		return false
	}
	pgErr, ok := err.(*pgconn.PgError)
	return ok && pgErr.Code == code
}

func isUniqueViolation(err error, constraintName string) bool {
	pgErr, ok := err.(*pgconn.PgError)
	if !ok || pgErr.Code != pgUniqueViolation {
		return false
	}
	if constraintName == "" {
		return true
	}
	return strings.Contains(pgErr.ConstraintName, constraintName)
}

func isForeignKeyViolation(err error) bool {
	return isPgError(err, pgForeignKeyViolation)
}

func isCheckViolation(err error) bool {
	return isPgError(err, pgCheckViolation)
}
