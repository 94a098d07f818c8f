package ports

import "context"

// UnitOfWork wraps one database transaction. Every mutating engine
// flow runs inside exactly one Execute call: the wallet locks it
// acquires, the ledger rows it writes, and the idempotency record it
// stores all commit together, or none of them do.
type UnitOfWork interface {
	// Execute runs fn inside a transaction. The context passed to fn
	// carries the transaction; repository calls inside fn must use it,
	// not the outer ctx, or they will run outside the transaction.
	//
	// fn returning a non-nil error rolls the transaction back; fn
	// returning nil commits it.
	Execute(ctx context.Context, fn func(context.Context) error) error

	// ExecuteWithResult is Execute for flows that need to return a
	// value alongside the error, such as the result DTO a flow builds
	// after its writes succeed.
	ExecuteWithResult(ctx context.Context, fn func(context.Context) (interface{}, error)) (interface{}, error)
}
