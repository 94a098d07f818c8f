package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prashant0321/wallet-service/internal/domain/entities"
	domainerrors "github.com/prashant0321/wallet-service/internal/domain/errors"
)

// lookupIdempotency implements the Hit/Miss/Conflict contract from
// §4.3. A Hit unmarshals the stored response and returns it without
// touching the store; a Conflict surfaces as an error the facade maps
// to 409; a Miss returns hit=false so the caller proceeds with the
// flow.
func (e *Engine) lookupIdempotency(ctx context.Context, key, endpoint string) (*Result, bool, error) {
	record, err := e.idempotency.Find(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if record == nil || record.Expired(time.Now()) {
		return nil, false, nil
	}
	if record.Endpoint != endpoint {
		return nil, false, &domainerrors.IdempotencyConflictError{Key: key}
	}

	var cached Result
	if err := json.Unmarshal(record.ResponseBody, &cached); err != nil {
		return nil, false, err
	}
	return &cached, true, nil
}

// storeIdempotency persists the response a flow produced so a replay
// of the same key can return it verbatim. Per §4.3, a DuplicateRaceError
// here must fail the enclosing transaction: a concurrent request beat
// this one to the insert, which means its wallet mutation is about to
// commit (or already has) under this same key. Committing ours too
// would apply the movement twice under one idempotency key, violating
// §8 invariant 6. run() rolls this attempt back and retries into the
// Hit path instead of swallowing the race here.
func (e *Engine) storeIdempotency(ctx context.Context, key, endpoint string, result *Result) error {
	body, err := json.Marshal(result)
	if err != nil {
		return err
	}

	record := entities.NewIdempotencyRecord(key, endpoint, body, e.idempotencyTTL)
	return e.idempotency.Insert(ctx, record)
}
