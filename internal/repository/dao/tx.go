package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrTxConflict = errors.New("transaction conflict not resolved")

type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// RunInTx runs fn in a transaction and replays it when Postgres aborts the
// transaction with a serialization failure or a deadlock. Any other error,
// including the ones fn returns on purpose, rolls back and is returned as is.
func RunInTx(ctx context.Context, db *gorm.DB, policy RetryPolicy, fn func(tx *gorm.DB) error) error {
	for attempt := 0; ; attempt++ {
		err := db.WithContext(ctx).Transaction(fn)
		if err == nil || !isTransient(err) {
			return err
		}

		if attempt >= policy.MaxRetries {
			return fmt.Errorf("%w after %d attempts: %v", ErrTxConflict, attempt+1, err)
		}

		zap.L().Warn("retrying transaction",
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		wait := policy.Backoff << attempt
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}
