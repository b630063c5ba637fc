// Package simpletxmanager is the uninstrumented counterpart of pkg/txmanager
// for deployments with metrics disabled. Semantics are identical: SERIALIZABLE
// isolation, bounded retries, ErrTxBusy on contention.
package simpletxmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/salonhq/scheduling-service/pkg/dbmetrics"
	"github.com/salonhq/scheduling-service/pkg/txmanager"
)

const (
	maxAttempts  = 3
	retryBackoff = 25 * time.Millisecond
)

// TransactionManager сериализуемые транзакции поверх чистого *sql.DB
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает менеджер транзакций без метрик
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри SERIALIZABLE транзакции с повторами
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}

		if !isRetryable(err) {
			return err
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", txmanager.ErrTxBusy, ctx.Err())
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}

	return fmt.Errorf("%w: %d attempts exhausted: %v", txmanager.ErrTxBusy, maxAttempts, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", txmanager.ErrTxBusy, ctx.Err())
		}
		return fmt.Errorf("%w: begin: %v", txmanager.ErrTransaction, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("%w: commit: %v", txmanager.ErrTxBusy, err)
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", txmanager.ErrTxBusy, ctx.Err())
		}
		return fmt.Errorf("%w: commit: %v", txmanager.ErrTransaction, err)
	}

	return nil
}

func isRetryable(err error) bool {
	if errors.Is(err, txmanager.ErrTxBusy) {
		return true
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}
