// Package txmanager runs functions inside SERIALIZABLE transactions with
// bounded retries on serialization failures. The active transaction travels
// through context (см. pkg/dbmetrics), поэтому репозитории не знают о
// транзакциях напрямую.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/salonhq/scheduling-service/pkg/dbmetrics"
)

const (
	maxAttempts  = 3
	retryBackoff = 25 * time.Millisecond
)

var (
	// ErrTxBusy возвращается, когда транзакция не смогла завершиться из-за
	// конкуренции (serialization failure, deadlock, lock timeout) после всех
	// попыток, либо из-за истечения дедлайна контекста. Вызывающий может повторить.
	ErrTxBusy = errors.New("txmanager: transaction busy, retry later")

	// ErrTransaction возвращается при прочих ошибках управления транзакцией
	ErrTransaction = errors.New("txmanager: transaction error")
)

// Postgres error codes, см. https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqLockNotAvailable     = "55P03"
)

// TxBeginner начинает транзакции (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager сериализуемые транзакции с повторами
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри SERIALIZABLE транзакции.
// При serialization failure / deadlock транзакция повторяется до maxAttempts раз.
// Бизнес-ошибки из fn не повторяются и возвращаются как есть.
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
			return fmt.Errorf("%w: %v", ErrTxBusy, ctx.Err())
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}

	return fmt.Errorf("%w: %d attempts exhausted: %v", ErrTxBusy, maxAttempts, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrTxBusy, ctx.Err())
		}
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		if pqErr := pqError(err); pqErr != nil {
			return fmt.Errorf("%w: commit: %v", ErrTxBusy, err)
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrTxBusy, ctx.Err())
		}
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	return nil
}

// isRetryable определяет, имеет ли смысл повторить транзакцию
func isRetryable(err error) bool {
	if errors.Is(err, ErrTxBusy) {
		return true
	}
	pqErr := pqError(err)
	if pqErr == nil {
		return false
	}
	switch string(pqErr.Code) {
	case pqSerializationFailure, pqDeadlockDetected, pqLockNotAvailable:
		return true
	}
	return false
}

func pqError(err error) *pq.Error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr
	}
	return nil
}
