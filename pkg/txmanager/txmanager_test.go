package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/scheduling-service/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

// fakeBeginner выдает подготовленные транзакции по одной на попытку
type fakeBeginner struct {
	txs      []*fakeTx
	beginErr error
	begun    int
}

func (f *fakeBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	if f.begun >= len(f.txs) {
		return nil, errors.New("fakeBeginner: no transaction prepared for this attempt")
	}
	tx := f.txs[f.begun]
	f.begun++
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: pq.ErrorCode("40001")}
}

func TestDoSerializable_CommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	beginner := &fakeBeginner{txs: []*fakeTx{tx}}
	m := NewTransactionManager(beginner)

	var sawTx bool
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx, "fn must see the transaction in its context")
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
	assert.Equal(t, 1, beginner.begun)
}

func TestDoSerializable_BusinessErrorNotRetried(t *testing.T) {
	tx := &fakeTx{}
	beginner := &fakeBeginner{txs: []*fakeTx{tx}}
	m := NewTransactionManager(beginner)

	wantErr := errors.New("slot conflict")
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
	assert.Equal(t, 1, beginner.begun)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	// Первый коммит падает с 40001, второй проходит
	first := &fakeTx{commitErr: serializationFailure()}
	second := &fakeTx{}
	beginner := &fakeBeginner{txs: []*fakeTx{first, second}}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, first.rolledBack)
	assert.True(t, second.committed)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	beginner := &fakeBeginner{txs: []*fakeTx{
		{commitErr: serializationFailure()},
		{commitErr: serializationFailure()},
		{commitErr: serializationFailure()},
	}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrTxBusy)
	assert.Equal(t, maxAttempts, beginner.begun)
}

func TestDoSerializable_RetryableFnErrorRetried(t *testing.T) {
	// Ошибка 40001 из самого fn (конкурентный SELECT) тоже повторяется
	beginner := &fakeBeginner{txs: []*fakeTx{{}, {}}}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return serializationFailure()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoSerializable_BeginError(t *testing.T) {
	beginner := &fakeBeginner{beginErr: errors.New("pool exhausted")}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrTransaction)
}

func TestDoSerializable_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	beginner := &fakeBeginner{beginErr: ctx.Err()}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(ctx, func(ctx context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrTxBusy)
}
