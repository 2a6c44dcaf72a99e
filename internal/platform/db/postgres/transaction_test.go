package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

type recordingObserver struct {
	outcomes []string
}

func (o *recordingObserver) ObserveTx(mode, outcome string) {
	o.outcomes = append(o.outcomes, mode+":"+outcome)
}

func TestTransactionManager_ReadWriteCommit(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	obs := &recordingObserver{}
	tm := NewTransactionManager(mock, pgx.Serializable, obs)

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadWrite})
	mock.ExpectCommit()

	err = tm.WithinReadWrite(context.Background(), func(ctx context.Context) error {
		if _, ok := txFromContext(ctx); !ok {
			t.Fatalf("transaction not injected into context")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("WithinReadWrite returned error: %v", err)
	}
	if len(obs.outcomes) != 1 || obs.outcomes[0] != "read_write:commit" {
		t.Fatalf("unexpected observed outcomes: %v", obs.outcomes)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransactionManager_ReadOnlyRollbackOnError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	obs := &recordingObserver{}
	tm := NewTransactionManager(mock, pgx.ReadCommitted, obs)

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadOnly})
	mock.ExpectRollback()

	expectedErr := errors.New("usecase error")
	err = tm.WithinReadOnly(context.Background(), func(ctx context.Context) error {
		if _, ok := txFromContext(ctx); !ok {
			t.Fatalf("transaction not injected into context")
		}
		return expectedErr
	})

	if !errors.Is(err, expectedErr) {
		t.Fatalf("expected %v, got %v", expectedErr, err)
	}
	if len(obs.outcomes) != 1 || obs.outcomes[0] != "read_only:rollback" {
		t.Fatalf("unexpected observed outcomes: %v", obs.outcomes)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransactionManager_BeginFailure(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	obs := &recordingObserver{}
	tm := NewTransactionManager(mock, pgx.ReadCommitted, obs)

	beginErr := errors.New("too many connections")
	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}).WillReturnError(beginErr)

	called := false
	err = tm.WithinReadWrite(context.Background(), func(context.Context) error {
		called = true
		return nil
	})

	if !errors.Is(err, beginErr) {
		t.Fatalf("expected begin error, got %v", err)
	}
	if called {
		t.Fatalf("fn must not run when begin fails")
	}
	if len(obs.outcomes) != 1 || obs.outcomes[0] != "read_write:begin_error" {
		t.Fatalf("unexpected observed outcomes: %v", obs.outcomes)
	}
}

func TestTransactionManager_NestedReuse(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	tm := NewTransactionManager(mock, pgx.ReadCommitted, nil)

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite})
	mock.ExpectCommit()

	err = tm.WithinReadWrite(context.Background(), func(ctx context.Context) error {
		return tm.WithinReadOnly(ctx, func(inner context.Context) error {
			if _, ok := txFromContext(inner); !ok {
				t.Fatalf("nested transaction lost context")
			}
			return nil
		})
	})

	if err != nil {
		t.Fatalf("nested transaction returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransactionManager_NilManagerRunsInline(t *testing.T) {
	t.Parallel()

	var tm *TransactionManager
	if NewTransactionManager(nil, pgx.ReadCommitted, nil) != nil {
		t.Fatalf("expected nil manager for nil pool")
	}

	ran := false
	if err := tm.WithinReadWrite(context.Background(), func(context.Context) error {
		ran = true
		return nil
	}); err != nil || !ran {
		t.Fatalf("expected inline execution, ran=%v err=%v", ran, err)
	}
}

func TestParseIsolationLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]pgx.TxIsoLevel{
		"":                pgx.ReadCommitted,
		"read committed":  pgx.ReadCommitted,
		"Repeatable Read": pgx.RepeatableRead,
		"serializable":    pgx.Serializable,
	}
	for raw, want := range cases {
		got, err := ParseIsolationLevel(raw)
		if err != nil || got != want {
			t.Fatalf("ParseIsolationLevel(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}

	if _, err := ParseIsolationLevel("snapshot"); err == nil {
		t.Fatalf("expected error for unsupported level")
	}
}
