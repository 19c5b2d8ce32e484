package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartcore/internal/db"
)

const uniqueViolation = "23505"

func withTx[T any](ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) (T, error)) (_ T, txErr error) {
	var zero T

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return zero, fmt.Errorf("pool.BeginTx: %w", err)
	}

	// Rollback must reach the server even when the caller has gone away.
	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(context.WithoutCancel(ctx))
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}

	return result, nil
}

// withSavepoint runs fn under a savepoint of tx so that a failed statement,
// typically a unique violation, can be rolled back without aborting tx.
func withSavepoint(ctx context.Context, tx pgx.Tx, q *db.Queries, fn func(q *db.Queries) error) (spErr error) {
	if tx == nil {
		return fn(q)
	}

	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("tx.Begin: %w", err)
	}

	defer func() {
		if spErr != nil {
			rollbackErr := sp.Rollback(context.WithoutCancel(ctx))
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				spErr = errors.Join(spErr, fmt.Errorf("sp.Rollback: %w", rollbackErr))
			}
		}
	}()

	if err := fn(q.WithTx(sp)); err != nil {
		return err
	}

	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("sp.Commit: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
