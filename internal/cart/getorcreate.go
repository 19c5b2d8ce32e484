package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/cartcore/internal/domain"
)

type outcome int

const (
	found outcome = iota
	created
	recovered
)

// getOrCreate is the single "attempt write, detect invariant violation, re-read"
// primitive. lookup must return the row guarded by the uniqueness constraint that
// create may trip; create must report that violation as domain.ErrDuplicate.
// The re-read happens exactly once; if the winning row is still not visible the
// caller gets domain.ErrConcurrencyConflict.
func getOrCreate[T any](
	ctx context.Context,
	lookup func(ctx context.Context) (T, bool, error),
	create func(ctx context.Context) (T, error),
) (T, outcome, error) {
	var zero T

	v, ok, err := lookup(ctx)
	if err != nil {
		return zero, found, fmt.Errorf("lookup: %w", err)
	}
	if ok {
		return v, found, nil
	}

	v, err = create(ctx)
	if err == nil {
		return v, created, nil
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		return zero, created, fmt.Errorf("create: %w", err)
	}

	v, ok, err = lookup(ctx)
	if err != nil {
		return zero, recovered, fmt.Errorf("reread: %w", err)
	}
	if !ok {
		return zero, recovered, domain.ErrConcurrencyConflict
	}

	return v, recovered, nil
}
