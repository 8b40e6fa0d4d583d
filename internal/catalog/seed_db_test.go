package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	missing := &pgconn.PgError{Code: pgUndefinedTable, Message: `relation "products" does not exist`}

	err := classify(missing)
	assert.ErrorIs(t, err, ErrSeedSchemaMissing)
	assert.ErrorContains(t, err, `relation "products" does not exist`)

	err = classify(fmt.Errorf("query products: %w", missing))
	assert.ErrorIs(t, err, ErrSeedSchemaMissing)

	other := &pgconn.PgError{Code: "28P01", Message: "password authentication failed"}
	assert.Same(t, other, classify(other))

	plain := errors.New("connection refused")
	assert.Same(t, plain, classify(plain))
}

func TestWithTimeout(t *testing.T) {
	err := withTimeout(context.Background(), time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
