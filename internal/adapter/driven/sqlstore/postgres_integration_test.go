//go:build integration

package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mehtaportfolio/data-backend/internal/domain/model"
	"github.com/mehtaportfolio/data-backend/internal/domain/port/driven"
)

// setupPostgresDB starts a disposable Postgres container, migrates it and
// returns a connected DB.
func setupPostgresDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("databackend"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	db, err := Open(ctx, connStr, "")
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return db
}

func TestPostgres_RecordLifecycle(t *testing.T) {
	db := setupPostgresDB(t)
	require.Equal(t, DialectPostgres, db.Dialect)

	tbl := NewTables(db).InsurancePolicies
	tbl.now = tickingClock(clockStart)
	ctx := context.Background()

	created, err := tbl.Create(ctx, model.InsurancePolicy{
		PolicyName:    strPtr("Term Life"),
		InsuredAmount: decimal.NewNullDecimal(decimal.RequireFromString("1000000")),
		PremiumAmount: decimal.NewNullDecimal(decimal.RequireFromString("12500.50")),
	})
	require.NoError(t, err)
	assert.True(t, clockStart.Equal(created.CreatedAt))
	assert.Equal(t, "12500.5", created.PremiumAmount.Decimal.String())

	updated, err := tbl.Update(ctx, created.ID, model.InsurancePolicy{Frequency: strPtr("yearly")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Term Life", *updated.PolicyName)
	assert.Equal(t, "yearly", *updated.Frequency)
	require.NotNil(t, updated.UpdatedAt)

	all, err := tbl.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, tbl.Delete(ctx, created.ID))
	require.NoError(t, tbl.Delete(ctx, created.ID))

	_, err = tbl.Update(ctx, created.ID, model.InsurancePolicy{Frequency: strPtr("monthly")}, nil)
	assert.True(t, errors.Is(err, driven.ErrNoRows))
}

func TestPostgres_DummyLatest(t *testing.T) {
	db := setupPostgresDB(t)
	tbl := NewTables(db).Dummy
	tbl.now = tickingClock(clockStart)
	ctx := context.Background()

	one := int64(1)
	point := float64(time.Now().UnixMilli())
	_, err := tbl.Create(ctx, model.DummyRow{SrNo: &one, IndexNo: &one, PointNo: &point})
	require.NoError(t, err)

	latest, err := tbl.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, point, *latest.PointNo)

	deleted, err := tbl.DeleteReturning(ctx, latest.ID)
	require.NoError(t, err)
	assert.Equal(t, latest.ID, deleted.ID)

	version, dirty, err := MigrationVersion(db)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}
