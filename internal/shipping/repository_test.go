package shipping

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByRegion(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, region, fee, created_at`).
			WithArgs("Lagos").
			WillReturnRows(sqlmock.NewRows([]string{"id", "region", "fee", "created_at"}).
				AddRow("z1", "Lagos", int64(1500), time.Now()))

		zone, err := repo.GetByRegion(ctx, "Lagos")
		require.NoError(t, err)
		assert.Equal(t, int64(1500), zone.Fee)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, region, fee, created_at`).
			WithArgs("Mars").
			WillReturnRows(sqlmock.NewRows([]string{"id", "region", "fee", "created_at"}))

		_, err := repo.GetByRegion(ctx, "Mars")
		assert.ErrorIs(t, err, ErrZoneNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO shipping_zones`).
			WithArgs(sqlmock.AnyArg(), "Abuja", int64(2000)).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		zone, err := repo.Create(ctx, ZoneInput{Region: "Abuja", Fee: 2000})
		require.NoError(t, err)
		assert.NotEmpty(t, zone.ID)
		assert.Equal(t, "Abuja", zone.Region)
	})

	t.Run("DuplicateRegion", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO shipping_zones`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "shipping_zones_region_key"})

		_, err := repo.Create(ctx, ZoneInput{Region: "Lagos", Fee: 1500})
		assert.ErrorIs(t, err, ErrZoneExists)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM shipping_zones`).
			WithArgs("z1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "z1"))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM shipping_zones`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrZoneNotFound)
	})
}
