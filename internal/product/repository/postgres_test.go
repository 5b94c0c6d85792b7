package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/goldsmith-catalog-service/internal/apperror"
	"github.com/fekuna/goldsmith-catalog-service/internal/model"
	"github.com/fekuna/goldsmith-catalog-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "name", "short_description", "external_product_id", "karat", "weight",
	"making_cost_percent", "wastage_percent", "image_url", "price", "making_cost",
	"wastage_cost", "gold_rate_per_gram", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

func ringRow(rows *sqlmock.Rows, id string, now time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "Temple ring", "Hand finished", "RNG-001", "22k", 8.5,
		2.5, 2.5, nil, 53550.0, 1275.0, 1275.0, 6000.0, now, now)
}

func TestCreateProduct(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	url := "https://cdn.example/ring.png"

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("p-1", "Temple ring", "Hand finished", "RNG-001", model.Karat22, 8.5,
			2.5, 2.5, &url, 53550.0, 1275.0, 1275.0, 6000.0, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &model.Product{
		BaseModel:         model.BaseModel{ID: "p-1", CreatedAt: now, UpdatedAt: now},
		Name:              "Temple ring",
		ShortDescription:  "Hand finished",
		ExternalProductID: "RNG-001",
		Karat:             model.Karat22,
		Weight:            8.5,
		MakingCostPercent: 2.5,
		WastagePercent:    2.5,
		ImageURL:          &url,
		Price:             53550,
		MakingCost:        1275,
		WastageCost:       1275,
		GoldRatePerGram:   6000,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &model.Product{BaseModel: model.BaseModel{ID: "p-1"}})
	assert.True(t, errors.Is(err, apperror.ErrPersistence))
}

func TestFindByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs("p-1").
		WillReturnRows(ringRow(sqlmock.NewRows(columns), "p-1", now))

	p, err := repo.FindByID(context.Background(), "p-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Temple ring", p.Name)
	assert.Equal(t, model.Karat22, p.Karat)
	assert.Nil(t, p.ImageURL)
	assert.Equal(t, 53550.0, p.Price)
}

func TestFindByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs("p-2").
		WillReturnRows(sqlmock.NewRows(columns))
	p, err := repo.FindByID(context.Background(), "p-2")
	require.NoError(t, err)
	assert.Nil(t, p)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).
		WithArgs("not-a-uuid").
		WillReturnError(&pq.Error{Code: "22P02"})
	p, err = repo.FindByID(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFindAllWithFilters(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM products WHERE karat = $1 AND (name ILIKE $2")).
		WithArgs("22k", "%ring%", "%ring%", "%ring%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT 2 OFFSET 2")).
		WithArgs("22k", "%ring%", "%ring%", "%ring%").
		WillReturnRows(ringRow(sqlmock.NewRows(columns), "p-3", now))

	products, count, err := repo.FindAll(context.Background(), &dto.ProductFilters{
		Karat:       "22k",
		SearchQuery: "ring",
		Page:        2,
		PageSize:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, products, 1)
	assert.Equal(t, "p-3", products[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllUnpaged(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM products")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(columns))

	products, count, err := repo.FindAll(context.Background(), &dto.ProductFilters{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestFindByIDs(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	products, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(ringRow(sqlmock.NewRows(columns), "p-1", now))

	products, err = repo.FindByIDs(context.Background(), []string{"p-1"})
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestUpdateMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Product{BaseModel: model.BaseModel{ID: "p-9"}})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "p-1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Delete(context.Background(), "p-1")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs("bogus").
		WillReturnError(&pq.Error{Code: "22P02"})
	err = repo.Delete(context.Background(), "bogus")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
