package pg

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/tienda/internal/domain/repository"
)

func productRows() *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "store_id", "title", "description", "created_at", "updated_at", "deleted_at",
	}).
		AddRow("prod-2", "store-1", "Silla", "Silla de madera", now, now, nil).
		AddRow("prod-1", "store-1", "Mesa", "", now.Add(-time.Hour), now.Add(-time.Hour), nil)
}

func TestProductRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("prod-1", "store-1", "Mesa", "Mesa de roble").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "store_id", "title", "description", "created_at", "updated_at", "deleted_at",
		}).AddRow("prod-1", "store-1", "Mesa", "Mesa de roble", now, now, nil))

	repo := NewProductRepo(mock)
	product, err := repo.Create(context.Background(), repository.CreateProductInput{
		ID:          "prod-1",
		StoreID:     "store-1",
		Title:       "Mesa",
		Description: "Mesa de roble",
	})
	require.NoError(t, err)
	assert.Equal(t, "prod-1", product.ID)
	assert.Equal(t, "Mesa", product.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_ListByStore(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM products`).
		WithArgs("store-1", 20, 0).
		WillReturnRows(productRows())

	repo := NewProductRepo(mock)
	products, err := repo.ListByStore(context.Background(), "store-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, products, 2)
	// Más recientes primero.
	assert.Equal(t, "prod-2", products[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_ListByStore_DefaultsLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// limit <= 0 cae al default 20; offset negativo a 0.
	mock.ExpectQuery(`SELECT (.+) FROM products`).
		WithArgs("store-1", 20, 0).
		WillReturnRows(productRows())

	repo := NewProductRepo(mock)
	_, err = repo.ListByStore(context.Background(), "store-1", 0, -5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM products`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "store_id", "title", "description", "created_at", "updated_at", "deleted_at",
		}))

	repo := NewProductRepo(mock)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_Delete_SoftAndIdempotent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// Soft delete: UPDATE, nunca DELETE físico. 0 filas no es error.
	mock.ExpectExec(`UPDATE products SET deleted_at`).
		WithArgs("prod-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewProductRepo(mock)
	assert.NoError(t, repo.Delete(context.Background(), "prod-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepo_GetByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM stores`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "created_at", "updated_at", "deleted_at",
		}).AddRow("store-1", "user-1", now, now, nil))

	repo := NewStoreRepo(mock)
	store, err := repo.GetByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "store-1", store.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM stores`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "owner_id", "created_at", "updated_at", "deleted_at",
		}))

	repo := NewStoreRepo(mock)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
