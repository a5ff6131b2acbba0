package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "price", "stock", "stock_min", "status", "category_id", "created_at", "updated_at",
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("CategoryAndSearch", func(t *testing.T) {
		catID := int64(2)
		search := "polo"
		filter := Filter{CategoryID: &catID, Search: &search}

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE \(category_id = \$1 AND \(name ILIKE \$2 OR description ILIKE \$3\)\)`).
			WithArgs(catID, "%polo%", "%polo%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery(`SELECT id, name, .* FROM products WHERE \(category_id = \$1 AND \(name ILIKE \$2 OR description ILIKE \$3\)\) ORDER BY name LIMIT 20 OFFSET 0`).
			WithArgs(catID, "%polo%", "%polo%").
			WillReturnRows(productRows().AddRow(
				7, "Polo pique", "Polo pique manga corta", 10.00, 120, 20, "active", 2, time.Now(), time.Now(),
			))

		products, total, err := repo.List(context.Background(), filter, 20, 0)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, products, 1)
		assert.Equal(t, int64(7), products[0].ID)
	})

	t.Run("LowStockFilter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE \(stock <= stock_min\)`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT id, name, .* FROM products WHERE \(stock <= stock_min\) ORDER BY name LIMIT 20 OFFSET 0`).
			WillReturnRows(productRows())

		_, total, err := repo.List(context.Background(), Filter{LowStock: true}, 20, 0)
		assert.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestRepository_AdjustStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Deduct", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT stock, status FROM products WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"stock", "status"}).AddRow(10, "active"))
		mock.ExpectQuery(`UPDATE products SET stock = \$1, status = \$2, updated_at = NOW\(\)`).
			WithArgs(6, StatusActive, int64(7)).
			WillReturnRows(productRows().AddRow(
				7, "Polo pique", "", 10.00, 6, 20, "active", 2, time.Now(), time.Now(),
			))
		mock.ExpectCommit()

		p, err := repo.AdjustStock(ctx, 7, -4)
		assert.NoError(t, err)
		assert.Equal(t, 6, p.Stock)
	})

	t.Run("CrossesToZeroFlipsStatus", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT stock, status FROM products WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"stock", "status"}).AddRow(3, "active"))
		mock.ExpectQuery(`UPDATE products SET stock = \$1, status = \$2`).
			WithArgs(0, StatusOutOfStock, int64(7)).
			WillReturnRows(productRows().AddRow(
				7, "Polo pique", "", 10.00, 0, 20, "out_of_stock", 2, time.Now(), time.Now(),
			))
		mock.ExpectCommit()

		p, err := repo.AdjustStock(ctx, 7, -5)
		assert.NoError(t, err)
		assert.Equal(t, 0, p.Stock, "stock is clamped at zero")
		assert.Equal(t, StatusOutOfStock, p.Status)
	})

	t.Run("RestockFlipsBackToActive", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT stock, status FROM products WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"stock", "status"}).AddRow(0, "out_of_stock"))
		mock.ExpectQuery(`UPDATE products SET stock = \$1, status = \$2`).
			WithArgs(50, StatusActive, int64(7)).
			WillReturnRows(productRows().AddRow(
				7, "Polo pique", "", 10.00, 50, 20, "active", 2, time.Now(), time.Now(),
			))
		mock.ExpectCommit()

		p, err := repo.AdjustStock(ctx, 7, 50)
		assert.NoError(t, err)
		assert.Equal(t, StatusActive, p.Status)
	})

	t.Run("NotFoundRollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT stock, status FROM products WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"stock", "status"}))
		mock.ExpectRollback()

		_, err := repo.AdjustStock(ctx, 99, 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("UpdateFailureRollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT stock, status FROM products WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"stock", "status"}).AddRow(10, "active"))
		mock.ExpectQuery(`UPDATE products SET stock`).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := repo.AdjustStock(ctx, 7, 1)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(productRows())

	_, err = repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
