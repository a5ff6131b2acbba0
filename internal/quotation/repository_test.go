package quotation

import (
	"context"
	"errors"
	"testing"
	"time"

	"confetex-be/internal/customer"
	"confetex-be/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCliente() customer.UpsertInput {
	return customer.UpsertInput{
		RUC:         "20512345678",
		RazonSocial: "Confecciones del Sur EIRL",
		Email:       "ventas@delsur.pe",
		Telefono:    "912345678",
		Direccion:   "Calle Los Telares 88, Arequipa",
	}
}

func draftQuotation() *Quotation {
	return &Quotation{
		Subtotal:   150.00,
		Total:      150.00,
		ValidUntil: time.Now().AddDate(0, 0, DefaultValidityDays),
		Items: []QuotationItem{
			{ProductID: 4, Cantidad: 10, Talla: "L", PrecioUnitario: 15.00, Subtotal: 150.00},
		},
	}
}

func TestRepository_Create(t *testing.T) {
	t.Run("AllocatesCotNumber", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		cliente := testCliente()
		q := draftQuotation()
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO customers").
			WithArgs(cliente.RUC, cliente.RazonSocial, cliente.Email, cliente.Telefono, cliente.Direccion).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
		mock.ExpectQuery("INSERT INTO doc_counters").
			WithArgs(NumberPrefix, now.Format("2006-01-02")).
			WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(1))
		mock.ExpectQuery("INSERT INTO quotations").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(55, now, now))
		mock.ExpectQuery("INSERT INTO quotation_items").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		repo := NewRepository(db)
		err = repo.Create(context.Background(), q, cliente)

		require.NoError(t, err)
		assert.Equal(t, utils.FormatDocNumber(NumberPrefix, now, 1), q.Numero)
		assert.Equal(t, int64(12), q.CustomerID)
		assert.Equal(t, StatusDraft, q.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ItemFailureRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO customers").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
		mock.ExpectQuery("INSERT INTO doc_counters").
			WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(2))
		mock.ExpectQuery("INSERT INTO quotations").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(56, now, now))
		mock.ExpectQuery("INSERT INTO quotation_items").
			WillReturnError(errors.New("violates foreign key constraint"))
		mock.ExpectRollback()

		repo := NewRepository(db)
		err = repo.Create(context.Background(), draftQuotation(), testCliente())

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_MarkConverted(t *testing.T) {
	t.Run("LinksOrderOnce", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE quotations SET status").
			WithArgs(StatusAccepted, int64(200), int64(55)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewRepository(db)
		assert.NoError(t, repo.MarkConverted(context.Background(), 55, 200))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SecondConversionFails", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE quotations SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewRepository(db)
		err = repo.MarkConverted(context.Background(), 55, 201)
		assert.ErrorIs(t, err, ErrNotConvertible)
	})
}
