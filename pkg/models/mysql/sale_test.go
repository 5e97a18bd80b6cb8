package mysql

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelsync/motorlot/pkg/models"
)

func TestPayInstallmentNeverLeavesPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, state, amount FROM installment").
		WithArgs(4, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "state", "amount"}).
			AddRow(9, models.InstallmentPaid, 10000.0))
	mock.ExpectRollback()

	m := &SaleModel{DB: db}
	err = m.PayInstallment(4, 2, time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, models.ErrAlreadyPaid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCashPaymentRejectsOverpayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT sale_type, paid_amount, remaining_amount FROM sale").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"sale_type", "paid_amount", "remaining_amount"}).
			AddRow(models.SaleTypeCash, 20000.0, 5000.0))
	mock.ExpectRollback()

	m := &SaleModel{DB: db}
	err = m.AddCashPayment(7, 6000, time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, models.ErrExceedsBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
