package mysql

import (
	"database/sql"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/ssrdive/mysequel"

	"github.com/wheelsync/motorlot/pkg/emi"
	"github.com/wheelsync/motorlot/pkg/models"
	"github.com/wheelsync/motorlot/pkg/sql/queries"
)

// SaleModel struct holds database instance
type SaleModel struct {
	DB          *sql.DB
	SweepLogger *log.Logger
}

// Create writes the customer+vehicle+sale triple in a single transaction.
// Finance sales get their installment schedule materialized here; the
// vehicle flips to Sold when fully paid, Reserved otherwise.
func (m *SaleModel) Create(n models.NewSale, today time.Time) (int64, error) {
	tx, err := m.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		_ = tx.Commit()
	}()

	var schedule []models.Installment
	loanStatus := ""
	salesStatus := ""
	remaining := 0.0

	if n.SaleType == models.SaleTypeFinance {
		schedule = emi.Generate(n.FirstInstallmentDate, n.TenureMonths, n.InstallmentAmount, n.LoanAmount, today)
		loanStatus = emi.DeriveLoanStatus(schedule)
		salesStatus = emi.DeriveSalesStatus(schedule)
	} else {
		remaining = emi.Round2(n.TotalAmount - n.PaidAmount)
		salesStatus = emi.CashSalesStatus(remaining)
	}

	customerID, err := mysequel.Insert(mysequel.Table{
		TableName: "customer",
		Columns:   []string{"name", "nic", "phone", "email", "address", "loan_status", "sales_status", "created"},
		Vals: []interface{}{n.CustomerName, n.CustomerNIC, n.CustomerPhone, mysequel.NewNullString(n.CustomerEmail),
			n.CustomerAddress, mysequel.NewNullString(loanStatus), salesStatus, time.Now().Format("2006-01-02 15:04:05")},
		Tx: tx,
	})
	if err != nil {
		return 0, err
	}

	vehicleStatus := models.VehicleReserved
	if n.PaidAmount >= n.TotalAmount {
		vehicleStatus = models.VehicleSold
	}
	_, err = tx.Exec(`UPDATE vehicle SET status = ? WHERE id = ?`, vehicleStatus, n.VehicleID)
	if err != nil {
		return 0, err
	}

	lastPayment := interface{}(nil)
	if n.SaleType == models.SaleTypeCash && n.PaidAmount > 0 {
		lastPayment = n.SaleDate.Format("2006-01-02")
	}
	firstInstallment := interface{}(nil)
	if n.SaleType == models.SaleTypeFinance {
		firstInstallment = n.FirstInstallmentDate.Format("2006-01-02")
	}

	saleID, err := mysequel.Insert(mysequel.Table{
		TableName: "sale",
		Columns: []string{"customer_id", "vehicle_id", "sale_type", "total_amount", "paid_amount", "remaining_amount",
			"loan_amount", "installment_amount", "tenure_months", "first_installment_date",
			"last_payment_date", "last_accrual_date", "loan_status", "sales_status", "sale_date"},
		Vals: []interface{}{customerID, n.VehicleID, n.SaleType, n.TotalAmount, n.PaidAmount, remaining,
			n.LoanAmount, n.InstallmentAmount, n.TenureMonths, firstInstallment,
			lastPayment, lastPayment, mysequel.NewNullString(loanStatus), salesStatus, n.SaleDate.Format("2006-01-02")},
		Tx: tx,
	})
	if err != nil {
		return 0, err
	}

	for _, inst := range schedule {
		_, err = mysequel.Insert(mysequel.Table{
			TableName: "installment",
			Columns: []string{"sale_id", "seq_no", "due_date", "principal", "interest", "amount",
				"remaining_principal", "state", "overdue_charge"},
			Vals: []interface{}{saleID, inst.SequenceNumber, inst.DueDate.Format("2006-01-02"), inst.Principal,
				inst.Interest, inst.Amount, inst.RemainingPrincipal, inst.State, inst.OverdueCharge},
			Tx: tx,
		})
		if err != nil {
			return 0, err
		}
	}

	return saleID, nil
}

// Get returns a single sale
func (m *SaleModel) Get(id int) (*models.Sale, error) {
	var sales []models.Sale
	err := mysequel.QueryToStructs(&sales, m.DB, queries.SALE_BY_ID, id)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, models.ErrNoRecord
	}

	return &sales[0], nil
}

// ByCustomer returns the sale owned by a customer
func (m *SaleModel) ByCustomer(customerID int) (*models.Sale, error) {
	var sales []models.Sale
	err := mysequel.QueryToStructs(&sales, m.DB, queries.SALE_BY_CUSTOMER, customerID)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, models.ErrNoRecord
	}

	return &sales[0], nil
}

// Installments returns a sale's schedule ordered by sequence number
func (m *SaleModel) Installments(saleID int) ([]models.Installment, error) {
	var schedule []models.Installment
	err := mysequel.QueryToStructs(&schedule, m.DB, queries.INSTALLMENTS_BY_SALE, saleID)
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

// UpdateCash applies the customer+vehicle+sale update for a cash sale in
// one transaction.
func (m *SaleModel) UpdateCash(customerID int, u models.SaleUpdate) error {
	tx, err := m.DB.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		_ = tx.Commit()
	}()

	remaining := emi.Round2(u.TotalAmount - u.PaidAmount)
	salesStatus := emi.CashSalesStatus(remaining)

	err = m.updateCustomer(tx, customerID, u, "", salesStatus)
	if err != nil {
		return err
	}

	_, err = mysequel.Update(mysequel.UpdateTable{
		Table: mysequel.Table{TableName: "sale",
			Columns: []string{"total_amount", "paid_amount", "remaining_amount", "sales_status"},
			Vals:    []interface{}{u.TotalAmount, u.PaidAmount, remaining, salesStatus},
			Tx:      tx},
		WColumns: []string{"customer_id"},
		WVals:    []string{strconv.Itoa(customerID)},
	})
	if err != nil {
		return err
	}

	return nil
}

// UpdateFinance applies the customer+vehicle+sale update for a finance
// sale. Loan figures are immutable after schedule creation; only the
// customer contact fields and the sale total change here.
func (m *SaleModel) UpdateFinance(customerID int, u models.SaleUpdate) error {
	tx, err := m.DB.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		_ = tx.Commit()
	}()

	err = m.updateCustomer(tx, customerID, u, "-", "-")
	if err != nil {
		return err
	}

	_, err = mysequel.Update(mysequel.UpdateTable{
		Table: mysequel.Table{TableName: "sale",
			Columns: []string{"total_amount", "paid_amount"},
			Vals:    []interface{}{u.TotalAmount, u.PaidAmount},
			Tx:      tx},
		WColumns: []string{"customer_id"},
		WVals:    []string{strconv.Itoa(customerID)},
	})
	if err != nil {
		return err
	}

	return nil
}

// updateCustomer writes the contact fields, plus the mirrored statuses
// unless passed "-" to leave them untouched.
func (m *SaleModel) updateCustomer(tx *sql.Tx, customerID int, u models.SaleUpdate, loanStatus, salesStatus string) error {
	columns := []string{"name", "phone", "email", "address"}
	vals := []interface{}{u.CustomerName, u.CustomerPhone, mysequel.NewNullString(u.CustomerEmail), u.CustomerAddress}
	if salesStatus != "-" {
		columns = append(columns, "loan_status", "sales_status")
		vals = append(vals, mysequel.NewNullString(loanStatus), salesStatus)
	}

	_, err := mysequel.Update(mysequel.UpdateTable{
		Table:    mysequel.Table{TableName: "customer", Columns: columns, Vals: vals, Tx: tx},
		WColumns: []string{"id"},
		WVals:    []string{strconv.Itoa(customerID)},
	})
	return err
}

// PayInstallment marks one installment Paid. Paid installments stay Paid;
// attempting to pay one again is an error.
func (m *SaleModel) PayInstallment(saleID, seqNo int, today time.Time) error {
	tx, err := m.DB.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		_ = tx.Commit()
	}()

	var id int
	var state string
	var amount float64
	err = tx.QueryRow(`SELECT id, state, amount FROM installment WHERE sale_id = ? AND seq_no = ?`, saleID, seqNo).Scan(&id, &state, &amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNoRecord
		}
		return err
	}
	if state == models.InstallmentPaid {
		err = models.ErrAlreadyPaid
		return err
	}

	_, err = mysequel.Update(mysequel.UpdateTable{
		Table: mysequel.Table{TableName: "installment",
			Columns: []string{"state", "overdue_charge", "paid_date"},
			Vals:    []interface{}{models.InstallmentPaid, 0, today.Format("2006-01-02")},
			Tx:      tx},
		WColumns: []string{"id"},
		WVals:    []string{strconv.Itoa(id)},
	})
	if err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE sale SET paid_amount = paid_amount + ?, last_payment_date = ? WHERE id = ?`,
		amount, today.Format("2006-01-02"), saleID)
	if err != nil {
		return err
	}

	return nil
}

// AddCashPayment records a partial payment against a cash sale and moves
// the accrual marker so interest restarts from today.
func (m *SaleModel) AddCashPayment(saleID int, amount float64, today time.Time) error {
	tx, err := m.DB.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		_ = tx.Commit()
	}()

	var saleType string
	var paid, remaining float64
	err = tx.QueryRow(`SELECT sale_type, paid_amount, remaining_amount FROM sale WHERE id = ?`, saleID).Scan(&saleType, &paid, &remaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNoRecord
		}
		return err
	}
	if saleType != models.SaleTypeCash {
		err = models.ErrNotCashSale
		return err
	}
	if amount > remaining {
		err = models.ErrExceedsBalance
		return err
	}

	paid = emi.Round2(paid + amount)
	remaining = emi.Round2(remaining - amount)

	_, err = mysequel.Update(mysequel.UpdateTable{
		Table: mysequel.Table{TableName: "sale",
			Columns: []string{"paid_amount", "remaining_amount", "last_payment_date", "last_accrual_date", "sales_status"},
			Vals: []interface{}{paid, remaining, today.Format("2006-01-02"), today.Format("2006-01-02"),
				emi.CashSalesStatus(remaining)},
			Tx: tx},
		WColumns: []string{"id"},
		WVals:    []string{strconv.Itoa(saleID)},
	})
	if err != nil {
		return err
	}

	return nil
}
