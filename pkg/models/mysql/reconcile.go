package mysql

import (
	"errors"
	"strconv"
	"time"

	"github.com/ssrdive/mysequel"

	"github.com/wheelsync/motorlot/pkg/emi"
	"github.com/wheelsync/motorlot/pkg/models"
	"github.com/wheelsync/motorlot/pkg/sql/queries"
)

// Reconcile brings a customer's sale, schedule and mirrored statuses in
// line with today. Safe to call repeatedly: the installment sweep is
// monotone, status derivation is pure and cash interest accrues at most
// once per day. The steps are separate round trips to the store, so a
// failure mid-way leaves earlier steps applied; callers must not assume
// all-or-nothing.
func (m *SaleModel) Reconcile(customerID int, today time.Time) error {
	s, err := m.ByCustomer(customerID)
	if errors.Is(err, models.ErrNoRecord) {
		return nil
	}
	if err != nil {
		return err
	}

	if s.SaleType == models.SaleTypeFinance {
		return m.reconcileFinance(s, today)
	}
	return m.reconcileCash(s, today)
}

// ReconcileAll sweeps every customer that owns a sale. Best effort: a
// failing customer is logged and skipped, never aborting the batch.
func (m *SaleModel) ReconcileAll(today time.Time) {
	rows, err := m.DB.Query(queries.CUSTOMER_IDS_WITH_SALES)
	if err != nil {
		m.sweepLog("reconcile batch: %v", err)
		return
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			m.sweepLog("reconcile batch: %v", err)
			return
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		m.sweepLog("reconcile batch: %v", err)
		return
	}

	for _, id := range ids {
		if err := m.Reconcile(id, today); err != nil {
			m.sweepLog("reconcile customer %d: %v", id, err)
		}
	}
}

func (m *SaleModel) reconcileFinance(s *models.Sale, today time.Time) error {
	schedule, err := m.Installments(s.ID)
	if err != nil {
		return err
	}

	changed := emi.Sweep(schedule, today)
	if len(changed) > 0 {
		if err := m.persistSweep(changed); err != nil {
			m.sweepLog("sweep sale %d: %v", s.ID, err)
			return err
		}
	}

	loanStatus := emi.DeriveLoanStatus(schedule)
	salesStatus := emi.DeriveSalesStatus(schedule)
	if err := m.persistStatuses(s, loanStatus, salesStatus); err != nil {
		m.sweepLog("statuses sale %d: %v", s.ID, err)
		return err
	}

	return nil
}

func (m *SaleModel) reconcileCash(s *models.Sale, today time.Time) error {
	salesStatus := emi.CashSalesStatus(s.RemainingAmount)
	if err := m.persistStatuses(s, "", salesStatus); err != nil {
		m.sweepLog("statuses sale %d: %v", s.ID, err)
		return err
	}

	if s.RemainingAmount <= 0 || !s.LastPaymentDate.Valid {
		return nil
	}

	// Interest restarts from the newer of last payment and last accrual,
	// so repeated reads within a day add nothing.
	marker := s.LastPaymentDate.Time
	if s.LastAccrualDate.Valid && s.LastAccrualDate.Time.After(marker) {
		marker = s.LastAccrualDate.Time
	}

	interest := emi.AccrueInterest(s.RemainingAmount, marker, today)
	if interest == 0 {
		return nil
	}

	if err := m.persistAccrual(s.ID, emi.Round2(s.RemainingAmount+interest), today); err != nil {
		m.sweepLog("accrual sale %d: %v", s.ID, err)
		return err
	}

	return nil
}

func (m *SaleModel) persistSweep(changed []models.Installment) error {
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

	for _, inst := range changed {
		_, err = mysequel.Update(mysequel.UpdateTable{
			Table: mysequel.Table{TableName: "installment",
				Columns: []string{"state", "overdue_charge"},
				Vals:    []interface{}{inst.State, inst.OverdueCharge},
				Tx:      tx},
			WColumns: []string{"id"},
			WVals:    []string{strconv.Itoa(inst.ID)},
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// persistStatuses writes the derived statuses onto the sale and mirrors
// them onto the owning customer. An empty loan status persists as NULL
// (cash sales carry no loan).
func (m *SaleModel) persistStatuses(s *models.Sale, loanStatus, salesStatus string) error {
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

	_, err = mysequel.Update(mysequel.UpdateTable{
		Table: mysequel.Table{TableName: "sale",
			Columns: []string{"loan_status", "sales_status"},
			Vals:    []interface{}{mysequel.NewNullString(loanStatus), salesStatus},
			Tx:      tx},
		WColumns: []string{"id"},
		WVals:    []string{strconv.Itoa(s.ID)},
	})
	if err != nil {
		return err
	}

	_, err = mysequel.Update(mysequel.UpdateTable{
		Table: mysequel.Table{TableName: "customer",
			Columns: []string{"loan_status", "sales_status"},
			Vals:    []interface{}{mysequel.NewNullString(loanStatus), salesStatus},
			Tx:      tx},
		WColumns: []string{"id"},
		WVals:    []string{strconv.Itoa(s.CustomerID)},
	})
	if err != nil {
		return err
	}

	return nil
}

func (m *SaleModel) persistAccrual(saleID int, remaining float64, today time.Time) error {
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

	_, err = mysequel.Update(mysequel.UpdateTable{
		Table: mysequel.Table{TableName: "sale",
			Columns: []string{"remaining_amount", "last_accrual_date"},
			Vals:    []interface{}{remaining, today.Format("2006-01-02")},
			Tx:      tx},
		WColumns: []string{"id"},
		WVals:    []string{strconv.Itoa(saleID)},
	})
	if err != nil {
		return err
	}

	return nil
}

func (m *SaleModel) sweepLog(format string, args ...interface{}) {
	if m.SweepLogger != nil {
		m.SweepLogger.Printf(format, args...)
	}
}
