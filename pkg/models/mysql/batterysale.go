package mysql

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/ssrdive/mysequel"

	"github.com/wheelsync/motorlot/pkg/models"
	"github.com/wheelsync/motorlot/pkg/sql/queries"
)

// BatterySaleModel holds methods to interact with the battery_sale table
type BatterySaleModel struct {
	DB *sql.DB
}

// All returns battery sales, newest first
func (m *BatterySaleModel) All() ([]models.BatterySale, error) {
	var sales []models.BatterySale
	err := mysequel.QueryToStructs(&sales, m.DB, queries.BATTERY_SALES)
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// Insert records a battery sale and marks the battery sold in the same
// transaction
func (m *BatterySaleModel) Insert(batteryID int, customerName string, amount float64, today time.Time) (int64, string, error) {
	var status string
	err := m.DB.QueryRow(`SELECT status FROM battery WHERE id = ?`, batteryID).Scan(&status)
	if err == sql.ErrNoRows {
		return 0, "", models.ErrNoRecord
	} else if err != nil {
		return 0, "", err
	}
	if status == models.BatterySold {
		return 0, "", models.ErrBatterySold
	}

	tx, err := m.DB.Begin()
	if err != nil {
		return 0, "", err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		_ = tx.Commit()
	}()

	reference := uuid.New().String()
	id, err := mysequel.Insert(mysequel.Table{
		TableName: "battery_sale",
		Columns:   []string{"reference", "battery_id", "customer_name", "amount", "sale_date"},
		Vals:      []interface{}{reference, batteryID, customerName, amount, today.Format("2006-01-02")},
		Tx:        tx,
	})
	if err != nil {
		return 0, "", err
	}

	_, err = mysequel.Update(mysequel.UpdateTable{
		Table: mysequel.Table{
			TableName: "battery",
			Columns:   []string{"status"},
			Vals:      []interface{}{models.BatterySold},
			Tx:        tx},
		WColumns: []string{"id"},
		WVals:    []string{strconv.Itoa(batteryID)},
	})
	if err != nil {
		return 0, "", err
	}

	return id, reference, nil
}
