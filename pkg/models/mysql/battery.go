package mysql

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/ssrdive/mysequel"

	"github.com/wheelsync/motorlot/pkg/models"
	"github.com/wheelsync/motorlot/pkg/sql/queries"
)

// BatteryModel struct holds database instance
type BatteryModel struct {
	DB *sql.DB
}

// All returns every battery in inventory
func (m *BatteryModel) All() ([]models.Battery, error) {
	var batteries []models.Battery
	err := mysequel.QueryToStructs(&batteries, m.DB, queries.BATTERIES)
	if err != nil {
		return nil, err
	}

	return batteries, nil
}

// Get returns a single battery
func (m *BatteryModel) Get(id int) (*models.Battery, error) {
	var b models.Battery
	err := m.DB.QueryRow(queries.BATTERY_BY_ID, id).Scan(&b.ID, &b.SerialNumber, &b.Model, &b.Capacity, &b.Price, &b.Status, &b.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNoRecord
		}
		return nil, err
	}

	return &b, nil
}

// Insert adds a battery to inventory as In Stock
func (m *BatteryModel) Insert(serialNumber, model, capacity string, price float64) (int64, error) {
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

	id, err := mysequel.Insert(mysequel.Table{
		TableName: "battery",
		Columns:   []string{"serial_number", "model", "capacity", "price", "status", "created"},
		Vals:      []interface{}{serialNumber, model, capacity, price, models.BatteryInStock, time.Now().Format("2006-01-02 15:04:05")},
		Tx:        tx,
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Update changes the mutable battery fields
func (m *BatteryModel) Update(id int, serialNumber, model, capacity string, price float64, status string) error {
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
		Table: mysequel.Table{TableName: "battery",
			Columns: []string{"serial_number", "model", "capacity", "price", "status"},
			Vals:    []interface{}{serialNumber, model, capacity, price, status},
			Tx:      tx},
		WColumns: []string{"id"},
		WVals:    []string{strconv.Itoa(id)},
	})
	if err != nil {
		return err
	}

	return nil
}

// Delete removes a battery from inventory
func (m *BatteryModel) Delete(id int) error {
	result, err := m.DB.Exec(`DELETE FROM battery WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNoRecord
	}
	return nil
}
