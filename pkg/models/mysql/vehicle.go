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

// VehicleModel struct holds database instance
type VehicleModel struct {
	DB *sql.DB
}

// All returns every vehicle in inventory
func (m *VehicleModel) All() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := mysequel.QueryToStructs(&vehicles, m.DB, queries.VEHICLES)
	if err != nil {
		return nil, err
	}

	return vehicles, nil
}

// Get returns a single vehicle
func (m *VehicleModel) Get(id int) (*models.Vehicle, error) {
	var v models.Vehicle
	err := m.DB.QueryRow(queries.VEHICLE_BY_ID, id).Scan(&v.ID, &v.Model, &v.ChassisNumber, &v.Price, &v.Status, &v.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNoRecord
		}
		return nil, err
	}

	return &v, nil
}

// Insert adds a vehicle to inventory as Available
func (m *VehicleModel) Insert(model, chassisNumber string, price float64) (int64, error) {
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
		TableName: "vehicle",
		Columns:   []string{"model", "chassis_number", "price", "status", "created"},
		Vals:      []interface{}{model, chassisNumber, price, models.VehicleAvailable, time.Now().Format("2006-01-02 15:04:05")},
		Tx:        tx,
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Update changes the mutable vehicle fields
func (m *VehicleModel) Update(id int, model, chassisNumber string, price float64, status string) error {
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
		Table: mysequel.Table{TableName: "vehicle",
			Columns: []string{"model", "chassis_number", "price", "status"},
			Vals:    []interface{}{model, chassisNumber, price, status},
			Tx:      tx},
		WColumns: []string{"id"},
		WVals:    []string{strconv.Itoa(id)},
	})
	if err != nil {
		return err
	}

	return nil
}

// Delete removes a vehicle from inventory
func (m *VehicleModel) Delete(id int) error {
	result, err := m.DB.Exec(`DELETE FROM vehicle WHERE id = ?`, id)
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
