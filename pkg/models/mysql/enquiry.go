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

// EnquiryModel holds methods to interact with the enquiry table
type EnquiryModel struct {
	DB *sql.DB
}

// All returns enquiries, newest first
func (m *EnquiryModel) All() ([]models.Enquiry, error) {
	var enquiries []models.Enquiry
	err := mysequel.QueryToStructs(&enquiries, m.DB, queries.ENQUIRIES)
	if err != nil {
		return nil, err
	}
	return enquiries, nil
}

// Insert creates a new walk-in enquiry with a generated reference
func (m *EnquiryModel) Insert(name, phone, vehicleModel, message string) (int64, string, error) {
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
		TableName: "enquiry",
		Columns:   []string{"reference", "name", "phone", "vehicle_model", "message", "status", "created"},
		Vals:      []interface{}{reference, name, phone, mysequel.NewNullString(vehicleModel), message, "New", time.Now().Format("2006-01-02 15:04:05")},
		Tx:        tx,
	})
	if err != nil {
		return 0, "", err
	}

	return id, reference, nil
}

// UpdateStatus moves an enquiry through its follow-up states
func (m *EnquiryModel) UpdateStatus(id int, status string) error {
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
		Table: mysequel.Table{
			TableName: "enquiry",
			Columns:   []string{"status"},
			Vals:      []interface{}{status},
			Tx:        tx,
		},
		WColumns: []string{"id"},
		WVals:    []string{strconv.Itoa(id)},
	})
	return err
}

// Delete removes an enquiry
func (m *EnquiryModel) Delete(id int) error {
	result, err := m.DB.Exec(`DELETE FROM enquiry WHERE id = ?`, id)
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
