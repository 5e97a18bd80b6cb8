package mysql

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ssrdive/mysequel"

	"github.com/wheelsync/motorlot/pkg/models"
	"github.com/wheelsync/motorlot/pkg/sql/queries"
)

// CustomerModel struct holds database instance
type CustomerModel struct {
	DB *sql.DB
}

// All returns the customer list with sale summaries attached
func (m *CustomerModel) All() ([]models.CustomerListItem, error) {
	var customers []models.CustomerListItem
	err := mysequel.QueryToStructs(&customers, m.DB, queries.CUSTOMERS)
	if err != nil {
		return nil, err
	}

	return customers, nil
}

// Get returns a single customer record
func (m *CustomerModel) Get(id int) (*models.Customer, error) {
	var c models.Customer
	err := m.DB.QueryRow(queries.CUSTOMER_BY_ID, id).Scan(&c.ID, &c.Name, &c.NIC, &c.Phone, &c.Email, &c.Address, &c.LoanStatus, &c.SalesStatus, &c.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNoRecord
		}
		return nil, err
	}

	return &c, nil
}

// Detail assembles the normalized customer view: the customer plus its
// sale, vehicle and installment schedule when one exists. Callers always
// receive this one shape whether or not a sale is attached.
func (m *CustomerModel) Detail(id int) (*models.CustomerDetail, error) {
	c, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	detail := &models.CustomerDetail{Customer: *c}

	var sales []models.Sale
	err = mysequel.QueryToStructs(&sales, m.DB, queries.SALE_BY_CUSTOMER, id)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return detail, nil
	}
	detail.Sale = &sales[0]

	var v models.Vehicle
	err = m.DB.QueryRow(queries.VEHICLE_BY_ID, detail.Sale.VehicleID).Scan(&v.ID, &v.Model, &v.ChassisNumber, &v.Price, &v.Status, &v.Created)
	if err == nil {
		detail.Vehicle = &v
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if detail.Sale.SaleType == models.SaleTypeFinance {
		err = mysequel.QueryToStructs(&detail.Installments, m.DB, queries.INSTALLMENTS_BY_SALE, detail.Sale.ID)
		if err != nil {
			return nil, err
		}
	}

	return detail, nil
}

// Delete removes a customer along with its sale and schedule, releasing
// the vehicle back into inventory.
func (m *CustomerModel) Delete(id int) error {
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

	var saleID, vehicleID int
	err = tx.QueryRow(`SELECT id, vehicle_id FROM sale WHERE customer_id = ?`, id).Scan(&saleID, &vehicleID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if saleID != 0 {
		if _, err = tx.Exec(`DELETE FROM installment WHERE sale_id = ?`, saleID); err != nil {
			return err
		}
		if _, err = tx.Exec(`DELETE FROM sale WHERE id = ?`, saleID); err != nil {
			return err
		}
		if _, err = tx.Exec(`UPDATE vehicle SET status = ? WHERE id = ?`, models.VehicleAvailable, vehicleID); err != nil {
			return err
		}
	}

	if _, err = tx.Exec(`DELETE FROM customer_document WHERE customer_id = ?`, id); err != nil {
		return err
	}
	var result sql.Result
	result, err = tx.Exec(`DELETE FROM customer WHERE id = ?`, id)
	if err != nil {
		return err
	}
	var n int64
	n, err = result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = models.ErrNoRecord
		return err
	}

	return nil
}

// AddDocument records an uploaded KYC document against a customer
func (m *CustomerModel) AddDocument(customerID int, name, s3bucket, s3region, source string) (int64, error) {
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
		TableName: "customer_document",
		Columns:   []string{"customer_id", "name", "s3bucket", "s3region", "source", "created"},
		Vals:      []interface{}{customerID, name, s3bucket, s3region, source, time.Now().Format("2006-01-02 15:04:05")},
		Tx:        tx,
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Documents lists a customer's uploaded documents
func (m *CustomerModel) Documents(customerID int) ([]models.CustomerDocument, error) {
	var docs []models.CustomerDocument
	err := mysequel.QueryToStructs(&docs, m.DB, queries.CUSTOMER_DOCUMENTS, customerID)
	if err != nil {
		return nil, err
	}

	return docs, nil
}
