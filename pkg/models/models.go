package models

import (
	"database/sql"
	"errors"
	"time"
)

var ErrNoRecord = errors.New("models: no matching record found")

var ErrAlreadyPaid = errors.New("models: installment already paid")

var ErrBatterySold = errors.New("models: battery already sold")

var ErrNotCashSale = errors.New("models: installment sales are paid per installment")

var ErrExceedsBalance = errors.New("models: payment exceeds remaining balance")

// Sale types
const (
	SaleTypeCash    = "Cash"
	SaleTypeFinance = "Finance"
)

// Installment states. An installment only ever moves Due -> Overdue during a
// sweep, and Due|Overdue -> Paid on an explicit payment. Nothing leaves Paid.
const (
	InstallmentDue     = "Due"
	InstallmentPaid    = "Paid"
	InstallmentOverdue = "Overdue"
)

// Derived loan and sale statuses
const (
	LoanActive  = "Active"
	LoanOverdue = "Overdue"
	LoanClosed  = "Closed"

	SalesActive = "Active"
	SalesClosed = "Closed"
)

// Inventory statuses
const (
	VehicleAvailable = "Available"
	VehicleReserved  = "Reserved"
	VehicleSold      = "Sold"

	BatteryInStock = "In Stock"
	BatterySold    = "Sold"
)

type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type JWTUser struct {
	ID       int
	Username string
	Password string
	Name     string
	Type     string
}

type Customer struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	NIC         string         `json:"nic"`
	Phone       string         `json:"phone"`
	Email       sql.NullString `json:"email"`
	Address     string         `json:"address"`
	LoanStatus  sql.NullString `json:"loan_status"`
	SalesStatus sql.NullString `json:"sales_status"`
	Created     time.Time      `json:"created"`
}

type Vehicle struct {
	ID            int       `json:"id"`
	Model         string    `json:"model"`
	ChassisNumber string    `json:"chassis_number"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"`
	Created       time.Time `json:"created"`
}

type Battery struct {
	ID           int       `json:"id"`
	SerialNumber string    `json:"serial_number"`
	Model        string    `json:"model"`
	Capacity     string    `json:"capacity"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	Created      time.Time `json:"created"`
}

type Sale struct {
	ID                   int            `json:"id"`
	CustomerID           int            `json:"customer_id"`
	VehicleID            int            `json:"vehicle_id"`
	SaleType             string         `json:"sale_type"`
	TotalAmount          float64        `json:"total_amount"`
	PaidAmount           float64        `json:"paid_amount"`
	RemainingAmount      float64        `json:"remaining_amount"`
	LoanAmount           float64        `json:"loan_amount"`
	InstallmentAmount    float64        `json:"installment_amount"`
	TenureMonths         int            `json:"tenure_months"`
	FirstInstallmentDate sql.NullTime   `json:"first_installment_date"`
	LastPaymentDate      sql.NullTime   `json:"last_payment_date"`
	LastAccrualDate      sql.NullTime   `json:"last_accrual_date"`
	LoanStatus           sql.NullString `json:"loan_status"`
	SalesStatus          string         `json:"sales_status"`
	SaleDate             time.Time      `json:"sale_date"`
}

type Installment struct {
	ID                 int          `json:"id"`
	SaleID             int          `json:"sale_id"`
	SequenceNumber     int          `json:"sequence_number"`
	DueDate            time.Time    `json:"due_date"`
	Principal          float64      `json:"principal"`
	Interest           float64      `json:"interest"`
	Amount             float64      `json:"amount"`
	RemainingPrincipal float64      `json:"remaining_principal"`
	State              string       `json:"state"`
	OverdueCharge      float64      `json:"overdue_charge"`
	PaidDate           sql.NullTime `json:"paid_date"`
}

type BatterySale struct {
	ID           int       `json:"id"`
	Reference    string    `json:"reference"`
	BatteryID    int       `json:"battery_id"`
	CustomerName string    `json:"customer_name"`
	Amount       float64   `json:"amount"`
	SaleDate     time.Time `json:"sale_date"`
}

type Enquiry struct {
	ID           int            `json:"id"`
	Reference    string         `json:"reference"`
	Name         string         `json:"name"`
	Phone        string         `json:"phone"`
	VehicleModel sql.NullString `json:"vehicle_model"`
	Message      string         `json:"message"`
	Status       string         `json:"status"`
	Created      time.Time      `json:"created"`
}

type CustomerDocument struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	S3Bucket string    `json:"s3bucket"`
	S3Region string    `json:"s3region"`
	Source   string    `json:"source"`
	Created  time.Time `json:"created"`
}

// NewSale carries everything POST /api/sales needs to write the
// customer+vehicle+sale triple in one transaction.
type NewSale struct {
	CustomerName         string
	CustomerNIC          string
	CustomerPhone        string
	CustomerEmail        string
	CustomerAddress      string
	VehicleID            int
	SaleType             string
	TotalAmount          float64
	PaidAmount           float64
	LoanAmount           float64
	InstallmentAmount    float64
	TenureMonths         int
	FirstInstallmentDate time.Time
	SaleDate             time.Time
}

// SaleUpdate carries the PUT /api/customers/{cid} triple update. Which
// fields apply depends on the sale type of the existing record.
type SaleUpdate struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	CustomerAddress string
	TotalAmount     float64
	PaidAmount      float64
}

type CustomerListItem struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	NIC         string         `json:"nic"`
	Phone       string         `json:"phone"`
	LoanStatus  sql.NullString `json:"loan_status"`
	SalesStatus sql.NullString `json:"sales_status"`
	SaleType    sql.NullString `json:"sale_type"`
	Model       sql.NullString `json:"model"`
	SaleDate    sql.NullTime   `json:"sale_date"`
}

// CustomerDetail is the one normalized shape every caller receives,
// regardless of whether the customer has a sale attached.
type CustomerDetail struct {
	Customer     Customer      `json:"customer"`
	Sale         *Sale         `json:"sale"`
	Vehicle      *Vehicle      `json:"vehicle"`
	Installments []Installment `json:"installments"`
}

type DashboardMetrics struct {
	TotalCollection  string `json:"total_collection"`
	CollectionChange string `json:"collection_change"`
	TotalCustomers   int    `json:"total_customers"`
	TotalSales       int    `json:"total_sales"`
	SalesChange      string `json:"sales_change"`
	ActiveLoans      int    `json:"active_loans"`
	LoanChange       string `json:"loan_change"`
	OverdueLoans     int    `json:"overdue_loans"`
	VehiclesInStock  int    `json:"vehicles_in_stock"`
	BatteriesInStock int    `json:"batteries_in_stock"`
}

type MonthlyCollectionItem struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type LoanStatusDistribution struct {
	Active  int `json:"active"`
	Closed  int `json:"closed"`
	Overdue int `json:"overdue"`
}

type PaymentListItem struct {
	Type         string    `json:"type"`
	CustomerName string    `json:"customer_name"`
	Amount       float64   `json:"amount"`
	Date         time.Time `json:"date"`
}

type UpcomingPayment struct {
	SaleID         int       `json:"sale_id"`
	CustomerName   string    `json:"customer_name"`
	Type           string    `json:"type"`
	SequenceNumber int       `json:"sequence_number"`
	Amount         float64   `json:"amount"`
	DueDate        time.Time `json:"due_date"`
	DueIn          int       `json:"due_in"`
}

type DuePayment struct {
	SaleID       int       `json:"sale_id"`
	CustomerName string    `json:"customer_name"`
	Type         string    `json:"type"`
	BucketCount  int       `json:"bucket_count"`
	BucketAmount float64   `json:"bucket_amount"`
	DueDate      time.Time `json:"due_date"`
}

type InventoryStatus struct {
	VehiclesAvailable int `json:"vehicles_available"`
	VehiclesReserved  int `json:"vehicles_reserved"`
	VehiclesSold      int `json:"vehicles_sold"`
	BatteriesInStock  int `json:"batteries_in_stock"`
	BatteriesSold     int `json:"batteries_sold"`
}
