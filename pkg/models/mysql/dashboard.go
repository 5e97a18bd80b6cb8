package mysql

import (
	"database/sql"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ssrdive/mysequel"

	"github.com/wheelsync/motorlot/pkg/emi"
	"github.com/wheelsync/motorlot/pkg/models"
	"github.com/wheelsync/motorlot/pkg/sql/queries"
)

// DashboardModel folds the sale, installment and battery-sale collections
// into dashboard aggregates. Everything is recomputed per request; at
// dealership scale that is a few hundred rows.
type DashboardModel struct {
	DB *sql.DB
}

const upcomingWindowDays = 5

func (m *DashboardModel) sales() ([]models.Sale, error) {
	var sales []models.Sale
	err := mysequel.QueryToStructs(&sales, m.DB, queries.SALES)
	return sales, err
}

func (m *DashboardModel) installmentsBySale() (map[int][]models.Installment, error) {
	var installments []models.Installment
	err := mysequel.QueryToStructs(&installments, m.DB, queries.INSTALLMENTS)
	if err != nil {
		return nil, err
	}

	bySale := make(map[int][]models.Installment)
	for _, inst := range installments {
		bySale[inst.SaleID] = append(bySale[inst.SaleID], inst)
	}
	return bySale, nil
}

func (m *DashboardModel) customerNames() (map[int]string, error) {
	rows, err := m.DB.Query(queries.CUSTOMER_NAMES)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[int]string)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

func (m *DashboardModel) batterySales() ([]models.BatterySale, error) {
	var sales []models.BatterySale
	err := mysequel.QueryToStructs(&sales, m.DB, queries.BATTERY_SALES)
	return sales, err
}

// paymentDate is the collection date of a paid installment. Older rows
// predate the paid_date column, so the due date stands in.
func paymentDate(inst models.Installment) time.Time {
	if inst.PaidDate.Valid {
		return inst.PaidDate.Time
	}
	return inst.DueDate
}

// Metrics computes the headline dashboard card values.
func (m *DashboardModel) Metrics(today time.Time) (*models.DashboardMetrics, error) {
	sales, err := m.sales()
	if err != nil {
		return nil, err
	}
	bySale, err := m.installmentsBySale()
	if err != nil {
		return nil, err
	}
	batterySales, err := m.batterySales()
	if err != nil {
		return nil, err
	}
	names, err := m.customerNames()
	if err != nil {
		return nil, err
	}

	prevMonth := emi.PreviousMonth(today)

	totalCollection := 0.0
	collectionCurr, collectionPrev := 0.0, 0.0
	loansCurr, loansPrev := 0.0, 0.0
	salesCurr, salesPrev := 0.0, 0.0
	activeLoans, overdueLoans := 0, 0

	bucket := func(date time.Time, amount float64, curr, prev *float64) {
		if emi.SameMonth(date, today) {
			*curr += amount
		} else if emi.SameMonth(date, prevMonth) {
			*prev += amount
		}
	}

	for _, s := range sales {
		bucket(s.SaleDate, 1, &salesCurr, &salesPrev)

		if s.SaleType == models.SaleTypeCash {
			totalCollection += s.PaidAmount
			bucket(s.SaleDate, s.PaidAmount, &collectionCurr, &collectionPrev)
			continue
		}

		bucket(s.SaleDate, 1, &loansCurr, &loansPrev)
		switch s.LoanStatus.String {
		case models.LoanActive:
			activeLoans++
			for _, inst := range bySale[s.ID] {
				totalCollection += inst.Amount
			}
		case models.LoanOverdue:
			overdueLoans++
		}
		for _, inst := range bySale[s.ID] {
			if inst.State == models.InstallmentPaid {
				bucket(paymentDate(inst), inst.Amount, &collectionCurr, &collectionPrev)
			}
		}
	}

	for _, bs := range batterySales {
		bucket(bs.SaleDate, bs.Amount, &collectionCurr, &collectionPrev)
	}

	vehiclesInStock, batteriesInStock, err := m.stockCounts()
	if err != nil {
		return nil, err
	}

	return &models.DashboardMetrics{
		TotalCollection:  "₹" + humanize.Commaf(emi.Round2(totalCollection)),
		CollectionChange: emi.PercentChange(collectionCurr, collectionPrev),
		TotalCustomers:   len(names),
		TotalSales:       len(sales),
		SalesChange:      emi.PercentChange(salesCurr, salesPrev),
		ActiveLoans:      activeLoans,
		LoanChange:       emi.PercentChange(loansCurr, loansPrev),
		OverdueLoans:     overdueLoans,
		VehiclesInStock:  vehiclesInStock,
		BatteriesInStock: batteriesInStock,
	}, nil
}

func (m *DashboardModel) stockCounts() (int, int, error) {
	var vehicles, batteries int
	err := m.DB.QueryRow(`SELECT COUNT(*) FROM vehicle WHERE status = ?`, models.VehicleAvailable).Scan(&vehicles)
	if err != nil {
		return 0, 0, err
	}
	err = m.DB.QueryRow(`SELECT COUNT(*) FROM battery WHERE status = ?`, models.BatteryInStock).Scan(&batteries)
	if err != nil {
		return 0, 0, err
	}
	return vehicles, batteries, nil
}

// MonthlyCollection buckets collections into the twelve months of the
// year. Buckets are keyed by month only; amounts from different years
// land in the same bucket.
func (m *DashboardModel) MonthlyCollection() ([]models.MonthlyCollectionItem, error) {
	sales, err := m.sales()
	if err != nil {
		return nil, err
	}
	bySale, err := m.installmentsBySale()
	if err != nil {
		return nil, err
	}
	batterySales, err := m.batterySales()
	if err != nil {
		return nil, err
	}

	var buckets [12]float64
	for _, s := range sales {
		if s.SaleType == models.SaleTypeCash {
			emi.MonthBucket(&buckets, s.SaleDate, s.TotalAmount)
			continue
		}
		for _, inst := range bySale[s.ID] {
			if inst.State == models.InstallmentPaid {
				emi.MonthBucket(&buckets, paymentDate(inst), inst.Amount)
			}
		}
	}
	for _, bs := range batterySales {
		emi.MonthBucket(&buckets, bs.SaleDate, bs.Amount)
	}

	items := make([]models.MonthlyCollectionItem, 12)
	for i, name := range emi.MonthNames {
		items[i] = models.MonthlyCollectionItem{Month: name, Amount: emi.Round2(buckets[i])}
	}
	return items, nil
}

// LoanStatus counts finance customers per loan status. Anything that is
// neither Active nor Overdue counts as Closed.
func (m *DashboardModel) LoanStatus() (*models.LoanStatusDistribution, error) {
	sales, err := m.sales()
	if err != nil {
		return nil, err
	}

	dist := &models.LoanStatusDistribution{}
	for _, s := range sales {
		if s.SaleType != models.SaleTypeFinance {
			continue
		}
		switch s.LoanStatus.String {
		case models.LoanActive:
			dist.Active++
		case models.LoanOverdue:
			dist.Overdue++
		default:
			dist.Closed++
		}
	}
	return dist, nil
}

// RecentPayments merges this month's finance, cash and battery payments
// into one list, newest first.
func (m *DashboardModel) RecentPayments(today time.Time) ([]models.PaymentListItem, error) {
	sales, err := m.sales()
	if err != nil {
		return nil, err
	}
	bySale, err := m.installmentsBySale()
	if err != nil {
		return nil, err
	}
	batterySales, err := m.batterySales()
	if err != nil {
		return nil, err
	}
	names, err := m.customerNames()
	if err != nil {
		return nil, err
	}

	items := []models.PaymentListItem{}
	for _, s := range sales {
		if !emi.SameMonth(s.SaleDate, today) {
			continue
		}
		if s.SaleType == models.SaleTypeCash {
			if s.PaidAmount > 0 {
				items = append(items, models.PaymentListItem{
					Type: "Cash", CustomerName: names[s.CustomerID], Amount: s.PaidAmount, Date: s.SaleDate,
				})
			}
			continue
		}
		paidTotal := 0.0
		for _, inst := range bySale[s.ID] {
			if inst.State == models.InstallmentPaid {
				paidTotal = emi.Round2(paidTotal + inst.Amount)
			}
		}
		if paidTotal > 0 {
			items = append(items, models.PaymentListItem{
				Type: "EMI", CustomerName: names[s.CustomerID], Amount: paidTotal, Date: s.SaleDate,
			})
		}
	}
	for _, bs := range batterySales {
		if emi.SameMonth(bs.SaleDate, today) {
			items = append(items, models.PaymentListItem{
				Type: "Battery", CustomerName: bs.CustomerName, Amount: bs.Amount, Date: bs.SaleDate,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return items, nil
}

// UpcomingPayments lists everything falling due within the next five
// days: Due installments, and cash balances whose last payment date sits
// in the window.
func (m *DashboardModel) UpcomingPayments(today time.Time) ([]models.UpcomingPayment, error) {
	sales, err := m.sales()
	if err != nil {
		return nil, err
	}
	bySale, err := m.installmentsBySale()
	if err != nil {
		return nil, err
	}
	names, err := m.customerNames()
	if err != nil {
		return nil, err
	}

	items := []models.UpcomingPayment{}
	for _, s := range sales {
		if s.SaleType == models.SaleTypeCash {
			if s.RemainingAmount > 0 && s.LastPaymentDate.Valid && emi.DueWindow(s.LastPaymentDate.Time, today, upcomingWindowDays) {
				items = append(items, models.UpcomingPayment{
					SaleID: s.ID, CustomerName: names[s.CustomerID], Type: "Cash",
					Amount: s.RemainingAmount, DueDate: s.LastPaymentDate.Time,
					DueIn: emi.DaysBetween(today, s.LastPaymentDate.Time),
				})
			}
			continue
		}
		for _, inst := range bySale[s.ID] {
			if inst.State == models.InstallmentDue && emi.DueWindow(inst.DueDate, today, upcomingWindowDays) {
				items = append(items, models.UpcomingPayment{
					SaleID: s.ID, CustomerName: names[s.CustomerID], Type: "EMI",
					SequenceNumber: inst.SequenceNumber, Amount: inst.Amount, DueDate: inst.DueDate,
					DueIn: emi.DaysBetween(today, inst.DueDate),
				})
			}
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].DueDate.Before(items[j].DueDate) })
	return items, nil
}

// DuePayments aggregates overdue collections, one row per finance sale
// with its overdue bucket, plus cash sales sitting past their last
// payment with a balance.
func (m *DashboardModel) DuePayments(today time.Time) ([]models.DuePayment, error) {
	sales, err := m.sales()
	if err != nil {
		return nil, err
	}
	bySale, err := m.installmentsBySale()
	if err != nil {
		return nil, err
	}
	names, err := m.customerNames()
	if err != nil {
		return nil, err
	}

	items := []models.DuePayment{}
	for _, s := range sales {
		if s.SaleType == models.SaleTypeCash {
			if s.RemainingAmount > 0 && s.LastPaymentDate.Valid && emi.DateOnly(s.LastPaymentDate.Time).Before(emi.DateOnly(today)) {
				items = append(items, models.DuePayment{
					SaleID: s.ID, CustomerName: names[s.CustomerID], Type: "Cash",
					BucketCount: 1, BucketAmount: s.RemainingAmount, DueDate: s.LastPaymentDate.Time,
				})
			}
			continue
		}
		count, amount, earliest := emi.OverdueBucket(bySale[s.ID])
		if count > 0 {
			items = append(items, models.DuePayment{
				SaleID: s.ID, CustomerName: names[s.CustomerID], Type: "EMI",
				BucketCount: count, BucketAmount: amount, DueDate: earliest,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].DueDate.Before(items[j].DueDate) })
	return items, nil
}

// Inventory reports the vehicle and battery status distribution.
func (m *DashboardModel) Inventory() (*models.InventoryStatus, error) {
	var vehicles []models.Vehicle
	err := mysequel.QueryToStructs(&vehicles, m.DB, queries.VEHICLES)
	if err != nil {
		return nil, err
	}
	var batteries []models.Battery
	err = mysequel.QueryToStructs(&batteries, m.DB, queries.BATTERIES)
	if err != nil {
		return nil, err
	}

	inv := &models.InventoryStatus{}
	for _, v := range vehicles {
		switch v.Status {
		case models.VehicleAvailable:
			inv.VehiclesAvailable++
		case models.VehicleReserved:
			inv.VehiclesReserved++
		case models.VehicleSold:
			inv.VehiclesSold++
		}
	}
	for _, b := range batteries {
		if b.Status == models.BatterySold {
			inv.BatteriesSold++
		} else {
			inv.BatteriesInStock++
		}
	}
	return inv, nil
}
