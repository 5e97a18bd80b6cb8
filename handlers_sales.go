package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/wheelsync/motorlot/pkg/models"
)

func (app *application) newSale(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	requiredParams := []string{"customer_name", "customer_nic", "customer_phone", "customer_address", "vehicle_id", "sale_type", "total_amount", "sale_date"}
	for _, param := range requiredParams {
		if v := r.PostForm.Get(param); v == "" {
			fmt.Println(param)
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	saleType := r.PostForm.Get("sale_type")
	if saleType != models.SaleTypeCash && saleType != models.SaleTypeFinance {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	vehicleID, err := strconv.Atoi(r.PostForm.Get("vehicle_id"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	totalAmount, err := strconv.ParseFloat(r.PostForm.Get("total_amount"), 64)
	if err != nil || totalAmount <= 0 {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	saleDate, err := time.Parse("2006-01-02", r.PostForm.Get("sale_date"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	n := models.NewSale{
		CustomerName:    r.PostForm.Get("customer_name"),
		CustomerNIC:     r.PostForm.Get("customer_nic"),
		CustomerPhone:   r.PostForm.Get("customer_phone"),
		CustomerEmail:   r.PostForm.Get("customer_email"),
		CustomerAddress: r.PostForm.Get("customer_address"),
		VehicleID:       vehicleID,
		SaleType:        saleType,
		TotalAmount:     totalAmount,
		SaleDate:        saleDate,
	}

	if paid := r.PostForm.Get("paid_amount"); paid != "" {
		n.PaidAmount, err = strconv.ParseFloat(paid, 64)
		if err != nil || n.PaidAmount < 0 || n.PaidAmount > totalAmount {
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	if saleType == models.SaleTypeFinance {
		financeParams := []string{"loan_amount", "installment_amount", "tenure_months", "first_installment_date"}
		for _, param := range financeParams {
			if v := r.PostForm.Get(param); v == "" {
				fmt.Println(param)
				app.clientError(w, http.StatusBadRequest)
				return
			}
		}

		n.LoanAmount, err = strconv.ParseFloat(r.PostForm.Get("loan_amount"), 64)
		if err != nil || n.LoanAmount <= 0 {
			app.clientError(w, http.StatusBadRequest)
			return
		}
		n.InstallmentAmount, err = strconv.ParseFloat(r.PostForm.Get("installment_amount"), 64)
		if err != nil || n.InstallmentAmount <= 0 {
			app.clientError(w, http.StatusBadRequest)
			return
		}
		n.TenureMonths, err = strconv.Atoi(r.PostForm.Get("tenure_months"))
		if err != nil || n.TenureMonths <= 0 {
			app.clientError(w, http.StatusBadRequest)
			return
		}
		n.FirstInstallmentDate, err = time.Parse("2006-01-02", r.PostForm.Get("first_installment_date"))
		if err != nil {
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	id, err := app.sale.Create(n, time.Now())
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	fmt.Fprintf(w, "%d", id)
}

func (app *application) updateCustomerSale(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cid, err := strconv.Atoi(vars["cid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	requiredParams := []string{"customer_name", "customer_phone", "customer_address", "total_amount"}
	for _, param := range requiredParams {
		if v := r.PostForm.Get(param); v == "" {
			fmt.Println(param)
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	u := models.SaleUpdate{
		CustomerName:    r.PostForm.Get("customer_name"),
		CustomerPhone:   r.PostForm.Get("customer_phone"),
		CustomerEmail:   r.PostForm.Get("customer_email"),
		CustomerAddress: r.PostForm.Get("customer_address"),
	}
	u.TotalAmount, err = strconv.ParseFloat(r.PostForm.Get("total_amount"), 64)
	if err != nil || u.TotalAmount <= 0 {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	if paid := r.PostForm.Get("paid_amount"); paid != "" {
		u.PaidAmount, err = strconv.ParseFloat(paid, 64)
		if err != nil || u.PaidAmount < 0 {
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	s, err := app.sale.ByCustomer(cid)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	if s.SaleType == models.SaleTypeCash {
		err = app.sale.UpdateCash(cid, u)
	} else {
		err = app.sale.UpdateFinance(cid, u)
	}
	if err != nil {
		app.serverError(w, err)
		return
	}

	fmt.Fprintf(w, "%d", cid)
}

func (app *application) payInstallment(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	requiredParams := []string{"sale_id", "seq_no"}
	for _, param := range requiredParams {
		if v := r.PostForm.Get(param); v == "" {
			fmt.Println(param)
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	saleID, err := strconv.Atoi(r.PostForm.Get("sale_id"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	seqNo, err := strconv.Atoi(r.PostForm.Get("seq_no"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	today := time.Now()
	err = app.sale.PayInstallment(saleID, seqNo, today)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else if errors.Is(err, models.ErrAlreadyPaid) {
			app.clientError(w, http.StatusConflict)
		} else {
			app.serverError(w, err)
		}
		return
	}

	s, err := app.sale.Get(saleID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	err = app.sale.Reconcile(s.CustomerID, today)
	if err != nil {
		app.serverError(w, err)
		return
	}

	fmt.Fprintf(w, "%d", seqNo)
}

func (app *application) cashPayment(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	requiredParams := []string{"sale_id", "amount"}
	for _, param := range requiredParams {
		if v := r.PostForm.Get(param); v == "" {
			fmt.Println(param)
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	saleID, err := strconv.Atoi(r.PostForm.Get("sale_id"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	amount, err := strconv.ParseFloat(r.PostForm.Get("amount"), 64)
	if err != nil || amount <= 0 {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	today := time.Now()
	err = app.sale.AddCashPayment(saleID, amount, today)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else if errors.Is(err, models.ErrExceedsBalance) || errors.Is(err, models.ErrNotCashSale) {
			app.clientError(w, http.StatusBadRequest)
		} else {
			app.serverError(w, err)
		}
		return
	}

	s, err := app.sale.Get(saleID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	err = app.sale.Reconcile(s.CustomerID, today)
	if err != nil {
		app.serverError(w, err)
		return
	}

	fmt.Fprintf(w, "%d", saleID)
}

func (app *application) batterySaleList(w http.ResponseWriter, r *http.Request) {
	items, err := app.batterySale.All()
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (app *application) newBatterySale(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	requiredParams := []string{"battery_id", "customer_name", "amount"}
	for _, param := range requiredParams {
		if v := r.PostForm.Get(param); v == "" {
			fmt.Println(param)
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	batteryID, err := strconv.Atoi(r.PostForm.Get("battery_id"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	amount, err := strconv.ParseFloat(r.PostForm.Get("amount"), 64)
	if err != nil || amount <= 0 {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	id, reference, err := app.batterySale.Insert(batteryID, r.PostForm.Get("customer_name"), amount, time.Now())
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else if errors.Is(err, models.ErrBatterySold) {
			app.clientError(w, http.StatusConflict)
		} else {
			app.serverError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"id": id, "reference": reference})
}
