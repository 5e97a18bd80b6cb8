package main

import (
	"encoding/json"
	"net/http"
	"time"
)

func (app *application) dashboardMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := app.dashboard.Metrics(time.Now())
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

func (app *application) dashboardMonthlyCollection(w http.ResponseWriter, r *http.Request) {
	items, err := app.dashboard.MonthlyCollection()
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (app *application) dashboardLoanStatus(w http.ResponseWriter, r *http.Request) {
	dist, err := app.dashboard.LoanStatus()
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dist)
}

func (app *application) dashboardRecentPayments(w http.ResponseWriter, r *http.Request) {
	items, err := app.dashboard.RecentPayments(time.Now())
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (app *application) dashboardUpcomingPayments(w http.ResponseWriter, r *http.Request) {
	today := time.Now()
	app.sale.ReconcileAll(today)

	items, err := app.dashboard.UpcomingPayments(today)
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (app *application) dashboardDuePayments(w http.ResponseWriter, r *http.Request) {
	today := time.Now()
	app.sale.ReconcileAll(today)

	items, err := app.dashboard.DuePayments(today)
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (app *application) dashboardInventory(w http.ResponseWriter, r *http.Request) {
	inv, err := app.dashboard.Inventory()
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inv)
}
