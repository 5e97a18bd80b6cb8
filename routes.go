package main

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders)

	r := mux.NewRouter()
	r.Handle("/", http.HandlerFunc(app.home)).Methods("GET")
	r.HandleFunc("/authenticate", http.HandlerFunc(app.authenticate)).Methods("POST")

	r.Handle("/api/dashboard/metrics", app.validateToken(http.HandlerFunc(app.dashboardMetrics))).Methods("GET")
	r.Handle("/api/dashboard/monthly-collection", app.validateToken(http.HandlerFunc(app.dashboardMonthlyCollection))).Methods("GET")
	r.Handle("/api/dashboard/loan-status", app.validateToken(http.HandlerFunc(app.dashboardLoanStatus))).Methods("GET")
	r.Handle("/api/dashboard/recent-payments", app.validateToken(http.HandlerFunc(app.dashboardRecentPayments))).Methods("GET")
	r.Handle("/api/dashboard/upcoming-payments", app.validateToken(http.HandlerFunc(app.dashboardUpcomingPayments))).Methods("GET")
	r.Handle("/api/dashboard/due-payments", app.validateToken(http.HandlerFunc(app.dashboardDuePayments))).Methods("GET")
	r.Handle("/api/dashboard/inventory", app.validateToken(http.HandlerFunc(app.dashboardInventory))).Methods("GET")

	r.Handle("/api/sales", app.validateToken(http.HandlerFunc(app.newSale))).Methods("POST")
	r.Handle("/api/sales/installment/pay", app.validateToken(http.HandlerFunc(app.payInstallment))).Methods("POST")
	r.Handle("/api/sales/payment", app.validateToken(http.HandlerFunc(app.cashPayment))).Methods("POST")

	r.Handle("/api/customers", app.validateToken(http.HandlerFunc(app.customerList))).Methods("GET")
	r.Handle("/api/customers/{cid}", app.validateToken(http.HandlerFunc(app.customerDetails))).Methods("GET")
	r.Handle("/api/customers/{cid}", app.validateToken(http.HandlerFunc(app.updateCustomerSale))).Methods("PUT")
	r.Handle("/api/customers/{cid}", app.validateToken(http.HandlerFunc(app.deleteCustomer))).Methods("DELETE")
	r.Handle("/api/customers/{cid}/documents", app.validateToken(http.HandlerFunc(app.customerDocuments))).Methods("GET")
	r.Handle("/api/customers/{cid}/documents", app.validateToken(http.HandlerFunc(app.customerDocumentUpload))).Methods("POST")
	r.Handle("/api/customers/documents/download", app.validateToken(http.HandlerFunc(app.customerDocumentDownload))).Methods("GET")

	r.Handle("/api/vehicles", app.validateToken(http.HandlerFunc(app.vehicleList))).Methods("GET")
	r.Handle("/api/vehicles", app.validateToken(http.HandlerFunc(app.newVehicle))).Methods("POST")
	r.Handle("/api/vehicles/{vid}", app.validateToken(http.HandlerFunc(app.vehicleDetails))).Methods("GET")
	r.Handle("/api/vehicles/{vid}", app.validateToken(http.HandlerFunc(app.updateVehicle))).Methods("PUT")
	r.Handle("/api/vehicles/{vid}", app.validateToken(http.HandlerFunc(app.deleteVehicle))).Methods("DELETE")

	r.Handle("/api/batteries", app.validateToken(http.HandlerFunc(app.batteryList))).Methods("GET")
	r.Handle("/api/batteries", app.validateToken(http.HandlerFunc(app.newBattery))).Methods("POST")
	r.Handle("/api/batteries/{bid}", app.validateToken(http.HandlerFunc(app.batteryDetails))).Methods("GET")
	r.Handle("/api/batteries/{bid}", app.validateToken(http.HandlerFunc(app.updateBattery))).Methods("PUT")
	r.Handle("/api/batteries/{bid}", app.validateToken(http.HandlerFunc(app.deleteBattery))).Methods("DELETE")

	r.Handle("/api/battery-sales", app.validateToken(http.HandlerFunc(app.batterySaleList))).Methods("GET")
	r.Handle("/api/battery-sales", app.validateToken(http.HandlerFunc(app.newBatterySale))).Methods("POST")

	r.Handle("/api/enquiries", app.validateToken(http.HandlerFunc(app.enquiryList))).Methods("GET")
	r.Handle("/api/enquiries", app.validateToken(http.HandlerFunc(app.newEnquiry))).Methods("POST")
	r.Handle("/api/enquiries/{eid}", app.validateToken(http.HandlerFunc(app.updateEnquiryStatus))).Methods("PUT")
	r.Handle("/api/enquiries/{eid}", app.validateToken(http.HandlerFunc(app.deleteEnquiry))).Methods("DELETE")

	return standardMiddleware.Then(handlers.CORS(handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"}), handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"}), handlers.AllowedOrigins([]string{"*"}))(r))
}
