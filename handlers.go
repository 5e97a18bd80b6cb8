package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/wheelsync/motorlot/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	if app.runtimeEnv == "dev" {
		fmt.Fprintf(w, "It works! [dev]")
	} else {
		fmt.Fprintf(w, "It works!")
	}
}

func (app *application) authenticate(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	u, err := app.user.Get(username, password)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) || errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["username"] = u.Username
	claims["name"] = u.Name
	claims["exp"] = time.Now().Add(time.Minute * 180).Unix()

	ts, err := token.SignedString(app.secret)
	if err != nil {
		app.serverError(w, err)
		return
	}

	user := models.UserResponse{ID: u.ID, Username: u.Username, Name: u.Name, Role: u.Type, Token: ts}
	js, err := json.Marshal(user)
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}

func (app *application) customerList(w http.ResponseWriter, r *http.Request) {
	items, err := app.customer.All()
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (app *application) customerDetails(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cid, err := strconv.Atoi(vars["cid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = app.sale.Reconcile(cid, time.Now())
	if err != nil {
		app.serverError(w, err)
		return
	}

	detail, err := app.customer.Detail(cid)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail)
}

func (app *application) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cid, err := strconv.Atoi(vars["cid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = app.customer.Delete(cid)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	fmt.Fprintf(w, "%d", cid)
}

func (app *application) customerDocuments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cid, err := strconv.Atoi(vars["cid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	items, err := app.customer.Documents(cid)
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (app *application) customerDocumentUpload(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cid, err := strconv.Atoi(vars["cid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	maxSize := int64(5120000)
	err = r.ParseMultipartForm(maxSize)
	if err != nil {
		app.serverError(w, err)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("source")
	if err != nil {
		app.serverError(w, err)
		return
	}
	defer file.Close()

	s, err := app.getS3Session(app.s3endpoint, app.s3region)
	if err != nil {
		app.serverError(w, err)
		return
	}

	fileName, err := app.uploadFileToS3(s, file, fileHeader)
	if err != nil {
		app.serverError(w, err)
		return
	}

	id, err := app.customer.AddDocument(cid, name, app.s3bucket, app.s3region, fileName)
	if err != nil {
		app.serverError(w, err)
		return
	}

	fmt.Fprintf(w, "%d", id)
}

func (app *application) customerDocumentDownload(w http.ResponseWriter, r *http.Request) {
	bucket := r.URL.Query().Get("bucket")
	region := r.URL.Query().Get("region")
	source := r.URL.Query().Get("source")
	if bucket == "" || region == "" || source == "" {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	sess, err := app.getS3Session(fmt.Sprintf("%s.digitaloceanspaces.com", region), region)
	if err != nil {
		app.serverError(w, err)
		return
	}

	s3c := s3.New(sess)
	output, err := s3c.GetObject(&s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(source)})
	if err != nil {
		app.serverError(w, err)
		return
	}

	buff, err := ioutil.ReadAll(output.Body)
	if err != nil {
		app.serverError(w, err)
		return
	}

	reader := bytes.NewReader(buff)

	http.ServeContent(w, r, source, time.Now(), reader)
}

func (app *application) vehicleList(w http.ResponseWriter, r *http.Request) {
	items, err := app.vehicle.All()
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (app *application) vehicleDetails(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vid, err := strconv.Atoi(vars["vid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	item, err := app.vehicle.Get(vid)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (app *application) newVehicle(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	requiredParams := []string{"model", "chassis_number", "price"}
	for _, param := range requiredParams {
		if v := r.PostForm.Get(param); v == "" {
			fmt.Println(param)
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	price, err := strconv.ParseFloat(r.PostForm.Get("price"), 64)
	if err != nil || price <= 0 {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	id, err := app.vehicle.Insert(r.PostForm.Get("model"), r.PostForm.Get("chassis_number"), price)
	if err != nil {
		app.serverError(w, err)
		return
	}

	fmt.Fprintf(w, "%d", id)
}

func (app *application) updateVehicle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vid, err := strconv.Atoi(vars["vid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	requiredParams := []string{"model", "chassis_number", "price", "status"}
	for _, param := range requiredParams {
		if v := r.PostForm.Get(param); v == "" {
			fmt.Println(param)
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	price, err := strconv.ParseFloat(r.PostForm.Get("price"), 64)
	if err != nil || price <= 0 {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = app.vehicle.Update(vid, r.PostForm.Get("model"), r.PostForm.Get("chassis_number"), price, r.PostForm.Get("status"))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	fmt.Fprintf(w, "%d", vid)
}

func (app *application) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vid, err := strconv.Atoi(vars["vid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = app.vehicle.Delete(vid)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	fmt.Fprintf(w, "%d", vid)
}

func (app *application) batteryList(w http.ResponseWriter, r *http.Request) {
	items, err := app.battery.All()
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (app *application) batteryDetails(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bid, err := strconv.Atoi(vars["bid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	item, err := app.battery.Get(bid)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (app *application) newBattery(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	requiredParams := []string{"serial_number", "model", "capacity", "price"}
	for _, param := range requiredParams {
		if v := r.PostForm.Get(param); v == "" {
			fmt.Println(param)
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	price, err := strconv.ParseFloat(r.PostForm.Get("price"), 64)
	if err != nil || price <= 0 {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	id, err := app.battery.Insert(r.PostForm.Get("serial_number"), r.PostForm.Get("model"), r.PostForm.Get("capacity"), price)
	if err != nil {
		app.serverError(w, err)
		return
	}

	fmt.Fprintf(w, "%d", id)
}

func (app *application) updateBattery(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bid, err := strconv.Atoi(vars["bid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	requiredParams := []string{"serial_number", "model", "capacity", "price", "status"}
	for _, param := range requiredParams {
		if v := r.PostForm.Get(param); v == "" {
			fmt.Println(param)
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	price, err := strconv.ParseFloat(r.PostForm.Get("price"), 64)
	if err != nil || price <= 0 {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = app.battery.Update(bid, r.PostForm.Get("serial_number"), r.PostForm.Get("model"), r.PostForm.Get("capacity"), price, r.PostForm.Get("status"))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	fmt.Fprintf(w, "%d", bid)
}

func (app *application) deleteBattery(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bid, err := strconv.Atoi(vars["bid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = app.battery.Delete(bid)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	fmt.Fprintf(w, "%d", bid)
}

func (app *application) enquiryList(w http.ResponseWriter, r *http.Request) {
	items, err := app.enquiry.All()
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (app *application) newEnquiry(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	requiredParams := []string{"name", "phone", "message"}
	for _, param := range requiredParams {
		if v := r.PostForm.Get(param); v == "" {
			fmt.Println(param)
			app.clientError(w, http.StatusBadRequest)
			return
		}
	}

	id, reference, err := app.enquiry.Insert(r.PostForm.Get("name"), r.PostForm.Get("phone"), r.PostForm.Get("vehicle_model"), r.PostForm.Get("message"))
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"id": id, "reference": reference})
}

func (app *application) updateEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eid, err := strconv.Atoi(vars["eid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = r.ParseForm()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	status := r.PostForm.Get("status")
	if status == "" {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = app.enquiry.UpdateStatus(eid, status)
	if err != nil {
		app.serverError(w, err)
		return
	}

	fmt.Fprintf(w, "%d", eid)
}

func (app *application) deleteEnquiry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eid, err := strconv.Atoi(vars["eid"])
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = app.enquiry.Delete(eid)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
		} else {
			app.serverError(w, err)
		}
		return
	}

	fmt.Fprintf(w, "%d", eid)
}
