package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/robfig/cron/v3"
	"github.com/wheelsync/motorlot/pkg/models/mysql"
)

type application struct {
	errorLog    *log.Logger
	infoLog     *log.Logger
	secret      []byte
	s3id        string
	s3secret    string
	s3endpoint  string
	s3region    string
	s3bucket    string
	runtimeEnv  string
	user        *mysql.UserModel
	customer    *mysql.CustomerModel
	sale        *mysql.SaleModel
	vehicle     *mysql.VehicleModel
	battery     *mysql.BatteryModel
	batterySale *mysql.BatterySaleModel
	enquiry     *mysql.EnquiryModel
	dashboard   *mysql.DashboardModel
}

func main() {
	addr := flag.String("addr", ":4000", "HTTP network address")
	dsn := flag.String("dsn", "user:password@tcp(host)/database_name?parseTime=true", "MySQL data source name")
	secret := flag.String("secret", "motorlot", "Secret key for generating jwts")
	s3id := flag.String("id", "", "AWS S3 identification")
	s3secret := flag.String("s3secret", "", "AWS S3 secret")
	s3endpoint := flag.String("endpoint", "sgp1.digitaloceanspaces.com", "AWS S3 endpoint")
	s3region := flag.String("region", "sgp1", "AWS S3 region")
	s3bucket := flag.String("bucket", "motorlot", "AWS S3 bucket")
	sweepSpec := flag.String("sweep", "30 0 * * *", "Cron spec for the nightly status sweep")
	runtimeEnv := flag.String("renv", "prod", "Runtime environment mode")
	logPath := flag.String("logpath", "/var/www/motorlot.app/logs/", "Path to create or alter log files")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	sweepLogFile, err := openLogFile(*logPath + time.Now().Format("2006-01-02") + "_sweep.log")
	if err != nil {
		fmt.Println("Failed to open sweep log file")
		os.Exit(1)
	}

	sweepLog := log.New(sweepLogFile, "", log.Ldate|log.Ltime)

	db, err := openDB(*dsn)
	if err != nil {
		errorLog.Fatal(err)
	}

	defer db.Close()

	app := &application{
		errorLog:    errorLog,
		infoLog:     infoLog,
		secret:      []byte(*secret),
		s3id:        *s3id,
		s3secret:    *s3secret,
		s3endpoint:  *s3endpoint,
		s3region:    *s3region,
		s3bucket:    *s3bucket,
		runtimeEnv:  *runtimeEnv,
		user:        &mysql.UserModel{DB: db},
		customer:    &mysql.CustomerModel{DB: db},
		sale:        &mysql.SaleModel{DB: db, SweepLogger: sweepLog},
		vehicle:     &mysql.VehicleModel{DB: db},
		battery:     &mysql.BatteryModel{DB: db},
		batterySale: &mysql.BatterySaleModel{DB: db},
		enquiry:     &mysql.EnquiryModel{DB: db},
		dashboard:   &mysql.DashboardModel{DB: db},
	}

	c := cron.New()
	_, err = c.AddFunc(*sweepSpec, func() {
		infoLog.Printf("Running nightly status sweep")
		app.sale.ReconcileAll(time.Now())
	})
	if err != nil {
		errorLog.Fatal(err)
	}
	c.Start()
	defer c.Stop()

	srv := &http.Server{
		Addr:     *addr,
		ErrorLog: errorLog,
		Handler:  app.routes(),
	}

	infoLog.Printf("Starting server on %s", *addr)
	err = srv.ListenAndServe()
	errorLog.Fatal(err)
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, err
}

func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}
