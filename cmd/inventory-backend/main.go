package main

import (
	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	backend "github.com/opsdash/inventory-import"
	"github.com/opsdash/inventory-import/pkg/logutils"
)

var args struct {
	DashboardAddr   string `arg:"--dashboard-addr,required,env:DASHBOARD_ADDR" help:"Address of the asset-dashboard backend"`
	DashboardCaPath string `arg:"--dashboard-ca-path,env:DASHBOARD_CA_PATH" help:"CA certificate to pin the dashboard backend to"`
	ExtractionAddr  string `arg:"--extraction-addr,required,env:EXTRACTION_ADDR" help:"Address of the invoice-extraction API"`
	ListenAddr      string `arg:"-L,--listen-addr" default:"127.0.0.1:8086"`
	LogLevel        string `arg:"--log-level,env:LOG_LEVEL" default:"info"`
	Workers         int    `arg:"--workers,env:IMPORT_WORKERS" help:"Concurrent imports per batch" default:"4"`
}

var log = logrus.StandardLogger()

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}
	arg.MustParse(&args)
	logutils.SetLoggerLevel(args.LogLevel)

	s, err := backend.New(backend.Config{
		ExtractionAddr:  args.ExtractionAddr,
		DashboardAddr:   args.DashboardAddr,
		DashboardCaPath: args.DashboardCaPath,
		Workers:         args.Workers,
	})
	if err != nil {
		log.Fatalf("create backend: %v", err)
	}

	err = s.Run(args.ListenAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
}
