package main

import (
	"encoding/json"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/opsdash/inventory-import/pkg/equipment"
	"github.com/opsdash/inventory-import/pkg/equipment/caroundtripper"
	"github.com/opsdash/inventory-import/pkg/extraction"
	"github.com/opsdash/inventory-import/pkg/importer"
	"github.com/opsdash/inventory-import/pkg/logutils"
)

var args struct {
	InputPath string `arg:"positional,required" help:"Extraction result JSON file"`

	DashboardAddr   string `arg:"--dashboard-addr,required,env:DASHBOARD_ADDR" help:"Address of the asset-dashboard backend"`
	DashboardCaPath string `arg:"--dashboard-ca-path,env:DASHBOARD_CA_PATH" help:"CA certificate to pin the dashboard backend to"`
	Department      string `arg:"--department,env:DEPARTMENT" help:"Department every imported item is assigned to"`
	LogLevel        string `arg:"--log-level,env:LOG_LEVEL" default:"info"`
	Workers         int    `arg:"--workers,env:IMPORT_WORKERS" default:"4"`
}

var log = logrus.StandardLogger()

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}
	arg.MustParse(&args)
	logutils.SetLoggerLevel(args.LogLevel)

	f, err := os.Open(args.InputPath)
	if err != nil {
		log.Fatalf("unable to open file: %v", err)
	}
	defer f.Close()

	var result extraction.Result
	dec := json.NewDecoder(f)
	if err := dec.Decode(&result); err != nil {
		log.Fatalf("unable to decode extraction result: %v", err)
	}

	c, err := equipment.New(args.DashboardAddr)
	if err != nil {
		log.Fatalf("unable to create client: %v", err)
	}
	if args.DashboardCaPath != "" {
		rt, err := caroundtripper.New(args.DashboardCaPath)
		if err != nil {
			log.Fatalf("unable to create CA Roundtripper: %v", err)
		}
		c.SetHttpTransport(rt)
	}

	s, err := importer.New(importer.Config{
		Equipment: c,
		Workers:   args.Workers,
	})
	if err != nil {
		log.Fatalf("unable to create session: %v", err)
	}
	if err := s.Ping(); err != nil {
		log.Fatalf("unable to ping dashboard backend: %v", err)
	}

	s.LoadResult(&result)
	if args.Department != "" {
		for _, item := range s.Items() {
			if err := s.AssignDepartment(item.ID(), args.Department); err != nil {
				log.Fatalf("unable to assign department: %v", err)
			}
		}
	}

	batch := s.ImportAll()
	log.Infof("%s", batch.Message())
	if batch.Failed > 0 {
		for id, err := range batch.Errors {
			log.Errorf("row %s: %v", id, err)
		}
		os.Exit(1)
	}
}
