package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/hunmap/roadnet/database"
	"github.com/hunmap/roadnet/export"
	"github.com/hunmap/roadnet/ingest"
	"github.com/hunmap/roadnet/server"
	"github.com/hunmap/roadnet/service"
	"github.com/hunmap/roadnet/settings"
)

func main() {
	if err := settings.InitializeConfig(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	config := settings.GetConfig()

	level, err := log.ParseLevel(config.Server.LogLevel)
	if err != nil {
		log.Fatalf("Invalid log level %q: %v", config.Server.LogLevel, err)
	}
	log.SetLevel(level)

	if len(os.Args) < 2 {
		log.Fatalf("Usage: roadnet <ingest|serve|stats|export> [args]")
	}

	command := os.Args[1]
	if command == "ingest" {
		runIngest(config)
	} else if command == "serve" {
		serve(config)
	} else if command == "stats" {
		stats(config)
	} else if command == "export" {
		runExport(config)
	} else {
		log.Fatalf("Unknown command")
	}
}

func runIngest(config settings.Config) {
	dataDir := "./data"
	if len(os.Args) > 2 {
		dataDir = os.Args[2]
	}

	db, err := database.Open(config.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := ingest.Run(db, dataDir); err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	log.Infof("Database created successfully at %s", config.Database.Path)
}

func serve(config settings.Config) {
	db, err := database.OpenReadOnly(config.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	server.Start(config, service.New(db))
}

func stats(config settings.Config) {
	db, err := database.OpenReadOnly(config.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	s, err := service.New(db).GetStatistics(context.Background())
	if err != nil {
		log.Fatalf("Failed to query database: %v", err)
	}

	log.Infof("Roads: %d, Points: %d, Intersections: %d",
		s.TotalRoads, s.TotalPoints, s.TotalIntersections)
	log.Infof("BBox: %v, Center: %v", s.BBox, s.Center)
	for _, rt := range s.RoadTypes {
		log.Infof("Road type %s: %d", rt.Type, rt.Count)
	}
}

func runExport(config settings.Config) {
	out := "./points.parquet"
	if len(os.Args) > 2 {
		out = os.Args[2]
	}

	db, err := database.OpenReadOnly(config.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	count, err := export.Points(db, out)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	log.Infof("Exported %d points to %s", count, out)
}
