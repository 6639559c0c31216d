package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"datalens/adapters/postgres"
	"datalens/internal/config"
	internaldataset "datalens/internal/dataset"
	internaleda "datalens/internal/eda"
	"datalens/ui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	datasets := postgres.NewDatasetRepository(db)
	reports := postgres.NewReportRepository(db)

	processor := internaldataset.NewProcessor(datasets, reports,
		internaleda.Config{
			TopValuesCap:     cfg.Analysis.TopValuesCap,
			NumericThreshold: cfg.Analysis.NumericThreshold,
		},
		internaldataset.Options{
			HistogramBins: cfg.Analysis.HistogramBins,
			MissingChunks: cfg.Analysis.MissingChunks,
		})

	app, err := ui.NewApp(ui.Config{Port: cfg.Server.Port}, datasets, reports, processor)
	if err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}

	log.Printf("Starting DataLens dashboard on :%s", cfg.Server.Port)
	if err := app.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
