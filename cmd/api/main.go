package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"datalens/adapters/api"
	"datalens/adapters/postgres"
	"datalens/adapters/postgres/migrations"
	"datalens/internal/config"
	internaldataset "datalens/internal/dataset"
	internaleda "datalens/internal/eda"
)

func main() {
	// .env is optional; real deployments use environment variables
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

	if err := migrations.Run(context.Background(), db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

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

	server := api.NewServer(cfg, processor, datasets, reports)
	log.Printf("Starting DataLens API server on :%s", cfg.Server.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
