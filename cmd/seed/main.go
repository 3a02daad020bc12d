package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/zherujiang/spotlight/internal/config"
	"github.com/zherujiang/spotlight/internal/database"
	"github.com/zherujiang/spotlight/internal/database/migrations"
	"github.com/zherujiang/spotlight/internal/directory/db"
	"github.com/zherujiang/spotlight/internal/logger"
	"github.com/zherujiang/spotlight/internal/seed"
)

func main() {
	file := flag.String("file", "", "YAML fixture to load (defaults to the bundled sample directory)")
	reset := flag.Bool("reset", false, "roll every migration back before seeding")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := logger.NewLogger(cfg.Log)
	defer logger.Close()

	ctx := context.Background()
	bunDB, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, cfg.Database.Driver, logger)
	if *reset {
		logger.Warn("MIGRATION", "Rolling back all migrations")
		if err := runner.MigrateDown(ctx); err != nil {
			logger.Fatal("MIGRATION", err.Error())
		}
	}
	if err := runner.MigrateUp(ctx); err != nil {
		logger.Fatal("MIGRATION", err.Error())
	}
	runner.Close()

	fixture, err := loadFixture(*file)
	if err != nil {
		logger.Fatal("SEED", err.Error())
	}

	summary, err := seed.Apply(ctx, &db.DB{Bun: bunDB}, fixture, logger)
	if err != nil {
		logger.Fatal("SEED", err.Error())
	}
	logger.Info("SEED", fmt.Sprintf("✅ Seed complete: %d venues, %d artists, %d shows", summary.Venues, summary.Artists, summary.Shows))
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.Parse(f)
}
