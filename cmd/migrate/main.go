package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/mealmate/backend/config"
	"github.com/pageza/mealmate/backend/internal/database"
	"github.com/pageza/mealmate/backend/internal/logger"
)

func main() {
	reset := flag.Bool("reset", false, "Drop every table before migrating (refused in production)")
	flag.Parse()

	log, err := logger.New(config.IsProduction(), os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if *reset {
		if config.IsProduction() {
			log.Fatal("refusing to reset a production database")
		}
		if err := db.Migrator().DropTable(database.Models()...); err != nil {
			log.Fatal("failed to drop tables", zap.Error(err))
		}
		log.Info("dropped all tables")
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("schema is up to date")
}
