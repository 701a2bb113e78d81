package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pageza/mealmate/backend/config"
	"github.com/pageza/mealmate/backend/internal/database"
	"github.com/pageza/mealmate/backend/internal/logger"
	"github.com/pageza/mealmate/backend/internal/seed"
	"github.com/pageza/mealmate/backend/internal/service"
	"github.com/pageza/mealmate/backend/internal/types"
)

func main() {
	userID := flag.String("user", "demo|user", "User id to seed data for")
	meals := flag.Int("meals", 25, "Number of meals")
	plans := flag.Int("plans", 10, "Number of plan items")
	contacts := flag.Int("contacts", 3, "Number of contacts")
	seedValue := flag.Int64("seed", 0, "Random seed, 0 for a random one")
	printToken := flag.Bool("token", true, "Print a bearer token for the seeded user")
	flag.Parse()

	// a local .env is optional
	_ = godotenv.Load()

	log, err := logger.New(false, os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if config.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := seed.NewFactory(db, seed.Options{
		Meals:    *meals,
		Plans:    *plans,
		Contacts: *contacts,
		Seed:     *seedValue,
	}).Run(ctx, *userID)
	if err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	log.Info("seeded database",
		zap.String("user_id", *userID),
		zap.Int("meals", len(res.Meals)),
		zap.Int("plans", len(res.Plans)),
		zap.Int("contacts", len(res.Contacts)),
	)

	if *printToken {
		token, err := service.NewAuthService(cfg.JWTSecret).GenerateToken(&types.TokenClaims{
			UserID:   res.User.ID,
			Nickname: res.User.Nickname,
		})
		if err != nil {
			log.Fatal("failed to sign token", zap.Error(err))
		}
		fmt.Println(token)
	}
}
