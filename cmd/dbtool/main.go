package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"pickup-delivery-planner/internal/adapters/repositories"
	"pickup-delivery-planner/internal/adapters/textio"
	"pickup-delivery-planner/internal/config"
	"pickup-delivery-planner/internal/platform/db"
	"pickup-delivery-planner/internal/platform/obs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

// dbtool creates the orders table and loads it from a contest-format file
// (ORDERS_PATH, or stdin when unset).
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootstrap.Fatal().Err(err).Msg("load config")
	}

	logger, err := obs.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		bootstrap := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootstrap.Fatal().Err(err).Msg("build logger")
	}
	ctx := logger.WithContext(context.Background())

	if cfg.DatabaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}

	err = initAndSeed(ctx, conn, cfg)
	_ = conn.Close()
	if err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, cfg config.Config) error {
	logger := zerolog.Ctx(ctx)

	logger.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	logger.Info().Msg("schema ready")

	var in io.Reader = os.Stdin
	if cfg.OrdersPath != "" {
		f, err := os.Open(cfg.OrdersPath)
		if err != nil {
			return fmt.Errorf("init and seed: open orders: %w", err)
		}
		defer f.Close()
		in = f
	}

	orders, err := textio.NewOrderReader(in, cfg.OrderCount).ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if len(orders) == 0 {
		return errors.New("init and seed: no orders to seed")
	}

	logger.Info().Int("orders", len(orders)).Msg("seeding database")
	if err := repositories.SeedOrders(ctx, conn, orders); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	logger.Info().Msg("seeding complete")

	return nil
}
