package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"pickup-delivery-planner/internal/adapters/repositories"
	"pickup-delivery-planner/internal/adapters/textio"
	"pickup-delivery-planner/internal/config"
	"pickup-delivery-planner/internal/domain"
	"pickup-delivery-planner/internal/metrics"
	"pickup-delivery-planner/internal/platform/db"
	"pickup-delivery-planner/internal/platform/obs"
	"pickup-delivery-planner/internal/ports"
	"pickup-delivery-planner/internal/services"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

// main is the composition root: it reads orders from the configured source,
// plans one route and prints it on stdout. Diagnostics go to stderr.
func main() {
	// The time limit covers input parsing and construction too.
	start := time.Now()

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

	metrics.RegisterDefault()

	if err := run(ctx, start, cfg); err != nil {
		logger.Fatal().Err(err).Msg("planner failed")
	}
}

func run(ctx context.Context, start time.Time, cfg config.Config) error {
	source, closeSource, err := openSource(ctx, cfg, os.Stdin)
	if err != nil {
		return err
	}
	defer closeSource()

	vehicle := domain.NewVehicle(domain.NewPoint(cfg.DepotX, cfg.DepotY), cfg.BatchSize)

	builder, err := services.NewRouteBuilder(cfg.Constructor, vehicle)
	if err != nil {
		return err
	}

	weights, err := cfg.MoveWeights()
	if err != nil {
		return err
	}
	moves, err := services.NewMoves(weights, services.NewRand(cfg.Seed))
	if err != nil {
		return err
	}

	res, err := services.PlanRoute(ctx, services.PlanRouteRequest{
		Vehicle:    vehicle,
		Start:      start,
		Deadline:   cfg.TimeLimit(),
		CheckEvery: cfg.CheckEvery,
		Proposer:   moves,
	}, source, builder, textio.NewRouteWriter(os.Stdout))
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("run_id", res.RunID).
		Str("constructor", builder.Name()).
		Int("initial_score", res.InitialScore).
		Int("score", res.Score).
		Int("distance", res.Distance).
		Int("candidates", res.Stats.Candidates).
		Dur("total", time.Since(start)).
		Msg("route planned")

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}
	return nil
}

// openSource returns the configured OrderSource and a func releasing it.
func openSource(ctx context.Context, cfg config.Config, stdin io.Reader) (ports.OrderSource, func(), error) {
	switch cfg.OrderSource {
	case config.SourceFile:
		f, err := os.Open(cfg.OrdersPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open orders file: %w", err)
		}
		return textio.NewOrderReader(f, cfg.OrderCount), func() { _ = f.Close() }, nil

	case config.SourcePostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewSQLOrderRepository(conn), func() { _ = conn.Close() }, nil

	default:
		return textio.NewOrderReader(stdin, cfg.OrderCount), func() {}, nil
	}
}
