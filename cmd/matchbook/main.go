package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/openclob/matchbook/internal/config"
	"github.com/openclob/matchbook/internal/domain"
	"github.com/openclob/matchbook/internal/engine"
	"github.com/openclob/matchbook/internal/export"
	"github.com/openclob/matchbook/internal/flow"
	"github.com/openclob/matchbook/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	tradeLog := store.NewTradeLog()
	eng := engine.New(tradeLog)

	gen := flow.NewGenerator(flow.Config{
		Seed:     cfg.Seed,
		PriceMin: cfg.PriceMin,
		PriceMax: cfg.PriceMax,
		MaxQty:   cfg.MaxQty,
	})
	runner := flow.NewRunner(eng, gen, logger, cfg.SnapshotEvery)

	// Stop the run early on SIGINT/SIGTERM; exports still happen.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("simulation starting",
		slog.Int("events", cfg.Events),
		slog.Int64("seed", cfg.Seed))

	submitted, traded := runner.Run(ctx, cfg.Events)

	attrs := []any{
		slog.Int("orders_submitted", submitted),
		slog.Int("trades", traded),
	}
	if vwap, ok := tradeLog.VWAP(); ok {
		attrs = append(attrs, slog.Float64("vwap", domain.CentsToDollars(vwap)))
	}
	if last, ok := tradeLog.LastPrice(); ok {
		attrs = append(attrs, slog.Float64("last_price", domain.CentsToDollars(last)))
	}
	logger.Info("simulation finished", attrs...)

	if err := writeTrades(cfg.TradesCSV, tradeLog); err != nil {
		logger.Error("trade export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := writeDepth(cfg.DepthCSV, eng, cfg.DepthLevels); err != nil {
		logger.Error("depth export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("exports written",
		slog.String("trades_csv", cfg.TradesCSV),
		slog.String("depth_csv", cfg.DepthCSV))
}

func writeTrades(path string, log *store.TradeLog) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteTrades(f, log.All()); err != nil {
		return err
	}
	return f.Close()
}

func writeDepth(path string, eng *engine.Engine, depth int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	bids, asks := eng.Snapshot(depth)
	if err := export.WriteDepth(f, bids, asks); err != nil {
		return err
	}
	return f.Close()
}
