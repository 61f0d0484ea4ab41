// Package flow generates pseudo-random order traffic for driving the
// engine in simulations and demos. It consumes only the engine's
// public surface.
package flow

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/openclob/matchbook/internal/domain"
	"github.com/openclob/matchbook/internal/engine"
)

// Config controls the shape of generated traffic.
type Config struct {
	Seed     int64
	PriceMin int64 // cents, inclusive
	PriceMax int64 // cents, inclusive
	MaxQty   int64
}

// Generator produces a deterministic stream of valid orders for a
// given seed. The mix is mostly limit orders with a tail of market,
// IOC, FOK, stop, stop-limit, and iceberg orders.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator creates a generator with its own seeded random source.
func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Next returns the next randomly generated order. Every returned order
// passes engine validation.
func (g *Generator) Next() *domain.Order {
	side := domain.SideBuy
	if g.rng.Intn(2) == 1 {
		side = domain.SideSell
	}

	o := &domain.Order{
		Side:     side,
		Quantity: 1 + g.rng.Int63n(g.cfg.MaxQty),
	}

	switch p := g.rng.Intn(100); {
	case p < 55:
		o.Type = domain.OrderTypeLimit
		o.Price = g.price()
	case p < 75:
		o.Type = domain.OrderTypeMarket
	case p < 82:
		o.Type = domain.OrderTypeIOC
		o.Price = g.price()
	case p < 87:
		o.Type = domain.OrderTypeFOK
		o.Price = g.price()
	case p < 92:
		o.Type = domain.OrderTypeStop
		o.StopPrice = g.price()
	case p < 96:
		o.Type = domain.OrderTypeStopLimit
		o.StopPrice = g.price()
		o.Price = g.price()
	default:
		o.Type = domain.OrderTypeIceberg
		o.Quantity *= 1 + g.rng.Int63n(4)
		o.DisplaySize = 1 + g.rng.Int63n(o.Quantity)
	}
	return o
}

func (g *Generator) price() int64 {
	return g.cfg.PriceMin + g.rng.Int63n(g.cfg.PriceMax-g.cfg.PriceMin+1)
}

// Runner drives generated orders through an engine.
type Runner struct {
	engine        *engine.Engine
	gen           *Generator
	logger        *slog.Logger
	snapshotEvery int
}

// NewRunner creates a runner. snapshotEvery controls how often the
// top of book is logged; values below 1 disable the periodic log.
func NewRunner(eng *engine.Engine, gen *Generator, logger *slog.Logger, snapshotEvery int) *Runner {
	return &Runner{
		engine:        eng,
		gen:           gen,
		logger:        logger,
		snapshotEvery: snapshotEvery,
	}
}

// Run submits up to events orders, stopping early if the context is
// cancelled. It returns the number of orders submitted and the number
// of trades produced.
func (r *Runner) Run(ctx context.Context, events int) (submitted, traded int) {
	for i := 0; i < events; i++ {
		select {
		case <-ctx.Done():
			return submitted, traded
		default:
		}

		order := r.gen.Next()
		trades, err := r.engine.Submit(order)
		if err != nil {
			// The generator only emits valid orders; a rejection here
			// is a bug worth surfacing, not a reason to stop.
			r.logger.Warn("order rejected",
				slog.Uint64("order_id", order.ID),
				slog.String("error", err.Error()))
			continue
		}
		submitted++
		traded += len(trades)

		if r.snapshotEvery > 0 && submitted%r.snapshotEvery == 0 {
			r.logTopOfBook(submitted)
		}
	}
	return submitted, traded
}

func (r *Runner) logTopOfBook(submitted int) {
	attrs := []any{slog.Int("orders", submitted)}
	if bid, ok := r.engine.BestBid(); ok {
		attrs = append(attrs, slog.Float64("best_bid", domain.CentsToDollars(bid)))
	}
	if ask, ok := r.engine.BestAsk(); ok {
		attrs = append(attrs, slog.Float64("best_ask", domain.CentsToDollars(ask)))
	}
	r.logger.Info("top of book", attrs...)
}
